package ports

import "context"

// RefreshTokenRegistry tracks the currently valid refresh tokens. Membership
// is a necessary condition for honoring a refresh token, checked before any
// cryptographic verification. Implementations must be safe for concurrent
// use.
type RefreshTokenRegistry interface {
	// Register adds the token to the active set.
	Register(ctx context.Context, token string) error
	// IsActive reports whether the token is in the active set.
	IsActive(ctx context.Context, token string) (bool, error)
	// Revoke removes the token from the active set. Revoking a token that
	// is not present is a no-op.
	Revoke(ctx context.Context, token string) error
}
