package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const registryKeyPrefix = "refresh_tokens:"

// RefreshTokenRegistry is the store-backed refresh token registry.
// Key format: refresh_tokens:<scope>, one Redis set per actor kind.
type RefreshTokenRegistry struct {
	client *redis.Client
	key    string
}

// NewRefreshTokenRegistry creates a registry scoped to one actor kind
// (e.g. "admin", "user") so the pools stay separate.
func NewRefreshTokenRegistry(client *redis.Client, scope string) *RefreshTokenRegistry {
	return &RefreshTokenRegistry{client: client, key: registryKeyPrefix + scope}
}

// Register adds the token to the active set.
func (r *RefreshTokenRegistry) Register(ctx context.Context, token string) error {
	if err := r.client.SAdd(ctx, r.key, token).Err(); err != nil {
		return fmt.Errorf("register refresh token: %w", err)
	}
	return nil
}

// IsActive reports whether the token is in the active set.
func (r *RefreshTokenRegistry) IsActive(ctx context.Context, token string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, r.key, token).Result()
	if err != nil {
		return false, fmt.Errorf("check refresh token: %w", err)
	}
	return ok, nil
}

// Revoke removes the token from the active set; removing an absent member
// is a no-op in Redis, which gives logout its idempotency.
func (r *RefreshTokenRegistry) Revoke(ctx context.Context, token string) error {
	if err := r.client.SRem(ctx, r.key, token).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}
