package domain

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown login key and a password
	// mismatch so that callers cannot distinguish the two.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountInactive is returned after credentials already matched but
	// the admin account is not in the active state.
	ErrAccountInactive = errors.New("account is not active")

	// ErrTokenMissing means no token was presented at all.
	ErrTokenMissing = errors.New("token required")

	// ErrTokenInvalid means a token was presented but rejected: bad
	// signature, expired, or not in the refresh registry.
	ErrTokenInvalid = errors.New("invalid or expired token")

	ErrForbidden = errors.New("access forbidden")

	ErrAdminExists = errors.New("admin already exists")
	ErrUserExists  = errors.New("user already exists")

	ErrAdminNotFound = errors.New("admin not found")
	ErrUserNotFound  = errors.New("user not found")

	// ErrRemainingTimeRequired rejects a student registration with no
	// remaining_time before any write occurs.
	ErrRemainingTimeRequired = errors.New("students must have remaining_time")

	// ErrInvalidInput is the catch-all for malformed or incomplete payloads
	// caught before any mutation.
	ErrInvalidInput = errors.New("invalid input")
)
