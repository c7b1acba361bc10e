package ports

import (
	"context"

	"github.com/ireserve/ireserve-api/internal/core/domain"
)

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterAdminInput carries a new admin account.
type RegisterAdminInput struct {
	ProfilePicture string
	Firstname      string
	MiddleInitial  string
	Lastname       string
	Username       string
	Email          string
	Password       string
	IsSuperAdmin   bool
}

// UpdateAdminInput carries a partial admin update. Password, when set, is
// the new plaintext password and will be rehashed.
type UpdateAdminInput struct {
	ProfilePicture *string
	Firstname      *string
	MiddleInitial  *string
	Lastname       *string
	Username       *string
	Email          *string
	Password       *string
	IsSuperAdmin   *bool
	Status         *string
}

type AdminService interface {
	Register(ctx context.Context, in RegisterAdminInput) (*domain.Admin, error)
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	Profile(ctx context.Context, id string) (*domain.Admin, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error

	List(ctx context.Context) ([]domain.Admin, error)
	Get(ctx context.Context, id string) (*domain.Admin, error)
	Update(ctx context.Context, id string, in UpdateAdminInput) (*domain.Admin, error)
	Deactivate(ctx context.Context, id string) (*domain.Admin, error)
}
