package ports

import (
	"context"

	"github.com/ireserve/ireserve-api/internal/core/domain"
)

// RegisterUserInput carries a new user account. UserType defaults to
// student when empty; students must supply RemainingTime.
type RegisterUserInput struct {
	IDNumber      string
	Firstname     string
	MiddleInitial string
	Lastname      string
	ProgramCourse string
	Email         string
	Password      string
	UserType      string
	RemainingTime *string
}

// UpdateUserInput carries a partial user update.
type UpdateUserInput struct {
	IDNumber      *string
	Firstname     *string
	MiddleInitial *string
	Lastname      *string
	ProgramCourse *string
	Email         *string
	Password      *string
	UserType      *string
	RemainingTime *string
}

type UserService interface {
	Register(ctx context.Context, in RegisterUserInput) (*domain.User, error)
	Login(ctx context.Context, idNumber, password string) (*TokenPair, error)
	Profile(ctx context.Context, id string) (*domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error

	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	SoftDelete(ctx context.Context, id string) (*domain.User, error)
}
