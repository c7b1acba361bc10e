package ports

import (
	"context"

	"github.com/ireserve/ireserve-api/internal/core/domain"
)

// UserUpdate carries the mutable user fields; nil pointers leave the stored
// value untouched.
type UserUpdate struct {
	IDNumber      *string
	Firstname     *string
	MiddleInitial *string
	Lastname      *string
	ProgramCourse *string
	Email         *string
	PasswordHash  *string
	UserType      *domain.UserType
	RemainingTime *string
}

// UserRepository defines the persistence surface for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByID returns the record regardless of its deleted flag; callers
	// decide whether a soft-deleted record is visible.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindActiveByIDNumber excludes soft-deleted records from the lookup.
	FindActiveByIDNumber(ctx context.Context, idNumber string) (*domain.User, error)
	ExistsByIDNumber(ctx context.Context, idNumber string) (bool, error)
	// List returns all non-deleted users.
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	// SoftDelete sets the deleted flag. Records are never physically removed.
	SoftDelete(ctx context.Context, id string) (*domain.User, error)
}
