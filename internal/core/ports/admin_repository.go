package ports

import (
	"context"

	"github.com/ireserve/ireserve-api/internal/core/domain"
)

// AdminUpdate carries the mutable admin fields; nil pointers leave the
// stored value untouched.
type AdminUpdate struct {
	ProfilePicture *string
	Firstname      *string
	MiddleInitial  *string
	Lastname       *string
	Username       *string
	Email          *string
	PasswordHash   *string
	IsSuperAdmin   *bool
	Status         *domain.AdminStatus
}

// AdminRepository defines the persistence surface for admin accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	FindByUsername(ctx context.Context, username string) (*domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
	Update(ctx context.Context, id string, update AdminUpdate) (*domain.Admin, error)
	// Deactivate transitions the admin to the inactive status. Records are
	// never physically removed.
	Deactivate(ctx context.Context, id string) (*domain.Admin, error)
}
