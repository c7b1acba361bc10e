package domain

import "time"

// AdminStatus represents the lifecycle state of an admin account.
type AdminStatus string

const (
	AdminActive    AdminStatus = "active"
	AdminInactive  AdminStatus = "inactive"
	AdminSuspended AdminStatus = "suspended"
)

// Valid reports whether s is one of the known admin statuses.
func (s AdminStatus) Valid() bool {
	switch s {
	case AdminActive, AdminInactive, AdminSuspended:
		return true
	}
	return false
}

// Admin models a back-office operator. Admin access tokens carry no role
// claim; the super-admin flag is re-read from the store on every privileged
// request so that revoking it takes effect immediately.
type Admin struct {
	ID             string      `json:"id"`
	ProfilePicture string      `json:"profile_picture,omitempty"`
	Firstname      string      `json:"firstname"`
	MiddleInitial  string      `json:"middle_initial,omitempty"`
	Lastname       string      `json:"lastname"`
	Username       string      `json:"username"`
	Email          string      `json:"email"`
	PasswordHash   string      `json:"-"`
	IsSuperAdmin   bool        `json:"isSuperAdmin"`
	Status         AdminStatus `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
