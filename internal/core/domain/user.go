package domain

import "time"

// UserType distinguishes the two end-user kinds.
type UserType string

const (
	UserStudent UserType = "student"
	UserFaculty UserType = "faculty"
)

// RoleAdmin is the role value expected by admin-gated routes. It is matched
// against the user_type claim of the presented access token.
const RoleAdmin = "admin"

// Valid reports whether t is one of the known user types.
func (t UserType) Valid() bool {
	return t == UserStudent || t == UserFaculty
}

// User models a student or faculty account. Deletion is logical: IsDeleted
// excludes the record from login lookups and listings, rows are never purged.
type User struct {
	ID            string    `json:"id"`
	IDNumber      string    `json:"id_number"`
	Firstname     string    `json:"firstname"`
	MiddleInitial string    `json:"middle_initial,omitempty"`
	Lastname      string    `json:"lastname"`
	ProgramCourse string    `json:"program_course,omitempty"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	UserType      UserType  `json:"user_type"`
	RemainingTime *string   `json:"remaining_time"`
	IsDeleted     bool      `json:"isDeleted"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
