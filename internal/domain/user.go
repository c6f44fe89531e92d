package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an application user as seen by the role-management operations.
type User struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Name        string    `json:"name" db:"name"`
	Role        UserRole  `json:"role" db:"role"`
	Designation *string   `json:"designation,omitempty" db:"designation"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// IsElevated reports whether the user holds a role allowed to manage
// audit trails and integrity findings.
func (u *User) IsElevated() bool {
	return u.Role.IsElevated()
}
