package user

import (
	"time"
)

// User represents a user in the system.
// @Description User information
// @Description with id, email, name, role, org_id and created_at
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name,omitempty"`
	Role         string    `json:"role,omitempty"`
	OrgID        *int64    `json:"org_id"`
	CreatedAt    time.Time `json:"created_at"`
}
