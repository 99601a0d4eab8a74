package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// User is the login principal. Employees link to a user 1:1; the user row
// carries credentials and role, the employee row carries HR data.
type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	Name            string
	Role            Role
	IsActive        bool
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
