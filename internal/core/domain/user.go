package domain

import (
	"errors"
	"time"
)

// Roles assignable to a user. The set is deliberately closed: routes are
// gated on these values, anything else is rejected at the door.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidInput       = errors.New("invalid input")
)

// User models an account in the system. PasswordHash holds a bcrypt hash of
// the password and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleAdmin
}
