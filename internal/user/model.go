package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password is too short")
)

// User represents a user in the system. ActorType is the booking category
// the user books under by default; OrganizationName names the club or
// company they represent, if any.
type User struct {
	ID               string // UUID
	Email            string
	PasswordHash     string
	DisplayName      *string
	ActorType        string
	OrganizationName *string
	CreatedAt        time.Time
	LastLoginAt      *time.Time
	IsActive         bool
	IsSystemAdmin    bool
}

// UserFilter defines filter options for listing users.
type UserFilter struct {
	Email       string
	DisplayName string
	ActorType   string
	IsActive    *bool // Use pointer to distinguish between false and nil (not set)

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
