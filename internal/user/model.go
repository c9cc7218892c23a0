package user

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.NotFound("user not found")
	ErrEmailAlreadyUsed   = apperror.Conflict("email already used")
	ErrInvalidCredentials = apperror.Unauthorized("invalid email or password")
	ErrNameRequired       = apperror.Validation("name is required")
	ErrEmailRequired      = apperror.Validation("email is required")
	ErrPasswordTooShort   = apperror.Validation("password is too short")
	ErrNotSelf            = apperror.Forbidden("users may only change their own profile")
)

// User represents a user in the system.
type User struct {
	ID           string // UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Filter defines paging for listing users.
type Filter struct {
	Limit  int
	Offset int
}
