package apperror

import (
	"errors"
	"net/http"
)

// Error classes. Domain errors wrap one of these so callers can match the class
// with errors.Is without knowing the concrete error.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation error")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthorized    = errors.New("unauthorized")
)

// AppError is a custom error type that includes an HTTP status code and an optional internal error code.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NotFound(message string) *AppError {
	return Wrap(ErrNotFound, http.StatusNotFound, message)
}

func Validation(message string) *AppError {
	return Wrap(ErrValidation, http.StatusBadRequest, message)
}

func InvalidArgument(message string) *AppError {
	return Wrap(ErrInvalidArgument, http.StatusBadRequest, message)
}

func Conflict(message string) *AppError {
	return Wrap(ErrConflict, http.StatusConflict, message)
}

func Forbidden(message string) *AppError {
	return Wrap(ErrForbidden, http.StatusForbidden, message)
}

func Unauthorized(message string) *AppError {
	return Wrap(ErrUnauthorized, http.StatusUnauthorized, message)
}
