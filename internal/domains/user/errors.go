package user

import (
	"errors"

	"bookjournal-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeUserNotFound       = "USR001"
	ErrCodeUsernameTaken      = "USR002"
	ErrCodeEmailTaken         = "USR003"
	ErrCodeInvalidCredentials = "USR004"
	ErrCodeInvalidToken       = "USR005"
)

// Repository-level errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Service-level errors
var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

func NewUserNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeUserNotFound, "User not found", ErrUserNotFound)
}

func NewUsernameTakenError() *apperror.Error {
	return apperror.Conflict(ErrCodeUsernameTaken, "Username is already taken", ErrUsernameTaken)
}

func NewEmailTakenError() *apperror.Error {
	return apperror.Conflict(ErrCodeEmailTaken, "Email is already registered", ErrEmailAlreadyExists)
}

func NewInvalidCredentialsError() *apperror.Error {
	return apperror.Unauthorized(ErrCodeInvalidCredentials, "Invalid login or password", ErrInvalidCredentials)
}

func NewInvalidTokenError() *apperror.Error {
	return apperror.Unauthorized(ErrCodeInvalidToken, "Invalid or expired token", ErrInvalidToken)
}
