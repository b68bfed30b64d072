package model

import (
	"errors"

	"bookjournal-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeRequestNotFound  = "FOL001"
	ErrCodeSelfFollow       = "FOL002"
	ErrCodeNotRecipient     = "FOL003"
	ErrCodeAlreadyResolved  = "FOL004"
	ErrCodeAlreadyFollowing = "FOL005"
	ErrCodeDuplicateRequest = "FOL006"
	ErrCodeUserNotFound     = "FOL007"
)

// Errors
var (
	ErrRequestNotFound  = errors.New("follow request not found")
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrNotRecipient     = errors.New("only the recipient may resolve a follow request")
	ErrAlreadyResolved  = errors.New("follow request already resolved")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrDuplicateRequest = errors.New("an outstanding follow request already exists")
	ErrUserNotFound     = errors.New("user not found")
)

// Error constructors
func NewRequestNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeRequestNotFound, "Follow request not found", ErrRequestNotFound)
}

func NewSelfFollowError() *apperror.Error {
	return apperror.InvalidOperation(ErrCodeSelfFollow, "You cannot follow yourself", ErrSelfFollow)
}

func NewNotRecipientError() *apperror.Error {
	return apperror.Forbidden(ErrCodeNotRecipient, "Only the recipient may accept or decline this request", ErrNotRecipient)
}

func NewAlreadyResolvedError(status RequestStatus) *apperror.Error {
	return apperror.InvalidState(ErrCodeAlreadyResolved, "Follow request was already "+string(status), ErrAlreadyResolved)
}

func NewAlreadyFollowingError() *apperror.Error {
	return apperror.InvalidOperation(ErrCodeAlreadyFollowing, "You already follow this user", ErrAlreadyFollowing)
}

func NewDuplicateRequestError() *apperror.Error {
	return apperror.Conflict(ErrCodeDuplicateRequest, "You already have an outstanding request to this user", ErrDuplicateRequest)
}

func NewUserNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeUserNotFound, "User not found", ErrUserNotFound)
}
