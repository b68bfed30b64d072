package model

import (
	"errors"

	"bookjournal-backend/internal/shared/apperror"
)

const (
	ErrCodeBookNotFound  = "BOK001"
	ErrCodeUnknownAuthor = "BOK002"
)

var (
	ErrBookNotFound  = errors.New("book not found")
	ErrUnknownAuthor = errors.New("author not found")
)

func NewBookNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeBookNotFound, "Book not found", ErrBookNotFound)
}

// NewUnknownAuthorError - author_ids chứa id không tồn tại (lỗi input, không phải 404)
func NewUnknownAuthorError() *apperror.Error {
	return apperror.Validation(ErrCodeUnknownAuthor, "One or more authors do not exist", ErrUnknownAuthor)
}
