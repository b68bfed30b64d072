package model

import (
	"errors"

	"bookjournal-backend/internal/shared/apperror"
)

const (
	ErrCodeAuthorNotFound = "AUT001"
)

var ErrAuthorNotFound = errors.New("author not found")

func NewAuthorNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeAuthorNotFound, "Author not found", ErrAuthorNotFound)
}
