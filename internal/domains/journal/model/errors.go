package model

import (
	"errors"

	"bookjournal-backend/internal/shared/apperror"
)

const (
	ErrCodeEntryNotFound   = "JRN001"
	ErrCodeNotAuthor       = "JRN002"
	ErrCodeBookNotFound    = "JRN003"
	ErrCodeJournalNotFound = "JRN004"
)

var (
	ErrEntryNotFound   = errors.New("entry not found")
	ErrNotAuthor       = errors.New("only the author may change this entry")
	ErrBookNotFound    = errors.New("book not found")
	ErrJournalNotFound = errors.New("journal not found")
)

// NewEntryNotFoundError - dùng cho cả "không tồn tại" lẫn "không được xem"
func NewEntryNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeEntryNotFound, "Entry not found", ErrEntryNotFound)
}

func NewNotAuthorError() *apperror.Error {
	return apperror.Forbidden(ErrCodeNotAuthor, "Only the author may change this entry", ErrNotAuthor)
}

func NewBookNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeBookNotFound, "Book not found", ErrBookNotFound)
}

func NewJournalNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeJournalNotFound, "Journal not found", ErrJournalNotFound)
}
