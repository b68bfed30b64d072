package model

import (
	"context"

	"github.com/google/uuid"

	"bookjournal-backend/internal/domains/visibility"
)

// ServiceInterface - Định nghĩa business logic methods
type ServiceInterface interface {
	CreateBook(ctx context.Context, viewer visibility.Viewer, req CreateBookRequest) (*BookResponse, error)
	GetBook(ctx context.Context, id uuid.UUID) (*BookResponse, error)
	ListBooks(ctx context.Context, filter BookFilter) ([]BookResponse, int, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// RepositoryInterface - Định nghĩa data access methods
type RepositoryInterface interface {
	// CreateBook inserts book + book_authors in one transaction
	// Errors: ErrUnknownAuthor on FK violation
	CreateBook(ctx context.Context, book *Book, authorIDs []uuid.UUID) error
	GetBookByID(ctx context.Context, id uuid.UUID) (*Book, error)
	ListBooks(ctx context.Context, filter BookFilter) ([]Book, int, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
