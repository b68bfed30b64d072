package repository

import (
	"context"

	"github.com/google/uuid"

	"bookjournal-backend/internal/domains/author/model"
)

// RepositoryInterface defines data access for authors
type RepositoryInterface interface {
	Create(ctx context.Context, a *model.Author) error

	// GetByID - cache-aside; ErrAuthorNotFound khi không có
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)

	// List containment search over name parts, ordered by last name
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int, error)

	// BooksByAuthor returns the author's books ordered by title
	BooksByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.BookSummary, error)
}
