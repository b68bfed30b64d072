package service

import (
	"context"

	"github.com/google/uuid"

	"bookjournal-backend/internal/domains/author/model"
	"bookjournal-backend/internal/domains/visibility"
)

// ServiceInterface - catalog authors. Any authenticated user may create.
type ServiceInterface interface {
	Create(ctx context.Context, viewer visibility.Viewer, req model.CreateAuthorRequest) (*model.AuthorResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.AuthorDetailResponse, error)
	List(ctx context.Context, filter model.AuthorFilter) ([]model.AuthorResponse, int, error)
}
