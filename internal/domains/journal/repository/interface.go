package repository

import (
	"context"

	"github.com/google/uuid"

	"bookjournal-backend/internal/domains/journal/model"
	"bookjournal-backend/internal/domains/visibility"
)

// Scope narrows a listing before the visibility predicate applies.
type Scope struct {
	AuthorID *uuid.UUID
	BookID   *uuid.UUID
	Tag      string
	Query    string // containment over title, body and book title

	// OwnDrafts includes the viewer's own drafts (journal views, not the feed)
	OwnDrafts bool

	Limit  int
	Offset int
}

type RepositoryInterface interface {
	Create(ctx context.Context, e *model.Entry) error

	// GetByID loads the entry with the author's journal visibility.
	// No visibility filtering here: callers go through the gate.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Entry, error)

	Update(ctx context.Context, e *model.Entry) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListVisible returns entries in scope visible to viewer, newest
	// published first, plus the total before limit/offset.
	ListVisible(ctx context.Context, viewer visibility.Viewer, scope Scope) ([]model.Entry, int, error)

	// Tags - distinct tags over one author's entries
	Tags(ctx context.Context, authorID uuid.UUID) ([]string, error)
}
