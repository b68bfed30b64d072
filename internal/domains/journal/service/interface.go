package service

import (
	"context"

	"github.com/google/uuid"

	"bookjournal-backend/internal/domains/journal/model"
	"bookjournal-backend/internal/domains/user"
	"bookjournal-backend/internal/domains/visibility"
)

// ServiceInterface - journal entries. Every listing goes through the query builder.
type ServiceInterface interface {
	Create(ctx context.Context, viewer visibility.Viewer, bookID uuid.UUID, req model.CreateEntryRequest) (*model.Entry, error)
	Update(ctx context.Context, viewer visibility.Viewer, entryID uuid.UUID, req model.UpdateEntryRequest) (*model.Entry, error)
	Delete(ctx context.Context, viewer visibility.Viewer, entryID uuid.UUID) error

	MyJournal(ctx context.Context, viewer visibility.Viewer, q model.ListQuery) ([]model.Entry, int, error)
	MyBookEntries(ctx context.Context, viewer visibility.Viewer, bookID uuid.UUID, q model.ListQuery) ([]model.Entry, int, error)
	UserJournal(ctx context.Context, viewer visibility.Viewer, ownerID uuid.UUID, q model.ListQuery) ([]model.Entry, int, error)
	BookEntries(ctx context.Context, viewer visibility.Viewer, bookID uuid.UUID, q model.ListQuery) ([]model.Entry, int, error)
	Feed(ctx context.Context, viewer visibility.Viewer, q model.ListQuery) ([]model.Entry, int, error)
	Tags(ctx context.Context, viewer visibility.Viewer) ([]string, error)
}

// BookDirectory is satisfied by the book service
type BookDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// ProfileReader is satisfied by user.Service
type ProfileReader interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*user.Profile, error)
}

// EntryGate is satisfied by *gate.Gate
type EntryGate interface {
	AuthorizeEntryView(ctx context.Context, viewer visibility.Viewer, entryID uuid.UUID) (*model.Entry, error)
	AuthorizeJournal(ctx context.Context, viewer visibility.Viewer, ownerID uuid.UUID) (*user.Profile, visibility.Tier, error)
}
