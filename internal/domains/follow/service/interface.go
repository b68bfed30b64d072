package service

import (
	"context"

	"github.com/google/uuid"

	"bookjournal-backend/internal/domains/follow/model"
	"bookjournal-backend/internal/domains/visibility"
)

// ServiceInterface is the follow graph: accepted edges plus the request workflow.
type ServiceInterface interface {
	// IsFollowing satisfies visibility.FollowChecker
	IsFollowing(ctx context.Context, from, to uuid.UUID) (bool, error)

	// CreateRequest: viewer xin follow target
	// Errors: self-follow (InvalidOperation), already following (InvalidOperation),
	// duplicate outstanding (Conflict), unknown target (NotFound)
	CreateRequest(ctx context.Context, viewer visibility.Viewer, to uuid.UUID, message string) (*model.FollowRequest, error)

	// Accept / Decline: chỉ recipient; request phải còn outstanding
	Accept(ctx context.Context, viewer visibility.Viewer, requestID uuid.UUID) (*model.FollowRequest, error)
	Decline(ctx context.Context, viewer visibility.Viewer, requestID uuid.UUID) (*model.FollowRequest, error)

	// Incoming requests for a recipient, newest first
	ListOutstanding(ctx context.Context, to uuid.UUID) ([]model.FollowRequest, error)
	ListAccepted(ctx context.Context, to uuid.UUID) ([]model.FollowRequest, error)
	ListDeclined(ctx context.Context, to uuid.UUID) ([]model.FollowRequest, error)
	ListIncoming(ctx context.Context, viewer visibility.Viewer, status model.RequestStatus) ([]model.FollowRequest, error)

	// ListSent: outstanding requests viewer made
	ListSent(ctx context.Context, viewer visibility.Viewer) ([]model.FollowRequest, error)

	// Unfollow is idempotent
	Unfollow(ctx context.Context, viewer visibility.Viewer, target uuid.UUID) error

	ListFollowing(ctx context.Context, viewer visibility.Viewer) ([]model.Connection, error)
	ListFollowers(ctx context.Context, viewer visibility.Viewer) ([]model.Connection, error)

	// Relationship gathers the viewer <-> target facts shown on a profile
	Relationship(ctx context.Context, viewer visibility.Viewer, target uuid.UUID) (*model.Relationship, error)
}

var _ visibility.FollowChecker = (ServiceInterface)(nil)

// UserDirectory is the slice of the user domain the follow graph needs.
type UserDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
