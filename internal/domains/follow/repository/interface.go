package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bookjournal-backend/internal/domains/follow/model"
)

// RepositoryInterface defines data access for follow edges and follow requests
type RepositoryInterface interface {
	// CreateRequest inserts an outstanding request.
	// Returns model.ErrDuplicateRequest when one is already outstanding for the pair.
	CreateRequest(ctx context.Context, req *model.FollowRequest) error

	// GetRequest returns model.ErrRequestNotFound when absent
	GetRequest(ctx context.Context, id uuid.UUID) (*model.FollowRequest, error)

	// LatestOutstanding returns the newest outstanding request from -> to, nil if none
	LatestOutstanding(ctx context.Context, from, to uuid.UUID) (*model.FollowRequest, error)

	// ListByRecipient / ListBySender: newest request first
	ListByRecipient(ctx context.Context, to uuid.UUID, status model.RequestStatus) ([]model.FollowRequest, error)
	ListBySender(ctx context.Context, from uuid.UUID, status model.RequestStatus) ([]model.FollowRequest, error)

	// Resolve atomically moves an outstanding request to next and, for
	// accepted, creates the edge if missing. Both happen or neither does.
	// Returns model.ErrAlreadyResolved if the request was no longer outstanding.
	Resolve(ctx context.Context, id uuid.UUID, next model.RequestStatus, at time.Time) (*model.FollowRequest, error)

	IsFollowing(ctx context.Context, from, to uuid.UUID) (bool, error)

	// DeleteEdge returns false when there was no edge
	DeleteEdge(ctx context.Context, from, to uuid.UUID) (bool, error)

	// ListFollowing: users that user follows; ListFollowers: users following user
	ListFollowing(ctx context.Context, user uuid.UUID) ([]model.Connection, error)
	ListFollowers(ctx context.Context, user uuid.UUID) ([]model.Connection, error)
}
