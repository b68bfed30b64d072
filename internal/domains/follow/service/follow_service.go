package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookjournal-backend/internal/domains/follow/model"
	"bookjournal-backend/internal/domains/follow/repository"
	"bookjournal-backend/internal/domains/visibility"
	"bookjournal-backend/internal/infrastructure/metrics"
	"bookjournal-backend/internal/shared/apperror"
	"bookjournal-backend/internal/shared/utils"
)

type followService struct {
	repo    repository.RepositoryInterface
	users   UserDirectory
	metrics metrics.Recorder
	now     func() time.Time
}

// Option tweaks service construction (tests inject clock)
type Option func(*followService)

func WithClock(now func() time.Time) Option {
	return func(s *followService) { s.now = now }
}

func NewFollowService(repo repository.RepositoryInterface, users UserDirectory, recorder metrics.Recorder, opts ...Option) ServiceInterface {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	s := &followService{
		repo:    repo,
		users:   users,
		metrics: recorder,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func requireViewer(viewer visibility.Viewer) error {
	if !viewer.Authenticated() {
		return apperror.Unauthorized("AUTH_REQUIRED", "Authentication required", nil)
	}
	return nil
}

// =====================================================
// EDGES
// =====================================================

func (s *followService) IsFollowing(ctx context.Context, from, to uuid.UUID) (bool, error) {
	if from == uuid.Nil || to == uuid.Nil || from == to {
		return false, nil
	}
	return s.repo.IsFollowing(ctx, from, to)
}

func (s *followService) Unfollow(ctx context.Context, viewer visibility.Viewer, target uuid.UUID) error {
	if err := requireViewer(viewer); err != nil {
		return err
	}
	if viewer.Is(target) {
		return model.NewSelfFollowError()
	}
	removed, err := s.repo.DeleteEdge(ctx, viewer.ID, target)
	if err != nil {
		return err
	}
	if removed {
		s.metrics.RecordFollowTransition(metrics.TransitionUnfollowed)
		log.Info().Str("from", viewer.ID.String()).Str("to", target.String()).Msg("Unfollowed")
	}
	return nil
}

func (s *followService) ListFollowing(ctx context.Context, viewer visibility.Viewer) ([]model.Connection, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	return s.repo.ListFollowing(ctx, viewer.ID)
}

func (s *followService) ListFollowers(ctx context.Context, viewer visibility.Viewer) ([]model.Connection, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	return s.repo.ListFollowers(ctx, viewer.ID)
}

// =====================================================
// REQUEST WORKFLOW
// =====================================================

func (s *followService) CreateRequest(ctx context.Context, viewer visibility.Viewer, to uuid.UUID, message string) (*model.FollowRequest, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	if viewer.Is(to) {
		return nil, model.NewSelfFollowError()
	}

	exists, err := s.users.Exists(ctx, to)
	if err != nil {
		return nil, fmt.Errorf("lookup target user: %w", err)
	}
	if !exists {
		return nil, model.NewUserNotFoundError()
	}

	following, err := s.repo.IsFollowing(ctx, viewer.ID, to)
	if err != nil {
		return nil, err
	}
	if following {
		return nil, model.NewAlreadyFollowingError()
	}

	pending, err := s.repo.LatestOutstanding(ctx, viewer.ID, to)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, model.NewDuplicateRequestError()
	}

	now := s.now().UTC()
	req := &model.FollowRequest{
		ID:          uuid.New(),
		FromUserID:  viewer.ID,
		ToUserID:    to,
		Message:     utils.SanitizeText(message),
		Status:      model.StatusOutstanding,
		RequestedAt: now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		// partial unique index bắt race giữa hai request song song
		if errors.Is(err, model.ErrDuplicateRequest) {
			return nil, model.NewDuplicateRequestError()
		}
		return nil, err
	}

	s.metrics.RecordFollowTransition(metrics.TransitionRequested)
	log.Info().
		Str("request_id", req.ID.String()).
		Str("from", req.FromUserID.String()).
		Str("to", req.ToUserID.String()).
		Msg("Follow request created")
	return req, nil
}

func (s *followService) Accept(ctx context.Context, viewer visibility.Viewer, requestID uuid.UUID) (*model.FollowRequest, error) {
	return s.resolve(ctx, viewer, requestID, model.StatusAccepted)
}

func (s *followService) Decline(ctx context.Context, viewer visibility.Viewer, requestID uuid.UUID) (*model.FollowRequest, error) {
	return s.resolve(ctx, viewer, requestID, model.StatusDeclined)
}

func (s *followService) resolve(ctx context.Context, viewer visibility.Viewer, requestID uuid.UUID, next model.RequestStatus) (*model.FollowRequest, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}

	req, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, model.ErrRequestNotFound) {
			return nil, model.NewRequestNotFoundError()
		}
		return nil, err
	}
	if !viewer.Is(req.ToUserID) {
		return nil, model.NewNotRecipientError()
	}
	if !req.Status.CanTransitionTo(next) {
		return nil, model.NewAlreadyResolvedError(req.Status)
	}

	resolved, err := s.repo.Resolve(ctx, requestID, next, s.now().UTC())
	if err != nil {
		if errors.Is(err, model.ErrAlreadyResolved) {
			// thua race: request đã bị resolve giữa lúc đọc và lúc CAS
			current, getErr := s.repo.GetRequest(ctx, requestID)
			if getErr != nil {
				return nil, model.NewAlreadyResolvedError(next)
			}
			return nil, model.NewAlreadyResolvedError(current.Status)
		}
		return nil, err
	}

	transition := metrics.TransitionDeclined
	if next == model.StatusAccepted {
		transition = metrics.TransitionAccepted
	}
	s.metrics.RecordFollowTransition(transition)
	log.Info().
		Str("request_id", resolved.ID.String()).
		Str("from", resolved.FromUserID.String()).
		Str("to", resolved.ToUserID.String()).
		Str("status", string(resolved.Status)).
		Msg("Follow request resolved")
	return resolved, nil
}

// =====================================================
// LISTINGS
// =====================================================

func (s *followService) ListOutstanding(ctx context.Context, to uuid.UUID) ([]model.FollowRequest, error) {
	return s.repo.ListByRecipient(ctx, to, model.StatusOutstanding)
}

func (s *followService) ListAccepted(ctx context.Context, to uuid.UUID) ([]model.FollowRequest, error) {
	return s.repo.ListByRecipient(ctx, to, model.StatusAccepted)
}

func (s *followService) ListDeclined(ctx context.Context, to uuid.UUID) ([]model.FollowRequest, error) {
	return s.repo.ListByRecipient(ctx, to, model.StatusDeclined)
}

func (s *followService) ListIncoming(ctx context.Context, viewer visibility.Viewer, status model.RequestStatus) ([]model.FollowRequest, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	switch status {
	case model.StatusAccepted:
		return s.ListAccepted(ctx, viewer.ID)
	case model.StatusDeclined:
		return s.ListDeclined(ctx, viewer.ID)
	default:
		return s.ListOutstanding(ctx, viewer.ID)
	}
}

func (s *followService) ListSent(ctx context.Context, viewer visibility.Viewer) ([]model.FollowRequest, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	return s.repo.ListBySender(ctx, viewer.ID, model.StatusOutstanding)
}

// Relationship is empty for anonymous or self viewers.
func (s *followService) Relationship(ctx context.Context, viewer visibility.Viewer, target uuid.UUID) (*model.Relationship, error) {
	rel := &model.Relationship{}
	if !viewer.Authenticated() || viewer.Is(target) {
		return rel, nil
	}

	var err error
	if rel.IsFollowing, err = s.repo.IsFollowing(ctx, viewer.ID, target); err != nil {
		return nil, err
	}
	if rel.FollowsViewer, err = s.repo.IsFollowing(ctx, target, viewer.ID); err != nil {
		return nil, err
	}
	if rel.RequestFromTarget, err = s.repo.LatestOutstanding(ctx, target, viewer.ID); err != nil {
		return nil, err
	}
	if rel.RequestToTarget, err = s.repo.LatestOutstanding(ctx, viewer.ID, target); err != nil {
		return nil, err
	}
	return rel, nil
}
