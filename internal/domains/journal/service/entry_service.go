package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookjournal-backend/internal/domains/journal/model"
	"bookjournal-backend/internal/domains/journal/repository"
	"bookjournal-backend/internal/domains/visibility"
	"bookjournal-backend/internal/shared/apperror"
	"bookjournal-backend/internal/shared/utils"
)

type entryService struct {
	repo     repository.RepositoryInterface
	books    BookDirectory
	profiles ProfileReader
	gate     EntryGate
	query    *QueryBuilder
	now      func() time.Time
}

type Option func(*entryService)

func WithClock(now func() time.Time) Option {
	return func(s *entryService) { s.now = now }
}

func NewEntryService(
	repo repository.RepositoryInterface,
	books BookDirectory,
	profiles ProfileReader,
	gate EntryGate,
	query *QueryBuilder,
	opts ...Option,
) ServiceInterface {
	s := &entryService{
		repo:     repo,
		books:    books,
		profiles: profiles,
		gate:     gate,
		query:    query,
		now:      time.Now,
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

func (s *entryService) requireBook(ctx context.Context, bookID uuid.UUID) error {
	exists, err := s.books.Exists(ctx, bookID)
	if err != nil {
		return err
	}
	if !exists {
		return model.NewBookNotFoundError()
	}
	return nil
}

// =====================================================
// WRITES
// =====================================================

func (s *entryService) Create(ctx context.Context, viewer visibility.Viewer, bookID uuid.UUID, req model.CreateEntryRequest) (*model.Entry, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireBook(ctx, bookID); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetProfile(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	e := &model.Entry{
		ID:          uuid.New(),
		AuthorID:    viewer.ID,
		BookID:      bookID,
		Title:       utils.SanitizeLine(req.Title),
		Body:        utils.SanitizeText(req.Body),
		Section:     utils.SanitizeLine(req.Section),
		Chapter:     utils.SanitizeLine(req.Chapter),
		Tags:        utils.NormalizeTags(req.Tags),
		Status:      model.StatusPublished,
		Visibility:  profile.DefaultVisibility,
		PublishedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Status != nil {
		e.Status = model.Status(*req.Status)
	}
	if req.Visibility != nil {
		e.Visibility = *req.Visibility
	}
	if req.PublishedAt != nil {
		e.PublishedAt = *req.PublishedAt
	}
	if e.Body == "" {
		return nil, apperror.Validation("JRN005", "body is required", nil)
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	log.Info().
		Str("entry_id", e.ID.String()).
		Str("author_id", viewer.ID.String()).
		Str("book_id", bookID.String()).
		Str("visibility", e.Visibility.String()).
		Str("status", string(e.Status)).
		Msg("Entry created")

	return s.repo.GetByID(ctx, e.ID)
}

// authorize: không thấy => NotFound; thấy nhưng không phải author => Forbidden
func (s *entryService) authorize(ctx context.Context, viewer visibility.Viewer, entryID uuid.UUID) (*model.Entry, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	e, err := s.gate.AuthorizeEntryView(ctx, viewer, entryID)
	if err != nil {
		return nil, err
	}
	if !viewer.Is(e.AuthorID) {
		return nil, model.NewNotAuthorError()
	}
	return e, nil
}

func (s *entryService) Update(ctx context.Context, viewer visibility.Viewer, entryID uuid.UUID, req model.UpdateEntryRequest) (*model.Entry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	e, err := s.authorize(ctx, viewer, entryID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		e.Title = utils.SanitizeLine(*req.Title)
	}
	if req.Body != nil {
		body := utils.SanitizeText(*req.Body)
		if body == "" {
			return nil, apperror.Validation("JRN005", "body is required", nil)
		}
		e.Body = body
	}
	if req.Section != nil {
		e.Section = utils.SanitizeLine(*req.Section)
	}
	if req.Chapter != nil {
		e.Chapter = utils.SanitizeLine(*req.Chapter)
	}
	if req.Tags != nil {
		e.Tags = utils.NormalizeTags(*req.Tags)
	}
	if req.Status != nil {
		e.Status = model.Status(*req.Status)
	}
	if req.Visibility != nil {
		e.Visibility = *req.Visibility
	}
	if req.PublishedAt != nil {
		e.PublishedAt = *req.PublishedAt
	}
	e.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	log.Info().
		Str("entry_id", e.ID.String()).
		Str("visibility", e.Visibility.String()).
		Str("status", string(e.Status)).
		Msg("Entry updated")
	return e, nil
}

func (s *entryService) Delete(ctx context.Context, viewer visibility.Viewer, entryID uuid.UUID) error {
	e, err := s.authorize(ctx, viewer, entryID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, e.ID); err != nil {
		return err
	}
	log.Info().
		Str("entry_id", e.ID.String()).
		Str("author_id", e.AuthorID.String()).
		Msg("Entry deleted")
	return nil
}

// =====================================================
// LISTINGS
// =====================================================

// list runs the scoped SQL query then re-applies the policy and the exact-match filters in Go
func (s *entryService) list(ctx context.Context, viewer visibility.Viewer, scope repository.Scope, q model.ListQuery) ([]model.Entry, int, error) {
	if err := q.Validate(); err != nil {
		return nil, 0, err
	}

	var filters []Filter
	if tag := utils.GenerateSlug(q.Tag); tag != "" {
		scope.Tag = tag
		filters = append(filters, ByTag(tag))
	}
	// text match stays in SQL (ILIKE); Go case folding differs for some non-ASCII text
	scope.Query = q.Query
	if scope.BookID != nil {
		filters = append(filters, ByBook(*scope.BookID))
	}
	scope.Limit, scope.Offset = q.Limit, q.Offset
	if scope.Limit <= 0 {
		scope.Limit = utils.DefaultLimit
	}

	candidates, total, err := s.repo.ListVisible(ctx, viewer, scope)
	if err != nil {
		return nil, 0, err
	}
	entries, err := s.query.VisibleEntries(ctx, viewer, candidates, filters...)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *entryService) MyJournal(ctx context.Context, viewer visibility.Viewer, q model.ListQuery) ([]model.Entry, int, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, 0, err
	}
	return s.list(ctx, viewer, repository.Scope{AuthorID: &viewer.ID, OwnDrafts: true}, q)
}

func (s *entryService) MyBookEntries(ctx context.Context, viewer visibility.Viewer, bookID uuid.UUID, q model.ListQuery) ([]model.Entry, int, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, 0, err
	}
	if err := s.requireBook(ctx, bookID); err != nil {
		return nil, 0, err
	}
	return s.list(ctx, viewer, repository.Scope{AuthorID: &viewer.ID, BookID: &bookID, OwnDrafts: true}, q)
}

// UserJournal - journal mà viewer không vào được => NotFound
func (s *entryService) UserJournal(ctx context.Context, viewer visibility.Viewer, ownerID uuid.UUID, q model.ListQuery) ([]model.Entry, int, error) {
	if _, _, err := s.gate.AuthorizeJournal(ctx, viewer, ownerID); err != nil {
		return nil, 0, err
	}
	return s.list(ctx, viewer, repository.Scope{AuthorID: &ownerID, OwnDrafts: true}, q)
}

func (s *entryService) BookEntries(ctx context.Context, viewer visibility.Viewer, bookID uuid.UUID, q model.ListQuery) ([]model.Entry, int, error) {
	if err := s.requireBook(ctx, bookID); err != nil {
		return nil, 0, err
	}
	return s.list(ctx, viewer, repository.Scope{BookID: &bookID, OwnDrafts: true}, q)
}

// Feed - own published entries plus everything visible from others; no drafts at all
func (s *entryService) Feed(ctx context.Context, viewer visibility.Viewer, q model.ListQuery) ([]model.Entry, int, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, 0, err
	}
	entries, total, err := s.list(ctx, viewer, repository.Scope{OwnDrafts: false}, q)
	if err != nil {
		return nil, 0, err
	}
	published := entries[:0]
	for _, e := range entries {
		if e.IsPublished() {
			published = append(published, e)
		}
	}
	return published, total, nil
}

func (s *entryService) Tags(ctx context.Context, viewer visibility.Viewer) ([]string, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	return s.repo.Tags(ctx, viewer.ID)
}
