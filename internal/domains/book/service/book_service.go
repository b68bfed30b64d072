package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookjournal-backend/internal/domains/book/model"
	"bookjournal-backend/internal/domains/visibility"
	"bookjournal-backend/internal/shared/apperror"
	"bookjournal-backend/internal/shared/utils"
)

// bookService - Implementation của ServiceInterface
type bookService struct {
	repo model.RepositoryInterface
	now  func() time.Time
}

func NewBookService(repo model.RepositoryInterface) model.ServiceInterface {
	return &bookService{repo: repo, now: time.Now}
}

// CreateBook - any authenticated user may add to the catalog
func (s *bookService) CreateBook(ctx context.Context, viewer visibility.Viewer, req model.CreateBookRequest) (*model.BookResponse, error) {
	if !viewer.Authenticated() {
		return nil, apperror.Unauthorized("AUTH_REQUIRED", "Authentication required", nil)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	title := utils.SanitizeLine(req.Title)
	if title == "" {
		return nil, apperror.Validation("BOK003", "title is required", nil)
	}

	b := &model.Book{
		ID:        uuid.New(),
		Title:     title,
		Published: req.Published,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateBook(ctx, b, req.AuthorUUIDs()); err != nil {
		if errors.Is(err, model.ErrUnknownAuthor) {
			return nil, model.NewUnknownAuthorError()
		}
		return nil, err
	}

	log.Info().
		Str("book_id", b.ID.String()).
		Str("created_by", viewer.String()).
		Msg("Book created")

	// đọc lại để có authors đầy đủ
	return s.GetBook(ctx, b.ID)
}

func (s *bookService) GetBook(ctx context.Context, id uuid.UUID) (*model.BookResponse, error) {
	b, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, model.NewBookNotFoundError()
		}
		return nil, err
	}
	resp := b.ToResponse()
	return &resp, nil
}

func (s *bookService) ListBooks(ctx context.Context, filter model.BookFilter) ([]model.BookResponse, int, error) {
	books, total, err := s.repo.ListBooks(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]model.BookResponse, 0, len(books))
	for i := range books {
		out = append(out, books[i].ToResponse())
	}
	return out, total, nil
}

func (s *bookService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}
