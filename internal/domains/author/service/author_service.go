package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookjournal-backend/internal/domains/author/model"
	"bookjournal-backend/internal/domains/author/repository"
	"bookjournal-backend/internal/domains/visibility"
	"bookjournal-backend/internal/shared/apperror"
	"bookjournal-backend/internal/shared/utils"
)

type authorService struct {
	repo repository.RepositoryInterface
	now  func() time.Time
}

func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{repo: repo, now: time.Now}
}

func (s *authorService) Create(ctx context.Context, viewer visibility.Viewer, req model.CreateAuthorRequest) (*model.AuthorResponse, error) {
	if !viewer.Authenticated() {
		return nil, apperror.Unauthorized("AUTH_REQUIRED", "Authentication required", nil)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a := &model.Author{
		ID:         uuid.New(),
		FirstName:  utils.SanitizeLine(req.FirstName),
		MiddleName: utils.SanitizeLine(req.MiddleName),
		LastName:   utils.SanitizeLine(req.LastName),
		Aka:        utils.SanitizeLine(req.Aka),
		CreatedAt:  s.now(),
	}
	if a.LastName == "" {
		return nil, apperror.Validation("AUT002", "last_name is required", nil)
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	log.Info().
		Str("author_id", a.ID.String()).
		Str("created_by", viewer.String()).
		Msg("Author created")

	resp := model.ToResponse(*a)
	return &resp, nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.AuthorDetailResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrAuthorNotFound) {
			return nil, model.NewAuthorNotFoundError()
		}
		return nil, err
	}
	books, err := s.repo.BooksByAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.AuthorDetailResponse{AuthorResponse: model.ToResponse(*a), Books: books}, nil
}

func (s *authorService) List(ctx context.Context, filter model.AuthorFilter) ([]model.AuthorResponse, int, error) {
	authors, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]model.AuthorResponse, 0, len(authors))
	for _, a := range authors {
		out = append(out, model.ToResponse(a))
	}
	return out, total, nil
}
