package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookjournal-backend/internal/domains/author/model"
	"bookjournal-backend/internal/domains/visibility"
	"bookjournal-backend/internal/shared/apperror"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, a *model.Author) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*model.Author)
	return a, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, f model.AuthorFilter) ([]model.Author, int, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]model.Author)
	return list, args.Int(1), args.Error(2)
}

func (m *mockRepo) BooksByAuthor(ctx context.Context, id uuid.UUID) ([]model.BookSummary, error) {
	args := m.Called(ctx, id)
	list, _ := args.Get(0).([]model.BookSummary)
	return list, args.Error(1)
}

func TestCreate_RequiresAuthentication(t *testing.T) {
	repo := new(mockRepo)
	_, err := NewAuthorService(repo).Create(context.Background(), visibility.Anonymous, model.CreateAuthorRequest{LastName: "Woolf"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_SanitizesNames(t *testing.T) {
	repo := new(mockRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Author")).Return(nil)

	resp, err := NewAuthorService(repo).Create(context.Background(), visibility.As(uuid.New()), model.CreateAuthorRequest{
		FirstName: "<i>Virginia</i>",
		LastName:  "Woolf",
	})
	require.NoError(t, err)
	assert.Equal(t, "Virginia", resp.FirstName)
	assert.Equal(t, "Virginia Woolf", resp.DisplayName)
}

func TestCreate_MarkupOnlyLastNameRejected(t *testing.T) {
	repo := new(mockRepo)
	_, err := NewAuthorService(repo).Create(context.Background(), visibility.As(uuid.New()), model.CreateAuthorRequest{LastName: "<br>"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestGetByID(t *testing.T) {
	id := uuid.New()

	t.Run("with books", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, id).Return(&model.Author{ID: id, LastName: "Austen", Aka: "A Lady"}, nil)
		repo.On("BooksByAuthor", mock.Anything, id).Return([]model.BookSummary{{ID: uuid.New(), Title: "Emma"}}, nil)

		detail, err := NewAuthorService(repo).GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "A Lady", detail.DisplayName)
		assert.Len(t, detail.Books, 1)
	})

	t.Run("missing", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, id).Return(nil, model.ErrAuthorNotFound)

		_, err := NewAuthorService(repo).GetByID(context.Background(), id)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Equal(t, model.ErrCodeAuthorNotFound, apperror.CodeOf(err))
	})

	t.Run("db failure is not mapped", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByID", mock.Anything, id).Return(nil, errors.New("boom"))

		_, err := NewAuthorService(repo).GetByID(context.Background(), id)
		require.Error(t, err)
		assert.Nil(t, apperror.KindOf(err))
	})
}
