package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookjournal-backend/internal/domains/user"
	"bookjournal-backend/internal/domains/visibility"
	"bookjournal-backend/internal/shared/apperror"
	"bookjournal-backend/pkg/jwt"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, u *user.User, p *user.Profile) error {
	return m.Called(ctx, u, p).Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockRepo) FindByLogin(ctx context.Context, login string) (*user.User, error) {
	args := m.Called(ctx, login)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) GetProfile(ctx context.Context, id uuid.UUID) (*user.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*user.Profile)
	return p, args.Error(1)
}

func (m *mockRepo) UpdateProfile(ctx context.Context, p *user.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockRepo) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	return m.Called(ctx, id, email).Error(0)
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newService(repo user.Repository) (user.Service, *jwt.Manager) {
	tokens := jwt.NewManager("test-secret", 15*time.Minute, 24*time.Hour)
	return NewUserService(repo, tokens,
		WithBcryptCost(bcrypt.MinCost),
		WithClock(func() time.Time { return fixedNow }),
	), tokens
}

func TestRegister_CreatesProfileWithDefaults(t *testing.T) {
	repo := new(mockRepo)
	svc, _ := newService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*user.User"), mock.AnythingOfType("*user.Profile")).
		Run(func(args mock.Arguments) {
			u := args.Get(1).(*user.User)
			p := args.Get(2).(*user.Profile)
			assert.Equal(t, u.ID, p.UserID)
			assert.Equal(t, "ann@example.com", u.Email)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret-pass")))
			assert.Equal(t, visibility.Followers, p.JournalVisibility)
			assert.Equal(t, visibility.Private, p.DefaultVisibility)
			assert.Empty(t, p.About)
		}).
		Return(nil)

	dto, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "ann", Email: " Ann@Example.com ", Password: "secret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "ann", dto.Username)
	assert.Equal(t, fixedNow, dto.CreatedAt)
	repo.AssertExpectations(t)
}

func TestRegister_DuplicateIsConflict(t *testing.T) {
	repo := new(mockRepo)
	svc, _ := newService(repo)
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(user.ErrUsernameTaken)

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "ann", Email: "ann@example.com", Password: "secret-pass",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, user.ErrCodeUsernameTaken, apperror.CodeOf(err))
}

func TestRegister_ValidationError(t *testing.T) {
	repo := new(mockRepo)
	svc, _ := newService(repo)

	_, err := svc.Register(context.Background(), user.RegisterRequest{Username: "a", Email: "nope", Password: "x"})
	require.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &user.User{ID: uuid.New(), Username: "ann", Email: "ann@example.com", PasswordHash: string(hash)}

	t.Run("valid credentials issue tokens", func(t *testing.T) {
		repo := new(mockRepo)
		svc, tokens := newService(repo)
		repo.On("FindByLogin", mock.Anything, "ann").Return(stored, nil)

		resp, err := svc.Login(context.Background(), user.LoginRequest{Login: "ann", Password: "secret-pass"})
		require.NoError(t, err)
		claims, err := tokens.ValidateAccessToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, stored.ID.String(), claims.UserID)
		assert.Equal(t, fixedNow.Add(15*time.Minute), resp.ExpiresAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mockRepo)
		svc, _ := newService(repo)
		repo.On("FindByLogin", mock.Anything, "ann").Return(stored, nil)

		_, err := svc.Login(context.Background(), user.LoginRequest{Login: "ann", Password: "wrong"})
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("unknown login looks the same as wrong password", func(t *testing.T) {
		repo := new(mockRepo)
		svc, _ := newService(repo)
		repo.On("FindByLogin", mock.Anything, "bob").Return(nil, user.ErrUserNotFound)

		_, err := svc.Login(context.Background(), user.LoginRequest{Login: "bob", Password: "whatever"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	repo := new(mockRepo)
	svc, tokens := newService(repo)
	access, err := tokens.GenerateAccessToken(uuid.NewString(), "ann")
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), access)
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}

func TestUpdateProfile_AppliesOnlySetFields(t *testing.T) {
	repo := new(mockRepo)
	svc, _ := newService(repo)
	id := uuid.New()
	current := &user.Profile{UserID: id, JournalVisibility: visibility.Followers, DefaultVisibility: visibility.Private, About: "old"}

	repo.On("GetProfile", mock.Anything, id).Return(current, nil)
	repo.On("UpdateProfile", mock.Anything, mock.AnythingOfType("*user.Profile")).Return(nil)

	public := visibility.Public
	about := "<b>reader</b> of things"
	p, err := svc.UpdateProfile(context.Background(), visibility.As(id), user.UpdateProfileRequest{
		JournalVisibility: &public,
		About:             &about,
	})
	require.NoError(t, err)
	assert.Equal(t, visibility.Public, p.JournalVisibility)
	assert.Equal(t, visibility.Private, p.DefaultVisibility)
	assert.Equal(t, "reader of things", p.About)
	assert.Equal(t, fixedNow, p.UpdatedAt)
}

func TestOwnAccount_RequiresViewer(t *testing.T) {
	svc, _ := newService(new(mockRepo))
	_, err := svc.GetMe(context.Background(), visibility.Anonymous)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = svc.UpdateEmail(context.Background(), visibility.Anonymous, user.UpdateEmailRequest{Email: "a@b.co"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestUpdateEmail_Taken(t *testing.T) {
	repo := new(mockRepo)
	svc, _ := newService(repo)
	id := uuid.New()
	repo.On("UpdateEmail", mock.Anything, id, "taken@example.com").Return(user.ErrEmailAlreadyExists)

	_, err := svc.UpdateEmail(context.Background(), visibility.As(id), user.UpdateEmailRequest{Email: "taken@example.com"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, user.ErrCodeEmailTaken, apperror.CodeOf(err))
}

func TestGetUser_NotFound(t *testing.T) {
	repo := new(mockRepo)
	svc, _ := newService(repo)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, user.ErrUserNotFound)

	_, err := svc.GetUser(context.Background(), id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
	_, err = svc.GetUser(context.Background(), uuid.New())
	assert.Nil(t, apperror.KindOf(err))
}
