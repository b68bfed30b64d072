package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"bookjournal-backend/internal/domains/user"
	"bookjournal-backend/internal/domains/visibility"
	"bookjournal-backend/internal/shared/apperror"
	"bookjournal-backend/internal/shared/utils"
	"bookjournal-backend/pkg/jwt"
)

// userService implement user.Service interface
type userService struct {
	repo       user.Repository
	tokens     *jwt.Manager
	bcryptCost int
	now        func() time.Time
}

type Option func(*userService)

// WithBcryptCost - tests dùng bcrypt.MinCost
func WithBcryptCost(cost int) Option {
	return func(s *userService) { s.bcryptCost = cost }
}

func WithClock(now func() time.Time) Option {
	return func(s *userService) { s.now = now }
}

func NewUserService(repo user.Repository, tokens *jwt.Manager, opts ...Option) user.Service {
	s := &userService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: 12,
		now:        time.Now,
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

// mapRepoError translate repository sentinels -> domain errors
func mapRepoError(err error) error {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		return user.NewUserNotFoundError()
	case errors.Is(err, user.ErrUsernameTaken):
		return user.NewUsernameTakenError()
	case errors.Is(err, user.ErrEmailAlreadyExists):
		return user.NewEmailTakenError()
	}
	return err
}

// ========================================
// AUTHENTICATION
// ========================================

// Register tạo user + profile mặc định
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	newUser := &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, newUser, user.NewProfile(newUser.ID, now)); err != nil {
		return nil, mapRepoError(err)
	}

	log.Info().
		Str("user_id", newUser.ID.String()).
		Str("username", newUser.Username).
		Msg("User registered")

	dto := newUser.ToDTO()
	return &dto, nil
}

// Login xác thực bằng username/email + password
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByLogin(ctx, req.Login)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// không tiết lộ login có tồn tại hay không
			return nil, user.NewInvalidCredentialsError()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.NewInvalidCredentialsError()
	}

	return s.issueTokens(u)
}

// RefreshToken đổi refresh token lấy cặp token mới
func (s *userService) RefreshToken(ctx context.Context, refreshToken string) (*user.LoginResponse, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, user.NewInvalidTokenError()
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.NewInvalidTokenError()
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.NewInvalidTokenError()
		}
		return nil, err
	}
	return s.issueTokens(u)
}

func (s *userService) issueTokens(u *user.User) (*user.LoginResponse, error) {
	accessToken, err := s.tokens.GenerateAccessToken(u.ID.String(), u.Username)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    s.now().Add(s.tokens.AccessExpiry()),
		User:         u.ToDTO(),
	}, nil
}

// ========================================
// OWN ACCOUNT
// ========================================

func (s *userService) GetMe(ctx context.Context, viewer visibility.Viewer) (*user.MeResponse, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	u, err := s.repo.FindByID(ctx, viewer.ID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	p, err := s.repo.GetProfile(ctx, viewer.ID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return &user.MeResponse{User: u.ToDTO(), Profile: *p}, nil
}

// UpdateProfile - chỉ owner; viewer chính là owner
func (s *userService) UpdateProfile(ctx context.Context, viewer visibility.Viewer, req user.UpdateProfileRequest) (*user.Profile, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetProfile(ctx, viewer.ID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if req.About != nil {
		about := utils.SanitizeText(*req.About)
		req.About = &about
	}
	req.Apply(p)
	p.UpdatedAt = s.now()

	if err := s.repo.UpdateProfile(ctx, p); err != nil {
		return nil, mapRepoError(err)
	}

	log.Info().
		Str("user_id", viewer.ID.String()).
		Str("journal_visibility", p.JournalVisibility.String()).
		Str("default_visibility", p.DefaultVisibility.String()).
		Msg("Profile updated")
	return p, nil
}

func (s *userService) UpdateEmail(ctx context.Context, viewer visibility.Viewer, req user.UpdateEmailRequest) (*user.UserDTO, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateEmail(ctx, viewer.ID, req.Email); err != nil {
		return nil, mapRepoError(err)
	}
	u, err := s.repo.FindByID(ctx, viewer.ID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	dto := u.ToDTO()
	return &dto, nil
}

// ========================================
// LOOKUPS
// ========================================

func (s *userService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return u, nil
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*user.Profile, error) {
	p, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return p, nil
}
