package user

import (
	"context"

	"github.com/google/uuid"

	"bookjournal-backend/internal/domains/visibility"
)

// Service định nghĩa business logic layer contract
type Service interface {
	// Authentication
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error)

	// Own account
	GetMe(ctx context.Context, viewer visibility.Viewer) (*MeResponse, error)
	UpdateProfile(ctx context.Context, viewer visibility.Viewer, req UpdateProfileRequest) (*Profile, error)
	UpdateEmail(ctx context.Context, viewer visibility.Viewer, req UpdateEmailRequest) (*UserDTO, error)

	// Lookups used by the other domains
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
}
