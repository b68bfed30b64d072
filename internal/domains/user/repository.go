package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository định nghĩa contract cho data access layer
type Repository interface {
	// Create inserts user + profile trong một transaction
	// Returns: ErrUsernameTaken / ErrEmailAlreadyExists on unique violation
	Create(ctx context.Context, u *User, p *Profile) error

	// FindByID - ErrUserNotFound khi không có
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByLogin tìm theo username (case-insensitive) hoặc email
	FindByLogin(ctx context.Context, login string) (*User, error)

	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ========================================
	// PROFILE
	// ========================================

	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, p *Profile) error

	// UpdateEmail - ErrEmailAlreadyExists khi email đã dùng
	UpdateEmail(ctx context.Context, userID uuid.UUID, email string) error
}
