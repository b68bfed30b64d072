package user

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"bookjournal-backend/internal/domains/visibility"
)

const MaxAboutLength = 2000

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// ========================================
// AUTH DTOs
// ========================================

// RegisterRequest - POST /auth/register
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 50),
			validation.Match(usernamePattern).Error("username may contain letters, digits, '_', '.', '-'"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
	)
}

// Normalize lower-cases the email; username keeps its case for display.
func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// LoginRequest - login bằng username hoặc email
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Login, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// RefreshTokenRequest - POST /auth/refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshTokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

// LoginResponse - JWT tokens
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         UserDTO   `json:"user"`
}

// ========================================
// PROFILE DTOs
// ========================================

// MeResponse - GET /users/me
type MeResponse struct {
	User    UserDTO `json:"user"`
	Profile Profile `json:"profile"`
}

// UpdateProfileRequest - PUT /users/me/profile; nil field = giữ nguyên
type UpdateProfileRequest struct {
	JournalVisibility *visibility.Level `json:"journal_visibility"`
	DefaultVisibility *visibility.Level `json:"default_entry_visibility"`
	About             *string           `json:"about"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.About, validation.When(r.About != nil, validation.RuneLength(0, MaxAboutLength))),
	)
}

// Apply copies the set fields onto p.
func (r UpdateProfileRequest) Apply(p *Profile) {
	if r.JournalVisibility != nil {
		p.JournalVisibility = *r.JournalVisibility
	}
	if r.DefaultVisibility != nil {
		p.DefaultVisibility = *r.DefaultVisibility
	}
	if r.About != nil {
		p.About = *r.About
	}
}

// UpdateEmailRequest - PUT /users/me/email
type UpdateEmailRequest struct {
	Email string `json:"email"`
}

func (r UpdateEmailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email, validation.Length(5, 255)),
	)
}
