package user

import (
	"time"

	"github.com/google/uuid"

	"bookjournal-backend/internal/domains/visibility"
)

// User là account - ánh xạ bảng users
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile - 1:1 với User, tạo cùng lúc khi register
type Profile struct {
	UserID            uuid.UUID        `json:"user_id"`
	JournalVisibility visibility.Level `json:"journal_visibility"`
	DefaultVisibility visibility.Level `json:"default_entry_visibility"`
	About             string           `json:"about"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// Defaults applied at registration
const (
	DefaultJournalVisibility = visibility.Followers
	DefaultEntryVisibility   = visibility.Private
)

// NewProfile builds the profile every new account starts with.
func NewProfile(userID uuid.UUID, now time.Time) *Profile {
	return &Profile{
		UserID:            userID,
		JournalVisibility: DefaultJournalVisibility,
		DefaultVisibility: DefaultEntryVisibility,
		UpdatedAt:         now,
	}
}

// Journal is the posture the visibility policy evaluates.
func (p *Profile) Journal() visibility.Journal {
	return visibility.Journal{OwnerID: p.UserID, Visibility: p.JournalVisibility}
}

// PublicUser là phần của user được show cho người khác (không có email)
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}

// UserDTO - own account view
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
