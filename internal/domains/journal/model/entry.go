package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookjournal-backend/internal/domains/visibility"
)

// Status - lifecycle của entry
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusPublished:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid entry status %q", s)
}

// Entry - journal post; author và book bất biến sau khi tạo
type Entry struct {
	ID          uuid.UUID        `json:"id"`
	AuthorID    uuid.UUID        `json:"author_id"`
	BookID      uuid.UUID        `json:"book_id"`
	Title       string           `json:"title"`
	Body        string           `json:"body"`
	Section     string           `json:"section,omitempty"`
	Chapter     string           `json:"chapter,omitempty"`
	Tags        []string         `json:"tags"`
	Status      Status           `json:"status"`
	Visibility  visibility.Level `json:"visibility"`
	PublishedAt time.Time        `json:"published_at"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// Joined on read
	AuthorUsername    string           `json:"author_username,omitempty"`
	BookTitle         string           `json:"book_title,omitempty"`
	JournalVisibility visibility.Level `json:"-"`
}

// Entry satisfies visibility.Content

func (e *Entry) Journal() visibility.Journal {
	return visibility.Journal{OwnerID: e.AuthorID, Visibility: e.JournalVisibility}
}

func (e *Entry) IsPublished() bool {
	return e.Status == StatusPublished
}

func (e *Entry) ContentVisibility() visibility.Level {
	return e.Visibility
}

// HasTag reports whether the entry carries the (already normalised) tag.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

var _ visibility.Content = (*Entry)(nil)
