package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Author - catalog entity, dùng chung cho mọi user
type Author struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"first_name"`
	MiddleName string    `json:"middle_name"`
	LastName   string    `json:"last_name"`
	Aka        string    `json:"aka"`
	CreatedAt  time.Time `json:"created_at"`
}

// DisplayName ưu tiên aka, nếu không thì ghép các phần tên
func (a Author) DisplayName() string {
	if a.Aka != "" {
		return a.Aka
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{a.FirstName, a.MiddleName, a.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// BookSummary is a book as listed on an author page.
type BookSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Published *int16    `json:"published,omitempty"`
}
