package model

import (
	"time"

	"github.com/google/uuid"

	authormodel "bookjournal-backend/internal/domains/author/model"
)

// Book - catalog entity; authors M2M qua book_authors (position giữ thứ tự)
type Book struct {
	ID        uuid.UUID            `json:"id"`
	Title     string               `json:"title"`
	Published *int16               `json:"published,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	Authors   []authormodel.Author `json:"authors"`
}

// BookResponse - authors với display name
type BookResponse struct {
	ID        uuid.UUID                    `json:"id"`
	Title     string                       `json:"title"`
	Published *int16                       `json:"published,omitempty"`
	CreatedAt time.Time                    `json:"created_at"`
	Authors   []authormodel.AuthorResponse `json:"authors"`
}

func (b *Book) ToResponse() BookResponse {
	authors := make([]authormodel.AuthorResponse, 0, len(b.Authors))
	for _, a := range b.Authors {
		authors = append(authors, authormodel.ToResponse(a))
	}
	return BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Published: b.Published,
		CreatedAt: b.CreatedAt,
		Authors:   authors,
	}
}
