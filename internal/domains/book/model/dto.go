package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

const MaxAuthorsPerBook = 20

// CreateBookRequest - POST /books
type CreateBookRequest struct {
	Title     string   `json:"title"`
	Published *int16   `json:"published"`
	AuthorIDs []string `json:"author_ids"`
}

func (r CreateBookRequest) Validate() error {
	maxYear := int16(time.Now().Year() + 1)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, 500)),
		validation.Field(&r.Published, validation.NilOrNotEmpty, validation.Max(maxYear)),
		validation.Field(&r.AuthorIDs,
			validation.Required.Error("at least one author is required"),
			validation.Length(1, MaxAuthorsPerBook),
			validation.Each(is.UUID),
		),
	)
}

// AuthorUUIDs parses and de-duplicates author ids, keeping first-seen order.
// Call after Validate.
func (r CreateBookRequest) AuthorUUIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(r.AuthorIDs))
	ids := make([]uuid.UUID, 0, len(r.AuthorIDs))
	for _, raw := range r.AuthorIDs {
		id, err := uuid.Parse(raw)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// BookFilter - GET /books?query=&limit=&offset=
type BookFilter struct {
	Query  string
	Limit  int
	Offset int
}
