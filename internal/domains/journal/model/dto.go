package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookjournal-backend/internal/domains/visibility"
)

const (
	MaxTitleLength = 255
	MaxBodyLength  = 100000
	MaxLabelLength = 100
	MaxTags        = 20
)

var statusRule = validation.In(string(StatusDraft), string(StatusPublished))

// CreateEntryRequest - POST /books/:id/entries
// Visibility nil => profile default; Status nil => published; PublishedAt nil => now
type CreateEntryRequest struct {
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Section     string            `json:"section"`
	Chapter     string            `json:"chapter"`
	Tags        []string          `json:"tags"`
	Status      *string           `json:"status"`
	Visibility  *visibility.Level `json:"visibility"`
	PublishedAt *time.Time        `json:"published_at"`
}

func (r CreateEntryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.RuneLength(0, MaxTitleLength)),
		validation.Field(&r.Body, validation.Required, validation.RuneLength(1, MaxBodyLength)),
		validation.Field(&r.Section, validation.RuneLength(0, MaxLabelLength)),
		validation.Field(&r.Chapter, validation.RuneLength(0, MaxLabelLength)),
		validation.Field(&r.Tags, validation.Length(0, MaxTags), validation.Each(validation.RuneLength(1, 50))),
		validation.Field(&r.Status, validation.NilOrNotEmpty, statusRule),
	)
}

// UpdateEntryRequest - PUT /entries/:id; nil = giữ nguyên. Author/book không đổi được.
type UpdateEntryRequest struct {
	Title       *string           `json:"title"`
	Body        *string           `json:"body"`
	Section     *string           `json:"section"`
	Chapter     *string           `json:"chapter"`
	Tags        *[]string         `json:"tags"`
	Status      *string           `json:"status"`
	Visibility  *visibility.Level `json:"visibility"`
	PublishedAt *time.Time        `json:"published_at"`
}

func (r UpdateEntryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.RuneLength(0, MaxTitleLength)),
		validation.Field(&r.Body, validation.NilOrNotEmpty, validation.RuneLength(1, MaxBodyLength)),
		validation.Field(&r.Section, validation.RuneLength(0, MaxLabelLength)),
		validation.Field(&r.Chapter, validation.RuneLength(0, MaxLabelLength)),
		validation.Field(&r.Tags, validation.By(func(v interface{}) error {
			tags, _ := v.(*[]string)
			if tags == nil {
				return nil
			}
			return validation.Validate(*tags, validation.Length(0, MaxTags), validation.Each(validation.RuneLength(1, 50)))
		})),
		validation.Field(&r.Status, validation.NilOrNotEmpty, statusRule),
	)
}

// ListQuery - ?tag=&query=&limit=&offset=
type ListQuery struct {
	Tag    string `form:"tag"`
	Query  string `form:"query"`
	Limit  int    `form:"-"`
	Offset int    `form:"-"`
}

func (q ListQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Tag, validation.RuneLength(0, 50)),
		validation.Field(&q.Query, validation.RuneLength(0, 200)),
	)
}
