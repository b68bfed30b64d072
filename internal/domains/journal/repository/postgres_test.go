package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"bookjournal-backend/internal/domains/visibility"
	"bookjournal-backend/internal/shared/utils"
)

func TestBuildWhere_ScopeFilters(t *testing.T) {
	author := uuid.New()
	book := uuid.New()
	var args utils.Args

	where := buildWhere(visibility.Anonymous, Scope{
		AuthorID: &author,
		BookID:   &book,
		Tag:      "sci-fi",
		Query:    "50%",
	}, &args)

	assert.Contains(t, where, "e.author_id = $1")
	assert.Contains(t, where, "e.book_id = $2")
	assert.Contains(t, where, "$3 = ANY(e.tags)")
	assert.Contains(t, where, "(e.title ILIKE $4 OR e.body ILIKE $4 OR b.title ILIKE $4)")
	assert.Equal(t, []interface{}{author, book, "sci-fi", `%50\%%`}, args.Values())
}

func TestBuildWhere_NoScope(t *testing.T) {
	var args utils.Args
	where := buildWhere(visibility.As(uuid.New()), Scope{OwnDrafts: true}, &args)
	assert.NotContains(t, where, "ANY(e.tags)")
	assert.Equal(t, 1, args.Len())
}
