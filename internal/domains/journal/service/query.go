package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"bookjournal-backend/internal/domains/journal/model"
	"bookjournal-backend/internal/domains/visibility"
	"bookjournal-backend/internal/infrastructure/metrics"
)

// ========================================
// JOURNAL QUERY BUILDER
// ========================================

// Filter narrows a candidate set; filters compose with AND.
type Filter func(e *model.Entry) bool

func ByBook(bookID uuid.UUID) Filter {
	return func(e *model.Entry) bool { return e.BookID == bookID }
}

// ByTag expects a normalised tag
func ByTag(tag string) Filter {
	return func(e *model.Entry) bool { return e.HasTag(tag) }
}

// ByText is case-insensitive containment over title, body and book title,
// using Unicode case folding. For in-memory candidate sets only: database
// backed listings match text in SQL and must not be filtered again.
func ByText(query string) Filter {
	q := fold(strings.TrimSpace(query))
	return func(e *model.Entry) bool {
		if q == "" {
			return true
		}
		return strings.Contains(fold(e.Title), q) ||
			strings.Contains(fold(e.Body), q) ||
			strings.Contains(fold(e.BookTitle), q)
	}
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// QueryBuilder applies the visibility policy to a candidate set.
type QueryBuilder struct {
	policy  *visibility.Policy
	metrics metrics.Recorder
}

func NewQueryBuilder(policy *visibility.Policy, recorder metrics.Recorder) *QueryBuilder {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &QueryBuilder{policy: policy, metrics: recorder}
}

// VisibleEntries keeps the candidates viewer may see that pass every filter,
// in their original order. One follow lookup per distinct author.
func (q *QueryBuilder) VisibleEntries(ctx context.Context, viewer visibility.Viewer, candidates []model.Entry, filters ...Filter) ([]model.Entry, error) {
	session := q.policy.Session(viewer)
	out := make([]model.Entry, 0, len(candidates))

	for i := range candidates {
		e := &candidates[i]
		if !matches(e, filters) {
			continue
		}
		ok, err := session.IsVisible(ctx, e)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, *e)
		}
	}

	q.metrics.RecordEntriesFiltered(len(candidates), len(out))
	return out, nil
}

func matches(e *model.Entry, filters []Filter) bool {
	for _, f := range filters {
		if !f(e) {
			return false
		}
	}
	return true
}
