package repository

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookjournal-backend/internal/domains/journal/model"
	"bookjournal-backend/internal/domains/visibility"
	"bookjournal-backend/internal/shared/utils"
)

// ========================================
// PREDICATE EVALUATOR
// ========================================
// Evaluates the WHERE fragment rendered by visiblePredicate against one row,
// with Postgres semantics for the subset of SQL it emits: parentheses,
// AND/OR, = and >= comparisons, and the follow_edges EXISTS subquery.

type row struct {
	authorID  uuid.UUID
	journal   visibility.Level
	entry     visibility.Level
	status    model.Status
	following bool // viewer -> author edge exists
}

type evaluator struct {
	t      *testing.T
	tokens []string
	pos    int
	row    row
	args   []interface{}
}

func tokenize(sql string) []string {
	sql = strings.NewReplacer("(", " ( ", ")", " ) ").Replace(sql)
	return strings.Fields(sql)
}

func evalPredicate(t *testing.T, sql string, args []interface{}, r row) bool {
	t.Helper()
	ev := &evaluator{t: t, tokens: tokenize(sql), row: r, args: args}
	got := ev.expr()
	require.Equal(t, len(ev.tokens), ev.pos, "trailing tokens in %q", sql)
	return got
}

func (ev *evaluator) peek() string {
	if ev.pos >= len(ev.tokens) {
		return ""
	}
	return ev.tokens[ev.pos]
}

func (ev *evaluator) next() string {
	tok := ev.peek()
	require.NotEmpty(ev.t, tok, "unexpected end of predicate")
	ev.pos++
	return tok
}

func (ev *evaluator) expect(tok string) {
	require.Equal(ev.t, tok, ev.next())
}

// expr evaluates every operand (no short circuit) so the whole fragment is parsed.
func (ev *evaluator) expr() bool {
	result := ev.term()
	for ev.peek() == "OR" {
		ev.next()
		rhs := ev.term()
		result = result || rhs
	}
	return result
}

func (ev *evaluator) term() bool {
	result := ev.factor()
	for ev.peek() == "AND" {
		ev.next()
		rhs := ev.factor()
		result = result && rhs
	}
	return result
}

func (ev *evaluator) factor() bool {
	switch ev.peek() {
	case "(":
		ev.next()
		v := ev.expr()
		ev.expect(")")
		return v
	case "EXISTS":
		ev.next()
		return ev.exists()
	}

	lhs := ev.operand(ev.next())
	op := ev.next()
	rhs := ev.operand(ev.next())

	switch op {
	case "=":
		return lhs == rhs
	case ">=":
		l, lok := lhs.(int)
		r, rok := rhs.(int)
		require.True(ev.t, lok && rok, ">= on non-integers %v %v", lhs, rhs)
		return l >= r
	}
	ev.t.Fatalf("unsupported operator %q", op)
	return false
}

// exists only understands the follow edge lookup from viewer to author.
func (ev *evaluator) exists() bool {
	ev.expect("(")
	var body []string
	for depth := 1; ; {
		tok := ev.next()
		if tok == "(" {
			depth++
		}
		if tok == ")" {
			depth--
			if depth == 0 {
				break
			}
		}
		body = append(body, tok)
	}

	sub := strings.Join(body, " ")
	require.True(ev.t, strings.HasPrefix(sub, "SELECT 1 FROM follow_edges fe WHERE fe.from_user_id = $"), sub)
	require.True(ev.t, strings.HasSuffix(sub, " AND fe.to_user_id = e.author_id"), sub)

	placeholder := strings.TrimSuffix(strings.TrimPrefix(sub, "SELECT 1 FROM follow_edges fe WHERE fe.from_user_id = "), " AND fe.to_user_id = e.author_id")
	require.IsType(ev.t, uuid.UUID{}, ev.operand(placeholder), "follower must be bound to the viewer id")
	return ev.row.following
}

func (ev *evaluator) operand(tok string) interface{} {
	switch tok {
	case "p.journal_visibility":
		return int(ev.row.journal)
	case "e.visibility":
		return int(ev.row.entry)
	case "e.status":
		return string(ev.row.status)
	case "e.author_id":
		return ev.row.authorID
	}
	if strings.HasPrefix(tok, "'") && strings.HasSuffix(tok, "'") {
		return strings.Trim(tok, "'")
	}
	if strings.HasPrefix(tok, "$") {
		n, err := strconv.Atoi(tok[1:])
		require.NoError(ev.t, err)
		require.True(ev.t, n >= 1 && n <= len(ev.args), "placeholder %s out of range", tok)
		return ev.args[n-1]
	}
	n, err := strconv.Atoi(tok)
	require.NoError(ev.t, err, "unknown operand %q", tok)
	return n
}

// ========================================
// SQL PREDICATE == GO POLICY
// ========================================

func TestVisiblePredicate_MatchesPolicy(t *testing.T) {
	viewerID, author := uuid.New(), uuid.New()
	levels := []visibility.Level{visibility.Private, visibility.Followers, visibility.Public}
	statuses := []model.Status{model.StatusDraft, model.StatusPublished}

	viewers := map[string]visibility.Viewer{
		"anonymous": visibility.Anonymous,
		"viewer":    visibility.As(viewerID),
	}
	authors := map[string]uuid.UUID{
		"self":  viewerID,
		"other": author,
	}

	for _, ownDrafts := range []bool{true, false} {
		for vname, viewer := range viewers {
			var args utils.Args
			args.Add("unrelated")
			sql := visiblePredicate(viewer, &args, ownDrafts)

			for aname, authorID := range authors {
				for _, following := range []bool{false, true} {
					if following && (!viewer.Authenticated() || authorID == viewerID) {
						continue
					}
					for _, journal := range levels {
						for _, vis := range levels {
							for _, status := range statuses {
								e := &model.Entry{AuthorID: authorID, JournalVisibility: journal, Visibility: vis, Status: status}
								tier := visibility.ClassifyJournalAccess(viewer, e.Journal(), following)
								want := visibility.ContentVisible(viewer, e, tier)
								if !ownDrafts {
									want = want && e.IsPublished()
								}

								name := fmt.Sprintf("ownDrafts=%t/%s/%s/following=%t/journal=%s/entry=%s/%s",
									ownDrafts, vname, aname, following, journal, vis, status)
								got := evalPredicate(t, sql, args.Values(), row{
									authorID:  authorID,
									journal:   journal,
									entry:     vis,
									status:    status,
									following: following,
								})
								assert.Equal(t, want, got, name)
							}
						}
					}
				}
			}
		}
	}
}
