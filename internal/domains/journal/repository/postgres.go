package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"bookjournal-backend/internal/domains/journal/model"
	"bookjournal-backend/internal/domains/visibility"
	"bookjournal-backend/internal/shared/utils"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const entryColumns = `
	e.id, e.author_id, e.book_id, e.title, e.body, e.section, e.chapter, e.tags,
	e.status, e.visibility, e.published_at, e.created_at, e.updated_at,
	u.username, b.title, p.journal_visibility`

const entryFrom = `
	FROM entries e
	JOIN users u ON u.id = e.author_id
	JOIN profiles p ON p.user_id = e.author_id
	JOIN books b ON b.id = e.book_id`

func scanEntry(row pgx.Row) (*model.Entry, error) {
	e := &model.Entry{}
	var tags pq.StringArray
	var status string
	var vis, journal int16
	err := row.Scan(
		&e.ID, &e.AuthorID, &e.BookID, &e.Title, &e.Body, &e.Section, &e.Chapter, &tags,
		&status, &vis, &e.PublishedAt, &e.CreatedAt, &e.UpdatedAt,
		&e.AuthorUsername, &e.BookTitle, &journal,
	)
	if err != nil {
		return nil, err
	}
	e.Tags = []string(tags)
	if e.Tags == nil {
		e.Tags = []string{}
	}
	e.Status = model.Status(status)
	e.Visibility = visibility.Level(vis)
	e.JournalVisibility = visibility.Level(journal)
	return e, nil
}

// =====================================================
// WRITES
// =====================================================

func (r *postgresRepository) Create(ctx context.Context, e *model.Entry) error {
	query := `
		INSERT INTO entries (
			id, author_id, book_id, title, body, section, chapter, tags,
			status, visibility, published_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.pool.Exec(ctx, query,
		e.ID, e.AuthorID, e.BookID, e.Title, e.Body, e.Section, e.Chapter, pq.Array(e.Tags),
		string(e.Status), int16(e.Visibility), e.PublishedAt, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

// Update ghi lại các field mutable; author_id/book_id không bao giờ đổi
func (r *postgresRepository) Update(ctx context.Context, e *model.Entry) error {
	query := `
		UPDATE entries
		SET title = $2, body = $3, section = $4, chapter = $5, tags = $6,
		    status = $7, visibility = $8, published_at = $9, updated_at = $10
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		e.ID, e.Title, e.Body, e.Section, e.Chapter, pq.Array(e.Tags),
		string(e.Status), int16(e.Visibility), e.PublishedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEntryNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEntryNotFound
	}
	return nil
}

// =====================================================
// READS
// =====================================================

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Entry, error) {
	query := `SELECT` + entryColumns + entryFrom + ` WHERE e.id = $1`
	e, err := scanEntry(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return e, nil
}

// buildWhere combines scope filters with the visibility predicate
func buildWhere(viewer visibility.Viewer, scope Scope, args *utils.Args) string {
	clauses := []string{visiblePredicate(viewer, args, scope.OwnDrafts)}

	if scope.AuthorID != nil {
		clauses = append(clauses, "e.author_id = "+args.Add(*scope.AuthorID))
	}
	if scope.BookID != nil {
		clauses = append(clauses, "e.book_id = "+args.Add(*scope.BookID))
	}
	if scope.Tag != "" {
		clauses = append(clauses, args.Add(scope.Tag)+" = ANY(e.tags)")
	}
	if q := strings.TrimSpace(scope.Query); q != "" {
		p := args.Add(utils.LikeContains(q))
		clauses = append(clauses, "("+utils.JoinWithOr([]string{
			"e.title ILIKE " + p,
			"e.body ILIKE " + p,
			"b.title ILIKE " + p,
		})+")")
	}
	return utils.JoinWithAnd(clauses)
}

func (r *postgresRepository) ListVisible(ctx context.Context, viewer visibility.Viewer, scope Scope) ([]model.Entry, int, error) {
	var args utils.Args
	where := buildWhere(viewer, scope, &args)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+entryFrom+` WHERE `+where, args.Values()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count entries: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s %s WHERE %s ORDER BY e.published_at DESC, e.id LIMIT %s OFFSET %s`,
		entryColumns, entryFrom, where, args.Add(scope.Limit), args.Add(scope.Offset))
	rows, err := r.pool.Query(ctx, query, args.Values()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *postgresRepository) Tags(ctx context.Context, authorID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT t
		FROM entries e, unnest(e.tags) AS t
		WHERE e.author_id = $1
		ORDER BY t`, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := make([]string, 0)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
