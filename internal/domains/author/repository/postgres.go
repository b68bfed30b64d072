package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"bookjournal-backend/internal/domains/author/model"
	"bookjournal-backend/internal/shared/utils"
	"bookjournal-backend/pkg/cache"
)

// postgresRepository implements RepositoryInterface
// Uses pgxpool for PostgreSQL and the cache layer for reference data
type postgresRepository struct {
	pool     *pgxpool.Pool
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache, cacheTTL time.Duration) RepositoryInterface {
	if c == nil {
		c = cache.Nop{}
	}
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &postgresRepository{pool: pool, cache: c, cacheTTL: cacheTTL}
}

// Cache key constants
const (
	authorCacheKeyPrefix = "author:"
	authorListKeyPrefix  = "authors:list:"
	defaultCacheTTL      = 15 * time.Minute
)

const authorColumns = `id, first_name, middle_name, last_name, aka, created_at`

type authorPage struct {
	Items []model.Author `json:"items"`
	Total int            `json:"total"`
}

func scanAuthor(row pgx.Row, a *model.Author) error {
	return row.Scan(&a.ID, &a.FirstName, &a.MiddleName, &a.LastName, &a.Aka, &a.CreatedAt)
}

// Create inserts new author
func (r *postgresRepository) Create(ctx context.Context, a *model.Author) error {
	query := `
		INSERT INTO authors (id, first_name, middle_name, last_name, aka, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.pool.Exec(ctx, query, a.ID, a.FirstName, a.MiddleName, a.LastName, a.Aka, a.CreatedAt); err != nil {
		return fmt.Errorf("failed to create author: %w", err)
	}

	// Invalidate list cache after creation
	r.invalidateListCache(ctx)
	return nil
}

// GetByID retrieves author by UUID with caching
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var a model.Author
	if hit, err := r.cache.Get(ctx, cacheKey, &a); err == nil && hit {
		return &a, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`
	if err := scanAuthor(r.pool.QueryRow(ctx, query, id), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	r.store(ctx, cacheKey, a)
	return &a, nil
}

// List containment search, ordered by last name (authors are immutable so pages cache well)
func (r *postgresRepository) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int, error) {
	cacheKey := fmt.Sprintf("%s%s:%d:%d", authorListKeyPrefix,
		url.QueryEscape(strings.ToLower(filter.Query)), filter.Limit, filter.Offset)

	var page authorPage
	if hit, err := r.cache.Get(ctx, cacheKey, &page); err == nil && hit {
		return page.Items, page.Total, nil
	}

	var args utils.Args
	where := "TRUE"
	if q := strings.TrimSpace(filter.Query); q != "" {
		p := args.Add(utils.LikeContains(q))
		where = "(" + utils.JoinWithOr([]string{
			"first_name ILIKE " + p,
			"middle_name ILIKE " + p,
			"last_name ILIKE " + p,
			"aka ILIKE " + p,
		}) + ")"
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors WHERE `+where, args.Values()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM authors WHERE %s ORDER BY last_name, first_name, id LIMIT %s OFFSET %s`,
		authorColumns, where, args.Add(filter.Limit), args.Add(filter.Offset))
	rows, err := r.pool.Query(ctx, query, args.Values()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0)
	for rows.Next() {
		var a model.Author
		if err := scanAuthor(rows, &a); err != nil {
			return nil, 0, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	r.store(ctx, cacheKey, authorPage{Items: authors, Total: total})
	return authors, total, nil
}

// BooksByAuthor - không cache vì book mới có thể được thêm bất kỳ lúc nào
func (r *postgresRepository) BooksByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.BookSummary, error) {
	query := `
		SELECT b.id, b.title, b.published
		FROM books b
		JOIN book_authors ba ON ba.book_id = b.id
		WHERE ba.author_id = $1
		ORDER BY b.title, b.id
	`
	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list books by author: %w", err)
	}
	defer rows.Close()

	books := make([]model.BookSummary, 0)
	for rows.Next() {
		var b model.BookSummary
		if err := rows.Scan(&b.ID, &b.Title, &b.Published); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// ========================================
// CACHE HELPERS
// ========================================

// store ghi cache; lỗi cache không bao giờ làm fail request
func (r *postgresRepository) store(ctx context.Context, key string, value interface{}) {
	if err := r.cache.Set(ctx, key, value, r.cacheTTL); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("author cache set failed")
	}
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	if err := r.cache.DeletePattern(ctx, authorListKeyPrefix+"*"); err != nil {
		log.Debug().Err(err).Msg("author list cache invalidation failed")
	}
}
