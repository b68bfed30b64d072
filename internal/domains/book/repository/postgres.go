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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	authormodel "bookjournal-backend/internal/domains/author/model"
	"bookjournal-backend/internal/domains/book/model"
	"bookjournal-backend/internal/shared/utils"
	"bookjournal-backend/pkg/cache"
	"bookjournal-backend/pkg/database"
)

type postgresRepository struct {
	pool     *pgxpool.Pool
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache, cacheTTL time.Duration) model.RepositoryInterface {
	if c == nil {
		c = cache.Nop{}
	}
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}
	return &postgresRepository{pool: pool, cache: c, cacheTTL: cacheTTL}
}

const (
	bookCacheKeyPrefix = "book:"
	bookListKeyPrefix  = "books:list:"

	foreignKeyViolation = "23503"
)

type bookPage struct {
	Items []model.Book `json:"items"`
	Total int          `json:"total"`
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresRepository) CreateBook(ctx context.Context, b *model.Book, authorIDs []uuid.UUID) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO books (id, title, published, created_at) VALUES ($1, $2, $3, $4)`,
			b.ID, b.Title, b.Published, b.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert book: %w", err)
		}

		batch := &pgx.Batch{}
		for pos, authorID := range authorIDs {
			batch.Queue(
				`INSERT INTO book_authors (book_id, author_id, position) VALUES ($1, $2, $3)`,
				b.ID, authorID, pos,
			)
		}
		results := tx.SendBatch(ctx, batch)
		for range authorIDs {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
					return model.ErrUnknownAuthor
				}
				return fmt.Errorf("insert book author: %w", err)
			}
		}
		return results.Close()
	})
	if err != nil {
		return err
	}

	r.invalidateListCache(ctx)
	return nil
}

// =====================================================
// READ
// =====================================================

// GetBookByID - cache-aside, authors included
func (r *postgresRepository) GetBookByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var b model.Book
	if hit, err := r.cache.Get(ctx, cacheKey, &b); err == nil && hit {
		return &b, nil
	}

	err := r.pool.QueryRow(ctx,
		`SELECT id, title, published, created_at FROM books WHERE id = $1`, id,
	).Scan(&b.ID, &b.Title, &b.Published, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	authors, err := r.authorsFor(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	b.Authors = authors[id]
	if b.Authors == nil {
		b.Authors = []authormodel.Author{}
	}

	r.store(ctx, cacheKey, b)
	return &b, nil
}

// ListBooks - title containment, ordered by title
func (r *postgresRepository) ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error) {
	cacheKey := fmt.Sprintf("%s%s:%d:%d", bookListKeyPrefix,
		url.QueryEscape(strings.ToLower(filter.Query)), filter.Limit, filter.Offset)

	var page bookPage
	if hit, err := r.cache.Get(ctx, cacheKey, &page); err == nil && hit {
		return page.Items, page.Total, nil
	}

	var args utils.Args
	where := "TRUE"
	if q := strings.TrimSpace(filter.Query); q != "" {
		where = "title ILIKE " + args.Add(utils.LikeContains(q))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE `+where, args.Values()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	query := fmt.Sprintf(`SELECT id, title, published, created_at FROM books WHERE %s ORDER BY title, id LIMIT %s OFFSET %s`,
		where, args.Add(filter.Limit), args.Add(filter.Offset))
	rows, err := r.pool.Query(ctx, query, args.Values()...)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Published, &b.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	authors, err := r.authorsFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range books {
		books[i].Authors = authors[books[i].ID]
		if books[i].Authors == nil {
			books[i].Authors = []authormodel.Author{}
		}
	}

	r.store(ctx, cacheKey, bookPage{Items: books, Total: total})
	return books, total, nil
}

// authorsFor loads authors of many books in one query, keyed by book id
func (r *postgresRepository) authorsFor(ctx context.Context, bookIDs []uuid.UUID) (map[uuid.UUID][]authormodel.Author, error) {
	out := make(map[uuid.UUID][]authormodel.Author, len(bookIDs))
	if len(bookIDs) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT ba.book_id, a.id, a.first_name, a.middle_name, a.last_name, a.aka, a.created_at
		FROM book_authors ba
		JOIN authors a ON a.id = ba.author_id
		WHERE ba.book_id = ANY($1)
		ORDER BY ba.book_id, ba.position`, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("load book authors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookID uuid.UUID
		var a authormodel.Author
		if err := rows.Scan(&bookID, &a.ID, &a.FirstName, &a.MiddleName, &a.LastName, &a.Aka, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan book author: %w", err)
		}
		out[bookID] = append(out[bookID], a)
	}
	return out, rows.Err()
}

func (r *postgresRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check book exists: %w", err)
	}
	return exists, nil
}

// =====================================================
// CACHE HELPERS
// =====================================================

func (r *postgresRepository) store(ctx context.Context, key string, value interface{}) {
	if err := r.cache.Set(ctx, key, value, r.cacheTTL); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("book cache set failed")
	}
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	if err := r.cache.DeletePattern(ctx, bookListKeyPrefix+"*"); err != nil {
		log.Debug().Err(err).Msg("book list cache invalidation failed")
	}
}
