package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookjournal-backend/internal/domains/user"
	"bookjournal-backend/internal/domains/visibility"
	"bookjournal-backend/pkg/database"
)

// postgresRepository là concrete implementation của user.Repository
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

const (
	uniqueViolation    = "23505"
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

// mapUniqueViolation translate 23505 thành domain sentinel theo constraint
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case usernameConstraint:
		return user.ErrUsernameTaken
	case emailConstraint:
		return user.ErrEmailAlreadyExists
	}
	return nil
}

const userColumns = `id, username, email, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ========================================
// USERS
// ========================================

func (r *postgresRepository) Create(ctx context.Context, u *user.User, p *user.Profile) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
		)
		if err != nil {
			if mapped := mapUniqueViolation(err); mapped != nil {
				return mapped
			}
			return fmt.Errorf("insert user: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO profiles (user_id, journal_visibility, default_visibility, about, updated_at)
			VALUES ($1, $2, $3, $4, $5)`,
			p.UserID, int16(p.JournalVisibility), int16(p.DefaultVisibility), p.About, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}
		return nil
	})
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, err
}

func (r *postgresRepository) FindByLogin(ctx context.Context, login string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(username) = $1 OR email = $1 LIMIT 1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(login))))
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("find user by login: %w", err)
	}
	return u, err
}

func (r *postgresRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) UpdateEmail(ctx context.Context, userID uuid.UUID, email string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET email = $2, updated_at = NOW() WHERE id = $1`, userID, email)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update email: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// ========================================
// PROFILES
// ========================================

func (r *postgresRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*user.Profile, error) {
	p := &user.Profile{UserID: userID}
	var journal, def int16
	err := r.pool.QueryRow(ctx, `
		SELECT journal_visibility, default_visibility, about, updated_at
		FROM profiles WHERE user_id = $1`, userID,
	).Scan(&journal, &def, &p.About, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.JournalVisibility = visibility.Level(journal)
	p.DefaultVisibility = visibility.Level(def)
	return p, nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, p *user.Profile) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE profiles
		SET journal_visibility = $2, default_visibility = $3, about = $4, updated_at = $5
		WHERE user_id = $1`,
		p.UserID, int16(p.JournalVisibility), int16(p.DefaultVisibility), p.About, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
