package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookjournal-backend/internal/domains/follow/model"
	"bookjournal-backend/pkg/database"
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

const requestColumns = `
	fr.id, fr.from_user_id, fr.to_user_id, fr.message, fr.status,
	fr.requested_at, fr.updated_at`

const uniqueViolation = "23505"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner, extra ...any) (*model.FollowRequest, error) {
	req := &model.FollowRequest{}
	var status string
	dest := []any{
		&req.ID, &req.FromUserID, &req.ToUserID, &req.Message, &status,
		&req.RequestedAt, &req.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	req.Status = model.RequestStatus(status)
	return req, nil
}

// =====================================================
// REQUESTS
// =====================================================

func (r *postgresRepository) CreateRequest(ctx context.Context, req *model.FollowRequest) error {
	query := `
		INSERT INTO follow_requests (id, from_user_id, to_user_id, message, status, requested_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		req.ID, req.FromUserID, req.ToUserID, req.Message, string(req.Status),
		req.RequestedAt, req.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrDuplicateRequest
		}
		return fmt.Errorf("failed to create follow request: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetRequest(ctx context.Context, id uuid.UUID) (*model.FollowRequest, error) {
	query := `SELECT` + requestColumns + ` FROM follow_requests fr WHERE fr.id = $1`

	req, err := scanRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get follow request: %w", err)
	}
	return req, nil
}

func (r *postgresRepository) LatestOutstanding(ctx context.Context, from, to uuid.UUID) (*model.FollowRequest, error) {
	query := `SELECT` + requestColumns + `
		FROM follow_requests fr
		WHERE fr.from_user_id = $1 AND fr.to_user_id = $2 AND fr.status = $3
		ORDER BY fr.requested_at DESC
		LIMIT 1
	`
	req, err := scanRequest(r.pool.QueryRow(ctx, query, from, to, string(model.StatusOutstanding)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get outstanding request: %w", err)
	}
	return req, nil
}

func (r *postgresRepository) ListByRecipient(ctx context.Context, to uuid.UUID, status model.RequestStatus) ([]model.FollowRequest, error) {
	return r.listRequests(ctx, "fr.to_user_id", to, status)
}

func (r *postgresRepository) ListBySender(ctx context.Context, from uuid.UUID, status model.RequestStatus) ([]model.FollowRequest, error) {
	return r.listRequests(ctx, "fr.from_user_id", from, status)
}

// column chỉ nhận hằng số nội bộ, không bao giờ từ input
func (r *postgresRepository) listRequests(ctx context.Context, column string, user uuid.UUID, status model.RequestStatus) ([]model.FollowRequest, error) {
	query := `SELECT` + requestColumns + `, fu.username, tu.username
		FROM follow_requests fr
		JOIN users fu ON fu.id = fr.from_user_id
		JOIN users tu ON tu.id = fr.to_user_id
		WHERE ` + column + ` = $1 AND fr.status = $2
		ORDER BY fr.requested_at DESC, fr.id DESC
	`
	rows, err := r.pool.Query(ctx, query, user, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list follow requests: %w", err)
	}
	defer rows.Close()

	out := make([]model.FollowRequest, 0)
	for rows.Next() {
		var fromName, toName string
		req, err := scanRequest(rows, &fromName, &toName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan follow request: %w", err)
		}
		req.FromUsername = fromName
		req.ToUsername = toName
		out = append(out, *req)
	}
	return out, rows.Err()
}

// Resolve: compare-and-swap trên status trong một transaction cùng với insert edge
func (r *postgresRepository) Resolve(ctx context.Context, id uuid.UUID, next model.RequestStatus, at time.Time) (*model.FollowRequest, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.FollowRequest, error) {
		query := `
			UPDATE follow_requests fr
			SET status = $2, updated_at = $3
			WHERE fr.id = $1 AND fr.status = $4
			RETURNING` + requestColumns

		req, err := scanRequest(tx.QueryRow(ctx, query, id, string(next), at, string(model.StatusOutstanding)))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrAlreadyResolved
			}
			return nil, fmt.Errorf("failed to resolve follow request: %w", err)
		}

		if next == model.StatusAccepted {
			_, err = tx.Exec(ctx, `
				INSERT INTO follow_edges (from_user_id, to_user_id, created_at)
				VALUES ($1, $2, $3)
				ON CONFLICT (from_user_id, to_user_id) DO NOTHING
			`, req.FromUserID, req.ToUserID, at)
			if err != nil {
				return nil, fmt.Errorf("failed to create follow edge: %w", err)
			}
		}
		return req, nil
	})
}

// =====================================================
// EDGES
// =====================================================

func (r *postgresRepository) IsFollowing(ctx context.Context, from, to uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM follow_edges WHERE from_user_id = $1 AND to_user_id = $2)
	`, from, to).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check follow edge: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) DeleteEdge(ctx context.Context, from, to uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM follow_edges WHERE from_user_id = $1 AND to_user_id = $2`, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to delete follow edge: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) ListFollowing(ctx context.Context, user uuid.UUID) ([]model.Connection, error) {
	return r.listConnections(ctx, `
		SELECT u.id, u.username, e.created_at
		FROM follow_edges e
		JOIN users u ON u.id = e.to_user_id
		WHERE e.from_user_id = $1
		ORDER BY u.username
	`, user)
}

func (r *postgresRepository) ListFollowers(ctx context.Context, user uuid.UUID) ([]model.Connection, error) {
	return r.listConnections(ctx, `
		SELECT u.id, u.username, e.created_at
		FROM follow_edges e
		JOIN users u ON u.id = e.from_user_id
		WHERE e.to_user_id = $1
		ORDER BY u.username
	`, user)
}

func (r *postgresRepository) listConnections(ctx context.Context, query string, user uuid.UUID) ([]model.Connection, error) {
	rows, err := r.pool.Query(ctx, query, user)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	defer rows.Close()

	out := make([]model.Connection, 0)
	for rows.Next() {
		var c model.Connection
		if err := rows.Scan(&c.UserID, &c.Username, &c.Since); err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
