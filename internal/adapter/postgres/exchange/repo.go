// Package exchange implements the Exchange repository using PostgreSQL.
// It owns the exchanges table: the state-machine row per exchange, including
// the assigned box reference and the pickup deadline.
package exchange

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/boxswap/boxswap-backend/internal/adapter/postgres"
	"github.com/boxswap/boxswap-backend/internal/domain"
)

// Repo provides exchange persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new exchange repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const columns = `id, creator_id, counterpart_id, status, box_id, deadline_at, created_at, status_changed_at`

const getByIDSQL = `
SELECT ` + columns + `
FROM exchanges
WHERE id = $1`

const getByIDForUpdateSQL = getByIDSQL + `
FOR UPDATE`

const createSQL = `
INSERT INTO exchanges (` + columns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const updateSQL = `
UPDATE exchanges
SET status = $2, box_id = $3, deadline_at = $4, status_changed_at = $5
WHERE id = $1 AND status = $6`

const listOverdueIDsSQL = `
SELECT id
FROM exchanges
WHERE status IN ('BOX_ASSIGNED', 'AWAITING_PICKUP')
  AND deadline_at IS NOT NULL
  AND deadline_at <= $1
ORDER BY deadline_at
LIMIT $2`

// Create inserts a new exchange row.
func (r *Repo) Create(ctx context.Context, ex *domain.Exchange) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createSQL,
		ex.ID, ex.CreatorID, ex.CounterpartID, string(ex.Status),
		ex.BoxID, ex.DeadlineAt, ex.CreatedAt, ex.StatusChangedAt,
	)
	if err != nil {
		return postgres.MapError(err, "exchange", ex.ID)
	}
	return nil
}

// GetByID returns an exchange by primary key.
// Returns domain.ErrNotFound if no such exchange exists.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exchange, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)
	ex, err := scanExchange(row)
	if err != nil {
		return nil, postgres.MapError(err, "exchange", id)
	}
	return ex, nil
}

// GetByIDForUpdate returns an exchange by primary key with a row lock.
// It must be called inside a transaction; the lock serializes all mutating
// operations on the same exchange until commit.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Exchange, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDForUpdateSQL, id)
	ex, err := scanExchange(row)
	if err != nil {
		return nil, postgres.MapError(err, "exchange", id)
	}
	return ex, nil
}

// Update writes the mutable fields of an exchange, guarded by the status the
// caller read. Zero rows affected means the row moved under us and the caller's
// view is stale; that surfaces as domain.ErrStateConflict.
func (r *Repo) Update(ctx context.Context, ex *domain.Exchange, expect domain.ExchangeStatus) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateSQL,
		ex.ID, string(ex.Status), ex.BoxID, ex.DeadlineAt, ex.StatusChangedAt, string(expect),
	)
	if err != nil {
		return postgres.MapError(err, "exchange", ex.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("exchange %s: update from %s: %w", ex.ID, expect, domain.ErrStateConflict)
	}
	return nil
}

// List returns exchanges visible to a user, newest first.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, f domain.ExchangeFilter) ([]*domain.Exchange, error) {
	query := listQuery(columns, f)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "exchange", uuid.Nil)
	}
	defer rows.Close()

	exchanges := []*domain.Exchange{}
	for rows.Next() {
		ex, err := scanExchange(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exchange: %w", err)
		}
		exchanges = append(exchanges, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "exchange", uuid.Nil)
	}

	return exchanges, nil
}

// ListIDs returns only the IDs of exchanges matching the filter, newest first.
func (r *Repo) ListIDs(ctx context.Context, f domain.ExchangeFilter) ([]uuid.UUID, error) {
	query := listQuery("id", f)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list ids query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "exchange", uuid.Nil)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan exchange id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "exchange", uuid.Nil)
	}

	return ids, nil
}

// ListOverdueIDs returns IDs of exchanges whose pickup deadline has passed
// as of now, oldest deadline first, up to limit.
func (r *Repo) ListOverdueIDs(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listOverdueIDsSQL, now, limit)
	if err != nil {
		return nil, postgres.MapError(err, "exchange", uuid.Nil)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan overdue id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "exchange", uuid.Nil)
	}

	return ids, nil
}

func listQuery(cols string, f domain.ExchangeFilter) sq.SelectBuilder {
	query := builder.
		Select(cols).
		From("exchanges").
		Where(sq.Or{
			sq.Eq{"creator_id": f.UserID},
			sq.Eq{"counterpart_id": f.UserID},
		}).
		OrderBy("created_at DESC", "id")

	if f.Status != nil {
		query = query.Where(sq.Eq{"status": string(*f.Status)})
	}
	if f.Limit > 0 {
		query = query.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		query = query.Offset(uint64(f.Offset))
	}

	return query
}

func scanExchange(row pgx.Row) (*domain.Exchange, error) {
	var (
		ex     domain.Exchange
		status string
	)
	err := row.Scan(
		&ex.ID, &ex.CreatorID, &ex.CounterpartID, &status,
		&ex.BoxID, &ex.DeadlineAt, &ex.CreatedAt, &ex.StatusChangedAt,
	)
	if err != nil {
		return nil, err
	}
	ex.Status = domain.ExchangeStatus(status)
	return &ex, nil
}
