// Package accesscode implements access code persistence using PostgreSQL.
// Only code hashes are stored; a partial unique index keeps at most one live
// code per (exchange, role).
package accesscode

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/boxswap/boxswap-backend/internal/adapter/postgres"
	"github.com/boxswap/boxswap-backend/internal/domain"
)

// Repo provides access code persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new access code repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, exchange_id, role, code_hash, issued_at, expires_at, consumed_at, revoked_at`

const insertSQL = `
INSERT INTO access_codes (` + columns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const getLiveSQL = `
SELECT ` + columns + `
FROM access_codes
WHERE exchange_id = $1 AND role = $2
  AND consumed_at IS NULL AND revoked_at IS NULL`

const revokeLiveSQL = `
UPDATE access_codes
SET revoked_at = $3
WHERE exchange_id = $1 AND role = $2
  AND consumed_at IS NULL AND revoked_at IS NULL`

const consumeSQL = `
UPDATE access_codes
SET consumed_at = $2
WHERE id = $1
  AND consumed_at IS NULL AND revoked_at IS NULL`

const purgeDeadSQL = `
DELETE FROM access_codes
WHERE (consumed_at IS NOT NULL OR revoked_at IS NOT NULL OR expires_at < now())
  AND issued_at < $1`

// Insert stores a new access code.
func (r *Repo) Insert(ctx context.Context, code *domain.AccessCode) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertSQL,
		code.ID, code.ExchangeID, string(code.Role), code.CodeHash,
		code.IssuedAt, code.ExpiresAt, code.ConsumedAt, code.RevokedAt,
	)
	if err != nil {
		return postgres.MapError(err, "access_code", code.ID)
	}
	return nil
}

// GetLive returns the unconsumed, unrevoked code for (exchangeID, role).
// Returns domain.ErrNotFound if none exists. Expiry is not checked here;
// the caller compares ExpiresAt against its own clock.
func (r *Repo) GetLive(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole) (*domain.AccessCode, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		code domain.AccessCode
		rl   string
	)
	err := querier.QueryRow(ctx, getLiveSQL, exchangeID, string(role)).Scan(
		&code.ID, &code.ExchangeID, &rl, &code.CodeHash,
		&code.IssuedAt, &code.ExpiresAt, &code.ConsumedAt, &code.RevokedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "access_code", exchangeID)
	}
	code.Role = domain.OpenRole(rl)
	return &code, nil
}

// RevokeLive marks the live code for (exchangeID, role) as revoked.
// A no-op when no live code exists.
func (r *Repo) RevokeLive(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole, now time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, revokeLiveSQL, exchangeID, string(role), now); err != nil {
		return postgres.MapError(err, "access_code", exchangeID)
	}
	return nil
}

// Consume marks the code as used. The conditional update makes consumption
// at-most-once: a second attempt affects zero rows and returns
// domain.ErrInvalidCode.
func (r *Repo) Consume(ctx context.Context, id uuid.UUID, now time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, consumeSQL, id, now)
	if err != nil {
		return postgres.MapError(err, "access_code", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("access_code %s: already consumed or revoked: %w", id, domain.ErrInvalidCode)
	}
	return nil
}

// PurgeDead deletes consumed, revoked, and expired codes issued before cutoff.
// Returns the number of rows removed.
func (r *Repo) PurgeDead(ctx context.Context, cutoff time.Time) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, purgeDeadSQL, cutoff)
	if err != nil {
		return 0, postgres.MapError(err, "access_code", uuid.Nil)
	}
	return tag.RowsAffected(), nil
}
