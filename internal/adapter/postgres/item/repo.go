// Package item implements the item ledger using PostgreSQL.
// Tagging an item writes the exchange ID into its row; an item tagged to one
// exchange cannot be tagged to another until the tag is cleared.
package item

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/boxswap/boxswap-backend/internal/adapter/postgres"
	"github.com/boxswap/boxswap-backend/internal/domain"
)

// Repo provides item persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new item repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, owner_id, name, length_cm, width_cm, height_cm, exchange_id, created_at, updated_at`

const getByIDsSQL = `
SELECT ` + columns + `
FROM items
WHERE id = ANY($1::uuid[])
ORDER BY id`

// Tagging only succeeds on rows that are untagged or already tagged to this
// exchange, so a retried request is a no-op rather than a conflict.
const tagSQL = `
UPDATE items
SET exchange_id = $1, updated_at = now()
WHERE id = ANY($2::uuid[])
  AND (exchange_id IS NULL OR exchange_id = $1)`

const listByExchangeSQL = `
SELECT ` + columns + `
FROM items
WHERE exchange_id = $1
ORDER BY id`

const clearTagsSQL = `
UPDATE items
SET exchange_id = NULL, updated_at = now()
WHERE exchange_id = $1`

// GetByIDs returns the items with the given IDs in ID order.
// Missing IDs are simply absent from the result; callers compare lengths.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Item, error) {
	if len(ids) == 0 {
		return []domain.Item{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByIDsSQL, ids)
	if err != nil {
		return nil, postgres.MapError(err, "item", uuid.Nil)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		var it domain.Item
		err := rows.Scan(
			&it.ID, &it.OwnerID, &it.Name,
			&it.Size.LengthCM, &it.Size.WidthCM, &it.Size.HeightCM,
			&it.ExchangeID, &it.CreatedAt, &it.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "item", uuid.Nil)
	}

	return items, nil
}

// ListByExchange returns every item committed to exchangeID in ID order.
func (r *Repo) ListByExchange(ctx context.Context, exchangeID uuid.UUID) ([]domain.Item, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByExchangeSQL, exchangeID)
	if err != nil {
		return nil, postgres.MapError(err, "item", exchangeID)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		var it domain.Item
		err := rows.Scan(
			&it.ID, &it.OwnerID, &it.Name,
			&it.Size.LengthCM, &it.Size.WidthCM, &it.Size.HeightCM,
			&it.ExchangeID, &it.CreatedAt, &it.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "item", exchangeID)
	}

	return items, nil
}

// Tag marks every item in ids as committed to exchangeID. If any item is
// already committed to a different exchange, nothing else is written and
// domain.ErrItemConflict is returned.
func (r *Repo) Tag(ctx context.Context, exchangeID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, tagSQL, exchangeID, ids)
	if err != nil {
		return postgres.MapError(err, "item", exchangeID)
	}
	if tag.RowsAffected() != int64(len(ids)) {
		return fmt.Errorf("tag %d of %d items for exchange %s: %w",
			tag.RowsAffected(), len(ids), exchangeID, domain.ErrItemConflict)
	}
	return nil
}

// ClearTags releases every item committed to exchangeID. Idempotent.
func (r *Repo) ClearTags(ctx context.Context, exchangeID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, clearTagsSQL, exchangeID); err != nil {
		return postgres.MapError(err, "item", exchangeID)
	}
	return nil
}
