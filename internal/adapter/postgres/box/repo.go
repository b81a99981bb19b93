// Package box implements the box registry using PostgreSQL.
// Reservation picks the tightest free box that fits and is safe under
// concurrent callers via FOR UPDATE SKIP LOCKED.
package box

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/boxswap/boxswap-backend/internal/adapter/postgres"
	"github.com/boxswap/boxswap-backend/internal/domain"
)

// Repo provides box persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new box repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getByIDSQL = `
SELECT id, label, capacity_class, occupied_by
FROM boxes
WHERE id = $1`

// array_position orders candidates by the caller-supplied class list,
// which ClassesAtLeast emits smallest-first.
const reserveSQL = `
UPDATE boxes
SET occupied_by = $1
WHERE id = (
    SELECT id
    FROM boxes
    WHERE occupied_by IS NULL
      AND capacity_class = ANY($2::text[])
    ORDER BY array_position($2::text[], capacity_class), label
    LIMIT 1
    FOR UPDATE SKIP LOCKED
)
RETURNING id, label, capacity_class, occupied_by`

const releaseSQL = `
UPDATE boxes
SET occupied_by = NULL
WHERE occupied_by = $1`

const countFreeSQL = `
SELECT capacity_class, COUNT(*)
FROM boxes
WHERE occupied_by IS NULL
GROUP BY capacity_class`

// GetByID returns a box by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Box, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	box, err := scanBox(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "box", id)
	}
	return box, nil
}

// Reserve assigns the smallest free box of at least class need to exchangeID
// and returns it. Returns domain.ErrNoCapacity when no adequate box is free.
func (r *Repo) Reserve(ctx context.Context, exchangeID uuid.UUID, need domain.CapacityClass) (*domain.Box, error) {
	classes := domain.ClassesAtLeast(need)
	if len(classes) == 0 {
		return nil, fmt.Errorf("reserve for exchange %s: %w", exchangeID, domain.ErrNoCapacity)
	}

	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = string(c)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	box, err := scanBox(querier.QueryRow(ctx, reserveSQL, exchangeID, names))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("reserve for exchange %s: %w", exchangeID, domain.ErrNoCapacity)
		}
		return nil, postgres.MapError(err, "box", exchangeID)
	}
	return box, nil
}

// Release frees every box held by exchangeID. Idempotent.
func (r *Repo) Release(ctx context.Context, exchangeID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, releaseSQL, exchangeID); err != nil {
		return postgres.MapError(err, "box", exchangeID)
	}
	return nil
}

// CountFree reports how many unoccupied boxes remain per capacity class.
// Classes with no free boxes are absent from the result.
func (r *Repo) CountFree(ctx context.Context) (map[domain.CapacityClass]int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, countFreeSQL)
	if err != nil {
		return nil, postgres.MapError(err, "box", uuid.Nil)
	}
	defer rows.Close()

	free := make(map[domain.CapacityClass]int64)
	for rows.Next() {
		var (
			class string
			n     int64
		)
		if err := rows.Scan(&class, &n); err != nil {
			return nil, postgres.MapError(err, "box", uuid.Nil)
		}
		free[domain.CapacityClass(class)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "box", uuid.Nil)
	}
	return free, nil
}

func scanBox(row pgx.Row) (*domain.Box, error) {
	var (
		box   domain.Box
		class string
	)
	if err := row.Scan(&box.ID, &box.Label, &class, &box.OccupiedBy); err != nil {
		return nil, err
	}
	box.CapacityClass = domain.CapacityClass(class)
	return &box, nil
}
