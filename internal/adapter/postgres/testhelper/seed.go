package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boxswap/boxswap-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user row and returns its ID.
func SeedUser(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	id := uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, display_name, created_at) VALUES ($1, $2, now())`,
		id, "Test User "+uniqueSuffix(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return id
}

// SeedItem creates an untagged item owned by ownerID and returns it.
func SeedItem(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, dims domain.Dimensions) domain.Item {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	item := domain.Item{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      "item-" + uniqueSuffix(),
		Size:      dims,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO items (id, owner_id, name, length_cm, width_cm, height_cm, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID, item.OwnerID, item.Name,
		item.Size.LengthCM, item.Size.WidthCM, item.Size.HeightCM,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedItem: %v", err)
	}
	return item
}

// SeedBox creates a free box of the given capacity class and returns it.
func SeedBox(t *testing.T, pool *pgxpool.Pool, class domain.CapacityClass) domain.Box {
	t.Helper()
	ctx := context.Background()

	box := domain.Box{
		ID:            uuid.New(),
		Label:         "box-" + uniqueSuffix(),
		CapacityClass: class,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO boxes (id, label, capacity_class) VALUES ($1, $2, $3)`,
		box.ID, box.Label, string(box.CapacityClass),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBox: %v", err)
	}
	return box
}

// SeedExchange creates an exchange in the given status between two fresh users
// and returns it.
func SeedExchange(t *testing.T, pool *pgxpool.Pool, status domain.ExchangeStatus) domain.Exchange {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	ex := domain.Exchange{
		ID:              uuid.New(),
		CreatorID:       SeedUser(t, pool),
		CounterpartID:   SeedUser(t, pool),
		Status:          status,
		CreatedAt:       now,
		StatusChangedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO exchanges (id, creator_id, counterpart_id, status, created_at, status_changed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		ex.ID, ex.CreatorID, ex.CounterpartID, string(ex.Status), ex.CreatedAt, ex.StatusChangedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedExchange: %v", err)
	}
	return ex
}
