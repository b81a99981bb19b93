package exchange

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/boxswap/boxswap-backend/internal/domain"
	"github.com/boxswap/boxswap-backend/pkg/ctxutil"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type mocks struct {
	exchanges *exchangeRepoMock
	items     *itemLedgerMock
	boxes     *boxRegistryMock
	codes     *codeIssuerMock
	notify    *notifierMock
	tx        *txManagerMock
}

// newTestService wires a service against mocks with a pinned clock.
// The tx mock runs the callback directly and the notifier swallows
// everything, so tests only stub what they exercise.
func newTestService(t *testing.T) (*Service, *mocks) {
	t.Helper()

	m := &mocks{
		exchanges: &exchangeRepoMock{},
		items:     &itemLedgerMock{},
		boxes:     &boxRegistryMock{},
		codes:     &codeIssuerMock{},
		notify:    &notifierMock{},
		tx:        &txManagerMock{},
	}
	m.tx.RunInTxFunc = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}
	m.notify.NotifyFunc = func(ctx context.Context, userID uuid.UUID, text string) error {
		return nil
	}
	m.codes.LiveExpiryFunc = func(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole) (*time.Time, error) {
		return nil, nil
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewService(log, m.exchanges, m.items, m.boxes, m.codes, m.notify, m.tx, Config{
		PickupDeadline: 72 * time.Hour,
		MaxItems:       5,
	})
	s.now = func() time.Time { return testNow }
	return s, m
}

func authCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

// testExchange builds an exchange fixture in the given status. Statuses past
// ITEMS_COMMITTED carry a box and a future deadline.
func testExchange(status domain.ExchangeStatus) *domain.Exchange {
	ex := &domain.Exchange{
		ID:              uuid.New(),
		CreatorID:       uuid.New(),
		CounterpartID:   uuid.New(),
		Status:          status,
		CreatedAt:       testNow.Add(-time.Hour),
		StatusChangedAt: testNow.Add(-time.Hour),
	}
	switch status {
	case domain.StatusBoxAssigned, domain.StatusAwaitingPickup, domain.StatusCompleted:
		boxID := uuid.New()
		deadline := testNow.Add(24 * time.Hour)
		ex.BoxID = &boxID
		ex.DeadlineAt = &deadline
	}
	return ex
}

// stubLocked makes the repo mock serve ex for locked reads and accept any
// status-guarded update.
func stubLocked(m *mocks, ex *domain.Exchange) {
	m.exchanges.GetByIDForUpdateFunc = func(ctx context.Context, id uuid.UUID) (*domain.Exchange, error) {
		if id != ex.ID {
			return nil, domain.ErrNotFound
		}
		return ex, nil
	}
	m.exchanges.UpdateFunc = func(ctx context.Context, ex *domain.Exchange, expect domain.ExchangeStatus) error {
		return nil
	}
}
