package exchange

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/boxswap/boxswap-backend/internal/domain"
)

func overdueExchange() *domain.Exchange {
	ex := testExchange(domain.StatusBoxAssigned)
	past := testNow.Add(-time.Hour)
	ex.DeadlineAt = &past
	return ex
}

func TestExpireOverdue(t *testing.T) {
	s, m := newTestService(t)

	first := overdueExchange()
	second := overdueExchange()
	byID := map[uuid.UUID]*domain.Exchange{first.ID: first, second.ID: second}

	m.exchanges.ListOverdueIDsFunc = func(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
		return []uuid.UUID{first.ID, second.ID}, nil
	}
	m.exchanges.GetByIDForUpdateFunc = func(ctx context.Context, id uuid.UUID) (*domain.Exchange, error) {
		return byID[id], nil
	}
	m.exchanges.UpdateFunc = func(ctx context.Context, ex *domain.Exchange, expect domain.ExchangeStatus) error {
		return nil
	}
	m.boxes.ReleaseFunc = func(ctx context.Context, exchangeID uuid.UUID) error { return nil }
	m.items.ClearTagsFunc = func(ctx context.Context, exchangeID uuid.UUID) error { return nil }

	n, err := s.ExpireOverdue(context.Background())
	if err != nil {
		t.Fatalf("ExpireOverdue() error = %v", err)
	}
	if n != 2 {
		t.Errorf("expired = %d, want 2", n)
	}
	if len(m.exchanges.UpdateCalls()) != 2 {
		t.Errorf("Update calls = %d, want 2", len(m.exchanges.UpdateCalls()))
	}
	if len(m.boxes.ReleaseCalls()) != 2 {
		t.Errorf("Release calls = %d, want 2", len(m.boxes.ReleaseCalls()))
	}
	if len(m.items.ClearTagsCalls()) != 2 {
		t.Errorf("ClearTags calls = %d, want 2", len(m.items.ClearTagsCalls()))
	}
}

func TestExpireOverdueSkipsRescued(t *testing.T) {
	s, m := newTestService(t)

	// Completed between the scan and the lock.
	rescued := testExchange(domain.StatusCompleted)

	m.exchanges.ListOverdueIDsFunc = func(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
		return []uuid.UUID{rescued.ID}, nil
	}
	m.exchanges.GetByIDForUpdateFunc = func(ctx context.Context, id uuid.UUID) (*domain.Exchange, error) {
		return rescued, nil
	}

	n, err := s.ExpireOverdue(context.Background())
	if err != nil {
		t.Fatalf("ExpireOverdue() error = %v", err)
	}
	if n != 0 {
		t.Errorf("expired = %d, want 0", n)
	}
	if len(m.exchanges.UpdateCalls()) != 0 {
		t.Error("Update called for a rescued exchange")
	}
}

func TestExpireOverdueContinuesPastFailures(t *testing.T) {
	s, m := newTestService(t)

	broken := uuid.New()
	ok := overdueExchange()

	m.exchanges.ListOverdueIDsFunc = func(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
		return []uuid.UUID{broken, ok.ID}, nil
	}
	m.exchanges.GetByIDForUpdateFunc = func(ctx context.Context, id uuid.UUID) (*domain.Exchange, error) {
		if id == broken {
			return nil, errors.New("connection reset")
		}
		return ok, nil
	}
	m.exchanges.UpdateFunc = func(ctx context.Context, ex *domain.Exchange, expect domain.ExchangeStatus) error {
		return nil
	}
	m.boxes.ReleaseFunc = func(ctx context.Context, exchangeID uuid.UUID) error { return nil }
	m.items.ClearTagsFunc = func(ctx context.Context, exchangeID uuid.UUID) error { return nil }

	n, err := s.ExpireOverdue(context.Background())
	if err != nil {
		t.Fatalf("ExpireOverdue() error = %v", err)
	}
	if n != 1 {
		t.Errorf("expired = %d, want 1", n)
	}
}

func TestExpireOverdueListError(t *testing.T) {
	s, m := newTestService(t)
	m.exchanges.ListOverdueIDsFunc = func(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
		return nil, errors.New("connection reset")
	}

	if _, err := s.ExpireOverdue(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
