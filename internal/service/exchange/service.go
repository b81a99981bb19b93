// Package exchange coordinates the lifecycle of a lending exchange:
// proposal, item commitment, box assignment, the two-code handover, and
// cancellation or expiry. All multi-step transitions run in a single
// transaction with the exchange row locked, so concurrent requests on the
// same exchange serialize.
package exchange

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/boxswap/boxswap-backend/internal/domain"
)

type exchangeRepo interface {
	Create(ctx context.Context, ex *domain.Exchange) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exchange, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Exchange, error)
	Update(ctx context.Context, ex *domain.Exchange, expect domain.ExchangeStatus) error
	List(ctx context.Context, f domain.ExchangeFilter) ([]*domain.Exchange, error)
	ListIDs(ctx context.Context, f domain.ExchangeFilter) ([]uuid.UUID, error)
	ListOverdueIDs(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
}

type itemLedger interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Item, error)
	ListByExchange(ctx context.Context, exchangeID uuid.UUID) ([]domain.Item, error)
	Tag(ctx context.Context, exchangeID uuid.UUID, ids []uuid.UUID) error
	ClearTags(ctx context.Context, exchangeID uuid.UUID) error
}

type boxRegistry interface {
	Reserve(ctx context.Context, exchangeID uuid.UUID, need domain.CapacityClass) (*domain.Box, error)
	Release(ctx context.Context, exchangeID uuid.UUID) error
}

type codeIssuer interface {
	Issue(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole) (string, time.Time, error)
	ValidateAndConsume(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole, raw string) error
	LiveExpiry(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole) (*time.Time, error)
}

type notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, text string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// expireBatchSize bounds one sweeper pass.
const expireBatchSize = 100

// Config holds the lifecycle parameters the service needs.
type Config struct {
	// PickupDeadline is added to the clock when a box is assigned.
	PickupDeadline time.Duration
	// MaxItems caps the number of items in one proposal.
	MaxItems int
}

// Service provides exchange lifecycle operations.
type Service struct {
	exchanges exchangeRepo
	items     itemLedger
	boxes     boxRegistry
	codes     codeIssuer
	notify    notifier
	tx        txManager
	cfg       Config
	log       *slog.Logger

	// now is swapped in tests to pin the clock.
	now func() time.Time
}

// NewService creates a new exchange service.
func NewService(
	log *slog.Logger,
	exchanges exchangeRepo,
	items itemLedger,
	boxes boxRegistry,
	codes codeIssuer,
	notify notifier,
	tx txManager,
	cfg Config,
) *Service {
	return &Service{
		exchanges: exchanges,
		items:     items,
		boxes:     boxes,
		codes:     codes,
		notify:    notify,
		tx:        tx,
		cfg:       cfg,
		log:       log.With("service", "exchange"),
		now:       time.Now,
	}
}

// notifyAsync delivers a notification without holding up the request.
// The request context may already be done when the goroutine runs, so
// delivery gets its own deadline. Failures are logged and dropped.
func (s *Service) notifyAsync(userID uuid.UUID, text string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.notify.Notify(ctx, userID, text); err != nil {
			s.log.WarnContext(ctx, "notification delivery failed",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// expireLocked transitions a locked, overdue exchange to EXPIRED and frees
// its box and items. The caller holds the row lock and runs inside a
// transaction. Returns the updated exchange.
func (s *Service) expireLocked(ctx context.Context, ex *domain.Exchange) (*domain.Exchange, error) {
	prev := ex.Status

	ex.Status = domain.StatusExpired
	ex.StatusChangedAt = s.now().UTC()
	if err := s.exchanges.Update(ctx, ex, prev); err != nil {
		return nil, err
	}
	if err := s.boxes.Release(ctx, ex.ID); err != nil {
		return nil, err
	}
	if err := s.items.ClearTags(ctx, ex.ID); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "exchange expired",
		slog.String("exchange_id", ex.ID.String()),
		slog.String("previous_status", prev.String()),
	)
	return ex, nil
}

// lockFresh loads an exchange with a row lock and applies lazy expiry:
// if the pickup deadline has passed, the expiry transition is persisted
// before the exchange is returned.
func (s *Service) lockFresh(ctx context.Context, id uuid.UUID) (*domain.Exchange, error) {
	ex, err := s.exchanges.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if ex.Overdue(s.now()) {
		return s.expireLocked(ctx, ex)
	}
	return ex, nil
}
