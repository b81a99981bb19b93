package exchange

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/boxswap/boxswap-backend/internal/domain"
	"github.com/boxswap/boxswap-backend/pkg/ctxutil"
)

// Accept lets the counterpart confirm a proposal, moving the exchange from
// PROPOSED to ITEMS_COMMITTED. Only the counterpart may accept; the creator
// gets domain.ErrInvalidRole.
func (s *Service) Accept(ctx context.Context, exchangeID uuid.UUID) (*domain.Exchange, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var ex *domain.Exchange
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		ex, err = s.lockFresh(txCtx, exchangeID)
		if err != nil {
			return err
		}

		if !ex.IsParticipant(userID) {
			return fmt.Errorf("exchange %s: %w", exchangeID, domain.ErrNotFound)
		}
		if userID != ex.CounterpartID {
			return fmt.Errorf("only the counterpart accepts: %w", domain.ErrInvalidRole)
		}
		if !ex.Status.CanTransitionTo(domain.StatusItemsCommitted) {
			return fmt.Errorf("accept in %s: %w", ex.Status, domain.ErrStateConflict)
		}

		prev := ex.Status
		ex.Status = domain.StatusItemsCommitted
		ex.StatusChangedAt = s.now().UTC()
		return s.exchanges.Update(txCtx, ex, prev)
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "exchange accepted",
		slog.String("exchange_id", ex.ID.String()),
		slog.String("counterpart_id", userID.String()),
	)

	s.notifyAsync(ex.CreatorID, "Your exchange proposal was accepted.")

	return ex, nil
}
