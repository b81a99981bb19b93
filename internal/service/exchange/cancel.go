package exchange

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/boxswap/boxswap-backend/internal/domain"
	"github.com/boxswap/boxswap-backend/pkg/ctxutil"
)

// Cancel moves a non-terminal exchange to CANCELLED, freeing its box and
// item tags. Either participant may cancel. Cancelling a COMPLETED,
// CANCELLED, or EXPIRED exchange is domain.ErrInvalidCancellation.
func (s *Service) Cancel(ctx context.Context, exchangeID uuid.UUID) (*domain.Exchange, error) {
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
		if ex.IsTerminal() {
			return fmt.Errorf("cancel in %s: %w", ex.Status, domain.ErrInvalidCancellation)
		}

		prev := ex.Status
		ex.Status = domain.StatusCancelled
		ex.StatusChangedAt = s.now().UTC()
		if err := s.exchanges.Update(txCtx, ex, prev); err != nil {
			return err
		}
		if err := s.boxes.Release(txCtx, ex.ID); err != nil {
			return err
		}
		return s.items.ClearTags(txCtx, ex.ID)
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "exchange cancelled",
		slog.String("exchange_id", ex.ID.String()),
		slog.String("by_user_id", userID.String()),
	)

	other := ex.CreatorID
	if userID == ex.CreatorID {
		other = ex.CounterpartID
	}
	s.notifyAsync(other, "Your exchange was cancelled.")

	return ex, nil
}
