package exchange

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/boxswap/boxswap-backend/internal/domain"
	"github.com/boxswap/boxswap-backend/pkg/ctxutil"
)

// ConsumeBoxOpen redeems a single-use access code and advances the exchange:
// the creator's deposit code moves BOX_ASSIGNED to AWAITING_PICKUP, the
// counterpart's pickup code moves AWAITING_PICKUP to COMPLETED. Completion
// releases the box and clears the item tags. A wrong, expired, or already
// used code is domain.ErrInvalidCode; the code is burned either way once
// redemption succeeds.
func (s *Service) ConsumeBoxOpen(ctx context.Context, input ConsumeOpenInput) (*domain.Exchange, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		ex        *domain.Exchange
		completed bool
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		ex, err = s.lockFresh(txCtx, input.ExchangeID)
		if err != nil {
			return err
		}

		role, ok := ex.RoleOf(userID)
		if !ok {
			return fmt.Errorf("exchange %s: %w", input.ExchangeID, domain.ErrNotFound)
		}
		from, to := role.OpenableFrom()
		if ex.Status != from {
			return fmt.Errorf("%s open in %s: %w", role, ex.Status, domain.ErrStateConflict)
		}

		if err := s.codes.ValidateAndConsume(txCtx, input.ExchangeID, role, input.Code); err != nil {
			return err
		}

		prev := ex.Status
		ex.Status = to
		ex.StatusChangedAt = s.now().UTC()
		if err := s.exchanges.Update(txCtx, ex, prev); err != nil {
			return err
		}

		if to == domain.StatusCompleted {
			completed = true
			if err := s.boxes.Release(txCtx, ex.ID); err != nil {
				return err
			}
			if err := s.items.ClearTags(txCtx, ex.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "box opened",
		slog.String("exchange_id", ex.ID.String()),
		slog.String("status", ex.Status.String()),
	)

	if completed {
		s.notifyAsync(ex.CreatorID, "Your exchange was completed.")
	} else {
		s.notifyAsync(ex.CounterpartID, "Items were deposited. You can pick them up now.")
	}

	return ex, nil
}
