package exchange

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/boxswap/boxswap-backend/internal/domain"
)

// ExpireOverdue finds exchanges whose pickup deadline has passed and
// persists the EXPIRED transition for each, releasing boxes and item tags.
// Each exchange is handled in its own transaction so one failure does not
// hold the rest back. Returns the number of exchanges expired.
func (s *Service) ExpireOverdue(ctx context.Context) (int, error) {
	ids, err := s.exchanges.ListOverdueIDs(ctx, s.now(), expireBatchSize)
	if err != nil {
		return 0, fmt.Errorf("list overdue: %w", err)
	}

	expired := 0
	for _, id := range ids {
		var done bool
		err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			ex, err := s.exchanges.GetByIDForUpdate(txCtx, id)
			if err != nil {
				return err
			}
			// Another writer may have expired or completed it since the scan.
			if !ex.Overdue(s.now()) {
				return nil
			}
			if _, err := s.expireLocked(txCtx, ex); err != nil {
				return err
			}
			done = true
			return nil
		})
		switch {
		case err == nil:
			if done {
				expired++
			}
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrStateConflict):
			// Lost the race to a concurrent transition, nothing to do.
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return expired, err
		default:
			s.log.ErrorContext(ctx, "expire pass failed for exchange",
				slog.String("exchange_id", id.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	if expired > 0 {
		s.log.InfoContext(ctx, "expired overdue exchanges", slog.Int("count", expired))
	}
	return expired, nil
}
