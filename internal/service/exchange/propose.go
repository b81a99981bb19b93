package exchange

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/boxswap/boxswap-backend/internal/domain"
	"github.com/boxswap/boxswap-backend/pkg/ctxutil"
)

// Propose creates a new exchange in PROPOSED status and tags the offered
// items to it. Items already committed to another exchange surface as
// domain.ErrItemConflict and nothing is written.
func (s *Service) Propose(ctx context.Context, input ProposeInput) (*domain.Exchange, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.CounterpartID == userID {
		return nil, domain.NewValidationError("counterpart_id", "cannot propose to yourself")
	}
	if len(input.ItemIDs) > s.cfg.MaxItems {
		return nil, domain.NewValidationError("item_ids", fmt.Sprintf("max %d items", s.cfg.MaxItems))
	}

	now := s.now().UTC()
	ex := &domain.Exchange{
		ID:              uuid.New(),
		CreatorID:       userID,
		CounterpartID:   input.CounterpartID,
		Status:          domain.StatusProposed,
		CreatedAt:       now,
		StatusChangedAt: now,
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		items, err := s.items.GetByIDs(txCtx, input.ItemIDs)
		if err != nil {
			return fmt.Errorf("load items: %w", err)
		}
		if len(items) != len(input.ItemIDs) {
			return fmt.Errorf("%d of %d items: %w", len(items), len(input.ItemIDs), domain.ErrNotFound)
		}
		for _, it := range items {
			if it.OwnerID != userID {
				return fmt.Errorf("item %s not owned by proposer: %w", it.ID, domain.ErrForbidden)
			}
		}

		if err := s.exchanges.Create(txCtx, ex); err != nil {
			return fmt.Errorf("create exchange: %w", err)
		}
		if err := s.items.Tag(txCtx, ex.ID, input.ItemIDs); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "exchange proposed",
		slog.String("exchange_id", ex.ID.String()),
		slog.String("creator_id", userID.String()),
		slog.String("counterpart_id", input.CounterpartID.String()),
		slog.Int("items", len(input.ItemIDs)),
	)

	s.notifyAsync(input.CounterpartID, "You have a new exchange proposal.")

	return ex, nil
}
