package exchange

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/boxswap/boxswap-backend/internal/domain"
	"github.com/boxswap/boxswap-backend/pkg/ctxutil"
)

// AssignBox reserves the tightest free box that fits the committed bundle,
// sets the pickup deadline, and issues the creator's deposit code. Calling
// it on a PROPOSED exchange commits the items in the same step. Only the
// creator may assign a box.
//
// When no adequate box is free, domain.ErrNoCapacity is returned and the
// exchange stays in its current status.
func (s *Service) AssignBox(ctx context.Context, exchangeID uuid.UUID) (*AssignResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var res AssignResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		ex, err := s.lockFresh(txCtx, exchangeID)
		if err != nil {
			return err
		}

		if !ex.IsParticipant(userID) {
			return fmt.Errorf("exchange %s: %w", exchangeID, domain.ErrNotFound)
		}
		if userID != ex.CreatorID {
			return fmt.Errorf("only the creator assigns a box: %w", domain.ErrInvalidRole)
		}
		if ex.Status != domain.StatusProposed && ex.Status != domain.StatusItemsCommitted {
			return fmt.Errorf("assign box in %s: %w", ex.Status, domain.ErrStateConflict)
		}

		items, err := s.items.ListByExchange(txCtx, exchangeID)
		if err != nil {
			return fmt.Errorf("load tagged items: %w", err)
		}
		dims := make([]domain.Dimensions, len(items))
		for i, it := range items {
			dims[i] = it.Size
		}
		need, fits := domain.RequiredCapacity(dims)
		if !fits {
			return fmt.Errorf("bundle exceeds the largest box class: %w", domain.ErrNoCapacity)
		}

		box, err := s.boxes.Reserve(txCtx, exchangeID, need)
		if err != nil {
			return err
		}

		prev := ex.Status
		now := s.now().UTC()
		deadline := now.Add(s.cfg.PickupDeadline)

		ex.Status = domain.StatusBoxAssigned
		ex.BoxID = &box.ID
		ex.DeadlineAt = &deadline
		ex.StatusChangedAt = now
		if err := s.exchanges.Update(txCtx, ex, prev); err != nil {
			return err
		}

		code, expiresAt, err := s.codes.Issue(txCtx, exchangeID, domain.RoleCreator)
		if err != nil {
			return fmt.Errorf("issue deposit code: %w", err)
		}

		res = AssignResult{
			Exchange:    ex,
			Box:         box,
			DepositCode: CodeGrant{Code: code, ExpiresAt: expiresAt},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "box assigned",
		slog.String("exchange_id", exchangeID.String()),
		slog.String("box_id", res.Box.ID.String()),
		slog.String("capacity_class", res.Box.CapacityClass.String()),
	)

	s.notifyAsync(res.Exchange.CounterpartID, "A box was assigned to your exchange.")

	return &res, nil
}
