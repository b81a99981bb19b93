package exchange

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/boxswap/boxswap-backend/internal/domain"
	"github.com/boxswap/boxswap-backend/pkg/ctxutil"
)

// GetStatus returns the caller's view of an exchange. It reads without
// locking or writing: an overdue exchange reads as EXPIRED even though the
// persisted transition happens later, on the next write or sweeper pass.
// Non-participants get domain.ErrNotFound.
func (s *Service) GetStatus(ctx context.Context, exchangeID uuid.UUID) (*StatusView, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	ex, err := s.exchanges.GetByID(ctx, exchangeID)
	if err != nil {
		return nil, err
	}

	role, ok := ex.RoleOf(userID)
	if !ok {
		return nil, fmt.Errorf("exchange %s: %w", exchangeID, domain.ErrNotFound)
	}

	codeExpiry, err := s.codes.LiveExpiry(ctx, exchangeID, role)
	if err != nil {
		return nil, err
	}

	return &StatusView{
		ID:              ex.ID,
		Status:          ex.EffectiveStatus(s.now()),
		Role:            role,
		BoxID:           ex.BoxID,
		DeadlineAt:      ex.DeadlineAt,
		CodeExpiresAt:   codeExpiry,
		CreatedAt:       ex.CreatedAt,
		StatusChangedAt: ex.StatusChangedAt,
	}, nil
}
