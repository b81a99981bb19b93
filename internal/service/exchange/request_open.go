package exchange

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/boxswap/boxswap-backend/internal/domain"
	"github.com/boxswap/boxswap-backend/pkg/ctxutil"
)

// RequestBoxOpen issues a fresh single-use access code for the caller's role
// in the exchange. The creator may request a deposit code while the exchange
// is BOX_ASSIGNED; the counterpart a pickup code while it is AWAITING_PICKUP.
// Any prior live code for the same role is revoked.
func (s *Service) RequestBoxOpen(ctx context.Context, exchangeID uuid.UUID) (*CodeGrant, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var grant CodeGrant
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		ex, err := s.lockFresh(txCtx, exchangeID)
		if err != nil {
			return err
		}

		role, ok := ex.RoleOf(userID)
		if !ok {
			return fmt.Errorf("exchange %s: %w", exchangeID, domain.ErrNotFound)
		}
		from, _ := role.OpenableFrom()
		if ex.Status != from {
			return fmt.Errorf("%s code in %s: %w", role, ex.Status, domain.ErrInvalidRole)
		}

		code, expiresAt, err := s.codes.Issue(txCtx, exchangeID, role)
		if err != nil {
			return err
		}
		grant = CodeGrant{Code: code, ExpiresAt: expiresAt}

		s.log.InfoContext(txCtx, "access code issued",
			slog.String("exchange_id", exchangeID.String()),
			slog.String("role", role.String()),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &grant, nil
}
