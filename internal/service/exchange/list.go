package exchange

import (
	"context"

	"github.com/google/uuid"

	"github.com/boxswap/boxswap-backend/internal/domain"
	"github.com/boxswap/boxswap-backend/pkg/ctxutil"
)

// List returns the caller's exchanges, newest first, optionally filtered by
// status.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.Exchange, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return s.exchanges.List(ctx, input.filter(userID))
}

// ListIDs returns just the IDs of the caller's exchanges. Clients that only
// need to poll for changes use this instead of List.
func (s *Service) ListIDs(ctx context.Context, input ListInput) ([]uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return s.exchanges.ListIDs(ctx, input.filter(userID))
}
