package exchange

import (
	"time"

	"github.com/google/uuid"

	"github.com/boxswap/boxswap-backend/internal/domain"
)

// CodeGrant carries a freshly issued access code. The raw code appears here
// exactly once and is never persisted or logged.
type CodeGrant struct {
	Code      string
	ExpiresAt time.Time
}

// AssignResult is the outcome of a successful box assignment.
type AssignResult struct {
	Exchange *domain.Exchange
	Box      *domain.Box
	// DepositCode lets the creator open the box to drop the items off.
	DepositCode CodeGrant
}

// StatusView is the read model returned by GetStatus. Status is the
// effective status: an exchange past its deadline reads as EXPIRED even
// before the sweeper has persisted the transition.
type StatusView struct {
	ID              uuid.UUID
	Status          domain.ExchangeStatus
	Role            domain.OpenRole
	BoxID           *uuid.UUID
	DeadlineAt      *time.Time
	// CodeExpiresAt is the expiry of the caller's live access code, nil when
	// none is outstanding.
	CodeExpiresAt   *time.Time
	CreatedAt       time.Time
	StatusChangedAt time.Time
}
