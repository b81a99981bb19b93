package domain

import (
	"time"

	"github.com/google/uuid"
)

// Exchange is a proposed-to-completed transfer of a bundle of items between
// two users via a shared box. Its Status may only change through the
// transitions allowed by ExchangeStatus.CanTransitionTo.
type Exchange struct {
	ID              uuid.UUID
	CreatorID       uuid.UUID
	CounterpartID   uuid.UUID
	Status          ExchangeStatus
	BoxID           *uuid.UUID
	DeadlineAt      *time.Time
	CreatedAt       time.Time
	StatusChangedAt time.Time
}

// IsTerminal reports whether the exchange has reached a final status.
func (e *Exchange) IsTerminal() bool {
	return e.Status.IsTerminal()
}

// IsParticipant reports whether userID is the creator or the counterpart.
func (e *Exchange) IsParticipant(userID uuid.UUID) bool {
	return userID == e.CreatorID || userID == e.CounterpartID
}

// RoleOf returns the open role userID plays in this exchange.
// The creator deposits; the counterpart picks up.
func (e *Exchange) RoleOf(userID uuid.UUID) (OpenRole, bool) {
	switch userID {
	case e.CreatorID:
		return RoleCreator, true
	case e.CounterpartID:
		return RolePickup, true
	}
	return "", false
}

// Overdue reports whether the pickup deadline has elapsed while the exchange
// is still waiting on a deposit or pickup. The deadline instant itself counts
// as overdue.
func (e *Exchange) Overdue(now time.Time) bool {
	if e.DeadlineAt == nil {
		return false
	}
	if e.Status != StatusBoxAssigned && e.Status != StatusAwaitingPickup {
		return false
	}
	return !now.Before(*e.DeadlineAt)
}

// EffectiveStatus returns the status as observed at now: an overdue exchange
// reads as EXPIRED even before the sweep has persisted the transition.
func (e *Exchange) EffectiveStatus(now time.Time) ExchangeStatus {
	if e.Overdue(now) {
		return StatusExpired
	}
	return e.Status
}

// ExchangeFilter narrows exchange listings. UserID scopes results to
// exchanges the user participates in and is always required.
type ExchangeFilter struct {
	UserID uuid.UUID
	Status *ExchangeStatus
	Limit  int
	Offset int
}
