package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccessCode is a single-use, time-boxed token authorizing one box open for
// one role on one exchange. The raw code is handed to the caller exactly once
// at issuance; only its bcrypt hash is stored.
type AccessCode struct {
	ID         uuid.UUID
	ExchangeID uuid.UUID
	Role       OpenRole
	CodeHash   string
	IssuedAt   time.Time
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	RevokedAt  *time.Time
}

// Live reports whether the code can still be consumed at now.
// A code is dead at exactly its expiry instant.
func (c *AccessCode) Live(now time.Time) bool {
	return c.ConsumedAt == nil && c.RevokedAt == nil && now.Before(c.ExpiresAt)
}
