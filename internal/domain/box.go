package domain

import "github.com/google/uuid"

// Box is a physical locker with a capacity class and code-gated opening.
// OccupiedBy is the exchange currently holding the box, nil when free.
type Box struct {
	ID            uuid.UUID
	Label         string
	CapacityClass CapacityClass
	OccupiedBy    *uuid.UUID
}

// Free reports whether the box can be reserved.
func (b *Box) Free() bool { return b.OccupiedBy == nil }

// Holds reports whether the box is reserved by the given exchange.
func (b *Box) Holds(exchangeID uuid.UUID) bool {
	return b.OccupiedBy != nil && *b.OccupiedBy == exchangeID
}
