package domain

// ExchangeStatus is the state-machine position of an exchange.
type ExchangeStatus string

const (
	StatusProposed       ExchangeStatus = "PROPOSED"
	StatusItemsCommitted ExchangeStatus = "ITEMS_COMMITTED"
	StatusBoxAssigned    ExchangeStatus = "BOX_ASSIGNED"
	StatusAwaitingPickup ExchangeStatus = "AWAITING_PICKUP"
	StatusCompleted      ExchangeStatus = "COMPLETED"
	StatusCancelled      ExchangeStatus = "CANCELLED"
	StatusExpired        ExchangeStatus = "EXPIRED"
)

func (s ExchangeStatus) String() string { return string(s) }

func (s ExchangeStatus) IsValid() bool {
	switch s {
	case StatusProposed, StatusItemsCommitted, StatusBoxAssigned,
		StatusAwaitingPickup, StatusCompleted, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s ExchangeStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine allows moving from s to next.
func (s ExchangeStatus) CanTransitionTo(next ExchangeStatus) bool {
	if next == StatusCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case StatusProposed:
		return next == StatusItemsCommitted
	case StatusItemsCommitted:
		return next == StatusBoxAssigned
	case StatusBoxAssigned:
		return next == StatusAwaitingPickup || next == StatusExpired
	case StatusAwaitingPickup:
		return next == StatusCompleted || next == StatusExpired
	}
	return false
}

// OpenRole identifies which party a box-access code is issued for.
type OpenRole string

const (
	// RoleCreator is the depositing party (the exchange initiator).
	RoleCreator OpenRole = "creator"
	// RolePickup is the retrieving party (the counterpart).
	RolePickup OpenRole = "pickup"
)

func (r OpenRole) String() string { return string(r) }

func (r OpenRole) IsValid() bool {
	return r == RoleCreator || r == RolePickup
}

// OpenableFrom returns the status a code for this role may be consumed in,
// and the status the consumption advances to.
func (r OpenRole) OpenableFrom() (from, to ExchangeStatus) {
	if r == RoleCreator {
		return StatusBoxAssigned, StatusAwaitingPickup
	}
	return StatusAwaitingPickup, StatusCompleted
}

// CapacityClass buckets boxes and item bundles by physical size.
type CapacityClass string

const (
	CapacityS  CapacityClass = "S"
	CapacityM  CapacityClass = "M"
	CapacityL  CapacityClass = "L"
	CapacityXL CapacityClass = "XL"
)

func (c CapacityClass) String() string { return string(c) }

func (c CapacityClass) IsValid() bool {
	switch c {
	case CapacityS, CapacityM, CapacityL, CapacityXL:
		return true
	}
	return false
}

// rank orders capacity classes from smallest to largest. Unknown classes rank 0.
func (c CapacityClass) rank() int {
	switch c {
	case CapacityS:
		return 1
	case CapacityM:
		return 2
	case CapacityL:
		return 3
	case CapacityXL:
		return 4
	}
	return 0
}

// Fits reports whether a box of class c can hold a bundle requiring class need.
func (c CapacityClass) Fits(need CapacityClass) bool {
	return c.rank() >= need.rank() && need.rank() > 0
}

// ClassesAtLeast returns all classes that fit a bundle requiring class need,
// smallest first. Used to reserve the tightest adequate box.
func ClassesAtLeast(need CapacityClass) []CapacityClass {
	all := []CapacityClass{CapacityS, CapacityM, CapacityL, CapacityXL}
	var out []CapacityClass
	for _, c := range all {
		if c.Fits(need) {
			out = append(out, c)
		}
	}
	return out
}
