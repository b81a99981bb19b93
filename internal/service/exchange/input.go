package exchange

import (
	"strings"

	"github.com/google/uuid"

	"github.com/boxswap/boxswap-backend/internal/domain"
)

// ProposeInput holds the parameters for proposing an exchange.
type ProposeInput struct {
	CounterpartID uuid.UUID
	ItemIDs       []uuid.UUID
}

// Validate checks all fields and collects all errors.
// The MaxItems cap is enforced by the service, which knows the configured limit.
func (i ProposeInput) Validate() error {
	var errs []domain.FieldError

	if i.CounterpartID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "counterpart_id", Message: "required"})
	}
	if len(i.ItemIDs) == 0 {
		errs = append(errs, domain.FieldError{Field: "item_ids", Message: "at least one item required"})
	}

	seen := make(map[uuid.UUID]bool, len(i.ItemIDs))
	for _, id := range i.ItemIDs {
		if id == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "item_ids", Message: "contains nil ID"})
			break
		}
		if seen[id] {
			errs = append(errs, domain.FieldError{Field: "item_ids", Message: "contains duplicates"})
			break
		}
		seen[id] = true
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ConsumeOpenInput holds the parameters for consuming a box open code.
type ConsumeOpenInput struct {
	ExchangeID uuid.UUID
	Code       string
}

// Validate checks all fields and collects all errors.
func (i ConsumeOpenInput) Validate() error {
	var errs []domain.FieldError

	if i.ExchangeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "exchange_id", Message: "required"})
	}
	if strings.TrimSpace(i.Code) == "" {
		errs = append(errs, domain.FieldError{Field: "code", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds the parameters for listing exchanges.
type ListInput struct {
	Status *domain.ExchangeStatus
	Limit  int
	Offset int
}

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	if i.Limit < 0 || i.Limit > maxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// filter converts the input to a repository filter for the given user,
// applying the default page size.
func (i ListInput) filter(userID uuid.UUID) domain.ExchangeFilter {
	limit := i.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	return domain.ExchangeFilter{
		UserID: userID,
		Status: i.Status,
		Limit:  limit,
		Offset: i.Offset,
	}
}
