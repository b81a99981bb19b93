package exchange

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/boxswap/boxswap-backend/internal/domain"
)

var _ codeIssuer = &codeIssuerMock{}

type codeIssuerMock struct {
	IssueFunc              func(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole) (string, time.Time, error)
	ValidateAndConsumeFunc func(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole, raw string) error
	LiveExpiryFunc         func(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole) (*time.Time, error)

	calls struct {
		Issue []struct {
			ExchangeID uuid.UUID
			Role       domain.OpenRole
		}
		ValidateAndConsume []struct {
			ExchangeID uuid.UUID
			Role       domain.OpenRole
			Raw        string
		}
		LiveExpiry []struct {
			ExchangeID uuid.UUID
			Role       domain.OpenRole
		}
	}
	lockIssue              sync.RWMutex
	lockValidateAndConsume sync.RWMutex
	lockLiveExpiry         sync.RWMutex
}

func (mock *codeIssuerMock) Issue(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole) (string, time.Time, error) {
	if mock.IssueFunc == nil {
		panic("codeIssuerMock.IssueFunc: method is nil but codeIssuer.Issue was just called")
	}
	callInfo := struct {
		ExchangeID uuid.UUID
		Role       domain.OpenRole
	}{ExchangeID: exchangeID, Role: role}
	mock.lockIssue.Lock()
	mock.calls.Issue = append(mock.calls.Issue, callInfo)
	mock.lockIssue.Unlock()
	return mock.IssueFunc(ctx, exchangeID, role)
}

func (mock *codeIssuerMock) IssueCalls() []struct {
	ExchangeID uuid.UUID
	Role       domain.OpenRole
} {
	mock.lockIssue.RLock()
	calls := mock.calls.Issue
	mock.lockIssue.RUnlock()
	return calls
}

func (mock *codeIssuerMock) ValidateAndConsume(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole, raw string) error {
	if mock.ValidateAndConsumeFunc == nil {
		panic("codeIssuerMock.ValidateAndConsumeFunc: method is nil but codeIssuer.ValidateAndConsume was just called")
	}
	callInfo := struct {
		ExchangeID uuid.UUID
		Role       domain.OpenRole
		Raw        string
	}{ExchangeID: exchangeID, Role: role, Raw: raw}
	mock.lockValidateAndConsume.Lock()
	mock.calls.ValidateAndConsume = append(mock.calls.ValidateAndConsume, callInfo)
	mock.lockValidateAndConsume.Unlock()
	return mock.ValidateAndConsumeFunc(ctx, exchangeID, role, raw)
}

func (mock *codeIssuerMock) ValidateAndConsumeCalls() []struct {
	ExchangeID uuid.UUID
	Role       domain.OpenRole
	Raw        string
} {
	mock.lockValidateAndConsume.RLock()
	calls := mock.calls.ValidateAndConsume
	mock.lockValidateAndConsume.RUnlock()
	return calls
}

func (mock *codeIssuerMock) LiveExpiry(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole) (*time.Time, error) {
	if mock.LiveExpiryFunc == nil {
		panic("codeIssuerMock.LiveExpiryFunc: method is nil but codeIssuer.LiveExpiry was just called")
	}
	callInfo := struct {
		ExchangeID uuid.UUID
		Role       domain.OpenRole
	}{ExchangeID: exchangeID, Role: role}
	mock.lockLiveExpiry.Lock()
	mock.calls.LiveExpiry = append(mock.calls.LiveExpiry, callInfo)
	mock.lockLiveExpiry.Unlock()
	return mock.LiveExpiryFunc(ctx, exchangeID, role)
}

func (mock *codeIssuerMock) LiveExpiryCalls() []struct {
	ExchangeID uuid.UUID
	Role       domain.OpenRole
} {
	mock.lockLiveExpiry.RLock()
	calls := mock.calls.LiveExpiry
	mock.lockLiveExpiry.RUnlock()
	return calls
}
