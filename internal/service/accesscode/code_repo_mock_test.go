package accesscode

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/boxswap/boxswap-backend/internal/domain"
)

var _ codeRepo = &codeRepoMock{}

type codeRepoMock struct {
	InsertFunc     func(ctx context.Context, code *domain.AccessCode) error
	GetLiveFunc    func(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole) (*domain.AccessCode, error)
	RevokeLiveFunc func(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole, now time.Time) error
	ConsumeFunc    func(ctx context.Context, id uuid.UUID, now time.Time) error

	calls struct {
		Insert []struct {
			Code *domain.AccessCode
		}
		GetLive []struct {
			ExchangeID uuid.UUID
			Role       domain.OpenRole
		}
		RevokeLive []struct {
			ExchangeID uuid.UUID
			Role       domain.OpenRole
			Now        time.Time
		}
		Consume []struct {
			ID  uuid.UUID
			Now time.Time
		}
	}
	lockInsert     sync.RWMutex
	lockGetLive    sync.RWMutex
	lockRevokeLive sync.RWMutex
	lockConsume    sync.RWMutex
}

func (mock *codeRepoMock) Insert(ctx context.Context, code *domain.AccessCode) error {
	if mock.InsertFunc == nil {
		panic("codeRepoMock.InsertFunc: method is nil but codeRepo.Insert was just called")
	}
	callInfo := struct {
		Code *domain.AccessCode
	}{Code: code}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, code)
}

func (mock *codeRepoMock) InsertCalls() []struct {
	Code *domain.AccessCode
} {
	mock.lockInsert.RLock()
	calls := mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}

func (mock *codeRepoMock) GetLive(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole) (*domain.AccessCode, error) {
	if mock.GetLiveFunc == nil {
		panic("codeRepoMock.GetLiveFunc: method is nil but codeRepo.GetLive was just called")
	}
	callInfo := struct {
		ExchangeID uuid.UUID
		Role       domain.OpenRole
	}{ExchangeID: exchangeID, Role: role}
	mock.lockGetLive.Lock()
	mock.calls.GetLive = append(mock.calls.GetLive, callInfo)
	mock.lockGetLive.Unlock()
	return mock.GetLiveFunc(ctx, exchangeID, role)
}

func (mock *codeRepoMock) GetLiveCalls() []struct {
	ExchangeID uuid.UUID
	Role       domain.OpenRole
} {
	mock.lockGetLive.RLock()
	calls := mock.calls.GetLive
	mock.lockGetLive.RUnlock()
	return calls
}

func (mock *codeRepoMock) RevokeLive(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole, now time.Time) error {
	if mock.RevokeLiveFunc == nil {
		panic("codeRepoMock.RevokeLiveFunc: method is nil but codeRepo.RevokeLive was just called")
	}
	callInfo := struct {
		ExchangeID uuid.UUID
		Role       domain.OpenRole
		Now        time.Time
	}{ExchangeID: exchangeID, Role: role, Now: now}
	mock.lockRevokeLive.Lock()
	mock.calls.RevokeLive = append(mock.calls.RevokeLive, callInfo)
	mock.lockRevokeLive.Unlock()
	return mock.RevokeLiveFunc(ctx, exchangeID, role, now)
}

func (mock *codeRepoMock) RevokeLiveCalls() []struct {
	ExchangeID uuid.UUID
	Role       domain.OpenRole
	Now        time.Time
} {
	mock.lockRevokeLive.RLock()
	calls := mock.calls.RevokeLive
	mock.lockRevokeLive.RUnlock()
	return calls
}

func (mock *codeRepoMock) Consume(ctx context.Context, id uuid.UUID, now time.Time) error {
	if mock.ConsumeFunc == nil {
		panic("codeRepoMock.ConsumeFunc: method is nil but codeRepo.Consume was just called")
	}
	callInfo := struct {
		ID  uuid.UUID
		Now time.Time
	}{ID: id, Now: now}
	mock.lockConsume.Lock()
	mock.calls.Consume = append(mock.calls.Consume, callInfo)
	mock.lockConsume.Unlock()
	return mock.ConsumeFunc(ctx, id, now)
}

func (mock *codeRepoMock) ConsumeCalls() []struct {
	ID  uuid.UUID
	Now time.Time
} {
	mock.lockConsume.RLock()
	calls := mock.calls.Consume
	mock.lockConsume.RUnlock()
	return calls
}
