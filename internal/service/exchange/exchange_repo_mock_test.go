package exchange

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/boxswap/boxswap-backend/internal/domain"
)

var _ exchangeRepo = &exchangeRepoMock{}

type exchangeRepoMock struct {
	CreateFunc           func(ctx context.Context, ex *domain.Exchange) error
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Exchange, error)
	GetByIDForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Exchange, error)
	UpdateFunc           func(ctx context.Context, ex *domain.Exchange, expect domain.ExchangeStatus) error
	ListFunc             func(ctx context.Context, f domain.ExchangeFilter) ([]*domain.Exchange, error)
	ListIDsFunc          func(ctx context.Context, f domain.ExchangeFilter) ([]uuid.UUID, error)
	ListOverdueIDsFunc   func(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)

	calls struct {
		Create []struct {
			Ex *domain.Exchange
		}
		GetByID []struct {
			ID uuid.UUID
		}
		GetByIDForUpdate []struct {
			ID uuid.UUID
		}
		Update []struct {
			Ex     *domain.Exchange
			Expect domain.ExchangeStatus
		}
		List []struct {
			F domain.ExchangeFilter
		}
		ListIDs []struct {
			F domain.ExchangeFilter
		}
		ListOverdueIDs []struct {
			Now   time.Time
			Limit int
		}
	}
	lockCreate           sync.RWMutex
	lockGetByID          sync.RWMutex
	lockGetByIDForUpdate sync.RWMutex
	lockUpdate           sync.RWMutex
	lockList             sync.RWMutex
	lockListIDs          sync.RWMutex
	lockListOverdueIDs   sync.RWMutex
}

func (mock *exchangeRepoMock) Create(ctx context.Context, ex *domain.Exchange) error {
	if mock.CreateFunc == nil {
		panic("exchangeRepoMock.CreateFunc: method is nil but exchangeRepo.Create was just called")
	}
	callInfo := struct {
		Ex *domain.Exchange
	}{Ex: ex}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, ex)
}

func (mock *exchangeRepoMock) CreateCalls() []struct {
	Ex *domain.Exchange
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *exchangeRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exchange, error) {
	if mock.GetByIDFunc == nil {
		panic("exchangeRepoMock.GetByIDFunc: method is nil but exchangeRepo.GetByID was just called")
	}
	callInfo := struct {
		ID uuid.UUID
	}{ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *exchangeRepoMock) GetByIDCalls() []struct {
	ID uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *exchangeRepoMock) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Exchange, error) {
	if mock.GetByIDForUpdateFunc == nil {
		panic("exchangeRepoMock.GetByIDForUpdateFunc: method is nil but exchangeRepo.GetByIDForUpdate was just called")
	}
	callInfo := struct {
		ID uuid.UUID
	}{ID: id}
	mock.lockGetByIDForUpdate.Lock()
	mock.calls.GetByIDForUpdate = append(mock.calls.GetByIDForUpdate, callInfo)
	mock.lockGetByIDForUpdate.Unlock()
	return mock.GetByIDForUpdateFunc(ctx, id)
}

func (mock *exchangeRepoMock) GetByIDForUpdateCalls() []struct {
	ID uuid.UUID
} {
	mock.lockGetByIDForUpdate.RLock()
	calls := mock.calls.GetByIDForUpdate
	mock.lockGetByIDForUpdate.RUnlock()
	return calls
}

func (mock *exchangeRepoMock) Update(ctx context.Context, ex *domain.Exchange, expect domain.ExchangeStatus) error {
	if mock.UpdateFunc == nil {
		panic("exchangeRepoMock.UpdateFunc: method is nil but exchangeRepo.Update was just called")
	}
	callInfo := struct {
		Ex     *domain.Exchange
		Expect domain.ExchangeStatus
	}{Ex: ex, Expect: expect}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, ex, expect)
}

func (mock *exchangeRepoMock) UpdateCalls() []struct {
	Ex     *domain.Exchange
	Expect domain.ExchangeStatus
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *exchangeRepoMock) List(ctx context.Context, f domain.ExchangeFilter) ([]*domain.Exchange, error) {
	if mock.ListFunc == nil {
		panic("exchangeRepoMock.ListFunc: method is nil but exchangeRepo.List was just called")
	}
	callInfo := struct {
		F domain.ExchangeFilter
	}{F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *exchangeRepoMock) ListCalls() []struct {
	F domain.ExchangeFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *exchangeRepoMock) ListIDs(ctx context.Context, f domain.ExchangeFilter) ([]uuid.UUID, error) {
	if mock.ListIDsFunc == nil {
		panic("exchangeRepoMock.ListIDsFunc: method is nil but exchangeRepo.ListIDs was just called")
	}
	callInfo := struct {
		F domain.ExchangeFilter
	}{F: f}
	mock.lockListIDs.Lock()
	mock.calls.ListIDs = append(mock.calls.ListIDs, callInfo)
	mock.lockListIDs.Unlock()
	return mock.ListIDsFunc(ctx, f)
}

func (mock *exchangeRepoMock) ListIDsCalls() []struct {
	F domain.ExchangeFilter
} {
	mock.lockListIDs.RLock()
	calls := mock.calls.ListIDs
	mock.lockListIDs.RUnlock()
	return calls
}

func (mock *exchangeRepoMock) ListOverdueIDs(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	if mock.ListOverdueIDsFunc == nil {
		panic("exchangeRepoMock.ListOverdueIDsFunc: method is nil but exchangeRepo.ListOverdueIDs was just called")
	}
	callInfo := struct {
		Now   time.Time
		Limit int
	}{Now: now, Limit: limit}
	mock.lockListOverdueIDs.Lock()
	mock.calls.ListOverdueIDs = append(mock.calls.ListOverdueIDs, callInfo)
	mock.lockListOverdueIDs.Unlock()
	return mock.ListOverdueIDsFunc(ctx, now, limit)
}

func (mock *exchangeRepoMock) ListOverdueIDsCalls() []struct {
	Now   time.Time
	Limit int
} {
	mock.lockListOverdueIDs.RLock()
	calls := mock.calls.ListOverdueIDs
	mock.lockListOverdueIDs.RUnlock()
	return calls
}
