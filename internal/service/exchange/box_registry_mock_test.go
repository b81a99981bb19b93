package exchange

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/boxswap/boxswap-backend/internal/domain"
)

var _ boxRegistry = &boxRegistryMock{}

type boxRegistryMock struct {
	ReserveFunc func(ctx context.Context, exchangeID uuid.UUID, need domain.CapacityClass) (*domain.Box, error)
	ReleaseFunc func(ctx context.Context, exchangeID uuid.UUID) error

	calls struct {
		Reserve []struct {
			ExchangeID uuid.UUID
			Need       domain.CapacityClass
		}
		Release []struct {
			ExchangeID uuid.UUID
		}
	}
	lockReserve sync.RWMutex
	lockRelease sync.RWMutex
}

func (mock *boxRegistryMock) Reserve(ctx context.Context, exchangeID uuid.UUID, need domain.CapacityClass) (*domain.Box, error) {
	if mock.ReserveFunc == nil {
		panic("boxRegistryMock.ReserveFunc: method is nil but boxRegistry.Reserve was just called")
	}
	callInfo := struct {
		ExchangeID uuid.UUID
		Need       domain.CapacityClass
	}{ExchangeID: exchangeID, Need: need}
	mock.lockReserve.Lock()
	mock.calls.Reserve = append(mock.calls.Reserve, callInfo)
	mock.lockReserve.Unlock()
	return mock.ReserveFunc(ctx, exchangeID, need)
}

func (mock *boxRegistryMock) ReserveCalls() []struct {
	ExchangeID uuid.UUID
	Need       domain.CapacityClass
} {
	mock.lockReserve.RLock()
	calls := mock.calls.Reserve
	mock.lockReserve.RUnlock()
	return calls
}

func (mock *boxRegistryMock) Release(ctx context.Context, exchangeID uuid.UUID) error {
	if mock.ReleaseFunc == nil {
		panic("boxRegistryMock.ReleaseFunc: method is nil but boxRegistry.Release was just called")
	}
	callInfo := struct {
		ExchangeID uuid.UUID
	}{ExchangeID: exchangeID}
	mock.lockRelease.Lock()
	mock.calls.Release = append(mock.calls.Release, callInfo)
	mock.lockRelease.Unlock()
	return mock.ReleaseFunc(ctx, exchangeID)
}

func (mock *boxRegistryMock) ReleaseCalls() []struct {
	ExchangeID uuid.UUID
} {
	mock.lockRelease.RLock()
	calls := mock.calls.Release
	mock.lockRelease.RUnlock()
	return calls
}
