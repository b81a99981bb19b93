package exchange

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/boxswap/boxswap-backend/internal/domain"
)

var _ itemLedger = &itemLedgerMock{}

type itemLedgerMock struct {
	GetByIDsFunc       func(ctx context.Context, ids []uuid.UUID) ([]domain.Item, error)
	ListByExchangeFunc func(ctx context.Context, exchangeID uuid.UUID) ([]domain.Item, error)
	TagFunc            func(ctx context.Context, exchangeID uuid.UUID, ids []uuid.UUID) error
	ClearTagsFunc      func(ctx context.Context, exchangeID uuid.UUID) error

	calls struct {
		GetByIDs []struct {
			IDs []uuid.UUID
		}
		ListByExchange []struct {
			ExchangeID uuid.UUID
		}
		Tag []struct {
			ExchangeID uuid.UUID
			IDs        []uuid.UUID
		}
		ClearTags []struct {
			ExchangeID uuid.UUID
		}
	}
	lockGetByIDs       sync.RWMutex
	lockListByExchange sync.RWMutex
	lockTag            sync.RWMutex
	lockClearTags      sync.RWMutex
}

func (mock *itemLedgerMock) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Item, error) {
	if mock.GetByIDsFunc == nil {
		panic("itemLedgerMock.GetByIDsFunc: method is nil but itemLedger.GetByIDs was just called")
	}
	callInfo := struct {
		IDs []uuid.UUID
	}{IDs: ids}
	mock.lockGetByIDs.Lock()
	mock.calls.GetByIDs = append(mock.calls.GetByIDs, callInfo)
	mock.lockGetByIDs.Unlock()
	return mock.GetByIDsFunc(ctx, ids)
}

func (mock *itemLedgerMock) GetByIDsCalls() []struct {
	IDs []uuid.UUID
} {
	mock.lockGetByIDs.RLock()
	calls := mock.calls.GetByIDs
	mock.lockGetByIDs.RUnlock()
	return calls
}

func (mock *itemLedgerMock) ListByExchange(ctx context.Context, exchangeID uuid.UUID) ([]domain.Item, error) {
	if mock.ListByExchangeFunc == nil {
		panic("itemLedgerMock.ListByExchangeFunc: method is nil but itemLedger.ListByExchange was just called")
	}
	callInfo := struct {
		ExchangeID uuid.UUID
	}{ExchangeID: exchangeID}
	mock.lockListByExchange.Lock()
	mock.calls.ListByExchange = append(mock.calls.ListByExchange, callInfo)
	mock.lockListByExchange.Unlock()
	return mock.ListByExchangeFunc(ctx, exchangeID)
}

func (mock *itemLedgerMock) ListByExchangeCalls() []struct {
	ExchangeID uuid.UUID
} {
	mock.lockListByExchange.RLock()
	calls := mock.calls.ListByExchange
	mock.lockListByExchange.RUnlock()
	return calls
}

func (mock *itemLedgerMock) Tag(ctx context.Context, exchangeID uuid.UUID, ids []uuid.UUID) error {
	if mock.TagFunc == nil {
		panic("itemLedgerMock.TagFunc: method is nil but itemLedger.Tag was just called")
	}
	callInfo := struct {
		ExchangeID uuid.UUID
		IDs        []uuid.UUID
	}{ExchangeID: exchangeID, IDs: ids}
	mock.lockTag.Lock()
	mock.calls.Tag = append(mock.calls.Tag, callInfo)
	mock.lockTag.Unlock()
	return mock.TagFunc(ctx, exchangeID, ids)
}

func (mock *itemLedgerMock) TagCalls() []struct {
	ExchangeID uuid.UUID
	IDs        []uuid.UUID
} {
	mock.lockTag.RLock()
	calls := mock.calls.Tag
	mock.lockTag.RUnlock()
	return calls
}

func (mock *itemLedgerMock) ClearTags(ctx context.Context, exchangeID uuid.UUID) error {
	if mock.ClearTagsFunc == nil {
		panic("itemLedgerMock.ClearTagsFunc: method is nil but itemLedger.ClearTags was just called")
	}
	callInfo := struct {
		ExchangeID uuid.UUID
	}{ExchangeID: exchangeID}
	mock.lockClearTags.Lock()
	mock.calls.ClearTags = append(mock.calls.ClearTags, callInfo)
	mock.lockClearTags.Unlock()
	return mock.ClearTagsFunc(ctx, exchangeID)
}

func (mock *itemLedgerMock) ClearTagsCalls() []struct {
	ExchangeID uuid.UUID
} {
	mock.lockClearTags.RLock()
	calls := mock.calls.ClearTags
	mock.lockClearTags.RUnlock()
	return calls
}
