package exchange

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyFunc func(ctx context.Context, userID uuid.UUID, text string) error

	calls struct {
		Notify []struct {
			UserID uuid.UUID
			Text   string
		}
	}
	lockNotify sync.RWMutex
}

func (mock *notifierMock) Notify(ctx context.Context, userID uuid.UUID, text string) error {
	if mock.NotifyFunc == nil {
		panic("notifierMock.NotifyFunc: method is nil but notifier.Notify was just called")
	}
	callInfo := struct {
		UserID uuid.UUID
		Text   string
	}{UserID: userID, Text: text}
	mock.lockNotify.Lock()
	mock.calls.Notify = append(mock.calls.Notify, callInfo)
	mock.lockNotify.Unlock()
	return mock.NotifyFunc(ctx, userID, text)
}

func (mock *notifierMock) NotifyCalls() []struct {
	UserID uuid.UUID
	Text   string
} {
	mock.lockNotify.RLock()
	calls := mock.calls.Notify
	mock.lockNotify.RUnlock()
	return calls
}
