package integrity

import (
	"context"
	"github.com/heartmarshall/bizops-backend/internal/domain"
	"sync"
)

var _ notificationRepo = &notificationRepoMock{}

type notificationRepoMock struct {
	CreateFunc func(ctx context.Context, n domain.SystemNotification) error

	calls struct {
		Create []struct {
			Ctx context.Context
			N   domain.SystemNotification
		}
	}
	lockCreate sync.RWMutex
}

func (mock *notificationRepoMock) Create(ctx context.Context, n domain.SystemNotification) error {
	if mock.CreateFunc == nil {
		panic("notificationRepoMock.CreateFunc: method is nil but notificationRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		N   domain.SystemNotification
	}{
		Ctx: ctx,
		N:   n,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, n)
}

func (mock *notificationRepoMock) CreateCalls() []struct {
	Ctx context.Context
	N   domain.SystemNotification
} {
	var calls []struct {
		Ctx context.Context
		N   domain.SystemNotification
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
