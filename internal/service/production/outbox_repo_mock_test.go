package production

import (
	"context"
	"github.com/heartmarshall/bizops-backend/internal/domain"
	"sync"
)

var _ outboxRepo = &outboxRepoMock{}

type outboxRepoMock struct {
	EnqueueFunc func(ctx context.Context, e domain.OutboxEntry) error

	calls struct {
		Enqueue []struct {
			Ctx context.Context
			E   domain.OutboxEntry
		}
	}
	lockEnqueue sync.RWMutex
}

func (mock *outboxRepoMock) Enqueue(ctx context.Context, e domain.OutboxEntry) error {
	if mock.EnqueueFunc == nil {
		panic("outboxRepoMock.EnqueueFunc: method is nil but outboxRepo.Enqueue was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.OutboxEntry
	}{
		Ctx: ctx,
		E:   e,
	}
	mock.lockEnqueue.Lock()
	mock.calls.Enqueue = append(mock.calls.Enqueue, callInfo)
	mock.lockEnqueue.Unlock()
	return mock.EnqueueFunc(ctx, e)
}

func (mock *outboxRepoMock) EnqueueCalls() []struct {
	Ctx context.Context
	E   domain.OutboxEntry
} {
	var calls []struct {
		Ctx context.Context
		E   domain.OutboxEntry
	}
	mock.lockEnqueue.RLock()
	calls = mock.calls.Enqueue
	mock.lockEnqueue.RUnlock()
	return calls
}
