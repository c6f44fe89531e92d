package integrity

import (
	"context"
	"sync"
	"time"
)

var _ locker = &lockerMock{}

type lockerMock struct {
	ObtainFunc func(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error)

	calls struct {
		Obtain []struct {
			Ctx context.Context
			Key string
			Ttl time.Duration
		}
	}
	lockObtain sync.RWMutex
}

func (mock *lockerMock) Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	if mock.ObtainFunc == nil {
		panic("lockerMock.ObtainFunc: method is nil but locker.Obtain was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
		Ttl time.Duration
	}{
		Ctx: ctx,
		Key: key,
		Ttl: ttl,
	}
	mock.lockObtain.Lock()
	mock.calls.Obtain = append(mock.calls.Obtain, callInfo)
	mock.lockObtain.Unlock()
	return mock.ObtainFunc(ctx, key, ttl)
}

func (mock *lockerMock) ObtainCalls() []struct {
	Ctx context.Context
	Key string
	Ttl time.Duration
} {
	var calls []struct {
		Ctx context.Context
		Key string
		Ttl time.Duration
	}
	mock.lockObtain.RLock()
	calls = mock.calls.Obtain
	mock.lockObtain.RUnlock()
	return calls
}
