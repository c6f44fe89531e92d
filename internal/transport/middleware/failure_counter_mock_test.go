package middleware

import (
	"context"
	"sync"
)

var _ failureCounter = &failureCounterMock{}

type failureCounterMock struct {
	RecordFailureFunc func(ctx context.Context, identity string, origin string) (int64, error)
	FailuresFunc      func(ctx context.Context, identity string, origin string) (int64, error)
	ResetFunc         func(ctx context.Context, identity string, origin string) error

	calls struct {
		RecordFailure []struct {
			Ctx      context.Context
			Identity string
			Origin   string
		}
		Failures []struct {
			Ctx      context.Context
			Identity string
			Origin   string
		}
		Reset []struct {
			Ctx      context.Context
			Identity string
			Origin   string
		}
	}
	lockRecordFailure sync.RWMutex
	lockFailures      sync.RWMutex
	lockReset         sync.RWMutex
}

func (mock *failureCounterMock) RecordFailure(ctx context.Context, identity string, origin string) (int64, error) {
	if mock.RecordFailureFunc == nil {
		panic("failureCounterMock.RecordFailureFunc: method is nil but failureCounter.RecordFailure was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Identity string
		Origin   string
	}{
		Ctx:      ctx,
		Identity: identity,
		Origin:   origin,
	}
	mock.lockRecordFailure.Lock()
	mock.calls.RecordFailure = append(mock.calls.RecordFailure, callInfo)
	mock.lockRecordFailure.Unlock()
	return mock.RecordFailureFunc(ctx, identity, origin)
}

func (mock *failureCounterMock) RecordFailureCalls() []struct {
	Ctx      context.Context
	Identity string
	Origin   string
} {
	var calls []struct {
		Ctx      context.Context
		Identity string
		Origin   string
	}
	mock.lockRecordFailure.RLock()
	calls = mock.calls.RecordFailure
	mock.lockRecordFailure.RUnlock()
	return calls
}

func (mock *failureCounterMock) Failures(ctx context.Context, identity string, origin string) (int64, error) {
	if mock.FailuresFunc == nil {
		panic("failureCounterMock.FailuresFunc: method is nil but failureCounter.Failures was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Identity string
		Origin   string
	}{
		Ctx:      ctx,
		Identity: identity,
		Origin:   origin,
	}
	mock.lockFailures.Lock()
	mock.calls.Failures = append(mock.calls.Failures, callInfo)
	mock.lockFailures.Unlock()
	return mock.FailuresFunc(ctx, identity, origin)
}

func (mock *failureCounterMock) FailuresCalls() []struct {
	Ctx      context.Context
	Identity string
	Origin   string
} {
	var calls []struct {
		Ctx      context.Context
		Identity string
		Origin   string
	}
	mock.lockFailures.RLock()
	calls = mock.calls.Failures
	mock.lockFailures.RUnlock()
	return calls
}

func (mock *failureCounterMock) Reset(ctx context.Context, identity string, origin string) error {
	if mock.ResetFunc == nil {
		panic("failureCounterMock.ResetFunc: method is nil but failureCounter.Reset was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Identity string
		Origin   string
	}{
		Ctx:      ctx,
		Identity: identity,
		Origin:   origin,
	}
	mock.lockReset.Lock()
	mock.calls.Reset = append(mock.calls.Reset, callInfo)
	mock.lockReset.Unlock()
	return mock.ResetFunc(ctx, identity, origin)
}

func (mock *failureCounterMock) ResetCalls() []struct {
	Ctx      context.Context
	Identity string
	Origin   string
} {
	var calls []struct {
		Ctx      context.Context
		Identity string
		Origin   string
	}
	mock.lockReset.RLock()
	calls = mock.calls.Reset
	mock.lockReset.RUnlock()
	return calls
}
