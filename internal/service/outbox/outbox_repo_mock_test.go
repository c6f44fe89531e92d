package outbox

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/bizops-backend/internal/domain"
	"sync"
)

var _ outboxRepo = &outboxRepoMock{}

type outboxRepoMock struct {
	ClaimBatchFunc        func(ctx context.Context, limit int) ([]domain.OutboxEntry, error)
	MarkDoneFunc          func(ctx context.Context, id uuid.UUID) error
	MarkAttemptFailedFunc func(ctx context.Context, id uuid.UUID, reason string) error
	RetryAllFailedFunc    func(ctx context.Context) (int64, error)
	StatsFunc             func(ctx context.Context) (domain.OutboxStats, error)

	calls struct {
		ClaimBatch []struct {
			Ctx   context.Context
			Limit int
		}
		MarkDone []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		MarkAttemptFailed []struct {
			Ctx    context.Context
			ID     uuid.UUID
			Reason string
		}
		RetryAllFailed []struct {
			Ctx context.Context
		}
		Stats []struct {
			Ctx context.Context
		}
	}
	lockClaimBatch        sync.RWMutex
	lockMarkDone          sync.RWMutex
	lockMarkAttemptFailed sync.RWMutex
	lockRetryAllFailed    sync.RWMutex
	lockStats             sync.RWMutex
}

func (mock *outboxRepoMock) ClaimBatch(ctx context.Context, limit int) ([]domain.OutboxEntry, error) {
	if mock.ClaimBatchFunc == nil {
		panic("outboxRepoMock.ClaimBatchFunc: method is nil but outboxRepo.ClaimBatch was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Limit int
	}{
		Ctx:   ctx,
		Limit: limit,
	}
	mock.lockClaimBatch.Lock()
	mock.calls.ClaimBatch = append(mock.calls.ClaimBatch, callInfo)
	mock.lockClaimBatch.Unlock()
	return mock.ClaimBatchFunc(ctx, limit)
}

func (mock *outboxRepoMock) ClaimBatchCalls() []struct {
	Ctx   context.Context
	Limit int
} {
	var calls []struct {
		Ctx   context.Context
		Limit int
	}
	mock.lockClaimBatch.RLock()
	calls = mock.calls.ClaimBatch
	mock.lockClaimBatch.RUnlock()
	return calls
}

func (mock *outboxRepoMock) MarkDone(ctx context.Context, id uuid.UUID) error {
	if mock.MarkDoneFunc == nil {
		panic("outboxRepoMock.MarkDoneFunc: method is nil but outboxRepo.MarkDone was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockMarkDone.Lock()
	mock.calls.MarkDone = append(mock.calls.MarkDone, callInfo)
	mock.lockMarkDone.Unlock()
	return mock.MarkDoneFunc(ctx, id)
}

func (mock *outboxRepoMock) MarkDoneCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockMarkDone.RLock()
	calls = mock.calls.MarkDone
	mock.lockMarkDone.RUnlock()
	return calls
}

func (mock *outboxRepoMock) MarkAttemptFailed(ctx context.Context, id uuid.UUID, reason string) error {
	if mock.MarkAttemptFailedFunc == nil {
		panic("outboxRepoMock.MarkAttemptFailedFunc: method is nil but outboxRepo.MarkAttemptFailed was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     uuid.UUID
		Reason string
	}{
		Ctx:    ctx,
		ID:     id,
		Reason: reason,
	}
	mock.lockMarkAttemptFailed.Lock()
	mock.calls.MarkAttemptFailed = append(mock.calls.MarkAttemptFailed, callInfo)
	mock.lockMarkAttemptFailed.Unlock()
	return mock.MarkAttemptFailedFunc(ctx, id, reason)
}

func (mock *outboxRepoMock) MarkAttemptFailedCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	Reason string
} {
	var calls []struct {
		Ctx    context.Context
		ID     uuid.UUID
		Reason string
	}
	mock.lockMarkAttemptFailed.RLock()
	calls = mock.calls.MarkAttemptFailed
	mock.lockMarkAttemptFailed.RUnlock()
	return calls
}

func (mock *outboxRepoMock) RetryAllFailed(ctx context.Context) (int64, error) {
	if mock.RetryAllFailedFunc == nil {
		panic("outboxRepoMock.RetryAllFailedFunc: method is nil but outboxRepo.RetryAllFailed was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockRetryAllFailed.Lock()
	mock.calls.RetryAllFailed = append(mock.calls.RetryAllFailed, callInfo)
	mock.lockRetryAllFailed.Unlock()
	return mock.RetryAllFailedFunc(ctx)
}

func (mock *outboxRepoMock) RetryAllFailedCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockRetryAllFailed.RLock()
	calls = mock.calls.RetryAllFailed
	mock.lockRetryAllFailed.RUnlock()
	return calls
}

func (mock *outboxRepoMock) Stats(ctx context.Context) (domain.OutboxStats, error) {
	if mock.StatsFunc == nil {
		panic("outboxRepoMock.StatsFunc: method is nil but outboxRepo.Stats was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockStats.Lock()
	mock.calls.Stats = append(mock.calls.Stats, callInfo)
	mock.lockStats.Unlock()
	return mock.StatsFunc(ctx)
}

func (mock *outboxRepoMock) StatsCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockStats.RLock()
	calls = mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}
