package rest

import (
	"context"
	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/internal/service/production"
	"sync"
)

var _ productionService = &productionServiceMock{}

type productionServiceMock struct {
	CreateProductionBatchFunc   func(ctx context.Context, in production.CreateBatchInput) (*domain.BatchWithInputs, error)
	RollbackProductionBatchFunc func(ctx context.Context, in production.RollbackInput) (*production.RollbackResult, error)
	TransitionStatusFunc        func(ctx context.Context, in production.TransitionInput) (*domain.ProductionBatch, error)

	calls struct {
		CreateProductionBatch []struct {
			Ctx context.Context
			In  production.CreateBatchInput
		}
		RollbackProductionBatch []struct {
			Ctx context.Context
			In  production.RollbackInput
		}
		TransitionStatus []struct {
			Ctx context.Context
			In  production.TransitionInput
		}
	}
	lockCreateProductionBatch   sync.RWMutex
	lockRollbackProductionBatch sync.RWMutex
	lockTransitionStatus        sync.RWMutex
}

func (mock *productionServiceMock) CreateProductionBatch(ctx context.Context, in production.CreateBatchInput) (*domain.BatchWithInputs, error) {
	if mock.CreateProductionBatchFunc == nil {
		panic("productionServiceMock.CreateProductionBatchFunc: method is nil but productionService.CreateProductionBatch was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  production.CreateBatchInput
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockCreateProductionBatch.Lock()
	mock.calls.CreateProductionBatch = append(mock.calls.CreateProductionBatch, callInfo)
	mock.lockCreateProductionBatch.Unlock()
	return mock.CreateProductionBatchFunc(ctx, in)
}

func (mock *productionServiceMock) CreateProductionBatchCalls() []struct {
	Ctx context.Context
	In  production.CreateBatchInput
} {
	var calls []struct {
		Ctx context.Context
		In  production.CreateBatchInput
	}
	mock.lockCreateProductionBatch.RLock()
	calls = mock.calls.CreateProductionBatch
	mock.lockCreateProductionBatch.RUnlock()
	return calls
}

func (mock *productionServiceMock) RollbackProductionBatch(ctx context.Context, in production.RollbackInput) (*production.RollbackResult, error) {
	if mock.RollbackProductionBatchFunc == nil {
		panic("productionServiceMock.RollbackProductionBatchFunc: method is nil but productionService.RollbackProductionBatch was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  production.RollbackInput
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockRollbackProductionBatch.Lock()
	mock.calls.RollbackProductionBatch = append(mock.calls.RollbackProductionBatch, callInfo)
	mock.lockRollbackProductionBatch.Unlock()
	return mock.RollbackProductionBatchFunc(ctx, in)
}

func (mock *productionServiceMock) RollbackProductionBatchCalls() []struct {
	Ctx context.Context
	In  production.RollbackInput
} {
	var calls []struct {
		Ctx context.Context
		In  production.RollbackInput
	}
	mock.lockRollbackProductionBatch.RLock()
	calls = mock.calls.RollbackProductionBatch
	mock.lockRollbackProductionBatch.RUnlock()
	return calls
}

func (mock *productionServiceMock) TransitionStatus(ctx context.Context, in production.TransitionInput) (*domain.ProductionBatch, error) {
	if mock.TransitionStatusFunc == nil {
		panic("productionServiceMock.TransitionStatusFunc: method is nil but productionService.TransitionStatus was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  production.TransitionInput
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockTransitionStatus.Lock()
	mock.calls.TransitionStatus = append(mock.calls.TransitionStatus, callInfo)
	mock.lockTransitionStatus.Unlock()
	return mock.TransitionStatusFunc(ctx, in)
}

func (mock *productionServiceMock) TransitionStatusCalls() []struct {
	Ctx context.Context
	In  production.TransitionInput
} {
	var calls []struct {
		Ctx context.Context
		In  production.TransitionInput
	}
	mock.lockTransitionStatus.RLock()
	calls = mock.calls.TransitionStatus
	mock.lockTransitionStatus.RUnlock()
	return calls
}
