package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/internal/service/report"
	"sync"
)

var _ reportService = &reportServiceMock{}

type reportServiceMock struct {
	BatchYieldFunc      func(ctx context.Context, r report.YieldRange) ([]domain.BatchYield, error)
	InvoiceAgingFunc    func(ctx context.Context, bucket string) (*domain.InvoiceAgingReport, error)
	CustomerMetricsFunc func(ctx context.Context, customerID uuid.UUID) (*domain.CustomerMetrics, error)
	LotFunc             func(ctx context.Context, lotID uuid.UUID) (*domain.LotDetail, error)

	calls struct {
		BatchYield []struct {
			Ctx context.Context
			R   report.YieldRange
		}
		InvoiceAging []struct {
			Ctx    context.Context
			Bucket string
		}
		CustomerMetrics []struct {
			Ctx        context.Context
			CustomerID uuid.UUID
		}
		Lot []struct {
			Ctx   context.Context
			LotID uuid.UUID
		}
	}
	lockBatchYield      sync.RWMutex
	lockInvoiceAging    sync.RWMutex
	lockCustomerMetrics sync.RWMutex
	lockLot             sync.RWMutex
}

func (mock *reportServiceMock) BatchYield(ctx context.Context, r report.YieldRange) ([]domain.BatchYield, error) {
	if mock.BatchYieldFunc == nil {
		panic("reportServiceMock.BatchYieldFunc: method is nil but reportService.BatchYield was just called")
	}
	callInfo := struct {
		Ctx context.Context
		R   report.YieldRange
	}{
		Ctx: ctx,
		R:   r,
	}
	mock.lockBatchYield.Lock()
	mock.calls.BatchYield = append(mock.calls.BatchYield, callInfo)
	mock.lockBatchYield.Unlock()
	return mock.BatchYieldFunc(ctx, r)
}

func (mock *reportServiceMock) BatchYieldCalls() []struct {
	Ctx context.Context
	R   report.YieldRange
} {
	var calls []struct {
		Ctx context.Context
		R   report.YieldRange
	}
	mock.lockBatchYield.RLock()
	calls = mock.calls.BatchYield
	mock.lockBatchYield.RUnlock()
	return calls
}

func (mock *reportServiceMock) InvoiceAging(ctx context.Context, bucket string) (*domain.InvoiceAgingReport, error) {
	if mock.InvoiceAgingFunc == nil {
		panic("reportServiceMock.InvoiceAgingFunc: method is nil but reportService.InvoiceAging was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Bucket string
	}{
		Ctx:    ctx,
		Bucket: bucket,
	}
	mock.lockInvoiceAging.Lock()
	mock.calls.InvoiceAging = append(mock.calls.InvoiceAging, callInfo)
	mock.lockInvoiceAging.Unlock()
	return mock.InvoiceAgingFunc(ctx, bucket)
}

func (mock *reportServiceMock) InvoiceAgingCalls() []struct {
	Ctx    context.Context
	Bucket string
} {
	var calls []struct {
		Ctx    context.Context
		Bucket string
	}
	mock.lockInvoiceAging.RLock()
	calls = mock.calls.InvoiceAging
	mock.lockInvoiceAging.RUnlock()
	return calls
}

func (mock *reportServiceMock) CustomerMetrics(ctx context.Context, customerID uuid.UUID) (*domain.CustomerMetrics, error) {
	if mock.CustomerMetricsFunc == nil {
		panic("reportServiceMock.CustomerMetricsFunc: method is nil but reportService.CustomerMetrics was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		CustomerID uuid.UUID
	}{
		Ctx:        ctx,
		CustomerID: customerID,
	}
	mock.lockCustomerMetrics.Lock()
	mock.calls.CustomerMetrics = append(mock.calls.CustomerMetrics, callInfo)
	mock.lockCustomerMetrics.Unlock()
	return mock.CustomerMetricsFunc(ctx, customerID)
}

func (mock *reportServiceMock) CustomerMetricsCalls() []struct {
	Ctx        context.Context
	CustomerID uuid.UUID
} {
	var calls []struct {
		Ctx        context.Context
		CustomerID uuid.UUID
	}
	mock.lockCustomerMetrics.RLock()
	calls = mock.calls.CustomerMetrics
	mock.lockCustomerMetrics.RUnlock()
	return calls
}

func (mock *reportServiceMock) Lot(ctx context.Context, lotID uuid.UUID) (*domain.LotDetail, error) {
	if mock.LotFunc == nil {
		panic("reportServiceMock.LotFunc: method is nil but reportService.Lot was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		LotID uuid.UUID
	}{
		Ctx:   ctx,
		LotID: lotID,
	}
	mock.lockLot.Lock()
	mock.calls.Lot = append(mock.calls.Lot, callInfo)
	mock.lockLot.Unlock()
	return mock.LotFunc(ctx, lotID)
}

func (mock *reportServiceMock) LotCalls() []struct {
	Ctx   context.Context
	LotID uuid.UUID
} {
	var calls []struct {
		Ctx   context.Context
		LotID uuid.UUID
	}
	mock.lockLot.RLock()
	calls = mock.calls.Lot
	mock.lockLot.RUnlock()
	return calls
}
