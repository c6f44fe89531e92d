package production

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/shopspring/decimal"
	"sync"
)

var _ stockLedger = &stockLedgerMock{}

type stockLedgerMock struct {
	CheckStockFunc func(ctx context.Context, lotID uuid.UUID, requested decimal.Decimal) (domain.StockCheck, error)
	IncrementFunc  func(ctx context.Context, lotID uuid.UUID, qty decimal.Decimal, ref domain.MovementReference) error

	calls struct {
		CheckStock []struct {
			Ctx       context.Context
			LotID     uuid.UUID
			Requested decimal.Decimal
		}
		Increment []struct {
			Ctx   context.Context
			LotID uuid.UUID
			Qty   decimal.Decimal
			Ref   domain.MovementReference
		}
	}
	lockCheckStock sync.RWMutex
	lockIncrement  sync.RWMutex
}

func (mock *stockLedgerMock) CheckStock(ctx context.Context, lotID uuid.UUID, requested decimal.Decimal) (domain.StockCheck, error) {
	if mock.CheckStockFunc == nil {
		panic("stockLedgerMock.CheckStockFunc: method is nil but stockLedger.CheckStock was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		LotID     uuid.UUID
		Requested decimal.Decimal
	}{
		Ctx:       ctx,
		LotID:     lotID,
		Requested: requested,
	}
	mock.lockCheckStock.Lock()
	mock.calls.CheckStock = append(mock.calls.CheckStock, callInfo)
	mock.lockCheckStock.Unlock()
	return mock.CheckStockFunc(ctx, lotID, requested)
}

func (mock *stockLedgerMock) CheckStockCalls() []struct {
	Ctx       context.Context
	LotID     uuid.UUID
	Requested decimal.Decimal
} {
	var calls []struct {
		Ctx       context.Context
		LotID     uuid.UUID
		Requested decimal.Decimal
	}
	mock.lockCheckStock.RLock()
	calls = mock.calls.CheckStock
	mock.lockCheckStock.RUnlock()
	return calls
}

func (mock *stockLedgerMock) Increment(ctx context.Context, lotID uuid.UUID, qty decimal.Decimal, ref domain.MovementReference) error {
	if mock.IncrementFunc == nil {
		panic("stockLedgerMock.IncrementFunc: method is nil but stockLedger.Increment was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		LotID uuid.UUID
		Qty   decimal.Decimal
		Ref   domain.MovementReference
	}{
		Ctx:   ctx,
		LotID: lotID,
		Qty:   qty,
		Ref:   ref,
	}
	mock.lockIncrement.Lock()
	mock.calls.Increment = append(mock.calls.Increment, callInfo)
	mock.lockIncrement.Unlock()
	return mock.IncrementFunc(ctx, lotID, qty, ref)
}

func (mock *stockLedgerMock) IncrementCalls() []struct {
	Ctx   context.Context
	LotID uuid.UUID
	Qty   decimal.Decimal
	Ref   domain.MovementReference
} {
	var calls []struct {
		Ctx   context.Context
		LotID uuid.UUID
		Qty   decimal.Decimal
		Ref   domain.MovementReference
	}
	mock.lockIncrement.RLock()
	calls = mock.calls.Increment
	mock.lockIncrement.RUnlock()
	return calls
}
