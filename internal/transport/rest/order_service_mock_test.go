package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/internal/service/order"
	"sync"
)

var _ orderService = &orderServiceMock{}

type orderServiceMock struct {
	CreateOrderFunc  func(ctx context.Context, in order.CreateOrderInput) (*order.CreateOrderResult, error)
	GetOrderFunc     func(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetInvoiceFunc   func(ctx context.Context, orderID uuid.UUID) (*domain.Invoice, error)
	UpdateStatusFunc func(ctx context.Context, in order.UpdateStatusInput) (*domain.Order, error)

	calls struct {
		CreateOrder []struct {
			Ctx context.Context
			In  order.CreateOrderInput
		}
		GetOrder []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetInvoice []struct {
			Ctx     context.Context
			OrderID uuid.UUID
		}
		UpdateStatus []struct {
			Ctx context.Context
			In  order.UpdateStatusInput
		}
	}
	lockCreateOrder  sync.RWMutex
	lockGetOrder     sync.RWMutex
	lockGetInvoice   sync.RWMutex
	lockUpdateStatus sync.RWMutex
}

func (mock *orderServiceMock) CreateOrder(ctx context.Context, in order.CreateOrderInput) (*order.CreateOrderResult, error) {
	if mock.CreateOrderFunc == nil {
		panic("orderServiceMock.CreateOrderFunc: method is nil but orderService.CreateOrder was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  order.CreateOrderInput
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockCreateOrder.Lock()
	mock.calls.CreateOrder = append(mock.calls.CreateOrder, callInfo)
	mock.lockCreateOrder.Unlock()
	return mock.CreateOrderFunc(ctx, in)
}

func (mock *orderServiceMock) CreateOrderCalls() []struct {
	Ctx context.Context
	In  order.CreateOrderInput
} {
	var calls []struct {
		Ctx context.Context
		In  order.CreateOrderInput
	}
	mock.lockCreateOrder.RLock()
	calls = mock.calls.CreateOrder
	mock.lockCreateOrder.RUnlock()
	return calls
}

func (mock *orderServiceMock) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if mock.GetOrderFunc == nil {
		panic("orderServiceMock.GetOrderFunc: method is nil but orderService.GetOrder was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetOrder.Lock()
	mock.calls.GetOrder = append(mock.calls.GetOrder, callInfo)
	mock.lockGetOrder.Unlock()
	return mock.GetOrderFunc(ctx, id)
}

func (mock *orderServiceMock) GetOrderCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockGetOrder.RLock()
	calls = mock.calls.GetOrder
	mock.lockGetOrder.RUnlock()
	return calls
}

func (mock *orderServiceMock) GetInvoice(ctx context.Context, orderID uuid.UUID) (*domain.Invoice, error) {
	if mock.GetInvoiceFunc == nil {
		panic("orderServiceMock.GetInvoiceFunc: method is nil but orderService.GetInvoice was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OrderID uuid.UUID
	}{
		Ctx:     ctx,
		OrderID: orderID,
	}
	mock.lockGetInvoice.Lock()
	mock.calls.GetInvoice = append(mock.calls.GetInvoice, callInfo)
	mock.lockGetInvoice.Unlock()
	return mock.GetInvoiceFunc(ctx, orderID)
}

func (mock *orderServiceMock) GetInvoiceCalls() []struct {
	Ctx     context.Context
	OrderID uuid.UUID
} {
	var calls []struct {
		Ctx     context.Context
		OrderID uuid.UUID
	}
	mock.lockGetInvoice.RLock()
	calls = mock.calls.GetInvoice
	mock.lockGetInvoice.RUnlock()
	return calls
}

func (mock *orderServiceMock) UpdateStatus(ctx context.Context, in order.UpdateStatusInput) (*domain.Order, error) {
	if mock.UpdateStatusFunc == nil {
		panic("orderServiceMock.UpdateStatusFunc: method is nil but orderService.UpdateStatus was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  order.UpdateStatusInput
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockUpdateStatus.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, callInfo)
	mock.lockUpdateStatus.Unlock()
	return mock.UpdateStatusFunc(ctx, in)
}

func (mock *orderServiceMock) UpdateStatusCalls() []struct {
	Ctx context.Context
	In  order.UpdateStatusInput
} {
	var calls []struct {
		Ctx context.Context
		In  order.UpdateStatusInput
	}
	mock.lockUpdateStatus.RLock()
	calls = mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}
