package integrity

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/shopspring/decimal"
	"sync"
)

var _ issueRepo = &issueRepoMock{}

type issueRepoMock struct {
	FindOrphanedOrdersFunc               func(ctx context.Context) ([]domain.Finding, error)
	FindOrphanedInvoicesFunc             func(ctx context.Context) ([]domain.Finding, error)
	FindOrphanedBatchesFunc              func(ctx context.Context) ([]domain.Finding, error)
	FindNegativeInventoryFunc            func(ctx context.Context) ([]domain.Finding, error)
	FindInventoryDiscrepanciesFunc       func(ctx context.Context) ([]domain.Finding, error)
	FindLowStockFunc                     func(ctx context.Context, fallback decimal.Decimal) ([]domain.Finding, error)
	FindOrphanedLedgerEntriesFunc        func(ctx context.Context) ([]domain.Finding, error)
	FindInvoicesWithoutLedgerEntriesFunc func(ctx context.Context) ([]domain.Finding, error)
	InsertIssuesFunc                     func(ctx context.Context, issues []domain.DataIntegrityIssue) error
	ResolveIssueFunc                     func(ctx context.Context, id uuid.UUID, actor uuid.UUID, resolution string) (*domain.DataIntegrityIssue, error)
	ListIssuesFunc                       func(ctx context.Context, f domain.IssueFilter) ([]domain.DataIntegrityIssue, error)

	calls struct {
		FindOrphanedOrders []struct {
			Ctx context.Context
		}
		FindOrphanedInvoices []struct {
			Ctx context.Context
		}
		FindOrphanedBatches []struct {
			Ctx context.Context
		}
		FindNegativeInventory []struct {
			Ctx context.Context
		}
		FindInventoryDiscrepancies []struct {
			Ctx context.Context
		}
		FindLowStock []struct {
			Ctx      context.Context
			Fallback decimal.Decimal
		}
		FindOrphanedLedgerEntries []struct {
			Ctx context.Context
		}
		FindInvoicesWithoutLedgerEntries []struct {
			Ctx context.Context
		}
		InsertIssues []struct {
			Ctx    context.Context
			Issues []domain.DataIntegrityIssue
		}
		ResolveIssue []struct {
			Ctx        context.Context
			ID         uuid.UUID
			Actor      uuid.UUID
			Resolution string
		}
		ListIssues []struct {
			Ctx context.Context
			F   domain.IssueFilter
		}
	}
	lockFindOrphanedOrders               sync.RWMutex
	lockFindOrphanedInvoices             sync.RWMutex
	lockFindOrphanedBatches              sync.RWMutex
	lockFindNegativeInventory            sync.RWMutex
	lockFindInventoryDiscrepancies       sync.RWMutex
	lockFindLowStock                     sync.RWMutex
	lockFindOrphanedLedgerEntries        sync.RWMutex
	lockFindInvoicesWithoutLedgerEntries sync.RWMutex
	lockInsertIssues                     sync.RWMutex
	lockResolveIssue                     sync.RWMutex
	lockListIssues                       sync.RWMutex
}

func (mock *issueRepoMock) FindOrphanedOrders(ctx context.Context) ([]domain.Finding, error) {
	if mock.FindOrphanedOrdersFunc == nil {
		panic("issueRepoMock.FindOrphanedOrdersFunc: method is nil but issueRepo.FindOrphanedOrders was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockFindOrphanedOrders.Lock()
	mock.calls.FindOrphanedOrders = append(mock.calls.FindOrphanedOrders, callInfo)
	mock.lockFindOrphanedOrders.Unlock()
	return mock.FindOrphanedOrdersFunc(ctx)
}

func (mock *issueRepoMock) FindOrphanedOrdersCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockFindOrphanedOrders.RLock()
	calls = mock.calls.FindOrphanedOrders
	mock.lockFindOrphanedOrders.RUnlock()
	return calls
}

func (mock *issueRepoMock) FindOrphanedInvoices(ctx context.Context) ([]domain.Finding, error) {
	if mock.FindOrphanedInvoicesFunc == nil {
		panic("issueRepoMock.FindOrphanedInvoicesFunc: method is nil but issueRepo.FindOrphanedInvoices was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockFindOrphanedInvoices.Lock()
	mock.calls.FindOrphanedInvoices = append(mock.calls.FindOrphanedInvoices, callInfo)
	mock.lockFindOrphanedInvoices.Unlock()
	return mock.FindOrphanedInvoicesFunc(ctx)
}

func (mock *issueRepoMock) FindOrphanedInvoicesCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockFindOrphanedInvoices.RLock()
	calls = mock.calls.FindOrphanedInvoices
	mock.lockFindOrphanedInvoices.RUnlock()
	return calls
}

func (mock *issueRepoMock) FindOrphanedBatches(ctx context.Context) ([]domain.Finding, error) {
	if mock.FindOrphanedBatchesFunc == nil {
		panic("issueRepoMock.FindOrphanedBatchesFunc: method is nil but issueRepo.FindOrphanedBatches was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockFindOrphanedBatches.Lock()
	mock.calls.FindOrphanedBatches = append(mock.calls.FindOrphanedBatches, callInfo)
	mock.lockFindOrphanedBatches.Unlock()
	return mock.FindOrphanedBatchesFunc(ctx)
}

func (mock *issueRepoMock) FindOrphanedBatchesCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockFindOrphanedBatches.RLock()
	calls = mock.calls.FindOrphanedBatches
	mock.lockFindOrphanedBatches.RUnlock()
	return calls
}

func (mock *issueRepoMock) FindNegativeInventory(ctx context.Context) ([]domain.Finding, error) {
	if mock.FindNegativeInventoryFunc == nil {
		panic("issueRepoMock.FindNegativeInventoryFunc: method is nil but issueRepo.FindNegativeInventory was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockFindNegativeInventory.Lock()
	mock.calls.FindNegativeInventory = append(mock.calls.FindNegativeInventory, callInfo)
	mock.lockFindNegativeInventory.Unlock()
	return mock.FindNegativeInventoryFunc(ctx)
}

func (mock *issueRepoMock) FindNegativeInventoryCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockFindNegativeInventory.RLock()
	calls = mock.calls.FindNegativeInventory
	mock.lockFindNegativeInventory.RUnlock()
	return calls
}

func (mock *issueRepoMock) FindInventoryDiscrepancies(ctx context.Context) ([]domain.Finding, error) {
	if mock.FindInventoryDiscrepanciesFunc == nil {
		panic("issueRepoMock.FindInventoryDiscrepanciesFunc: method is nil but issueRepo.FindInventoryDiscrepancies was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockFindInventoryDiscrepancies.Lock()
	mock.calls.FindInventoryDiscrepancies = append(mock.calls.FindInventoryDiscrepancies, callInfo)
	mock.lockFindInventoryDiscrepancies.Unlock()
	return mock.FindInventoryDiscrepanciesFunc(ctx)
}

func (mock *issueRepoMock) FindInventoryDiscrepanciesCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockFindInventoryDiscrepancies.RLock()
	calls = mock.calls.FindInventoryDiscrepancies
	mock.lockFindInventoryDiscrepancies.RUnlock()
	return calls
}

func (mock *issueRepoMock) FindLowStock(ctx context.Context, fallback decimal.Decimal) ([]domain.Finding, error) {
	if mock.FindLowStockFunc == nil {
		panic("issueRepoMock.FindLowStockFunc: method is nil but issueRepo.FindLowStock was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Fallback decimal.Decimal
	}{
		Ctx:      ctx,
		Fallback: fallback,
	}
	mock.lockFindLowStock.Lock()
	mock.calls.FindLowStock = append(mock.calls.FindLowStock, callInfo)
	mock.lockFindLowStock.Unlock()
	return mock.FindLowStockFunc(ctx, fallback)
}

func (mock *issueRepoMock) FindLowStockCalls() []struct {
	Ctx      context.Context
	Fallback decimal.Decimal
} {
	var calls []struct {
		Ctx      context.Context
		Fallback decimal.Decimal
	}
	mock.lockFindLowStock.RLock()
	calls = mock.calls.FindLowStock
	mock.lockFindLowStock.RUnlock()
	return calls
}

func (mock *issueRepoMock) FindOrphanedLedgerEntries(ctx context.Context) ([]domain.Finding, error) {
	if mock.FindOrphanedLedgerEntriesFunc == nil {
		panic("issueRepoMock.FindOrphanedLedgerEntriesFunc: method is nil but issueRepo.FindOrphanedLedgerEntries was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockFindOrphanedLedgerEntries.Lock()
	mock.calls.FindOrphanedLedgerEntries = append(mock.calls.FindOrphanedLedgerEntries, callInfo)
	mock.lockFindOrphanedLedgerEntries.Unlock()
	return mock.FindOrphanedLedgerEntriesFunc(ctx)
}

func (mock *issueRepoMock) FindOrphanedLedgerEntriesCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockFindOrphanedLedgerEntries.RLock()
	calls = mock.calls.FindOrphanedLedgerEntries
	mock.lockFindOrphanedLedgerEntries.RUnlock()
	return calls
}

func (mock *issueRepoMock) FindInvoicesWithoutLedgerEntries(ctx context.Context) ([]domain.Finding, error) {
	if mock.FindInvoicesWithoutLedgerEntriesFunc == nil {
		panic("issueRepoMock.FindInvoicesWithoutLedgerEntriesFunc: method is nil but issueRepo.FindInvoicesWithoutLedgerEntries was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockFindInvoicesWithoutLedgerEntries.Lock()
	mock.calls.FindInvoicesWithoutLedgerEntries = append(mock.calls.FindInvoicesWithoutLedgerEntries, callInfo)
	mock.lockFindInvoicesWithoutLedgerEntries.Unlock()
	return mock.FindInvoicesWithoutLedgerEntriesFunc(ctx)
}

func (mock *issueRepoMock) FindInvoicesWithoutLedgerEntriesCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockFindInvoicesWithoutLedgerEntries.RLock()
	calls = mock.calls.FindInvoicesWithoutLedgerEntries
	mock.lockFindInvoicesWithoutLedgerEntries.RUnlock()
	return calls
}

func (mock *issueRepoMock) InsertIssues(ctx context.Context, issues []domain.DataIntegrityIssue) error {
	if mock.InsertIssuesFunc == nil {
		panic("issueRepoMock.InsertIssuesFunc: method is nil but issueRepo.InsertIssues was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Issues []domain.DataIntegrityIssue
	}{
		Ctx:    ctx,
		Issues: issues,
	}
	mock.lockInsertIssues.Lock()
	mock.calls.InsertIssues = append(mock.calls.InsertIssues, callInfo)
	mock.lockInsertIssues.Unlock()
	return mock.InsertIssuesFunc(ctx, issues)
}

func (mock *issueRepoMock) InsertIssuesCalls() []struct {
	Ctx    context.Context
	Issues []domain.DataIntegrityIssue
} {
	var calls []struct {
		Ctx    context.Context
		Issues []domain.DataIntegrityIssue
	}
	mock.lockInsertIssues.RLock()
	calls = mock.calls.InsertIssues
	mock.lockInsertIssues.RUnlock()
	return calls
}

func (mock *issueRepoMock) ResolveIssue(ctx context.Context, id uuid.UUID, actor uuid.UUID, resolution string) (*domain.DataIntegrityIssue, error) {
	if mock.ResolveIssueFunc == nil {
		panic("issueRepoMock.ResolveIssueFunc: method is nil but issueRepo.ResolveIssue was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ID         uuid.UUID
		Actor      uuid.UUID
		Resolution string
	}{
		Ctx:        ctx,
		ID:         id,
		Actor:      actor,
		Resolution: resolution,
	}
	mock.lockResolveIssue.Lock()
	mock.calls.ResolveIssue = append(mock.calls.ResolveIssue, callInfo)
	mock.lockResolveIssue.Unlock()
	return mock.ResolveIssueFunc(ctx, id, actor, resolution)
}

func (mock *issueRepoMock) ResolveIssueCalls() []struct {
	Ctx        context.Context
	ID         uuid.UUID
	Actor      uuid.UUID
	Resolution string
} {
	var calls []struct {
		Ctx        context.Context
		ID         uuid.UUID
		Actor      uuid.UUID
		Resolution string
	}
	mock.lockResolveIssue.RLock()
	calls = mock.calls.ResolveIssue
	mock.lockResolveIssue.RUnlock()
	return calls
}

func (mock *issueRepoMock) ListIssues(ctx context.Context, f domain.IssueFilter) ([]domain.DataIntegrityIssue, error) {
	if mock.ListIssuesFunc == nil {
		panic("issueRepoMock.ListIssuesFunc: method is nil but issueRepo.ListIssues was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.IssueFilter
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockListIssues.Lock()
	mock.calls.ListIssues = append(mock.calls.ListIssues, callInfo)
	mock.lockListIssues.Unlock()
	return mock.ListIssuesFunc(ctx, f)
}

func (mock *issueRepoMock) ListIssuesCalls() []struct {
	Ctx context.Context
	F   domain.IssueFilter
} {
	var calls []struct {
		Ctx context.Context
		F   domain.IssueFilter
	}
	mock.lockListIssues.RLock()
	calls = mock.calls.ListIssues
	mock.lockListIssues.RUnlock()
	return calls
}
