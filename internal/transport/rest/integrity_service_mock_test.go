package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/internal/service/integrity"
	"sync"
)

var _ integrityService = &integrityServiceMock{}

type integrityServiceMock struct {
	RunAllChecksFunc              func(ctx context.Context) (*integrity.RunReport, error)
	CheckInventoryConsistencyFunc func(ctx context.Context) (*integrity.RunReport, error)
	ListIssuesFunc                func(ctx context.Context, f domain.IssueFilter) ([]domain.DataIntegrityIssue, error)
	ResolveIssueFunc              func(ctx context.Context, id uuid.UUID, resolution string) (*domain.DataIntegrityIssue, error)
	ListAlertsFunc                func(ctx context.Context, unacknowledgedOnly bool, limit int) ([]domain.DataIntegrityAlert, error)
	AcknowledgeAlertFunc          func(ctx context.Context, id uuid.UUID) (*domain.DataIntegrityAlert, error)

	calls struct {
		RunAllChecks []struct {
			Ctx context.Context
		}
		CheckInventoryConsistency []struct {
			Ctx context.Context
		}
		ListIssues []struct {
			Ctx context.Context
			F   domain.IssueFilter
		}
		ResolveIssue []struct {
			Ctx        context.Context
			ID         uuid.UUID
			Resolution string
		}
		ListAlerts []struct {
			Ctx                context.Context
			UnacknowledgedOnly bool
			Limit              int
		}
		AcknowledgeAlert []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockRunAllChecks              sync.RWMutex
	lockCheckInventoryConsistency sync.RWMutex
	lockListIssues                sync.RWMutex
	lockResolveIssue              sync.RWMutex
	lockListAlerts                sync.RWMutex
	lockAcknowledgeAlert          sync.RWMutex
}

func (mock *integrityServiceMock) RunAllChecks(ctx context.Context) (*integrity.RunReport, error) {
	if mock.RunAllChecksFunc == nil {
		panic("integrityServiceMock.RunAllChecksFunc: method is nil but integrityService.RunAllChecks was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockRunAllChecks.Lock()
	mock.calls.RunAllChecks = append(mock.calls.RunAllChecks, callInfo)
	mock.lockRunAllChecks.Unlock()
	return mock.RunAllChecksFunc(ctx)
}

func (mock *integrityServiceMock) RunAllChecksCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockRunAllChecks.RLock()
	calls = mock.calls.RunAllChecks
	mock.lockRunAllChecks.RUnlock()
	return calls
}

func (mock *integrityServiceMock) CheckInventoryConsistency(ctx context.Context) (*integrity.RunReport, error) {
	if mock.CheckInventoryConsistencyFunc == nil {
		panic("integrityServiceMock.CheckInventoryConsistencyFunc: method is nil but integrityService.CheckInventoryConsistency was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockCheckInventoryConsistency.Lock()
	mock.calls.CheckInventoryConsistency = append(mock.calls.CheckInventoryConsistency, callInfo)
	mock.lockCheckInventoryConsistency.Unlock()
	return mock.CheckInventoryConsistencyFunc(ctx)
}

func (mock *integrityServiceMock) CheckInventoryConsistencyCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockCheckInventoryConsistency.RLock()
	calls = mock.calls.CheckInventoryConsistency
	mock.lockCheckInventoryConsistency.RUnlock()
	return calls
}

func (mock *integrityServiceMock) ListIssues(ctx context.Context, f domain.IssueFilter) ([]domain.DataIntegrityIssue, error) {
	if mock.ListIssuesFunc == nil {
		panic("integrityServiceMock.ListIssuesFunc: method is nil but integrityService.ListIssues was just called")
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

func (mock *integrityServiceMock) ListIssuesCalls() []struct {
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

func (mock *integrityServiceMock) ResolveIssue(ctx context.Context, id uuid.UUID, resolution string) (*domain.DataIntegrityIssue, error) {
	if mock.ResolveIssueFunc == nil {
		panic("integrityServiceMock.ResolveIssueFunc: method is nil but integrityService.ResolveIssue was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ID         uuid.UUID
		Resolution string
	}{
		Ctx:        ctx,
		ID:         id,
		Resolution: resolution,
	}
	mock.lockResolveIssue.Lock()
	mock.calls.ResolveIssue = append(mock.calls.ResolveIssue, callInfo)
	mock.lockResolveIssue.Unlock()
	return mock.ResolveIssueFunc(ctx, id, resolution)
}

func (mock *integrityServiceMock) ResolveIssueCalls() []struct {
	Ctx        context.Context
	ID         uuid.UUID
	Resolution string
} {
	var calls []struct {
		Ctx        context.Context
		ID         uuid.UUID
		Resolution string
	}
	mock.lockResolveIssue.RLock()
	calls = mock.calls.ResolveIssue
	mock.lockResolveIssue.RUnlock()
	return calls
}

func (mock *integrityServiceMock) ListAlerts(ctx context.Context, unacknowledgedOnly bool, limit int) ([]domain.DataIntegrityAlert, error) {
	if mock.ListAlertsFunc == nil {
		panic("integrityServiceMock.ListAlertsFunc: method is nil but integrityService.ListAlerts was just called")
	}
	callInfo := struct {
		Ctx                context.Context
		UnacknowledgedOnly bool
		Limit              int
	}{
		Ctx:                ctx,
		UnacknowledgedOnly: unacknowledgedOnly,
		Limit:              limit,
	}
	mock.lockListAlerts.Lock()
	mock.calls.ListAlerts = append(mock.calls.ListAlerts, callInfo)
	mock.lockListAlerts.Unlock()
	return mock.ListAlertsFunc(ctx, unacknowledgedOnly, limit)
}

func (mock *integrityServiceMock) ListAlertsCalls() []struct {
	Ctx                context.Context
	UnacknowledgedOnly bool
	Limit              int
} {
	var calls []struct {
		Ctx                context.Context
		UnacknowledgedOnly bool
		Limit              int
	}
	mock.lockListAlerts.RLock()
	calls = mock.calls.ListAlerts
	mock.lockListAlerts.RUnlock()
	return calls
}

func (mock *integrityServiceMock) AcknowledgeAlert(ctx context.Context, id uuid.UUID) (*domain.DataIntegrityAlert, error) {
	if mock.AcknowledgeAlertFunc == nil {
		panic("integrityServiceMock.AcknowledgeAlertFunc: method is nil but integrityService.AcknowledgeAlert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockAcknowledgeAlert.Lock()
	mock.calls.AcknowledgeAlert = append(mock.calls.AcknowledgeAlert, callInfo)
	mock.lockAcknowledgeAlert.Unlock()
	return mock.AcknowledgeAlertFunc(ctx, id)
}

func (mock *integrityServiceMock) AcknowledgeAlertCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockAcknowledgeAlert.RLock()
	calls = mock.calls.AcknowledgeAlert
	mock.lockAcknowledgeAlert.RUnlock()
	return calls
}
