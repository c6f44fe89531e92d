package integrity

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/bizops-backend/internal/domain"
	"sync"
)

var _ alertRepo = &alertRepoMock{}

type alertRepoMock struct {
	AlertConfigsFunc     func(ctx context.Context) (map[domain.IssueType]domain.AlertConfig, error)
	UpsertAlertFunc      func(ctx context.Context, a domain.DataIntegrityAlert) (*domain.DataIntegrityAlert, bool, error)
	AcknowledgeAlertFunc func(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*domain.DataIntegrityAlert, error)
	ListAlertsFunc       func(ctx context.Context, unacknowledgedOnly bool, limit int) ([]domain.DataIntegrityAlert, error)

	calls struct {
		AlertConfigs []struct {
			Ctx context.Context
		}
		UpsertAlert []struct {
			Ctx context.Context
			A   domain.DataIntegrityAlert
		}
		AcknowledgeAlert []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Actor uuid.UUID
		}
		ListAlerts []struct {
			Ctx                context.Context
			UnacknowledgedOnly bool
			Limit              int
		}
	}
	lockAlertConfigs     sync.RWMutex
	lockUpsertAlert      sync.RWMutex
	lockAcknowledgeAlert sync.RWMutex
	lockListAlerts       sync.RWMutex
}

func (mock *alertRepoMock) AlertConfigs(ctx context.Context) (map[domain.IssueType]domain.AlertConfig, error) {
	if mock.AlertConfigsFunc == nil {
		panic("alertRepoMock.AlertConfigsFunc: method is nil but alertRepo.AlertConfigs was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockAlertConfigs.Lock()
	mock.calls.AlertConfigs = append(mock.calls.AlertConfigs, callInfo)
	mock.lockAlertConfigs.Unlock()
	return mock.AlertConfigsFunc(ctx)
}

func (mock *alertRepoMock) AlertConfigsCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockAlertConfigs.RLock()
	calls = mock.calls.AlertConfigs
	mock.lockAlertConfigs.RUnlock()
	return calls
}

func (mock *alertRepoMock) UpsertAlert(ctx context.Context, a domain.DataIntegrityAlert) (*domain.DataIntegrityAlert, bool, error) {
	if mock.UpsertAlertFunc == nil {
		panic("alertRepoMock.UpsertAlertFunc: method is nil but alertRepo.UpsertAlert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		A   domain.DataIntegrityAlert
	}{
		Ctx: ctx,
		A:   a,
	}
	mock.lockUpsertAlert.Lock()
	mock.calls.UpsertAlert = append(mock.calls.UpsertAlert, callInfo)
	mock.lockUpsertAlert.Unlock()
	return mock.UpsertAlertFunc(ctx, a)
}

func (mock *alertRepoMock) UpsertAlertCalls() []struct {
	Ctx context.Context
	A   domain.DataIntegrityAlert
} {
	var calls []struct {
		Ctx context.Context
		A   domain.DataIntegrityAlert
	}
	mock.lockUpsertAlert.RLock()
	calls = mock.calls.UpsertAlert
	mock.lockUpsertAlert.RUnlock()
	return calls
}

func (mock *alertRepoMock) AcknowledgeAlert(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*domain.DataIntegrityAlert, error) {
	if mock.AcknowledgeAlertFunc == nil {
		panic("alertRepoMock.AcknowledgeAlertFunc: method is nil but alertRepo.AcknowledgeAlert was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Actor uuid.UUID
	}{
		Ctx:   ctx,
		ID:    id,
		Actor: actor,
	}
	mock.lockAcknowledgeAlert.Lock()
	mock.calls.AcknowledgeAlert = append(mock.calls.AcknowledgeAlert, callInfo)
	mock.lockAcknowledgeAlert.Unlock()
	return mock.AcknowledgeAlertFunc(ctx, id, actor)
}

func (mock *alertRepoMock) AcknowledgeAlertCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Actor uuid.UUID
} {
	var calls []struct {
		Ctx   context.Context
		ID    uuid.UUID
		Actor uuid.UUID
	}
	mock.lockAcknowledgeAlert.RLock()
	calls = mock.calls.AcknowledgeAlert
	mock.lockAcknowledgeAlert.RUnlock()
	return calls
}

func (mock *alertRepoMock) ListAlerts(ctx context.Context, unacknowledgedOnly bool, limit int) ([]domain.DataIntegrityAlert, error) {
	if mock.ListAlertsFunc == nil {
		panic("alertRepoMock.ListAlertsFunc: method is nil but alertRepo.ListAlerts was just called")
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

func (mock *alertRepoMock) ListAlertsCalls() []struct {
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
