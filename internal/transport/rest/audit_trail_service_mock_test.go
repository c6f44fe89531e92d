package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/bizops-backend/internal/domain"
	"sync"
)

var _ auditTrailService = &auditTrailServiceMock{}

type auditTrailServiceMock struct {
	ChangeUserRoleFunc    func(ctx context.Context, subject uuid.UUID, newRole domain.UserRole) (*domain.User, error)
	BulkRoleUpdateFunc    func(ctx context.Context, changes []domain.RoleChange) ([]domain.RoleChangeOutcome, error)
	UpdateDesignationFunc func(ctx context.Context, subject uuid.UUID, designation *string) (*domain.User, error)
	GetAuditLogsFunc      func(ctx context.Context, f domain.AuditLogFilter) (*domain.AuditLogPage, error)

	calls struct {
		ChangeUserRole []struct {
			Ctx     context.Context
			Subject uuid.UUID
			NewRole domain.UserRole
		}
		BulkRoleUpdate []struct {
			Ctx     context.Context
			Changes []domain.RoleChange
		}
		UpdateDesignation []struct {
			Ctx         context.Context
			Subject     uuid.UUID
			Designation *string
		}
		GetAuditLogs []struct {
			Ctx context.Context
			F   domain.AuditLogFilter
		}
	}
	lockChangeUserRole    sync.RWMutex
	lockBulkRoleUpdate    sync.RWMutex
	lockUpdateDesignation sync.RWMutex
	lockGetAuditLogs      sync.RWMutex
}

func (mock *auditTrailServiceMock) ChangeUserRole(ctx context.Context, subject uuid.UUID, newRole domain.UserRole) (*domain.User, error) {
	if mock.ChangeUserRoleFunc == nil {
		panic("auditTrailServiceMock.ChangeUserRoleFunc: method is nil but auditTrailService.ChangeUserRole was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Subject uuid.UUID
		NewRole domain.UserRole
	}{
		Ctx:     ctx,
		Subject: subject,
		NewRole: newRole,
	}
	mock.lockChangeUserRole.Lock()
	mock.calls.ChangeUserRole = append(mock.calls.ChangeUserRole, callInfo)
	mock.lockChangeUserRole.Unlock()
	return mock.ChangeUserRoleFunc(ctx, subject, newRole)
}

func (mock *auditTrailServiceMock) ChangeUserRoleCalls() []struct {
	Ctx     context.Context
	Subject uuid.UUID
	NewRole domain.UserRole
} {
	var calls []struct {
		Ctx     context.Context
		Subject uuid.UUID
		NewRole domain.UserRole
	}
	mock.lockChangeUserRole.RLock()
	calls = mock.calls.ChangeUserRole
	mock.lockChangeUserRole.RUnlock()
	return calls
}

func (mock *auditTrailServiceMock) BulkRoleUpdate(ctx context.Context, changes []domain.RoleChange) ([]domain.RoleChangeOutcome, error) {
	if mock.BulkRoleUpdateFunc == nil {
		panic("auditTrailServiceMock.BulkRoleUpdateFunc: method is nil but auditTrailService.BulkRoleUpdate was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Changes []domain.RoleChange
	}{
		Ctx:     ctx,
		Changes: changes,
	}
	mock.lockBulkRoleUpdate.Lock()
	mock.calls.BulkRoleUpdate = append(mock.calls.BulkRoleUpdate, callInfo)
	mock.lockBulkRoleUpdate.Unlock()
	return mock.BulkRoleUpdateFunc(ctx, changes)
}

func (mock *auditTrailServiceMock) BulkRoleUpdateCalls() []struct {
	Ctx     context.Context
	Changes []domain.RoleChange
} {
	var calls []struct {
		Ctx     context.Context
		Changes []domain.RoleChange
	}
	mock.lockBulkRoleUpdate.RLock()
	calls = mock.calls.BulkRoleUpdate
	mock.lockBulkRoleUpdate.RUnlock()
	return calls
}

func (mock *auditTrailServiceMock) UpdateDesignation(ctx context.Context, subject uuid.UUID, designation *string) (*domain.User, error) {
	if mock.UpdateDesignationFunc == nil {
		panic("auditTrailServiceMock.UpdateDesignationFunc: method is nil but auditTrailService.UpdateDesignation was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Subject     uuid.UUID
		Designation *string
	}{
		Ctx:         ctx,
		Subject:     subject,
		Designation: designation,
	}
	mock.lockUpdateDesignation.Lock()
	mock.calls.UpdateDesignation = append(mock.calls.UpdateDesignation, callInfo)
	mock.lockUpdateDesignation.Unlock()
	return mock.UpdateDesignationFunc(ctx, subject, designation)
}

func (mock *auditTrailServiceMock) UpdateDesignationCalls() []struct {
	Ctx         context.Context
	Subject     uuid.UUID
	Designation *string
} {
	var calls []struct {
		Ctx         context.Context
		Subject     uuid.UUID
		Designation *string
	}
	mock.lockUpdateDesignation.RLock()
	calls = mock.calls.UpdateDesignation
	mock.lockUpdateDesignation.RUnlock()
	return calls
}

func (mock *auditTrailServiceMock) GetAuditLogs(ctx context.Context, f domain.AuditLogFilter) (*domain.AuditLogPage, error) {
	if mock.GetAuditLogsFunc == nil {
		panic("auditTrailServiceMock.GetAuditLogsFunc: method is nil but auditTrailService.GetAuditLogs was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.AuditLogFilter
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockGetAuditLogs.Lock()
	mock.calls.GetAuditLogs = append(mock.calls.GetAuditLogs, callInfo)
	mock.lockGetAuditLogs.Unlock()
	return mock.GetAuditLogsFunc(ctx, f)
}

func (mock *auditTrailServiceMock) GetAuditLogsCalls() []struct {
	Ctx context.Context
	F   domain.AuditLogFilter
} {
	var calls []struct {
		Ctx context.Context
		F   domain.AuditLogFilter
	}
	mock.lockGetAuditLogs.RLock()
	calls = mock.calls.GetAuditLogs
	mock.lockGetAuditLogs.RUnlock()
	return calls
}
