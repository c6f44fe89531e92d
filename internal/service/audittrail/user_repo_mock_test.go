package audittrail

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/bizops-backend/internal/domain"
	"sync"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	CountByRoleFunc       func(ctx context.Context, role domain.UserRole) (int, error)
	UpdateRoleFunc        func(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error)
	UpdateDesignationFunc func(ctx context.Context, id uuid.UUID, designation *string) (*domain.User, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		CountByRole []struct {
			Ctx  context.Context
			Role domain.UserRole
		}
		UpdateRole []struct {
			Ctx  context.Context
			ID   uuid.UUID
			Role domain.UserRole
		}
		UpdateDesignation []struct {
			Ctx         context.Context
			ID          uuid.UUID
			Designation *string
		}
	}
	lockGetByID           sync.RWMutex
	lockCountByRole       sync.RWMutex
	lockUpdateRole        sync.RWMutex
	lockUpdateDesignation sync.RWMutex
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *userRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockGetByID.RLock()
	calls = mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *userRepoMock) CountByRole(ctx context.Context, role domain.UserRole) (int, error) {
	if mock.CountByRoleFunc == nil {
		panic("userRepoMock.CountByRoleFunc: method is nil but userRepo.CountByRole was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Role domain.UserRole
	}{
		Ctx:  ctx,
		Role: role,
	}
	mock.lockCountByRole.Lock()
	mock.calls.CountByRole = append(mock.calls.CountByRole, callInfo)
	mock.lockCountByRole.Unlock()
	return mock.CountByRoleFunc(ctx, role)
}

func (mock *userRepoMock) CountByRoleCalls() []struct {
	Ctx  context.Context
	Role domain.UserRole
} {
	var calls []struct {
		Ctx  context.Context
		Role domain.UserRole
	}
	mock.lockCountByRole.RLock()
	calls = mock.calls.CountByRole
	mock.lockCountByRole.RUnlock()
	return calls
}

func (mock *userRepoMock) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
	if mock.UpdateRoleFunc == nil {
		panic("userRepoMock.UpdateRoleFunc: method is nil but userRepo.UpdateRole was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		ID   uuid.UUID
		Role domain.UserRole
	}{
		Ctx:  ctx,
		ID:   id,
		Role: role,
	}
	mock.lockUpdateRole.Lock()
	mock.calls.UpdateRole = append(mock.calls.UpdateRole, callInfo)
	mock.lockUpdateRole.Unlock()
	return mock.UpdateRoleFunc(ctx, id, role)
}

func (mock *userRepoMock) UpdateRoleCalls() []struct {
	Ctx  context.Context
	ID   uuid.UUID
	Role domain.UserRole
} {
	var calls []struct {
		Ctx  context.Context
		ID   uuid.UUID
		Role domain.UserRole
	}
	mock.lockUpdateRole.RLock()
	calls = mock.calls.UpdateRole
	mock.lockUpdateRole.RUnlock()
	return calls
}

func (mock *userRepoMock) UpdateDesignation(ctx context.Context, id uuid.UUID, designation *string) (*domain.User, error) {
	if mock.UpdateDesignationFunc == nil {
		panic("userRepoMock.UpdateDesignationFunc: method is nil but userRepo.UpdateDesignation was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		ID          uuid.UUID
		Designation *string
	}{
		Ctx:         ctx,
		ID:          id,
		Designation: designation,
	}
	mock.lockUpdateDesignation.Lock()
	mock.calls.UpdateDesignation = append(mock.calls.UpdateDesignation, callInfo)
	mock.lockUpdateDesignation.Unlock()
	return mock.UpdateDesignationFunc(ctx, id, designation)
}

func (mock *userRepoMock) UpdateDesignationCalls() []struct {
	Ctx         context.Context
	ID          uuid.UUID
	Designation *string
} {
	var calls []struct {
		Ctx         context.Context
		ID          uuid.UUID
		Designation *string
	}
	mock.lockUpdateDesignation.RLock()
	calls = mock.calls.UpdateDesignation
	mock.lockUpdateDesignation.RUnlock()
	return calls
}
