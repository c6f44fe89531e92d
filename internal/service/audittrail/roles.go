package audittrail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizops-backend/internal/domain"
)

// ValidateRoleChange checks whether subject may be given newRole. It
// rejects demoting the last admin and changing a role more than the guard
// allows within its window.
//
// The admin count is read without locking, so two concurrent demotions of
// the last two admins can both pass.
func (s *Service) ValidateRoleChange(ctx context.Context, subject uuid.UUID, newRole domain.UserRole) error {
	_, err := s.validateRoleChange(ctx, subject, newRole)
	return err
}

func (s *Service) validateRoleChange(ctx context.Context, subject uuid.UUID, newRole domain.UserRole) (*domain.User, error) {
	if !newRole.IsValid() {
		return nil, domain.NewValidationError("role", "invalid role")
	}

	user, err := s.users.GetByID(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user.Role == newRole {
		return nil, domain.NewValidationError("role", "user already has this role")
	}

	if user.Role == domain.UserRoleAdmin {
		admins, err := s.users.CountByRole(ctx, domain.UserRoleAdmin)
		if err != nil {
			return nil, fmt.Errorf("count admins: %w", err)
		}
		if admins <= 1 {
			return nil, domain.NewValidationError("role", "cannot demote the last admin")
		}
	}

	if s.guard.MaxChanges > 0 {
		since := s.now().Add(-s.guard.Window)
		changes, err := s.audit.CountRoleChangesSince(ctx, subject, since)
		if err != nil {
			return nil, fmt.Errorf("count role changes: %w", err)
		}
		if changes >= s.guard.MaxChanges {
			return nil, domain.NewValidationError("role",
				fmt.Sprintf("role already changed %d time(s) within %s", changes, s.guard.Window))
		}
	}

	return user, nil
}

// ChangeUserRole sets subject's role. The role update and its audit entry
// are written in one transaction. Admin only.
func (s *Service) ChangeUserRole(ctx context.Context, subject uuid.UUID, newRole domain.UserRole) (*domain.User, error) {
	actor, err := requireRole(ctx, domain.UserRoleAdmin)
	if err != nil {
		return nil, err
	}

	updated, err := s.changeRole(ctx, actor, subject, newRole)
	if err != nil {
		return nil, fmt.Errorf("audittrail.ChangeUserRole: %w", err)
	}

	s.notify.Success(ctx, "Role updated", fmt.Sprintf("%s is now %s.", updated.Name, updated.Role))
	return updated, nil
}

func (s *Service) changeRole(ctx context.Context, actor, subject uuid.UUID, newRole domain.UserRole) (*domain.User, error) {
	var updated *domain.User
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.validateRoleChange(ctx, subject, newRole)
		if err != nil {
			return err
		}

		updated, err = s.users.UpdateRole(ctx, subject, newRole)
		if err != nil {
			return fmt.Errorf("update role: %w", err)
		}

		_, err = s.CreateAuditLog(ctx, CreateAuditLogInput{
			Subject:     subject,
			Action:      domain.AuditActionRoleChange,
			OldValues:   map[string]any{"role": current.Role.String()},
			NewValues:   map[string]any{"role": newRole.String()},
			PerformedBy: actor,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user role changed",
		slog.String("user_id", subject.String()),
		slog.String("new_role", newRole.String()),
		slog.String("actor_id", actor.String()),
	)
	return updated, nil
}

// BulkRoleUpdate applies each change independently and reports the
// outcome of every one. A failed change does not stop the rest.
func (s *Service) BulkRoleUpdate(ctx context.Context, changes []domain.RoleChange) ([]domain.RoleChangeOutcome, error) {
	actor, err := requireRole(ctx, domain.UserRoleAdmin)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return nil, domain.NewValidationError("changes", "required")
	}

	outcomes := make([]domain.RoleChangeOutcome, len(changes))
	applied := 0
	for i, c := range changes {
		outcomes[i] = domain.RoleChangeOutcome{UserID: c.UserID, NewRole: c.NewRole}
		if _, err := s.changeRole(ctx, actor, c.UserID, c.NewRole); err != nil {
			outcomes[i].Error = err.Error()
			s.log.WarnContext(ctx, "bulk role change failed",
				slog.String("user_id", c.UserID.String()),
				slog.String("new_role", c.NewRole.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		outcomes[i].Applied = true
		applied++
	}

	msg := fmt.Sprintf("%d of %d role change(s) applied.", applied, len(changes))
	if applied == len(changes) {
		s.notify.Success(ctx, "Bulk role update", msg)
	} else {
		s.notify.Warning(ctx, "Bulk role update", msg)
	}

	return outcomes, nil
}

// UpdateDesignation sets or clears subject's designation and records it.
// The caller must hold an elevated role.
func (s *Service) UpdateDesignation(ctx context.Context, subject uuid.UUID, designation *string) (*domain.User, error) {
	actor, err := requireRole(ctx, domain.ElevatedRoles...)
	if err != nil {
		return nil, err
	}
	if designation != nil && len(*designation) > 120 {
		return nil, domain.NewValidationError("designation", "too long")
	}

	var updated *domain.User
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.users.GetByID(ctx, subject)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}

		updated, err = s.users.UpdateDesignation(ctx, subject, designation)
		if err != nil {
			return fmt.Errorf("update designation: %w", err)
		}

		_, err = s.CreateAuditLog(ctx, CreateAuditLogInput{
			Subject:     subject,
			Action:      domain.AuditActionDesignationChange,
			OldValues:   map[string]any{"designation": current.Designation},
			NewValues:   map[string]any{"designation": designation},
			PerformedBy: actor,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("audittrail.UpdateDesignation: %w", err)
	}

	s.notify.Success(ctx, "Designation updated", fmt.Sprintf("%s's designation was updated.", updated.Name))
	return updated, nil
}
