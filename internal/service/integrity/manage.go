package integrity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/pkg/ctxutil"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// elevatedActor returns the caller when it holds an elevated role.
func elevatedActor(ctx context.Context) (uuid.UUID, error) {
	actor, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	roles := make([]string, len(domain.ElevatedRoles))
	for i, r := range domain.ElevatedRoles {
		roles[i] = r.String()
	}
	if !ctxutil.HasRole(ctx, roles...) {
		return uuid.Nil, domain.ErrForbidden
	}
	return actor, nil
}

// ResolveIssue marks an issue resolved by the caller.
func (s *Service) ResolveIssue(ctx context.Context, id uuid.UUID, resolution string) (*domain.DataIntegrityIssue, error) {
	actor, err := elevatedActor(ctx)
	if err != nil {
		return nil, err
	}

	resolution = strings.TrimSpace(resolution)
	if resolution == "" {
		return nil, domain.NewValidationError("resolution", "required")
	}
	if len(resolution) > 2000 {
		return nil, domain.NewValidationError("resolution", "too long")
	}

	issue, err := s.issues.ResolveIssue(ctx, id, actor, resolution)
	if err != nil {
		return nil, fmt.Errorf("integrity.ResolveIssue: %w", err)
	}

	s.log.InfoContext(ctx, "issue resolved",
		slog.String("issue_id", id.String()),
		slog.String("actor_id", actor.String()),
	)
	s.notify.Success(ctx, "Issue resolved", fmt.Sprintf("The %s issue was marked resolved.", issue.IssueType))

	return issue, nil
}

// AcknowledgeAlert marks an open alert acknowledged by the caller.
func (s *Service) AcknowledgeAlert(ctx context.Context, id uuid.UUID) (*domain.DataIntegrityAlert, error) {
	actor, err := elevatedActor(ctx)
	if err != nil {
		return nil, err
	}

	alert, err := s.alerts.AcknowledgeAlert(ctx, id, actor)
	if err != nil {
		return nil, fmt.Errorf("integrity.AcknowledgeAlert: %w", err)
	}

	s.log.InfoContext(ctx, "alert acknowledged",
		slog.String("alert_id", id.String()),
		slog.String("actor_id", actor.String()),
	)
	s.notify.Success(ctx, "Alert acknowledged", fmt.Sprintf("The %s alert was acknowledged.", alert.IssueType))

	return alert, nil
}

// ListIssues returns stored issues newest first.
func (s *Service) ListIssues(ctx context.Context, f domain.IssueFilter) ([]domain.DataIntegrityIssue, error) {
	if f.IssueType != nil && !f.IssueType.IsValid() {
		return nil, domain.NewValidationError("issue_type", "invalid value")
	}
	f.Limit = clampLimit(f.Limit)
	if f.Offset < 0 {
		f.Offset = 0
	}

	issues, err := s.issues.ListIssues(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("integrity.ListIssues: %w", err)
	}
	return issues, nil
}

// ListAlerts returns alerts newest first.
func (s *Service) ListAlerts(ctx context.Context, unacknowledgedOnly bool, limit int) ([]domain.DataIntegrityAlert, error) {
	alerts, err := s.alerts.ListAlerts(ctx, unacknowledgedOnly, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("integrity.ListAlerts: %w", err)
	}
	return alerts, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	}
	return limit
}
