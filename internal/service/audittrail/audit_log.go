package audittrail

import (
	"context"
	"fmt"
	"maps"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/pkg/ctxutil"
)

// CreateAuditLog appends one immutable audit entry.
func (s *Service) CreateAuditLog(ctx context.Context, in CreateAuditLogInput) (*domain.AuditLogEntry, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	metadata := in.Metadata
	if reqID := ctxutil.RequestIDFromCtx(ctx); reqID != "" {
		metadata = make(map[string]any, len(in.Metadata)+1)
		maps.Copy(metadata, in.Metadata)
		if _, ok := metadata["request_id"]; !ok {
			metadata["request_id"] = reqID
		}
	}

	entry, err := s.audit.Create(ctx, domain.AuditLogEntry{
		ID:          uuid.New(),
		UserID:      in.Subject,
		Action:      in.Action,
		OldValues:   in.OldValues,
		NewValues:   in.NewValues,
		PerformedBy: in.PerformedBy,
		Metadata:    metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("audittrail.CreateAuditLog: %w", err)
	}
	return entry, nil
}

// GetAuditLogs returns one page of audit entries. The caller must hold an
// elevated role.
func (s *Service) GetAuditLogs(ctx context.Context, f domain.AuditLogFilter) (*domain.AuditLogPage, error) {
	if _, err := requireRole(ctx, domain.ElevatedRoles...); err != nil {
		return nil, err
	}

	f, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}

	entries, total, err := s.audit.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("audittrail.GetAuditLogs: %w", err)
	}
	if entries == nil {
		entries = []domain.AuditLogEntry{}
	}

	return &domain.AuditLogPage{
		Entries:    entries,
		Total:      total,
		Page:       f.Page,
		PageSize:   f.PageSize,
		TotalPages: domain.TotalPages(total, f.PageSize),
	}, nil
}

// requireRole returns the caller when it holds one of roles.
func requireRole(ctx context.Context, roles ...domain.UserRole) (uuid.UUID, error) {
	actor, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	if !ctxutil.HasRole(ctx, names...) {
		return uuid.Nil, domain.ErrForbidden
	}
	return actor, nil
}
