// Package audit implements the Audit repository using PostgreSQL.
// It provides append-only operations for audit log entries.
package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/bizops-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bizops-backend/internal/domain"
)

const table = "audit_logs"

var columns = []string{"id", "user_id", "action", "old_values", "new_values", "performed_by", "metadata", "created_at"}

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	gw *postgres.Gateway
}

// New creates a new audit repository.
func New(gw *postgres.Gateway) *Repo {
	return &Repo{gw: gw}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new audit entry and returns the persisted row.
func (r *Repo) Create(ctx context.Context, e domain.AuditLogEntry) (*domain.AuditLogEntry, error) {
	oldValues, newValues := e.OldValues, e.NewValues
	if oldValues == nil {
		oldValues = map[string]any{}
	}
	if newValues == nil {
		newValues = map[string]any{}
	}

	query, args, err := postgres.Builder.
		Insert(table).
		Columns("id", "user_id", "action", "old_values", "new_values", "performed_by", "metadata").
		Values(e.ID, e.UserID, e.Action, oldValues, newValues, e.PerformedBy, e.Metadata).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("audit.Create: %w", err)
	}

	var out domain.AuditLogEntry
	err = r.gw.ExecuteWithRetry(ctx, "audit.create", postgres.RetryWrite, func(ctx context.Context) error {
		return postgres.Scan.Get(ctx, r.gw.Querier(ctx), &out, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns one page of entries matching f, newest first, and the total
// number of matching entries. f.Page and f.PageSize must already be
// normalised.
func (r *Repo) List(ctx context.Context, f domain.AuditLogFilter) ([]domain.AuditLogEntry, int, error) {
	where := sq.And{}
	if f.UserID != nil {
		where = append(where, sq.Eq{"user_id": *f.UserID})
	}
	if f.Action != nil {
		where = append(where, sq.Eq{"action": *f.Action})
	}
	if f.PerformedBy != nil {
		where = append(where, sq.Eq{"performed_by": *f.PerformedBy})
	}
	if f.From != nil {
		where = append(where, sq.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		where = append(where, sq.LtOrEq{"created_at": *f.To})
	}

	countQuery, countArgs, err := postgres.Builder.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("audit.List: count: %w", err)
	}
	pageQuery, pageArgs, err := postgres.Builder.
		Select(columns...).
		From(table).
		Where(where).
		OrderBy("created_at DESC").
		Limit(uint64(f.PageSize)).
		Offset(uint64((f.Page - 1) * f.PageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("audit.List: page: %w", err)
	}

	var (
		entries []domain.AuditLogEntry
		total   int
	)
	err = r.gw.ExecuteWithRetry(ctx, "audit.list", postgres.RetryRead, func(ctx context.Context) error {
		q := r.gw.Querier(ctx)
		if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
			return err
		}
		var rows []domain.AuditLogEntry
		if err := postgres.Scan.Select(ctx, q, &rows, pageQuery, pageArgs...); err != nil {
			return err
		}
		entries = rows
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// CountRoleChangesSince returns how many role changes subject received at or
// after since.
func (r *Repo) CountRoleChangesSince(ctx context.Context, subject uuid.UUID, since time.Time) (int, error) {
	query, args, err := postgres.Builder.
		Select("COUNT(*)").
		From(table).
		Where(sq.Eq{"user_id": subject, "action": domain.AuditActionRoleChange}).
		Where(sq.GtOrEq{"created_at": since}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("audit.CountRoleChangesSince: %w", err)
	}

	var n int
	err = r.gw.ExecuteWithRetry(ctx, "audit.count_role_changes", postgres.RetryRead, func(ctx context.Context) error {
		return r.gw.Querier(ctx).QueryRow(ctx, query, args...).Scan(&n)
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
