// Package notification persists system notifications targeted at roles.
package notification

import (
	"context"
	"fmt"

	postgres "github.com/heartmarshall/bizops-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bizops-backend/internal/domain"
)

// Repo provides system notification persistence backed by PostgreSQL.
type Repo struct {
	gw *postgres.Gateway
}

// New creates a new notification repository.
func New(gw *postgres.Gateway) *Repo {
	return &Repo{gw: gw}
}

// Create inserts one system notification row.
func (r *Repo) Create(ctx context.Context, n domain.SystemNotification) error {
	roles := make([]string, len(n.TargetRoles))
	for i, role := range n.TargetRoles {
		roles[i] = string(role)
	}

	query, args, err := postgres.Builder.
		Insert("system_notifications").
		Columns("id", "type", "title", "message", "severity", "metadata", "target_roles").
		Values(n.ID, n.Type, n.Title, n.Message, n.Severity, n.Metadata, roles).
		ToSql()
	if err != nil {
		return fmt.Errorf("notification.Create: %w", err)
	}

	return r.gw.ExecuteWithRetry(ctx, "notification.create", postgres.RetryWrite.Silently(), func(ctx context.Context) error {
		_, err := r.gw.Querier(ctx).Exec(ctx, query, args...)
		return err
	})
}
