// Package outbox persists dependent writes that failed once and are retried
// by a background worker.
package outbox

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/bizops-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bizops-backend/internal/domain"
)

const table = "outbox_entries"

var columns = []string{
	"id", "kind", "lot_id", "quantity", "reference_type", "reference_id", "note",
	"status", "attempts", "max_attempts", "last_error", "created_at", "updated_at",
}

type entryRow struct {
	ID            uuid.UUID            `db:"id"`
	Kind          domain.OutboxKind    `db:"kind"`
	LotID         uuid.UUID            `db:"lot_id"`
	Quantity      decimal.Decimal      `db:"quantity"`
	ReferenceType domain.ReferenceType `db:"reference_type"`
	ReferenceID   uuid.UUID            `db:"reference_id"`
	Note          string               `db:"note"`
	Status        domain.OutboxStatus  `db:"status"`
	Attempts      int                  `db:"attempts"`
	MaxAttempts   int                  `db:"max_attempts"`
	LastError     *string              `db:"last_error"`
	CreatedAt     time.Time            `db:"created_at"`
	UpdatedAt     time.Time            `db:"updated_at"`
}

func (r entryRow) toDomain() domain.OutboxEntry {
	return domain.OutboxEntry{
		ID:       r.ID,
		Kind:     r.Kind,
		LotID:    r.LotID,
		Quantity: r.Quantity,
		Reference: domain.MovementReference{
			Type: r.ReferenceType,
			ID:   r.ReferenceID,
			Note: r.Note,
		},
		Status:      r.Status,
		Attempts:    r.Attempts,
		MaxAttempts: r.MaxAttempts,
		LastError:   r.LastError,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Repo provides outbox persistence backed by PostgreSQL.
type Repo struct {
	gw *postgres.Gateway
}

// New creates a new outbox repository.
func New(gw *postgres.Gateway) *Repo {
	return &Repo{gw: gw}
}

// Enqueue stores a pending entry together with the error that deferred it.
func (r *Repo) Enqueue(ctx context.Context, e domain.OutboxEntry) error {
	query, args, err := postgres.Builder.
		Insert(table).
		Columns("id", "kind", "lot_id", "quantity", "reference_type", "reference_id", "note", "max_attempts", "last_error").
		Values(e.ID, e.Kind, e.LotID, e.Quantity, e.Reference.Type, e.Reference.ID, e.Reference.Note, e.MaxAttempts, e.LastError).
		ToSql()
	if err != nil {
		return fmt.Errorf("outbox.Enqueue: %w", err)
	}

	return r.gw.ExecuteWithRetry(ctx, "outbox.enqueue", postgres.RetryWrite.Silently(), func(ctx context.Context) error {
		_, err := r.gw.Querier(ctx).Exec(ctx, query, args...)
		return err
	})
}

// ClaimBatch marks up to limit pending entries as processing and returns
// them, oldest first. Rows locked by a concurrent worker are skipped.
func (r *Repo) ClaimBatch(ctx context.Context, limit int) ([]domain.OutboxEntry, error) {
	query := `UPDATE ` + table + ` SET status = 'processing', updated_at = now()
		WHERE id IN (
			SELECT id FROM ` + table + `
			WHERE status = 'pending'
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + strings.Join(columns, ", ")

	var rows []entryRow
	err := r.gw.ExecuteWithRetry(ctx, "outbox.claim", postgres.RetryWrite.Silently(), func(ctx context.Context) error {
		var out []entryRow
		if err := postgres.Scan.Select(ctx, r.gw.Querier(ctx), &out, query, limit); err != nil {
			return err
		}
		rows = out
		return nil
	})
	if err != nil {
		return nil, err
	}

	entries := make([]domain.OutboxEntry, len(rows))
	for i, row := range rows {
		entries[i] = row.toDomain()
	}
	return entries, nil
}

// MarkDone completes an entry.
func (r *Repo) MarkDone(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, "outbox.mark_done", postgres.Builder.
		Update(table).
		Set("status", domain.OutboxDone).
		Set("attempts", sq.Expr("attempts + 1")).
		Set("last_error", nil).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}))
}

// MarkAttemptFailed records a failed attempt. The entry returns to pending,
// or becomes failed once max_attempts is reached.
func (r *Repo) MarkAttemptFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return r.exec(ctx, "outbox.mark_failed", postgres.Builder.
		Update(table).
		Set("status", sq.Expr("CASE WHEN attempts + 1 >= max_attempts THEN 'failed' ELSE 'pending' END")).
		Set("attempts", sq.Expr("attempts + 1")).
		Set("last_error", reason).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}))
}

// RetryAllFailed returns every failed entry to pending with a fresh attempt
// budget and reports how many were reset.
func (r *Repo) RetryAllFailed(ctx context.Context) (int64, error) {
	query, args, err := postgres.Builder.
		Update(table).
		Set("status", domain.OutboxPending).
		Set("attempts", 0).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"status": domain.OutboxFailed}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("outbox.RetryAllFailed: %w", err)
	}

	var n int64
	err = r.gw.ExecuteWithRetry(ctx, "outbox.retry_failed", postgres.RetryWrite, func(ctx context.Context) error {
		tag, err := r.gw.Querier(ctx).Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		n = tag.RowsAffected()
		return nil
	})
	return n, err
}

// Stats counts entries by status.
func (r *Repo) Stats(ctx context.Context) (domain.OutboxStats, error) {
	type statusCount struct {
		Status domain.OutboxStatus `db:"status"`
		Count  int                 `db:"count"`
	}

	b := postgres.Builder.Select("status", "COUNT(*) AS count").From(table).GroupBy("status")
	rows, err := postgres.SelectAll[statusCount](ctx, r.gw, "outbox.stats", b)
	if err != nil {
		return domain.OutboxStats{}, err
	}

	var s domain.OutboxStats
	for _, row := range rows {
		switch row.Status {
		case domain.OutboxPending:
			s.Pending = row.Count
		case domain.OutboxProcessing:
			s.Processing = row.Count
		case domain.OutboxDone:
			s.Done = row.Count
		case domain.OutboxFailed:
			s.Failed = row.Count
		}
	}
	return s, nil
}

func (r *Repo) exec(ctx context.Context, label string, b sq.UpdateBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}
	return r.gw.ExecuteWithRetry(ctx, label, postgres.RetryWrite.Silently(), func(ctx context.Context) error {
		_, err := r.gw.Querier(ctx).Exec(ctx, query, args...)
		return err
	})
}
