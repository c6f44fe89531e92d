// Package integrity implements the consistency-check queries and the
// persistence of integrity issues, alert configurations and alerts.
package integrity

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/bizops-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bizops-backend/internal/domain"
)

const insertChunk = 500

const (
	issuesTable = "data_integrity_issues"
	alertsTable = "data_integrity_alerts"
)

var issueColumns = []string{
	"id", "run_id", "issue_type", "description", "severity", "entity_type",
	"entity_id", "detected_at", "resolved_at", "resolved_by", "resolution",
}

var alertColumns = []string{
	"id", "issue_type", "severity", "message", "issue_count", "fingerprint",
	"occurrences", "first_seen_at", "last_seen_at", "acknowledged",
	"acknowledged_by", "acknowledged_at",
}

type detector struct {
	entityType string
	query      string
}

var detectors = map[domain.IssueType]detector{
	domain.IssueOrphanedOrder: {"order", `
		SELECT o.id AS entity_id, 'Order ' || o.order_number || ' has no invoice' AS description
		FROM orders o
		LEFT JOIN invoices i ON i.order_id = o.id
		WHERE i.id IS NULL AND o.status <> 'cancelled'`},
	domain.IssueOrphanedInvoice: {"invoice", `
		SELECT i.id AS entity_id, 'Invoice ' || i.invoice_number || ' references missing order ' || i.order_id AS description
		FROM invoices i
		LEFT JOIN orders o ON o.id = i.order_id
		WHERE o.id IS NULL`},
	domain.IssueOrphanedProductionBatch: {"production_batch", `
		SELECT b.id AS entity_id, 'Production batch ' || b.batch_number || ' has no inputs' AS description
		FROM production_batches b
		WHERE NOT EXISTS (SELECT 1 FROM batch_inputs bi WHERE bi.batch_id = b.id)`},
	domain.IssueNegativeInventory: {"material_intake_record", `
		SELECT m.id AS entity_id, 'Material ' || m.material_name || ' has negative remaining quantity ' || m.remaining_quantity AS description
		FROM material_intake_records m
		WHERE m.remaining_quantity < 0`},
	domain.IssueInventoryDiscrepancy: {"material_intake_record", `
		SELECT m.id AS entity_id,
		       'Material ' || m.material_name || ': recorded ' || m.remaining_quantity ||
		       ', expected ' || (m.original_quantity - COALESCE(mv.net_out, 0)) AS description
		FROM material_intake_records m
		LEFT JOIN (
			SELECT lot_id, SUM(CASE WHEN direction = 'decrement' THEN quantity ELSE -quantity END) AS net_out
			FROM inventory_movements
			GROUP BY lot_id
		) mv ON mv.lot_id = m.id
		WHERE m.remaining_quantity <> m.original_quantity - COALESCE(mv.net_out, 0)`},
	domain.IssueCriticallyLowStock: {"material_intake_record", `
		SELECT m.id AS entity_id, 'Material ' || m.material_name || ' is critically low: ' || m.remaining_quantity || ' remaining' AS description
		FROM material_intake_records m
		WHERE m.remaining_quantity > 0 AND m.remaining_quantity < GREATEST(m.minimum_stock_level, $1)`},
	domain.IssueOrphanedLedgerEntry: {"financial_ledger_entry", `
		SELECT l.id AS entity_id, 'Ledger entry ' || l.id || ' references missing invoice ' || l.invoice_id AS description
		FROM financial_ledger_entries l
		LEFT JOIN invoices i ON i.id = l.invoice_id
		WHERE i.id IS NULL`},
	domain.IssueInvoiceWithoutLedgerEntry: {"invoice", `
		SELECT i.id AS entity_id, 'Invoice ' || i.invoice_number || ' has no ledger entry' AS description
		FROM invoices i
		WHERE i.status <> 'cancelled'
		  AND NOT EXISTS (SELECT 1 FROM financial_ledger_entries l WHERE l.invoice_id = i.id)`},
}

type findingRow struct {
	EntityID    uuid.UUID `db:"entity_id"`
	Description string    `db:"description"`
}

type alertConfigRow struct {
	IssueType domain.IssueType `db:"issue_type"`
	Enabled   bool             `db:"enabled"`
	Threshold int              `db:"threshold"`
	Channels  []string         `db:"channels"`
}

type upsertedAlert struct {
	domain.DataIntegrityAlert
	Inserted bool `db:"inserted"`
}

// Repo provides integrity-check queries backed by PostgreSQL.
type Repo struct {
	gw *postgres.Gateway
	tm *postgres.TxManager
}

// New creates a new integrity repository.
func New(gw *postgres.Gateway, tm *postgres.TxManager) *Repo {
	return &Repo{gw: gw, tm: tm}
}

func (r *Repo) find(ctx context.Context, t domain.IssueType, policy postgres.Policy, args ...any) ([]domain.Finding, error) {
	d, ok := detectors[t]
	if !ok {
		return nil, fmt.Errorf("integrity: no detector for %s", t)
	}

	var rows []findingRow
	err := r.gw.ExecuteWithRetry(ctx, "integrity.check_"+string(t), policy, func(ctx context.Context) error {
		var out []findingRow
		if err := postgres.Scan.Select(ctx, r.gw.Querier(ctx), &out, d.query, args...); err != nil {
			return err
		}
		rows = out
		return nil
	})
	if err != nil {
		return nil, err
	}

	findings := make([]domain.Finding, len(rows))
	for i, row := range rows {
		findings[i] = domain.Finding{
			Type:        t,
			Description: row.Description,
			EntityType:  d.entityType,
			EntityID:    row.EntityID,
		}
	}
	return findings, nil
}

// FindOrphanedOrders returns non-cancelled orders without an invoice.
func (r *Repo) FindOrphanedOrders(ctx context.Context) ([]domain.Finding, error) {
	return r.find(ctx, domain.IssueOrphanedOrder, postgres.RetryRead)
}

// FindOrphanedInvoices returns invoices whose order does not exist.
func (r *Repo) FindOrphanedInvoices(ctx context.Context) ([]domain.Finding, error) {
	return r.find(ctx, domain.IssueOrphanedInvoice, postgres.RetryRead)
}

// FindOrphanedBatches returns production batches without inputs.
func (r *Repo) FindOrphanedBatches(ctx context.Context) ([]domain.Finding, error) {
	return r.find(ctx, domain.IssueOrphanedProductionBatch, postgres.RetryRead)
}

// FindNegativeInventory returns stock lots below zero.
func (r *Repo) FindNegativeInventory(ctx context.Context) ([]domain.Finding, error) {
	return r.find(ctx, domain.IssueNegativeInventory, postgres.RetryRead)
}

// FindInventoryDiscrepancies returns stock lots whose remaining quantity
// disagrees with their movement history. It fails with domain.ErrUnsupported
// when the movement history is missing from the schema.
func (r *Repo) FindInventoryDiscrepancies(ctx context.Context) ([]domain.Finding, error) {
	findings, err := r.find(ctx, domain.IssueInventoryDiscrepancy, postgres.RetryRead.Silently())
	if err != nil && postgres.IsUndefinedObject(err) {
		return nil, fmt.Errorf("integrity: movement history: %w: %w", domain.ErrUnsupported, err)
	}
	return findings, err
}

// FindLowStock returns stock lots with 0 < remaining < max(minimum, fallback).
func (r *Repo) FindLowStock(ctx context.Context, fallback decimal.Decimal) ([]domain.Finding, error) {
	return r.find(ctx, domain.IssueCriticallyLowStock, postgres.RetryRead, fallback)
}

// FindOrphanedLedgerEntries returns ledger rows that reference no invoice.
func (r *Repo) FindOrphanedLedgerEntries(ctx context.Context) ([]domain.Finding, error) {
	return r.find(ctx, domain.IssueOrphanedLedgerEntry, postgres.RetryRead)
}

// FindInvoicesWithoutLedgerEntries returns active invoices with no ledger row.
func (r *Repo) FindInvoicesWithoutLedgerEntries(ctx context.Context) ([]domain.Finding, error) {
	return r.find(ctx, domain.IssueInvoiceWithoutLedgerEntry, postgres.RetryRead)
}

// InsertIssues appends issues. Large sets are written in chunks inside one
// transaction.
func (r *Repo) InsertIssues(ctx context.Context, issues []domain.DataIntegrityIssue) error {
	if len(issues) == 0 {
		return nil
	}

	return r.gw.ExecuteWithRetry(ctx, "integrity.insert_issues", postgres.RetryWrite, func(ctx context.Context) error {
		return r.tm.RunInTx(ctx, func(ctx context.Context) error {
			q := r.gw.Querier(ctx)
			for start := 0; start < len(issues); start += insertChunk {
				end := min(start+insertChunk, len(issues))

				b := postgres.Builder.Insert(issuesTable).
					Columns("id", "run_id", "issue_type", "description", "severity", "entity_type", "entity_id", "detected_at")
				for _, is := range issues[start:end] {
					b = b.Values(is.ID, is.RunID, is.IssueType, is.Description, is.Severity, is.EntityType, is.EntityID, is.DetectedAt)
				}

				query, args, err := b.ToSql()
				if err != nil {
					return fmt.Errorf("build insert: %w", err)
				}
				if _, err := q.Exec(ctx, query, args...); err != nil {
					return fmt.Errorf("insert issues %d-%d: %w", start, end, err)
				}
			}
			return nil
		})
	})
}

// ResolveIssue stamps the resolution of an unresolved issue.
func (r *Repo) ResolveIssue(ctx context.Context, id, actor uuid.UUID, resolution string) (*domain.DataIntegrityIssue, error) {
	query, args, err := postgres.Builder.
		Update(issuesTable).
		Set("resolved_at", sq.Expr("now()")).
		Set("resolved_by", actor).
		Set("resolution", resolution).
		Where(sq.Eq{"id": id, "resolved_at": nil}).
		Suffix("RETURNING " + strings.Join(issueColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("integrity.ResolveIssue: %w", err)
	}

	var issue domain.DataIntegrityIssue
	err = r.gw.ExecuteWithRetry(ctx, "integrity.resolve_issue", postgres.RetryWrite, func(ctx context.Context) error {
		var rows []domain.DataIntegrityIssue
		if err := postgres.Scan.Select(ctx, r.gw.Querier(ctx), &rows, query, args...); err != nil {
			return err
		}
		if len(rows) == 0 {
			return r.missingOrDone(ctx, issuesTable, id, "issue already resolved")
		}
		issue = rows[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// ListIssues returns issues newest first.
func (r *Repo) ListIssues(ctx context.Context, f domain.IssueFilter) ([]domain.DataIntegrityIssue, error) {
	b := postgres.Builder.Select(issueColumns...).From(issuesTable).OrderBy("detected_at DESC")
	if f.IssueType != nil {
		b = b.Where(sq.Eq{"issue_type": *f.IssueType})
	}
	if f.Severity != nil {
		b = b.Where(sq.Eq{"severity": *f.Severity})
	}
	if f.Unresolved {
		b = b.Where(sq.Eq{"resolved_at": nil})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}

	return postgres.SelectAll[domain.DataIntegrityIssue](ctx, r.gw, "integrity.list_issues", b)
}

// AlertConfigs returns the alert configuration of every issue type.
func (r *Repo) AlertConfigs(ctx context.Context) (map[domain.IssueType]domain.AlertConfig, error) {
	b := postgres.Builder.Select("issue_type", "enabled", "threshold", "channels").From("alert_configs")

	rows, err := postgres.SelectAll[alertConfigRow](ctx, r.gw, "integrity.alert_configs", b)
	if err != nil {
		return nil, err
	}

	configs := make(map[domain.IssueType]domain.AlertConfig, len(rows))
	for _, row := range rows {
		channels := make([]domain.AlertChannel, len(row.Channels))
		for i, c := range row.Channels {
			channels[i] = domain.AlertChannel(c)
		}
		configs[row.IssueType] = domain.AlertConfig{
			IssueType: row.IssueType,
			Enabled:   row.Enabled,
			Threshold: row.Threshold,
			Channels:  channels,
		}
	}
	return configs, nil
}

// UpsertAlert inserts the alert, or refreshes the open alert with the same
// issue type and fingerprint. refreshed is true when an open alert existed.
func (r *Repo) UpsertAlert(ctx context.Context, a domain.DataIntegrityAlert) (alert *domain.DataIntegrityAlert, refreshed bool, err error) {
	query, args, err := postgres.Builder.
		Insert(alertsTable).
		Columns("id", "issue_type", "severity", "message", "issue_count", "fingerprint").
		Values(a.ID, a.IssueType, a.Severity, a.Message, a.IssueCount, a.Fingerprint).
		Suffix(`ON CONFLICT (issue_type, fingerprint) WHERE NOT acknowledged DO UPDATE SET
			occurrences = ` + alertsTable + `.occurrences + 1,
			last_seen_at = now(),
			issue_count = EXCLUDED.issue_count,
			message = EXCLUDED.message
			RETURNING ` + strings.Join(alertColumns, ", ") + `, (xmax = 0) AS inserted`).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("integrity.UpsertAlert: %w", err)
	}

	var row upsertedAlert
	err = r.gw.ExecuteWithRetry(ctx, "integrity.upsert_alert", postgres.RetryWrite, func(ctx context.Context) error {
		return postgres.Scan.Get(ctx, r.gw.Querier(ctx), &row, query, args...)
	})
	if err != nil {
		return nil, false, err
	}
	return &row.DataIntegrityAlert, !row.Inserted, nil
}

// AcknowledgeAlert stamps the acknowledgement of an open alert.
func (r *Repo) AcknowledgeAlert(ctx context.Context, id, actor uuid.UUID) (*domain.DataIntegrityAlert, error) {
	query, args, err := postgres.Builder.
		Update(alertsTable).
		Set("acknowledged", true).
		Set("acknowledged_by", actor).
		Set("acknowledged_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "acknowledged": false}).
		Suffix("RETURNING " + strings.Join(alertColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("integrity.AcknowledgeAlert: %w", err)
	}

	var alert domain.DataIntegrityAlert
	err = r.gw.ExecuteWithRetry(ctx, "integrity.acknowledge_alert", postgres.RetryWrite, func(ctx context.Context) error {
		var rows []domain.DataIntegrityAlert
		if err := postgres.Scan.Select(ctx, r.gw.Querier(ctx), &rows, query, args...); err != nil {
			return err
		}
		if len(rows) == 0 {
			return r.missingOrDone(ctx, alertsTable, id, "alert already acknowledged")
		}
		alert = rows[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

// ListAlerts returns alerts newest first.
func (r *Repo) ListAlerts(ctx context.Context, unacknowledgedOnly bool, limit int) ([]domain.DataIntegrityAlert, error) {
	b := postgres.Builder.Select(alertColumns...).From(alertsTable).OrderBy("last_seen_at DESC")
	if unacknowledgedOnly {
		b = b.Where(sq.Eq{"acknowledged": false})
	}
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	return postgres.SelectAll[domain.DataIntegrityAlert](ctx, r.gw, "integrity.list_alerts", b)
}

// missingOrDone distinguishes an unknown row from one whose state already
// moved on.
func (r *Repo) missingOrDone(ctx context.Context, table string, id uuid.UUID, doneMsg string) error {
	query, args, err := postgres.Builder.
		Select("1").
		Prefix("SELECT EXISTS (").
		From(table).
		Where(sq.Eq{"id": id}).
		Suffix(")").
		ToSql()
	if err != nil {
		return fmt.Errorf("build exists: %w", err)
	}

	var exists bool
	if err := r.gw.Querier(ctx).QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%s %s: %w", doneMsg, id, domain.ErrConflict)
	}
	return fmt.Errorf("%s %s: %w", table, id, domain.ErrNotFound)
}

