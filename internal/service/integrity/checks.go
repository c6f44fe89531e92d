package integrity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/bizops-backend/internal/domain"
)

// Audit triggers, used as a metrics label.
const (
	TriggerManual    = "manual"
	TriggerScheduled = "scheduled"
	TriggerInventory = "inventory"
)

// RunReport summarises one audit run.
type RunReport struct {
	RunID         uuid.UUID                   `json:"run_id"`
	Trigger       string                      `json:"trigger"`
	StartedAt     time.Time                   `json:"started_at"`
	FinishedAt    time.Time                   `json:"finished_at"`
	Counts        map[domain.IssueType]int    `json:"counts"`
	TotalIssues   int                         `json:"total_issues"`
	Issues        []domain.DataIntegrityIssue `json:"issues"`
	Alerts        []AlertOutcome              `json:"alerts"`
	FailedChecks  []domain.IssueType          `json:"failed_checks"`
	SkippedChecks []domain.IssueType          `json:"skipped_checks"`
}

// AlertOutcome is an alert raised or refreshed by a run.
type AlertOutcome struct {
	Alert     domain.DataIntegrityAlert `json:"alert"`
	Refreshed bool                      `json:"refreshed"`
}

type check struct {
	issueType domain.IssueType
	run       func(ctx context.Context) ([]domain.Finding, error)
}

func (s *Service) allChecks() []check {
	return []check{
		{domain.IssueOrphanedOrder, s.issues.FindOrphanedOrders},
		{domain.IssueOrphanedInvoice, s.issues.FindOrphanedInvoices},
		{domain.IssueOrphanedProductionBatch, s.issues.FindOrphanedBatches},
		{domain.IssueNegativeInventory, s.issues.FindNegativeInventory},
		{domain.IssueInventoryDiscrepancy, s.issues.FindInventoryDiscrepancies},
		{domain.IssueCriticallyLowStock, s.findLowStock},
		{domain.IssueOrphanedLedgerEntry, s.issues.FindOrphanedLedgerEntries},
		{domain.IssueInvoiceWithoutLedgerEntry, s.issues.FindInvoicesWithoutLedgerEntries},
	}
}

func (s *Service) inventoryChecks() []check {
	return []check{
		{domain.IssueNegativeInventory, s.issues.FindNegativeInventory},
		{domain.IssueInventoryDiscrepancy, s.issues.FindInventoryDiscrepancies},
		{domain.IssueCriticallyLowStock, s.findLowStock},
	}
}

func (s *Service) findLowStock(ctx context.Context) ([]domain.Finding, error) {
	return s.issues.FindLowStock(ctx, s.lowStockFallback)
}

// RunAllChecks runs every consistency check concurrently, persists the
// findings as issues tagged with one run id and raises alerts. A failing
// check is recorded in the report and does not stop the others.
func (s *Service) RunAllChecks(ctx context.Context) (*RunReport, error) {
	return s.run(ctx, TriggerManual, s.allChecks())
}

// CheckInventoryConsistency runs only the stock quantity checks.
func (s *Service) CheckInventoryConsistency(ctx context.Context) (*RunReport, error) {
	return s.run(ctx, TriggerInventory, s.inventoryChecks())
}

type checkResult struct {
	findings []domain.Finding
	err      error
}

func (s *Service) run(ctx context.Context, trigger string, checks []check) (*RunReport, error) {
	report := &RunReport{
		RunID:         uuid.New(),
		Trigger:       trigger,
		StartedAt:     s.now().UTC(),
		Counts:        make(map[domain.IssueType]int),
		Issues:        []domain.DataIntegrityIssue{},
		Alerts:        []AlertOutcome{},
		FailedChecks:  []domain.IssueType{},
		SkippedChecks: []domain.IssueType{},
	}

	// Checks never return an error to the group so one failure cannot
	// cancel the rest.
	results := make([]checkResult, len(checks))
	var g errgroup.Group
	for i, c := range checks {
		g.Go(func() error {
			findings, err := c.run(ctx)
			results[i] = checkResult{findings: findings, err: err}
			return nil
		})
	}
	_ = g.Wait()

	byType := make(map[domain.IssueType][]domain.Finding, len(checks))
	for i, c := range checks {
		res := results[i]
		switch {
		case errors.Is(res.err, domain.ErrUnsupported):
			s.log.DebugContext(ctx, "integrity check skipped",
				slog.String("check", c.issueType.String()),
				slog.String("reason", res.err.Error()),
			)
			report.SkippedChecks = append(report.SkippedChecks, c.issueType)
			continue
		case res.err != nil:
			s.log.ErrorContext(ctx, "integrity check failed",
				slog.String("run_id", report.RunID.String()),
				slog.String("check", c.issueType.String()),
				slog.String("error", res.err.Error()),
			)
			report.FailedChecks = append(report.FailedChecks, c.issueType)
			continue
		}

		byType[c.issueType] = res.findings
		report.Counts[c.issueType] = len(res.findings)
		for _, f := range res.findings {
			report.Issues = append(report.Issues, domain.DataIntegrityIssue{
				ID:          uuid.New(),
				RunID:       report.RunID,
				IssueType:   f.Type,
				Description: f.Description,
				Severity:    f.Type.Severity(),
				EntityType:  f.EntityType,
				EntityID:    f.EntityID,
				DetectedAt:  report.StartedAt,
			})
		}
	}
	report.TotalIssues = len(report.Issues)

	if err := s.issues.InsertIssues(ctx, report.Issues); err != nil {
		s.metrics.RecordAuditRun(trigger, false)
		return nil, fmt.Errorf("integrity.run: persist issues: %w", err)
	}
	for t, n := range report.Counts {
		s.metrics.RecordIssues(t.String(), n)
	}

	s.raiseAlerts(ctx, checks, byType, report)

	report.FinishedAt = s.now().UTC()
	s.metrics.RecordAuditRun(trigger, len(report.FailedChecks) == 0)

	s.log.InfoContext(ctx, "integrity run finished",
		slog.String("run_id", report.RunID.String()),
		slog.String("trigger", trigger),
		slog.Int("issues", report.TotalIssues),
		slog.Int("alerts", len(report.Alerts)),
		slog.Int("failed_checks", len(report.FailedChecks)),
		slog.Int("skipped_checks", len(report.SkippedChecks)),
	)

	msg := fmt.Sprintf("%d issue(s) found.", report.TotalIssues)
	if n := len(report.FailedChecks); n > 0 {
		msg += fmt.Sprintf(" %d check(s) could not run.", n)
		s.notify.Warning(ctx, "Data integrity audit completed", msg)
	} else {
		s.notify.Success(ctx, "Data integrity audit completed", msg)
	}

	return report, nil
}
