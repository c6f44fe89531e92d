package integrity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizops-backend/internal/domain"
)

const alertNotificationType = "data_integrity_alert"

// raiseAlerts groups findings by type and upserts one alert for every type
// whose enabled config threshold is reached. Only newly created alerts are
// dispatched; a refreshed open alert is not sent again.
func (s *Service) raiseAlerts(ctx context.Context, checks []check, byType map[domain.IssueType][]domain.Finding, report *RunReport) {
	if report.TotalIssues == 0 {
		return
	}

	configs, err := s.alerts.AlertConfigs(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "load alert configs",
			slog.String("run_id", report.RunID.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	for _, c := range checks {
		findings := byType[c.issueType]
		cfg, ok := configs[c.issueType]
		if !ok || !cfg.Triggered(len(findings)) {
			continue
		}

		ids := make([]uuid.UUID, len(findings))
		for i, f := range findings {
			ids[i] = f.EntityID
		}

		candidate := domain.DataIntegrityAlert{
			ID:          uuid.New(),
			IssueType:   c.issueType,
			Severity:    c.issueType.Severity(),
			Message:     fmt.Sprintf("%d %s issue(s) detected", len(findings), c.issueType),
			IssueCount:  len(findings),
			Fingerprint: domain.AlertFingerprint(c.issueType, ids),
		}

		alert, refreshed, err := s.alerts.UpsertAlert(ctx, candidate)
		if err != nil {
			s.log.ErrorContext(ctx, "upsert alert",
				slog.String("run_id", report.RunID.String()),
				slog.String("issue_type", c.issueType.String()),
				slog.String("error", err.Error()),
			)
			continue
		}

		s.metrics.RecordAlert(c.issueType.String(), refreshed)
		report.Alerts = append(report.Alerts, AlertOutcome{Alert: *alert, Refreshed: refreshed})

		if refreshed {
			s.log.InfoContext(ctx, "open alert refreshed",
				slog.String("alert_id", alert.ID.String()),
				slog.String("issue_type", c.issueType.String()),
				slog.Int("occurrences", alert.Occurrences),
			)
			continue
		}
		s.dispatch(ctx, cfg.Channels, *alert)
	}
}

// dispatch delivers a new alert on each configured channel. Channel
// failures are logged and do not affect the others.
func (s *Service) dispatch(ctx context.Context, channels []domain.AlertChannel, alert domain.DataIntegrityAlert) {
	title := fmt.Sprintf("Data integrity alert: %s", alert.IssueType)

	for _, ch := range channels {
		switch ch {
		case domain.AlertChannelInApp:
			if alert.Severity == domain.SeverityCritical || alert.Severity == domain.SeverityHigh {
				s.notify.Error(ctx, title, alert.Message)
			} else {
				s.notify.Warning(ctx, title, alert.Message)
			}

		case domain.AlertChannelSystem:
			err := s.notifications.Create(ctx, domain.SystemNotification{
				ID:       uuid.New(),
				Type:     alertNotificationType,
				Title:    title,
				Message:  alert.Message,
				Severity: alert.Severity,
				Metadata: map[string]any{
					"alert_id":    alert.ID.String(),
					"issue_type":  alert.IssueType.String(),
					"issue_count": alert.IssueCount,
				},
				TargetRoles: []domain.UserRole{domain.UserRoleAdmin, domain.UserRoleManager},
			})
			if err != nil {
				s.log.ErrorContext(ctx, "store system notification",
					slog.String("alert_id", alert.ID.String()),
					slog.String("error", err.Error()),
				)
			}

		case domain.AlertChannelEmail:
			// No mail transport is configured; the alert is only logged.
			s.log.InfoContext(ctx, "email alert not delivered",
				slog.String("alert_id", alert.ID.String()),
				slog.String("issue_type", alert.IssueType.String()),
			)

		default:
			s.log.WarnContext(ctx, "unknown alert channel", slog.String("channel", string(ch)))
		}
	}
}
