package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/internal/service/integrity"
)

type integrityService interface {
	RunAllChecks(ctx context.Context) (*integrity.RunReport, error)
	CheckInventoryConsistency(ctx context.Context) (*integrity.RunReport, error)
	ListIssues(ctx context.Context, f domain.IssueFilter) ([]domain.DataIntegrityIssue, error)
	ResolveIssue(ctx context.Context, id uuid.UUID, resolution string) (*domain.DataIntegrityIssue, error)
	ListAlerts(ctx context.Context, unacknowledgedOnly bool, limit int) ([]domain.DataIntegrityAlert, error)
	AcknowledgeAlert(ctx context.Context, id uuid.UUID) (*domain.DataIntegrityAlert, error)
}

// IntegrityHandler serves the data integrity auditor. Every endpoint
// requires an elevated role.
type IntegrityHandler struct {
	svc integrityService
	log *slog.Logger
}

// NewIntegrityHandler creates an IntegrityHandler.
func NewIntegrityHandler(svc integrityService, logger *slog.Logger) *IntegrityHandler {
	return &IntegrityHandler{svc: svc, log: logger.With("handler", "integrity")}
}

// Run handles POST /api/integrity/run. With ?scope=inventory only the
// inventory checks run.
func (h *IntegrityHandler) Run(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)
	if err := requireRole(r, domain.ElevatedRoles...); err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	var (
		report *integrity.RunReport
		err    error
	)
	switch scope := r.URL.Query().Get("scope"); scope {
	case "", "all":
		report, err = h.svc.RunAllChecks(r.Context())
	case "inventory":
		report, err = h.svc.CheckInventoryConsistency(r.Context())
	default:
		err = domain.NewValidationError("scope", "must be one of: all inventory")
	}
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusOK, report, inbox)
}

// ListIssues handles GET /api/integrity/issues.
func (h *IntegrityHandler) ListIssues(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)
	if err := requireRole(r, domain.ElevatedRoles...); err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	q := newQuery(r)
	f := domain.IssueFilter{
		Unresolved: q.boolean("unresolved"),
		Limit:      q.integer("limit"),
		Offset:     q.integer("offset"),
	}
	if v := q.str("type"); v != nil {
		t := domain.IssueType(*v)
		f.IssueType = &t
	}
	if v := q.str("severity"); v != nil {
		s := domain.Severity(*v)
		if !s.IsValid() {
			q.errs = append(q.errs, domain.FieldError{Field: "severity", Message: "invalid value"})
		}
		f.Severity = &s
	}
	if err := q.err(); err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	issues, err := h.svc.ListIssues(r.Context(), f)
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	if issues == nil {
		issues = []domain.DataIntegrityIssue{}
	}
	respond(w, http.StatusOK, issues, inbox)
}

type resolveRequest struct {
	Resolution string `json:"resolution"`
}

// Resolve handles POST /api/integrity/issues/{id}/resolve.
func (h *IntegrityHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	var req resolveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	issue, err := h.svc.ResolveIssue(r.Context(), id, req.Resolution)
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusOK, issue, inbox)
}

// ListAlerts handles GET /api/integrity/alerts.
func (h *IntegrityHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)
	if err := requireRole(r, domain.ElevatedRoles...); err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	q := newQuery(r)
	unacked := q.boolean("unacknowledged")
	limit := q.integer("limit")
	if err := q.err(); err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	alerts, err := h.svc.ListAlerts(r.Context(), unacked, limit)
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	if alerts == nil {
		alerts = []domain.DataIntegrityAlert{}
	}
	respond(w, http.StatusOK, alerts, inbox)
}

// Acknowledge handles POST /api/integrity/alerts/{id}/acknowledge.
func (h *IntegrityHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	alert, err := h.svc.AcknowledgeAlert(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusOK, alert, inbox)
}
