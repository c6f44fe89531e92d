package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/internal/service/report"
)

type reportService interface {
	BatchYield(ctx context.Context, r report.YieldRange) ([]domain.BatchYield, error)
	InvoiceAging(ctx context.Context, bucket string) (*domain.InvoiceAgingReport, error)
	CustomerMetrics(ctx context.Context, customerID uuid.UUID) (*domain.CustomerMetrics, error)
	Lot(ctx context.Context, lotID uuid.UUID) (*domain.LotDetail, error)
}

// ReportHandler serves the read-only reports and stock lot lookups.
type ReportHandler struct {
	svc reportService
	log *slog.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(svc reportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, log: logger.With("handler", "reports")}
}

// BatchYield handles GET /api/reports/batch-yield?from=&to=.
func (h *ReportHandler) BatchYield(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)

	q := newQuery(r)
	rng := report.YieldRange{From: q.time("from"), To: q.time("to")}
	if err := q.err(); err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	rows, err := h.svc.BatchYield(r.Context(), rng)
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusOK, rows, inbox)
}

// InvoiceAging handles GET /api/reports/invoice-aging?bucket=.
func (h *ReportHandler) InvoiceAging(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)

	rep, err := h.svc.InvoiceAging(r.Context(), r.URL.Query().Get("bucket"))
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusOK, rep, inbox)
}

// CustomerMetrics handles GET /api/reports/customers/{id}.
func (h *ReportHandler) CustomerMetrics(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	m, err := h.svc.CustomerMetrics(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusOK, m, inbox)
}

// Lot handles GET /api/inventory/lots/{id}.
func (h *ReportHandler) Lot(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	detail, err := h.svc.Lot(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusOK, detail, inbox)
}
