package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/internal/service/production"
)

type productionService interface {
	CreateProductionBatch(ctx context.Context, in production.CreateBatchInput) (*domain.BatchWithInputs, error)
	RollbackProductionBatch(ctx context.Context, in production.RollbackInput) (*production.RollbackResult, error)
	TransitionStatus(ctx context.Context, in production.TransitionInput) (*domain.ProductionBatch, error)
}

// ProductionHandler serves production batch endpoints.
type ProductionHandler struct {
	svc productionService
	log *slog.Logger
}

// NewProductionHandler creates a ProductionHandler.
func NewProductionHandler(svc productionService, logger *slog.Logger) *ProductionHandler {
	return &ProductionHandler{svc: svc, log: logger.With("handler", "production")}
}

// Create handles POST /api/production-batches.
func (h *ProductionHandler) Create(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)

	var in production.CreateBatchInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	result, err := h.svc.CreateProductionBatch(r.Context(), in)
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusCreated, result, inbox)
}

type rollbackRequest struct {
	Reason string              `json:"reason"`
	Inputs []domain.BatchInput `json:"inputs"`
}

// Rollback handles POST /api/production-batches/{id}/rollback. Without
// inputs in the body the batch's recorded inputs are restored.
func (h *ProductionHandler) Rollback(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	var req rollbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	result, err := h.svc.RollbackProductionBatch(r.Context(), production.RollbackInput{
		BatchID: id,
		Inputs:  req.Inputs,
		Reason:  req.Reason,
	})
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusOK, result, inbox)
}

// UpdateStatus handles PATCH /api/production-batches/{id}/status.
func (h *ProductionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	b, err := h.svc.TransitionStatus(r.Context(), production.TransitionInput{
		BatchID: id,
		Status:  domain.BatchStatus(req.Status),
	})
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusOK, b, inbox)
}
