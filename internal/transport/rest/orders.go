package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/internal/service/order"
)

type orderService interface {
	CreateOrder(ctx context.Context, in order.CreateOrderInput) (*order.CreateOrderResult, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetInvoice(ctx context.Context, orderID uuid.UUID) (*domain.Invoice, error)
	UpdateStatus(ctx context.Context, in order.UpdateStatusInput) (*domain.Order, error)
}

// OrderHandler serves order endpoints.
type OrderHandler struct {
	svc orderService
	log *slog.Logger
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(svc orderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: logger.With("handler", "orders")}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)

	var in order.CreateOrderInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	result, err := h.svc.CreateOrder(r.Context(), in)
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusCreated, result, inbox)
}

// Get handles GET /api/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	o, err := h.svc.GetOrder(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusOK, o, inbox)
}

// Invoice handles GET /api/orders/{id}/invoice.
func (h *OrderHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	inv, err := h.svc.GetInvoice(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusOK, inv, inbox)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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

	o, err := h.svc.UpdateStatus(r.Context(), order.UpdateStatusInput{
		OrderID: id,
		Status:  domain.OrderStatus(req.Status),
	})
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusOK, o, inbox)
}
