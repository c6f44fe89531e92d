package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/bizops-backend/internal/domain"
)

type outboxProcessor interface {
	Stats(ctx context.Context) (domain.OutboxStats, error)
	RetryFailed(ctx context.Context) (int64, error)
}

// OutboxHandler exposes the dependent-write outbox to admins.
type OutboxHandler struct {
	proc outboxProcessor
	log  *slog.Logger
}

// NewOutboxHandler creates an OutboxHandler.
func NewOutboxHandler(proc outboxProcessor, logger *slog.Logger) *OutboxHandler {
	return &OutboxHandler{proc: proc, log: logger.With("handler", "outbox")}
}

// Stats handles GET /api/outbox/stats.
func (h *OutboxHandler) Stats(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)
	if err := requireRole(r, domain.UserRoleAdmin); err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	stats, err := h.proc.Stats(r.Context())
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusOK, stats, inbox)
}

// RetryFailed handles POST /api/outbox/retry-failed.
func (h *OutboxHandler) RetryFailed(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)
	if err := requireRole(r, domain.UserRoleAdmin); err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	n, err := h.proc.RetryFailed(r.Context())
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusOK, map[string]int64{"reset": n}, inbox)
}
