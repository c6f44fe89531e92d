package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizops-backend/internal/domain"
)

type auditTrailService interface {
	ChangeUserRole(ctx context.Context, subject uuid.UUID, newRole domain.UserRole) (*domain.User, error)
	BulkRoleUpdate(ctx context.Context, changes []domain.RoleChange) ([]domain.RoleChangeOutcome, error)
	UpdateDesignation(ctx context.Context, subject uuid.UUID, designation *string) (*domain.User, error)
	GetAuditLogs(ctx context.Context, f domain.AuditLogFilter) (*domain.AuditLogPage, error)
}

// UserHandler serves role management and the audit trail.
type UserHandler struct {
	svc auditTrailService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc auditTrailService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "users")}
}

type roleRequest struct {
	Role string `json:"role"`
}

// ChangeRole handles POST /api/users/{id}/role.
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	var req roleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	u, err := h.svc.ChangeUserRole(r.Context(), id, domain.UserRole(req.Role))
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusOK, u, inbox)
}

type bulkRoleRequest struct {
	Changes []domain.RoleChange `json:"changes"`
}

// BulkRoles handles POST /api/users/roles/bulk. The response lists the
// outcome of every change; partial failure is still a 200.
func (h *UserHandler) BulkRoles(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)

	var req bulkRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	outcomes, err := h.svc.BulkRoleUpdate(r.Context(), req.Changes)
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusOK, outcomes, inbox)
}

type designationRequest struct {
	Designation *string `json:"designation"`
}

// UpdateDesignation handles PATCH /api/users/{id}/designation. A null
// designation clears it.
func (h *UserHandler) UpdateDesignation(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	var req designationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	u, err := h.svc.UpdateDesignation(r.Context(), id, req.Designation)
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusOK, u, inbox)
}

// AuditLogs handles GET /api/audit-logs.
func (h *UserHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	r, inbox := withInbox(r)

	q := newQuery(r)
	f := domain.AuditLogFilter{
		UserID:      q.id("user_id"),
		PerformedBy: q.id("performed_by"),
		From:        q.time("from"),
		To:          q.time("to"),
		Page:        q.integer("page"),
		PageSize:    q.integer("page_size"),
	}
	if v := q.str("action"); v != nil {
		a := domain.AuditAction(*v)
		f.Action = &a
	}
	if err := q.err(); err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}

	page, err := h.svc.GetAuditLogs(r.Context(), f)
	if err != nil {
		respondError(w, r, h.log, err, inbox)
		return
	}
	respond(w, http.StatusOK, page, inbox)
}
