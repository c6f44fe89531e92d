package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/internal/notify"
	"github.com/heartmarshall/bizops-backend/pkg/ctxutil"
)

const maxBodyBytes = 1 << 20

// envelope is the body of every /api response. Notifications is always
// present so clients can render it unconditionally.
type envelope struct {
	Data          any                     `json:"data,omitempty"`
	Error         string                  `json:"error,omitempty"`
	Fields        []domain.FieldError     `json:"fields,omitempty"`
	Shortfalls    []domain.StockShortfall `json:"shortfalls,omitempty"`
	Notifications []domain.Notification   `json:"notifications"`
}

// withInbox attaches a notification inbox to the request context.
func withInbox(r *http.Request) (*http.Request, *notify.Inbox) {
	ctx, inbox := notify.WithInbox(r.Context())
	return r.WithContext(ctx), inbox
}

func respond(w http.ResponseWriter, status int, data any, inbox *notify.Inbox) {
	notes := inbox.Items()
	if notes == nil {
		notes = []domain.Notification{}
	}
	writeJSON(w, status, envelope{Data: data, Notifications: notes})
}

// respondError maps err onto a status code with errors.Is and writes it
// together with any notifications collected so far.
func respondError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, inbox *notify.Inbox) {
	body := envelope{Notifications: inbox.Items()}
	if body.Notifications == nil {
		body.Notifications = []domain.Notification{}
	}

	var (
		status   int
		verr     *domain.ValidationError
		stockErr *domain.InsufficientStockError
	)
	switch {
	case errors.As(err, &stockErr):
		status = http.StatusUnprocessableEntity
		body.Error = "insufficient stock"
		body.Shortfalls = stockErr.Shortfalls
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		body.Error = "validation failed"
		body.Fields = verr.Errors
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
		body.Error = userMessage(err, "validation failed")
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		body.Error = "not found"
	case errors.Is(err, domain.ErrAlreadyExists):
		status = http.StatusConflict
		body.Error = "already exists"
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
		body.Error = userMessage(err, "conflict")
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
		body.Error = "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
		body.Error = "forbidden"
	case errors.Is(err, domain.ErrUnavailable):
		status = http.StatusServiceUnavailable
		body.Error = userMessage(err, "service temporarily unavailable")
	default:
		status = http.StatusInternalServerError
		body.Error = "internal server error"
	}

	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
		)
	}
	writeJSON(w, status, body)
}

// userMessage prefers the storage error kind's message, then the text of a
// rejected status transition, then fallback.
func userMessage(err error, fallback string) string {
	var storeErr *domain.StorageError
	if errors.As(err, &storeErr) {
		return storeErr.Kind.UserMessage()
	}
	var terr *domain.TransitionError
	if errors.As(err, &terr) {
		return terr.Error()
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	return nil
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}

// query reads optional query parameters and collects their parse errors.
type query struct {
	r    *http.Request
	errs []domain.FieldError
}

func newQuery(r *http.Request) *query { return &query{r: r} }

func (q *query) str(name string) *string {
	v := q.r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	return &v
}

func (q *query) integer(name string) int {
	v := q.r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.errs = append(q.errs, domain.FieldError{Field: name, Message: "must be an integer"})
	}
	return n
}

func (q *query) boolean(name string) bool {
	v := q.r.URL.Query().Get(name)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.errs = append(q.errs, domain.FieldError{Field: name, Message: "must be true or false"})
	}
	return b
}

func (q *query) id(name string) *uuid.UUID {
	v := q.r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		q.errs = append(q.errs, domain.FieldError{Field: name, Message: "must be a UUID"})
		return nil
	}
	return &id
}

func (q *query) time(name string) *time.Time {
	v := q.r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		q.errs = append(q.errs, domain.FieldError{Field: name, Message: fmt.Sprintf("must be RFC 3339, got %q", v)})
		return nil
	}
	return &t
}

func (q *query) err() error {
	if len(q.errs) == 0 {
		return nil
	}
	return domain.NewValidationErrors(q.errs)
}

// requireRole rejects callers without one of roles before any work is done.
func requireRole(r *http.Request, roles ...domain.UserRole) error {
	if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
		return domain.ErrUnauthorized
	}
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = role.String()
	}
	if !ctxutil.HasRole(r.Context(), names...) {
		return domain.ErrForbidden
	}
	return nil
}
