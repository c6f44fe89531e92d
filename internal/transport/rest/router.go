package rest

import (
	"net/http"

	"github.com/heartmarshall/bizops-backend/internal/transport/middleware"
)

// Handlers groups the /api handlers registered by NewRouter.
type Handlers struct {
	Orders     *OrderHandler
	Production *ProductionHandler
	Users      *UserHandler
	Integrity  *IntegrityHandler
	Outbox     *OutboxHandler
	Reports    *ReportHandler
	Health     *HealthHandler
	Metrics    http.Handler
}

// NewRouter builds the HTTP routing tree. Health checks and /metrics are served
// bare; everything under /api/ runs through api.
func NewRouter(h Handlers, api middleware.Middleware) http.Handler {
	apiMux := http.NewServeMux()

	apiMux.HandleFunc("POST /api/orders", h.Orders.Create)
	apiMux.HandleFunc("GET /api/orders/{id}", h.Orders.Get)
	apiMux.HandleFunc("GET /api/orders/{id}/invoice", h.Orders.Invoice)
	apiMux.HandleFunc("PATCH /api/orders/{id}/status", h.Orders.UpdateStatus)

	apiMux.HandleFunc("POST /api/production-batches", h.Production.Create)
	apiMux.HandleFunc("POST /api/production-batches/{id}/rollback", h.Production.Rollback)
	apiMux.HandleFunc("PATCH /api/production-batches/{id}/status", h.Production.UpdateStatus)

	apiMux.HandleFunc("POST /api/users/{id}/role", h.Users.ChangeRole)
	apiMux.HandleFunc("POST /api/users/roles/bulk", h.Users.BulkRoles)
	apiMux.HandleFunc("PATCH /api/users/{id}/designation", h.Users.UpdateDesignation)
	apiMux.HandleFunc("GET /api/audit-logs", h.Users.AuditLogs)

	apiMux.HandleFunc("POST /api/integrity/run", h.Integrity.Run)
	apiMux.HandleFunc("GET /api/integrity/issues", h.Integrity.ListIssues)
	apiMux.HandleFunc("POST /api/integrity/issues/{id}/resolve", h.Integrity.Resolve)
	apiMux.HandleFunc("GET /api/integrity/alerts", h.Integrity.ListAlerts)
	apiMux.HandleFunc("POST /api/integrity/alerts/{id}/acknowledge", h.Integrity.Acknowledge)

	apiMux.HandleFunc("GET /api/reports/batch-yield", h.Reports.BatchYield)
	apiMux.HandleFunc("GET /api/reports/invoice-aging", h.Reports.InvoiceAging)
	apiMux.HandleFunc("GET /api/reports/customers/{id}", h.Reports.CustomerMetrics)
	apiMux.HandleFunc("GET /api/inventory/lots/{id}", h.Reports.Lot)

	apiMux.HandleFunc("GET /api/outbox/stats", h.Outbox.Stats)
	apiMux.HandleFunc("POST /api/outbox/retry-failed", h.Outbox.RetryFailed)

	root := http.NewServeMux()
	root.HandleFunc("GET /live", h.Health.Live)
	root.HandleFunc("GET /ready", h.Health.Ready)
	root.HandleFunc("GET /health", h.Health.Health)
	if h.Metrics != nil {
		root.Handle("GET /metrics", h.Metrics)
	}
	root.Handle("/api/", api(apiMux))
	return root
}
