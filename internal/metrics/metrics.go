// Package metrics exposes Prometheus instruments for the storage gateway,
// the integrity auditor, the outbox worker and the HTTP surface.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bizops"

// Metrics holds all service instruments on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Storage gateway
	StorageCalls        *prometheus.CounterVec
	StorageCallDuration *prometheus.HistogramVec
	StorageRetries      *prometheus.CounterVec
	BreakerState        prometheus.Gauge

	// Integrity auditor
	AuditRuns      *prometheus.CounterVec
	IssuesDetected *prometheus.CounterVec
	AlertsRaised   *prometheus.CounterVec

	// Dependent writes
	DependentWriteFailures *prometheus.CounterVec
	OutboxProcessed        *prometheus.CounterVec
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	m.StorageCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_calls_total",
			Help:      "Storage gateway operations by final outcome kind",
		},
		[]string{"op", "outcome"},
	)
	m.StorageCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "storage_attempt_duration_seconds",
			Help:      "Duration of individual storage gateway attempts",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)
	m.StorageRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_retries_total",
			Help:      "Storage gateway retries by error kind",
		},
		[]string{"op", "kind"},
	)
	m.BreakerState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "storage_breaker_state",
			Help:      "Storage circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	m.AuditRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "integrity_runs_total",
			Help:      "Integrity audit runs by trigger and status",
		},
		[]string{"trigger", "status"},
	)
	m.IssuesDetected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "integrity_issues_detected_total",
			Help:      "Integrity issues recorded by type",
		},
		[]string{"issue_type"},
	)
	m.AlertsRaised = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "integrity_alerts_total",
			Help:      "Integrity alerts by type and whether they were new or refreshed",
		},
		[]string{"issue_type", "result"},
	)

	m.DependentWriteFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dependent_write_failures_total",
			Help:      "Failed best-effort inventory writes by operation",
		},
		[]string{"operation"},
	)
	m.OutboxProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_processed_total",
			Help:      "Outbox entries processed by result",
		},
		[]string{"kind", "result"},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.StorageCalls,
		m.StorageCallDuration,
		m.StorageRetries,
		m.BreakerState,
		m.AuditRuns,
		m.IssuesDetected,
		m.AlertsRaised,
		m.DependentWriteFailures,
		m.OutboxProcessed,
	)

	return m
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) RecordStorageAttempt(op string, duration time.Duration) {
	if m == nil {
		return
	}
	m.StorageCallDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordStorageOutcome records the final outcome of a gateway call;
// outcome is "ok" or an error kind.
func (m *Metrics) RecordStorageOutcome(op, outcome string) {
	if m == nil {
		return
	}
	m.StorageCalls.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) RecordStorageRetry(op, kind string) {
	if m == nil {
		return
	}
	m.StorageRetries.WithLabelValues(op, kind).Inc()
}

func (m *Metrics) SetBreakerState(state int) {
	if m == nil {
		return
	}
	m.BreakerState.Set(float64(state))
}

func (m *Metrics) RecordAuditRun(trigger string, success bool) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "failure"
	}
	m.AuditRuns.WithLabelValues(trigger, status).Inc()
}

func (m *Metrics) RecordIssues(issueType string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.IssuesDetected.WithLabelValues(issueType).Add(float64(n))
}

func (m *Metrics) RecordAlert(issueType string, refreshed bool) {
	if m == nil {
		return
	}
	result := "raised"
	if refreshed {
		result = "refreshed"
	}
	m.AlertsRaised.WithLabelValues(issueType, result).Inc()
}

func (m *Metrics) RecordDependentWriteFailure(operation string) {
	if m == nil {
		return
	}
	m.DependentWriteFailures.WithLabelValues(operation).Inc()
}

func (m *Metrics) RecordOutbox(kind, result string) {
	if m == nil {
		return
	}
	m.OutboxProcessed.WithLabelValues(kind, result).Inc()
}
