// Package metrics holds the Prometheus collectors for the portfolio API.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the set of collectors shared by the HTTP handler and the store.
type Metrics struct {
	gatherer prometheus.Gatherer

	HTTPRequestDuration *prometheus.HistogramVec

	// store operation latency by backend, operation (read/write) and outcome
	StoreOperationDuration *prometheus.HistogramVec

	// document writes by outcome: success, invalid, failed
	PortfolioWrites *prometheus.CounterVec
}

// New registers all collectors on reg. Passing a fresh registry keeps tests
// independent of the process-wide default.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"method", "path", "status"},
		),
		StoreOperationDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "store_operation_duration_seconds",
				Help:    "Portfolio store operation duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
			[]string{"backend", "operation", "outcome"},
		),
		PortfolioWrites: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_writes_total",
				Help: "Total number of portfolio document writes",
			},
			[]string{"outcome"},
		),
	}
}

// RecordHTTPRequestDuration observes one request. path is the route
// template, not the raw URL.
func (m *Metrics) RecordHTTPRequestDuration(method, path, status string, d time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
}

// RecordStoreOperation observes one Read or Write against a backend.
func (m *Metrics) RecordStoreOperation(backend, operation, outcome string, d time.Duration) {
	m.StoreOperationDuration.WithLabelValues(backend, operation, outcome).Observe(d.Seconds())
}

// IncrementWrites counts a document write by outcome.
func (m *Metrics) IncrementWrites(outcome string) {
	m.PortfolioWrites.WithLabelValues(outcome).Inc()
}

// Handler serves the registered collectors in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
