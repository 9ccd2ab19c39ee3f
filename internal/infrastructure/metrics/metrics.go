// Package metrics exposes Prometheus metrics for trash actions and the HTTP API.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector of the service, registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	TrashActions   *prometheus.CounterVec
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	DBPoolAcquired prometheus.GaugeFunc
}

// New creates a registry with Go and process collectors plus the service metrics.
// poolAcquired may be nil when no database is wired.
func New(poolAcquired func() float64) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		TrashActions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trash_actions_total",
			Help: "Discard and restore calls by entity, action and outcome",
		}, []string{"entity", "action", "outcome"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trash_http_requests_total",
			Help: "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trash_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route", "method"}),
	}

	if poolAcquired != nil {
		m.DBPoolAcquired = factory.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "trash_db_pool_acquired_connections",
			Help: "Connections currently checked out of the pool",
		}, poolAcquired)
	}

	return m
}

// ObserveTrashAction counts one discard or restore.
func (m *Metrics) ObserveTrashAction(entity, action, outcome string) {
	m.TrashActions.WithLabelValues(entity, action, outcome).Inc()
}

// ObserveHTTP records one finished request.
// Call with time.Now() taken before the handler ran.
func (m *Metrics) ObserveHTTP(route, method, status string, start time.Time) {
	m.HTTPRequests.WithLabelValues(route, method, status).Inc()
	m.HTTPDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
