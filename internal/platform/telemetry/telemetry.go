// Package telemetry exposes Prometheus metrics for the HTTP surface and
// the upstream backend client.
package telemetry

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the collectors registered for this service.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	backendRequests *prometheus.CounterVec
	backendErrors   prometheus.Counter
	exportsTotal    *prometheus.CounterVec
	alertsRaised    *prometheus.CounterVec
}

// New creates a Metrics instance backed by its own registry so tests can
// instantiate it repeatedly.
func New(serviceName string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency in seconds.",
			ConstLabels: prometheus.Labels{"service": serviceName},
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Requests issued to the upstream facility backend.",
		}, []string{"resource", "status"}),
		backendErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "backend_errors_total",
			Help: "Upstream requests that failed before a response arrived.",
		}),
		exportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "exports_total",
			Help: "Generated export files by module and format.",
		}, []string{"module", "format"}),
		alertsRaised: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "alerts_raised_total",
			Help: "Document alerts raised by bucket.",
		}, []string{"bucket"}),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.backendRequests,
		m.backendErrors,
		m.exportsTotal,
		m.alertsRaised,
	)

	return m
}

// Middleware records request counts and latency per route pattern.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			// Route pattern, not the raw path, to bound cardinality.
			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			m.requestsTotal.WithLabelValues(method, route, status).Inc()
			m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler serves the registry in Prometheus text exposition format.
func (m *Metrics) Handler() echo.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c echo.Context) error {
		h.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}

// ObserveBackend records the outcome of an upstream request.
func (m *Metrics) ObserveBackend(resource string, statusCode int) {
	m.backendRequests.WithLabelValues(resource, strconv.Itoa(statusCode)).Inc()
}

// ObserveBackendError records an upstream request that never completed.
func (m *Metrics) ObserveBackendError() {
	m.backendErrors.Inc()
}

// ObserveExport records a generated export file.
func (m *Metrics) ObserveExport(module, format string) {
	m.exportsTotal.WithLabelValues(module, format).Inc()
}

// ObserveAlert records a document alert being raised.
func (m *Metrics) ObserveAlert(bucket string) {
	m.alertsRaised.WithLabelValues(bucket).Inc()
}

// Gather exposes the raw registry for tests.
func (m *Metrics) Gather() (metricCount int, err error) {
	families, err := m.registry.Gather()
	if err != nil {
		return 0, err
	}
	return len(families), nil
}
