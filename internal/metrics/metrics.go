package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Business Metrics
	PushesTotal        *prometheus.CounterVec
	CallbacksTotal     *prometheus.CounterVec
	StatusLookupsTotal *prometheus.CounterVec
	OrdersCreated      prometheus.Counter

	// Validation Metrics
	ValidationErrors *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vertex_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vertex_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "vertex_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),

		PushesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vertex_stk_pushes_total",
				Help: "Total number of STK push initiations",
			},
			[]string{"outcome"},
		),
		CallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vertex_callbacks_total",
				Help: "Total number of processor callbacks received",
			},
			[]string{"result"},
		),
		StatusLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vertex_status_lookups_total",
				Help: "Total number of transaction status lookups",
			},
			[]string{"status"},
		),
		OrdersCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "vertex_orders_created_total",
				Help: "Total number of orders created",
			},
		),
		ValidationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vertex_validation_errors_total",
				Help: "Total number of request validation errors",
			},
			[]string{"field", "tag"},
		),
	}
}

// Handler exposes the registry for the standalone metrics listener.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
}

func (m *Metrics) RecordPush(outcome string) {
	m.PushesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordCallback(result string) {
	m.CallbacksTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordStatusLookup(status string) {
	m.StatusLookupsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordOrderCreated() {
	m.OrdersCreated.Inc()
}

func (m *Metrics) RecordValidationError(field, tag string) {
	m.ValidationErrors.WithLabelValues(field, tag).Inc()
}
