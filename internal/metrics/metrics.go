package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Resolutions     *prometheus.CounterVec
	Reconciliations *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "painterconnectory",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed.",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "painterconnectory",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route", "status"},
		),
		Resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "painterconnectory",
				Subsystem: "identity",
				Name:      "resolutions_total",
				Help:      "Identity resolutions by outcome.",
			},
			[]string{"outcome"},
		),
		Reconciliations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "painterconnectory",
				Subsystem: "entitlement",
				Name:      "reconciliations_total",
				Help:      "Manual subscription reconciliations by outcome.",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.Resolutions, m.Reconciliations)

	return m
}

func (m *Metrics) ObserveResolution(outcome string) {
	m.Resolutions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveReconciliation(outcome string) {
	m.Reconciliations.WithLabelValues(outcome).Inc()
}

// Middleware records request counts and latency per route template.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Response().StatusCode())
		method := c.Method()

		m.RequestsTotal.WithLabelValues(method, route, status).Inc()
		m.RequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the metrics endpoint.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
