// Package metrics holds the prometheus collectors of the order service.
//
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

type Metrics struct {
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	ordersCreated    prometheus.Counter
	statusChanges    *prometheus.CounterVec
	notifications    *prometheus.CounterVec
	notifyDuration   *prometheus.HistogramVec
	outboxDispatched prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "path"}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Orders placed successfully.",
		}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_changes_total",
			Help:      "Applied order status transitions by target status.",
		}, []string{"status"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification attempts by channel, kind and outcome.",
		}, []string{"channel", "kind", "outcome"}),
		notifyDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "notification_duration_ms",
			Help:      "Per-channel notification latency in milliseconds.",
			Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"channel"}),
		outboxDispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_outbox_dispatched_total",
			Help:      "Outbox entries handed to the notifier.",
		}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.ordersCreated,
		m.statusChanges,
		m.notifications,
		m.notifyDuration,
		m.outboxDispatched,
	)
	return m
}

func (m *Metrics) OrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

func (m *Metrics) StatusChanged(status string) {
	if m == nil {
		return
	}
	m.statusChanges.WithLabelValues(status).Inc()
}

// NotificationSent records one channel attempt. outcome is one of "sent", "failed", "timeout" and "cancelled".
func (m *Metrics) NotificationSent(channel, kind, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(channel, kind, outcome).Inc()
	m.notifyDuration.WithLabelValues(channel).Observe(float64(took.Milliseconds()))
}

func (m *Metrics) OutboxDispatched(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.outboxDispatched.Add(float64(n))
}

// Middleware counts requests by route template rather than raw path.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				} else if status < http.StatusBadRequest {
					status = http.StatusInternalServerError
				}
			}

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			method := c.Request().Method
			m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			m.httpDuration.WithLabelValues(method, path).Observe(float64(time.Since(start).Milliseconds()))
			return err
		}
	}
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
