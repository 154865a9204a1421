package observability

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the prometheus vectors shared across the HTTP layer and the
// order use case. Vectors are registered once at startup and injected; no
// code path registers metrics lazily.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	OrdersPlaced *prometheus.CounterVec
	OrderValue   prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		OrdersPlaced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_placed_total",
				Help: "Order placement attempts by outcome.",
			},
			[]string{"outcome"},
		),
		OrderValue: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "order_value",
				Help:    "Committed order totals in currency units.",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
	}
	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.OrdersPlaced, m.OrderValue)
	return m
}
