// Package prometheus exports the service counters through
// github.com/prometheus/client_golang. All collectors register on the
// registerer passed in, so tests can use a private registry.
package prometheus

import (
	"context"
	"strconv"
	"time"

	"orders/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements ports.Metrics and also records HTTP traffic.
type Metrics struct {
	ordersCreated    prometheus.Counter
	stateTransitions *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors. It fails if any of them is
// already registered on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Orders created, excluding idempotent replays.",
		}),
		stateTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "state_transitions_total",
			Help: "Successful order status changes.",
		}, []string{"from_status", "to_status"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status code.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}

	for _, c := range []prometheus.Collector{m.ordersCreated, m.stateTransitions, m.httpRequests, m.httpDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) OrderCreated(_ context.Context) {
	m.ordersCreated.Inc()
}

func (m *Metrics) StatusTransitioned(_ context.Context, from, to order.Status) {
	m.stateTransitions.WithLabelValues(from.String(), to.String()).Inc()
}

// ObserveHTTPRequest records one finished request. path is the route
// template, not the raw URL, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, path, code).Inc()
	m.httpDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}
