package prometheus_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	metrics "orders/internal/adapters/out/prometheus"
	"orders/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.NewMetrics(reg)
	require.NoError(t, err)

	m.OrderCreated(t.Context())
	m.OrderCreated(t.Context())
	m.StatusTransitioned(t.Context(), order.Created, order.Paid)

	expected := `
# HELP orders_created_total Orders created, excluding idempotent replays.
# TYPE orders_created_total counter
orders_created_total 2
# HELP state_transitions_total Successful order status changes.
# TYPE state_transitions_total counter
state_transitions_total{from_status="CREATED",to_status="PAID"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"orders_created_total", "state_transitions_total"))
}

func TestMetrics_HTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.NewMetrics(reg)
	require.NoError(t, err)

	m.ObserveHTTPRequest(http.MethodPost, "/orders", http.StatusCreated, 15*time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "http_requests_total", "http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.NewMetrics(reg)
	require.NoError(t, err)

	_, err = metrics.NewMetrics(reg)
	assert.Error(t, err)
}
