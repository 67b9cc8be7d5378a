package http_test

import (
	"context"
	"sync"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// memoryOrders is an in-memory ports.OrderRepository with the same
// conditional-write contract as the PostgreSQL adapter.
type memoryOrders struct {
	mu      sync.Mutex
	orders  map[string]*order.Order
	inserts int
	err     error
}

func newMemoryOrders() *memoryOrders {
	return &memoryOrders{orders: make(map[string]*order.Order)}
}

func (m *memoryOrders) Insert(_ context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.orders[o.ID().String()] = o
	m.inserts++
	return nil
}

func (m *memoryOrders) FindByID(_ context.Context, id kernel.UUID) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	o, ok := m.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}

func (m *memoryOrders) CompareAndSwapStatus(
	_ context.Context,
	id kernel.UUID,
	expectedVersion int64,
	newStatus order.Status,
	now time.Time,
) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	current, ok := m.orders[id.String()]
	if !ok || current.Version() != expectedVersion {
		return nil, errs.ErrVersionMismatch
	}
	next, err := order.RestoreOrder(current.ID(), current.CustomerID(), current.Currency(), current.Items(),
		newStatus, current.Version()+1, current.CreatedAt(), now)
	if err != nil {
		return nil, err
	}
	m.orders[id.String()] = next
	return next, nil
}

type memoryCache struct {
	mu      sync.Mutex
	records map[string]ports.CachedResult
}

func newMemoryCache() *memoryCache {
	return &memoryCache{records: make(map[string]ports.CachedResult)}
}

func (m *memoryCache) Lookup(_ context.Context, key string) (*ports.CachedResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[key]
	if !ok || key == "" {
		return nil, nil
	}
	return &r, nil
}

func (m *memoryCache) Store(_ context.Context, key string, result ports.CachedResult, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = result
	return nil
}

func (m *memoryCache) PurgeExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type noopMetrics struct{}

func (noopMetrics) OrderCreated(context.Context) {}
func (noopMetrics) StatusTransitioned(context.Context, order.Status, order.Status) {}

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

// Now advances one second per call so updated_at visibly moves.
func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type stubHealth struct{ err error }

func (s stubHealth) Ping(context.Context) error { return s.err }
