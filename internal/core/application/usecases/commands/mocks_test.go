package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Insert(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CompareAndSwapStatus(
	ctx context.Context,
	id kernel.UUID,
	expectedVersion int64,
	newStatus order.Status,
	now time.Time,
) (*order.Order, error) {
	args := m.Called(ctx, id, expectedVersion, newStatus, now)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockIdempotencyCache struct{ mock.Mock }

func (m *MockIdempotencyCache) Lookup(ctx context.Context, key string) (*ports.CachedResult, error) {
	args := m.Called(ctx, key)
	if r, ok := args.Get(0).(*ports.CachedResult); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIdempotencyCache) Store(ctx context.Context, key string, result ports.CachedResult, ttl time.Duration) error {
	args := m.Called(ctx, key, result, ttl)
	return args.Error(0)
}

func (m *MockIdempotencyCache) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockMetrics struct{ mock.Mock }

func (m *MockMetrics) OrderCreated(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockMetrics) StatusTransitioned(ctx context.Context, from, to order.Status) {
	m.Called(ctx, from, to)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// sequenceIDs hands out the given identifiers in order, then fresh ones.
type sequenceIDs struct{ ids []kernel.UUID }

func (s *sequenceIDs) NewID() kernel.UUID {
	if len(s.ids) == 0 {
		return kernel.NewUUID()
	}
	id := s.ids[0]
	s.ids = s.ids[1:]
	return id
}

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
