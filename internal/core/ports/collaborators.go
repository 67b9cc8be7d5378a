package ports

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID() kernel.UUID
}

// Metrics receives success-path counters. Implementations must not block.
type Metrics interface {
	OrderCreated(ctx context.Context)
	StatusTransitioned(ctx context.Context, from, to order.Status)
}

// HealthChecker reports whether the primary store answers.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
