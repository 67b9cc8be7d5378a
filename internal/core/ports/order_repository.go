// Package ports declares what the order use cases need from the outside
// world: the order document store, the idempotency cache, a clock, an
// identifier source and a metrics sink.
package ports

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository owns the stored representation of orders and offers the
// only mutation primitives the core uses.
type OrderRepository interface {
	// Insert persists a brand-new order. The identifier must be fresh.
	// Store failures are reported as *errs.StoreUnavailableError.
	Insert(ctx context.Context, aggregate *order.Order) error

	// FindByID returns the stored order or an *errs.ObjectNotFoundError.
	FindByID(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CompareAndSwapStatus sets status, bumps version by one and stamps
	// updated_at with now, in a single store operation, only if the stored
	// document has this id and expectedVersion. When nothing matches it
	// changes nothing and returns errs.ErrVersionMismatch, whether the id is
	// missing or stale. It returns the post-image on success.
	CompareAndSwapStatus(
		ctx context.Context,
		id kernel.UUID,
		expectedVersion int64,
		newStatus order.Status,
		now time.Time,
	) (*order.Order, error)
}
