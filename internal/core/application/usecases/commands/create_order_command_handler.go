package commands

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// DefaultIdempotencyTTL is how long a creation outcome stays replayable.
const DefaultIdempotencyTTL = 24 * time.Hour

// CreateOrderCommandHandler creates orders and replays earlier outcomes for
// repeated idempotency keys.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(repo, cache, kernel.SystemClock{},
//	    kernel.UUIDGenerator{}, metrics, DefaultIdempotencyTTL, logger)
//	first, _ := handler.HandleOutcome(ctx, cmd)
//	again, _ := handler.HandleOutcome(ctx, cmd) // same key: again.Replayed, same order and status code
type CreateOrderCommandHandler struct {
	orders  ports.OrderRepository
	cache   ports.IdempotencyCache
	clock   ports.Clock
	ids     ports.IDGenerator
	metrics ports.Metrics
	ttl     time.Duration
	logger  *slog.Logger
}

// NewCreateOrderCommandHandler wires the handler. A non-positive ttl falls
// back to DefaultIdempotencyTTL.
func NewCreateOrderCommandHandler(
	orders ports.OrderRepository,
	cache ports.IdempotencyCache,
	clock ports.Clock,
	ids ports.IDGenerator,
	metrics ports.Metrics,
	ttl time.Duration,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return CreateOrderCommandHandler{
		orders:  orders,
		cache:   cache,
		clock:   clock,
		ids:     ids,
		metrics: metrics,
		ttl:     ttl,
		logger:  logger.With("component", "create_order_handler"),
	}
}

// CreateOrderOutcome is what a creation request produced.
type CreateOrderOutcome struct {
	Order *order.Order
	// StatusCode is the status of the response that first created the
	// order; a replay answers with the same one.
	StatusCode int
	// Replayed is true when the outcome came from the idempotency cache.
	Replayed bool
}

// Handle is HandleOutcome without the response metadata.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	outcome, err := h.HandleOutcome(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return outcome.Order, nil
}

// HandleOutcome returns the cached outcome when the command's key was seen
// before and has not expired. Otherwise it inserts a new order in Created
// status at version 1 and, when a key is present, caches the result.
//
// Two concurrent first requests with the same key may both insert; the last
// cache write decides which order later retries see.
func (h *CreateOrderCommandHandler) HandleOutcome(ctx context.Context, cmd CreateOrderCommand) (CreateOrderOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderOutcome{}, err
	}

	key := cmd.IdempotencyKey()
	if key != "" {
		cached, err := h.cache.Lookup(ctx, key)
		if err != nil {
			return CreateOrderOutcome{}, err
		}
		if outcome, ok := h.replay(ctx, key, cached); ok {
			return outcome, nil
		}
	}

	created, err := order.NewOrder(h.ids.NewID(), cmd.CustomerID(), cmd.Currency(), cmd.Items(), h.clock.Now())
	if err != nil {
		return CreateOrderOutcome{}, err
	}

	if err = h.orders.Insert(ctx, created); err != nil {
		return CreateOrderOutcome{}, err
	}

	emit(ctx, h.logger, func() { h.metrics.OrderCreated(ctx) })

	if key != "" {
		h.remember(ctx, key, created)
	}

	return CreateOrderOutcome{Order: created, StatusCode: http.StatusCreated}, nil
}

// replay decodes a cache hit. An undecodable record counts as a miss.
func (h *CreateOrderCommandHandler) replay(
	ctx context.Context,
	key string,
	cached *ports.CachedResult,
) (CreateOrderOutcome, bool) {
	if cached == nil {
		return CreateOrderOutcome{}, false
	}

	replayed, err := decodeOrder(cached.Payload)
	if err != nil {
		h.logger.WarnContext(ctx, "ignoring undecodable idempotency record",
			"idempotency_key", key, "error", err)
		return CreateOrderOutcome{}, false
	}

	status := cached.StatusCode
	if status == 0 {
		status = http.StatusCreated
	}
	h.logger.DebugContext(ctx, "replaying cached order", "idempotency_key", key, "order_id", replayed.ID())
	return CreateOrderOutcome{Order: replayed, StatusCode: status, Replayed: true}, true
}

// remember caches the outcome. The order already exists at this point, so a
// failure is logged rather than returned.
func (h *CreateOrderCommandHandler) remember(ctx context.Context, key string, created *order.Order) {
	payload, err := encodeOrder(created)
	if err != nil {
		h.logger.ErrorContext(ctx, "encode order for idempotency cache", "order_id", created.ID(), "error", err)
		return
	}

	result := ports.CachedResult{Payload: payload, StatusCode: http.StatusCreated}
	if err = h.cache.Store(ctx, key, result, h.ttl); err != nil {
		h.logger.WarnContext(ctx, "store idempotency record",
			"idempotency_key", key, "order_id", created.ID(), "error", err)
	}
}
