package commands

import (
	"context"
	"errors"
	"log/slog"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler is the only writer of order status.
type UpdateOrderStatusCommandHandler struct {
	orders  ports.OrderRepository
	clock   ports.Clock
	metrics ports.Metrics
	logger  *slog.Logger
}

func NewUpdateOrderStatusCommandHandler(
	orders ports.OrderRepository,
	clock ports.Clock,
	metrics ports.Metrics,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		orders:  orders,
		clock:   clock,
		metrics: metrics,
		logger:  logger.With("component", "update_order_status_handler"),
	}
}

// Handle reads the order, checks the transition against the stored status
// and applies it with a conditional write on the expected version.
//
// Errors:
//   - errs.ErrObjectNotFound when the order does not exist
//   - errs.ErrInvalidTransition when the stored status cannot reach the
//     requested one
//   - errs.ErrConflict when the conditional write loses, or when a retried
//     transition was already applied (requested equals stored status and the
//     caller's version is stale)
//   - errs.ErrStoreUnavailable on store failure
func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	current, err := h.orders.FindByID(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	from, to := current.Status(), cmd.RequestedStatus()
	if !order.IsTransitionAllowed(from, to) {
		if isAppliedRetry(current, to, cmd.ExpectedVersion()) {
			return nil, errs.NewConflictError(cmd.OrderID(), cmd.ExpectedVersion())
		}
		if from.IsTerminal() {
			h.logger.DebugContext(ctx, "transition out of terminal status rejected",
				"order_id", current.ID(), "status", from, "requested", cmd.RequestedStatusName())
		}
		return nil, errs.NewInvalidTransitionError(from.String(), cmd.RequestedStatusName())
	}

	updated, err := h.orders.CompareAndSwapStatus(ctx, cmd.OrderID(), cmd.ExpectedVersion(), to, h.clock.Now())
	if err != nil {
		if errors.Is(err, errs.ErrVersionMismatch) {
			return nil, errs.NewConflictErrorWithCause(cmd.OrderID(), cmd.ExpectedVersion(), err)
		}
		return nil, err
	}

	h.logger.InfoContext(ctx, "order status changed",
		"order_id", updated.ID(), "from", from, "to", to, "version", updated.Version())
	emit(ctx, h.logger, func() { h.metrics.StatusTransitioned(ctx, from, to) })

	return updated, nil
}

// isAppliedRetry reports a request for the status the order already holds,
// sent with a version older than the stored one: the client is resubmitting a
// transition that succeeded but whose response it never received.
func isAppliedRetry(current *order.Order, requested order.Status, expectedVersion int64) bool {
	return current.Status() == requested && current.Version() != expectedVersion
}
