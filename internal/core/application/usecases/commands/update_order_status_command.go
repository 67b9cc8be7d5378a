package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand asks to move an order to a new status, provided
// the stored version still equals the version the caller last saw.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	requested       string
	expectedVersion int64

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand parses the order identifier. A malformed
// identifier cannot name a stored order and is reported as not found.
// The requested status is kept verbatim; unknown names fail later as an
// invalid transition.
func NewUpdateOrderStatusCommand(orderID, requestedStatus string, expectedVersion int64) (UpdateOrderStatusCommand, error) {
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return UpdateOrderStatusCommand{}, errs.NewObjectNotFoundErrorWithCause("order", orderID, err)
	}

	return UpdateOrderStatusCommand{
		orderID:         id,
		requested:       requestedStatus,
		expectedVersion: expectedVersion,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RequestedStatus is the parsed target, order.Unknown if unrecognised.
func (c UpdateOrderStatusCommand) RequestedStatus() order.Status {
	return order.ParseStatus(c.requested)
}

// RequestedStatusName is the target as the caller spelled it.
func (c UpdateOrderStatusCommand) RequestedStatusName() string {
	return c.requested
}

func (c UpdateOrderStatusCommand) ExpectedVersion() int64 {
	return c.expectedVersion
}
