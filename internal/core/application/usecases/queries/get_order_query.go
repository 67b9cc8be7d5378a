package queries

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery fetches one order by identifier.
//
// Example:
//
//	query, err := NewGetOrderQuery("5b1c7f4e-2d0a-4f63-9a1e-7c3f0f2d9b11")
//	if err != nil {
//	    return err // errs.ErrObjectNotFound
//	}
//	found, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery parses orderID. An identifier that does not parse cannot
// belong to any order, so it is reported as not found rather than invalid.
func NewGetOrderQuery(orderID string) (GetOrderQuery, error) {
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return GetOrderQuery{}, errs.NewObjectNotFoundErrorWithCause("order", orderID, err)
	}
	return GetOrderQuery{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}
