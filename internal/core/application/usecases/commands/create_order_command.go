package commands

import (
	"errors"
	"strings"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine is one requested line of a new order.
type OrderLine struct {
	SKU       string
	Quantity  int
	UnitPrice kernel.Money
}

// CreateOrderCommand requests a new order. A non-empty idempotency key makes
// retries of the same request return the order created the first time.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("c1", "USD", []OrderLine{
//	    {SKU: "A", Quantity: 2, UnitPrice: kernel.MustNewMoney("10.00")},
//	}, "K1")
//	if err != nil {
//	    return err // errs.ErrInvalidInput
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID     string
	currency       string
	items          []order.Item
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the payload: a customer ID, at least one
// line, and a positive quantity and unit price on every line.
func NewCreateOrderCommand(
	customerID, currency string,
	lines []OrderLine,
	idempotencyKey string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		currency:       strings.TrimSpace(currency),
		idempotencyKey: strings.TrimSpace(idempotencyKey),
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setItems(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() string {
	return c.customerID
}

// Currency may be empty; the order then uses order.DefaultCurrency.
func (c CreateOrderCommand) Currency() string {
	return c.currency
}

func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c CreateOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *CreateOrderCommand) setCustomerID(customerID string) error {
	if strings.TrimSpace(customerID) == "" {
		return errs.NewValueIsRequiredError("customer_id")
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	items := make([]order.Item, 0, len(lines))
	var problems []error
	for _, line := range lines {
		it, err := order.NewItem(line.SKU, line.Quantity, line.UnitPrice)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		items = append(items, it)
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	c.items = items
	return nil
}
