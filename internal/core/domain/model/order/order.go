package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

// DefaultCurrency applies when a creation request leaves the currency empty.
const DefaultCurrency = "USD"

// ErrOrderIsNotConstructed is returned by Validate for an Order that did not
// come from NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Item is a single order line.
type Item struct {
	SKU       string
	Quantity  int
	UnitPrice kernel.Money
}

// NewItem validates an order line: the SKU is required, the quantity and the
// unit price must be greater than zero.
func NewItem(sku string, quantity int, unitPrice kernel.Money) (Item, error) {
	var problems []error
	if strings.TrimSpace(sku) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("sku"))
	}
	if quantity <= 0 {
		problems = append(problems,
			errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if !unitPrice.IsPositive() {
		problems = append(problems,
			errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is not greater than 0", unitPrice)))
	}
	if err := errors.Join(problems...); err != nil {
		return Item{}, err
	}

	return Item{SKU: sku, Quantity: quantity, UnitPrice: unitPrice}, nil
}

// Subtotal is Quantity × UnitPrice.
func (i Item) Subtotal() kernel.Money {
	return i.UnitPrice.MulQuantity(i.Quantity)
}

// Order is the aggregate root of the service.
//
// Invariants:
//   - amount equals the sum of item subtotals
//   - version starts at 1 and only the repository's conditional write advances it
//   - status only moves along IsTransitionAllowed edges
type Order struct {
	id         kernel.UUID
	customerID string
	currency   string
	items      []Item
	amount     kernel.Money
	status     Status
	version    int64
	createdAt  time.Time
	updatedAt  time.Time

	isConstructed bool
}

// NewOrder builds a fresh order in Created status at version 1, computing the
// amount from items. Items must already be validated through NewItem.
//
// Parameters:
//   - id: identifier of the new order, usually from ports.IDGenerator
//   - customerID: required, blank values are rejected
//   - currency: empty means DefaultCurrency
//   - items: at least one line
//   - now: becomes both created_at and updated_at
//
// Returns:
//   - *Order: the order, not yet persisted
//   - error: the joined validation errors, all under errs.ErrInvalidInput
//
// Example:
//
//	item, _ := NewItem("A", 2, kernel.MustNewMoney("10.00"))
//	o, err := NewOrder(kernel.NewUUID(), "c1", "", []Item{item}, clock.Now())
//	if err != nil {
//	    return err
//	}
//	o.Amount().String() // "20.00"
func NewOrder(id kernel.UUID, customerID, currency string, items []Item, now time.Time) (*Order, error) {
	if currency == "" {
		currency = DefaultCurrency
	}

	o := &Order{
		status:        Created,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setCurrency(currency),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rehydrates an order from storage. The amount is recomputed
// from the items rather than trusted from the stored document.
func RestoreOrder(
	id kernel.UUID,
	customerID, currency string,
	items []Item,
	status Status,
	version int64,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCurrency(currency),
		o.setItems(items),
		o.setStatus(status),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}
	o.customerID = customerID

	return o, nil
}

// Validate fails for zero-value or nil orders.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the customer the order belongs to.
func (o *Order) CustomerID() string {
	return o.customerID
}

// Currency returns the ISO-style currency code shared by all lines.
func (o *Order) Currency() string {
	return o.currency
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Amount returns the sum of the item subtotals.
func (o *Order) Amount() kernel.Money {
	return o.amount
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// Version returns the optimistic-concurrency counter. Clients send it back
// in If-Match when changing the status.
func (o *Order) Version() int64 {
	return o.version
}

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the status last changed, or CreatedAt if never.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID string) error {
	if strings.TrimSpace(customerID) == "" {
		return errs.NewValueIsRequiredError("customer_id")
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setCurrency(currency string) error {
	if strings.TrimSpace(currency) == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	o.currency = currency
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	amount := kernel.Zero
	for i, it := range items {
		if it.Quantity <= 0 || !it.UnitPrice.IsPositive() {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("line %d has a non-positive quantity or price", i))
		}
		amount = amount.Add(it.Subtotal())
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	o.amount = amount
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setVersion(version int64) error {
	if version < 1 {
		return errs.NewValueIsOutOfRangeError("version", version, 1, "unbounded")
	}
	o.version = version
	return nil
}
