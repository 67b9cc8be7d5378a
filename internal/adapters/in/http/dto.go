package http

import (
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	CustomerID string        `json:"customer_id"`
	Currency   string        `json:"currency"`
	Items      []ItemRequest `json:"items"`
}

// ItemRequest is one line of a CreateOrderRequest. Price accepts a JSON
// string or number.
type ItemRequest struct {
	SKU      string       `json:"sku"`
	Quantity int          `json:"qty"`
	Price    kernel.Money `json:"price"`
}

func (r CreateOrderRequest) lines() []commands.OrderLine {
	lines := make([]commands.OrderLine, 0, len(r.Items))
	for _, it := range r.Items {
		lines = append(lines, commands.OrderLine{SKU: it.SKU, Quantity: it.Quantity, UnitPrice: it.Price})
	}
	return lines
}

// UpdateStatusRequest is the body of PATCH /orders/:id.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// OrderResponse is the representation of an order in every successful
// response. Amounts are strings to keep their exact scale.
type OrderResponse struct {
	ID         string         `json:"id"`
	CustomerID string         `json:"customer_id"`
	Status     string         `json:"status"`
	Amount     kernel.Money   `json:"amount"`
	Currency   string         `json:"currency"`
	Items      []ItemResponse `json:"items"`
	Version    int64          `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

type ItemResponse struct {
	SKU      string       `json:"sku"`
	Quantity int          `json:"qty"`
	Price    kernel.Money `json:"price"`
}

func newOrderResponse(o *order.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, ItemResponse{SKU: it.SKU, Quantity: it.Quantity, Price: it.UnitPrice})
	}

	return OrderResponse{
		ID:         o.ID().String(),
		CustomerID: o.CustomerID(),
		Status:     o.Status().String(),
		Amount:     o.Amount(),
		Currency:   o.Currency(),
		Items:      items,
		Version:    o.Version(),
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
	}
}

// HealthResponse maps "status" and each dependency name to "ok", "error"
// or "degraded".
type HealthResponse map[string]string
