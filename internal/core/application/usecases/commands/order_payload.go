package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// orderPayload is the snapshot kept in the idempotency cache.
type orderPayload struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Currency   string        `json:"currency"`
	Items      []itemPayload `json:"items"`
	Amount     kernel.Money  `json:"amount"`
	Status     string        `json:"status"`
	Version    int64         `json:"version"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

type itemPayload struct {
	SKU       string       `json:"sku"`
	Quantity  int          `json:"qty"`
	UnitPrice kernel.Money `json:"price"`
}

func encodeOrder(o *order.Order) ([]byte, error) {
	items := make([]itemPayload, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, itemPayload{SKU: it.SKU, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}

	return json.Marshal(orderPayload{
		ID:         o.ID().String(),
		CustomerID: o.CustomerID(),
		Currency:   o.Currency(),
		Items:      items,
		Amount:     o.Amount(),
		Status:     o.Status().String(),
		Version:    o.Version(),
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
	})
}

func decodeOrder(data []byte) (*order.Order, error) {
	var p orderPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode cached order: %w", err)
	}

	id, err := kernel.UUIDFromString(p.ID)
	if err != nil {
		return nil, fmt.Errorf("decode cached order: %w", err)
	}

	items := make([]order.Item, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, order.Item{SKU: it.SKU, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}

	return order.RestoreOrder(
		id, p.CustomerID, p.Currency, items,
		order.ParseStatus(p.Status), p.Version,
		p.CreatedAt, p.UpdatedAt,
	)
}
