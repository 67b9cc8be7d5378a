// Package orderrepo persists order aggregates in the orders table. Each order
// is one row; its lines live in a JSONB column so a single row read or write
// covers the whole document.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO is the row layout of the orders table. Timestamps come from the
// domain clock, never from gorm.
type OrderDTO struct {
	ID         uuid.UUID                    `gorm:"type:uuid;primaryKey"`
	CustomerID string                       `gorm:"not null"`
	Currency   string                       `gorm:"not null"`
	Items      datatypes.JSONSlice[ItemDTO] `gorm:"type:jsonb;not null"`
	Amount     kernel.Money                 `gorm:"type:numeric;not null"`
	Status     string                       `gorm:"type:varchar(16);not null"`
	Version    int64                        `gorm:"not null"`
	CreatedAt  time.Time                    `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt  time.Time                    `gorm:"not null;autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one element of the items document.
type ItemDTO struct {
	SKU       string       `json:"sku"`
	Quantity  int          `json:"qty"`
	UnitPrice kernel.Money `json:"price"`
}

func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, it := range aggregate.Items() {
		items = append(items, ItemDTO{SKU: it.SKU, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}

	return OrderDTO{
		ID:         aggregate.ID().Bytes(),
		CustomerID: aggregate.CustomerID(),
		Currency:   aggregate.Currency(),
		Items:      datatypes.JSONSlice[ItemDTO](items),
		Amount:     aggregate.Amount(),
		Status:     aggregate.Status().String(),
		Version:    aggregate.Version(),
		CreatedAt:  aggregate.CreatedAt(),
		UpdatedAt:  aggregate.UpdatedAt(),
	}
}

// toDomain rebuilds the aggregate through RestoreOrder, so a row that breaks
// an invariant (unknown status, empty items) is rejected rather than served.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		items = append(items, order.Item{SKU: it.SKU, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}

	return order.RestoreOrder(
		id,
		dto.CustomerID,
		dto.Currency,
		items,
		order.ParseStatus(dto.Status),
		dto.Version,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}
