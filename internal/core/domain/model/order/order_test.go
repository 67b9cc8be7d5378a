package order_test

import (
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, sku string, qty int, price string) order.Item {
	t.Helper()
	it, err := order.NewItem(sku, qty, kernel.MustNewMoney(price))
	require.NoError(t, err)
	return it
}

func TestNewItem(t *testing.T) {
	t.Run("valid line", func(t *testing.T) {
		it, err := order.NewItem("A", 2, kernel.MustNewMoney("10.00"))

		require.NoError(t, err)
		assert.Equal(t, "20.00", it.Subtotal().String())
	})

	testCases := []struct {
		name  string
		sku   string
		qty   int
		price string
		want  string
	}{
		{"empty sku", " ", 1, "1.00", "sku"},
		{"zero quantity", "A", 0, "1.00", "0 is not greater than 0"},
		{"negative quantity", "A", -3, "1.00", "-3 is not greater than 0"},
		{"zero price", "A", 1, "0.00", "price"},
		{"negative price", "A", 1, "-2.50", "price"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := order.NewItem(tc.sku, tc.qty, kernel.MustNewMoney(tc.price))

			require.ErrorIs(t, err, errs.ErrInvalidInput)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestNewOrder(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	id := kernel.NewUUID()

	t.Run("computes amount and initial state", func(t *testing.T) {
		items := []order.Item{mustItem(t, "A", 2, "10.00"), mustItem(t, "B", 1, "5.50")}

		o, err := order.NewOrder(id, "c1", "EUR", items, now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "c1", o.CustomerID())
		assert.Equal(t, "EUR", o.Currency())
		assert.Equal(t, "25.50", o.Amount().String())
		assert.Equal(t, order.Created, o.Status())
		assert.Equal(t, int64(1), o.Version())
		assert.Equal(t, now, o.CreatedAt())
		assert.Equal(t, now, o.UpdatedAt())
		assert.Len(t, o.Items(), 2)
	})

	t.Run("defaults currency", func(t *testing.T) {
		o, err := order.NewOrder(id, "c1", "", []order.Item{mustItem(t, "A", 1, "1.00")}, now)

		require.NoError(t, err)
		assert.Equal(t, order.DefaultCurrency, o.Currency())
	})

	t.Run("joins every validation failure", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, "", "USD", nil, now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "customer_id")
		assert.Contains(t, err.Error(), "items")
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	t.Run("rejects unvalidated lines", func(t *testing.T) {
		bad := order.Item{SKU: "A", Quantity: 0, UnitPrice: kernel.MustNewMoney("1.00")}

		_, err := order.NewOrder(id, "c1", "USD", []order.Item{bad}, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("items are copied in and out", func(t *testing.T) {
		items := []order.Item{mustItem(t, "A", 1, "1.00")}
		o, err := order.NewOrder(id, "c1", "USD", items, now)
		require.NoError(t, err)

		items[0].Quantity = 99
		out := o.Items()
		out[0].SKU = "Z"

		assert.Equal(t, 1, o.Items()[0].Quantity)
		assert.Equal(t, "A", o.Items()[0].SKU)
	})
}

func TestRestoreOrder(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	items := []order.Item{mustItem(t, "A", 2, "10.00")}

	t.Run("restores persisted state", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.RestoreOrder(id, "c1", "USD", items, order.Paid, 2, created, updated)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Paid, o.Status())
		assert.Equal(t, int64(2), o.Version())
		assert.Equal(t, "20.00", o.Amount().String())
		assert.Equal(t, updated, o.UpdatedAt())
	})

	t.Run("rejects unknown status and zero version", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), "c1", "USD", items, order.Unknown, 0, created, updated)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status is invalid")
		assert.Contains(t, err.Error(), "version")
	})
}

func TestOrder_ZeroValueIsNotConstructed(t *testing.T) {
	var o order.Order
	var nilOrder *order.Order

	assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())
}
