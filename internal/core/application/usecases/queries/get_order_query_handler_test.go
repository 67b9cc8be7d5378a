package queries_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Insert(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CompareAndSwapStatus(
	_ context.Context, _ kernel.UUID, _ int64, _ order.Status, _ time.Time,
) (*order.Order, error) {
	panic("not used by queries")
}

func TestNewGetOrderQuery_MalformedIDIsNotFound(t *testing.T) {
	for _, raw := range []string{"", "abc", "00000000-0000-0000-0000-000000000000"} {
		_, err := queries.NewGetOrderQuery(raw)
		require.ErrorIs(t, err, errs.ErrObjectNotFound, raw)
	}
}

func TestGetOrderQueryHandler_Handle_Found(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	item, err := order.NewItem("A", 1, kernel.MustNewMoney("3.50"))
	require.NoError(t, err)
	stored, err := order.NewOrder(id, "c1", "", []order.Item{item}, time.Now().UTC())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("FindByID", ctx, id).Return(stored, nil).Once()

	query, err := queries.NewGetOrderQuery(id.String())
	require.NoError(t, err)

	found, err := queries.NewGetOrderQueryHandler(repo).Handle(ctx, query)
	require.NoError(t, err)
	assert.Same(t, stored, found)
	assert.Equal(t, order.DefaultCurrency, found.Currency())
	repo.AssertExpectations(t)
}

func TestGetOrderQueryHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()

	repo := new(MockOrderRepository)
	repo.On("FindByID", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id)).Once()

	query, err := queries.NewGetOrderQuery(id.String())
	require.NoError(t, err)

	_, err = queries.NewGetOrderQueryHandler(repo).Handle(ctx, query)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetOrderQueryHandler_Handle_ValidationError(t *testing.T) {
	_, err := queries.NewGetOrderQueryHandler(new(MockOrderRepository)).Handle(t.Context(), queries.GetOrderQuery{})
	require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}
