package queries_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListDeliveredBefore(ctx context.Context, before time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) GetByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) GetForUpdate(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) GetOrCreateForUpdate(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Update(ctx context.Context, c *cart.Cart) error {
	return m.Called(ctx, c).Error(0)
}

type MockEventRepository struct{ mock.Mock }

func (m *MockEventRepository) Lock(ctx context.Context, aggregateType string, aggregateID kernel.UUID) error {
	return m.Called(ctx, aggregateType, aggregateID).Error(0)
}

func (m *MockEventRepository) LastVersion(ctx context.Context, aggregateType string, aggregateID kernel.UUID) (int64, error) {
	args := m.Called(ctx, aggregateType, aggregateID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) Append(ctx context.Context, e *event.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEventRepository) ListByAggregate(
	ctx context.Context,
	aggregateType string,
	aggregateID kernel.UUID,
) ([]*event.Event, error) {
	args := m.Called(ctx, aggregateType, aggregateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*event.Event), args.Error(1)
}

func (m *MockEventRepository) ListUnpublished(ctx context.Context, createdBefore time.Time, limit int) ([]*event.Event, error) {
	args := m.Called(ctx, createdBefore, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*event.Event), args.Error(1)
}

func (m *MockEventRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	return m.Called(ctx, ids, at).Error(0)
}

func (m *MockEventRepository) RecordPublishFailure(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

func testOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	price, err := kernel.MoneyFromString("2.40")
	require.NoError(t, err)
	rate, err := kernel.VatRateFromString("0")
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Salt", "", price, rate, 5)
	require.NoError(t, err)

	id := kernel.NewUUID()
	now := time.Now().UTC()
	o, err := order.RestoreOrder(order.Snapshot{
		ID:              id,
		Number:          order.NewOrderNumber(id, now),
		SupplierID:      kernel.NewUUID(),
		CustomerID:      kernel.NewUUID(),
		Status:          status,
		DeliveryAddress: "4 Dock Road",
		Items:           []*order.Item{item},
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	require.NoError(t, err)
	return o
}
