package order_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T, price string, vat string, quantity int) *order.Item {
	t.Helper()

	unitPrice, err := kernel.MoneyFromString(price)
	require.NoError(t, err)
	rate, err := kernel.VatRateFromString(vat)
	require.NoError(t, err)

	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Widget", "W-1", unitPrice, rate, quantity)
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		"1 Market Street",
		time.Now().Add(72*time.Hour),
	)
	require.NoError(t, err)
	return o
}

// restoreInStatus builds an order already in the given status with the given items.
func restoreInStatus(t *testing.T, status order.Status, items ...*order.Item) *order.Order {
	t.Helper()

	id := kernel.NewUUID()
	now := time.Now().UTC()
	o, err := order.RestoreOrder(order.Snapshot{
		ID:              id,
		Number:          order.NewOrderNumber(id, now),
		SupplierID:      kernel.NewUUID(),
		CustomerID:      kernel.NewUUID(),
		Status:          status,
		DeliveryAddress: "1 Market Street",
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	require.NoError(t, err)
	return o
}
