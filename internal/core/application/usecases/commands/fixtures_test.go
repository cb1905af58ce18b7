package commands_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func testProduct(t *testing.T, supplierID kernel.UUID) cart.Product {
	t.Helper()

	price, err := kernel.MoneyFromString("9.99")
	require.NoError(t, err)
	rate, err := kernel.VatRateFromString("20")
	require.NoError(t, err)

	return cart.Product{
		ID:         kernel.NewUUID(),
		SupplierID: supplierID,
		Name:       "Coffee beans",
		Sku:        "CB-1KG",
		UnitPrice:  price,
		VatRate:    rate,
	}
}

func testCart(t *testing.T, customerID kernel.UUID, products ...cart.Product) *cart.Cart {
	t.Helper()

	c, err := cart.NewCart(kernel.NewUUID(), customerID)
	require.NoError(t, err)
	for _, p := range products {
		_, err = c.AddItem(p, 2)
		require.NoError(t, err)
	}
	return c
}

func testOrderItem(t *testing.T, quantity int) *order.Item {
	t.Helper()

	price, err := kernel.MoneyFromString("5.00")
	require.NoError(t, err)
	rate, err := kernel.VatRateFromString("10")
	require.NoError(t, err)

	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Tea", "", price, rate, quantity)
	require.NoError(t, err)
	return item
}

func testOrder(t *testing.T, status order.Status, items ...*order.Item) *order.Order {
	t.Helper()

	if len(items) == 0 {
		items = []*order.Item{testOrderItem(t, 3)}
	}

	id := kernel.NewUUID()
	now := time.Now().UTC().Add(-time.Minute)
	o, err := order.RestoreOrder(order.Snapshot{
		ID:              id,
		Number:          order.NewOrderNumber(id, now),
		SupplierID:      kernel.NewUUID(),
		CustomerID:      kernel.NewUUID(),
		Status:          status,
		DeliveryAddress: "9 Harbour Lane",
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	require.NoError(t, err)
	return o
}
