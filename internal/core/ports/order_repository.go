// Package ports defines the contracts between the ordering core and its
// infrastructure: repositories, the unit of work, the message bus and the
// idempotency store.
package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their items and discrepancies.
type OrderRepository interface {
	// Add persists a new order with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order header, items and discrepancies.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads an order and locks its row until the transaction ends.
	// Must be called inside a transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListDeliveredBefore returns up to limit DELIVERED orders last updated before
	// the given time, oldest first.
	ListDeliveredBefore(ctx context.Context, before time.Time, limit int) ([]*order.Order, error)
}
