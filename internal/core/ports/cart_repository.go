package ports

import (
	"context"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for carts. A customer has at
// most one cart.
type CartRepository interface {
	// GetByCustomer loads the customer's cart without locking it.
	// Returns errs.ObjectNotFoundError when the customer has no cart.
	GetByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)

	// GetForUpdate loads the customer's cart and locks it until the transaction ends.
	GetForUpdate(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)

	// GetOrCreateForUpdate is GetForUpdate that first creates an empty cart when
	// none exists. Concurrent callers for one customer end up with the same row.
	GetOrCreateForUpdate(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)

	// Update persists the cart lines: changed lines are upserted and missing
	// lines deleted.
	Update(ctx context.Context, aggregate *cart.Cart) error
}
