package queries

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
)

// GetOrderQueryHandler returns the full aggregate so callers see items and
// discrepancies exactly as the domain holds them.
type GetOrderQueryHandler struct {
	orders ports.OrderRepository
	policy services.AccessPolicy
}

// NewGetOrderQueryHandler takes a repository that is not bound to a transaction.
func NewGetOrderQueryHandler(orders ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, policy: services.NewAccessPolicy()}
}

// Handle returns errs.AccessDeniedError when the actor owns neither side of the order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.CanView(o, query.Actor()); err != nil {
		return nil, err
	}

	return o, nil
}
