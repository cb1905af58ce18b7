package queries

import (
	"context"

	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
)

type GetOrderEventsQueryHandler struct {
	orders ports.OrderRepository
	events ports.EventRepository
	policy services.AccessPolicy
}

func NewGetOrderEventsQueryHandler(orders ports.OrderRepository, events ports.EventRepository) GetOrderEventsQueryHandler {
	return GetOrderEventsQueryHandler{orders: orders, events: events, policy: services.NewAccessPolicy()}
}

// Handle returns the order's events by ascending version after checking that
// the actor may view the order.
func (h GetOrderEventsQueryHandler) Handle(ctx context.Context, query GetOrderEventsQuery) ([]*event.Event, error) {
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

	return h.events.ListByAggregate(ctx, event.AggregateOrder, o.ID())
}
