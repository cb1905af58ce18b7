package commands

import (
	"context"

	"ordering/internal/core/application/events"
	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/event"
)

// UpdateCartItemQuantityCommandHandler changes or removes a cart line and emits
// CartItemUpdated or CartItemRemoved.
type UpdateCartItemQuantityCommandHandler struct {
	uowFactory CartUoWFactory
	publisher  EventPublisher
}

func NewUpdateCartItemQuantityCommandHandler(
	uowFactory CartUoWFactory,
	publisher EventPublisher,
) UpdateCartItemQuantityCommandHandler {
	return UpdateCartItemQuantityCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h UpdateCartItemQuantityCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateCartItemQuantityCommand,
) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	c, err := cartRepo.GetForUpdate(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}

	item, removed, err := c.UpdateItemQuantity(cmd.ProductID(), cmd.Quantity())
	if err != nil {
		return nil, err
	}

	if err = cartRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	eventType := event.CartItemUpdated
	quantity := item.Quantity()
	if removed {
		eventType = event.CartItemRemoved
		quantity = 0
	}

	e, err := h.publisher.Publish(ctx, uow.EventRepository(), event.AggregateCart, c.ID(), eventType,
		events.NewCartItemPayload(c, item.ProductID(), item.SupplierID(), quantity))
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Broadcast(ctx, []*event.Event{e})
	return c, nil
}
