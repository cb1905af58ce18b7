package commands

import (
	"context"

	"ordering/internal/core/application/events"
	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/event"
)

// AddCartItemCommandHandler adds a product line to the customer's cart, creating
// the cart on first use. The cart row lock serializes concurrent edits of one
// customer's cart.
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
	publisher  EventPublisher
}

func NewAddCartItemCommandHandler(uowFactory CartUoWFactory, publisher EventPublisher) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns the cart as committed.
func (h AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) (*cart.Cart, error) {
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
	c, err := cartRepo.GetOrCreateForUpdate(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}

	item, err := c.AddItem(cmd.Product(), cmd.Quantity())
	if err != nil {
		return nil, err
	}

	if err = cartRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	e, err := h.publisher.Publish(ctx, uow.EventRepository(), event.AggregateCart, c.ID(), event.CartItemAdded,
		events.NewCartItemPayload(c, item.ProductID(), item.SupplierID(), item.Quantity()))
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Broadcast(ctx, []*event.Event{e})
	return c, nil
}
