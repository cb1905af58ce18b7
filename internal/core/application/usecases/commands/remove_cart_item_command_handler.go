package commands

import (
	"context"

	"ordering/internal/core/application/events"
	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/event"
	"ordering/internal/pkg/errs"
)

type RemoveCartItemCommandHandler struct {
	uowFactory CartUoWFactory
	publisher  EventPublisher
}

func NewRemoveCartItemCommandHandler(uowFactory CartUoWFactory, publisher EventPublisher) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle drops the product line. An unknown product or a missing cart is an
// errs.ObjectNotFoundError.
func (h RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) (*cart.Cart, error) {
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

	item, found := c.Item(cmd.ProductID())
	if !found {
		return nil, errs.NewObjectNotFoundError("cart item", cmd.ProductID().String())
	}

	if err = c.RemoveItem(cmd.ProductID()); err != nil {
		return nil, err
	}

	if err = cartRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	e, err := h.publisher.Publish(ctx, uow.EventRepository(), event.AggregateCart, c.ID(), event.CartItemRemoved,
		events.NewCartItemPayload(c, item.ProductID(), item.SupplierID(), 0))
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Broadcast(ctx, []*event.Event{e})
	return c, nil
}
