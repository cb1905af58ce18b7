package commands

import (
	"context"
	"errors"

	"ordering/internal/core/application/events"
	"ordering/internal/core/domain/model/event"
	"ordering/internal/pkg/errs"
)

// ClearCartCommandHandler empties the customer's cart. Clearing a missing or
// empty cart succeeds without emitting an event.
type ClearCartCommandHandler struct {
	uowFactory CartUoWFactory
	publisher  EventPublisher
}

func NewClearCartCommandHandler(uowFactory CartUoWFactory, publisher EventPublisher) ClearCartCommandHandler {
	return ClearCartCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h ClearCartCommandHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	c, err := cartRepo.GetForUpdate(ctx, cmd.CustomerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if c.IsEmpty() {
		return nil
	}

	c.Clear()
	if err = cartRepo.Update(ctx, c); err != nil {
		return err
	}

	e, err := h.publisher.Publish(ctx, uow.EventRepository(), event.AggregateCart, c.ID(), event.CartCleared,
		events.CartClearedPayload{CartID: c.ID().String(), CustomerID: c.CustomerID().String()})
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Broadcast(ctx, []*event.Event{e})
	return nil
}
