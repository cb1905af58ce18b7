// Package commands contains business operations that modify system state.
// Every handler follows the same steps: validate the command, begin a unit of
// work, load and lock, apply domain rules, persist, append events, commit and
// finally broadcast the committed events.
package commands

import (
	"context"

	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	EventRepoFactory interface {
		EventRepository() ports.EventRepository
	}

	// OrderUoW manages transactions for operations on a single order.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		EventRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CartUoW manages transactions for cart edits.
	CartUoW interface {
		TxManager
		CartRepoFactory
		EventRepoFactory
	}

	CartUoWFactory interface {
		Create() CartUoW
	}

	// UoW spans carts and orders. Used by checkout.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   c, err := uow.CartRepository().GetForUpdate(ctx, customerID)
	//   err = uow.OrderRepository().Add(ctx, o)
	//   // ... publish events with uow.EventRepository()
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		CartRepoFactory
		OrderRepoFactory
		EventRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	// EventPublisher appends events inside a transaction and broadcasts them
	// after commit.
	EventPublisher interface {
		Publish(
			ctx context.Context,
			repo ports.EventRepository,
			aggregateType string,
			aggregateID kernel.UUID,
			eventType string,
			payload any,
		) (*event.Event, error)
		Broadcast(ctx context.Context, events []*event.Event)
	}
)
