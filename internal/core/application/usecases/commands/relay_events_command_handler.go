package commands

import (
	"context"
	"time"

	"ordering/internal/core/ports"
)

// RelayEventsCommandHandler picks up events left unpublished by a failed
// broadcast and hands them to the publisher again.
type RelayEventsCommandHandler struct {
	store     ports.EventRepository
	publisher EventPublisher
}

// NewRelayEventsCommandHandler takes an event repository that is not bound to
// a transaction.
func NewRelayEventsCommandHandler(store ports.EventRepository, publisher EventPublisher) RelayEventsCommandHandler {
	return RelayEventsCommandHandler{
		store:     store,
		publisher: publisher,
	}
}

// Handle returns how many events were handed to the publisher.
func (h RelayEventsCommandHandler) Handle(ctx context.Context, cmd RelayEventsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	pending, err := h.store.ListUnpublished(ctx, time.Now().UTC().Add(-cmd.Grace()), cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	if len(pending) == 0 {
		return 0, nil
	}

	h.publisher.Broadcast(ctx, pending)
	return len(pending), nil
}
