package ports

import (
	"context"

	"ordering/internal/core/domain/model/event"
)

// MessageBus delivers committed events to other services.
type MessageBus interface {
	Publish(ctx context.Context, e *event.Event) error
	Close() error
}
