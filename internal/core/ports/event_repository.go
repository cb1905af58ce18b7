package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/kernel"
)

// EventRepository is the append-only event log.
type EventRepository interface {
	// Lock serializes event appends for one aggregate until the transaction ends.
	Lock(ctx context.Context, aggregateType string, aggregateID kernel.UUID) error

	// LastVersion returns the highest stored version of the aggregate, 0 if none.
	LastVersion(ctx context.Context, aggregateType string, aggregateID kernel.UUID) (int64, error)

	// Append stores e. A version already taken for the aggregate returns
	// errs.VersionIsInvalidError and leaves the transaction usable.
	Append(ctx context.Context, e *event.Event) error

	// ListByAggregate returns the aggregate's events by ascending version.
	ListByAggregate(ctx context.Context, aggregateType string, aggregateID kernel.UUID) ([]*event.Event, error)

	// ListUnpublished returns up to limit events never broadcast and created
	// before the given time. Events with fewer failed broadcasts come first,
	// then the oldest.
	ListUnpublished(ctx context.Context, createdBefore time.Time, limit int) ([]*event.Event, error)

	// MarkPublished stamps published_at on the given events.
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error

	// RecordPublishFailure counts one more failed broadcast for the given events.
	RecordPublishFailure(ctx context.Context, ids []kernel.UUID, at time.Time) error
}
