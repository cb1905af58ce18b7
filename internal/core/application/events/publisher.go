// Package events appends domain events to the event log inside the caller's
// transaction and broadcasts them to the message bus after commit.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/metrics"
)

// DefaultMaxAttempts bounds version conflict retries of one Publish call.
const DefaultMaxAttempts = 3

// Publisher owns event versioning and delivery.
//
// Publish must run inside the transaction that changes the aggregate: the event is
// stored with it or not at all. Broadcast runs after commit and never fails the
// caller; events it could not deliver stay unpublished for the relay job.
type Publisher struct {
	bus         ports.MessageBus
	store       ports.EventRepository
	logger      *slog.Logger
	metrics     *metrics.Metrics
	maxAttempts int
}

// NewPublisher creates a publisher. bus may be nil, in which case nothing is
// broadcast. store must not be bound to a transaction; it is used after commit.
func NewPublisher(
	bus ports.MessageBus,
	store ports.EventRepository,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Publisher {
	return &Publisher{
		bus:         bus,
		store:       store,
		logger:      logger.With("component", "EventPublisher"),
		metrics:     m,
		maxAttempts: DefaultMaxAttempts,
	}
}

// Publish appends one event for the aggregate using repo, which must belong to the
// caller's transaction. The version is one above the aggregate's last version.
func (p *Publisher) Publish(
	ctx context.Context,
	repo ports.EventRepository,
	aggregateType string,
	aggregateID kernel.UUID,
	eventType string,
	payload any,
) (*event.Event, error) {
	if err := repo.Lock(ctx, aggregateType, aggregateID); err != nil {
		return nil, fmt.Errorf("lock %s %s: %w", aggregateType, aggregateID, err)
	}

	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		last, err := repo.LastVersion(ctx, aggregateType, aggregateID)
		if err != nil {
			return nil, fmt.Errorf("read last version of %s %s: %w", aggregateType, aggregateID, err)
		}

		e, err := event.NewEvent(aggregateType, aggregateID, last+1, eventType, payload)
		if err != nil {
			return nil, err
		}

		err = repo.Append(ctx, e)
		if err == nil {
			return e, nil
		}
		if !errors.Is(err, errs.ErrVersionIsInvalid) {
			return nil, fmt.Errorf("append %s: %w", eventType, err)
		}

		lastErr = err
		p.logger.WarnContext(ctx, "event version conflict, retrying",
			"aggregateType", aggregateType,
			"aggregateId", aggregateID.String(),
			"version", e.Version(),
			"attempt", attempt,
		)
	}

	return nil, errs.NewVersionIsInvalidErrorWithCause(
		"event version",
		fmt.Errorf("gave up after %d attempts: %w", p.maxAttempts, lastErr),
	)
}

// Broadcast sends committed events to the bus and marks the delivered ones as
// published. Failed sends are counted against the event so the relay job does
// not keep retrying the same batch ahead of newer events. Errors are logged and
// counted only.
func (p *Publisher) Broadcast(ctx context.Context, events []*event.Event) {
	if p.bus == nil || len(events) == 0 {
		return
	}

	sent := make([]kernel.UUID, 0, len(events))
	var failed []kernel.UUID
	for _, e := range events {
		if err := p.bus.Publish(ctx, e); err != nil {
			p.metrics.EventsBroadcast.WithLabelValues(metrics.ResultFailed).Inc()
			p.logger.ErrorContext(ctx, "failed to broadcast event",
				"eventId", e.ID().String(),
				"eventType", e.EventType(),
				"aggregateId", e.AggregateID().String(),
				"error", err,
			)
			failed = append(failed, e.ID())
			continue
		}

		p.metrics.EventsBroadcast.WithLabelValues(metrics.ResultSent).Inc()
		sent = append(sent, e.ID())
	}

	now := time.Now().UTC()
	if len(failed) > 0 {
		if err := p.store.RecordPublishFailure(ctx, failed, now); err != nil {
			p.logger.ErrorContext(ctx, "failed to record broadcast failures",
				"count", len(failed),
				"error", err,
			)
		}
	}

	if len(sent) == 0 {
		return
	}

	if err := p.store.MarkPublished(ctx, sent, now); err != nil {
		p.logger.ErrorContext(ctx, "failed to mark events as published",
			"count", len(sent),
			"error", err,
		)
		return
	}

	delivered := make(map[kernel.UUID]struct{}, len(sent))
	for _, id := range sent {
		delivered[id] = struct{}{}
	}
	for _, e := range events {
		if _, ok := delivered[e.ID()]; ok {
			e.MarkPublished(now)
		}
	}
}
