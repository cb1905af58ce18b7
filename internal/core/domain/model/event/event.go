// Package event models the append-only domain event records kept for every
// aggregate change.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Aggregate types that emit events.
const (
	AggregateOrder = "Order"
	AggregateCart  = "Cart"
)

var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")

// Event is one persisted domain event. Within an aggregate (type plus id) versions
// start at 1 and increase by one with every event.
type Event struct {
	id            kernel.UUID
	aggregateType string
	aggregateID   kernel.UUID
	version       int64
	eventType     string
	payload       json.RawMessage
	createdAt     time.Time
	publishedAt   *time.Time

	isConstructed bool
}

// NewEvent builds an unpublished event. payload is marshaled to JSON.
func NewEvent(
	aggregateType string,
	aggregateID kernel.UUID,
	version int64,
	eventType string,
	payload any,
) (*Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("event payload", err)
	}

	return RestoreEvent(kernel.NewUUID(), aggregateType, aggregateID, version, eventType, raw, time.Now().UTC(), nil)
}

// RestoreEvent rebuilds a persisted event.
func RestoreEvent(
	id kernel.UUID,
	aggregateType string,
	aggregateID kernel.UUID,
	version int64,
	eventType string,
	payload json.RawMessage,
	createdAt time.Time,
	publishedAt *time.Time,
) (*Event, error) {
	var typeErr, eventTypeErr, versionErr error
	if strings.TrimSpace(aggregateType) == "" {
		typeErr = errs.NewValueIsRequiredError("aggregate type")
	}
	if strings.TrimSpace(eventType) == "" {
		eventTypeErr = errs.NewValueIsRequiredError("event type")
	}
	if version < 1 {
		versionErr = errs.NewVersionIsInvalidErrorWithCause(
			"event version",
			fmt.Errorf("%d is less than 1", version),
		)
	}

	if err := errors.Join(id.Validate(), aggregateID.Validate(), typeErr, eventTypeErr, versionErr); err != nil {
		return nil, err
	}

	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}

	return &Event{
		id:            id,
		aggregateType: aggregateType,
		aggregateID:   aggregateID,
		version:       version,
		eventType:     eventType,
		payload:       payload,
		createdAt:     createdAt,
		publishedAt:   publishedAt,
		isConstructed: true,
	}, nil
}

func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

func (e *Event) ID() kernel.UUID          { return e.id }
func (e *Event) AggregateType() string    { return e.aggregateType }
func (e *Event) AggregateID() kernel.UUID { return e.aggregateID }
func (e *Event) Version() int64           { return e.version }
func (e *Event) EventType() string        { return e.eventType }
func (e *Event) CreatedAt() time.Time     { return e.createdAt }
func (e *Event) PublishedAt() *time.Time  { return e.publishedAt }
func (e *Event) IsPublished() bool        { return e.publishedAt != nil }

// Payload returns a copy of the JSON payload.
func (e *Event) Payload() json.RawMessage {
	payload := make(json.RawMessage, len(e.payload))
	copy(payload, e.payload)
	return payload
}

// RoutingKey is the lowercase event type, used as the broker routing key.
func (e *Event) RoutingKey() string {
	return strings.ToLower(e.eventType)
}

// MarkPublished records the broadcast time. Later calls keep the first time.
func (e *Event) MarkPublished(at time.Time) {
	if e.publishedAt != nil {
		return
	}
	at = at.UTC()
	e.publishedAt = &at
}
