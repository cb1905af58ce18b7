// Package eventrepo stores the append-only event log in PostgreSQL.
package eventrepo

import (
	"encoding/json"
	"time"

	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EventDTO is one events row. (aggregate_type, aggregate_id, version) is unique,
// which is what finally rejects a duplicated version.
type EventDTO struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	AggregateType   string         `gorm:"type:varchar(64);not null;uniqueIndex:ux_events_aggregate_version,priority:1"`
	AggregateID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:ux_events_aggregate_version,priority:2"`
	Version         int64          `gorm:"not null;uniqueIndex:ux_events_aggregate_version,priority:3"`
	EventType       string         `gorm:"type:varchar(64);not null"`
	Payload         datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt       time.Time      `gorm:"not null;index;autoCreateTime:false"`
	PublishedAt     *time.Time     `gorm:"index"`
	// Failed broadcasts so far. The relay serves low counts first.
	PublishAttempts int            `gorm:"not null;default:0"`
	LastAttemptAt   *time.Time
}

func (EventDTO) TableName() string {
	return "events"
}

// Models lists every table owned by this package, for migrations.
func Models() []any {
	return []any{&EventDTO{}}
}

func fromDomain(e *event.Event) EventDTO {
	return EventDTO{
		ID:            e.ID().Bytes(),
		AggregateType: e.AggregateType(),
		AggregateID:   e.AggregateID().Bytes(),
		Version:       e.Version(),
		EventType:     e.EventType(),
		Payload:       datatypes.JSON(e.Payload()),
		CreatedAt:     e.CreatedAt(),
		PublishedAt:   e.PublishedAt(),
	}
}

func toDomain(dto EventDTO) (*event.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return nil, err
	}

	var publishedAt *time.Time
	if dto.PublishedAt != nil {
		at := dto.PublishedAt.UTC()
		publishedAt = &at
	}

	return event.RestoreEvent(
		id,
		dto.AggregateType,
		aggregateID,
		dto.Version,
		dto.EventType,
		json.RawMessage(dto.Payload),
		dto.CreatedAt.UTC(),
		publishedAt,
	)
}
