package eventrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormEventRepository implements ports.EventRepository using GORM.
type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Lock takes a transaction scoped advisory lock keyed by aggregate. Outside a
// transaction the lock is released at the end of the statement.
func (r *GormEventRepository) Lock(ctx context.Context, aggregateType string, aggregateID kernel.UUID) error {
	key := aggregateType + ":" + aggregateID.String()
	return r.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", key).Error
}

func (r *GormEventRepository) LastVersion(
	ctx context.Context,
	aggregateType string,
	aggregateID kernel.UUID,
) (int64, error) {
	var version int64
	err := r.db.WithContext(ctx).
		Raw(
			"SELECT COALESCE(MAX(version), 0) FROM events WHERE aggregate_type = ? AND aggregate_id = ?",
			aggregateType, aggregateID.Bytes(),
		).
		Scan(&version).Error
	return version, err
}

// Append inserts the event inside a savepoint so that a version clash does not
// abort the caller's transaction.
func (r *GormEventRepository) Append(ctx context.Context, e *event.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dto := fromDomain(e)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&dto).Error
	})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errs.NewVersionIsInvalidErrorWithCause("event version", err)
	}

	return err
}

func (r *GormEventRepository) ListByAggregate(
	ctx context.Context,
	aggregateType string,
	aggregateID kernel.UUID,
) ([]*event.Event, error) {
	var dtos []EventDTO
	if err := r.db.WithContext(ctx).
		Where("aggregate_type = ? AND aggregate_id = ?", aggregateType, aggregateID.Bytes()).
		Order("version").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormEventRepository) ListUnpublished(
	ctx context.Context,
	createdBefore time.Time,
	limit int,
) ([]*event.Event, error) {
	var dtos []EventDTO
	if err := r.db.WithContext(ctx).
		Where("published_at IS NULL AND created_at < ?", createdBefore).
		Order("publish_attempts, created_at, version").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// MarkPublished only stamps events that are not published yet.
func (r *GormEventRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&EventDTO{}).
		Where("id IN ? AND published_at IS NULL", toRaw(ids)).
		Update("published_at", at).Error
}

// RecordPublishFailure bumps the attempt counter of events still unpublished.
func (r *GormEventRepository) RecordPublishFailure(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&EventDTO{}).
		Where("id IN ? AND published_at IS NULL", toRaw(ids)).
		Updates(map[string]any{
			"publish_attempts": gorm.Expr("publish_attempts + 1"),
			"last_attempt_at":  at,
		}).Error
}

func toRaw(ids []kernel.UUID) []uuid.UUID {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return raw
}

func toDomainList(dtos []EventDTO) ([]*event.Event, error) {
	events := make([]*event.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
