package commands

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/events"
	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/metrics"
)

// CloseDeliveredOrdersCommandHandler closes stale DELIVERED orders in one
// transaction per batch and emits OrderClosed for each.
type CloseDeliveredOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewCloseDeliveredOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) CloseDeliveredOrdersCommandHandler {
	return CloseDeliveredOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		metrics:    m,
		logger:     logger.With("component", "CloseDeliveredOrdersCommandHandler"),
	}
}

// Handle returns the number of closed orders.
func (h CloseDeliveredOrdersCommandHandler) Handle(ctx context.Context, cmd CloseDeliveredOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	eventRepo := uow.EventRepository()

	stale, err := orderRepo.ListDeliveredBefore(ctx, time.Now().UTC().Add(-cmd.OlderThan()), cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	if len(stale) == 0 {
		return 0, nil
	}

	actor := services.NewSystemActor()
	committed := make([]*event.Event, 0, len(stale))
	for _, o := range stale {
		from := o.Status()
		if err = o.Close(); err != nil {
			return 0, err
		}

		if err = orderRepo.Update(ctx, o); err != nil {
			return 0, err
		}

		e, err := h.publisher.Publish(ctx, eventRepo, event.AggregateOrder, o.ID(), event.OrderClosed,
			events.NewOrderStatusChangedPayload(o, from, actor, "closed automatically after delivery"))
		if err != nil {
			return 0, err
		}
		committed = append(committed, e)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.metrics.OrderTransitions.WithLabelValues(order.Closed.String()).Add(float64(len(stale)))
	h.publisher.Broadcast(ctx, committed)
	return len(stale), nil
}
