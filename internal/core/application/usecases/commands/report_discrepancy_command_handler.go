package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/events"
	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/metrics"
)

// ReportDiscrepancyResult is the outcome of a discrepancy report. StatusChanged
// is false when the order could not move to AWAITING_CORRECTION; the discrepancy
// is recorded either way.
type ReportDiscrepancyResult struct {
	Order         *order.Order
	Discrepancy   *order.Discrepancy
	StatusChanged bool
}

type ReportDiscrepancyCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
	policy     services.AccessPolicy
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewReportDiscrepancyCommandHandler(
	uowFactory OrderUoWFactory,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) ReportDiscrepancyCommandHandler {
	return ReportDiscrepancyCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		policy:     services.NewAccessPolicy(),
		metrics:    m,
		logger:     logger.With("component", "ReportDiscrepancyCommandHandler"),
	}
}

func (h ReportDiscrepancyCommandHandler) Handle(
	ctx context.Context,
	cmd ReportDiscrepancyCommand,
) (ReportDiscrepancyResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReportDiscrepancyResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ReportDiscrepancyResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return ReportDiscrepancyResult{}, err
	}

	if err = h.policy.CanPerform(o, cmd.Actor(), services.ActionReportDiscrepancy); err != nil {
		return ReportDiscrepancyResult{}, err
	}

	discrepancy, statusChanged, err := o.ReportDiscrepancy(cmd.Reports(), cmd.Notes())
	if err != nil {
		return ReportDiscrepancyResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return ReportDiscrepancyResult{}, err
	}

	e, err := h.publisher.Publish(ctx, uow.EventRepository(), event.AggregateOrder, o.ID(), event.DiscrepancyReported,
		events.NewDiscrepancyReportedPayload(o, discrepancy, statusChanged))
	if err != nil {
		return ReportDiscrepancyResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ReportDiscrepancyResult{}, err
	}

	if statusChanged {
		h.metrics.OrderTransitions.WithLabelValues(o.Status().String()).Inc()
	} else {
		h.logger.WarnContext(ctx, "discrepancy recorded without status change",
			"orderId", o.ID().String(),
			"status", o.Status().String(),
			"target", order.AwaitingCorrection.String(),
		)
	}

	h.publisher.Broadcast(ctx, []*event.Event{e})
	return ReportDiscrepancyResult{Order: o, Discrepancy: discrepancy, StatusChanged: statusChanged}, nil
}
