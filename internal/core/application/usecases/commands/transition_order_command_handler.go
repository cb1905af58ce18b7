package commands

import (
	"context"
	"fmt"
	"log/slog"

	"ordering/internal/core/application/events"
	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/metrics"
)

// actionEvents maps each action to the event it emits.
var actionEvents = map[services.Action]string{
	services.ActionConfirm:            event.OrderConfirmed,
	services.ActionReject:             event.OrderRejected,
	services.ActionAwaitPayment:       event.OrderAwaitingPayment,
	services.ActionUploadPaymentProof: event.PaymentProofUploaded,
	services.ActionConfirmPayment:     event.PaymentConfirmed,
	services.ActionRejectPaymentProof: event.PaymentProofRejected,
	services.ActionAwaitShipment:      event.OrderAwaitingShipment,
	services.ActionShip:               event.OrderShipped,
	services.ActionDeliver:            event.OrderDelivered,
	services.ActionClose:              event.OrderClosed,
	services.ActionCancel:             event.OrderCancelled,
}

// TransitionOrderCommandHandler runs one lifecycle action.
//
// Order of checks: the order must exist, the actor must own it and have the
// right role, and only then does the state machine decide. The order row stays
// locked from load to commit.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
	policy     services.AccessPolicy
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		policy:     services.NewAccessPolicy(),
		metrics:    m,
		logger:     logger.With("component", "TransitionOrderCommandHandler"),
	}
}

// Handle returns the order after the committed transition.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.CanPerform(o, cmd.Actor(), cmd.Action()); err != nil {
		return nil, err
	}

	eventType, ok := actionEvents[cmd.Action()]
	if !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q emits no event", cmd.Action()))
	}

	from := o.Status()
	if err = apply(o, cmd.Action(), cmd.Details()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	e, err := h.publisher.Publish(ctx, uow.EventRepository(), event.AggregateOrder, o.ID(), eventType,
		events.NewOrderStatusChangedPayload(o, from, cmd.Actor(), cmd.Details().Reason))
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.OrderTransitions.WithLabelValues(o.Status().String()).Inc()
	h.logger.InfoContext(ctx, "order transitioned",
		"orderId", o.ID().String(),
		"from", from.String(),
		"to", o.Status().String(),
		"actorRole", cmd.Actor().Role.String(),
	)

	h.publisher.Broadcast(ctx, []*event.Event{e})
	return o, nil
}

func apply(o *order.Order, action services.Action, details TransitionDetails) error {
	switch action {
	case services.ActionConfirm:
		return o.Confirm()
	case services.ActionReject:
		return o.Reject(details.Reason)
	case services.ActionAwaitPayment:
		return o.AwaitPayment()
	case services.ActionUploadPaymentProof:
		return o.UploadPaymentProof(details.Reference)
	case services.ActionConfirmPayment:
		return o.ConfirmPayment()
	case services.ActionRejectPaymentProof:
		return o.RejectPaymentProof(details.Reason)
	case services.ActionAwaitShipment:
		return o.AwaitShipment()
	case services.ActionShip:
		return o.Ship(details.TrackingNumber)
	case services.ActionDeliver:
		return o.Deliver(details.Received)
	case services.ActionClose:
		return o.Close()
	case services.ActionCancel:
		return o.Cancel(details.Reason)
	default:
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a transition", action))
	}
}
