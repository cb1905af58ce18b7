package commands_test

import (
	"errors"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewTransitionOrderCommand(t *testing.T) {
	actor := services.NewSupplierActor(kernel.NewUUID())

	t.Run("valid input", func(t *testing.T) {
		cmd, err := commands.NewTransitionOrderCommand(kernel.NewUUID(), actor, "Reject",
			commands.TransitionDetails{Reason: " late "})

		require.NoError(t, err)
		assert.Equal(t, services.ActionReject, cmd.Action())
		assert.Equal(t, "late", cmd.Details().Reason)
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(kernel.NewUUID(), actor, "teleport", commands.TransitionDetails{})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("discrepancy is its own command", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(kernel.NewUUID(), actor, services.ActionReportDiscrepancy,
			commands.TransitionDetails{})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("actor is required", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(kernel.NewUUID(), services.Actor{}, services.ActionShip,
			commands.TransitionDetails{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func newOrderUoW(ctx any, orderRepo *MockOrderRepository, eventRepo *MockEventRepository) (*MockUoW, *MockOrderUoWFactory) {
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Maybe()
	uow.On("EventRepository").Return(eventRepo).Maybe()
	uow.On("Rollback", ctx).Return(nil).Maybe()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return uow, factory
}

func TestTransitionOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, order.PendingConfirmation)
	actor := services.NewSupplierActor(o.SupplierID())
	cmd, _ := commands.NewTransitionOrderCommand(o.ID(), actor, services.ActionConfirm, commands.TransitionDetails{})

	orderRepo := new(MockOrderRepository)
	eventRepo := new(MockEventRepository)
	publisher := new(MockEventPublisher)
	uow, factory := newOrderUoW(ctx, orderRepo, eventRepo)

	mock.InOrder(
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		publisher.On("Publish", ctx, eventRepo, event.AggregateOrder, o.ID(), event.OrderConfirmed, mock.Anything).
			Return(publishedEvent(event.AggregateOrder, o.ID(), event.OrderConfirmed), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Broadcast", ctx, mock.Anything).Return().Once(),
	)

	h := commands.NewTransitionOrderCommandHandler(factory, publisher, metrics.NewNop(), discardLogger())
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, result.Status())
	orderRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_Actions(t *testing.T) {
	testCases := []struct {
		action    services.Action
		from      order.Status
		to        order.Status
		supplier  bool
		details   commands.TransitionDetails
		eventType string
	}{
		{services.ActionReject, order.PendingConfirmation, order.Rejected, true,
			commands.TransitionDetails{Reason: "no stock"}, event.OrderRejected},
		{services.ActionAwaitPayment, order.Confirmed, order.AwaitingPayment, true,
			commands.TransitionDetails{}, event.OrderAwaitingPayment},
		{services.ActionUploadPaymentProof, order.AwaitingPayment, order.PendingPaymentVerification, false,
			commands.TransitionDetails{Reference: "doc-1"}, event.PaymentProofUploaded},
		{services.ActionConfirmPayment, order.PendingPaymentVerification, order.Paid, true,
			commands.TransitionDetails{}, event.PaymentConfirmed},
		{services.ActionRejectPaymentProof, order.PendingPaymentVerification, order.AwaitingPayment, true,
			commands.TransitionDetails{Reason: "blurred"}, event.PaymentProofRejected},
		{services.ActionAwaitShipment, order.Paid, order.AwaitingShipment, true,
			commands.TransitionDetails{}, event.OrderAwaitingShipment},
		{services.ActionShip, order.AwaitingShipment, order.Shipped, true,
			commands.TransitionDetails{TrackingNumber: "T-1"}, event.OrderShipped},
		{services.ActionDeliver, order.Shipped, order.Delivered, false,
			commands.TransitionDetails{}, event.OrderDelivered},
		{services.ActionClose, order.Delivered, order.Closed, false,
			commands.TransitionDetails{}, event.OrderClosed},
		{services.ActionCancel, order.Confirmed, order.Cancelled, false,
			commands.TransitionDetails{Reason: "changed plans"}, event.OrderCancelled},
	}

	for _, tc := range testCases {
		t.Run(string(tc.action), func(t *testing.T) {
			ctx := t.Context()
			o := testOrder(t, tc.from)
			actor := services.NewCustomerActor(o.CustomerID())
			if tc.supplier {
				actor = services.NewSupplierActor(o.SupplierID())
			}
			cmd, err := commands.NewTransitionOrderCommand(o.ID(), actor, tc.action, tc.details)
			require.NoError(t, err)

			orderRepo := new(MockOrderRepository)
			eventRepo := new(MockEventRepository)
			publisher := new(MockEventPublisher)
			uow, factory := newOrderUoW(ctx, orderRepo, eventRepo)
			orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
			orderRepo.On("Update", ctx, o).Return(nil).Once()
			publisher.On("Publish", ctx, eventRepo, event.AggregateOrder, o.ID(), tc.eventType, mock.Anything).
				Return(publishedEvent(event.AggregateOrder, o.ID(), tc.eventType), nil).Once()
			uow.On("Commit", ctx).Return(nil).Once()
			publisher.On("Broadcast", ctx, mock.Anything).Return().Once()

			h := commands.NewTransitionOrderCommandHandler(factory, publisher, metrics.NewNop(), discardLogger())
			result, err := h.Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Equal(t, tc.to, result.Status())
			publisher.AssertExpectations(t)
		})
	}
}

func TestTransitionOrderCommandHandler_Handle_AccessDeniedBeforeStateCheck(t *testing.T) {
	ctx := t.Context()
	// CLOSED would reject confirm too; access must be decided first
	o := testOrder(t, order.Closed)
	stranger := services.NewSupplierActor(kernel.NewUUID())
	cmd, _ := commands.NewTransitionOrderCommand(o.ID(), stranger, services.ActionConfirm, commands.TransitionDetails{})

	orderRepo := new(MockOrderRepository)
	eventRepo := new(MockEventRepository)
	publisher := new(MockEventPublisher)
	uow, factory := newOrderUoW(ctx, orderRepo, eventRepo)
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, publisher, metrics.NewNop(), discardLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAccessDenied)
	assert.Equal(t, order.Closed, o.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_WrongRole(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, order.PendingConfirmation)
	cmd, _ := commands.NewTransitionOrderCommand(o.ID(), services.NewCustomerActor(o.CustomerID()),
		services.ActionConfirm, commands.TransitionDetails{})

	orderRepo := new(MockOrderRepository)
	uow, factory := newOrderUoW(ctx, orderRepo, new(MockEventRepository))
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, new(MockEventPublisher), metrics.NewNop(), discardLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAccessDenied)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, order.Created)
	cmd, _ := commands.NewTransitionOrderCommand(o.ID(), services.NewSupplierActor(o.SupplierID()),
		services.ActionShip, commands.TransitionDetails{})

	orderRepo := new(MockOrderRepository)
	uow, factory := newOrderUoW(ctx, orderRepo, new(MockEventRepository))
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, new(MockEventPublisher), metrics.NewNop(), discardLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewTransitionOrderCommand(id, services.NewSupplierActor(kernel.NewUUID()),
		services.ActionConfirm, commands.TransitionDetails{})

	orderRepo := new(MockOrderRepository)
	_, factory := newOrderUoW(ctx, orderRepo, new(MockEventRepository))
	orderRepo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, new(MockEventPublisher), metrics.NewNop(), discardLogger())
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestTransitionOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t, order.PendingConfirmation)
	cmd, _ := commands.NewTransitionOrderCommand(o.ID(), services.NewSupplierActor(o.SupplierID()),
		services.ActionConfirm, commands.TransitionDetails{})

	orderRepo := new(MockOrderRepository)
	eventRepo := new(MockEventRepository)
	publisher := new(MockEventPublisher)
	uow, factory := newOrderUoW(ctx, orderRepo, eventRepo)
	orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", ctx, o).Return(nil).Once()
	publisher.On("Publish", ctx, eventRepo, event.AggregateOrder, o.ID(), event.OrderConfirmed, mock.Anything).
		Return(publishedEvent(event.AggregateOrder, o.ID(), event.OrderConfirmed), nil).Once()
	uow.On("Commit", ctx).Return(errors.New("commit error")).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, publisher, metrics.NewNop(), discardLogger())
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
	publisher.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
}

func TestReportDiscrepancyCommandHandler_Handle(t *testing.T) {
	testCases := []struct {
		name          string
		from          order.Status
		statusChanged bool
		want          order.Status
	}{
		{"shipped order awaits correction", order.Shipped, true, order.AwaitingCorrection},
		{"delivered order keeps status", order.Delivered, false, order.Delivered},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			item := testOrderItem(t, 10)
			o := testOrder(t, tc.from, item)
			cmd, err := commands.NewReportDiscrepancyCommand(o.ID(), services.NewCustomerActor(o.CustomerID()),
				[]order.DiscrepancyReport{{OrderItemID: item.ID(), ActualQuantity: 8}}, "short")
			require.NoError(t, err)

			orderRepo := new(MockOrderRepository)
			eventRepo := new(MockEventRepository)
			publisher := new(MockEventPublisher)
			uow, factory := newOrderUoW(ctx, orderRepo, eventRepo)
			orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
			orderRepo.On("Update", ctx, o).Return(nil).Once()
			publisher.On("Publish", ctx, eventRepo, event.AggregateOrder, o.ID(), event.DiscrepancyReported, mock.Anything).
				Return(publishedEvent(event.AggregateOrder, o.ID(), event.DiscrepancyReported), nil).Once()
			uow.On("Commit", ctx).Return(nil).Once()
			publisher.On("Broadcast", ctx, mock.Anything).Return().Once()

			h := commands.NewReportDiscrepancyCommandHandler(factory, publisher, metrics.NewNop(), discardLogger())
			result, err := h.Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Equal(t, tc.statusChanged, result.StatusChanged)
			assert.Equal(t, tc.want, result.Order.Status())
			assert.Equal(t, 2, result.Discrepancy.Items()[0].DiscrepancyQuantity())
			assert.Equal(t, "10.00", result.Discrepancy.TotalAmount().String())
		})
	}

	t.Run("supplier cannot report", func(t *testing.T) {
		ctx := t.Context()
		item := testOrderItem(t, 10)
		o := testOrder(t, order.Shipped, item)
		cmd, _ := commands.NewReportDiscrepancyCommand(o.ID(), services.NewSupplierActor(o.SupplierID()),
			[]order.DiscrepancyReport{{OrderItemID: item.ID(), ActualQuantity: 8}}, "")

		orderRepo := new(MockOrderRepository)
		_, factory := newOrderUoW(ctx, orderRepo, new(MockEventRepository))
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

		h := commands.NewReportDiscrepancyCommandHandler(factory, new(MockEventPublisher), metrics.NewNop(), discardLogger())
		_, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		assert.Equal(t, order.Shipped, o.Status())
	})

	t.Run("unknown item is not found", func(t *testing.T) {
		ctx := t.Context()
		o := testOrder(t, order.Shipped)
		cmd, _ := commands.NewReportDiscrepancyCommand(o.ID(), services.NewCustomerActor(o.CustomerID()),
			[]order.DiscrepancyReport{{OrderItemID: kernel.NewUUID(), ActualQuantity: 1}}, "")

		orderRepo := new(MockOrderRepository)
		_, factory := newOrderUoW(ctx, orderRepo, new(MockEventRepository))
		orderRepo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

		h := commands.NewReportDiscrepancyCommandHandler(factory, new(MockEventPublisher), metrics.NewNop(), discardLogger())
		_, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestRelayEventsCommandHandler_Handle(t *testing.T) {
	t.Run("broadcasts pending events", func(t *testing.T) {
		ctx := t.Context()
		pending := []*event.Event{publishedEvent(event.AggregateOrder, kernel.NewUUID(), event.OrderShipped)}
		cmd, err := commands.NewRelayEventsCommand(50, time.Minute)
		require.NoError(t, err)

		store := new(MockEventRepository)
		store.On("ListUnpublished", ctx, mock.AnythingOfType("time.Time"), 50).Return(pending, nil).Once()
		publisher := new(MockEventPublisher)
		publisher.On("Broadcast", ctx, pending).Return().Once()

		count, err := commands.NewRelayEventsCommandHandler(store, publisher).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 1, count)
		publisher.AssertExpectations(t)
	})

	t.Run("nothing pending", func(t *testing.T) {
		ctx := t.Context()
		cmd, _ := commands.NewRelayEventsCommand(10, 0)

		store := new(MockEventRepository)
		store.On("ListUnpublished", ctx, mock.Anything, 10).Return([]*event.Event{}, nil).Once()
		publisher := new(MockEventPublisher)

		count, err := commands.NewRelayEventsCommandHandler(store, publisher).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Zero(t, count)
		publisher.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
	})

	t.Run("invalid batch size", func(t *testing.T) {
		_, err := commands.NewRelayEventsCommand(0, time.Minute)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCloseDeliveredOrdersCommandHandler_Handle(t *testing.T) {
	t.Run("closes stale orders", func(t *testing.T) {
		ctx := t.Context()
		first, second := testOrder(t, order.Delivered), testOrder(t, order.Delivered)
		cmd, err := commands.NewCloseDeliveredOrdersCommand(72*time.Hour, 100)
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		eventRepo := new(MockEventRepository)
		publisher := new(MockEventPublisher)
		uow, factory := newOrderUoW(ctx, orderRepo, eventRepo)
		orderRepo.On("ListDeliveredBefore", ctx, mock.AnythingOfType("time.Time"), 100).
			Return([]*order.Order{first, second}, nil).Once()
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Twice()
		publisher.On("Publish", ctx, eventRepo, event.AggregateOrder, mock.Anything, event.OrderClosed, mock.Anything).
			Return(publishedEvent(event.AggregateOrder, kernel.NewUUID(), event.OrderClosed), nil).Twice()
		uow.On("Commit", ctx).Return(nil).Once()
		publisher.On("Broadcast", ctx, mock.MatchedBy(func(es []*event.Event) bool { return len(es) == 2 })).Return().Once()

		count, err := commands.NewCloseDeliveredOrdersCommandHandler(factory, publisher, metrics.NewNop(), discardLogger()).
			Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Equal(t, order.Closed, first.Status())
		assert.Equal(t, order.Closed, second.Status())
		publisher.AssertExpectations(t)
	})

	t.Run("nothing to close", func(t *testing.T) {
		ctx := t.Context()
		cmd, _ := commands.NewCloseDeliveredOrdersCommand(time.Hour, 10)

		orderRepo := new(MockOrderRepository)
		uow, factory := newOrderUoW(ctx, orderRepo, new(MockEventRepository))
		orderRepo.On("ListDeliveredBefore", ctx, mock.Anything, 10).Return([]*order.Order{}, nil).Once()

		count, err := commands.NewCloseDeliveredOrdersCommandHandler(factory, new(MockEventPublisher), metrics.NewNop(), discardLogger()).
			Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Zero(t, count)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
