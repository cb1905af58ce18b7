package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ordering/internal/core/application/events"
	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/metrics"
)

// IdempotencyTTL is how long a checkout idempotency key stays reserved.
const IdempotencyTTL = 24 * time.Hour

// CheckoutResult lists the orders created by one checkout.
type CheckoutResult struct {
	Orders []*order.Order
	Count  int
}

// CheckoutCommandHandler converts a cart into one PENDING_CONFIRMATION order per
// supplier.
//
// Checkout is all-or-nothing: the orders, their OrderCreated events, the cart
// clear and the CartCheckedOut event commit in one transaction. Any failure
// leaves the cart untouched and no order behind.
//
// Example:
//
//	handler := NewCheckoutCommandHandler(uowFactory, publisher, idempotency, m, logger)
//	cmd, _ := NewCheckoutCommand(customerID, "1 Main St", date, "key-1")
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d orders created", result.Count)
type CheckoutCommandHandler struct {
	uowFactory  UoWFactory
	publisher   EventPublisher
	idempotency ports.IdempotencyStore
	planner     services.CheckoutPlanner
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewCheckoutCommandHandler creates the handler. idempotency may be nil, which
// disables idempotency keys.
func NewCheckoutCommandHandler(
	uowFactory UoWFactory,
	publisher EventPublisher,
	idempotency ports.IdempotencyStore,
	m *metrics.Metrics,
	logger *slog.Logger,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory:  uowFactory,
		publisher:   publisher,
		idempotency: idempotency,
		planner:     services.NewCheckoutPlanner(),
		metrics:     m,
		logger:      logger.With("component", "CheckoutCommandHandler"),
	}
}

func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (CheckoutResult, error) {
	if err := cmd.Validate(); err != nil {
		return CheckoutResult{}, err
	}

	start := time.Now()
	defer func() {
		h.metrics.CheckoutDuration.Observe(time.Since(start).Seconds())
	}()

	key, err := h.reserve(ctx, cmd)
	if err != nil {
		return CheckoutResult{}, err
	}

	result, committed, err := h.checkout(ctx, cmd)
	if err != nil {
		h.release(ctx, key)
		return CheckoutResult{}, err
	}

	h.metrics.OrdersCreated.Add(float64(result.Count))
	h.logger.InfoContext(ctx, "checkout completed",
		"customerId", cmd.CustomerID().String(),
		"orders", result.Count,
	)

	h.publisher.Broadcast(ctx, committed)
	return result, nil
}

func (h CheckoutCommandHandler) checkout(ctx context.Context, cmd CheckoutCommand) (CheckoutResult, []*event.Event, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CheckoutResult{}, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	orderRepo := uow.OrderRepository()
	eventRepo := uow.EventRepository()

	c, err := cartRepo.GetForUpdate(ctx, cmd.CustomerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return CheckoutResult{}, nil, errs.NewInvalidOperationError("cart is empty")
	}
	if err != nil {
		return CheckoutResult{}, nil, err
	}

	orders, err := h.planner.Plan(c, cmd.DeliveryAddress(), cmd.DesiredDeliveryDate())
	if err != nil {
		return CheckoutResult{}, nil, err
	}

	committed := make([]*event.Event, 0, len(orders)+1)
	for _, o := range orders {
		if err = orderRepo.Add(ctx, o); err != nil {
			return CheckoutResult{}, nil, fmt.Errorf("store order for supplier %s: %w", o.SupplierID(), err)
		}

		e, err := h.publisher.Publish(ctx, eventRepo, event.AggregateOrder, o.ID(), event.OrderCreated,
			events.NewOrderCreatedPayload(o))
		if err != nil {
			return CheckoutResult{}, nil, err
		}
		committed = append(committed, e)
	}

	c.Clear()
	if err = cartRepo.Update(ctx, c); err != nil {
		return CheckoutResult{}, nil, err
	}

	e, err := h.publisher.Publish(ctx, eventRepo, event.AggregateCart, c.ID(), event.CartCheckedOut,
		events.NewCartCheckedOutPayload(c, orders))
	if err != nil {
		return CheckoutResult{}, nil, err
	}
	committed = append(committed, e)

	if err = uow.Commit(ctx); err != nil {
		return CheckoutResult{}, nil, err
	}

	return CheckoutResult{Orders: orders, Count: len(orders)}, committed, nil
}

func (h CheckoutCommandHandler) reserve(ctx context.Context, cmd CheckoutCommand) (string, error) {
	if h.idempotency == nil || cmd.IdempotencyKey() == "" {
		return "", nil
	}

	key := fmt.Sprintf("checkout:%s:%s", cmd.CustomerID(), cmd.IdempotencyKey())
	reserved, err := h.idempotency.Reserve(ctx, key, IdempotencyTTL)
	if err != nil {
		return "", fmt.Errorf("reserve idempotency key: %w", err)
	}
	if !reserved {
		return "", errs.NewInvalidOperationError("checkout already processed")
	}

	return key, nil
}

func (h CheckoutCommandHandler) release(ctx context.Context, key string) {
	if key == "" {
		return
	}

	if err := h.idempotency.Release(ctx, key); err != nil {
		h.logger.WarnContext(ctx, "failed to release idempotency key", "key", key, "error", err)
	}
}
