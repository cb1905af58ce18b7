package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrGetOrderEventsQueryIsNotConstructed = errors.New(
	"GetOrderEventsQuery must be created via NewGetOrderEventsQuery constructor",
)

// GetOrderEventsQuery returns the audit trail of one order.
type GetOrderEventsQuery struct {
	orderID kernel.UUID
	actor   services.Actor

	guard guard.ConstructorGuard
}

func NewGetOrderEventsQuery(orderID kernel.UUID, actor services.Actor) (GetOrderEventsQuery, error) {
	var orderErr error
	if err := orderID.Validate(); err != nil {
		orderErr = errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	if err := errors.Join(orderErr, actor.Validate()); err != nil {
		return GetOrderEventsQuery{}, err
	}

	return GetOrderEventsQuery{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderEventsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderEventsQueryIsNotConstructed)
}

func (q GetOrderEventsQuery) OrderID() kernel.UUID  { return q.orderID }
func (q GetOrderEventsQuery) Actor() services.Actor { return q.actor }
