package commands

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand asks for one lifecycle action on an order.
//
// Action specific data travels in TransitionDetails:
//   - Reason: reject, reject-payment-proof and cancel
//   - Reference: upload-payment-proof
//   - TrackingNumber: ship (optional)
//   - Received: deliver (optional, order item id to received quantity)
//
// Discrepancies have their own command, ReportDiscrepancyCommand.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   services.Actor
	action  services.Action
	details TransitionDetails

	guard guard.ConstructorGuard
}

// TransitionDetails carries the optional data of a transition.
type TransitionDetails struct {
	Reason         string
	Reference      string
	TrackingNumber string
	Received       map[kernel.UUID]int
}

func NewTransitionOrderCommand(
	orderID kernel.UUID,
	actor services.Actor,
	action services.Action,
	details TransitionDetails,
) (TransitionOrderCommand, error) {
	var orderErr, actionErr error
	if err := orderID.Validate(); err != nil {
		orderErr = errs.NewValueIsRequiredErrorWithCause("order id", err)
	}

	parsed, err := services.ParseAction(string(action))
	switch {
	case err != nil:
		actionErr = err
	case parsed == services.ActionReportDiscrepancy:
		actionErr = errs.NewValueIsInvalidErrorWithCause(
			"action",
			fmt.Errorf("%s has its own command", parsed),
		)
	}

	if err = errors.Join(orderErr, actor.Validate(), actionErr); err != nil {
		return TransitionOrderCommand{}, err
	}

	details.Reason = strings.TrimSpace(details.Reason)
	details.Reference = strings.TrimSpace(details.Reference)
	details.TrackingNumber = strings.TrimSpace(details.TrackingNumber)

	return TransitionOrderCommand{
		orderID: orderID,
		actor:   actor,
		action:  parsed,
		details: details,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.UUID       { return c.orderID }
func (c TransitionOrderCommand) Actor() services.Actor      { return c.actor }
func (c TransitionOrderCommand) Action() services.Action    { return c.action }
func (c TransitionOrderCommand) Details() TransitionDetails { return c.details }
