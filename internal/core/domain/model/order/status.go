package order

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// Allowed transitions:
//
//	CREATED                      -> PENDING_CONFIRMATION
//	PENDING_CONFIRMATION         -> CONFIRMED | REJECTED
//	CONFIRMED                    -> AWAITING_PAYMENT | CANCELLED
//	AWAITING_PAYMENT             -> PENDING_PAYMENT_VERIFICATION | CANCELLED
//	PENDING_PAYMENT_VERIFICATION -> PAID | AWAITING_PAYMENT
//	PAID                         -> AWAITING_SHIPMENT | SHIPPED
//	AWAITING_SHIPMENT            -> SHIPPED
//	SHIPPED                      -> DELIVERED | AWAITING_CORRECTION
//	AWAITING_CORRECTION          -> DELIVERED
//	DELIVERED                    -> CLOSED
//
// REJECTED, CANCELLED and CLOSED are terminal.
type Status int

const (
	// Unknown catches uninitialized values. It has no transitions.
	Unknown Status = iota
	Created
	PendingConfirmation
	Confirmed
	Rejected
	AwaitingPayment
	PendingPaymentVerification
	Paid
	AwaitingShipment
	Shipped
	Delivered
	AwaitingCorrection
	Closed
	Cancelled
)

var statusCodes = map[Status]string{
	Unknown:                    "UNKNOWN",
	Created:                    "CREATED",
	PendingConfirmation:        "PENDING_CONFIRMATION",
	Confirmed:                  "CONFIRMED",
	Rejected:                   "REJECTED",
	AwaitingPayment:            "AWAITING_PAYMENT",
	PendingPaymentVerification: "PENDING_PAYMENT_VERIFICATION",
	Paid:                       "PAID",
	AwaitingShipment:           "AWAITING_SHIPMENT",
	Shipped:                    "SHIPPED",
	Delivered:                  "DELIVERED",
	AwaitingCorrection:         "AWAITING_CORRECTION",
	Closed:                     "CLOSED",
	Cancelled:                  "CANCELLED",
}

// transitions is the single source of truth for the lifecycle. It is never written
// after package initialization. Terminal statuses map to an empty set.
var transitions = map[Status]map[Status]struct{}{
	Created:                    {PendingConfirmation: {}},
	PendingConfirmation:        {Confirmed: {}, Rejected: {}},
	Confirmed:                  {AwaitingPayment: {}, Cancelled: {}},
	AwaitingPayment:            {PendingPaymentVerification: {}, Cancelled: {}},
	PendingPaymentVerification: {Paid: {}, AwaitingPayment: {}},
	Paid:                       {AwaitingShipment: {}, Shipped: {}},
	AwaitingShipment:           {Shipped: {}},
	Shipped:                    {Delivered: {}, AwaitingCorrection: {}},
	AwaitingCorrection:         {Delivered: {}},
	Delivered:                  {Closed: {}},
	Rejected:                   {},
	Cancelled:                  {},
	Closed:                     {},
}

// CanTransition reports whether the table allows moving from one status to another.
// Unknown source or target codes always return false.
func CanTransition(from, to Status) bool {
	targets, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// AllowedTransitions lists the targets reachable from s in declaration order.
func (s Status) AllowedTransitions() []Status {
	result := make([]Status, 0, 2)
	for candidate := Created; candidate <= Cancelled; candidate++ {
		if CanTransition(s, candidate) {
			result = append(result, candidate)
		}
	}
	return result
}

// IsTerminal reports whether s is a known status without outgoing transitions.
func (s Status) IsTerminal() bool {
	targets, ok := transitions[s]
	return ok && len(targets) == 0
}

// Validate rejects Unknown and any value outside the declared set.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the upper-snake code, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := statusCodes[s]; ok {
		return str
	}
	return statusCodes[Unknown]
}

// ParseStatus converts a code such as "SHIPPED" (case-insensitive) to a Status.
func ParseStatus(code string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for s, str := range statusCodes {
		if s != Unknown && str == normalized {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", code))
}
