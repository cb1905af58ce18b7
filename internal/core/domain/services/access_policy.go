package services

import (
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// Role tells which side of an order an actor is on.
type Role int

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleSupplier
	// RoleSystem is used by scheduled jobs. It owns no order.
	RoleSystem
)

// SystemActorID identifies scheduled jobs in event payloads.
var SystemActorID = kernel.MustUUIDFromString("00000000-0000-4000-8000-000000000001")

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleSupplier:
		return "supplier"
	case RoleSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Actor is the authenticated caller of an order operation.
type Actor struct {
	Role Role
	ID   kernel.UUID
}

func NewCustomerActor(id kernel.UUID) Actor {
	return Actor{Role: RoleCustomer, ID: id}
}

func NewSupplierActor(id kernel.UUID) Actor {
	return Actor{Role: RoleSupplier, ID: id}
}

func NewSystemActor() Actor {
	return Actor{Role: RoleSystem, ID: SystemActorID}
}

// Validate accepts customers and suppliers only.
func (a Actor) Validate() error {
	if a.Role != RoleCustomer && a.Role != RoleSupplier {
		return errs.NewValueIsRequiredError("actor role")
	}
	if err := a.ID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor id", err)
	}
	return nil
}

// Action is an order operation exposed to actors.
type Action string

const (
	ActionConfirm            Action = "confirm"
	ActionReject             Action = "reject"
	ActionAwaitPayment       Action = "await-payment"
	ActionUploadPaymentProof Action = "upload-payment-proof"
	ActionConfirmPayment     Action = "confirm-payment"
	ActionRejectPaymentProof Action = "reject-payment-proof"
	ActionAwaitShipment      Action = "await-shipment"
	ActionShip               Action = "ship"
	ActionDeliver            Action = "deliver"
	ActionReportDiscrepancy  Action = "report-discrepancy"
	ActionClose              Action = "close"
	ActionCancel             Action = "cancel"
)

var actionRoles = map[Action][]Role{
	ActionConfirm:            {RoleSupplier},
	ActionReject:             {RoleSupplier},
	ActionAwaitPayment:       {RoleSupplier},
	ActionConfirmPayment:     {RoleSupplier},
	ActionRejectPaymentProof: {RoleSupplier},
	ActionAwaitShipment:      {RoleSupplier},
	ActionShip:               {RoleSupplier},
	ActionUploadPaymentProof: {RoleCustomer},
	ActionDeliver:            {RoleCustomer},
	ActionReportDiscrepancy:  {RoleCustomer},
	ActionClose:              {RoleCustomer},
	ActionCancel:             {RoleCustomer, RoleSupplier},
}

// ParseAction accepts the kebab-case action names, case-insensitively.
func ParseAction(s string) (Action, error) {
	action := Action(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := actionRoles[action]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a known action", s))
	}
	return action, nil
}

// AccessPolicy checks order ownership and actor roles. It never looks at the
// order status, so access is decided before any state rule.
type AccessPolicy struct{}

func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// CanView reports whether actor owns o on its side.
func (p AccessPolicy) CanView(o *order.Order, actor Actor) error {
	switch {
	case actor.Role == RoleCustomer && order.BelongsToCustomer(o, actor.ID):
		return nil
	case actor.Role == RoleSupplier && order.BelongsToSupplier(o, actor.ID):
		return nil
	}
	return errs.NewAccessDeniedError("order", o.ID().String())
}

// CanPerform reports whether actor owns o and its role may run action.
func (p AccessPolicy) CanPerform(o *order.Order, actor Actor, action Action) error {
	if err := p.CanView(o, actor); err != nil {
		return err
	}

	roles, ok := actionRoles[action]
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a known action", action))
	}

	for _, role := range roles {
		if role == actor.Role {
			return nil
		}
	}

	return errs.NewAccessDeniedErrorWithCause(
		"order",
		o.ID().String(),
		fmt.Errorf("%s cannot %s", actor.Role, action),
	)
}
