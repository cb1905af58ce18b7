package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand turns the customer's cart into supplier orders.
//
// The desired delivery date is optional (zero value) but may not lie before today
// (UTC). The idempotency key is optional; a repeated key is refused.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	customerID          kernel.UUID
	deliveryAddress     string
	desiredDeliveryDate time.Time
	idempotencyKey      string

	guard guard.ConstructorGuard
}

func NewCheckoutCommand(
	customerID kernel.UUID,
	deliveryAddress string,
	desiredDeliveryDate time.Time,
	idempotencyKey string,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		idempotencyKey: strings.TrimSpace(idempotencyKey),
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setDesiredDeliveryDate(desiredDeliveryDate, time.Now()),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) CustomerID() kernel.UUID        { return c.customerID }
func (c CheckoutCommand) DeliveryAddress() string        { return c.deliveryAddress }
func (c CheckoutCommand) DesiredDeliveryDate() time.Time { return c.desiredDeliveryDate }
func (c CheckoutCommand) IdempotencyKey() string         { return c.idempotencyKey }

func (c *CheckoutCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	c.customerID = id
	return nil
}

func (c *CheckoutCommand) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	c.deliveryAddress = address
	return nil
}

func (c *CheckoutCommand) setDesiredDeliveryDate(date time.Time, now time.Time) error {
	if date.IsZero() {
		return nil
	}

	date = date.UTC()
	today := now.UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return errs.NewValueIsInvalidErrorWithCause(
			"desired delivery date",
			fmt.Errorf("%s is before today", date.Format(time.DateOnly)),
		)
	}

	c.desiredDeliveryDate = date
	return nil
}
