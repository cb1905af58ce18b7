package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrUpdateCartItemQuantityCommandIsNotConstructed = errors.New(
	"UpdateCartItemQuantityCommand must be created via NewUpdateCartItemQuantityCommand constructor",
)

// UpdateCartItemQuantityCommand sets the quantity of a cart line. Zero or less
// removes the line.
type UpdateCartItemQuantityCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	productID  kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

func NewUpdateCartItemQuantityCommand(
	customerID kernel.UUID,
	productID kernel.UUID,
	quantity int,
) (UpdateCartItemQuantityCommand, error) {
	var customerErr, productErr error
	if err := customerID.Validate(); err != nil {
		customerErr = errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	if err := productID.Validate(); err != nil {
		productErr = errs.NewValueIsRequiredErrorWithCause("product id", err)
	}
	if err := errors.Join(customerErr, productErr); err != nil {
		return UpdateCartItemQuantityCommand{}, err
	}

	return UpdateCartItemQuantityCommand{
		customerID: customerID,
		productID:  productID,
		quantity:   quantity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCartItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartItemQuantityCommandIsNotConstructed)
}

func (c UpdateCartItemQuantityCommand) CustomerID() kernel.UUID { return c.customerID }
func (c UpdateCartItemQuantityCommand) ProductID() kernel.UUID  { return c.productID }
func (c UpdateCartItemQuantityCommand) Quantity() int           { return c.quantity }
