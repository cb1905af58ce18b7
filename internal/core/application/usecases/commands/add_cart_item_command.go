package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrAddCartItemCommandIsNotConstructed = errors.New(
	"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
)

// AddCartItemCommand puts quantity units of a product into the customer's cart.
//
// Example:
//
//	cmd, err := NewAddCartItemCommand(customerID, product, 3)
//	if err != nil {
//	    return err
//	}
//	c, err := handler.Handle(ctx, cmd)
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	product    cart.Product
	quantity   int

	guard guard.ConstructorGuard
}

func NewAddCartItemCommand(customerID kernel.UUID, product cart.Product, quantity int) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{guard: guard.NewConstructorGuard()}

	var quantityErr error
	if quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		product.Validate(),
		quantityErr,
	); err != nil {
		return AddCartItemCommand{}, err
	}

	cmd.product = product
	cmd.quantity = quantity
	return cmd, nil
}

func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

func (c AddCartItemCommand) CustomerID() kernel.UUID { return c.customerID }
func (c AddCartItemCommand) Product() cart.Product   { return c.product }
func (c AddCartItemCommand) Quantity() int           { return c.quantity }

func (c *AddCartItemCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	c.customerID = id
	return nil
}
