package services

import (
	"time"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// CheckoutPlanner turns a cart into supplier orders.
//
// Business rules:
//   - an empty cart cannot be checked out
//   - one order per supplier, in the order suppliers first appear in the cart
//   - every order line copies product data, price and VAT rate from the cart line
//   - every order is submitted for confirmation before it is returned
//
// The planner neither persists the orders nor clears the cart.
//
// Example usage:
//
//	planner := services.NewCheckoutPlanner()
//	orders, err := planner.Plan(c, "1 Main St", date)
//	if err != nil {
//	    return err
//	}
type CheckoutPlanner struct{}

func NewCheckoutPlanner() CheckoutPlanner {
	return CheckoutPlanner{}
}

// Plan builds the orders for c. The returned orders are in PENDING_CONFIRMATION.
func (p CheckoutPlanner) Plan(c *cart.Cart, deliveryAddress string, desiredDeliveryDate time.Time) ([]*order.Order, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.IsEmpty() {
		return nil, errs.NewInvalidOperationError("cart is empty")
	}

	supplierIDs := c.SupplierIDs()
	orders := make([]*order.Order, 0, len(supplierIDs))
	for _, supplierID := range supplierIDs {
		o, err := p.planSupplierOrder(c, supplierID, deliveryAddress, desiredDeliveryDate)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (p CheckoutPlanner) planSupplierOrder(
	c *cart.Cart,
	supplierID kernel.UUID,
	deliveryAddress string,
	desiredDeliveryDate time.Time,
) (*order.Order, error) {
	o, err := order.NewOrder(kernel.NewUUID(), supplierID, c.CustomerID(), deliveryAddress, desiredDeliveryDate)
	if err != nil {
		return nil, err
	}

	for _, line := range c.ItemsBySupplierID(supplierID) {
		item, err := order.NewItem(
			kernel.NewUUID(),
			line.ProductID(),
			line.ProductName(),
			line.ProductSku(),
			line.UnitPrice(),
			line.VatRate(),
			line.Quantity(),
		)
		if err != nil {
			return nil, err
		}

		if err = o.AddItem(item); err != nil {
			return nil, err
		}
	}

	if err = o.SubmitForConfirmation(); err != nil {
		return nil, err
	}

	return o, nil
}
