package cart

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrCartIsNotConstructed is returned when a Cart instance was not created through
	// NewCart or RestoreCart.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")
)

// Cart is the aggregate root of a customer's pending purchase. There is at most one
// cart per customer, and at most one line per product.
type Cart struct {
	id         kernel.UUID
	customerID kernel.UUID
	items      []*Item

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewCart creates an empty cart for the customer.
func NewCart(id kernel.UUID, customerID kernel.UUID) (*Cart, error) {
	now := time.Now().UTC()
	return RestoreCart(id, customerID, nil, now, now)
}

// RestoreCart rebuilds a persisted cart. Duplicate product lines are rejected.
func RestoreCart(
	id kernel.UUID,
	customerID kernel.UUID,
	items []*Item,
	createdAt time.Time,
	updatedAt time.Time,
) (*Cart, error) {
	var customerErr error
	if err := customerID.Validate(); err != nil {
		customerErr = errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	if err := errors.Join(id.Validate(), customerErr); err != nil {
		return nil, err
	}

	c := &Cart{
		id:            id,
		customerID:    customerID,
		items:         make([]*Item, 0, len(items)),
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if _, found := c.Item(item.ProductID()); found {
			return nil, errs.NewInvalidOperationError(
				fmt.Sprintf("product %s appears twice in cart %s", item.ProductID(), id),
			)
		}
		c.items = append(c.items, item)
	}

	return c, nil
}

// Validate ensures the Cart instance was properly constructed.
func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

func (c *Cart) ID() kernel.UUID {
	return c.id
}

func (c *Cart) CustomerID() kernel.UUID {
	return c.customerID
}

func (c *Cart) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Cart) UpdatedAt() time.Time {
	return c.updatedAt
}

// Items returns a copy of the cart lines in the order they were first added.
func (c *Cart) Items() []*Item {
	items := make([]*Item, len(c.items))
	copy(items, c.items)
	return items
}

// Item finds the line for a product.
func (c *Cart) Item(productID kernel.UUID) (*Item, bool) {
	for _, item := range c.items {
		if item.ProductID().IsEqual(productID) {
			return item, true
		}
	}
	return nil, false
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// AddItem adds quantity units of product. When the product is already in the cart
// the quantities are merged and the line keeps its id and position; the price
// snapshot is refreshed from product.
//
// A product cannot change supplier between two additions.
func (c *Cart) AddItem(product Product, quantity int) (*Item, error) {
	if existing, found := c.Item(product.ID); found {
		if !existing.SupplierID().IsEqual(product.SupplierID) {
			return nil, errs.NewInvalidOperationError(
				fmt.Sprintf("product %s is already in the cart from supplier %s",
					product.ID, existing.SupplierID()),
			)
		}
		if quantity <= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"quantity is invalid",
				fmt.Errorf("%d is not greater than 0", quantity),
			)
		}

		merged, err := RestoreItem(existing.ID(), product, existing.Quantity()+quantity)
		if err != nil {
			return nil, err
		}
		c.replace(merged)
		c.touch()
		return merged, nil
	}

	item, err := NewItem(product, quantity)
	if err != nil {
		return nil, err
	}

	c.items = append(c.items, item)
	c.touch()
	return item, nil
}

// UpdateItemQuantity sets the quantity of a product line. A quantity of zero or
// less removes the line; removed reports whether that happened.
func (c *Cart) UpdateItemQuantity(productID kernel.UUID, quantity int) (item *Item, removed bool, err error) {
	existing, found := c.Item(productID)
	if !found {
		return nil, false, errs.NewObjectNotFoundError("cart item", productID.String())
	}

	if quantity <= 0 {
		if err = c.RemoveItem(productID); err != nil {
			return nil, false, err
		}
		return existing, true, nil
	}

	updated, err := RestoreItem(existing.ID(), existing.Product(), quantity)
	if err != nil {
		return nil, false, err
	}
	c.replace(updated)
	c.touch()
	return updated, false, nil
}

// RemoveItem drops the line of a product.
func (c *Cart) RemoveItem(productID kernel.UUID) error {
	for idx, item := range c.items {
		if item.ProductID().IsEqual(productID) {
			c.items = append(c.items[:idx], c.items[idx+1:]...)
			c.touch()
			return nil
		}
	}
	return errs.NewObjectNotFoundError("cart item", productID.String())
}

// Clear removes every line. Clearing an empty cart is a no-op.
func (c *Cart) Clear() {
	if len(c.items) == 0 {
		return
	}
	c.items = make([]*Item, 0)
	c.touch()
}

// TotalAmount is the net sum of all line totals.
func (c *Cart) TotalAmount() kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// TotalVat is the sum of all line VAT.
func (c *Cart) TotalVat() kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range c.items {
		total = total.Add(item.LineVat())
	}
	return total
}

// SupplierIDs lists the distinct suppliers in the order they first appear.
func (c *Cart) SupplierIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{})
	result := make([]kernel.UUID, 0)
	for _, item := range c.items {
		if _, ok := seen[item.SupplierID()]; ok {
			continue
		}
		seen[item.SupplierID()] = struct{}{}
		result = append(result, item.SupplierID())
	}
	return result
}

// ItemsBySupplierID returns the lines of one supplier, keeping cart order.
func (c *Cart) ItemsBySupplierID(supplierID kernel.UUID) []*Item {
	result := make([]*Item, 0)
	for _, item := range c.items {
		if item.SupplierID().IsEqual(supplierID) {
			result = append(result, item)
		}
	}
	return result
}

func (c *Cart) replace(item *Item) {
	for idx, existing := range c.items {
		if existing.ID().IsEqual(item.ID()) {
			c.items[idx] = item
			return
		}
	}
}

func (c *Cart) touch() {
	c.updatedAt = time.Now().UTC()
}
