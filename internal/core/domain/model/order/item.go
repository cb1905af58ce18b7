package order

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("order Item must be created via NewItem or RestoreItem")

// Item is one order line. Product data, unit price and VAT rate are copied from the
// cart when the order is created and never re-read from the catalog.
type Item struct {
	id               kernel.UUID
	productID        kernel.UUID
	productName      string
	productSku       string
	unitPrice        kernel.Money
	vatRate          kernel.VatRate
	quantity         int
	lineTotal        kernel.Money
	receivedQuantity *int

	isConstructed bool
}

// NewItem creates an order line. Quantity must be positive; the SKU may be empty.
func NewItem(
	id kernel.UUID,
	productID kernel.UUID,
	productName string,
	productSku string,
	unitPrice kernel.Money,
	vatRate kernel.VatRate,
	quantity int,
) (*Item, error) {
	item := &Item{productSku: strings.TrimSpace(productSku), isConstructed: true}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setProductName(productName),
		item.setUnitPrice(unitPrice),
		item.setVatRate(vatRate),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	lineTotal, err := item.unitPrice.Multiply(item.quantity)
	if err != nil {
		return nil, err
	}
	item.lineTotal = lineTotal

	return item, nil
}

// RestoreItem rebuilds a persisted line, including the received quantity recorded
// during delivery reconciliation.
func RestoreItem(
	id kernel.UUID,
	productID kernel.UUID,
	productName string,
	productSku string,
	unitPrice kernel.Money,
	vatRate kernel.VatRate,
	quantity int,
	receivedQuantity *int,
) (*Item, error) {
	item, err := NewItem(id, productID, productName, productSku, unitPrice, vatRate, quantity)
	if err != nil {
		return nil, err
	}

	if receivedQuantity != nil {
		if err = item.setReceivedQuantity(*receivedQuantity); err != nil {
			return nil, err
		}
	}

	return item, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID          { return i.id }
func (i *Item) ProductID() kernel.UUID   { return i.productID }
func (i *Item) ProductName() string      { return i.productName }
func (i *Item) ProductSku() string       { return i.productSku }
func (i *Item) UnitPrice() kernel.Money  { return i.unitPrice }
func (i *Item) VatRate() kernel.VatRate  { return i.vatRate }
func (i *Item) Quantity() int            { return i.quantity }
func (i *Item) ReceivedQuantity() *int   { return i.receivedQuantity }
func (i *Item) IsEqual(other *Item) bool { return other != nil && i.id.IsEqual(other.id) }

// LineTotal is unitPrice × quantity.
func (i *Item) LineTotal() kernel.Money {
	return i.lineTotal
}

// LineVat is the VAT share of LineTotal.
func (i *Item) LineVat() kernel.Money {
	return i.LineTotal().Percent(i.vatRate)
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product id", err)
	}
	i.productID = id
	return nil
}

func (i *Item) setProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	i.productName = name
	return nil
}

func (i *Item) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.unitPrice = price
	return nil
}

func (i *Item) setVatRate(rate kernel.VatRate) error {
	if err := rate.Validate(); err != nil {
		return err
	}
	i.vatRate = rate
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setReceivedQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"received quantity is invalid",
			fmt.Errorf("%d is negative", quantity),
		)
	}
	i.receivedQuantity = &quantity
	return nil
}
