package cart

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("cart Item must be created via NewItem or RestoreItem")

// Item is one product line of a cart. Product data is a snapshot taken when the
// product was added.
type Item struct {
	id          kernel.UUID
	productID   kernel.UUID
	supplierID  kernel.UUID
	productName string
	productSku  string
	unitPrice   kernel.Money
	vatRate     kernel.VatRate
	quantity    int
	lineTotal   kernel.Money

	isConstructed bool
}

// NewItem creates a cart line with a fresh id.
func NewItem(product Product, quantity int) (*Item, error) {
	return RestoreItem(kernel.NewUUID(), product, quantity)
}

// RestoreItem rebuilds a persisted cart line.
func RestoreItem(id kernel.UUID, product Product, quantity int) (*Item, error) {
	item := &Item{isConstructed: true}

	if err := errors.Join(
		id.Validate(),
		product.Validate(),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	lineTotal, err := product.UnitPrice.Multiply(quantity)
	if err != nil {
		return nil, err
	}

	item.id = id
	item.productID = product.ID
	item.supplierID = product.SupplierID
	item.productName = strings.TrimSpace(product.Name)
	item.productSku = strings.TrimSpace(product.Sku)
	item.unitPrice = product.UnitPrice
	item.vatRate = product.VatRate
	item.lineTotal = lineTotal
	return item, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID         { return i.id }
func (i *Item) ProductID() kernel.UUID  { return i.productID }
func (i *Item) SupplierID() kernel.UUID { return i.supplierID }
func (i *Item) ProductName() string     { return i.productName }
func (i *Item) ProductSku() string      { return i.productSku }
func (i *Item) UnitPrice() kernel.Money { return i.unitPrice }
func (i *Item) VatRate() kernel.VatRate { return i.vatRate }
func (i *Item) Quantity() int           { return i.quantity }

// LineTotal is unitPrice × quantity.
func (i *Item) LineTotal() kernel.Money {
	return i.lineTotal
}

// LineVat is the VAT share of LineTotal.
func (i *Item) LineVat() kernel.Money {
	return i.LineTotal().Percent(i.vatRate)
}

// Product returns the product snapshot the line was built from.
func (i *Item) Product() Product {
	return Product{
		ID:         i.productID,
		SupplierID: i.supplierID,
		Name:       i.productName,
		Sku:        i.productSku,
		UnitPrice:  i.unitPrice,
		VatRate:    i.vatRate,
	}
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
