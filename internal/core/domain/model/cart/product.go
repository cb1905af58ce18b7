package cart

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Product is the catalog data a cart line keeps about the product it sells.
// The catalog itself lives outside this service; callers pass the snapshot in.
type Product struct {
	ID         kernel.UUID
	SupplierID kernel.UUID
	Name       string
	Sku        string
	UnitPrice  kernel.Money
	VatRate    kernel.VatRate
}

// Validate checks every required product field and joins the failures.
func (p Product) Validate() error {
	var nameErr error
	if strings.TrimSpace(p.Name) == "" {
		nameErr = errs.NewValueIsRequiredError("product name")
	}

	var idErr, supplierErr error
	if err := p.ID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("product id", err)
	}
	if err := p.SupplierID.Validate(); err != nil {
		supplierErr = errs.NewValueIsRequiredErrorWithCause("supplier id", err)
	}

	return errors.Join(idErr, supplierErr, nameErr, p.UnitPrice.Validate(), p.VatRate.Validate())
}
