package order

import "ordering/internal/core/domain/model/kernel"

// BelongsToSupplier reports whether supplierID owns o.
func BelongsToSupplier(o *Order, supplierID kernel.UUID) bool {
	return o != nil && o.supplierID.IsEqual(supplierID)
}

// BelongsToCustomer reports whether customerID owns o.
func BelongsToCustomer(o *Order, customerID kernel.UUID) bool {
	return o != nil && o.customerID.IsEqual(customerID)
}
