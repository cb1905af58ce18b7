// Package order provides the Order aggregate of the ordering service and the
// status table that gates its lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding status, line items, totals and discrepancies
//   - Item: a frozen snapshot of a catalog product taken when the order is created
//   - Discrepancy / DiscrepancyItem: expected-versus-received quantities reported after shipment
//   - Status: the closed set of lifecycle codes and the transition table (CanTransition)
//
// Key business rules:
//   - every lifecycle method consults CanTransition before mutating; a refused transition
//     returns errs.InvalidStateTransitionError and leaves the order untouched
//   - totalAmount and vatAmount are always the sums over the current items
//   - items can only change while the order is CREATED; prices never change afterwards
//   - ownership is checked by the caller with BelongsToSupplier and BelongsToCustomer
//   - reporting a discrepancy moves the order to AWAITING_CORRECTION only when the table
//     allows it; otherwise the discrepancy is recorded and the status is kept
package order
