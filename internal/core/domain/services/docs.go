// Package services provides domain services for rules that span aggregates or do
// not belong to a single one.
//
// The package includes:
//   - CheckoutPlanner: splits a cart into one order per supplier
//   - AccessPolicy: decides which actor may run which order action
package services
