// Package kernel provides the value objects shared by every aggregate of the
// ordering domain.
//
// The package includes:
//   - UUID: identifier of aggregates and entities
//   - Money: a non-negative amount with two fractional digits
//   - VatRate: a VAT percentage in the range [0, 100]
//
// All values are immutable and must be built with their constructors; the zero
// value of each type fails Validate.
package kernel
