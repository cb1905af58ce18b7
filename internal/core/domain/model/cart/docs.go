// Package cart holds the customer's shopping cart: a mutable set of product lines,
// possibly from several suppliers, that checkout turns into supplier orders.
package cart
