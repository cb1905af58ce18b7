package queries

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

type GetCartQueryHandler struct {
	carts ports.CartRepository
}

func NewGetCartQueryHandler(carts ports.CartRepository) GetCartQueryHandler {
	return GetCartQueryHandler{carts: carts}
}

// Handle never reports a missing cart: a customer without one gets an empty,
// unsaved cart.
func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (*cart.Cart, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	c, err := h.carts.GetByCustomer(ctx, query.CustomerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return cart.NewCart(kernel.NewUUID(), query.CustomerID())
	}

	return c, err
}
