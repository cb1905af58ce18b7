// Package queries contains read operations. They never modify state and return
// read models or freshly loaded aggregates.
package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists the orders visible to an actor: a customer sees the
// orders placed, a supplier the orders received. An empty status list means
// every status.
//
// Example:
//
//	query, err := NewListOrdersQuery(actor, []order.Status{order.Shipped}, 0, 0)
//	if err != nil {
//	    return err
//	}
//	summaries, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	actor    services.Actor
	statuses []order.Status
	limit    int
	offset   int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery applies DefaultListLimit when limit is 0.
func NewListOrdersQuery(actor services.Actor, statuses []order.Status, limit, offset int) (ListOrdersQuery, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}

	var limitErr, offsetErr, statusErr error
	if limit < 1 || limit > MaxListLimit {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	if offset < 0 {
		offsetErr = errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			statusErr = err
			break
		}
	}

	if err := errors.Join(actor.Validate(), limitErr, offsetErr, statusErr); err != nil {
		return ListOrdersQuery{}, err
	}

	copied := make([]order.Status, len(statuses))
	copy(copied, statuses)

	return ListOrdersQuery{
		actor:    actor,
		statuses: copied,
		limit:    limit,
		offset:   offset,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() services.Actor { return q.actor }
func (q ListOrdersQuery) Limit() int            { return q.limit }
func (q ListOrdersQuery) Offset() int           { return q.offset }

func (q ListOrdersQuery) Statuses() []order.Status {
	statuses := make([]order.Status, len(q.statuses))
	copy(statuses, q.statuses)
	return statuses
}

// OrderSummary is one row of an order listing.
type OrderSummary struct {
	ID                  kernel.UUID
	Number              string
	SupplierID          kernel.UUID
	CustomerID          kernel.UUID
	Status              order.Status
	TotalAmount         kernel.Money
	VatAmount           kernel.Money
	ItemCount           int
	DesiredDeliveryDate *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
