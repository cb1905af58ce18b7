package order

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
)

var ErrDiscrepancyIsNotConstructed = errors.New("Discrepancy must be created via Order.ReportDiscrepancy or RestoreDiscrepancy")

// DiscrepancyReport is the input for one line of a discrepancy: the order item and
// the quantity actually received.
type DiscrepancyReport struct {
	OrderItemID    kernel.UUID
	ActualQuantity int
}

// DiscrepancyItem records expected versus actual quantity for one order item.
// DiscrepancyQuantity is expected − actual and may be negative (over-delivery);
// DiscrepancyAmount always uses its absolute value.
type DiscrepancyItem struct {
	id                  kernel.UUID
	orderItemID         kernel.UUID
	expectedQuantity    int
	actualQuantity      int
	discrepancyQuantity int
	discrepancyAmount   kernel.Money
}

// newDiscrepancyItem prices the difference by its magnitude: a surplus and a
// shortage of the same size carry the same amount.
func newDiscrepancyItem(item *Item, actual int) (*DiscrepancyItem, error) {
	diff := item.Quantity() - actual
	magnitude := diff
	if magnitude < 0 {
		magnitude = -magnitude
	}

	amount, err := item.UnitPrice().Multiply(magnitude)
	if err != nil {
		return nil, err
	}

	return &DiscrepancyItem{
		id:                  kernel.NewUUID(),
		orderItemID:         item.ID(),
		expectedQuantity:    item.Quantity(),
		actualQuantity:      actual,
		discrepancyQuantity: diff,
		discrepancyAmount:   amount,
	}, nil
}

// RestoreDiscrepancyItem rebuilds a persisted discrepancy line.
func RestoreDiscrepancyItem(
	id, orderItemID kernel.UUID,
	expected, actual int,
	amount kernel.Money,
) *DiscrepancyItem {
	return &DiscrepancyItem{
		id:                  id,
		orderItemID:         orderItemID,
		expectedQuantity:    expected,
		actualQuantity:      actual,
		discrepancyQuantity: expected - actual,
		discrepancyAmount:   amount,
	}
}

func (d *DiscrepancyItem) ID() kernel.UUID                 { return d.id }
func (d *DiscrepancyItem) OrderItemID() kernel.UUID        { return d.orderItemID }
func (d *DiscrepancyItem) ExpectedQuantity() int           { return d.expectedQuantity }
func (d *DiscrepancyItem) ActualQuantity() int             { return d.actualQuantity }
func (d *DiscrepancyItem) DiscrepancyQuantity() int        { return d.discrepancyQuantity }
func (d *DiscrepancyItem) DiscrepancyAmount() kernel.Money { return d.discrepancyAmount }

// Discrepancy groups the lines of one report and their summed amount.
type Discrepancy struct {
	id          kernel.UUID
	orderID     kernel.UUID
	notes       string
	items       []*DiscrepancyItem
	totalAmount kernel.Money
	createdAt   time.Time

	isConstructed bool
}

// RestoreDiscrepancy rebuilds a persisted discrepancy. The total is recomputed from the lines.
func RestoreDiscrepancy(
	id, orderID kernel.UUID,
	notes string,
	items []*DiscrepancyItem,
	createdAt time.Time,
) *Discrepancy {
	d := &Discrepancy{
		id:            id,
		orderID:       orderID,
		notes:         notes,
		items:         items,
		createdAt:     createdAt,
		isConstructed: true,
	}
	d.totalAmount = d.sumAmounts()
	return d
}

func (d *Discrepancy) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDiscrepancyIsNotConstructed
	}
	return nil
}

func (d *Discrepancy) ID() kernel.UUID           { return d.id }
func (d *Discrepancy) OrderID() kernel.UUID      { return d.orderID }
func (d *Discrepancy) Notes() string             { return d.notes }
func (d *Discrepancy) TotalAmount() kernel.Money { return d.totalAmount }
func (d *Discrepancy) CreatedAt() time.Time      { return d.createdAt }

// Items returns a copy of the discrepancy lines.
func (d *Discrepancy) Items() []*DiscrepancyItem {
	items := make([]*DiscrepancyItem, len(d.items))
	copy(items, d.items)
	return items
}

func (d *Discrepancy) sumAmounts() kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range d.items {
		total = total.Add(item.discrepancyAmount)
	}
	return total
}
