package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of one supplier order: a customer buying items from
// exactly one supplier.
//
// Order follows these invariants:
//   - id, supplier, customer and delivery address are always set
//   - status only changes through methods that consult CanTransition
//   - totalAmount and vatAmount equal the sums over items at all times
//   - items can only be added or removed while the order is CREATED
//
// Mutating methods set updatedAt. Persisting the change and appending the matching
// event is the caller's job.
type Order struct {
	id                  kernel.UUID
	number              string
	supplierID          kernel.UUID
	customerID          kernel.UUID
	status              Status
	deliveryAddress     string
	desiredDeliveryDate time.Time

	totalAmount kernel.Money
	vatAmount   kernel.Money

	items         []*Item
	discrepancies []*Discrepancy

	paymentProofReference  string
	paymentProofUploadedAt *time.Time
	trackingNumber         string
	rejectionReason        string
	cancellationReason     string

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates an order in CREATED status without items.
//
// Parameters:
//   - id: order identifier
//   - supplierID: the supplier fulfilling the order
//   - customerID: the customer placing the order
//   - deliveryAddress: non-empty delivery address
//   - desiredDeliveryDate: requested delivery date, zero means "no preference"
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), supplierID, customerID, "1 Main St", date)
//	if err != nil {
//	    return err
//	}
//	_ = o.AddItem(item)
//	_ = o.SubmitForConfirmation()
func NewOrder(
	id kernel.UUID,
	supplierID kernel.UUID,
	customerID kernel.UUID,
	deliveryAddress string,
	desiredDeliveryDate time.Time,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:              Created,
		desiredDeliveryDate: desiredDeliveryDate,
		totalAmount:         kernel.ZeroMoney(),
		vatAmount:           kernel.ZeroMoney(),
		items:               make([]*Item, 0),
		discrepancies:       make([]*Discrepancy, 0),
		createdAt:           now,
		updatedAt:           now,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setSupplierID(supplierID),
		o.setCustomerID(customerID),
		o.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return nil, err
	}

	o.number = NewOrderNumber(id, now)
	return o, nil
}

// Snapshot carries the persisted state of an order for RestoreOrder.
type Snapshot struct {
	ID                     kernel.UUID
	Number                 string
	SupplierID             kernel.UUID
	CustomerID             kernel.UUID
	Status                 Status
	DeliveryAddress        string
	DesiredDeliveryDate    time.Time
	Items                  []*Item
	Discrepancies          []*Discrepancy
	PaymentProofReference  string
	PaymentProofUploadedAt *time.Time
	TrackingNumber         string
	RejectionReason        string
	CancellationReason     string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// RestoreOrder rebuilds an order loaded from storage. Totals are recomputed from the
// items so a stale stored total can never leak into the domain.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		number:                 s.Number,
		desiredDeliveryDate:    s.DesiredDeliveryDate,
		items:                  make([]*Item, 0, len(s.Items)),
		discrepancies:          make([]*Discrepancy, 0, len(s.Discrepancies)),
		paymentProofReference:  s.PaymentProofReference,
		paymentProofUploadedAt: s.PaymentProofUploadedAt,
		trackingNumber:         s.TrackingNumber,
		rejectionReason:        s.RejectionReason,
		cancellationReason:     s.CancellationReason,
		createdAt:              s.CreatedAt,
		updatedAt:              s.UpdatedAt,
		isConstructed:          true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setSupplierID(s.SupplierID),
		o.setCustomerID(s.CustomerID),
		o.setDeliveryAddress(s.DeliveryAddress),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = s.Status

	if strings.TrimSpace(o.number) == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}

	for _, item := range s.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		o.items = append(o.items, item)
	}

	for _, d := range s.Discrepancies {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		o.discrepancies = append(o.discrepancies, d)
	}

	o.RecalculateTotals()
	return o, nil
}

// NewOrderNumber derives the human readable order number "ORD-YYYYMMDD-XXXXXXXX"
// from the creation date and the first four bytes of the order id.
func NewOrderNumber(id kernel.UUID, createdAt time.Time) string {
	raw := id.Bytes()
	return fmt.Sprintf("ORD-%s-%X", createdAt.UTC().Format("20060102"), raw[:4])
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human readable order number.
func (o *Order) Number() string {
	return o.number
}

// SupplierID returns the supplier owning the order.
func (o *Order) SupplierID() kernel.UUID {
	return o.supplierID
}

// CustomerID returns the customer owning the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

func (o *Order) DesiredDeliveryDate() time.Time {
	return o.desiredDeliveryDate
}

// TotalAmount is the net sum of line totals.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// VatAmount is the sum of line VAT.
func (o *Order) VatAmount() kernel.Money {
	return o.vatAmount
}

// GrossAmount is TotalAmount plus VatAmount.
func (o *Order) GrossAmount() kernel.Money {
	return o.totalAmount.Add(o.vatAmount)
}

// Items returns a copy of the order lines in insertion order.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

// Item finds a line by id.
func (o *Order) Item(id kernel.UUID) (*Item, bool) {
	for _, item := range o.items {
		if item.ID().IsEqual(id) {
			return item, true
		}
	}
	return nil, false
}

// Discrepancies returns a copy of the reported discrepancies, oldest first.
func (o *Order) Discrepancies() []*Discrepancy {
	discrepancies := make([]*Discrepancy, len(o.discrepancies))
	copy(discrepancies, o.discrepancies)
	return discrepancies
}

func (o *Order) PaymentProofReference() string {
	return o.paymentProofReference
}

func (o *Order) PaymentProofUploadedAt() *time.Time {
	return o.paymentProofUploadedAt
}

func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

func (o *Order) RejectionReason() string {
	return o.rejectionReason
}

func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// AddItem appends a line and recalculates totals. Only allowed while CREATED.
// A second line for the same product is rejected: checkout already merges them.
func (o *Order) AddItem(item *Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	if err := o.ensureItemsEditable(); err != nil {
		return err
	}

	for _, existing := range o.items {
		if existing.ProductID().IsEqual(item.ProductID()) {
			return errs.NewInvalidOperationError(
				fmt.Sprintf("product %s is already part of the order", item.ProductID()),
			)
		}
	}

	o.items = append(o.items, item)
	o.RecalculateTotals()
	o.touch()
	return nil
}

// RemoveItem drops a line and recalculates totals. Only allowed while CREATED.
func (o *Order) RemoveItem(itemID kernel.UUID) error {
	if err := o.ensureItemsEditable(); err != nil {
		return err
	}

	for idx, item := range o.items {
		if item.ID().IsEqual(itemID) {
			o.items = append(o.items[:idx], o.items[idx+1:]...)
			o.RecalculateTotals()
			o.touch()
			return nil
		}
	}

	return errs.NewObjectNotFoundError("order item", itemID.String())
}

// RecalculateTotals writes totalAmount and vatAmount from the current items.
// It touches nothing else and is idempotent.
func (o *Order) RecalculateTotals() {
	total := kernel.ZeroMoney()
	vat := kernel.ZeroMoney()

	for _, item := range o.items {
		total = total.Add(item.LineTotal())
		vat = vat.Add(item.LineVat())
	}

	o.totalAmount = total
	o.vatAmount = vat
}

// SubmitForConfirmation moves a freshly built order to PENDING_CONFIRMATION.
// An order without items cannot be submitted.
func (o *Order) SubmitForConfirmation() error {
	if err := o.ensureCanTransition(PendingConfirmation); err != nil {
		return err
	}

	if len(o.items) == 0 {
		return errs.NewInvalidOperationError("order has no items")
	}

	o.apply(PendingConfirmation)
	return nil
}

// Confirm is the supplier accepting the order.
func (o *Order) Confirm() error {
	return o.transition(Confirmed)
}

// Reject is the supplier refusing the order. A reason is required.
func (o *Order) Reject(reason string) error {
	if err := o.ensureCanTransition(Rejected); err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("rejection reason")
	}

	o.rejectionReason = reason
	o.apply(Rejected)
	return nil
}

// AwaitPayment asks the customer to pay.
func (o *Order) AwaitPayment() error {
	return o.transition(AwaitingPayment)
}

// UploadPaymentProof stores the customer's proof reference (e.g. a document id in
// the file storage service) and waits for the supplier to verify it.
func (o *Order) UploadPaymentProof(reference string) error {
	if err := o.ensureCanTransition(PendingPaymentVerification); err != nil {
		return err
	}

	reference = strings.TrimSpace(reference)
	if reference == "" {
		return errs.NewValueIsRequiredError("payment proof reference")
	}

	uploadedAt := time.Now().UTC()
	o.paymentProofReference = reference
	o.paymentProofUploadedAt = &uploadedAt
	o.apply(PendingPaymentVerification)
	return nil
}

// ConfirmPayment is the supplier accepting the payment proof.
func (o *Order) ConfirmPayment() error {
	return o.transition(Paid)
}

// RejectPaymentProof sends the order back to AWAITING_PAYMENT and clears the proof.
// The reason is only validated here; it travels in the event payload.
func (o *Order) RejectPaymentProof(reason string) error {
	if err := o.ensureCanTransition(AwaitingPayment); err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("payment proof rejection reason")
	}

	o.paymentProofReference = ""
	o.paymentProofUploadedAt = nil
	o.apply(AwaitingPayment)
	return nil
}

// AwaitShipment marks a paid order as being prepared for shipping.
func (o *Order) AwaitShipment() error {
	return o.transition(AwaitingShipment)
}

// Ship marks the order as handed to the carrier. The tracking number is optional.
func (o *Order) Ship(trackingNumber string) error {
	if err := o.ensureCanTransition(Shipped); err != nil {
		return err
	}

	o.trackingNumber = strings.TrimSpace(trackingNumber)
	o.apply(Shipped)
	return nil
}

// Deliver confirms receipt. received optionally maps order item ids to the quantity
// actually received; every key must be an item of this order.
func (o *Order) Deliver(received map[kernel.UUID]int) error {
	if err := o.ensureCanTransition(Delivered); err != nil {
		return err
	}

	for itemID, quantity := range received {
		if _, ok := o.Item(itemID); !ok {
			return errs.NewObjectNotFoundError("order item", itemID.String())
		}
		if quantity < 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"received quantity is invalid",
				fmt.Errorf("%d is negative", quantity),
			)
		}
	}

	for itemID, quantity := range received {
		item, _ := o.Item(itemID)
		_ = item.setReceivedQuantity(quantity)
	}

	o.apply(Delivered)
	return nil
}

// ReportDiscrepancy records expected-versus-received quantities for a SHIPPED or
// DELIVERED order.
//
// Every report line is validated before anything changes:
//   - the order item must exist (errs.ObjectNotFoundError otherwise)
//   - the actual quantity must be zero or more and differ from the ordered quantity
//   - an item may appear only once per report
//
// When the table allows SHIPPED/DELIVERED -> AWAITING_CORRECTION the order moves there
// and statusChanged is true. Otherwise the discrepancy is still recorded and the
// status is kept; this is not an error.
func (o *Order) ReportDiscrepancy(reports []DiscrepancyReport, notes string) (*Discrepancy, bool, error) {
	if o.status != Shipped && o.status != Delivered {
		return nil, false, errs.NewInvalidOperationError(
			fmt.Sprintf("discrepancies can only be reported for %s or %s orders, order is %s",
				Shipped, Delivered, o.status),
		)
	}

	if len(reports) == 0 {
		return nil, false, errs.NewValueIsRequiredError("discrepancy items")
	}

	seen := make(map[kernel.UUID]struct{}, len(reports))
	lines := make([]*DiscrepancyItem, 0, len(reports))
	for _, report := range reports {
		item, ok := o.Item(report.OrderItemID)
		if !ok {
			return nil, false, errs.NewObjectNotFoundError("order item", report.OrderItemID.String())
		}

		if _, dup := seen[report.OrderItemID]; dup {
			return nil, false, errs.NewValueIsInvalidErrorWithCause(
				"discrepancy items",
				fmt.Errorf("order item %s is reported twice", report.OrderItemID),
			)
		}
		seen[report.OrderItemID] = struct{}{}

		if report.ActualQuantity < 0 {
			return nil, false, errs.NewValueIsInvalidErrorWithCause(
				"actual quantity is invalid",
				fmt.Errorf("%d is negative", report.ActualQuantity),
			)
		}

		if report.ActualQuantity == item.Quantity() {
			return nil, false, errs.NewValueIsInvalidErrorWithCause(
				"actual quantity is invalid",
				fmt.Errorf("order item %s has no discrepancy", report.OrderItemID),
			)
		}

		line, err := newDiscrepancyItem(item, report.ActualQuantity)
		if err != nil {
			return nil, false, err
		}
		lines = append(lines, line)
	}

	for _, line := range lines {
		item, _ := o.Item(line.OrderItemID())
		_ = item.setReceivedQuantity(line.ActualQuantity())
	}

	discrepancy := RestoreDiscrepancy(kernel.NewUUID(), o.id, strings.TrimSpace(notes), lines, time.Now().UTC())
	o.discrepancies = append(o.discrepancies, discrepancy)

	statusChanged := CanTransition(o.status, AwaitingCorrection)
	if statusChanged {
		o.apply(AwaitingCorrection)
	} else {
		o.touch()
	}

	return discrepancy, statusChanged, nil
}

// Close finishes a delivered order.
func (o *Order) Close() error {
	return o.transition(Closed)
}

// Cancel stops a confirmed order before payment. A reason is required.
func (o *Order) Cancel(reason string) error {
	if err := o.ensureCanTransition(Cancelled); err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}

	o.cancellationReason = reason
	o.apply(Cancelled)
	return nil
}

func (o *Order) transition(target Status) error {
	if err := o.ensureCanTransition(target); err != nil {
		return err
	}

	o.apply(target)
	return nil
}

func (o *Order) ensureCanTransition(target Status) error {
	if !CanTransition(o.status, target) {
		return errs.NewInvalidStateTransitionError(o.status, target)
	}
	return nil
}

func (o *Order) ensureItemsEditable() error {
	if o.status != Created {
		return errs.NewInvalidOperationError(
			fmt.Sprintf("items can only change while the order is %s, order is %s", Created, o.status),
		)
	}
	return nil
}

func (o *Order) apply(target Status) {
	o.status = target
	o.touch()
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	o.id = id
	return nil
}

func (o *Order) setSupplierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("supplier id", err)
	}

	o.supplierID = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}

	o.customerID = id
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}

	o.deliveryAddress = address
	return nil
}
