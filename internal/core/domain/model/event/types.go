package event

// Order event types.
const (
	OrderCreated          = "OrderCreated"
	OrderConfirmed        = "OrderConfirmed"
	OrderRejected         = "OrderRejected"
	OrderAwaitingPayment  = "OrderAwaitingPayment"
	PaymentProofUploaded  = "PaymentProofUploaded"
	PaymentConfirmed      = "PaymentConfirmed"
	PaymentProofRejected  = "PaymentProofRejected"
	OrderAwaitingShipment = "OrderAwaitingShipment"
	OrderShipped          = "OrderShipped"
	OrderDelivered        = "OrderDelivered"
	DiscrepancyReported   = "DiscrepancyReported"
	OrderClosed           = "OrderClosed"
	OrderCancelled        = "OrderCancelled"
)

// Cart event types.
const (
	CartItemAdded   = "CartItemAdded"
	CartItemUpdated = "CartItemUpdated"
	CartItemRemoved = "CartItemRemoved"
	CartCleared     = "CartCleared"
	CartCheckedOut  = "CartCheckedOut"
)
