package events

import (
	"time"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
)

// Event payloads. Field names are the JSON contract consumers rely on.

type OrderItemPayload struct {
	OrderItemID string `json:"orderItemId"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	ProductSku  string `json:"productSku,omitempty"`
	UnitPrice   string `json:"unitPrice"`
	VatRate     string `json:"vatRate"`
	Quantity    int    `json:"quantity"`
}

type OrderCreatedPayload struct {
	OrderID             string             `json:"orderId"`
	OrderNumber         string             `json:"orderNumber"`
	SupplierID          string             `json:"supplierId"`
	CustomerID          string             `json:"customerId"`
	Status              string             `json:"status"`
	DeliveryAddress     string             `json:"deliveryAddress"`
	DesiredDeliveryDate *time.Time         `json:"desiredDeliveryDate,omitempty"`
	TotalAmount         string             `json:"totalAmount"`
	VatAmount           string             `json:"vatAmount"`
	Items               []OrderItemPayload `json:"items"`
}

// OrderStatusChangedPayload is used by every plain transition event.
type OrderStatusChangedPayload struct {
	OrderID    string `json:"orderId"`
	From       string `json:"from"`
	To         string `json:"to"`
	ActorRole  string `json:"actorRole"`
	ActorID    string `json:"actorId"`
	Reason     string `json:"reason,omitempty"`
	Reference  string `json:"reference,omitempty"`
	Tracking   string `json:"trackingNumber,omitempty"`
	OccurredAt string `json:"occurredAt"`
}

type DiscrepancyItemPayload struct {
	OrderItemID         string `json:"orderItemId"`
	ExpectedQuantity    int    `json:"expectedQuantity"`
	ActualQuantity      int    `json:"actualQuantity"`
	DiscrepancyQuantity int    `json:"discrepancyQuantity"`
	DiscrepancyAmount   string `json:"discrepancyAmount"`
}

type DiscrepancyReportedPayload struct {
	OrderID       string                   `json:"orderId"`
	DiscrepancyID string                   `json:"discrepancyId"`
	Status        string                   `json:"status"`
	StatusChanged bool                     `json:"statusChanged"`
	Notes         string                   `json:"notes,omitempty"`
	TotalAmount   string                   `json:"totalAmount"`
	Items         []DiscrepancyItemPayload `json:"items"`
}

type CartItemPayload struct {
	CartID     string `json:"cartId"`
	CustomerID string `json:"customerId"`
	ProductID  string `json:"productId"`
	SupplierID string `json:"supplierId,omitempty"`
	Quantity   int    `json:"quantity"`
}

type CartClearedPayload struct {
	CartID     string `json:"cartId"`
	CustomerID string `json:"customerId"`
}

type CartCheckedOutPayload struct {
	CartID     string   `json:"cartId"`
	CustomerID string   `json:"customerId"`
	OrderIDs   []string `json:"orderIds"`
}

func NewOrderCreatedPayload(o *order.Order) OrderCreatedPayload {
	items := make([]OrderItemPayload, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemPayload{
			OrderItemID: item.ID().String(),
			ProductID:   item.ProductID().String(),
			ProductName: item.ProductName(),
			ProductSku:  item.ProductSku(),
			UnitPrice:   item.UnitPrice().String(),
			VatRate:     item.VatRate().String(),
			Quantity:    item.Quantity(),
		})
	}

	var desired *time.Time
	if !o.DesiredDeliveryDate().IsZero() {
		d := o.DesiredDeliveryDate()
		desired = &d
	}

	return OrderCreatedPayload{
		OrderID:             o.ID().String(),
		OrderNumber:         o.Number(),
		SupplierID:          o.SupplierID().String(),
		CustomerID:          o.CustomerID().String(),
		Status:              o.Status().String(),
		DeliveryAddress:     o.DeliveryAddress(),
		DesiredDeliveryDate: desired,
		TotalAmount:         o.TotalAmount().String(),
		VatAmount:           o.VatAmount().String(),
		Items:               items,
	}
}

// NewOrderStatusChangedPayload describes a transition of o from the given status
// to its current one. reason is optional.
func NewOrderStatusChangedPayload(o *order.Order, from order.Status, actor services.Actor, reason string) OrderStatusChangedPayload {
	return OrderStatusChangedPayload{
		OrderID:    o.ID().String(),
		From:       from.String(),
		To:         o.Status().String(),
		ActorRole:  actor.Role.String(),
		ActorID:    actor.ID.String(),
		Reason:     reason,
		Reference:  o.PaymentProofReference(),
		Tracking:   o.TrackingNumber(),
		OccurredAt: o.UpdatedAt().Format(time.RFC3339Nano),
	}
}

func NewDiscrepancyReportedPayload(o *order.Order, d *order.Discrepancy, statusChanged bool) DiscrepancyReportedPayload {
	items := make([]DiscrepancyItemPayload, 0, len(d.Items()))
	for _, line := range d.Items() {
		items = append(items, DiscrepancyItemPayload{
			OrderItemID:         line.OrderItemID().String(),
			ExpectedQuantity:    line.ExpectedQuantity(),
			ActualQuantity:      line.ActualQuantity(),
			DiscrepancyQuantity: line.DiscrepancyQuantity(),
			DiscrepancyAmount:   line.DiscrepancyAmount().String(),
		})
	}

	return DiscrepancyReportedPayload{
		OrderID:       o.ID().String(),
		DiscrepancyID: d.ID().String(),
		Status:        o.Status().String(),
		StatusChanged: statusChanged,
		Notes:         d.Notes(),
		TotalAmount:   d.TotalAmount().String(),
		Items:         items,
	}
}

func NewCartItemPayload(c *cart.Cart, productID kernel.UUID, supplierID kernel.UUID, quantity int) CartItemPayload {
	payload := CartItemPayload{
		CartID:     c.ID().String(),
		CustomerID: c.CustomerID().String(),
		ProductID:  productID.String(),
		Quantity:   quantity,
	}
	if supplierID.Validate() == nil {
		payload.SupplierID = supplierID.String()
	}
	return payload
}

func NewCartCheckedOutPayload(c *cart.Cart, orders []*order.Order) CartCheckedOutPayload {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID().String())
	}
	return CartCheckedOutPayload{
		CartID:     c.ID().String(),
		CustomerID: c.CustomerID().String(),
		OrderIDs:   ids,
	}
}
