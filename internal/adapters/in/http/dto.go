package http

import (
	"encoding/json"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/event"
	"ordering/internal/core/domain/model/order"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

const dateLayout = "2006-01-02"

type AddCartItemRequest struct {
	ProductID   openapi_types.UUID `json:"productId"`
	SupplierID  openapi_types.UUID `json:"supplierId"`
	ProductName string             `json:"productName"`
	Sku         string             `json:"sku"`
	UnitPrice   string             `json:"unitPrice"   example:"12.50"`
	VatRate     string             `json:"vatRate"     example:"20"`
	Quantity    int                `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	DeliveryAddress     string `json:"deliveryAddress"`
	DesiredDeliveryDate string `json:"desiredDeliveryDate,omitempty" example:"2026-11-02"`
}

type ReceivedQuantity struct {
	OrderItemID openapi_types.UUID `json:"orderItemId"`
	Quantity    int                `json:"quantity"`
}

type TransitionRequest struct {
	Reason         string             `json:"reason,omitempty"`
	Reference      string             `json:"reference,omitempty"`
	TrackingNumber string             `json:"trackingNumber,omitempty"`
	Received       []ReceivedQuantity `json:"received,omitempty"`
}

type DiscrepancyLine struct {
	OrderItemID    openapi_types.UUID `json:"orderItemId"`
	ActualQuantity int                `json:"actualQuantity"`
}

type DiscrepancyRequest struct {
	Notes string            `json:"notes,omitempty"`
	Items []DiscrepancyLine `json:"items"`
}

type CartItem struct {
	ProductID   string `json:"productId"`
	SupplierID  string `json:"supplierId"`
	ProductName string `json:"productName"`
	Sku         string `json:"sku,omitempty"`
	UnitPrice   string `json:"unitPrice"`
	VatRate     string `json:"vatRate"`
	Quantity    int    `json:"quantity"`
	LineTotal   string `json:"lineTotal"`
	LineVat     string `json:"lineVat"`
}

type Cart struct {
	ID          string     `json:"id"`
	CustomerID  string     `json:"customerId"`
	Items       []CartItem `json:"items"`
	TotalAmount string     `json:"totalAmount"`
	TotalVat    string     `json:"totalVat"`
}

type OrderItem struct {
	ID               string `json:"id"`
	ProductID        string `json:"productId"`
	ProductName      string `json:"productName"`
	Sku              string `json:"sku,omitempty"`
	UnitPrice        string `json:"unitPrice"`
	VatRate          string `json:"vatRate"`
	Quantity         int    `json:"quantity"`
	ReceivedQuantity *int   `json:"receivedQuantity,omitempty"`
	LineTotal        string `json:"lineTotal"`
}

type DiscrepancyItem struct {
	OrderItemID         string `json:"orderItemId"`
	ExpectedQuantity    int    `json:"expectedQuantity"`
	ActualQuantity      int    `json:"actualQuantity"`
	DiscrepancyQuantity int    `json:"discrepancyQuantity"`
	DiscrepancyAmount   string `json:"discrepancyAmount"`
}

type Discrepancy struct {
	ID          string            `json:"id"`
	Notes       string            `json:"notes,omitempty"`
	TotalAmount string            `json:"totalAmount"`
	CreatedAt   time.Time         `json:"createdAt"`
	Items       []DiscrepancyItem `json:"items"`
}

type Order struct {
	ID                     string        `json:"id"`
	Number                 string        `json:"number"`
	SupplierID             string        `json:"supplierId"`
	CustomerID             string        `json:"customerId"`
	Status                 string        `json:"status"`
	DeliveryAddress        string        `json:"deliveryAddress"`
	DesiredDeliveryDate    string        `json:"desiredDeliveryDate,omitempty"`
	TotalAmount            string        `json:"totalAmount"`
	VatAmount              string        `json:"vatAmount"`
	GrossAmount            string        `json:"grossAmount"`
	Items                  []OrderItem   `json:"items"`
	Discrepancies          []Discrepancy `json:"discrepancies"`
	PaymentProofReference  string        `json:"paymentProofReference,omitempty"`
	PaymentProofUploadedAt *time.Time    `json:"paymentProofUploadedAt,omitempty"`
	TrackingNumber         string        `json:"trackingNumber,omitempty"`
	RejectionReason        string        `json:"rejectionReason,omitempty"`
	CancellationReason     string        `json:"cancellationReason,omitempty"`
	CreatedAt              time.Time     `json:"createdAt"`
	UpdatedAt              time.Time     `json:"updatedAt"`
}

type OrderSummary struct {
	ID                  string    `json:"id"`
	Number              string    `json:"number"`
	SupplierID          string    `json:"supplierId"`
	CustomerID          string    `json:"customerId"`
	Status              string    `json:"status"`
	TotalAmount         string    `json:"totalAmount"`
	VatAmount           string    `json:"vatAmount"`
	ItemCount           int       `json:"itemCount"`
	DesiredDeliveryDate string    `json:"desiredDeliveryDate,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type CheckoutResponse struct {
	Count  int     `json:"count"`
	Orders []Order `json:"orders"`
}

type DiscrepancyResponse struct {
	StatusChanged bool        `json:"statusChanged"`
	Order         Order       `json:"order"`
	Discrepancy   Discrepancy `json:"discrepancy"`
}

type Event struct {
	ID          string          `json:"id"`
	EventType   string          `json:"eventType"`
	Version     int64           `json:"version"`
	Payload     json.RawMessage `json:"payload" swaggertype:"object"`
	CreatedAt   time.Time       `json:"createdAt"`
	PublishedAt *time.Time      `json:"publishedAt,omitempty"`
}

func toCart(c *cart.Cart) Cart {
	items := make([]CartItem, 0, len(c.Items()))
	for _, item := range c.Items() {
		items = append(items, CartItem{
			ProductID:   item.ProductID().String(),
			SupplierID:  item.SupplierID().String(),
			ProductName: item.ProductName(),
			Sku:         item.ProductSku(),
			UnitPrice:   item.UnitPrice().String(),
			VatRate:     item.VatRate().String(),
			Quantity:    item.Quantity(),
			LineTotal:   item.LineTotal().String(),
			LineVat:     item.LineVat().String(),
		})
	}

	return Cart{
		ID:          c.ID().String(),
		CustomerID:  c.CustomerID().String(),
		Items:       items,
		TotalAmount: c.TotalAmount().String(),
		TotalVat:    c.TotalVat().String(),
	}
}

func toOrder(o *order.Order) Order {
	items := make([]OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItem{
			ID:               item.ID().String(),
			ProductID:        item.ProductID().String(),
			ProductName:      item.ProductName(),
			Sku:              item.ProductSku(),
			UnitPrice:        item.UnitPrice().String(),
			VatRate:          item.VatRate().String(),
			Quantity:         item.Quantity(),
			ReceivedQuantity: item.ReceivedQuantity(),
			LineTotal:        item.LineTotal().String(),
		})
	}

	discrepancies := make([]Discrepancy, 0, len(o.Discrepancies()))
	for _, d := range o.Discrepancies() {
		discrepancies = append(discrepancies, toDiscrepancy(d))
	}

	return Order{
		ID:                     o.ID().String(),
		Number:                 o.Number(),
		SupplierID:             o.SupplierID().String(),
		CustomerID:             o.CustomerID().String(),
		Status:                 o.Status().String(),
		DeliveryAddress:        o.DeliveryAddress(),
		DesiredDeliveryDate:    formatDate(o.DesiredDeliveryDate()),
		TotalAmount:            o.TotalAmount().String(),
		VatAmount:              o.VatAmount().String(),
		GrossAmount:            o.GrossAmount().String(),
		Items:                  items,
		Discrepancies:          discrepancies,
		PaymentProofReference:  o.PaymentProofReference(),
		PaymentProofUploadedAt: o.PaymentProofUploadedAt(),
		TrackingNumber:         o.TrackingNumber(),
		RejectionReason:        o.RejectionReason(),
		CancellationReason:     o.CancellationReason(),
		CreatedAt:              o.CreatedAt(),
		UpdatedAt:              o.UpdatedAt(),
	}
}

func toDiscrepancy(d *order.Discrepancy) Discrepancy {
	items := make([]DiscrepancyItem, 0, len(d.Items()))
	for _, item := range d.Items() {
		items = append(items, DiscrepancyItem{
			OrderItemID:         item.OrderItemID().String(),
			ExpectedQuantity:    item.ExpectedQuantity(),
			ActualQuantity:      item.ActualQuantity(),
			DiscrepancyQuantity: item.DiscrepancyQuantity(),
			DiscrepancyAmount:   item.DiscrepancyAmount().String(),
		})
	}

	return Discrepancy{
		ID:          d.ID().String(),
		Notes:       d.Notes(),
		TotalAmount: d.TotalAmount().String(),
		CreatedAt:   d.CreatedAt(),
		Items:       items,
	}
}

func toOrderSummary(s queries.OrderSummary) OrderSummary {
	summary := OrderSummary{
		ID:          s.ID.String(),
		Number:      s.Number,
		SupplierID:  s.SupplierID.String(),
		CustomerID:  s.CustomerID.String(),
		Status:      s.Status.String(),
		TotalAmount: s.TotalAmount.String(),
		VatAmount:   s.VatAmount.String(),
		ItemCount:   s.ItemCount,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.DesiredDeliveryDate != nil {
		summary.DesiredDeliveryDate = formatDate(*s.DesiredDeliveryDate)
	}
	return summary
}

func toCheckoutResponse(result commands.CheckoutResult) CheckoutResponse {
	orders := make([]Order, 0, len(result.Orders))
	for _, o := range result.Orders {
		orders = append(orders, toOrder(o))
	}
	return CheckoutResponse{Count: result.Count, Orders: orders}
}

func toEvent(e *event.Event) Event {
	return Event{
		ID:          e.ID().String(),
		EventType:   e.EventType(),
		Version:     e.Version(),
		Payload:     e.Payload(),
		CreatedAt:   e.CreatedAt(),
		PublishedAt: e.PublishedAt(),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
