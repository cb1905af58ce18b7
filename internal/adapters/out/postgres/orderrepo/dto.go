// Package orderrepo maps order aggregates, their items and discrepancies to
// PostgreSQL tables.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Status is stored as its text code so that read
// queries can filter without knowing the enum ordinals.
type OrderDTO struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number                 string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	SupplierID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status                 string          `gorm:"type:varchar(32);not null;index"`
	DeliveryAddress        string          `gorm:"type:text;not null"`
	DesiredDeliveryDate    *time.Time      `gorm:"type:date"`
	TotalAmount            decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	VatAmount              decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentProofReference  string          `gorm:"type:varchar(255)"`
	PaymentProofUploadedAt *time.Time
	TrackingNumber         string           `gorm:"type:varchar(255)"`
	RejectionReason        string           `gorm:"type:text"`
	CancellationReason     string           `gorm:"type:text"`
	CreatedAt              time.Time        `gorm:"not null;autoCreateTime:false"`
	UpdatedAt              time.Time        `gorm:"not null;index;autoUpdateTime:false"`
	Items                  []OrderItemDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Discrepancies          []DiscrepancyDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line. Position keeps the insertion order.
type OrderItemDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position         int             `gorm:"not null"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName      string          `gorm:"type:varchar(255);not null"`
	ProductSku       string          `gorm:"type:varchar(64)"`
	UnitPrice        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	VatRate          decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	Quantity         int             `gorm:"not null"`
	ReceivedQuantity *int
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

type DiscrepancyDTO struct {
	ID          uuid.UUID            `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	Notes       string               `gorm:"type:text"`
	TotalAmount decimal.Decimal      `gorm:"type:numeric(14,2);not null"`
	CreatedAt   time.Time            `gorm:"not null;autoCreateTime:false"`
	Items       []DiscrepancyItemDTO `gorm:"foreignKey:DiscrepancyID;constraint:OnDelete:CASCADE"`
}

func (DiscrepancyDTO) TableName() string {
	return "order_discrepancies"
}

type DiscrepancyItemDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DiscrepancyID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderItemID       uuid.UUID       `gorm:"type:uuid;not null"`
	ExpectedQuantity  int             `gorm:"not null"`
	ActualQuantity    int             `gorm:"not null"`
	DiscrepancyAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (DiscrepancyItemDTO) TableName() string {
	return "order_discrepancy_items"
}

// Models lists every table owned by this package, for migrations.
func Models() []any {
	return []any{&OrderDTO{}, &OrderItemDTO{}, &DiscrepancyDTO{}, &DiscrepancyItemDTO{}}
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			ID:               item.ID().Bytes(),
			OrderID:          orderID,
			Position:         i,
			ProductID:        item.ProductID().Bytes(),
			ProductName:      item.ProductName(),
			ProductSku:       item.ProductSku(),
			UnitPrice:        item.UnitPrice().Amount(),
			VatRate:          item.VatRate().Percent(),
			Quantity:         item.Quantity(),
			ReceivedQuantity: item.ReceivedQuantity(),
		})
	}

	discrepancies := make([]DiscrepancyDTO, 0, len(o.Discrepancies()))
	for _, d := range o.Discrepancies() {
		discrepancies = append(discrepancies, discrepancyFromDomain(orderID, d))
	}

	var desired *time.Time
	if date := o.DesiredDeliveryDate(); !date.IsZero() {
		desired = &date
	}

	return OrderDTO{
		ID:                     orderID,
		Number:                 o.Number(),
		SupplierID:             o.SupplierID().Bytes(),
		CustomerID:             o.CustomerID().Bytes(),
		Status:                 o.Status().String(),
		DeliveryAddress:        o.DeliveryAddress(),
		DesiredDeliveryDate:    desired,
		TotalAmount:            o.TotalAmount().Amount(),
		VatAmount:              o.VatAmount().Amount(),
		PaymentProofReference:  o.PaymentProofReference(),
		PaymentProofUploadedAt: o.PaymentProofUploadedAt(),
		TrackingNumber:         o.TrackingNumber(),
		RejectionReason:        o.RejectionReason(),
		CancellationReason:     o.CancellationReason(),
		CreatedAt:              o.CreatedAt(),
		UpdatedAt:              o.UpdatedAt(),
		Items:                  items,
		Discrepancies:          discrepancies,
	}
}

func discrepancyFromDomain(orderID uuid.UUID, d *order.Discrepancy) DiscrepancyDTO {
	discrepancyID := d.ID().Bytes()
	items := make([]DiscrepancyItemDTO, 0, len(d.Items()))
	for _, item := range d.Items() {
		items = append(items, DiscrepancyItemDTO{
			ID:                item.ID().Bytes(),
			DiscrepancyID:     discrepancyID,
			OrderItemID:       item.OrderItemID().Bytes(),
			ExpectedQuantity:  item.ExpectedQuantity(),
			ActualQuantity:    item.ActualQuantity(),
			DiscrepancyAmount: item.DiscrepancyAmount().Amount(),
		})
	}

	return DiscrepancyDTO{
		ID:          discrepancyID,
		OrderID:     orderID,
		Notes:       d.Notes(),
		TotalAmount: d.TotalAmount().Amount(),
		CreatedAt:   d.CreatedAt(),
		Items:       items,
	}
}

// toDomain rebuilds the aggregate. Items must already be sorted by position and
// discrepancies by creation time.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	discrepancies := make([]*order.Discrepancy, 0, len(dto.Discrepancies))
	for _, dDTO := range dto.Discrepancies {
		d, dErr := discrepancyToDomain(id, dDTO)
		if dErr != nil {
			return nil, dErr
		}
		discrepancies = append(discrepancies, d)
	}

	var desired time.Time
	if dto.DesiredDeliveryDate != nil {
		desired = dto.DesiredDeliveryDate.UTC()
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                     id,
		Number:                 dto.Number,
		SupplierID:             supplierID,
		CustomerID:             customerID,
		Status:                 status,
		DeliveryAddress:        dto.DeliveryAddress,
		DesiredDeliveryDate:    desired,
		Items:                  items,
		Discrepancies:          discrepancies,
		PaymentProofReference:  dto.PaymentProofReference,
		PaymentProofUploadedAt: dto.PaymentProofUploadedAt,
		TrackingNumber:         dto.TrackingNumber,
		RejectionReason:        dto.RejectionReason,
		CancellationReason:     dto.CancellationReason,
		CreatedAt:              dto.CreatedAt.UTC(),
		UpdatedAt:              dto.UpdatedAt.UTC(),
	})
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}
	rate, err := kernel.NewVatRate(dto.VatRate)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(id, productID, dto.ProductName, dto.ProductSku, price, rate, dto.Quantity, dto.ReceivedQuantity)
}

func discrepancyToDomain(orderID kernel.UUID, dto DiscrepancyDTO) (*order.Discrepancy, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*order.DiscrepancyItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		orderItemID, itemErr := kernel.UUIDFromBytes(itemDTO.OrderItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		amount, itemErr := kernel.NewMoney(itemDTO.DiscrepancyAmount)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, order.RestoreDiscrepancyItem(
			itemID, orderItemID, itemDTO.ExpectedQuantity, itemDTO.ActualQuantity, amount,
		))
	}

	return order.RestoreDiscrepancy(id, orderID, dto.Notes, items, dto.CreatedAt.UTC()), nil
}
