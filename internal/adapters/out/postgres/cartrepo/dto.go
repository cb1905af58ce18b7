// Package cartrepo maps carts and their lines to PostgreSQL tables.
package cartrepo

import (
	"time"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartDTO is the carts row. customer_id is unique: one cart per customer.
type CartDTO struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt  time.Time     `gorm:"not null;autoCreateTime:false"`
	UpdatedAt  time.Time     `gorm:"not null;autoUpdateTime:false"`
	Items      []CartItemDTO `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

func (CartDTO) TableName() string {
	return "carts"
}

// CartItemDTO is one cart line. (cart_id, product_id) is unique.
type CartItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CartID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_cart_items_cart_product,priority:1"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_cart_items_cart_product,priority:2"`
	SupplierID  uuid.UUID       `gorm:"type:uuid;not null"`
	Position    int             `gorm:"not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	ProductSku  string          `gorm:"type:varchar(64)"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	VatRate     decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	Quantity    int             `gorm:"not null"`
}

func (CartItemDTO) TableName() string {
	return "cart_items"
}

// Models lists every table owned by this package, for migrations.
func Models() []any {
	return []any{&CartDTO{}, &CartItemDTO{}}
}

func fromDomain(c *cart.Cart) CartDTO {
	cartID := c.ID().Bytes()
	items := make([]CartItemDTO, 0, len(c.Items()))
	for i, item := range c.Items() {
		items = append(items, CartItemDTO{
			ID:          item.ID().Bytes(),
			CartID:      cartID,
			ProductID:   item.ProductID().Bytes(),
			SupplierID:  item.SupplierID().Bytes(),
			Position:    i,
			ProductName: item.ProductName(),
			ProductSku:  item.ProductSku(),
			UnitPrice:   item.UnitPrice().Amount(),
			VatRate:     item.VatRate().Percent(),
			Quantity:    item.Quantity(),
		})
	}

	return CartDTO{
		ID:         cartID,
		CustomerID: c.CustomerID().Bytes(),
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
		Items:      items,
	}
}

func toDomain(dto CartDTO) (*cart.Cart, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]*cart.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return cart.RestoreCart(id, customerID, items, dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}

func itemToDomain(dto CartItemDTO) (*cart.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
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

	return cart.RestoreItem(id, cart.Product{
		ID:         productID,
		SupplierID: supplierID,
		Name:       dto.ProductName,
		Sku:        dto.ProductSku,
		UnitPrice:  price,
		VatRate:    rate,
	}, dto.Quantity)
}
