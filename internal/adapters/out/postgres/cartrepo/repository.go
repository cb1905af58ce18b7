package cartrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements ports.CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) GetByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	return r.get(r.db.WithContext(ctx), customerID)
}

// GetForUpdate loads the cart and locks its row until the transaction ends.
func (r *GormCartRepository) GetForUpdate(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), customerID)
}

// GetOrCreateForUpdate inserts an empty cart unless the customer already has
// one, then locks whichever row won.
func (r *GormCartRepository) GetOrCreateForUpdate(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	fresh, err := cart.NewCart(kernel.NewUUID(), customerID)
	if err != nil {
		return nil, err
	}

	dto := fromDomain(fresh)
	if err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "customer_id"}}, DoNothing: true}).
		Omit(clause.Associations).
		Create(&dto).Error; err != nil {
		return nil, err
	}

	return r.GetForUpdate(ctx, customerID)
}

// Update writes the cart lines. Lines are upserted on (cart_id, product_id);
// lines no longer in the aggregate are deleted.
func (r *GormCartRepository) Update(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&CartDTO{}).Where("id = ?", dto.ID).Update("updated_at", dto.UpdatedAt)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cart", aggregate.ID().String())
	}

	productIDs := make([]uuid.UUID, 0, len(dto.Items))
	for _, item := range dto.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	deleteStale := db.Where("cart_id = ?", dto.ID)
	if len(productIDs) > 0 {
		deleteStale = deleteStale.Where("product_id NOT IN ?", productIDs)
	}
	if err := deleteStale.Delete(&CartItemDTO{}).Error; err != nil {
		return err
	}

	if len(dto.Items) == 0 {
		return nil
	}

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"position", "product_name", "product_sku", "unit_price", "vat_rate", "quantity",
		}),
	}).Create(&dto.Items).Error
}

func (r *GormCartRepository) get(db *gorm.DB, customerID kernel.UUID) (*cart.Cart, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	if err := db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		First(&dto, "customer_id = ?", customerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart of customer", customerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
