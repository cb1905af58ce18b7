package postgres

import (
	"ordering/internal/adapters/out/postgres/cartrepo"
	"ordering/internal/adapters/out/postgres/eventrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table of the service.
func Migrate(db *gorm.DB) error {
	models := make([]any, 0)
	models = append(models, orderrepo.Models()...)
	models = append(models, cartrepo.Models()...)
	models = append(models, eventrepo.Models()...)
	return db.AutoMigrate(models...)
}
