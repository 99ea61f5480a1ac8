package database

import (
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.SupplierCategory{},
		&model.Supplier{},
		&model.SupplierTransaction{},
	); err != nil {
		return err
	}
	return EnsureIndexes(db)
}
