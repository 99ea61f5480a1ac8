package model

import "time"

type SupplierCategory struct {
	SupplierCategoryID   int        `gorm:"column:supplier_category_id;primaryKey;autoIncrement"`
	SupplierCategoryName string     `gorm:"column:supplier_category_name;size:50;not null;uniqueIndex"`
	LastEditedBy         int        `gorm:"column:last_edited_by;not null;default:1"`
	ValidFrom            time.Time  `gorm:"column:valid_from;not null;autoCreateTime"`
	ValidTo              time.Time  `gorm:"column:valid_to;not null"`
	Suppliers            []Supplier `gorm:"foreignKey:SupplierCategoryID"`
}

func (SupplierCategory) TableName() string { return "purchasing_supplier_categories" }
