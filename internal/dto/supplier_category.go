package dto

import (
	"strings"
	"time"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/model"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/shaping"
)

type SupplierCategoryDto struct {
	SupplierCategoryID   int       `json:"supplierCategoryId"`
	SupplierCategoryName string    `json:"supplierCategoryName"`
	LastEditedBy         int       `json:"lastEditedBy"`
	ValidFrom            time.Time `json:"validFrom"`
	ValidTo              time.Time `json:"validTo"`
}

type SupplierCategoryForCreationDto struct {
	SupplierCategoryName string                   `json:"supplierCategoryName" binding:"required,max=50"`
	LastEditedBy         int                      `json:"lastEditedBy" binding:"omitempty,gt=0"`
	Suppliers            []SupplierForCreationDto `json:"suppliers" binding:"omitempty,dive"`
}

type SupplierCategoryForUpdateDto struct {
	SupplierCategoryName string                   `json:"supplierCategoryName" binding:"required,max=50"`
	LastEditedBy         int                      `json:"lastEditedBy" binding:"omitempty,gt=0"`
	Suppliers            []SupplierForCreationDto `json:"suppliers,omitempty" binding:"omitempty,dive"`
}

// SupplierCategoryFields is the shaping table of SupplierCategoryDto.
var SupplierCategoryFields = shaping.MustNewFieldTable("SupplierCategoryDto", "supplierCategoryId",
	shaping.Ordered("supplierCategoryId", func(c SupplierCategoryDto) int { return c.SupplierCategoryID }),
	shaping.Ordered("supplierCategoryName", func(c SupplierCategoryDto) string { return c.SupplierCategoryName }),
	shaping.Ordered("lastEditedBy", func(c SupplierCategoryDto) int { return c.LastEditedBy }),
	shaping.Custom("validFrom", func(c SupplierCategoryDto) time.Time { return c.ValidFrom }, time.Time.Compare),
	shaping.Custom("validTo", func(c SupplierCategoryDto) time.Time { return c.ValidTo }, time.Time.Compare),
)

func NewSupplierCategoryDto(m *model.SupplierCategory) SupplierCategoryDto {
	return SupplierCategoryDto{
		SupplierCategoryID:   m.SupplierCategoryID,
		SupplierCategoryName: m.SupplierCategoryName,
		LastEditedBy:         m.LastEditedBy,
		ValidFrom:            m.ValidFrom,
		ValidTo:              m.ValidTo,
	}
}

func NewSupplierCategoryDtos(items []model.SupplierCategory) []SupplierCategoryDto {
	out := make([]SupplierCategoryDto, len(items))
	for i := range items {
		out[i] = NewSupplierCategoryDto(&items[i])
	}
	return out
}

func (d SupplierCategoryForCreationDto) ToModel() model.SupplierCategory {
	m := model.SupplierCategory{
		SupplierCategoryName: strings.TrimSpace(d.SupplierCategoryName),
		LastEditedBy:         lastEditor(d.LastEditedBy),
		ValidTo:              model.EndOfTime,
	}
	for _, s := range d.Suppliers {
		m.Suppliers = append(m.Suppliers, s.ToModel())
	}
	return m
}

// ApplyTo copies the updatable fields onto m. Nested suppliers are
// returned separately because they are appended, not replaced.
func (d SupplierCategoryForUpdateDto) ApplyTo(m *model.SupplierCategory) []model.Supplier {
	m.SupplierCategoryName = strings.TrimSpace(d.SupplierCategoryName)
	m.LastEditedBy = lastEditor(d.LastEditedBy)

	suppliers := make([]model.Supplier, 0, len(d.Suppliers))
	for _, s := range d.Suppliers {
		supplier := s.ToModel()
		supplier.SupplierCategoryID = m.SupplierCategoryID
		suppliers = append(suppliers, supplier)
	}
	return suppliers
}

func NewSupplierCategoryForUpdateDto(m *model.SupplierCategory) SupplierCategoryForUpdateDto {
	return SupplierCategoryForUpdateDto{
		SupplierCategoryName: m.SupplierCategoryName,
		LastEditedBy:         m.LastEditedBy,
	}
}

func lastEditor(id int) int {
	if id < 1 {
		return model.SystemUserID
	}
	return id
}
