package dto

import (
	"strings"
	"time"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/model"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/shaping"
)

// SupplierDto is the public view of a supplier. Bank details and internal
// comments are write-only.
type SupplierDto struct {
	SupplierID               int       `json:"supplierId"`
	SupplierName             string    `json:"supplierName"`
	SupplierCategoryID       int       `json:"supplierCategoryId"`
	PrimaryContactPersonID   int       `json:"primaryContactPersonId"`
	AlternateContactPersonID int       `json:"alternateContactPersonId"`
	DeliveryMethodID         *int      `json:"deliveryMethodId"`
	DeliveryCityID           int       `json:"deliveryCityId"`
	PostalCityID             int       `json:"postalCityId"`
	SupplierReference        string    `json:"supplierReference"`
	PaymentDays              int       `json:"paymentDays"`
	PhoneNumber              string    `json:"phoneNumber"`
	FaxNumber                string    `json:"faxNumber"`
	WebsiteURL               string    `json:"websiteUrl"`
	DeliveryAddressLine1     string    `json:"deliveryAddressLine1"`
	DeliveryAddressLine2     string    `json:"deliveryAddressLine2"`
	DeliveryPostalCode       string    `json:"deliveryPostalCode"`
	PostalAddressLine1       string    `json:"postalAddressLine1"`
	PostalAddressLine2       string    `json:"postalAddressLine2"`
	PostalPostalCode         string    `json:"postalPostalCode"`
	LastEditedBy             int       `json:"lastEditedBy"`
	ValidFrom                time.Time `json:"validFrom"`
	ValidTo                  time.Time `json:"validTo"`
}

type SupplierForCreationDto struct {
	SupplierName             string `json:"supplierName" binding:"required,max=100"`
	SupplierCategoryID       int    `json:"supplierCategoryId" binding:"omitempty,gt=0"`
	PrimaryContactPersonID   int    `json:"primaryContactPersonId" binding:"omitempty,gt=0"`
	AlternateContactPersonID int    `json:"alternateContactPersonId" binding:"omitempty,gt=0"`
	DeliveryMethodID         *int   `json:"deliveryMethodId" binding:"omitempty,gt=0"`
	DeliveryCityID           int    `json:"deliveryCityId" binding:"omitempty,gt=0"`
	PostalCityID             int    `json:"postalCityId" binding:"omitempty,gt=0"`
	SupplierReference        string `json:"supplierReference" binding:"max=20"`
	BankAccountName          string `json:"bankAccountName" binding:"max=50"`
	BankAccountBranch        string `json:"bankAccountBranch" binding:"max=50"`
	BankAccountCode          string `json:"bankAccountCode" binding:"max=20"`
	BankAccountNumber        string `json:"bankAccountNumber" binding:"max=20"`
	BankInternationalCode    string `json:"bankInternationalCode" binding:"max=20"`
	PaymentDays              int    `json:"paymentDays" binding:"gte=0"`
	InternalComments         string `json:"internalComments"`
	PhoneNumber              string `json:"phoneNumber" binding:"max=20"`
	FaxNumber                string `json:"faxNumber" binding:"max=20"`
	WebsiteURL               string `json:"websiteUrl" binding:"omitempty,url,max=256"`
	DeliveryAddressLine1     string `json:"deliveryAddressLine1" binding:"max=60"`
	DeliveryAddressLine2     string `json:"deliveryAddressLine2" binding:"max=60"`
	DeliveryPostalCode       string `json:"deliveryPostalCode" binding:"max=10"`
	PostalAddressLine1       string `json:"postalAddressLine1" binding:"max=60"`
	PostalAddressLine2       string `json:"postalAddressLine2" binding:"max=60"`
	PostalPostalCode         string `json:"postalPostalCode" binding:"max=10"`
	LastEditedBy             int    `json:"lastEditedBy" binding:"omitempty,gt=0"`
}

// SupplierForUpdateDto replaces every writable field. It is also the
// document JSON patches are applied to.
type SupplierForUpdateDto SupplierForCreationDto

// SupplierFields is the shaping table of SupplierDto.
var SupplierFields = shaping.MustNewFieldTable("SupplierDto", "supplierId",
	shaping.Ordered("supplierId", func(s SupplierDto) int { return s.SupplierID }),
	shaping.Ordered("supplierName", func(s SupplierDto) string { return s.SupplierName }),
	shaping.Ordered("supplierCategoryId", func(s SupplierDto) int { return s.SupplierCategoryID }),
	shaping.Ordered("primaryContactPersonId", func(s SupplierDto) int { return s.PrimaryContactPersonID }),
	shaping.Ordered("alternateContactPersonId", func(s SupplierDto) int { return s.AlternateContactPersonID }),
	shaping.OptionalOrdered("deliveryMethodId", func(s SupplierDto) *int { return s.DeliveryMethodID }),
	shaping.Ordered("deliveryCityId", func(s SupplierDto) int { return s.DeliveryCityID }),
	shaping.Ordered("postalCityId", func(s SupplierDto) int { return s.PostalCityID }),
	shaping.Ordered("supplierReference", func(s SupplierDto) string { return s.SupplierReference }),
	shaping.Ordered("paymentDays", func(s SupplierDto) int { return s.PaymentDays }),
	shaping.Ordered("phoneNumber", func(s SupplierDto) string { return s.PhoneNumber }),
	shaping.Ordered("faxNumber", func(s SupplierDto) string { return s.FaxNumber }),
	shaping.Ordered("websiteUrl", func(s SupplierDto) string { return s.WebsiteURL }),
	shaping.Ordered("deliveryAddressLine1", func(s SupplierDto) string { return s.DeliveryAddressLine1 }),
	shaping.Ordered("deliveryAddressLine2", func(s SupplierDto) string { return s.DeliveryAddressLine2 }),
	shaping.Ordered("deliveryPostalCode", func(s SupplierDto) string { return s.DeliveryPostalCode }),
	shaping.Ordered("postalAddressLine1", func(s SupplierDto) string { return s.PostalAddressLine1 }),
	shaping.Ordered("postalAddressLine2", func(s SupplierDto) string { return s.PostalAddressLine2 }),
	shaping.Ordered("postalPostalCode", func(s SupplierDto) string { return s.PostalPostalCode }),
	shaping.Ordered("lastEditedBy", func(s SupplierDto) int { return s.LastEditedBy }),
	shaping.Custom("validFrom", func(s SupplierDto) time.Time { return s.ValidFrom }, time.Time.Compare),
	shaping.Custom("validTo", func(s SupplierDto) time.Time { return s.ValidTo }, time.Time.Compare),
)

func NewSupplierDto(m *model.Supplier) SupplierDto {
	return SupplierDto{
		SupplierID:               m.SupplierID,
		SupplierName:             m.SupplierName,
		SupplierCategoryID:       m.SupplierCategoryID,
		PrimaryContactPersonID:   m.PrimaryContactPersonID,
		AlternateContactPersonID: m.AlternateContactPersonID,
		DeliveryMethodID:         m.DeliveryMethodID,
		DeliveryCityID:           m.DeliveryCityID,
		PostalCityID:             m.PostalCityID,
		SupplierReference:        m.SupplierReference,
		PaymentDays:              m.PaymentDays,
		PhoneNumber:              m.PhoneNumber,
		FaxNumber:                m.FaxNumber,
		WebsiteURL:               m.WebsiteURL,
		DeliveryAddressLine1:     m.DeliveryAddressLine1,
		DeliveryAddressLine2:     m.DeliveryAddressLine2,
		DeliveryPostalCode:       m.DeliveryPostalCode,
		PostalAddressLine1:       m.PostalAddressLine1,
		PostalAddressLine2:       m.PostalAddressLine2,
		PostalPostalCode:         m.PostalPostalCode,
		LastEditedBy:             m.LastEditedBy,
		ValidFrom:                m.ValidFrom,
		ValidTo:                  m.ValidTo,
	}
}

func NewSupplierDtos(items []model.Supplier) []SupplierDto {
	out := make([]SupplierDto, len(items))
	for i := range items {
		out[i] = NewSupplierDto(&items[i])
	}
	return out
}

func (d SupplierForCreationDto) ToModel() model.Supplier {
	m := model.Supplier{ValidTo: model.EndOfTime}
	SupplierForUpdateDto(d).ApplyTo(&m)
	return m
}

// ApplyTo overwrites every writable field of m. A zero category keeps the
// current one.
func (d SupplierForUpdateDto) ApplyTo(m *model.Supplier) {
	m.SupplierName = strings.TrimSpace(d.SupplierName)
	if d.SupplierCategoryID > 0 {
		m.SupplierCategoryID = d.SupplierCategoryID
	}
	m.PrimaryContactPersonID = d.PrimaryContactPersonID
	m.AlternateContactPersonID = d.AlternateContactPersonID
	m.DeliveryMethodID = d.DeliveryMethodID
	m.DeliveryCityID = d.DeliveryCityID
	m.PostalCityID = d.PostalCityID
	m.SupplierReference = d.SupplierReference
	m.BankAccountName = d.BankAccountName
	m.BankAccountBranch = d.BankAccountBranch
	m.BankAccountCode = d.BankAccountCode
	m.BankAccountNumber = d.BankAccountNumber
	m.BankInternationalCode = d.BankInternationalCode
	m.PaymentDays = d.PaymentDays
	m.InternalComments = d.InternalComments
	m.PhoneNumber = d.PhoneNumber
	m.FaxNumber = d.FaxNumber
	m.WebsiteURL = d.WebsiteURL
	m.DeliveryAddressLine1 = d.DeliveryAddressLine1
	m.DeliveryAddressLine2 = d.DeliveryAddressLine2
	m.DeliveryPostalCode = d.DeliveryPostalCode
	m.PostalAddressLine1 = d.PostalAddressLine1
	m.PostalAddressLine2 = d.PostalAddressLine2
	m.PostalPostalCode = d.PostalPostalCode
	m.LastEditedBy = lastEditor(d.LastEditedBy)
}

func NewSupplierForUpdateDto(m *model.Supplier) SupplierForUpdateDto {
	return SupplierForUpdateDto{
		SupplierName:             m.SupplierName,
		SupplierCategoryID:       m.SupplierCategoryID,
		PrimaryContactPersonID:   m.PrimaryContactPersonID,
		AlternateContactPersonID: m.AlternateContactPersonID,
		DeliveryMethodID:         m.DeliveryMethodID,
		DeliveryCityID:           m.DeliveryCityID,
		PostalCityID:             m.PostalCityID,
		SupplierReference:        m.SupplierReference,
		BankAccountName:          m.BankAccountName,
		BankAccountBranch:        m.BankAccountBranch,
		BankAccountCode:          m.BankAccountCode,
		BankAccountNumber:        m.BankAccountNumber,
		BankInternationalCode:    m.BankInternationalCode,
		PaymentDays:              m.PaymentDays,
		InternalComments:         m.InternalComments,
		PhoneNumber:              m.PhoneNumber,
		FaxNumber:                m.FaxNumber,
		WebsiteURL:               m.WebsiteURL,
		DeliveryAddressLine1:     m.DeliveryAddressLine1,
		DeliveryAddressLine2:     m.DeliveryAddressLine2,
		DeliveryPostalCode:       m.DeliveryPostalCode,
		PostalAddressLine1:       m.PostalAddressLine1,
		PostalAddressLine2:       m.PostalAddressLine2,
		PostalPostalCode:         m.PostalPostalCode,
		LastEditedBy:             m.LastEditedBy,
	}
}
