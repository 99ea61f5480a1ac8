package model

import "time"

type Supplier struct {
	SupplierID               int       `gorm:"column:supplier_id;primaryKey;autoIncrement"`
	SupplierName             string    `gorm:"column:supplier_name;size:100;not null;uniqueIndex"`
	SupplierCategoryID       int       `gorm:"column:supplier_category_id;not null"`
	PrimaryContactPersonID   int       `gorm:"column:primary_contact_person_id;not null"`
	AlternateContactPersonID int       `gorm:"column:alternate_contact_person_id;not null"`
	DeliveryMethodID         *int      `gorm:"column:delivery_method_id"`
	DeliveryCityID           int       `gorm:"column:delivery_city_id;not null"`
	PostalCityID             int       `gorm:"column:postal_city_id;not null"`
	SupplierReference        string    `gorm:"column:supplier_reference;size:20"`
	BankAccountName          string    `gorm:"column:bank_account_name;size:50"`
	BankAccountBranch        string    `gorm:"column:bank_account_branch;size:50"`
	BankAccountCode          string    `gorm:"column:bank_account_code;size:20"`
	BankAccountNumber        string    `gorm:"column:bank_account_number;size:20"`
	BankInternationalCode    string    `gorm:"column:bank_international_code;size:20"`
	PaymentDays              int       `gorm:"column:payment_days;not null"`
	InternalComments         string    `gorm:"column:internal_comments;type:text"`
	PhoneNumber              string    `gorm:"column:phone_number;size:20;not null"`
	FaxNumber                string    `gorm:"column:fax_number;size:20;not null"`
	WebsiteURL               string    `gorm:"column:website_url;size:256;not null"`
	DeliveryAddressLine1     string    `gorm:"column:delivery_address_line1;size:60;not null"`
	DeliveryAddressLine2     string    `gorm:"column:delivery_address_line2;size:60"`
	DeliveryPostalCode       string    `gorm:"column:delivery_postal_code;size:10;not null"`
	PostalAddressLine1       string    `gorm:"column:postal_address_line1;size:60;not null"`
	PostalAddressLine2       string    `gorm:"column:postal_address_line2;size:60"`
	PostalPostalCode         string    `gorm:"column:postal_postal_code;size:10;not null"`
	LastEditedBy             int       `gorm:"column:last_edited_by;not null;default:1"`
	ValidFrom                time.Time `gorm:"column:valid_from;not null;autoCreateTime"`
	ValidTo                  time.Time `gorm:"column:valid_to;not null"`

	SupplierCategory *SupplierCategory    `gorm:"foreignKey:SupplierCategoryID"`
	Transactions     []SupplierTransaction `gorm:"foreignKey:SupplierID"`
}

func (Supplier) TableName() string { return "purchasing_suppliers" }
