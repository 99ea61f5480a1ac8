package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type SupplierTransaction struct {
	SupplierTransactionID int             `gorm:"column:supplier_transaction_id;primaryKey;autoIncrement"`
	SupplierID            int             `gorm:"column:supplier_id;not null"`
	TransactionTypeID     int             `gorm:"column:transaction_type_id;not null"`
	PurchaseOrderID       *int            `gorm:"column:purchase_order_id"`
	PaymentMethodID       *int            `gorm:"column:payment_method_id"`
	SupplierInvoiceNumber string          `gorm:"column:supplier_invoice_number;size:20"`
	TransactionDate       datatypes.Date  `gorm:"column:transaction_date;not null"`
	AmountExcludingTax    decimal.Decimal `gorm:"column:amount_excluding_tax;type:numeric(18,2);not null"`
	TaxAmount             decimal.Decimal `gorm:"column:tax_amount;type:numeric(18,2);not null"`
	TransactionAmount     decimal.Decimal `gorm:"column:transaction_amount;type:numeric(18,2);not null"`
	OutstandingBalance    decimal.Decimal `gorm:"column:outstanding_balance;type:numeric(18,2);not null"`
	FinalizationDate      *datatypes.Date `gorm:"column:finalization_date"`
	LastEditedBy          int             `gorm:"column:last_edited_by;not null;default:1"`
	LastEditedWhen        time.Time       `gorm:"column:last_edited_when;not null;autoUpdateTime"`
}

func (SupplierTransaction) TableName() string { return "purchasing_supplier_transactions" }

// IsFinalized is derived the way the WWI schema computes its column.
func (t *SupplierTransaction) IsFinalized() bool {
	return t.FinalizationDate != nil
}

// Recalculate derives the total from its parts.
func (t *SupplierTransaction) Recalculate() {
	t.TransactionAmount = t.AmountExcludingTax.Add(t.TaxAmount)
}
