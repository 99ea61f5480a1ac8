package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/model"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/shaping"
)

type SupplierTransactionDto struct {
	SupplierTransactionID int             `json:"supplierTransactionId"`
	SupplierID            int             `json:"supplierId"`
	TransactionTypeID     int             `json:"transactionTypeId"`
	PurchaseOrderID       *int            `json:"purchaseOrderId"`
	PaymentMethodID       *int            `json:"paymentMethodId"`
	SupplierInvoiceNumber string          `json:"supplierInvoiceNumber"`
	TransactionDate       time.Time       `json:"transactionDate"`
	AmountExcludingTax    decimal.Decimal `json:"amountExcludingTax"`
	TaxAmount             decimal.Decimal `json:"taxAmount"`
	TransactionAmount     decimal.Decimal `json:"transactionAmount"`
	OutstandingBalance    decimal.Decimal `json:"outstandingBalance"`
	FinalizationDate      *time.Time      `json:"finalizationDate"`
	IsFinalized           bool            `json:"isFinalized"`
	LastEditedBy          int             `json:"lastEditedBy"`
	LastEditedWhen        time.Time       `json:"lastEditedWhen"`
}

type SupplierTransactionForCreationDto struct {
	TransactionTypeID     int             `json:"transactionTypeId" binding:"required,gt=0"`
	PurchaseOrderID       *int            `json:"purchaseOrderId" binding:"omitempty,gt=0"`
	PaymentMethodID       *int            `json:"paymentMethodId" binding:"omitempty,gte=1,lte=4"`
	SupplierInvoiceNumber string          `json:"supplierInvoiceNumber" binding:"max=20"`
	TransactionDate       time.Time       `json:"transactionDate" binding:"required"`
	AmountExcludingTax    decimal.Decimal `json:"amountExcludingTax" binding:"gte=0"`
	TaxAmount             decimal.Decimal `json:"taxAmount" binding:"gte=0"`
	OutstandingBalance    decimal.Decimal `json:"outstandingBalance" binding:"gte=0"`
	FinalizationDate      *time.Time      `json:"finalizationDate"`
	LastEditedBy          int             `json:"lastEditedBy" binding:"omitempty,gt=0"`
}

type SupplierTransactionForUpdateDto SupplierTransactionForCreationDto

// SupplierTransactionFields is the shaping table of SupplierTransactionDto.
var SupplierTransactionFields = shaping.MustNewFieldTable("SupplierTransactionDto", "supplierTransactionId",
	shaping.Ordered("supplierTransactionId", func(t SupplierTransactionDto) int { return t.SupplierTransactionID }),
	shaping.Ordered("supplierId", func(t SupplierTransactionDto) int { return t.SupplierID }),
	shaping.Ordered("transactionTypeId", func(t SupplierTransactionDto) int { return t.TransactionTypeID }),
	shaping.OptionalOrdered("purchaseOrderId", func(t SupplierTransactionDto) *int { return t.PurchaseOrderID }),
	shaping.OptionalOrdered("paymentMethodId", func(t SupplierTransactionDto) *int { return t.PaymentMethodID }),
	shaping.Ordered("supplierInvoiceNumber", func(t SupplierTransactionDto) string { return t.SupplierInvoiceNumber }),
	shaping.Custom("transactionDate", func(t SupplierTransactionDto) time.Time { return t.TransactionDate }, time.Time.Compare),
	shaping.Custom("amountExcludingTax", func(t SupplierTransactionDto) decimal.Decimal { return t.AmountExcludingTax }, decimal.Decimal.Cmp),
	shaping.Custom("taxAmount", func(t SupplierTransactionDto) decimal.Decimal { return t.TaxAmount }, decimal.Decimal.Cmp),
	shaping.Custom("transactionAmount", func(t SupplierTransactionDto) decimal.Decimal { return t.TransactionAmount }, decimal.Decimal.Cmp),
	shaping.Custom("outstandingBalance", func(t SupplierTransactionDto) decimal.Decimal { return t.OutstandingBalance }, decimal.Decimal.Cmp),
	shaping.OptionalCustom("finalizationDate", func(t SupplierTransactionDto) *time.Time { return t.FinalizationDate }, time.Time.Compare),
	shaping.Custom("isFinalized", func(t SupplierTransactionDto) bool { return t.IsFinalized }, shaping.CompareBool),
	shaping.Ordered("lastEditedBy", func(t SupplierTransactionDto) int { return t.LastEditedBy }),
	shaping.Custom("lastEditedWhen", func(t SupplierTransactionDto) time.Time { return t.LastEditedWhen }, time.Time.Compare),
)

// PaymentMethodOf reports the payment method of t, false when none is set.
func PaymentMethodOf(t SupplierTransactionDto) (int, bool) {
	if t.PaymentMethodID == nil {
		return 0, false
	}
	return *t.PaymentMethodID, true
}

func InvoiceNumberOf(t SupplierTransactionDto) string { return t.SupplierInvoiceNumber }

func NewSupplierTransactionDto(m *model.SupplierTransaction) SupplierTransactionDto {
	return SupplierTransactionDto{
		SupplierTransactionID: m.SupplierTransactionID,
		SupplierID:            m.SupplierID,
		TransactionTypeID:     m.TransactionTypeID,
		PurchaseOrderID:       m.PurchaseOrderID,
		PaymentMethodID:       m.PaymentMethodID,
		SupplierInvoiceNumber: m.SupplierInvoiceNumber,
		TransactionDate:       time.Time(m.TransactionDate),
		AmountExcludingTax:    m.AmountExcludingTax,
		TaxAmount:             m.TaxAmount,
		TransactionAmount:     m.TransactionAmount,
		OutstandingBalance:    m.OutstandingBalance,
		FinalizationDate:      fromDate(m.FinalizationDate),
		IsFinalized:           m.IsFinalized(),
		LastEditedBy:          m.LastEditedBy,
		LastEditedWhen:        m.LastEditedWhen,
	}
}

func NewSupplierTransactionDtos(items []model.SupplierTransaction) []SupplierTransactionDto {
	out := make([]SupplierTransactionDto, len(items))
	for i := range items {
		out[i] = NewSupplierTransactionDto(&items[i])
	}
	return out
}

func (d SupplierTransactionForCreationDto) ToModel(supplierID int) model.SupplierTransaction {
	m := model.SupplierTransaction{SupplierID: supplierID}
	SupplierTransactionForUpdateDto(d).ApplyTo(&m)
	return m
}

// ApplyTo overwrites every writable field of m and recomputes the total.
func (d SupplierTransactionForUpdateDto) ApplyTo(m *model.SupplierTransaction) {
	m.TransactionTypeID = d.TransactionTypeID
	m.PurchaseOrderID = d.PurchaseOrderID
	m.PaymentMethodID = d.PaymentMethodID
	m.SupplierInvoiceNumber = d.SupplierInvoiceNumber
	m.TransactionDate = datatypes.Date(d.TransactionDate)
	m.AmountExcludingTax = d.AmountExcludingTax
	m.TaxAmount = d.TaxAmount
	m.OutstandingBalance = d.OutstandingBalance
	m.FinalizationDate = toDate(d.FinalizationDate)
	m.LastEditedBy = lastEditor(d.LastEditedBy)
	m.Recalculate()
}

func NewSupplierTransactionForUpdateDto(m *model.SupplierTransaction) SupplierTransactionForUpdateDto {
	return SupplierTransactionForUpdateDto{
		TransactionTypeID:     m.TransactionTypeID,
		PurchaseOrderID:       m.PurchaseOrderID,
		PaymentMethodID:       m.PaymentMethodID,
		SupplierInvoiceNumber: m.SupplierInvoiceNumber,
		TransactionDate:       time.Time(m.TransactionDate),
		AmountExcludingTax:    m.AmountExcludingTax,
		TaxAmount:             m.TaxAmount,
		OutstandingBalance:    m.OutstandingBalance,
		FinalizationDate:      fromDate(m.FinalizationDate),
		LastEditedBy:          m.LastEditedBy,
	}
}

func fromDate(d *datatypes.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}

func toDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(*t)
	return &d
}
