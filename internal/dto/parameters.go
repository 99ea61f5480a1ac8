package dto

import (
	"strings"

	"github.com/mdmamunfullstack/WideWorldImportersWebApi/config"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/internal/constants"
	"github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/shaping"
)

// RequestParameters are the collection query parameters shared by every
// list endpoint.
type RequestParameters struct {
	PageNumber int    `form:"pageNumber"`
	PageSize   int    `form:"pageSize"`
	OrderBy    string `form:"orderBy"`
	Fields     string `form:"fields"`
}

// Normalize applies defaults and clamps the page size to the configured
// maximum. defaultOrderBy is used when the client sent none.
func (p *RequestParameters) Normalize(paging config.PagingConfig, defaultOrderBy string) {
	if p.PageNumber < 1 {
		p.PageNumber = constants.DefaultPageNumber
	}

	defaultSize, maxSize := paging.DefaultPageSize, paging.MaxPageSize
	if defaultSize < 1 {
		defaultSize = constants.DefaultPageSize
	}
	if maxSize < 1 {
		maxSize = constants.MaxPageSize
	}
	if p.PageSize < 1 {
		p.PageSize = defaultSize
	}
	if p.PageSize > maxSize {
		p.PageSize = maxSize
	}

	if strings.TrimSpace(p.OrderBy) == "" {
		p.OrderBy = defaultOrderBy
	}
}

// TransactionParameters adds the payment method range and invoice search of
// the transaction list.
type TransactionParameters struct {
	RequestParameters
	MinPaymentMethod      int    `form:"minPaymentMethod,default=1"`
	MaxPaymentMethod      int    `form:"maxPaymentMethod,default=4"`
	SupplierInvoiceNumber string `form:"supplierInvoiceNumber"`
}

// PaymentMethodRange returns the requested range. Callers must Validate it.
func (p TransactionParameters) PaymentMethodRange() shaping.Range[int] {
	return shaping.Range[int]{Min: p.MinPaymentMethod, Max: p.MaxPaymentMethod}
}
