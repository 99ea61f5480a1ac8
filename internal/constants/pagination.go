package constants

// QueryParamFields carries the requested field list on links.
const QueryParamFields = "fields"

// Paging defaults, overridable through config
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 50
)

// Default orderings per collection
const (
	DefaultSupplierOrderBy    = "supplierId"
	DefaultCategoryOrderBy    = "supplierCategoryId"
	DefaultTransactionOrderBy = "supplierTransactionId"
)
