package constants

// Named routes. Link generation resolves hrefs by these names.
const (
	RouteGetRoot    = "GetRoot"
	RouteHealth     = "Health"
	RouteCacheStats = "GetCacheStats"
	RouteClearCache = "ClearAllCache"

	RouteGetSuppliers     = "GetSuppliers"
	RouteHeadSuppliers    = "HeadSuppliers"
	RouteSuppliersOptions = "GetSuppliersOptions"
	RouteGetSupplier      = "GetSupplier"
	RouteCreateSupplier   = "CreateSupplier"
	RouteUpdateSupplier   = "UpdateSupplier"
	RoutePatchSupplier    = "PartiallyUpdateSupplier"
	RouteDeleteSupplier   = "DeleteSupplier"

	RouteGetSupplierCategories      = "GetSupplierCategories"
	RouteGetSupplierCategory        = "GetSupplierCategory"
	RouteGetSupplierCategoryColl    = "GetSupplierCategoryCollection"
	RouteCreateSupplierCategory     = "CreateSupplierCategory"
	RouteCreateSupplierCategoryColl = "CreateSupplierCategoryCollection"
	RouteUpdateSupplierCategory     = "UpdateSupplierCategory"
	RoutePatchSupplierCategory      = "PartiallyUpdateSupplierCategory"
	RouteDeleteSupplierCategory     = "DeleteSupplierCategory"
	RouteGetSuppliersForCategory    = "GetSuppliersForCategory"
	RouteGetSupplierForCategory     = "GetSupplierForCategory"

	RouteGetTransactions       = "GetTransactionsForSupplier"
	RouteHeadTransactions      = "HeadTransactionsForSupplier"
	RouteGetTransaction        = "GetTransactionForSupplier"
	RouteCreateTransaction     = "CreateTransactionForSupplier"
	RouteCreateTransactionColl = "CreateTransactionCollectionForSupplier"
	RouteUpdateTransaction     = "UpdateTransactionForSupplier"
	RoutePatchTransaction      = "PartiallyUpdateTransactionForSupplier"
	RouteDeleteTransaction     = "DeleteTransactionForSupplier"
)

// Link relations
const (
	RelSelf = "self"
)
