package validation

var customValidationMessages = map[string]map[string]string{
	"supplierName": {
		"required": "supplier name is required",
		"max":      "supplier name must be at most 100 characters",
	},
	"supplierCategoryName": {
		"required": "supplier category name is required",
		"max":      "supplier category name must be at most 50 characters",
	},
	"supplierCategoryId": {
		"required": "supplier category is required",
		"gt":       "supplier category must be a positive id",
	},
	"paymentMethodId": {
		"required": "payment method is required",
		"gte":      "payment method must be between 1 and 4",
		"lte":      "payment method must be between 1 and 4",
	},
	"transactionTypeId": {
		"required": "transaction type is required",
	},
	"amountExcludingTax": {
		"gte": "amount excluding tax cannot be negative",
	},
	"taxAmount": {
		"gte": "tax amount cannot be negative",
	},
	"websiteUrl": {
		"url": "website must be a valid URL",
	},
}

// CustomMessage returns the field specific messages keyed by validation tag.
func CustomMessage(field string) map[string]string {
	return customValidationMessages[field]
}
