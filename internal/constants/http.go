package constants

// HTTP Header Names
const (
	HeaderAccept         = "Accept"
	HeaderAllow          = "Allow"
	HeaderCacheControl   = "Cache-Control"
	HeaderContentType    = "Content-Type"
	HeaderLocation       = "Location"
	HeaderAuthorization  = "Authorization"
	HeaderUserAgent      = "User-Agent"
	HeaderXPagination    = "X-Pagination"
	HeaderXRequestID     = "X-Request-ID"
	HeaderXTraceID       = "X-Trace-ID"
	HeaderXCorrelationID = "X-Correlation-ID"
)

// HTTP Content Types
const (
	ContentTypeJSON    = "application/json"
	ContentTypeHateoas = "application/vnd.wwi.hateoas+json"
	ContentTypeAPIRoot = "application/vnd.wwi.apiroot+json"
	ContentTypeCSV     = "text/csv"
)

// Common HTTP Error Messages
const (
	MsgUnauthorized     = "Unauthorized access"
	MsgNotFound         = "Resource not found"
	MsgMethodNotAllowed = "Method not allowed"
	MsgBadRequest       = "Invalid request"
	MsgInternalError    = "Internal server error"
	MsgTooManyRequests  = "Too many requests"
	MsgAcceptMissing    = "Accept header is missing"
	MsgMediaTypeInvalid = "Media type not present"
)

// Request Error Messages
const (
	MsgValidationFailed = "Validation failed"
	MsgInvalidJSON      = "Request body is not valid JSON"
	MsgInvalidID        = "Invalid identifier"
	MsgInvalidQuery     = "Invalid query parameters"
	MsgIDsRequired      = "Parameter ids is null"
)

// Gin context keys set by middleware
const (
	GinKeyValidatedBody = "validated_body"
	GinKeySubject       = "subject"
	GinKeyRequestID     = "request_id"
)
