package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
	Fields  map[string]string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches domain errors by code, so a wrapped error still matches its
// predefined sentinel.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if errors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// WithMessage copies domainErr with a more specific message.
func WithMessage(domainErr *DomainError, message string) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: message,
		Err:     domainErr.Err,
	}
}

// WithFields copies domainErr with one message per failing field.
func WithFields(domainErr *DomainError, fields map[string]string) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     domainErr.Err,
		Fields:  fields,
	}
}

// GetFieldErrors returns the field messages carried by err, if any.
func GetFieldErrors(err error) map[string]string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Fields
	}
	return nil
}

// Predefined domain errors
var (
	// Resource errors
	ErrSupplierNotFound            = NewDomainError("SUPPLIER_NOT_FOUND", "supplier not found")
	ErrSupplierCategoryNotFound    = NewDomainError("SUPPLIER_CATEGORY_NOT_FOUND", "supplier category not found")
	ErrSupplierTransactionNotFound = NewDomainError("SUPPLIER_TRANSACTION_NOT_FOUND", "supplier transaction not found")

	// Authentication errors
	ErrUnauthorized = NewDomainError("UNAUTHORIZED", "unauthorized")
	ErrInvalidToken = NewDomainError("INVALID_TOKEN", "invalid or expired token")

	// Request errors
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "invalid input")
	ErrInvalidRange     = NewDomainError("INVALID_RANGE", "Max payment method can't be less than min payment method.")
	ErrInvalidMediaType = NewDomainError("INVALID_MEDIA_TYPE", "media type not present")
	ErrInvalidPatch     = NewDomainError("INVALID_PATCH", "invalid patch document")
	ErrValidation       = NewDomainError("VALIDATION_FAILED", "validation failed")

	// System errors
	ErrInternal           = NewDomainError("INTERNAL_ERROR", "internal server error")
	ErrServiceUnavailable = NewDomainError("SERVICE_UNAVAILABLE", "service unavailable")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	case "INVALID_INPUT", "INVALID_RANGE", "INVALID_MEDIA_TYPE":
		return http.StatusBadRequest

	case "UNAUTHORIZED", "INVALID_TOKEN":
		return http.StatusUnauthorized

	case "SUPPLIER_NOT_FOUND", "SUPPLIER_CATEGORY_NOT_FOUND", "SUPPLIER_TRANSACTION_NOT_FOUND":
		return http.StatusNotFound

	case "INVALID_PATCH", "VALIDATION_FAILED":
		return http.StatusUnprocessableEntity

	case "SERVICE_UNAVAILABLE":
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
