package domain

import "fmt"

// APIError represents a standardized API error with HTTP status code
type APIError struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

// ValidationMessages provides human-readable validation error messages
// These map validator tags to user-friendly messages
var ValidationMessages = map[string]string{
	"required": "This field is required",
	"email":    "Must be a valid email address",
	"max":      "Exceeds maximum length",
	"min":      "Below minimum length",
	"gte":      "Must be greater than or equal to minimum value",
	"gt":       "Must be greater than minimum value",
	"lte":      "Must be less than or equal to maximum value",
	"uuid":     "Must be a valid UUID",
	"oneof":    "Must be one of the allowed values",
	"numeric":  "Must be a numeric value",
	"len":      "Must be exactly the specified length",
	"dive":     "One or more items are invalid",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "Validation failed: " + tag
}

// Common error types for RFC 7807 Problem Details
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeNotFound      = "not_found"
	ErrorTypeBadRequest    = "bad_request"
	ErrorTypeConflict      = "conflict"
	ErrorTypeUnprocessable = "unprocessable"
	ErrorTypeInternal      = "internal_error"
)

// ValidationError is returned when a code handed to the invoice number codec
// is malformed. It is raised before any database work happens.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// AnnualCodeExhaustedError means all 999 annual codes of a year are taken.
// It needs operator action and is never retried or wrapped around.
type AnnualCodeExhaustedError struct {
	Year int
}

func (e *AnnualCodeExhaustedError) Error() string {
	return fmt.Sprintf("Annual code limit reached (%d) for %d: widen the annual code format or archive inactive clients", MaxAnnualCode, e.Year)
}

// PermanentCodeExhaustedError means the 5-digit permanent code space is used up.
type PermanentCodeExhaustedError struct{}

func (e *PermanentCodeExhaustedError) Error() string {
	return fmt.Sprintf("Permanent code limit reached (%d): the permanent code format must be widened", MaxPermanentCode)
}

// InvalidInvoiceNumberFormatError carries the string that failed to decode
type InvalidInvoiceNumberFormatError struct {
	Value string
}

func (e *InvalidInvoiceNumberFormatError) Error() string {
	return fmt.Sprintf("invalid invoice number format: %q (expected YYMMAAA-PPPPP-CC PMS)", e.Value)
}
