package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrClientNotFound is returned when a client is not found
	ErrClientNotFound = errors.New("client not found")

	// ErrClientInactive is returned when an operation needs an active client
	ErrClientInactive = errors.New("client is inactive")

	// ErrInvoiceNotFound is returned when an invoice is not found
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvalidStatusTransition is returned for a disallowed invoice status change
	ErrInvalidStatusTransition = errors.New("invalid invoice status transition")

	// ErrInvalidIssuingCompany is returned for a company outside DET, FZCO, DMCC
	ErrInvalidIssuingCompany = errors.New("invalid issuing company")
)
