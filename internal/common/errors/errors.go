// Package errors provides standardized error handling for the address entry workflows.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeConfiguration   ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeTransport       ErrorCode = "TRANSPORT_ERROR"
	ErrCodeFormat          ErrorCode = "FORMAT_ERROR"
	ErrCodeNotFound        ErrorCode = "ADDRESS_NOT_FOUND"
	ErrCodeSelection       ErrorCode = "SELECTION_ERROR"
	ErrCodeMalformedRecord ErrorCode = "MALFORMED_RECORD"
	ErrCodeStore           ErrorCode = "STORE_ERROR"
	ErrCodeBusy            ErrorCode = "SEARCH_IN_PROGRESS"
)

// StandardError represents a structured application error. Message is the
// user-facing text the rendering layer displays; Details carries internal
// context for logs only.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewConfigurationError reports a missing lookup base URL. Fatal for the
// submission; nothing the user can correct locally.
func NewConfigurationError() *StandardError {
	return &StandardError{
		Code:      ErrCodeConfiguration,
		Message:   "BASE API URL is not defined",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMandatoryFieldsError reports blank search inputs.
func NewMandatoryFieldsError() *StandardError {
	return &StandardError{
		Code:      ErrCodeValidation,
		Message:   "Post code and house number are mandatory fields",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransportError reports a failed lookup round trip (network error or
// non-2xx status).
func NewTransportError(err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeTransport,
		Message:   "Failed to fetch addresses",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidResponseFormatError reports a lookup body without the addresses field.
func NewInvalidResponseFormatError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeFormat,
		Message:   "Invalid response format",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAddressesNotArrayError reports an addresses field that is not a sequence.
func NewAddressesNotArrayError() *StandardError {
	return &StandardError{
		Code:      ErrCodeFormat,
		Message:   "Addresses should be an array",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoAddressesFoundError reports an empty lookup result.
func NewNoAddressesFoundError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   "No addresses found for the given postcode and house number",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoSelectionError reports a person submission without a selected address.
func NewNoSelectionError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSelection,
		Message:   "No address selected, try to select an address or find one if you haven't",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSelectionNotFoundError reports a selected id absent from the current
// result set, e.g. after a repeated search replaced it.
func NewSelectionNotFoundError(selectedID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSelection,
		Message:   "Selected address not found",
		Details:   fmt.Sprintf("selectedAddressId: %s", selectedID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMandatoryNamesError reports blank person name fields.
func NewMandatoryNamesError() *StandardError {
	return &StandardError{
		Code:      ErrCodeValidation,
		Message:   "First name and last name fields mandatory!",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedRecordError reports a lookup record missing the fields needed
// for identity derivation. Surfaced by the search workflow like a format
// failure: the result set stays empty.
func NewMalformedRecordError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedRecord,
		Message:   "Invalid response format",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreError reports a persistence failure.
func NewStoreError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStore,
		Message:   "Failed to save address book entry",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchInProgressError rejects an overlapping search submission.
func NewSearchInProgressError() *StandardError {
	return &StandardError{
		Code:      ErrCodeBusy,
		Message:   "A search is already in progress",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsCode reports whether err is a StandardError with the given code.
func IsCode(err error, code ErrorCode) bool {
	stdErr, ok := err.(*StandardError)
	return ok && stdErr.Code == code
}

// AsStandard converts any error into a StandardError, wrapping unknown
// errors as transport failures.
func AsStandard(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return NewTransportError(err)
}
