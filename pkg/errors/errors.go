// Package errors holds the typed application errors shared by the fetcher, the
// monitoring core and both query surfaces.
package errors

import (
	stderrors "errors"
	"fmt"
)

type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota

	// caller supplied something invalid
	ErrorTypeValidation
	ErrorTypeNotFound

	// weather provider failures
	ErrorTypeCityNotFound
	ErrorTypeUpstream
	ErrorTypeMalformedResponse
	ErrorTypeUnknownFetch

	ErrorTypeStore
	ErrorTypeConfiguration
)

func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeCityNotFound:
		return "CITY_NOT_FOUND_ERROR"
	case ErrorTypeUpstream:
		return "UPSTREAM_ERROR"
	case ErrorTypeMalformedResponse:
		return "MALFORMED_RESPONSE_ERROR"
	case ErrorTypeUnknownFetch:
		return "UNKNOWN_FETCH_ERROR"
	case ErrorTypeStore:
		return "STORE_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// IsFetchFailure reports whether the type belongs to the weather provider family.
func (e ErrorType) IsFetchFailure() bool {
	switch e {
	case ErrorTypeCityNotFound, ErrorTypeUpstream, ErrorTypeMalformedResponse, ErrorTypeUnknownFetch:
		return true
	}
	return false
}

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, message)
}

func NewNotFoundError(message string) *AppError {
	return New(ErrorTypeNotFound, message)
}

func NewCityNotFoundError(city string) *AppError {
	return New(ErrorTypeCityNotFound, fmt.Sprintf("City not found: %s", city))
}

func NewUpstreamError(message string, cause error) *AppError {
	return Wrap(ErrorTypeUpstream, message, cause)
}

func NewMalformedResponseError(message string, cause error) *AppError {
	return Wrap(ErrorTypeMalformedResponse, message, cause)
}

func NewUnknownFetchError(message string, cause error) *AppError {
	return Wrap(ErrorTypeUnknownFetch, message, cause)
}

func NewStoreError(message string, cause error) *AppError {
	return Wrap(ErrorTypeStore, message, cause)
}

func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ErrorTypeConfiguration, message, cause)
}

// TypeOf returns the type of the first AppError in err's chain, or ErrorTypeUnknown.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

func Is(err error, errorType ErrorType) bool {
	return err != nil && TypeOf(err) == errorType
}

// AsAppError returns the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
