package models

import (
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeValidation represents invalid tool or prompt arguments
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration represents missing or invalid configuration
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeUpstream represents catalog API failures
	ErrorTypeUpstream ErrorType = "upstream"
	// ErrorTypeProvider represents chat completion provider failures
	ErrorTypeProvider ErrorType = "provider"
	// ErrorTypeInternal represents internal errors
	ErrorTypeInternal ErrorType = "internal"
)

// ErrMissingCredential is returned by the comparison dispatcher when no API key is configured.
var ErrMissingCredential = &AppError{
	Type:    ErrorTypeConfiguration,
	Message: "GITHUB_TOKEN environment variable is not set",
	Code:    "MISSING_CREDENTIAL",
}

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    string    `json:"code,omitzero"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap allows error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfiguration,
		Message: message,
		Cause:   cause,
	}
}

// NewUpstreamError creates a catalog upstream error
func NewUpstreamError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeUpstream,
		Message: message,
		Code:    "CATALOG_UNAVAILABLE",
		Cause:   cause,
	}
}

// NewProviderError creates a provider error
func NewProviderError(model, message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeProvider,
		Message: fmt.Sprintf("model %s error: %s", model, message),
		Code:    "PROVIDER_ERROR",
		Cause:   cause,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Cause:   cause,
	}
}
