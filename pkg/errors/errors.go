package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrDebtorNotFound     = errors.New("debtor not found")
	ErrInvalidDebtor      = errors.New("invalid debtor")
	ErrInvalidTerms       = errors.New("invalid loan terms")
	ErrInvalidFilter      = errors.New("invalid filter")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeDebtorNotFound = "DEBTOR_NOT_FOUND"
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeInvalidFilter  = "INVALID_FILTER"
	ErrCodeStorageError   = "STORAGE_ERROR"
	ErrCodeExportError    = "EXPORT_ERROR"
)

func WrapDebtorNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeDebtorNotFound,
		fmt.Sprintf("Debtor with ID %s not found", id),
		ErrDebtorNotFound,
	)
}

func WrapInvalidDebtor(reason string) *BusinessError {
	return NewBusinessError(ErrCodeValidation, reason, ErrInvalidDebtor)
}

func WrapInvalidTerms(reason string) *BusinessError {
	return NewBusinessError(ErrCodeValidation, reason, ErrInvalidTerms)
}

func WrapInvalidFilter(reason string) *BusinessError {
	return NewBusinessError(ErrCodeInvalidFilter, reason, ErrInvalidFilter)
}

// WrapStorageError marks a backend failure; the original cause stays reachable through errors.Is
func WrapStorageError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeStorageError,
		"storage operation failed",
		fmt.Errorf("%w: %w", ErrStorageUnavailable, err),
	)
}

func WrapExportError(err error) *BusinessError {
	return NewBusinessError(ErrCodeExportError, "export failed", err)
}

// CodeOf returns the business code carried by err, or "" when err is not a BusinessError
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// MessageOf returns the client facing message carried by err
func MessageOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Message
	}
	return ""
}

// IsValidation reports whether err is a rejected input
func IsValidation(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeValidation || code == ErrCodeInvalidFilter
}
