package errors

import (
	stderrors "errors"
	"fmt"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nfe *NotFoundError
	if stderrors.As(err, &nfe) {
		return nfe, true
	}
	return nil, false
}

// ForbiddenError is returned when a row exists but belongs to another tenant.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func IsForbiddenError(err error) (*ForbiddenError, bool) {
	var fe *ForbiddenError
	if stderrors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// InsufficientStockError reports a debit that would drive a product's stock below zero.
type InsufficientStockError struct {
	ProductID   int
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s: available %d, requested %d", e.ProductName, e.Available, e.Requested)
}

func NewInsufficientStockError(productID int, productName string, available, requested int) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID:   productID,
		ProductName: productName,
		Available:   available,
		Requested:   requested,
	}
}

func IsInsufficientStockError(err error) (*InsufficientStockError, bool) {
	var ise *InsufficientStockError
	if stderrors.As(err, &ise) {
		return ise, true
	}
	return nil, false
}

// ConfigurationError marks a malformed account, e.g. an employee without an owner.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{Message: message}
}

func IsConfigurationError(err error) (*ConfigurationError, bool) {
	var ce *ConfigurationError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// TransientStoreError wraps lock timeouts, deadlocks and lost connections.
// Nothing of the failed operation survives, so callers may retry it.
type TransientStoreError struct {
	Message string
	Cause   error
}

func (e *TransientStoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TransientStoreError) Unwrap() error {
	return e.Cause
}

func NewTransientStoreError(message string, cause error) *TransientStoreError {
	return &TransientStoreError{
		Message: message,
		Cause:   cause,
	}
}

func IsTransientStoreError(err error) (*TransientStoreError, bool) {
	var te *TransientStoreError
	if stderrors.As(err, &te) {
		return te, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}

func IsInternalError(err error) (*InternalError, bool) {
	var ie *InternalError
	if stderrors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// IsDomainError reports whether err already carries one of the kinds above
// and can be surfaced without further classification.
func IsDomainError(err error) bool {
	if _, ok := IsNotFoundError(err); ok {
		return true
	}
	if _, ok := IsForbiddenError(err); ok {
		return true
	}
	if _, ok := IsConflictError(err); ok {
		return true
	}
	if _, ok := IsValidationError(err); ok {
		return true
	}
	if _, ok := IsInsufficientStockError(err); ok {
		return true
	}
	if _, ok := IsConfigurationError(err); ok {
		return true
	}
	if _, ok := IsTransientStoreError(err); ok {
		return true
	}
	_, ok := IsInternalError(err)
	return ok
}

// Kind returns the stable, client-facing code for err.
func Kind(err error) string {
	switch {
	case isKind[*NotFoundError](err):
		return "NOT_FOUND"
	case isKind[*ForbiddenError](err):
		return "FORBIDDEN"
	case isKind[*ConflictError](err):
		return "CONFLICT"
	case isKind[*ValidationError](err):
		return "VALIDATION_ERROR"
	case isKind[*InsufficientStockError](err):
		return "INSUFFICIENT_STOCK"
	case isKind[*ConfigurationError](err):
		return "CONFIGURATION_ERROR"
	case isKind[*TransientStoreError](err):
		return "TRANSIENT_STORE_FAILURE"
	default:
		return "INTERNAL_ERROR"
	}
}

func isKind[T error](err error) bool {
	var target T
	return stderrors.As(err, &target)
}
