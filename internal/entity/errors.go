package entity

import "errors"

// Machine-distinguishable rejection kinds carried in API error bodies.
const (
	KindEmptyCart          = "empty_cart"
	KindSelfPurchase       = "self_purchase"
	KindInsufficientFunds  = "insufficient_funds"
	KindDuplicateItem      = "duplicate_item"
	KindProductUnavailable = "product_unavailable"
	KindDuplicateRequest   = "duplicate_request"
)

// BusinessError is a business-rule rejection. It is reported to the caller
// with its kind and detail and is never retried automatically.
type BusinessError struct {
	Kind   string
	Detail string
}

func (e *BusinessError) Error() string { return e.Kind + ": " + e.Detail }

func NewBusinessError(kind, detail string) *BusinessError {
	return &BusinessError{Kind: kind, Detail: detail}
}

// ValidationError marks malformed or missing input.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

func NewValidationError(detail string) *ValidationError {
	return &ValidationError{Detail: detail}
}

var (
	// ErrNotFound is returned when a referenced resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden is returned when the actor may not touch the resource.
	ErrForbidden = errors.New("operation not allowed")
	// ErrConflict signals a lost concurrent-sale race inside the settlement
	// transaction. The caller retries once before surfacing it.
	ErrConflict = errors.New("concurrent sale conflict")
)
