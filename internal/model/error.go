package model

// Standard error codes surfaced to API clients.
const (
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodeProductNotFound      = "PRODUCT_NOT_FOUND"
	ErrCodeLineItemNotFound     = "LINE_ITEM_NOT_FOUND"
	ErrCodeInvalidState         = "INVALID_STATE"
	ErrCodeInvalidPaymentMethod = "INVALID_PAYMENT_METHOD"
	ErrCodeInvalidTable         = "INVALID_TABLE"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// DomainError is a typed business-rule failure. None of these are
// transient; there is nothing to retry.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrOrderNotFound        = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrProductNotFound      = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrLineItemNotFound     = NewDomainError(ErrCodeLineItemNotFound, "Order has no line item for that product")
	ErrInvalidState         = NewDomainError(ErrCodeInvalidState, "Operation not valid for the order's current status")
	ErrInvalidPaymentMethod = NewDomainError(ErrCodeInvalidPaymentMethod, "Unknown payment method")
	ErrInvalidTable         = NewDomainError(ErrCodeInvalidTable, "Unknown table")
)
