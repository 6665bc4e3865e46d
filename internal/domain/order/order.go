// Package order implements the checkout draft: incremental accumulation of
// order fields across the two checkout forms, field-scoped validation, and
// assembly of the final submission payload.
package order

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Payment enumerates the supported payment methods.
type Payment string

const (
	PaymentOnline Payment = "online"
	PaymentCash   Payment = "cash"
)

// Order is the payload submitted to the remote commerce API. It is only
// produced by Draft.Build, which guarantees every validation condition holds.
type Order struct {
	Email   string
	Phone   string
	Address string
	Payment Payment
	Total   decimal.Decimal
	Items   []string
}

// Result is the remote system's acknowledgement of a created order.
type Result struct {
	ID    string
	Total decimal.Decimal
}

// ValidationError reports the ordered list of unmet submission conditions.
// It is never fatal: callers surface the conditions to the user and let them
// keep editing.
type ValidationError struct {
	Conditions []string
}

func (e *ValidationError) Error() string {
	return "order validation failed: " + strings.Join(e.Conditions, ", ")
}
