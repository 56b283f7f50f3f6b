package dto

import (
	"strings"

	"github.com/koyif/invoicedash/internal/domain"
	"github.com/shopspring/decimal"
)

type FormMode int

const (
	ModeCreate FormMode = iota
	ModeUpdate
)

func (m FormMode) failureMessage() string {
	if m == ModeUpdate {
		return "Missing Fields. Failed to Update Invoice"
	}

	return "Missing Fields. Failed to Create Invoice."
}

// InvoiceForm is a submitted form as received, every field still a raw string.
type InvoiceForm struct {
	CustomerID string
	Amount     string
	Status     string
}

// ValidationError carries per-field errors plus a top-level message. It is a
// result value, not control flow: Validate never panics and the handler
// renders the fields inline.
type ValidationError struct {
	Message string              `json:"message"`
	Fields  map[string][]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InvoiceFields is the validated, coerced form.
type InvoiceFields struct {
	CustomerID string
	Amount     decimal.Decimal
	Status     domain.InvoiceStatus
}

var cents = decimal.NewFromInt(100)

// AmountCents converts the amount to integer minor units. Decimal arithmetic
// keeps repeated conversions exact where float math would drift.
func (f InvoiceFields) AmountCents() int64 {
	return f.Amount.Mul(cents).Round(0).IntPart()
}

func (f InvoiceForm) Validate(mode FormMode) (InvoiceFields, *ValidationError) {
	fieldErrs := map[string][]string{}

	customerID := strings.TrimSpace(f.CustomerID)
	if customerID == "" {
		fieldErrs["customerId"] = append(fieldErrs["customerId"], "Please select a customer")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(f.Amount))
	if err != nil || !amount.IsPositive() {
		fieldErrs["amount"] = append(fieldErrs["amount"], "Please enter an amount greater than $0.")
	}

	status := domain.InvoiceStatus(f.Status)
	if !status.Valid() {
		fieldErrs["status"] = append(fieldErrs["status"], "Please select an invoice status.")
	}

	if len(fieldErrs) > 0 {
		return InvoiceFields{}, &ValidationError{
			Message: mode.failureMessage(),
			Fields:  fieldErrs,
		}
	}

	return InvoiceFields{
		CustomerID: customerID,
		Amount:     amount,
		Status:     status,
	}, nil
}
