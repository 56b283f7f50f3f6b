package domain

import "time"

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}

type Invoice struct {
	ID          string
	CustomerID  string
	AmountCents int64
	Status      InvoiceStatus
	Date        string
}

// InvoiceRow is an invoice joined with its customer, as rendered in the list view.
type InvoiceRow struct {
	Invoice
	CustomerName  string
	CustomerEmail string
}

type Customer struct {
	ID    string
	Name  string
	Email string
}

type User struct {
	ID           string
	Email        string
	Password     string
	RegisteredAt time.Time
}
