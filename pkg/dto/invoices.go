package dto

/**
  {
      "id": "3958dc9e-712f-4377-85e9-fec4b6a6442a",
      "customer": "Amy Burns",
      "email": "amy@burns.com",
      "amount": 5000,
      "status": "paid",
      "date": "2026-08-30"
  }
*/

type Invoice struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	Email    string `json:"email"`
	Amount   int64  `json:"amount"`
	Status   string `json:"status"`
	Date     string `json:"date"`
}

type InvoicePage struct {
	Invoices   []Invoice `json:"invoices"`
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
}
