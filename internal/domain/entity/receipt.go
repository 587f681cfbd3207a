package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the venue header printed at the top of a receipt.
type ReceiptHeader struct {
	VenueName string `json:"venue_name"`
	Tagline   string `json:"tagline,omitempty"`
	URL       string `json:"url,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	Note      string          `json:"note,omitempty"`
}

// Receipt is a value object representing a printable receipt. It is not
// a database entity; it is composed from order data at print time.
type Receipt struct {
	Header        ReceiptHeader   `json:"header"`
	OrderNumber   string          `json:"order_number"`
	Date          string          `json:"date"`
	Cashier       string          `json:"cashier,omitempty"`
	Customer      string          `json:"customer,omitempty"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	Items         []ReceiptItem   `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	FooterLines   []string        `json:"footer_lines,omitempty"`
}
