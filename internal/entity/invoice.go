package entity

import (
	"github.com/nomadsurfing/invoices-tracker/constants"
)

// LineItem is one purchased article row on an invoice. Immutable once built;
// owned by its parent InvoiceRecord.
//
// Discount is a fraction (0.10 for 10%) on back-office invoices and always 0
// on web-store invoices, where the per-article reduction is reconciled later
// by the report mapper. VATRate is a raw percentage (20.0), never a fraction.
type LineItem struct {
	Reference   string  `json:"reference"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Discount    float64 `json:"discount"`
	NetAmount   float64 `json:"net_amount"`
	VATRate     float64 `json:"vat_rate"`
}

// Totals carries the document-level monetary figures. Every field defaults to
// zero / empty when the source text never states it; absence is representable,
// never an error.
type Totals struct {
	GrossTotal     float64 `json:"gross_total"`
	NetTotal       float64 `json:"net_total"`
	VATAmount      float64 `json:"vat_amount"`
	ShippingFee    float64 `json:"shipping_fee"`
	ShippingMode   string  `json:"shipping_mode"`
	DepositAmount  float64 `json:"deposit_amount"`
	GlobalDiscount float64 `json:"global_discount"`
}

// VATRate back-derives the effective tax percentage from the gross/net ratio.
// Returns (0, false) when the net total is unknown or zero.
func (t Totals) VATRate() (float64, bool) {
	if t.NetTotal <= 0 {
		return 0, false
	}
	return (t.GrossTotal/t.NetTotal - 1) * 100, true
}

// InvoiceRecord is the normalized unit for one source document. Built once by
// the extractor and read-only afterwards; downstream consumers (report mapper,
// debug side-channel) never mutate it.
type InvoiceRecord struct {
	Dialect       constants.Dialect `json:"dialect"`
	InvoiceNumber string            `json:"invoice_number"`
	InvoiceDate   string            `json:"invoice_date"` // yyyy-mm-dd when parseable
	OrderDate     string            `json:"order_date"`
	ClientNumber  string            `json:"client_number"`
	ClientName    string            `json:"client_name"`
	SaleCode      string            `json:"sale_code"` // back-office NN.NN code
	SaleCategory  string            `json:"sale_category"`
	SaleNetwork   string            `json:"sale_network"`
	Comment       string            `json:"comment"`
	PaymentStatus string            `json:"payment_status"`
	PaymentMethod string            `json:"payment_method"`
	LineItems     []LineItem        `json:"line_items"`
	Totals        Totals            `json:"totals"`
	ArticleCount  int               `json:"article_count"`
	ExtractedAt   string            `json:"extracted_at"`
}
