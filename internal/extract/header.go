package extract

import (
	"strings"

	"github.com/nomadsurfing/invoices-tracker/constants"
)

// Header holds the raw per-document header fields before assembly. Dates are
// still in source form here; the assembler normalizes them.
type Header struct {
	InvoiceNumber string
	InvoiceDate   string
	OrderDate     string
	ClientNumber  string
	ClientName    string
	SaleCode      string
	SaleCategory  string
	Comment       string
	PaymentStatus string
	PaymentMethod string
}

// extractHeader applies the dialect's pattern table against the full text,
// first match wins per field. Fields with no pattern for the active dialect
// take the dialect default; a pattern miss leaves the field empty.
func extractHeader(ps *PatternSet, text string) Header {
	var h Header
	h.InvoiceNumber, _ = firstMatch(ps.InvoiceNumber, text)
	h.InvoiceDate, _ = firstMatch(ps.InvoiceDate, text)
	h.OrderDate, _ = firstMatch(ps.OrderDate, text)
	h.ClientNumber, _ = firstMatch(ps.ClientNumber, text)
	h.SaleCode, _ = firstMatch(ps.SaleCode, text)
	h.SaleCategory, _ = firstMatch(ps.SaleCategory, text)
	h.Comment, _ = firstMatch(ps.Comment, text)
	h.PaymentStatus, _ = firstMatch(ps.PaymentStatus, text)

	h.ClientName = extractClientName(ps, text)
	h.PaymentMethod = extractPaymentMethod(ps, text)

	if ps.Dialect == constants.WebStore {
		if h.PaymentMethod == "" {
			h.PaymentMethod = constants.DefaultWebStorePayment
		}
		if h.PaymentStatus == "" {
			h.PaymentStatus = constants.DefaultWebStoreStatus
		}
	}
	return h
}

// extractClientName tries the dialect's primary pattern, then falls back to a
// whole-text scan for capitalized-name-shaped sequences when the primary result
// is empty, denylisted, or the known sentinel false-positive. The fallback is a
// heuristic: no authoritative name grammar exists in either dialect.
func extractClientName(ps *PatternSet, text string) string {
	name, _ := firstMatch(ps.ClientName, text)

	if name != "" && !nameRejected(ps, name) {
		return name
	}
	for _, candidate := range ps.NameFallback.FindAllString(text, -1) {
		candidate = strings.TrimSpace(candidate)
		if candidate != "" && !nameRejected(ps, candidate) {
			return candidate
		}
	}
	return name
}

func nameRejected(ps *PatternSet, name string) bool {
	upper := strings.ToUpper(name)
	for _, token := range ps.NameDenylist {
		if strings.Contains(upper, token) {
			return true
		}
	}
	return ps.NameSentinel != "" && strings.Contains(strings.ToLower(name), ps.NameSentinel)
}

// extractPaymentMethod normalizes any value containing check/cheque, with or
// without the accent and in any case, to the canonical token.
func extractPaymentMethod(ps *PatternSet, text string) string {
	value, ok := firstMatch(ps.PaymentMethod, text)
	if !ok {
		return ""
	}
	lower := strings.ToLower(value)
	if strings.Contains(lower, "cheque") || strings.Contains(lower, "chèque") || strings.Contains(lower, "check") {
		return constants.PaymentCheque
	}
	return value
}
