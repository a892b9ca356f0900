package extract

import (
	"strconv"
	"strings"
)

// amountReplacer strips the currency sign and the interior spaces French
// invoices use as thousand separators (both plain and non-breaking), and maps
// the comma decimal to a point.
var amountReplacer = strings.NewReplacer("€", "", " ", "", " ", "", ",", ".")

// ParseAmount converts a French-locale monetary substring ("1 234,56 €") into
// a float64. The ok result is false when the cleaned string holds no parseable
// number; a missing amount is a value, not an error. Parsing is idempotent on
// already-normalized input.
func ParseAmount(s string) (float64, bool) {
	cleaned := strings.TrimSpace(amountReplacer.Replace(s))
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// amountOrZero is the best-effort form used by the totals extractor, where a
// pattern miss and an unparseable token both collapse to 0.0.
func amountOrZero(s string) float64 {
	f, _ := ParseAmount(s)
	return f
}
