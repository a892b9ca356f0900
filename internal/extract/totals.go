package extract

import (
	"strings"

	"github.com/nomadsurfing/invoices-tracker/constants"
	"github.com/nomadsurfing/invoices-tracker/internal/entity"
)

// extractTotals pulls the document-level monetary figures for ps's dialect.
// Every absent field stays at its zero value; the three totals are not forced
// to satisfy net + vat == gross, a missing one is derived from the other two
// where the dialect allows it.
func extractTotals(ps *PatternSet, text string) entity.Totals {
	var t entity.Totals
	if ps.Dialect == constants.WebStore {
		webStoreTotals(ps, text, &t)
	} else {
		backOfficeTotals(ps, text, &t)
	}

	// Global discount is searched text-wide regardless of dialect. An amount
	// in %, is monetized against the net total.
	if m := ps.GlobalDiscount.FindStringSubmatch(text); m != nil {
		amount := amountOrZero(m[1])
		if m[2] == "%" {
			t.GlobalDiscount = amount / 100 * t.NetTotal
		} else {
			t.GlobalDiscount = amount
		}
	}
	return t
}

// webStoreTotals reads the combined "Total X € (dont Y € TVA)" phrase plus the
// subtotal and shipping lines. When the subtotal line is missing, the net
// total is derived as gross − vat. The shipping fee amount is optional: free
// shipping prints a carrier label with no price.
func webStoreTotals(ps *PatternSet, text string, t *entity.Totals) {
	if m := ps.NetTotal.FindStringSubmatch(text); m != nil {
		t.NetTotal = amountOrZero(m[1])
	}
	if m := ps.CombinedTotal.FindStringSubmatch(text); m != nil {
		t.GrossTotal = amountOrZero(m[1])
		t.VATAmount = amountOrZero(m[2])
	}
	if t.NetTotal == 0 && t.GrossTotal > 0 {
		t.NetTotal = t.GrossTotal - t.VATAmount
	}
	if m := ps.Shipping.FindStringSubmatch(text); m != nil {
		t.ShippingMode = strings.TrimSpace(m[1])
		if m[2] != "" {
			t.ShippingFee = amountOrZero(m[2])
		}
	}
}

// backOfficeTotals matches each figure independently.
func backOfficeTotals(ps *PatternSet, text string, t *entity.Totals) {
	if m := ps.NetTotal.FindStringSubmatch(text); m != nil {
		t.NetTotal = amountOrZero(m[1])
	}
	if m := ps.VATAmount.FindStringSubmatch(text); m != nil {
		t.VATAmount = amountOrZero(m[1])
	}
	if m := ps.GrossTotal.FindStringSubmatch(text); m != nil {
		t.GrossTotal = amountOrZero(m[1])
	}
	if m := ps.Deposit.FindStringSubmatch(text); m != nil {
		t.DepositAmount = amountOrZero(m[1])
	}
}
