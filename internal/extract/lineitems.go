package extract

import (
	"regexp"
	"strings"

	"github.com/nomadsurfing/invoices-tracker/constants"
	"github.com/nomadsurfing/invoices-tracker/internal/entity"
)

// Web-store article lines have no dedicated grammar, only a shape: a bare
// integer quantity somewhere after the description, then a price ending in €.
var (
	reQuantity = regexp.MustCompile(`\b(\d+)\b`)
	rePrice    = regexp.MustCompile(`(\d+[,.]?\d*)\s*€`)
)

// extractLineItems parses article lines with the grammar of ps's dialect.
// Malformed or partially matching lines are skipped silently; an empty result
// is a valid outcome, never an error.
func extractLineItems(ps *PatternSet, text string) []entity.LineItem {
	if ps.Dialect == constants.BackOffice {
		return backOfficeItems(ps, text)
	}
	return webStoreItems(ps, text)
}

// backOfficeItems matches the structured ERP article line
//
//	ART<digits> - <description> <qty>,<dd> <price>,<dd>€ <discount>,<dd>% <net>,<dd>€ <vat>,<dd>%
//
// Numeric fields are comma-decimal and may carry interior thousand-separator
// spaces. The discount is stored as a fraction, the VAT rate as a raw
// percentage.
func backOfficeItems(ps *PatternSet, text string) []entity.LineItem {
	var items []entity.LineItem
	for _, m := range ps.ArticleLine.FindAllStringSubmatch(text, -1) {
		qty, ok1 := ParseAmount(m[3])
		unit, ok2 := ParseAmount(m[4])
		discount, ok3 := ParseAmount(m[5])
		net, ok4 := ParseAmount(m[6])
		vat, ok5 := ParseAmount(m[7])
		if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
			continue
		}
		items = append(items, entity.LineItem{
			Reference:   "ART" + m[1],
			Description: strings.TrimSpace(m[2]),
			Quantity:    qty,
			UnitPrice:   unit,
			Discount:    discount / 100,
			NetAmount:   net,
			VATRate:     vat,
		})
	}
	return items
}

// webStoreItems runs the line-oriented web-store scan. A line carrying the
// article-code label sets the running reference; every following line that is
// not on the ignore list is tested for the quantity-then-price shape. On a
// match, the text before the quantity token is the description and the running
// reference is consumed (reset to empty).
//
// Discount, net amount and VAT are not printed per article on web-store
// invoices; they stay zero here and are reconciled by the report mapper from
// the document totals.
func webStoreItems(ps *PatternSet, text string) []entity.LineItem {
	var items []entity.LineItem
	currentRef := ""

	for _, line := range strings.Split(text, "\n") {
		if m := ps.ArticleCode.FindStringSubmatch(line); m != nil {
			currentRef = strings.TrimSpace(m[1])
			continue
		}
		if ignoredLine(ps, line) {
			continue
		}

		qtyIdx := reQuantity.FindStringSubmatchIndex(line)
		priceM := rePrice.FindStringSubmatch(line)
		if qtyIdx == nil || priceM == nil {
			continue
		}
		qty, ok1 := ParseAmount(line[qtyIdx[2]:qtyIdx[3]])
		price, ok2 := ParseAmount(priceM[1])
		if !ok1 || !ok2 {
			continue
		}
		items = append(items, entity.LineItem{
			Reference:   currentRef,
			Description: strings.TrimSpace(line[:qtyIdx[2]]),
			Quantity:    qty,
			UnitPrice:   price,
		})
		currentRef = ""
	}
	return items
}

func ignoredLine(ps *PatternSet, line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range ps.IgnorePrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}
