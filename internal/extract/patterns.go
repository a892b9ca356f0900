package extract

import (
	"regexp"
	"strings"

	"github.com/nomadsurfing/invoices-tracker/constants"
)

// PatternSet is the immutable per-dialect extraction configuration: every
// compiled pattern and heuristic list one dialect needs. Built once by the
// constructors below and passed explicitly into the extractors; nothing in
// this package mutates a PatternSet after construction.
//
// A nil pattern means "this dialect never states that field"; the header
// extractor substitutes the dialect default instead.
type PatternSet struct {
	Dialect constants.Dialect

	// header fields, first match wins
	InvoiceNumber *regexp.Regexp
	InvoiceDate   *regexp.Regexp
	OrderDate     *regexp.Regexp
	ClientNumber  *regexp.Regexp
	ClientName    *regexp.Regexp
	SaleCode      *regexp.Regexp
	SaleCategory  *regexp.Regexp
	Comment       *regexp.Regexp
	PaymentStatus *regexp.Regexp
	PaymentMethod *regexp.Regexp

	// client-name fallback heuristic. The denylist is configuration, not an
	// exhaustive rule: it names the seller's own tokens and table boilerplate
	// that the primary pattern is known to catch by mistake.
	NameFallback *regexp.Regexp
	NameDenylist []string
	NameSentinel string

	// line items
	ArticleLine    *regexp.Regexp // back-office structured article line
	ArticleCode    *regexp.Regexp // web-store article-code label
	IgnorePrefixes []string       // web-store lines skipped by the scanner

	// totals
	NetTotal       *regexp.Regexp
	VATAmount      *regexp.Regexp
	GrossTotal     *regexp.Regexp
	CombinedTotal  *regexp.Regexp // web-store "Total X € (dont Y € TVA)"
	Deposit        *regexp.Regexp
	Shipping       *regexp.Regexp
	GlobalDiscount *regexp.Regexp
}

// defaultNameDenylist rejects candidate client names containing seller or
// table-header tokens. Comparison is uppercase substring.
var defaultNameDenylist = []string{
	"NOMADS", "SURFING", "TOTAL", "TTC", "TVA", "HT",
	"FACTURE", "CLIENT", "LIBELLÉ", "QTÉ", "MONTANT",
}

// nameFallback matches capitalized-name-shaped sequences anywhere in the text:
// either Title Case words or an all-caps word followed by Title Case words.
var nameFallback = regexp.MustCompile(
	`(?:[A-Z][a-zà-ÿ]+(?:\s+[A-Z][a-zà-ÿ]+)+)|(?:[A-Z]{2,}(?:\s+[A-Z][a-zà-ÿ]+)+)`)

var globalDiscount = regexp.MustCompile(`(?i)Remise(?:\s+globale)?\s*:?\s*(\d+(?:[,.]\d+)?)\s*(€|%)`)

// WebStorePatterns builds the pattern set for web-shop order invoices.
func WebStorePatterns() *PatternSet {
	return &PatternSet{
		Dialect: constants.WebStore,

		InvoiceNumber: regexp.MustCompile(`(?i)N° de commande\s*:\s*(\d+)`),
		OrderDate:     regexp.MustCompile(`(?i)Date de commande\s*:\s*(\d{2}/\d{2}/\d{4})`),
		ClientNumber:  regexp.MustCompile(`(?i)N°\s*client\s*:\s*(CLT\d+)`),
		ClientName:    regexp.MustCompile(`(?i)FACTURE\s+([^\n]+?)\s+N° de commande`),
		SaleCategory:  regexp.MustCompile(`(?i)Catégorie de vente\s*:\s*([^\n]+)`),
		Comment:       regexp.MustCompile(`(?i)Commentaire\s*:\s*([^\n]+)`),
		PaymentStatus: regexp.MustCompile(`(?i)Statut paiement\s*:\s*([^\n]+)`),
		// InvoiceDate, PaymentMethod, SaleCode: never printed on web-store
		// invoices, dialect defaults apply.

		NameFallback: nameFallback,
		NameDenylist: defaultNameDenylist,
		NameSentinel: "inconnu",

		ArticleCode:    regexp.MustCompile(`UGS\s*:\s*([^\n]+)`),
		IgnorePrefixes: []string{"Poids", "Taille", "Colori", "Total", "Sous-total", "Expédition"},

		NetTotal:       regexp.MustCompile(`(?i)Sous-total\s+([\d\s]+[,.]?\d*)\s*€`),
		CombinedTotal:  regexp.MustCompile(`(?i)Total\s+([\d\s]+[,.]?\d*)\s*€\s*\(dont\s+([\d\s]+[,.]?\d*)\s*€\s*TVA\)`),
		Shipping:       regexp.MustCompile(`(?mi)Expédition\s+([^€\n]*?)(?:(\d+[,.]?\d*)\s*€)?(?:\s*\(TTC\)|\s*$)`),
		GlobalDiscount: globalDiscount,
	}
}

// BackOfficePatterns builds the pattern set for back-office / ERP invoices.
func BackOfficePatterns() *PatternSet {
	return &PatternSet{
		Dialect: constants.BackOffice,

		InvoiceNumber: regexp.MustCompile(`(?i)N°\s*:\s*([A-Z0-9-]+)`),
		InvoiceDate:   regexp.MustCompile(`(?i)Date[:\s]+(\d{2}[/-]\d{2}[/-]\d{4})`),
		ClientNumber:  regexp.MustCompile(`(?i)N°\s*client\s*:\s*(CLT\d+)`),
		ClientName:    regexp.MustCompile(`(?i)N°\s*client\s*:[^\n]+\n(?:(?:Monsieur|Madame|M\.|Mme\.)\s*)?([A-Za-zÀ-ÿ\s\-']+?)(?:\n|$)`),
		SaleCode:      regexp.MustCompile(`(?m)^\s*(20\.(?:0[1-9]|[1-9]\d))\b`),
		SaleCategory:  regexp.MustCompile(`(?i)Catégorie de vente\s*:\s*([^\n]+)`),
		Comment:       regexp.MustCompile(`(?i)Commentaire\s*:\s*([^\n]+)`),
		PaymentStatus: regexp.MustCompile(`(?i)Statut paiement\s*:\s*([^\n]+)`),
		PaymentMethod: regexp.MustCompile(`(?i)Règlement\s*:?\s*([^\n]+)`),

		NameFallback: nameFallback,
		NameDenylist: defaultNameDenylist,
		NameSentinel: "inconnu",

		ArticleLine: regexp.MustCompile(
			`ART(\d+)\s*-\s*([^\n]+?)\s*` + // reference and description
				`(\d+,\d+)\s*` + // quantity
				`(\d+[\s\d]*,\d+)\s*€\s*` + // unit price
				`(\d+,\d+)%\s*` + // discount
				`(\d+[\s\d]*,\d+)\s*€\s*` + // net amount
				`(\d+,\d+)%`), // VAT rate

		NetTotal:       regexp.MustCompile(`Total HT\s+([\d\s]+[,.]?\d*)\s*€`),
		VATAmount:      regexp.MustCompile(`TVA\s+([\d\s]+[,.]?\d*)\s*€`),
		GrossTotal:     regexp.MustCompile(`Total TTC\s+([\d\s]+[,.]?\d*)\s*€`),
		Deposit:        regexp.MustCompile(`Acompte\(s\) reçu\(s\) HT\s+([\d\s]+[,.]?\d*)\s*€`),
		GlobalDiscount: globalDiscount,
	}
}

// firstMatch returns the trimmed first capture group of re in text, or
// ("", false) when re is nil or never matches.
func firstMatch(re *regexp.Regexp, text string) (string, bool) {
	if re == nil {
		return "", false
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
