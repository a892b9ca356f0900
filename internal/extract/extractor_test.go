package extract

import (
	"testing"
	"time"

	"github.com/nomadsurfing/invoices-tracker/constants"
)

const webStoreDocument = `FACTURE Marie Lefèvre N° de commande : 12345
Date de commande : 15/03/2024
N° client : CLT00042
UGS : WSUIT-3MM
Combinaison néoprène 2 59,90 €
Sous-total 132,30 €
Expédition Livraison gratuite
Total 137,29 € (dont 22,88 € TVA)
`

const backOfficeDocument = `FACTURE
N° : FAC2024-0042
Date : 15/03/2024
N° client : CLT00123
Monsieur Jean Dupont
20.05
Catégorie de vente : Magasin
Règlement : Chèque
ART12 - Wetsuit 3mm 2,00 89,90€ 10,00% 161,82€ 20,00%
Total HT 161,82 €
TVA 32,36 €
Total TTC 194,18 €
`

func TestExtractRecordWebStore(t *testing.T) {
	t.Parallel()

	e := NewExtractor(nil)
	e.now = func() time.Time { return time.Date(2024, 3, 20, 9, 30, 0, 0, time.UTC) }

	rec := e.ExtractRecord(webStoreDocument)
	if rec.Dialect != constants.WebStore {
		t.Fatalf("dialect = %q", rec.Dialect)
	}
	if rec.InvoiceNumber != "12345" {
		t.Fatalf("invoice number = %q", rec.InvoiceNumber)
	}
	if rec.OrderDate != "2024-03-15" {
		t.Fatalf("order date = %q", rec.OrderDate)
	}
	if rec.InvoiceDate != "2024-03-15" {
		t.Fatalf("invoice date = %q want order-date fallback", rec.InvoiceDate)
	}
	if rec.ClientNumber != "CLT00042" {
		t.Fatalf("client number = %q", rec.ClientNumber)
	}
	if rec.ClientName != "Marie Lefèvre" {
		t.Fatalf("client name = %q", rec.ClientName)
	}
	if rec.SaleNetwork != constants.NetworkWebStore {
		t.Fatalf("network = %q", rec.SaleNetwork)
	}
	if rec.PaymentMethod != constants.DefaultWebStorePayment {
		t.Fatalf("payment method = %q", rec.PaymentMethod)
	}
	if rec.PaymentStatus != constants.DefaultWebStoreStatus {
		t.Fatalf("payment status = %q", rec.PaymentStatus)
	}
	if rec.ArticleCount != 1 || len(rec.LineItems) != 1 {
		t.Fatalf("article count = %d, items = %d", rec.ArticleCount, len(rec.LineItems))
	}
	if rec.LineItems[0].Reference != "WSUIT-3MM" {
		t.Fatalf("item reference = %q", rec.LineItems[0].Reference)
	}
	if rec.Totals.GrossTotal != 137.29 || rec.Totals.VATAmount != 22.88 {
		t.Fatalf("totals = %+v", rec.Totals)
	}
	if rec.Totals.ShippingMode != "Livraison gratuite" || rec.Totals.ShippingFee != 0 {
		t.Fatalf("shipping = %q/%v", rec.Totals.ShippingMode, rec.Totals.ShippingFee)
	}
	if rec.ExtractedAt != "2024-03-20 09:30:00" {
		t.Fatalf("extracted at = %q", rec.ExtractedAt)
	}
}

func TestExtractRecordBackOffice(t *testing.T) {
	t.Parallel()

	e := NewExtractor(nil)
	rec := e.ExtractRecord(backOfficeDocument)
	if rec.Dialect != constants.BackOffice {
		t.Fatalf("dialect = %q", rec.Dialect)
	}
	if rec.InvoiceNumber != "FAC2024-0042" {
		t.Fatalf("invoice number = %q", rec.InvoiceNumber)
	}
	if rec.InvoiceDate != "2024-03-15" {
		t.Fatalf("invoice date = %q", rec.InvoiceDate)
	}
	if rec.OrderDate != "2024-03-15" {
		t.Fatalf("order date = %q want invoice-date fallback", rec.OrderDate)
	}
	if rec.ClientName != "Jean Dupont" {
		t.Fatalf("client name = %q", rec.ClientName)
	}
	if rec.SaleCode != "20.05" {
		t.Fatalf("sale code = %q", rec.SaleCode)
	}
	if rec.SaleCategory != "Magasin" {
		t.Fatalf("sale category = %q", rec.SaleCategory)
	}
	if rec.SaleNetwork != constants.NetworkBackOffice {
		t.Fatalf("network = %q", rec.SaleNetwork)
	}
	if rec.PaymentMethod != constants.PaymentCheque {
		t.Fatalf("payment method = %q", rec.PaymentMethod)
	}
	if rec.ArticleCount != 1 {
		t.Fatalf("article count = %d", rec.ArticleCount)
	}
	if rec.LineItems[0].NetAmount != 161.82 || rec.LineItems[0].VATRate != 20.0 {
		t.Fatalf("item = %+v", rec.LineItems[0])
	}
	if rec.Totals.NetTotal != 161.82 || rec.Totals.GrossTotal != 194.18 {
		t.Fatalf("totals = %+v", rec.Totals)
	}
}

func TestExtractRecordEmptyText(t *testing.T) {
	t.Parallel()

	rec := NewExtractor(nil).ExtractRecord("")
	if rec == nil {
		t.Fatalf("record is nil")
	}
	if rec.Dialect != constants.BackOffice {
		t.Fatalf("dialect = %q want back-office default", rec.Dialect)
	}
	if rec.ArticleCount != 0 {
		t.Fatalf("article count = %d", rec.ArticleCount)
	}
}
