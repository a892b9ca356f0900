package report

import (
	"fmt"
	"testing"

	"github.com/nomadsurfing/invoices-tracker/constants"
	"github.com/nomadsurfing/invoices-tracker/internal/entity"
)

func backOfficeRecord() *entity.InvoiceRecord {
	return &entity.InvoiceRecord{
		Dialect:       constants.BackOffice,
		InvoiceNumber: "FAC2024-0042",
		InvoiceDate:   "2024-03-15",
		OrderDate:     "2024-03-15",
		ClientName:    "Jean Dupont",
		SaleCode:      "20.05",
		SaleCategory:  "Magasin",
		SaleNetwork:   constants.NetworkBackOffice,
		PaymentStatus: "en attente",
		PaymentMethod: constants.PaymentCheque,
		LineItems: []entity.LineItem{{
			Reference:   "ART12",
			Description: "Wetsuit 3mm",
			Quantity:    2,
			UnitPrice:   89.90,
			Discount:    0.10,
			NetAmount:   161.82,
			VATRate:     20.0,
		}},
		Totals: entity.Totals{
			GrossTotal: 194.18,
			NetTotal:   161.82,
			VATAmount:  32.36,
		},
		ArticleCount: 1,
	}
}

func TestBuildRowBackOffice(t *testing.T) {
	t.Parallel()

	row, err := BuildRow(backOfficeRecord(), nil)
	if err != nil {
		t.Fatalf("BuildRow: %v", err)
	}

	if row["Type-facture"] != "20.05" {
		t.Fatalf("Type-facture = %v want sale code", row["Type-facture"])
	}
	if row["Réseau_Vente"] != "ERP" {
		t.Fatalf("Réseau_Vente = %v", row["Réseau_Vente"])
	}
	if row["Client"] != "Jean Dupont" {
		t.Fatalf("Client = %v", row["Client"])
	}
	if row["Règlement"] != "cheque" {
		t.Fatalf("Règlement = %v", row["Règlement"])
	}
	if row["contrôle paiement"] != "en attente" {
		t.Fatalf("contrôle paiement = %v", row["contrôle paiement"])
	}
	if row["ttc"] != 194.18 || row["Credit HT"] != 161.82 {
		t.Fatalf("totals = %v / %v", row["ttc"], row["Credit HT"])
	}
	if row["tva"] != 32.36 || row["TVA Collectee"] != 32.36 {
		t.Fatalf("vat = %v / %v", row["tva"], row["TVA Collectee"])
	}

	if row["ref1"] != "ART12" || row["q1"] != 2.0 {
		t.Fatalf("slot 1 = %v / %v", row["ref1"], row["q1"])
	}
	if row["prix1"] != 89.90 || row["ht1"] != 161.82 {
		t.Fatalf("slot 1 amounts = %v / %v", row["prix1"], row["ht1"])
	}
	if row["r€1"] != 16.18 {
		t.Fatalf("r€1 = %v", row["r€1"])
	}
	if row["tva€1"] != 32.36 {
		t.Fatalf("tva€1 = %v", row["tva€1"])
	}
	if row["quantité"] != 2.0 {
		t.Fatalf("quantité = %v", row["quantité"])
	}
	// no explicit global discount, per-article discounts stand in
	if row["remise"] != 16.18 {
		t.Fatalf("remise = %v", row["remise"])
	}
	if _, ok := row["acompte1"]; ok {
		t.Fatalf("acompte1 present without deposit")
	}
}

func TestBuildRowWebStoreNetDerivation(t *testing.T) {
	t.Parallel()

	rec := &entity.InvoiceRecord{
		Dialect:     constants.WebStore,
		SaleNetwork: constants.NetworkWebStore,
		LineItems: []entity.LineItem{{
			Reference: "WSUIT-3MM",
			Quantity:  2,
			UnitPrice: 59.90,
		}},
		Totals: entity.Totals{
			GrossTotal: 120.00,
			NetTotal:   100.00,
			VATAmount:  20.00,
		},
		ArticleCount: 1,
	}
	row, err := BuildRow(rec, nil)
	if err != nil {
		t.Fatalf("BuildRow: %v", err)
	}

	if row["Type-facture"] != "Internet" {
		t.Fatalf("Type-facture = %v want network label without sale code", row["Type-facture"])
	}
	// gross 59.90 at the 20% document rate nets out to 49.92
	if row["prix1"] != 49.92 {
		t.Fatalf("prix1 = %v", row["prix1"])
	}
	if row["ht1"] != 99.84 {
		t.Fatalf("ht1 = %v", row["ht1"])
	}
	if row["tva€1"] != 19.97 {
		t.Fatalf("tva€1 = %v", row["tva€1"])
	}
	if _, ok := row["r€1"]; ok {
		t.Fatalf("r€1 present without a line discount")
	}
	if _, ok := row["remise"]; ok {
		t.Fatalf("remise present without any discount")
	}
}

func TestBuildRowSlotTruncation(t *testing.T) {
	t.Parallel()

	rec := backOfficeRecord()
	rec.LineItems = nil
	for i := 0; i < 25; i++ {
		rec.LineItems = append(rec.LineItems, entity.LineItem{
			Reference: fmt.Sprintf("ART%d", i+1),
			Quantity:  1,
			UnitPrice: 10,
			NetAmount: 10,
			VATRate:   20,
		})
	}
	rec.ArticleCount = len(rec.LineItems)

	row, err := BuildRow(rec, nil)
	if err != nil {
		t.Fatalf("BuildRow: %v", err)
	}
	if row["ref20"] != "ART20" {
		t.Fatalf("ref20 = %v", row["ref20"])
	}
	if _, ok := row["ref21"]; ok {
		t.Fatalf("ref21 present, slots must stop at %d", MaxArticles)
	}
	if row["quantité"] != 25.0 {
		t.Fatalf("quantité = %v want the sum over every article", row["quantité"])
	}
}

func TestBuildRowExplicitGlobalDiscountWins(t *testing.T) {
	t.Parallel()

	rec := backOfficeRecord()
	rec.Totals.GlobalDiscount = 25.00
	rec.Totals.DepositAmount = 30.00

	row, err := BuildRow(rec, nil)
	if err != nil {
		t.Fatalf("BuildRow: %v", err)
	}
	if row["remise"] != 25.00 {
		t.Fatalf("remise = %v want explicit global discount", row["remise"])
	}
	if row["acompte1"] != 30.00 {
		t.Fatalf("acompte1 = %v", row["acompte1"])
	}
}

func TestBuildRowNilRecord(t *testing.T) {
	t.Parallel()

	if _, err := BuildRow(nil, nil); err == nil {
		t.Fatalf("nil record accepted")
	}
}

func TestFlattenContainsFailures(t *testing.T) {
	t.Parallel()

	rows := Flatten([]*entity.InvoiceRecord{backOfficeRecord(), nil, backOfficeRecord()}, nil)
	if len(rows) != 2 {
		t.Fatalf("rows = %d want 2, failing record excluded", len(rows))
	}
}
