package report

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/nomadsurfing/invoices-tracker/constants"
	"github.com/nomadsurfing/invoices-tracker/internal/entity"
)

// Row maps column names to scalar cell values. Only populated columns are
// present; the writer renders absent columns as blank cells. The caller owns
// the row once built, the mapper never reads it back.
type Row map[string]any

// BuildRow flattens one normalized record into a report row.
//
// The exported quantity is the sum of every line item's quantity, including
// articles past the slot limit. Per-article figures follow the dialect rule:
// back-office items carry their stored net amount and VAT, web-store items
// back-derive the net price from the gross unit price via the record's VAT
// ratio. That web-store reconciliation is an approximation inherited from the
// source data, not a guaranteed per-article VAT allocation.
func BuildRow(rec *entity.InvoiceRecord, logger *slog.Logger) (Row, error) {
	if rec == nil {
		return nil, errors.New("nil record")
	}
	if logger == nil {
		logger = slog.Default()
	}

	row := Row{
		"Type-facture":      typeFacture(rec),
		"Type_Vente":        rec.SaleCategory,
		"Réseau_Vente":      rec.SaleNetwork,
		"Client":            rec.ClientName,
		"Date commande":     rec.OrderDate,
		"Date facture":      rec.InvoiceDate,
		"Commentaire":       rec.Comment,
		"Règlement":         rec.PaymentMethod,
		"contrôle paiement": rec.PaymentStatus,
		"tva":               rec.Totals.VATAmount,
		"ttc":               rec.Totals.GrossTotal,
		"Credit TTC":        rec.Totals.GrossTotal,
		"Credit HT":         rec.Totals.NetTotal,
		"TVA Collectee":     rec.Totals.VATAmount,
	}
	if rec.Totals.DepositAmount > 0 {
		row["acompte1"] = rec.Totals.DepositAmount
	}

	vatRate, _ := rec.Totals.VATRate()

	var quantitySum float64
	var discountSum float64
	for i, item := range rec.LineItems {
		if math.IsNaN(item.Quantity) || math.IsInf(item.Quantity, 0) {
			logger.Warn("report.row.bad_quantity",
				"invoice", rec.InvoiceNumber, "article", i+1)
			continue
		}
		quantitySum += item.Quantity

		netPrice, netAmount := articleNet(rec.Dialect, item, vatRate)
		discount := item.Discount * netAmount
		discountSum += discount

		if i >= MaxArticles {
			continue
		}
		slot := i + 1
		row[fmt.Sprintf("ref%d", slot)] = item.Reference
		row[fmt.Sprintf("q%d", slot)] = item.Quantity
		row[fmt.Sprintf("prix%d", slot)] = netPrice
		row[fmt.Sprintf("ht%d", slot)] = round2(netAmount)
		if discount != 0 {
			row[fmt.Sprintf("r€%d", slot)] = round2(discount)
		}
		if rate := articleVATRate(rec.Dialect, item, vatRate); rate > 0 && netAmount > 0 {
			row[fmt.Sprintf("tva€%d", slot)] = round2(netAmount * rate / 100)
		}
	}
	row["quantité"] = quantitySum

	// Explicit global discount wins; otherwise the summed per-article
	// discounts stand in for it.
	if rec.Totals.GlobalDiscount > 0 {
		row["remise"] = round2(rec.Totals.GlobalDiscount)
	} else if discountSum > 0 {
		row["remise"] = round2(discountSum)
	}
	return row, nil
}

// Flatten builds one row per record, containing row-construction failures:
// a failing record is logged and excluded, the batch continues.
func Flatten(records []*entity.InvoiceRecord, logger *slog.Logger) []Row {
	if logger == nil {
		logger = slog.Default()
	}
	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		row, err := BuildRow(rec, logger)
		if err != nil {
			logger.Error("report.row.failed", "index", i, "err", err)
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// typeFacture fills the invoice-type column: the back-office NN.NN sale code
// when one was extracted, else the dialect's network label.
func typeFacture(rec *entity.InvoiceRecord) string {
	if rec.SaleCode != "" {
		return rec.SaleCode
	}
	return rec.SaleNetwork
}

// articleNet returns the net unit price and net line amount. Back-office lines
// state both; web-store lines only carry the gross unit price, so net is
// derived through the document VAT ratio and multiplied back out by quantity.
func articleNet(d constants.Dialect, item entity.LineItem, vatRate float64) (price, amount float64) {
	if d == constants.BackOffice {
		return item.UnitPrice, item.NetAmount
	}
	price = item.UnitPrice
	if vatRate > 0 {
		price = item.UnitPrice / (1 + vatRate/100)
	}
	return round2(price), round2(price * item.Quantity)
}

// articleVATRate picks the stored line rate for back-office items and the
// derived document rate for web-store items.
func articleVATRate(d constants.Dialect, item entity.LineItem, vatRate float64) float64 {
	if d == constants.BackOffice {
		return item.VATRate
	}
	return vatRate
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
