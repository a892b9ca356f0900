package extract

import (
	"log/slog"
	"time"

	"github.com/nomadsurfing/invoices-tracker/constants"
	"github.com/nomadsurfing/invoices-tracker/internal/entity"
)

// DialectExtractor is the per-dialect extraction strategy. Exactly two
// implementations exist, one per Dialect value; the classifier picks which one
// runs, nothing else branches on the dialect.
type DialectExtractor interface {
	Dialect() constants.Dialect
	Header(text string) Header
	LineItems(text string) []entity.LineItem
	Totals(text string) entity.Totals
}

// patternExtractor binds a compiled PatternSet to the strategy interface.
// Both dialects share this implementation; the PatternSet carries everything
// dialect-specific.
type patternExtractor struct {
	ps *PatternSet
}

func (e *patternExtractor) Dialect() constants.Dialect             { return e.ps.Dialect }
func (e *patternExtractor) Header(text string) Header              { return extractHeader(e.ps, text) }
func (e *patternExtractor) LineItems(text string) []entity.LineItem { return extractLineItems(e.ps, text) }
func (e *patternExtractor) Totals(text string) entity.Totals       { return extractTotals(e.ps, text) }

// Extractor turns one document's raw text into a normalized InvoiceRecord.
// Both strategies are built once at construction; extraction itself is
// stateless and safe to run from concurrent workers.
type Extractor struct {
	logger *slog.Logger
	web    DialectExtractor
	back   DialectExtractor
	now    func() time.Time
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		logger: logger,
		web:    &patternExtractor{ps: WebStorePatterns()},
		back:   &patternExtractor{ps: BackOfficePatterns()},
		now:    time.Now,
	}
}

// ForDialect returns the strategy bound to d.
func (e *Extractor) ForDialect(d constants.Dialect) DialectExtractor {
	if d == constants.WebStore {
		return e.web
	}
	return e.back
}

// ExtractRecord classifies text, runs the chosen strategy's header, line-item
// and totals extraction, and assembles the immutable record. Extraction is
// best-effort throughout: missing fields stay at their zero values and the
// record is always returned.
func (e *Extractor) ExtractRecord(text string) *entity.InvoiceRecord {
	dialect := DetectDialect(text)
	strategy := e.ForDialect(dialect)

	header := strategy.Header(text)
	items := strategy.LineItems(text)
	totals := strategy.Totals(text)

	invoiceDate := NormalizeDate(header.InvoiceDate)
	orderDate := NormalizeDate(header.OrderDate)
	// Web-store invoices only print the order date, back-office ones only the
	// invoice date; the report carries both columns, so the missing one falls
	// back to the other.
	if invoiceDate == "" {
		invoiceDate = orderDate
	}
	if orderDate == "" {
		orderDate = invoiceDate
	}

	network := constants.NetworkBackOffice
	if dialect == constants.WebStore {
		network = constants.NetworkWebStore
	}

	rec := &entity.InvoiceRecord{
		Dialect:       dialect,
		InvoiceNumber: header.InvoiceNumber,
		InvoiceDate:   invoiceDate,
		OrderDate:     orderDate,
		ClientNumber:  header.ClientNumber,
		ClientName:    header.ClientName,
		SaleCode:      header.SaleCode,
		SaleCategory:  header.SaleCategory,
		SaleNetwork:   network,
		Comment:       header.Comment,
		PaymentStatus: header.PaymentStatus,
		PaymentMethod: header.PaymentMethod,
		LineItems:     items,
		Totals:        totals,
		ArticleCount:  len(items),
		ExtractedAt:   e.now().Format("2006-01-02 15:04:05"),
	}

	e.logger.Debug("extract.record",
		"dialect", string(dialect),
		"invoice_number", rec.InvoiceNumber,
		"articles", rec.ArticleCount,
		"gross_total", rec.Totals.GrossTotal,
	)
	return rec
}
