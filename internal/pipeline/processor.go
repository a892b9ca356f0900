package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/nomadsurfing/invoices-tracker/internal/entity"
	"github.com/nomadsurfing/invoices-tracker/internal/extract"
	"github.com/nomadsurfing/invoices-tracker/internal/report"
)

// Document is one unit of work: an opaque identifier (usually the source
// filename, used only for diagnostics and row keying) and its already
// materialized page text.
type Document struct {
	ID   string
	Text string
}

// DocumentError records why one document was excluded from the report.
type DocumentError struct {
	ID  string `json:"id"`
	Err string `json:"error"`
}

// DebugEntry is the per-document value of the debug side-channel: either the
// source text plus the normalized record, or the failure message. Written out
// for inspection, never re-read.
type DebugEntry struct {
	Text  string                `json:"text,omitempty"`
	Data  *entity.InvoiceRecord `json:"data,omitempty"`
	Error string                `json:"error,omitempty"`
}

// BatchResult is the outcome of one batch pass. Rows holds one report row per
// successfully processed document, in input order; Errors names the documents
// that were excluded. A partial batch is a success: callers report the
// omitted identifiers separately instead of failing.
type BatchResult struct {
	Rows    []report.Row
	Records []*entity.InvoiceRecord
	Errors  []DocumentError
	Debug   map[string]DebugEntry
}

// Processor runs extraction and row flattening over a batch of documents,
// document by document. Documents are independent; failures never cross
// document boundaries.
type Processor struct {
	logger    *slog.Logger
	extractor *extract.Extractor
}

func NewProcessor(logger *slog.Logger, extractor *extract.Extractor) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if extractor == nil {
		extractor = extract.NewExtractor(logger)
	}
	return &Processor{logger: logger, extractor: extractor}
}

// ProcessDocuments processes docs in order. Per document: extraction, debug
// side-channel entry, row flattening. Any document-level failure (no text,
// panic during extraction, row construction error) is recorded against the
// document's identifier and the batch continues.
func (p *Processor) ProcessDocuments(ctx context.Context, docs []Document) BatchResult {
	start := time.Now()
	res := BatchResult{Debug: make(map[string]DebugEntry, len(docs))}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			res.Errors = append(res.Errors, DocumentError{ID: doc.ID, Err: err.Error()})
			res.Debug[doc.ID] = DebugEntry{Error: err.Error()}
			continue
		}

		rec, err := p.extractOne(doc)
		if err != nil {
			p.logger.Error("pipeline.extract.failed", "doc", doc.ID, "err", err)
			res.Errors = append(res.Errors, DocumentError{ID: doc.ID, Err: err.Error()})
			res.Debug[doc.ID] = DebugEntry{Error: err.Error()}
			continue
		}
		res.Debug[doc.ID] = DebugEntry{Text: doc.Text, Data: rec}
		p.validateDebugEntry(doc.ID, rec)

		row, err := report.BuildRow(rec, p.logger)
		if err != nil {
			p.logger.Error("pipeline.row.failed", "doc", doc.ID, "err", err)
			res.Errors = append(res.Errors, DocumentError{ID: doc.ID, Err: err.Error()})
			continue
		}
		res.Records = append(res.Records, rec)
		res.Rows = append(res.Rows, row)
		p.logger.Info("pipeline.doc.ok",
			"doc", doc.ID,
			"dialect", string(rec.Dialect),
			"articles", rec.ArticleCount,
		)
	}

	p.logger.Info("pipeline.batch.done",
		"documents", len(docs),
		"rows", len(res.Rows),
		"errors", len(res.Errors),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res
}

// extractOne contains a single document's extraction. A panic inside the
// extractor is a document-level failure, not a batch abort.
func (p *Processor) extractOne(doc Document) (rec *entity.InvoiceRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = fmt.Errorf("extraction panic: %v", r)
		}
	}()
	if strings.TrimSpace(doc.Text) == "" {
		return nil, errors.New("no text extracted")
	}
	return p.extractor.ExtractRecord(doc.Text), nil
}

// validateDebugEntry checks the serialized record against the invoice schema.
// A mismatch only warns: the side-channel is diagnostic, not a contract.
func (p *Processor) validateDebugEntry(docID string, rec *entity.InvoiceRecord) {
	b, err := json.Marshal(rec)
	if err != nil {
		p.logger.Warn("pipeline.debug.marshal_failed", "doc", docID, "err", err)
		return
	}
	if err := extract.ValidateRecordJSON(b); err != nil {
		p.logger.Warn("pipeline.debug.schema_mismatch", "doc", docID, "err", err)
	}
}

// WriteDebugJSON persists the side-channel map as pretty-printed JSON keyed by
// document identifier.
func WriteDebugJSON(path string, debug map[string]DebugEntry) error {
	b, err := json.MarshalIndent(debug, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal debug json: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write debug json: %w", err)
	}
	return nil
}
