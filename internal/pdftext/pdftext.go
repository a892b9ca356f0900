// Package pdftext acquires page text from source documents. It is the only
// place that opens a PDF; the extraction core consumes opaque strings.
package pdftext

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/nomadsurfing/invoices-tracker/internal/common"
)

// Reader turns a document file into one text string. PDFs are read page by
// page; plain-text files pass through unchanged.
type Reader struct {
	logger *slog.Logger
}

func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger}
}

// Text extracts the full text of the document at path. Unreadable PDF pages
// are skipped with a warning; an empty result is returned as "" with no error
// and left to the pipeline's no-text handling.
func (r *Reader) Text(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return r.pdfText(path)
	case ".txt":
		b, err := os.ReadFile(path)
		if err != nil {
			return "", common.WrapError(err, "read text file")
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unsupported document type %q: %w", filepath.Ext(path), common.ErrInvalidInput)
	}
}

func (r *Reader) pdfText(path string) (string, error) {
	f, doc, err := pdf.Open(path)
	if err != nil {
		return "", common.NewAppError("pdf_open", path, err)
	}
	defer func() { _ = f.Close() }()

	var pages []string
	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			r.logger.Warn("pdftext.page_failed", "path", path, "page", i, "err", err)
			continue
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}
	return strings.Join(pages, "\n"), nil
}
