// invoices-batch processes a folder of invoice documents into one XLSX report,
// optionally writing the per-document debug JSON alongside. With --watch it
// keeps running and reprocesses the folder whenever new documents land.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nomadsurfing/invoices-tracker/internal/extract"
	"github.com/nomadsurfing/invoices-tracker/internal/ingest"
	"github.com/nomadsurfing/invoices-tracker/internal/pdftext"
	"github.com/nomadsurfing/invoices-tracker/internal/pipeline"
	"github.com/nomadsurfing/invoices-tracker/internal/report"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir       = flag.String("dir", "", "directory of invoice PDFs/TXTs to process (required)")
		out       = flag.String("out", "", "output XLSX path (defaults to <dir>/../factures_auto.xlsx)")
		debugJSON = flag.String("debug-json", "", "optional path for the per-document debug JSON")
		watch     = flag.Bool("watch", false, "keep watching the directory and reprocess on new documents")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "factures_auto.xlsx")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	reader := pdftext.NewReader(logger)
	proc := pipeline.NewProcessor(logger, extract.NewExtractor(logger))

	if err := runOnce(logger, reader, proc, *dir, *out, *debugJSON); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	if !*watch {
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:    []string{*dir},
		Debounce: 500 * time.Millisecond,
	}, logger)
	if err != nil {
		printError("Error: watcher: %v\n", err)
		os.Exit(1)
	}
	logger.Info("batch.watch", "dir", *dir)
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errs:
			if ok && err != nil {
				logger.Error("batch.watch.error", "err", err)
			}
		case path, ok := <-events:
			if !ok {
				return
			}
			logger.Info("batch.watch.new_document", "path", path)
			if err := runOnce(logger, reader, proc, *dir, *out, *debugJSON); err != nil {
				logger.Error("batch.run_failed", "err", err)
			}
		}
	}
}

func runOnce(logger *slog.Logger, reader *pdftext.Reader, proc *pipeline.Processor, dir, out, debugJSON string) error {
	paths, stats, err := ingest.CollectDirectory(dir, nil)
	if err != nil {
		return fmt.Errorf("collect %s: %w", dir, err)
	}
	logger.Info("batch.collect", "scanned", stats.Scanned, "matched", stats.Matched, "failed", stats.Failed)

	docs := make([]pipeline.Document, 0, len(paths))
	for _, p := range paths {
		text, err := reader.Text(p)
		if err != nil {
			// Recorded as a per-document error by the pipeline.
			logger.Error("batch.text_failed", "path", p, "err", err)
			text = ""
		}
		docs = append(docs, pipeline.Document{ID: filepath.Base(p), Text: text})
	}

	res := proc.ProcessDocuments(context.Background(), docs)
	for _, de := range res.Errors {
		printError("✗ %s: %s\n", de.ID, de.Err)
	}

	if debugJSON != "" {
		if err := pipeline.WriteDebugJSON(debugJSON, res.Debug); err != nil {
			logger.Warn("batch.debug_json_failed", "err", err)
		}
	}

	artifact, err := report.WriteWorkbook(res.Rows, logger)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}
	if err := os.WriteFile(out, artifact, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Printf("Report written to %s (%d rows, %d errors)\n", out, len(res.Rows), len(res.Errors))
	return nil
}
