package main

import (
	"log/slog"
	"os"

	"github.com/nomadsurfing/invoices-tracker/internal/common"
	"github.com/nomadsurfing/invoices-tracker/internal/extract"
	"github.com/nomadsurfing/invoices-tracker/internal/pdftext"
	"github.com/nomadsurfing/invoices-tracker/internal/pipeline"
	"github.com/nomadsurfing/invoices-tracker/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := common.LoadConfig()
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}

	proc := pipeline.NewProcessor(logger, extract.NewExtractor(logger))
	srv := server.New(cfg, logger, proc, pdftext.NewReader(logger))
	if err := srv.Run(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
