// Package server exposes the upload surface: a multipart POST of invoice
// documents that answers with the finished XLSX artifact. Everything here is
// thin plumbing around the pipeline.
package server

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/nomadsurfing/invoices-tracker/internal/common"
	"github.com/nomadsurfing/invoices-tracker/internal/pdftext"
	"github.com/nomadsurfing/invoices-tracker/internal/pipeline"
)

type Server struct {
	cfg    *common.Config
	logger *slog.Logger
	proc   *pipeline.Processor
	source *pdftext.Reader
}

func New(cfg *common.Config, logger *slog.Logger, proc *pipeline.Processor, source *pdftext.Reader) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, logger: logger, proc: proc, source: source}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.GET("/healthz", s.health)
	r.POST("/analyze", s.analyze)
	return r
}

// Run sweeps leftover temp files and serves until the listener fails.
func (s *Server) Run() error {
	if err := os.MkdirAll(s.cfg.Server.TempDir, 0o755); err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	s.sweepTempDir()
	s.logger.Info("server.listen", "addr", s.cfg.Server.Addr)
	return s.Router().Run(s.cfg.Server.Addr)
}

// sweepTempDir clears uploads orphaned by a previous run.
func (s *Server) sweepTempDir() {
	entries, err := os.ReadDir(s.cfg.Server.TempDir)
	if err != nil {
		s.logger.Warn("server.sweep.read_failed", "dir", s.cfg.Server.TempDir, "err", err)
		return
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.cfg.Server.TempDir, e.Name())); err == nil {
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("server.sweep.ok", "removed", removed)
	}
}
