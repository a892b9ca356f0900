package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nomadsurfing/invoices-tracker/internal/pipeline"
	"github.com/nomadsurfing/invoices-tracker/internal/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// analyze accepts a multipart batch of PDF or TXT invoices under the "files"
// field and responds with the XLSX report as an attachment. Documents that
// fail extraction are omitted from the report; their count travels in the
// X-Invoice-Errors header so a partial batch still downloads.
func (s *Server) analyze(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid multipart form: %v", err)})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
		return
	}

	var docs []pipeline.Document
	var tempPaths []string
	defer func() {
		for _, p := range tempPaths {
			if err := os.Remove(p); err != nil {
				s.logger.Warn("server.cleanup_failed", "path", p, "err", err)
			}
		}
	}()

	for _, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if ext != ".pdf" && ext != ".txt" {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported file type: %s", fh.Filename)})
			return
		}
		tmp := filepath.Join(s.cfg.Server.TempDir, "input_"+uuid.NewString()+ext)
		if err := c.SaveUploadedFile(fh, tmp); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("save upload: %v", err)})
			return
		}
		tempPaths = append(tempPaths, tmp)

		text, err := s.source.Text(tmp)
		if err != nil {
			// Feed an empty document through: the pipeline records it as a
			// per-document error instead of failing the upload.
			s.logger.Error("server.text_failed", "file", fh.Filename, "err", err)
			text = ""
		}
		docs = append(docs, pipeline.Document{ID: fh.Filename, Text: text})
	}

	res := s.proc.ProcessDocuments(c.Request.Context(), docs)

	if s.cfg.Report.DebugJSON != "" {
		if err := pipeline.WriteDebugJSON(s.cfg.Report.DebugJSON, res.Debug); err != nil {
			s.logger.Warn("server.debug_json_failed", "err", err)
		}
	}

	artifact, err := report.WriteWorkbook(res.Rows, s.logger)
	if err != nil {
		s.logger.Error("server.report_failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report generation failed"})
		return
	}

	filename := report.ArtifactName(time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("X-Invoice-Errors", strconv.Itoa(len(res.Errors)))
	c.Data(http.StatusOK, xlsxContentType, artifact)
}
