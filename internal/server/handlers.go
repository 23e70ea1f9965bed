package server

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/karar-labs/karar/internal/audit"
	"github.com/karar-labs/karar/internal/models"
	"github.com/karar-labs/karar/internal/pipeline"
	"go.uber.org/zap"
)

// maxUploadBytes caps uploaded contract size.
const maxUploadBytes = 32 << 20

// handleAnalyze accepts one uploaded contract, persists it to the scratch
// upload dir under a generated unique name, runs the pipeline, and returns the
// report with the caller's original filename attached.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	scratchName := uuid.New().String() + filepath.Ext(header.Filename)
	scratchPath := filepath.Join(s.uploadDir, scratchName)
	if err := saveUpload(file, s.uploadDir, scratchPath); err != nil {
		s.logger.Error("saving upload failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "could not store uploaded file")
		return
	}

	s.logger.Debug("analyze request",
		zap.String("original_filename", header.Filename),
		zap.String("scratch", scratchName),
	)

	report, err := s.analyzer.Analyze(r.Context(), scratchPath)
	if err != nil {
		if pipeline.IsExtractionError(err) {
			s.respondError(w, http.StatusBadRequest, pipeline.ExtractionMessage(err))
			return
		}
		s.logger.Error("analysis failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	report.OriginalFilename = header.Filename
	s.respondJSON(w, http.StatusOK, report)
}

func saveUpload(src io.Reader, dir, path string) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

// handleAuditLogs returns the full analysis history.
func (s *Server) handleAuditLogs(w http.ResponseWriter, r *http.Request) {
	entries := s.log.All()
	if len(entries) == 0 {
		s.respondJSON(w, http.StatusOK, map[string]string{"message": "No logs found"})
		return
	}
	s.respondJSON(w, http.StatusOK, entries)
}

// auditSearchHit pairs an index hit with its full report.
type auditSearchHit struct {
	ID     string                 `json:"id"`
	Score  float64                `json:"score"`
	Report *models.AnalysisReport `json:"report,omitempty"`
}

// handleAuditSearch runs a keyword query over the analysis history.
func (s *Server) handleAuditSearch(w http.ResponseWriter, r *http.Request) {
	if s.index == nil {
		s.respondError(w, http.StatusNotImplemented, "history search not enabled")
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		s.respondError(w, http.StatusBadRequest, "q parameter is required")
		return
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	hits, err := s.index.Search(query, limit)
	if err != nil {
		s.logger.Error("audit search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	byID := make(map[string]models.AnalysisReport)
	for _, rep := range s.log.All() {
		byID[audit.ReportID(rep)] = rep
	}
	out := make([]auditSearchHit, len(hits))
	for i, hit := range hits {
		out[i] = auditSearchHit{ID: hit.ID, Score: hit.Score}
		if rep, ok := byID[hit.ID]; ok {
			out[i].Report = &rep
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"query": query, "hits": out})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
