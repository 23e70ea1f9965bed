package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/karar-labs/karar/internal/audit"
	"github.com/karar-labs/karar/internal/config"
	"github.com/karar-labs/karar/internal/models"
	"github.com/karar-labs/karar/internal/pipeline"
	"github.com/karar-labs/karar/internal/reason"
	"go.uber.org/zap"
)

// offlineEngine answers with the deterministic simulated responses, as a
// client with no credential would.
type offlineEngine struct{}

func (offlineEngine) AnalyzeClause(_ context.Context, clauseText string, _ models.ContractType) models.ClauseAnalysis {
	return reason.SimulateClauseAnalysis(clauseText)
}

func (offlineEngine) SummarizeContract(_ context.Context, _ string, _ models.ContractType) models.SummaryReport {
	return reason.SimulateSummary()
}

func (offlineEngine) DetectAndTranslate(_ context.Context, _ string) models.Translation {
	return reason.SimulateTranslation()
}

func newTestServer(t *testing.T) (*Server, *audit.Log) {
	t.Helper()
	dir := t.TempDir()
	index, err := audit.NewReportIndex("")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = index.Close() })
	log, err := audit.NewLog(filepath.Join(dir, "audit_trail.json"), index, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(log.Close)

	analyzer := pipeline.NewAnalyzer(offlineEngine{}, log, zap.NewNop())
	srv := NewServer(analyzer, log, index, filepath.Join(dir, "uploads"),
		&config.ServerConfig{Host: "localhost", Port: 8001}, zap.NewNop())
	return srv, log
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

const uploadContract = `VENDOR CONTRACT

1. Payment: The supplier invoices monthly and payment is due within thirty days.
2. Termination: Either party may terminate this contract with sixty days notice.`

func TestHandleAnalyze(t *testing.T) {
	srv, log := newTestServer(t)

	body, contentType := multipartBody(t, "vendor.txt", uploadContract)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.handleAnalyze(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var report models.AnalysisReport
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.OriginalFilename != "vendor.txt" {
		t.Errorf("original_filename = %q", report.OriginalFilename)
	}
	if report.ContractType != models.TypeVendor {
		t.Errorf("contract_type = %q", report.ContractType)
	}
	if len(report.ClauseAnalysis) != 2 {
		t.Errorf("clause analyses = %d, want 2", len(report.ClauseAnalysis))
	}
	if log.Len() != 1 {
		t.Errorf("audit entries = %d, want 1", log.Len())
	}
	// The scratch name, not the original, is what gets audited.
	if got := log.All()[0].OriginalFilename; got != "" {
		t.Errorf("audited original_filename = %q, want empty", got)
	}
}

func TestHandleAnalyze_unsupportedFormat(t *testing.T) {
	srv, log := newTestServer(t)

	body, contentType := multipartBody(t, "scan.png", "not really an image")
	r := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	srv.handleAnalyze(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["error"] != "Unsupported file format." {
		t.Errorf("error = %q", out["error"])
	}
	if log.Len() != 0 {
		t.Error("failed extraction must not be audited")
	}
}

func TestHandleAnalyze_missingFile(t *testing.T) {
	srv, _ := newTestServer(t)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("note", "no file here")
	_ = mw.Close()

	r := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.handleAnalyze(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleAuditLogs_empty(t *testing.T) {
	srv, _ := newTestServer(t)
	r := httptest.NewRequest(http.MethodGet, "/api/v1/audit-logs", nil)
	w := httptest.NewRecorder()
	srv.handleAuditLogs(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["message"] != "No logs found" {
		t.Errorf("message = %q", out["message"])
	}
}

func TestHandleAuditLogs_afterAnalyses(t *testing.T) {
	srv, _ := newTestServer(t)
	for i := 0; i < 2; i++ {
		body, contentType := multipartBody(t, "c.txt", uploadContract)
		r := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", body)
		r.Header.Set("Content-Type", contentType)
		srv.handleAnalyze(httptest.NewRecorder(), r)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/audit-logs", nil)
	w := httptest.NewRecorder()
	srv.handleAuditLogs(w, r)
	var entries []models.AnalysisReport
	if err := json.NewDecoder(w.Body).Decode(&entries); err != nil {
		t.Fatalf("expected JSON array: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("entries = %d, want 2", len(entries))
	}
}

func TestHandleAuditSearch(t *testing.T) {
	srv, _ := newTestServer(t)
	body, contentType := multipartBody(t, "vendor.txt", uploadContract)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", body)
	r.Header.Set("Content-Type", contentType)
	srv.handleAnalyze(httptest.NewRecorder(), r)

	r = httptest.NewRequest(http.MethodGet, "/api/v1/audit-logs/search?q=supplier", nil)
	w := httptest.NewRecorder()
	srv.handleAuditSearch(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var out struct {
		Query string           `json:"query"`
		Hits  []auditSearchHit `json:"hits"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(out.Hits))
	}
	if out.Hits[0].Report == nil || out.Hits[0].Report.ContractType != models.TypeVendor {
		t.Errorf("hit report missing or wrong: %+v", out.Hits[0])
	}
}

func TestHandleAuditSearch_missingQuery(t *testing.T) {
	srv, _ := newTestServer(t)
	r := httptest.NewRequest(http.MethodGet, "/api/v1/audit-logs/search", nil)
	w := httptest.NewRecorder()
	srv.handleAuditSearch(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.handleHealth(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}
