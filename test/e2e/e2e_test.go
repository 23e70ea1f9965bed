package e2e

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/karar-labs/karar/internal/audit"
	"github.com/karar-labs/karar/internal/pipeline"
	"github.com/karar-labs/karar/internal/reason"
)

// TestE2E_AnalyzeCorpus runs every fixture through the real pipeline with the
// offline reasoning fallback and checks the reports and the audit trail.
func TestE2E_AnalyzeCorpus(t *testing.T) {
	dir := t.TempDir()
	docDir := filepath.Join(dir, "contracts")
	if err := os.MkdirAll(docDir, 0755); err != nil {
		t.Fatal(err)
	}

	index, err := audit.NewReportIndex("")
	if err != nil {
		t.Fatal(err)
	}
	defer index.Close()
	auditPath := filepath.Join(dir, "audit_trail.json")
	log, err := audit.NewLog(auditPath, index, nil)
	if err != nil {
		t.Fatal(err)
	}

	// No credential configured, so every reasoning call takes the simulated path.
	engine := reason.NewClient(reason.Config{}, nil)
	if engine.Live() {
		t.Fatal("client must not be live without a credential")
	}
	analyzer := pipeline.NewAnalyzer(engine, log, nil)
	ctx := context.Background()

	corpus := BuildCorpus()
	for _, fx := range corpus {
		t.Run(fx.Name, func(t *testing.T) {
			path := filepath.Join(docDir, fx.Name+fx.Ext)
			if err := os.WriteFile(path, FixtureBytes(fx.Ext, fx.Text), 0644); err != nil {
				t.Fatal(err)
			}

			report, err := analyzer.Analyze(ctx, path)
			if err != nil {
				t.Fatalf("analyze %s: %v", fx.Name, err)
			}
			if report.ContractType != fx.WantType {
				t.Errorf("contract_type = %q, want %q", report.ContractType, fx.WantType)
			}
			if report.Language != fx.WantLanguage {
				t.Errorf("language = %q, want %q", report.Language, fx.WantLanguage)
			}
			if len(report.ClauseAnalysis) != fx.WantClauses {
				t.Fatalf("clauses = %d, want %d", len(report.ClauseAnalysis), fx.WantClauses)
			}
			for i, clause := range report.ClauseAnalysis {
				if clause.Analysis.Category != fx.WantCategories[i] {
					t.Errorf("clause %d category = %q, want %q", i, clause.Analysis.Category, fx.WantCategories[i])
				}
			}
			if report.Timestamp == "" || report.Filename != fx.Name+fx.Ext {
				t.Errorf("report identity incomplete: timestamp=%q filename=%q", report.Timestamp, report.Filename)
			}
		})
	}

	if log.Len() != len(corpus) {
		t.Errorf("audit entries = %d, want %d", log.Len(), len(corpus))
	}

	// Full history must survive a restart of the audit log.
	log.Close()
	reopened, err := audit.NewLog(auditPath, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	if reopened.Len() != len(corpus) {
		t.Errorf("reloaded audit entries = %d, want %d", reopened.Len(), len(corpus))
	}

	// The history index was fed during analysis and finds reports by clause text.
	hits, err := index.Search("supplier", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits for %q = %d, want 1", "supplier", len(hits))
	}
	byID := make(map[string]string)
	for _, rep := range reopened.All() {
		byID[audit.ReportID(rep)] = rep.Filename
	}
	if byID[hits[0].ID] != "vendor.txt" {
		t.Errorf("hit resolves to %q, want vendor.txt", byID[hits[0].ID])
	}
}

// TestE2E_ClauseCap analyzes a contract with far more clauses than the
// reasoning budget and verifies the report stops at the cap.
func TestE2E_ClauseCap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "long.txt")
	if err := os.WriteFile(path, []byte(BuildLongContract(30)), 0644); err != nil {
		t.Fatal(err)
	}

	engine := reason.NewClient(reason.Config{}, nil)
	analyzer := pipeline.NewAnalyzer(engine, nil, nil)
	report, err := analyzer.Analyze(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.ClauseAnalysis) != 15 {
		t.Errorf("clauses = %d, want 15", len(report.ClauseAnalysis))
	}
	// Order is preserved: first clause is item 1, last is item 15.
	first := report.ClauseAnalysis[0].OriginalText
	last := report.ClauseAnalysis[14].OriginalText
	if first[:2] != "1." || last[:3] != "15." {
		t.Errorf("clause order broken: first=%q last=%q", first[:2], last[:3])
	}
}
