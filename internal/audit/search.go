package audit

import (
	"fmt"
	"os"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/karar-labs/karar/internal/models"
)

// indexedReport is the flattened document shape stored in the bleve index.
type indexedReport struct {
	Filename     string `json:"filename"`
	ContractType string `json:"contract_type"`
	Clauses      string `json:"clauses"`
	Summary      string `json:"summary"`
}

// ReportHit is one search result over the audit history.
type ReportHit struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// ReportIndex is a bleve keyword index over audit log entries, searchable by
// filename, contract type, clause text, and summary bullets.
type ReportIndex struct {
	index bleve.Index
}

// NewReportIndex creates or opens a bleve index at path. An empty path builds
// an in-memory index (used by tests and the CLI one-shot mode).
func NewReportIndex(path string) (*ReportIndex, error) {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so legal terms
	// match exactly as typed.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("filename", textFieldMapping)
	docMapping.AddFieldMappingsAt("contract_type", textFieldMapping)
	docMapping.AddFieldMappingsAt("clauses", textFieldMapping)
	docMapping.AddFieldMappingsAt("summary", textFieldMapping)
	im.DefaultMapping = docMapping

	if path == "" {
		index, err := bleve.NewMemOnly(im)
		if err != nil {
			return nil, fmt.Errorf("create in-memory report index: %w", err)
		}
		return &ReportIndex{index: index}, nil
	}

	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("open report index: %w", openErr)
		}
		return &ReportIndex{index: index}, nil
	}
	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("create report index: %w", err)
	}
	return &ReportIndex{index: index}, nil
}

// ReportID identifies a report in the index. Timestamp plus filename is
// reproducible and unique per analysis run.
func ReportID(r models.AnalysisReport) string {
	return r.Timestamp + "/" + r.Filename
}

// Index adds one report to the index.
func (ri *ReportIndex) Index(r models.AnalysisReport) error {
	var clauses strings.Builder
	for _, ca := range r.ClauseAnalysis {
		clauses.WriteString(ca.OriginalText)
		clauses.WriteString("\n")
	}
	doc := indexedReport{
		Filename:     r.Filename,
		ContractType: string(r.ContractType),
		Clauses:      clauses.String(),
		Summary:      strings.Join(r.Summary.Summary, "\n"),
	}
	return ri.index.Index(ReportID(r), doc)
}

// Search runs a match query over the history and returns up to limit hits.
func (ri *ReportIndex) Search(query string, limit int) ([]ReportHit, error) {
	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	results, err := ri.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("report search failed: %w", err)
	}
	out := make([]ReportHit, len(results.Hits))
	for i, hit := range results.Hits {
		out[i] = ReportHit{ID: hit.ID, Score: hit.Score}
	}
	return out, nil
}

// Close releases the underlying index.
func (ri *ReportIndex) Close() error {
	return ri.index.Close()
}
