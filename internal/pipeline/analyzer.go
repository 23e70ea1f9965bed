// Package pipeline orchestrates contract analysis: extraction, language
// detection, classification, entity extraction, reasoning calls, and audit
// logging.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"
	"unicode"

	"github.com/karar-labs/karar/internal/contract"
	"github.com/karar-labs/karar/internal/extract"
	"github.com/karar-labs/karar/internal/models"
	"go.uber.org/zap"
)

// defaultMaxClauses caps how many clauses are sent for per-clause reasoning.
// Each clause is one blocking round trip, so this bounds cost and latency.
const defaultMaxClauses = 15

// defaultSampleChars is how much leading text the language detection step reads.
const defaultSampleChars = 2000

// ReasoningEngine is the structured-reasoning capability the pipeline depends
// on. Implementations never return errors; they fall back to deterministic
// simulated responses instead.
type ReasoningEngine interface {
	AnalyzeClause(ctx context.Context, clauseText string, contractType models.ContractType) models.ClauseAnalysis
	SummarizeContract(ctx context.Context, fullText string, contractType models.ContractType) models.SummaryReport
	DetectAndTranslate(ctx context.Context, text string) models.Translation
}

// AuditSink receives every completed report.
type AuditSink interface {
	Append(models.AnalysisReport) error
}

// Analyzer runs the document analysis pipeline. It is constructed once at
// process start and shared; all methods are safe for concurrent use.
type Analyzer struct {
	extractor   *extract.Extractor
	engine      ReasoningEngine
	audit       AuditSink
	logger      *zap.Logger
	maxClauses  int
	sampleChars int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMaxClauses overrides the per-document clause analysis cap.
func WithMaxClauses(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxClauses = n
		}
	}
}

// WithSampleChars overrides how much leading text language detection reads.
func WithSampleChars(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.sampleChars = n
		}
	}
}

// NewAnalyzer creates an Analyzer. audit may be nil (reports are then not
// persisted; used by the CLI one-shot mode with an explicit log elsewhere).
func NewAnalyzer(engine ReasoningEngine, audit AuditSink, logger *zap.Logger, opts ...Option) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Analyzer{
		extractor:   extract.NewExtractor(),
		engine:      engine,
		audit:       audit,
		logger:      logger,
		maxClauses:  defaultMaxClauses,
		sampleChars: defaultSampleChars,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the full pipeline over the document at path and returns the
// assembled report. Extraction failures are terminal and nothing is logged;
// reasoning failures never surface because the engine always falls back.
func (a *Analyzer) Analyze(ctx context.Context, path string) (models.AnalysisReport, error) {
	start := time.Now()

	text, err := a.extractor.Extract(path)
	if err != nil {
		a.logger.Warn("extraction failed", zap.String("path", path), zap.Error(err))
		return models.AnalysisReport{}, err
	}

	// Devanagari in the leading sample routes the document through detection
	// and translation so English keyword classification still has a chance.
	classifyText := text
	var language string
	if sample := leadingRunes(text, a.sampleChars); containsDevanagari(sample) {
		translation := a.engine.DetectAndTranslate(ctx, sample)
		language = translation.Language
		if translation.TranslatedText != "" {
			classifyText = text + "\n" + translation.TranslatedText
		}
		a.logger.Info("non-English contract detected", zap.String("language", language))
	}

	contractType := contract.ClassifyType(classifyText)
	entities := contract.ExtractEntities(text)

	summary := a.engine.SummarizeContract(ctx, text, contractType)

	clauses := contract.SegmentClauses(text)
	if len(clauses) > a.maxClauses {
		clauses = clauses[:a.maxClauses]
	}
	analyzed := make([]models.AnalyzedClause, 0, len(clauses))
	for _, clause := range clauses {
		analyzed = append(analyzed, models.AnalyzedClause{
			OriginalText: clause,
			Analysis:     a.engine.AnalyzeClause(ctx, clause, contractType),
		})
	}

	report := models.AnalysisReport{
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Filename:       filepath.Base(path),
		Language:       language,
		ContractType:   contractType,
		Entities:       entities,
		Summary:        summary,
		ClauseAnalysis: analyzed,
	}

	if a.audit != nil {
		if err := a.audit.Append(report); err != nil {
			return models.AnalysisReport{}, fmt.Errorf("append audit log: %w", err)
		}
	}

	a.logger.Info("analysis complete",
		zap.String("filename", report.Filename),
		zap.String("contract_type", string(contractType)),
		zap.Int("clauses", len(analyzed)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// IsExtractionError reports whether err is a terminal extraction failure,
// which callers surface as a client-level error.
func IsExtractionError(err error) bool {
	var xerr *extract.Error
	return errors.As(err, &xerr)
}

// ExtractionMessage renders an extraction failure in the report error format
// consumed by the dashboard ("Error parsing PDF: ...", "Unsupported file format.").
func ExtractionMessage(err error) string {
	var xerr *extract.Error
	if !errors.As(err, &xerr) {
		return err.Error()
	}
	if errors.Is(err, extract.ErrUnsupportedFormat) {
		return "Unsupported file format."
	}
	switch xerr.Format {
	case extract.FormatPDF:
		return "Error parsing PDF: " + xerr.Err.Error()
	case extract.FormatDOCX:
		return "Error parsing DOCX: " + xerr.Err.Error()
	default:
		return "Error parsing TXT: " + xerr.Err.Error()
	}
}

// leadingRunes returns the first n runes of s.
func leadingRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func containsDevanagari(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Devanagari, r) {
			return true
		}
	}
	return false
}
