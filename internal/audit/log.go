// Package audit persists every analysis report to an append-only JSON log and
// keeps a keyword index over past reports for history search.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/karar-labs/karar/internal/models"
	"go.uber.org/zap"
)

// Log is an append-only sequence of analysis reports persisted as a single
// JSON array. Appends from concurrent analyses are serialized through one
// writer goroutine, and each write goes to a temp file renamed into place, so
// concurrent callers can never interleave or drop entries.
type Log struct {
	path   string
	index  *ReportIndex
	logger *zap.Logger

	mu      sync.RWMutex
	reports []models.AnalysisReport

	requests  chan appendRequest
	writerWG  sync.WaitGroup
	closeOnce sync.Once
}

type appendRequest struct {
	report models.AnalysisReport
	result chan error
}

// NewLog opens (or starts) the audit log at path, loading any existing
// entries. index is optional; when set, every appended report is indexed.
func NewLog(path string, index *ReportIndex, logger *zap.Logger) (*Log, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Log{
		path:     path,
		index:    index,
		logger:   logger,
		requests: make(chan appendRequest),
	}
	if err := l.load(); err != nil {
		return nil, err
	}
	l.writerWG.Add(1)
	go l.writer()
	return l, nil
}

func (l *Log) load() error {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read audit log: %w", err)
	}
	var reports []models.AnalysisReport
	if err := json.Unmarshal(data, &reports); err != nil {
		// A truncated or hand-edited log should not brick the service; start
		// fresh but keep the corrupt file readable for forensics.
		l.logger.Warn("audit log unreadable, starting empty", zap.String("path", l.path), zap.Error(err))
		return nil
	}
	l.reports = reports
	return nil
}

// Append adds report to the log, blocking until it is durable on disk.
// Reports are never edited or removed once appended.
func (l *Log) Append(report models.AnalysisReport) error {
	req := appendRequest{report: report, result: make(chan error, 1)}
	l.requests <- req
	return <-req.result
}

// All returns a copy of every report in append order.
func (l *Log) All() []models.AnalysisReport {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.AnalysisReport, len(l.reports))
	copy(out, l.reports)
	return out
}

// Len returns the number of reports in the log.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.reports)
}

// Close stops the writer goroutine. Append must not be called after Close.
func (l *Log) Close() {
	l.closeOnce.Do(func() {
		close(l.requests)
		l.writerWG.Wait()
	})
}

// writer is the single goroutine allowed to mutate the log.
func (l *Log) writer() {
	defer l.writerWG.Done()
	for req := range l.requests {
		req.result <- l.appendOne(req.report)
	}
}

func (l *Log) appendOne(report models.AnalysisReport) error {
	l.mu.Lock()
	l.reports = append(l.reports, report)
	snapshot := make([]models.AnalysisReport, len(l.reports))
	copy(snapshot, l.reports)
	l.mu.Unlock()

	if err := l.persist(snapshot); err != nil {
		l.mu.Lock()
		l.reports = l.reports[:len(l.reports)-1]
		l.mu.Unlock()
		return err
	}

	if l.index != nil {
		if err := l.index.Index(report); err != nil {
			// The durable log is the source of truth; index failures only
			// degrade search.
			l.logger.Warn("audit index update failed", zap.Error(err))
		}
	}
	return nil
}

// persist writes the whole array to a temp file and renames it into place.
func (l *Log) persist(reports []models.AnalysisReport) error {
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal audit log: %w", err)
	}
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create audit log dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".audit-*.json")
	if err != nil {
		return fmt.Errorf("create temp audit log: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp audit log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp audit log: %w", err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace audit log: %w", err)
	}
	return nil
}
