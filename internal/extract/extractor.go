// Package extract provides text extraction from contract documents (PDF, DOCX, plain text).
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies the document format selected for extraction.
type Format string

const (
	FormatPDF         Format = "pdf"
	FormatDOCX        Format = "docx"
	FormatText        Format = "text"
	FormatUnsupported Format = "unsupported"
)

// ErrUnsupportedFormat is returned when the file extension maps to no known format.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Error is a typed extraction failure carrying the format and source path.
// Extraction failures are terminal for a document; callers surface them as a
// report-level error and run no further pipeline stages.
type Error struct {
	Format Format
	Path   string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract %s (%s): %v", e.Path, e.Format, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// DetectFormat maps a file path's extension to a Format.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".txt":
		return FormatText
	default:
		return FormatUnsupported
	}
}

// Extractor extracts plain text from contract document files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the file at path and returns its text content.
// PDF pages are concatenated with newline separators; DOCX paragraphs are
// joined with newlines; plain text is returned UTF-8 validated. An unknown
// extension yields ErrUnsupportedFormat (wrapped in *Error); any other failure
// yields an *Error wrapping the underlying cause.
func (e *Extractor) Extract(path string) (string, error) {
	format := DetectFormat(path)
	if format == FormatUnsupported {
		return "", &Error{Format: format, Path: path, Err: ErrUnsupportedFormat}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{Format: format, Path: path, Err: fmt.Errorf("read file: %w", err)}
	}
	text, err := e.ExtractBytes(content, format)
	if err != nil {
		return "", &Error{Format: format, Path: path, Err: err}
	}
	return text, nil
}

// ExtractBytes extracts text from content in the given format.
func (e *Extractor) ExtractBytes(content []byte, format Format) (string, error) {
	switch format {
	case FormatPDF:
		return extractPDF(content)
	case FormatDOCX:
		return extractDOCX(content)
	case FormatText:
		return extractPlain(content)
	default:
		return "", ErrUnsupportedFormat
	}
}
