// Package extract converts uploaded documents into plain text. Dispatch is
// by filename extension over a closed set of formats; each format degrades
// to partial output where feasible rather than failing the whole document.
package extract

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/shadowintel/shadowbot/internal/agent"
	"github.com/shadowintel/shadowbot/internal/metrics"
)

// TextCap is the maximum extracted text length, in runes, enforced before
// the result reaches the prompt assembler.
const TextCap = 3500

// Format identifies a supported document format.
type Format int

// The closed format enumeration. FormatUnsupported is a successful
// classification meaning no text is available, not an error.
const (
	FormatUnsupported Format = iota
	FormatPDF
	FormatDocx
	FormatText
	FormatCSV
	FormatXLSX
	FormatImage
)

// String returns the format tag used in logs and metrics.
func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatDocx:
		return "docx"
	case FormatText:
		return "text"
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	case FormatImage:
		return "image"
	default:
		return "unsupported"
	}
}

// DetectFormat classifies a filename hint by its extension suffix,
// case-insensitive.
func DetectFormat(filenameHint string) Format {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filenameHint), "."))
	switch ext {
	case "pdf":
		return FormatPDF
	case "docx":
		return FormatDocx
	case "txt", "text", "md", "log":
		return FormatText
	case "csv":
		return FormatCSV
	case "xlsx":
		return FormatXLSX
	case "jpg", "jpeg", "png":
		return FormatImage
	default:
		return FormatUnsupported
	}
}

// Result is an immutable extraction outcome.
type Result struct {
	Format Format
	Text   string
}

// Extractor converts raw bytes of one format into plain text.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// TextRecognizer runs optical character recognition on image bytes.
type TextRecognizer interface {
	Recognize(data []byte) (string, error)
}

// Service dispatches extraction over the format registry.
type Service struct {
	extractors map[Format]Extractor
	logger     *zap.Logger
}

// NewService builds a Service with the default per-format extractors. A nil
// recognizer disables image OCR.
func NewService(recognizer TextRecognizer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		extractors: map[Format]Extractor{
			FormatPDF:   pdfExtractor{},
			FormatDocx:  docxExtractor{},
			FormatText:  textExtractor{},
			FormatCSV:   csvExtractor{},
			FormatXLSX:  xlsxExtractor{},
			FormatImage: imageExtractor{recognizer: recognizer},
		},
		logger: logger,
	}
}

// Extract converts document bytes to text using the format selected by the
// filename hint. It returns an unsupported Result for unknown extensions,
// agent.ErrNoReadableText when extraction yields nothing, and an
// agent.ExtractionError for processing faults.
func (s *Service) Extract(data []byte, filenameHint string) (Result, error) {
	format := DetectFormat(filenameHint)
	if format == FormatUnsupported {
		metrics.ObserveExtract(format.String(), "unsupported")
		return Result{Format: FormatUnsupported}, nil
	}

	text, err := s.extractors[format].Extract(data)
	if err != nil {
		metrics.ObserveExtract(format.String(), "error")
		s.logger.Warn("extraction failed",
			zap.String("format", format.String()),
			zap.String("filename", filenameHint),
			zap.Error(err),
		)
		return Result{Format: format}, &agent.ExtractionError{Format: format.String(), Err: err}
	}

	text = agent.TruncateRunes(strings.TrimSpace(text), TextCap)
	if text == "" {
		metrics.ObserveExtract(format.String(), "empty")
		return Result{Format: format}, agent.ErrNoReadableText
	}

	metrics.ObserveExtract(format.String(), "ok")
	return Result{Format: format, Text: text}, nil
}
