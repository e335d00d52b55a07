package processor

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/scholarai/scholarai/model"
)

// Result is the outcome of a text extraction. Degraded marks a best-effort
// result where the extraction backend was unavailable and no text could be
// recovered; the document is still ingested so the failure is visible.
type Result struct {
	Text     string
	Degraded bool
}

// Extractor converts raw file bytes of one format family into UTF-8 text.
type Extractor interface {
	// Extensions lists the handled file extensions, lowercase with dot.
	Extensions() []string
	// Extract converts raw bytes to plain UTF-8 text.
	Extract(ctx context.Context, data []byte) (Result, error)
}

// Registry dispatches extraction by file extension, falling back to content
// sniffing when the extension is missing or unrecognized.
type Registry struct {
	byExtension map[string]Extractor
}

// NewRegistry creates a registry over the given extractors. Later extractors
// win extension conflicts.
func NewRegistry(extractors ...Extractor) *Registry {
	byExtension := make(map[string]Extractor)
	for _, e := range extractors {
		for _, ext := range e.Extensions() {
			byExtension[strings.ToLower(ext)] = e
		}
	}
	return &Registry{byExtension: byExtension}
}

// DefaultRegistry returns a registry covering plain text, rich text (docx),
// paginated documents (pdf) and images (OCR). External tools are invoked
// through the given runner.
func DefaultRegistry(runner CommandRunner) *Registry {
	return NewRegistry(
		NewPlainTextExtractor(),
		NewDocxExtractor(),
		NewPDFExtractor(runner),
		NewImageExtractor(runner),
	)
}

// Supported reports whether the filename's extension maps to an extractor.
func (r *Registry) Supported(filename string) bool {
	_, ok := r.byExtension[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// ExtractorFor resolves the extractor for a file. Extension dispatch is the
// first pass; when the extension is unknown the content is sniffed instead,
// so a misnamed file still lands at a usable extractor.
func (r *Registry) ExtractorFor(filename string, data []byte) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if e, ok := r.byExtension[ext]; ok {
		return e, nil
	}

	mime := http.DetectContentType(data)
	switch {
	case strings.HasPrefix(mime, "text/"):
		if e, ok := r.byExtension[".txt"]; ok {
			return e, nil
		}
	case mime == "application/pdf":
		if e, ok := r.byExtension[".pdf"]; ok {
			return e, nil
		}
	case mime == "application/zip":
		if e, ok := r.byExtension[".docx"]; ok {
			return e, nil
		}
	case strings.HasPrefix(mime, "image/"):
		if e, ok := r.byExtension[".png"]; ok {
			return e, nil
		}
	}

	return nil, model.ErrUnsupportedFormat
}

// PlainTextExtractor handles plain text files. Content that is not valid
// UTF-8 is salvaged by decoding it as latin-1.
type PlainTextExtractor struct{}

// NewPlainTextExtractor creates a new plain text extractor.
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

func (e *PlainTextExtractor) Extensions() []string {
	return []string{".txt", ".md", ".csv", ".log"}
}

func (e *PlainTextExtractor) Extract(_ context.Context, data []byte) (Result, error) {
	if utf8.Valid(data) {
		return Result{Text: string(data)}, nil
	}

	// Latin-1 salvage, one byte per rune
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return Result{Text: string(runes)}, nil
}
