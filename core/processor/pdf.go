package processor

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/scholarai/scholarai/helper"
	"github.com/scholarai/scholarai/model"
)

const pdftotextBinary = "pdftotext"

// PDFExtractor handles paginated PDF documents by shelling out to pdftotext
// (poppler-utils). When the tool is not installed the extraction degrades to
// an empty result instead of failing the whole document.
type PDFExtractor struct {
	runner CommandRunner
}

// NewPDFExtractor creates a new PDF extractor using the given runner.
func NewPDFExtractor(runner CommandRunner) *PDFExtractor {
	return &PDFExtractor{runner: runner}
}

func (e *PDFExtractor) Extensions() []string {
	return []string{".pdf"}
}

func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (Result, error) {
	if !e.runner.Available(pdftotextBinary) {
		return Result{Degraded: true}, nil
	}

	tmp, err := writeTempFile(data, "*.pdf")
	if err != nil {
		return Result{}, helper.NewError("write temp pdf", model.ErrExtraction)
	}
	defer os.Remove(tmp)

	// "-" writes the extracted text to stdout
	out, err := e.runner.Run(ctx, pdftotextBinary, "-layout", tmp, "-")
	if err != nil {
		return Result{}, helper.NewError("run pdftotext", model.ErrExtraction)
	}

	text := strings.TrimRight(string(out), "\n")
	return Result{Text: text}, nil
}

// writeTempFile stores data in a temp file matching the given pattern and
// returns its path. The caller removes the file.
func writeTempFile(data []byte, pattern string) (string, error) {
	f, err := os.CreateTemp("", filepath.Base(pattern))
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
