package processor

import (
	"context"
	"os"

	"github.com/scholarai/scholarai/helper"
	"github.com/scholarai/scholarai/model"
)

const tesseractBinary = "tesseract"

// ImageExtractor handles scanned images by shelling out to tesseract. A
// missing OCR backend degrades to an empty result with the Degraded flag set,
// so batch ingestion keeps going and the gap is visible to the caller.
type ImageExtractor struct {
	runner CommandRunner
}

// NewImageExtractor creates a new OCR image extractor using the given runner.
func NewImageExtractor(runner CommandRunner) *ImageExtractor {
	return &ImageExtractor{runner: runner}
}

func (e *ImageExtractor) Extensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".tiff"}
}

func (e *ImageExtractor) Extract(ctx context.Context, data []byte) (Result, error) {
	if !e.runner.Available(tesseractBinary) {
		return Result{Degraded: true}, nil
	}

	tmp, err := writeTempFile(data, "*.img")
	if err != nil {
		return Result{}, helper.NewError("write temp image", model.ErrExtraction)
	}
	defer os.Remove(tmp)

	// "stdout" makes tesseract print the recognized text instead of
	// writing an output file
	out, err := e.runner.Run(ctx, tesseractBinary, tmp, "stdout")
	if err != nil {
		return Result{}, helper.NewError("run tesseract", model.ErrExtraction)
	}

	return Result{Text: string(out)}, nil
}
