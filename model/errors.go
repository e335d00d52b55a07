package model

import (
	"errors"
	"fmt"
)

// Error taxonomy for the core. Callers match with errors.Is.
var (
	// ErrUnsupportedFormat is returned for file types no extractor handles.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtraction is returned when a recognized format cannot be read.
	ErrExtraction = errors.New("extraction failed")

	// ErrValidation is returned for bad caller input before any provider call.
	ErrValidation = errors.New("validation failed")

	// ErrProvider is returned when an embedding or generation backend fails.
	// The core never retries these; retry policy belongs to the boundary layer.
	ErrProvider = errors.New("provider failed")

	// ErrTimeout is returned when a query exceeds the caller deadline.
	ErrTimeout = errors.New("query timed out")

	// ErrGeneration is returned when the provider produced no usable output.
	ErrGeneration = errors.New("generation failed")
)

// NewValidationError wraps ErrValidation with a reason.
func NewValidationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

// GenerationError carries the failed prompt for diagnostics.
type GenerationError struct {
	Prompt string
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%v: %v", ErrGeneration, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return ErrGeneration
}

// NewGenerationError creates a GenerationError attaching the prompt that failed.
func NewGenerationError(prompt string, err error) error {
	return &GenerationError{Prompt: prompt, Err: err}
}
