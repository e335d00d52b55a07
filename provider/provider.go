// Package provider wraps external embedding and generation services behind
// narrow interfaces. Provider responses are normalized here so the core never
// depends on a third-party response schema. Retry and caching are explicit
// decorators, never hidden inside the call path.
package provider

import (
	"context"

	"github.com/scholarai/scholarai/model"
)

// Embedder converts text into fixed-length dense vectors. Implementations
// report backend failures by wrapping model.ErrProvider.
type Embedder interface {
	// Embed returns the embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch returns one vector per input text, order-preserving.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	// Dimension returns the length of produced vectors, 0 when not yet known.
	Dimension() int
}

// Generator produces text from a prompt. Implementations report backend
// failures by wrapping model.ErrProvider and make exactly one attempt per
// call; retry policy belongs to the caller's boundary layer.
type Generator interface {
	Generate(ctx context.Context, prompt string, config model.GenerationConfig) (string, error)
}
