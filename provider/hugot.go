package provider

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/knights-analytics/hugot"
	"github.com/scholarai/scholarai/helper"
	"github.com/scholarai/scholarai/model"
)

// DefaultEmbeddingModel is the sentence transformer used when no remote
// embedding provider is configured. It produces 384-dimensional vectors.
const DefaultEmbeddingModel = "sentence-transformers/all-MiniLM-L6-v2"

// LocalEmbedder generates embeddings with a local ONNX sentence transformer.
// No network access is needed after the model download.
type LocalEmbedder struct {
	session   *hugot.Session
	run       func(texts []string) ([][]float32, error)
	dimension atomic.Int64
}

// NewLocalEmbedder downloads the model if needed and initializes a hugot
// session with the Go backend.
func NewLocalEmbedder(modelName string) (*LocalEmbedder, error) {
	if modelName == "" {
		modelName = DefaultEmbeddingModel
	}

	modelPath, err := helper.PrepareModel(modelName, "onnx/model.onnx")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrProvider, err)
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create hugot session: %v", model.ErrProvider, err)
	}

	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "embedder-pipeline",
	}
	sentencePipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("%w: failed to create sentence pipeline: %v (cleanup error: %v)", model.ErrProvider, err, destroyErr)
		}
		return nil, fmt.Errorf("%w: failed to create sentence pipeline: %v", model.ErrProvider, err)
	}

	run := func(texts []string) ([][]float32, error) {
		result, err := sentencePipeline.RunPipeline(texts)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to generate embeddings: %v", model.ErrProvider, err)
		}
		return result.Embeddings, nil
	}

	return &LocalEmbedder{session: session, run: run}, nil
}

// Embed returns the embedding vector for a single text.
func (e *LocalEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds all texts in one pipeline run, order-preserving.
func (e *LocalEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	embeddings, err := e.run(texts)
	if err != nil {
		return nil, err
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", model.ErrProvider, len(embeddings), len(texts))
	}

	if len(embeddings[0]) > 0 {
		e.dimension.CompareAndSwap(0, int64(len(embeddings[0])))
	}

	return embeddings, nil
}

// Dimension returns the embedding dimensionality, 0 before the first call.
func (e *LocalEmbedder) Dimension() int {
	return int(e.dimension.Load())
}

// Close destroys the hugot session.
func (e *LocalEmbedder) Close() error {
	return e.session.Destroy()
}
