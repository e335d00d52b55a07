// Package engine answers student questions over the indexed study material.
// It retrieves the most similar chunks from the vector store, assembles a
// deterministic prompt, and makes a single generation call per query.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/scholarai/scholarai/core/store"
	"github.com/scholarai/scholarai/helper"
	"github.com/scholarai/scholarai/model"
	"github.com/scholarai/scholarai/provider"
)

// noRelevantAnswer is returned when retrieval finds nothing; the generation
// provider is not invoked in that case.
const noRelevantAnswer = "I couldn't find any relevant information in the learning materials for your question."

// Confidence thresholds on the top result's cosine similarity.
const (
	highConfidenceSimilarity   = 0.75
	mediumConfidenceSimilarity = 0.50
)

// Engine is the retrieval-augmented query engine. The retriever configuration
// is mutable at runtime and guarded by a mutex, so concurrent queries see a
// consistent snapshot.
type Engine struct {
	store     *store.Manager
	generator provider.Generator

	mu        sync.RWMutex
	retriever model.RetrieverConfig

	promptConfig     model.PromptConfig
	generationConfig model.GenerationConfig
	log              *slog.Logger
}

// NewEngine creates an engine over a vector store manager and a generation
// provider, with default retriever, prompt, and generation parameters.
func NewEngine(storeManager *store.Manager, generator provider.Generator, logger *slog.Logger) *Engine {
	return &Engine{
		store:            storeManager,
		generator:        generator,
		retriever:        model.DefaultRetrieverConfig(),
		promptConfig:     model.DefaultPromptConfig(),
		generationConfig: model.DefaultGenerationConfig(),
		log:              logger,
	}
}

// UpdateRetrieverConfig replaces the retrieval parameters used by subsequent
// queries. k must be positive and every filter key must be filterable.
func (e *Engine) UpdateRetrieverConfig(k int, filters map[string]string) error {
	if k <= 0 {
		return model.NewValidationError("k must be positive")
	}
	if err := model.ValidateFilters(filters); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.retriever = model.RetrieverConfig{TopK: k, Filters: filters}

	e.log.Info("Updated retriever config", slog.Int("k", k), slog.Int("filters", len(filters)))

	return nil
}

// RetrieverConfig returns a snapshot of the current retrieval parameters.
func (e *Engine) RetrieverConfig() model.RetrieverConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()
	config := e.retriever
	if config.Filters != nil {
		filters := make(map[string]string, len(config.Filters))
		for k, v := range config.Filters {
			filters[k] = v
		}
		config.Filters = filters
	}
	return config
}

// Query answers the question from indexed material. A positive k overrides
// the configured TopK for this call and non-nil filters replace the
// configured filters. When nothing relevant is retrieved it returns a
// low-confidence answer without calling the generation provider. A generation
// failure carries the assembled prompt so the caller can inspect exactly what
// was sent.
func (e *Engine) Query(ctx context.Context, question string, k int, filters map[string]string) (*model.Answer, error) {
	results, err := e.retrieve(ctx, question, k, filters)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		e.log.Info("No relevant chunks retrieved", slog.String("question", question))
		return &model.Answer{
			Text:       noRelevantAnswer,
			Sources:    []model.Source{},
			Confidence: model.ConfidenceLow,
		}, nil
	}

	prompt := buildPrompt(results, question, e.promptConfig)

	text, err := e.generator.Generate(ctx, prompt, e.generationConfig)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: generation: %v", model.ErrTimeout, err)
		}
		return nil, model.NewGenerationError(prompt, err)
	}

	answer := &model.Answer{
		Text:       text,
		Sources:    e.sources(results),
		Confidence: confidenceFor(results),
		Prompt:     prompt,
	}

	e.log.Info("Answered query",
		slog.Int("sources", len(answer.Sources)),
		slog.String("confidence", string(answer.Confidence)))

	return answer, nil
}

// GetRelevantDocuments returns the top chunks for the query without invoking
// generation. Per-call k and filters override the configured defaults the
// same way they do for Query.
func (e *Engine) GetRelevantDocuments(ctx context.Context, query string, k int, filters map[string]string) ([]model.SearchResult, error) {
	return e.retrieve(ctx, query, k, filters)
}

// retrieve is the shared retrieval path of Query and GetRelevantDocuments.
// k <= 0 means the configured TopK, nil filters mean the configured filters
// (an empty non-nil map disables them for this call).
func (e *Engine) retrieve(ctx context.Context, query string, k int, filters map[string]string) ([]model.SearchResult, error) {
	config := e.RetrieverConfig()
	if k <= 0 {
		k = config.TopK
	}
	if filters == nil {
		filters = config.Filters
	}

	results, err := e.store.Search(ctx, query, k, filters)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: retrieval: %v", model.ErrTimeout, err)
		}
		return nil, helper.NewError("retrieve chunks", err)
	}

	return results, nil
}

// sources converts retrieval results into citation records.
func (e *Engine) sources(results []model.SearchResult) []model.Source {
	sources := make([]model.Source, len(results))
	for i, result := range results {
		meta := result.Chunk.Metadata
		sources[i] = model.Source{
			FileName:       meta.String(model.FieldFileName),
			Source:         meta.String(model.FieldSource),
			ChunkIndex:     result.Chunk.ChunkIndex,
			ContentPreview: truncateRunes(result.Chunk.Content, e.promptConfig.SourcePreviewLength),
			DocumentType:   meta.String(model.FieldDocumentType),
			Company:        meta.String(model.FieldCompany),
			Subject:        meta.String(model.FieldSubject),
			Difficulty:     meta.String(model.FieldDifficulty),
			Year:           meta.String(model.FieldYear),
			Similarity:     result.Similarity,
		}
	}
	return sources
}

// confidenceFor derives the discrete tier from the best similarity score.
// Results arrive ordered most-similar first, so the first entry decides.
func confidenceFor(results []model.SearchResult) model.Confidence {
	if len(results) == 0 {
		return model.ConfidenceLow
	}
	top := results[0].Similarity
	switch {
	case top >= highConfidenceSimilarity:
		return model.ConfidenceHigh
	case top >= mediumConfidenceSimilarity:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}
