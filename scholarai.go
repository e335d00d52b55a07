// Package scholarai turns a folder of placement preparation material into a
// question answering system. Documents are extracted, classified, chunked and
// indexed by embedding; queries retrieve the most similar chunks and answer
// from them with a single generation call.
package scholarai

import (
	"context"
	"log/slog"
	"os"

	"github.com/scholarai/scholarai/core/engine"
	"github.com/scholarai/scholarai/core/processor"
	"github.com/scholarai/scholarai/core/store"
	"github.com/scholarai/scholarai/database"
	"github.com/scholarai/scholarai/helper"
	"github.com/scholarai/scholarai/model"
	"github.com/scholarai/scholarai/provider"
)

// ScholarAI provides a unified interface to document processing, the vector
// store and the query engine.
type ScholarAI struct {
	Processor *processor.Processor
	Store     *store.Manager
	Engine    *engine.Engine
	// Logging
	log *slog.Logger
}

// Stats summarizes the current index contents.
type Stats struct {
	TotalChunks      int                 `json:"total_chunks"`
	AvailableFilters map[string][]string `json:"available_filters"`
}

// New creates a ScholarAI instance over the given providers and index
// backend. Use NewInMemory or NewWithPostgres for the common setups.
func New(embedder provider.Embedder, generator provider.Generator, index store.Index) *ScholarAI {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	storeManager := store.NewManager(embedder, index, logger)

	return &ScholarAI{
		Processor: processor.DefaultProcessor(logger),
		Store:     storeManager,
		Engine:    engine.NewEngine(storeManager, generator, logger),
		log:       logger,
	}
}

// NewInMemory creates a ScholarAI instance backed by the in-memory index.
// Suited for small corpora and tests; contents are lost on exit.
func NewInMemory(embedder provider.Embedder, generator provider.Generator) *ScholarAI {
	return New(embedder, generator, store.NewMemoryIndex())
}

// NewWithPostgres creates a ScholarAI instance backed by a pgvector index.
// embeddingDim must match the vectors the embedder produces.
func NewWithPostgres(config *helper.DatabaseConfiguration, embedder provider.Embedder, generator provider.Generator, embeddingDim int) (*ScholarAI, error) {
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	db := helper.NewDatabase("scholarai", config, logger)
	chunks, err := database.NewChunksDBHandler(db, embeddingDim, false)
	if err != nil {
		return nil, helper.NewError("create chunks handler", err)
	}

	storeManager := store.NewManager(embedder, chunks, logger)

	return &ScholarAI{
		Processor: processor.DefaultProcessor(logger),
		Store:     storeManager,
		Engine:    engine.NewEngine(storeManager, generator, logger),
		log:       logger,
	}, nil
}

// IngestFile processes a single file and indexes its chunks. Returns the
// classified document and the number of chunks indexed.
func (s *ScholarAI) IngestFile(ctx context.Context, path string) (*model.Document, int, error) {
	doc, chunks, err := s.Processor.Process(ctx, path)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.Store.Add(ctx, chunks)
	if err != nil {
		return nil, 0, helper.NewError("index chunks", err)
	}

	s.log.Info("Ingested file",
		slog.String("file", doc.FileName),
		slog.String("document_type", string(doc.Type)),
		slog.Int("chunks", count))

	return doc, count, nil
}

// IngestDirectory processes every supported file under dir and indexes the
// chunks of all successfully processed documents. Files that fail are
// reported in the batch result; they never abort the rest of the batch.
func (s *ScholarAI) IngestDirectory(ctx context.Context, dir string) (*processor.BatchResult, int, error) {
	result, err := s.Processor.ProcessDirectory(ctx, dir)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.Store.Add(ctx, result.Chunks)
	if err != nil {
		return nil, 0, helper.NewError("index chunks", err)
	}

	s.log.Info("Ingested directory",
		slog.String("dir", dir),
		slog.Int("documents", len(result.Documents)),
		slog.Int("chunks", count),
		slog.Int("failures", len(result.Failures)))

	return result, count, nil
}

// Query answers a question from the indexed material using the configured
// retrieval parameters. Use QueryWith for per-call overrides.
func (s *ScholarAI) Query(ctx context.Context, question string) (*model.Answer, error) {
	return s.Engine.Query(ctx, question, 0, nil)
}

// QueryWith answers a question with per-call retrieval overrides. A positive
// k replaces the configured TopK and non-nil filters replace the configured
// filters for this call only.
func (s *ScholarAI) QueryWith(ctx context.Context, question string, k int, filters map[string]string) (*model.Answer, error) {
	return s.Engine.Query(ctx, question, k, filters)
}

// RelevantDocuments returns the top chunks for a query without generating an
// answer. k overrides the configured TopK when positive.
func (s *ScholarAI) RelevantDocuments(ctx context.Context, query string, k int) ([]model.SearchResult, error) {
	return s.Engine.GetRelevantDocuments(ctx, query, k, nil)
}

// Search performs a filtered similarity search against the index.
func (s *ScholarAI) Search(ctx context.Context, query string, k int, filters map[string]string) ([]model.SearchResult, error) {
	return s.Store.Search(ctx, query, k, filters)
}

// UpdateRetrieverConfig replaces the retrieval parameters used by Query.
func (s *ScholarAI) UpdateRetrieverConfig(k int, filters map[string]string) error {
	return s.Engine.UpdateRetrieverConfig(k, filters)
}

// AvailableFilters maps each filterable metadata field to its observed values.
func (s *ScholarAI) AvailableFilters(ctx context.Context) (map[string][]string, error) {
	return s.Store.AvailableFilters(ctx)
}

// Count returns the number of indexed chunks.
func (s *ScholarAI) Count(ctx context.Context) (int, error) {
	return s.Store.Count(ctx)
}

// Stats returns the chunk count and the current filter values in one call.
func (s *ScholarAI) Stats(ctx context.Context) (*Stats, error) {
	count, err := s.Store.Count(ctx)
	if err != nil {
		return nil, err
	}
	filters, err := s.Store.AvailableFilters(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{TotalChunks: count, AvailableFilters: filters}, nil
}

// Reset deletes all indexed content. Idempotent.
func (s *ScholarAI) Reset(ctx context.Context) error {
	return s.Store.Reset(ctx)
}

// Close releases the index backend.
func (s *ScholarAI) Close() error {
	return s.Store.Close()
}
