package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/scholarai/scholarai/helper"
	"github.com/scholarai/scholarai/model"
	"github.com/scholarai/scholarai/provider"
)

// Manager indexes chunks by embedding and answers metadata-filtered
// similarity searches. It owns no retrieval policy beyond ranking; the RAG
// engine builds on top of it.
type Manager struct {
	embedder provider.Embedder
	index    Index
	log      *slog.Logger
}

// NewManager creates a vector store manager over an embedding provider and a
// similarity-index backend.
func NewManager(embedder provider.Embedder, index Index, logger *slog.Logger) *Manager {
	return &Manager{
		embedder: embedder,
		index:    index,
		log:      logger,
	}
}

// Add embeds and indexes the chunks, returning the inserted count. Empty
// input is a no-op. The whole batch is embedded before anything touches the
// index, so a provider failure leaves the index untouched and a backend
// commit is all-or-nothing.
func (m *Manager) Add(ctx context.Context, chunks []*model.Chunk) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	vectors, err := m.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, helper.NewError("embed chunks", err)
	}
	if len(vectors) != len(chunks) {
		return 0, helper.NewError("embed chunks",
			fmt.Errorf("%w: got %d vectors for %d chunks", model.ErrProvider, len(vectors), len(chunks)))
	}

	records := make([]Record, len(chunks))
	for i, chunk := range chunks {
		records[i] = Record{
			ChunkID:     chunk.ID,
			DocumentRID: chunk.DocumentRID,
			Content:     chunk.Content,
			ChunkIndex:  chunk.ChunkIndex,
			Overlap:     chunk.Overlap,
			Embedding:   vectors[i],
			Metadata:    chunk.Metadata.Clone(),
		}
	}

	if err := m.index.Add(ctx, records); err != nil {
		return 0, helper.NewError("index chunks", err)
	}

	m.log.Info("Indexed chunks", slog.Int("count", len(records)))

	return len(records), nil
}

// Search embeds the query text and returns at most k results ranked by
// cosine similarity, descending. Filters are validated before any provider
// or index access; zero matches is a valid empty result.
func (m *Manager) Search(ctx context.Context, query string, k int, filters map[string]string) ([]model.SearchResult, error) {
	if k <= 0 {
		return nil, model.NewValidationError("k must be positive")
	}
	if err := model.ValidateFilters(filters); err != nil {
		return nil, err
	}

	embedding, err := m.embedder.Embed(ctx, query)
	if err != nil {
		return nil, helper.NewError("embed query", err)
	}

	results, err := m.index.Search(ctx, embedding, k, filters)
	if err != nil {
		return nil, helper.NewError("search index", err)
	}

	return results, nil
}

// AvailableFilters maps each filterable metadata field to its distinct
// observed values, reflecting current store contents.
func (m *Manager) AvailableFilters(ctx context.Context) (map[string][]string, error) {
	filters := make(map[string][]string, len(model.FilterableFields))
	for _, field := range model.FilterableFields {
		values, err := m.index.DistinctValues(ctx, field)
		if err != nil {
			return nil, helper.NewError("collect filter values", err)
		}
		filters[field] = values
	}
	return filters, nil
}

// Count returns the number of indexed chunks.
func (m *Manager) Count(ctx context.Context) (int, error) {
	return m.index.Count(ctx)
}

// DeleteDocument removes all indexed chunks of the document.
func (m *Manager) DeleteDocument(ctx context.Context, documentRID uuid.UUID) error {
	return m.index.DeleteDocument(ctx, documentRID)
}

// Reset deletes all indexed content. Idempotent.
func (m *Manager) Reset(ctx context.Context) error {
	if err := m.index.Reset(ctx); err != nil {
		return helper.NewError("reset index", err)
	}
	m.log.Info("Reset vector store")
	return nil
}

// Close releases the index backend.
func (m *Manager) Close() error {
	return m.index.Close()
}
