package store

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/scholarai/scholarai/model"
)

// MemoryIndex is an in-memory brute-force cosine similarity index. A
// single-writer/multiple-reader lock serializes structural mutations against
// concurrent searches, so a reader never observes a partially applied add or
// a store mid-reset.
type MemoryIndex struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Add appends all records under the write lock, so the batch becomes visible
// to readers at once.
func (m *MemoryIndex) Add(_ context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, records...)
	return nil
}

// Search ranks all matching records by cosine similarity, descending.
func (m *MemoryIndex) Search(_ context.Context, embedding []float32, k int, filters map[string]string) ([]model.SearchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []model.SearchResult
	for i := range m.records {
		record := &m.records[i]
		if len(filters) > 0 && !record.Metadata.Matches(filters) {
			continue
		}
		results = append(results, model.SearchResult{
			Chunk: &model.Chunk{
				ID:          record.ChunkID,
				DocumentRID: record.DocumentRID,
				Content:     record.Content,
				ChunkIndex:  record.ChunkIndex,
				Overlap:     record.Overlap,
				Metadata:    record.Metadata.Clone(),
				CreatedAt:   time.Time{},
			},
			Similarity: cosineSimilarity(embedding, record.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// DeleteDocument removes all records of the document under the write lock.
func (m *MemoryIndex) DeleteDocument(_ context.Context, documentRID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.records[:0]
	for _, record := range m.records {
		if record.DocumentRID != documentRID {
			kept = append(kept, record)
		}
	}
	m.records = kept
	return nil
}

// DistinctValues scans current contents for the field's observed values.
func (m *MemoryIndex) DistinctValues(_ context.Context, field string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var values []string
	for i := range m.records {
		value := m.records[i].Metadata.String(field)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		values = append(values, value)
	}
	sort.Strings(values)
	return values, nil
}

// Count returns the number of indexed records.
func (m *MemoryIndex) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

// Reset drops all records. Safe to call on an empty index.
func (m *MemoryIndex) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
	return nil
}

// Close is a no-op for the in-memory index.
func (m *MemoryIndex) Close() error {
	return nil
}

// cosineSimilarity calculates the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
