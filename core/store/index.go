package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/scholarai/scholarai/model"
)

// Record is an embedding record: a chunk's vector plus the metadata snapshot
// taken at index time. Records are never mutated in place; an update is a
// delete of the document followed by a fresh insert.
type Record struct {
	ChunkID     uuid.UUID
	DocumentRID uuid.UUID
	Content     string
	ChunkIndex  int
	Overlap     int
	Embedding   []float32
	Metadata    model.Metadata
}

// Index is a similarity-index backend: any structure supporting
// nearest-neighbor search over stored vectors with exact-match metadata
// filtering. In-memory, on-disk and remote backends are all acceptable.
type Index interface {
	// Add stores all records atomically: either every record is committed
	// or none are.
	Add(ctx context.Context, records []Record) error

	// Search returns at most k records ranked by cosine similarity to the
	// query vector, most similar first, restricted to records whose
	// metadata matches every filter.
	Search(ctx context.Context, embedding []float32, k int, filters map[string]string) ([]model.SearchResult, error)

	// DeleteDocument removes every record belonging to the document.
	DeleteDocument(ctx context.Context, documentRID uuid.UUID) error

	// DistinctValues returns the distinct observed values of a metadata
	// field, reflecting current contents.
	DistinctValues(ctx context.Context, field string) ([]string, error)

	// Count returns the number of indexed records.
	Count(ctx context.Context) (int, error)

	// Reset deletes all indexed content. Idempotent.
	Reset(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
