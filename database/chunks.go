// Package database provides the PostgreSQL pgvector backend of the vector
// store. All statements go through SQL functions loaded from the sql package.
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/scholarai/scholarai/core/store"
	"github.com/scholarai/scholarai/helper"
	"github.com/scholarai/scholarai/model"
	loadSql "github.com/scholarai/scholarai/sql"
)

// ChunksDBHandler is a pgvector-backed similarity index. It implements
// store.Index with transactional inserts and cosine ranking in SQL.
type ChunksDBHandler struct {
	db *helper.Database
}

// NewChunksDBHandler creates a new chunks database handler.
// It loads the chunk-related SQL functions and creates the chunks table with
// the given embedding dimensionality. If force is true, the SQL functions are
// reloaded even if they already exist.
func NewChunksDBHandler(db *helper.Database, embeddingDim int, force bool) (*ChunksDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}
	if embeddingDim <= 0 {
		return nil, helper.NewError("embedding dimension validation", fmt.Errorf("embedding dimension must be positive, got %d", embeddingDim))
	}

	handler := &ChunksDBHandler{db: db}

	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("init extensions", err)
	}

	err = loadSql.LoadChunksSql(db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load chunks sql", err)
	}

	err = handler.createTable(embeddingDim)
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized ChunksDBHandler", "embeddingDim", embeddingDim)

	return handler, nil
}

// createTable creates the 'chunks' table if it does not exist, together with
// its metadata and document indexes.
func (h *ChunksDBHandler) createTable(embeddingDim int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_chunks($1);`, embeddingDim)
	if err != nil {
		return helper.NewError("exec init_chunks", err)
	}

	h.db.Logger.Info("Checked/created table chunks")

	return nil
}

// Add inserts all records inside a single transaction, so either every
// record is committed or none are.
func (h *ChunksDBHandler) Add(ctx context.Context, records []store.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := h.db.Instance.BeginTx(ctx, nil)
	if err != nil {
		return helper.NewError("begin transaction", err)
	}
	defer tx.Rollback()

	for _, record := range records {
		_, err := tx.ExecContext(ctx,
			`SELECT insert_chunk($1, $2, $3, $4, $5, $6, $7)`,
			record.ChunkID,
			record.DocumentRID,
			record.Content,
			record.ChunkIndex,
			record.Overlap,
			pgvector.NewVector(record.Embedding),
			record.Metadata,
		)
		if err != nil {
			return helper.NewError("insert chunk", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return helper.NewError("commit transaction", err)
	}

	return nil
}

// Search ranks stored chunks by cosine similarity to the query vector,
// restricted to chunks whose metadata contains every filter pair.
func (h *ChunksDBHandler) Search(ctx context.Context, embedding []float32, k int, filters map[string]string) ([]model.SearchResult, error) {
	filtersParam, err := filtersJSON(filters)
	if err != nil {
		return nil, helper.NewError("encode filters", err)
	}

	rows, err := h.db.Instance.QueryContext(ctx,
		`SELECT * FROM select_chunks_by_similarity($1, $2, $3)`,
		pgvector.NewVector(embedding),
		k,
		filtersParam,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var results []model.SearchResult
	for rows.Next() {
		chunk := &model.Chunk{}
		var similarity float64

		err := rows.Scan(
			&chunk.ID,
			&chunk.DocumentRID,
			&chunk.Content,
			&chunk.ChunkIndex,
			&chunk.Overlap,
			&chunk.Metadata,
			&similarity,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		results = append(results, model.SearchResult{Chunk: chunk, Similarity: similarity})
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return results, nil
}

// DeleteDocument removes all chunks of a document.
func (h *ChunksDBHandler) DeleteDocument(ctx context.Context, documentRID uuid.UUID) error {
	_, err := h.db.Instance.ExecContext(ctx,
		`SELECT delete_chunks_by_document($1)`,
		documentRID,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// DistinctValues returns the sorted distinct values of a metadata field.
func (h *ChunksDBHandler) DistinctValues(ctx context.Context, field string) ([]string, error) {
	rows, err := h.db.Instance.QueryContext(ctx,
		`SELECT * FROM select_distinct_metadata($1)`,
		field,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, helper.NewError("scan", err)
		}
		values = append(values, value)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return values, nil
}

// Count returns the number of stored chunks.
func (h *ChunksDBHandler) Count(ctx context.Context) (int, error) {
	var count int
	err := h.db.Instance.QueryRowContext(ctx, `SELECT count_chunks()`).Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}
	return count, nil
}

// Reset deletes all stored chunks.
func (h *ChunksDBHandler) Reset(ctx context.Context) error {
	_, err := h.db.Instance.ExecContext(ctx, `SELECT reset_chunks()`)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (h *ChunksDBHandler) Close() error {
	return h.db.Instance.Close()
}

// filtersJSON converts exact-match filters into the JSONB containment
// argument, nil when no filters are set.
func filtersJSON(filters map[string]string) (interface{}, error) {
	if len(filters) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(filters)
	if err != nil {
		return nil, err
	}
	return data, nil
}
