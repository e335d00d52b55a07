package model

import (
	"time"

	"github.com/google/uuid"
)

// Chunk represents a contiguous slice of a document's text, the unit of
// retrieval. ChunkIndex is the 0-based position within the document and
// Overlap is the number of leading bytes shared with the previous chunk.
// Chunks are immutable and owned by their parent document.
type Chunk struct {
	ID          uuid.UUID `json:"id"`
	DocumentRID uuid.UUID `json:"document_rid"`
	Content     string    `json:"content"`
	ChunkIndex  int       `json:"chunk_index"`
	Overlap     int       `json:"overlap"`
	Metadata    Metadata  `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReassembleChunks reconstructs the original text from an ordered chunk
// sequence by dropping each chunk's recorded overlap with its predecessor.
func ReassembleChunks(chunks []*Chunk) string {
	var out []byte
	for i, chunk := range chunks {
		if i == 0 {
			out = append(out, chunk.Content...)
			continue
		}
		out = append(out, chunk.Content[chunk.Overlap:]...)
	}
	return string(out)
}
