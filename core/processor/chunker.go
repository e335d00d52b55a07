package processor

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/scholarai/scholarai/model"
)

// ChunkFunc splits a document's extracted text into ordered chunks.
type ChunkFunc func(doc *model.Document) ([]*model.Chunk, error)

// isBreak reports whether the byte ends a sentence or paragraph.
func isBreak(b byte) bool {
	return b == '.' || b == '!' || b == '?' || b == '\n'
}

// SizedChunker creates a chunker that splits text into chunks of the
// configured target size with the configured character overlap. Boundaries
// prefer sentence or paragraph breaks within the backward tolerance window;
// without one the text is hard-split at the target size.
//
// Chunking is lossless: chunk i records how many leading characters it
// shares with chunk i-1, and concatenation minus recorded overlaps
// reconstructs the original text exactly.
func SizedChunker(config model.ChunkingConfig) ChunkFunc {
	return func(doc *model.Document) ([]*model.Chunk, error) {
		if config.ChunkSize <= 0 {
			return nil, fmt.Errorf("chunk size must be positive")
		}
		if config.ChunkOverlap < 0 || config.ChunkOverlap >= config.ChunkSize {
			return nil, fmt.Errorf("chunk overlap must be non-negative and smaller than chunk size")
		}

		text := doc.Content
		if len(text) == 0 {
			return []*model.Chunk{}, nil
		}

		base := doc.Metadata()
		var chunks []*model.Chunk
		start := 0
		overlap := 0

		for start < len(text) {
			end := start + config.ChunkSize
			if end >= len(text) {
				end = len(text)
			} else {
				end = preferBreak(text, start, end, config.BoundaryWindow)
				// A hard split can land inside a multi-byte rune
				end = runeStart(text, end)
				if end <= start {
					_, size := utf8.DecodeRuneInString(text[start:])
					end = start + size
				}
			}

			chunks = append(chunks, newChunk(doc, base, text[start:end], len(chunks), overlap))

			if end == len(text) {
				break
			}

			next := end - config.ChunkOverlap
			if next > start {
				next = runeStart(text, next)
			}
			if next <= start {
				// Chunk shrank below the overlap, advance without one
				next = end
			}
			overlap = end - next
			start = next
		}

		total := len(chunks)
		for _, chunk := range chunks {
			chunk.Metadata[model.FieldTotalChunks] = total
		}

		return chunks, nil
	}
}

// preferBreak scans backward from the target end for a sentence or paragraph
// break, at most window bytes and never past the chunk start. Returns the
// position after the break, or the target end when no break is found.
func preferBreak(text string, start, end, window int) int {
	limit := end - window
	if limit < start+1 {
		limit = start + 1
	}
	for i := end; i > limit; i-- {
		if isBreak(text[i-1]) {
			return i
		}
	}
	return end
}

// runeStart backs i up to the nearest rune boundary so slicing never splits a
// multi-byte rune.
func runeStart(text string, i int) int {
	for i > 0 && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}

func newChunk(doc *model.Document, base model.Metadata, content string, index, overlap int) *model.Chunk {
	metadata := base.Clone()
	metadata[model.FieldChunkIndex] = index
	metadata[model.FieldOverlap] = overlap

	return &model.Chunk{
		ID:          uuid.New(),
		DocumentRID: doc.RID,
		Content:     content,
		ChunkIndex:  index,
		Overlap:     overlap,
		Metadata:    metadata,
		CreatedAt:   doc.CreatedAt,
	}
}
