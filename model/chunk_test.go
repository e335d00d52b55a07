package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReassembleChunks(t *testing.T) {
	t.Run("Empty sequence yields empty text", func(t *testing.T) {
		assert.Equal(t, "", ReassembleChunks(nil))
	})

	t.Run("Single chunk is returned verbatim", func(t *testing.T) {
		chunks := []*Chunk{{Content: "hello world", ChunkIndex: 0}}
		assert.Equal(t, "hello world", ReassembleChunks(chunks))
	})

	t.Run("Overlap is dropped during reassembly", func(t *testing.T) {
		// "abcdefghij" split into "abcdef" and "efghij" with 2 bytes overlap
		chunks := []*Chunk{
			{Content: "abcdef", ChunkIndex: 0, Overlap: 0},
			{Content: "efghij", ChunkIndex: 1, Overlap: 2},
		}
		assert.Equal(t, "abcdefghij", ReassembleChunks(chunks))
	})

	t.Run("Zero overlap concatenates", func(t *testing.T) {
		chunks := []*Chunk{
			{Content: "abc", ChunkIndex: 0},
			{Content: "def", ChunkIndex: 1},
		}
		assert.Equal(t, "abcdef", ReassembleChunks(chunks))
	})
}
