package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEmbedder returns the text length as a one-dimensional vector and
// counts how often the backend is reached.
type countingEmbedder struct {
	embedCalls int
	batchTexts [][]string
}

func (e *countingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.embedCalls++
	return []float32{float32(len(text))}, nil
}

func (e *countingEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	e.batchTexts = append(e.batchTexts, texts)
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = []float32{float32(len(text))}
	}
	return vectors, nil
}

func (e *countingEmbedder) Dimension() int { return 1 }

func TestCachedEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("Repeated texts hit the cache", func(t *testing.T) {
		inner := &countingEmbedder{}
		cached := NewCachedEmbedder(inner, time.Minute)

		first, err := cached.Embed(ctx, "hello")
		require.NoError(t, err)
		second, err := cached.Embed(ctx, "hello")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, inner.embedCalls, "second call should be served from cache")
	})

	t.Run("Batch forwards only cache misses, preserving order", func(t *testing.T) {
		inner := &countingEmbedder{}
		cached := NewCachedEmbedder(inner, time.Minute)

		_, err := cached.Embed(ctx, "bb")
		require.NoError(t, err)

		vectors, err := cached.EmbedBatch(ctx, []string{"a", "bb", "ccc"})
		require.NoError(t, err)

		require.Len(t, vectors, 3)
		assert.Equal(t, []float32{1}, vectors[0])
		assert.Equal(t, []float32{2}, vectors[1])
		assert.Equal(t, []float32{3}, vectors[2])

		require.Len(t, inner.batchTexts, 1)
		assert.Equal(t, []string{"a", "ccc"}, inner.batchTexts[0], "the cached text should not be re-fetched")
	})

	t.Run("Fully cached batch skips the backend", func(t *testing.T) {
		inner := &countingEmbedder{}
		cached := NewCachedEmbedder(inner, time.Minute)

		_, err := cached.EmbedBatch(ctx, []string{"x", "yy"})
		require.NoError(t, err)
		_, err = cached.EmbedBatch(ctx, []string{"yy", "x"})
		require.NoError(t, err)

		assert.Len(t, inner.batchTexts, 1, "second batch should be fully served from cache")
	})
}
