package provider

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedEmbedder memoizes embedding results per text with a TTL. Like retry,
// caching is an explicit decorator applied at the boundary, not behavior
// hidden inside a provider client.
type CachedEmbedder struct {
	inner Embedder
	cache *gocache.Cache
}

// NewCachedEmbedder wraps an embedder with an expiring per-text cache.
func NewCachedEmbedder(inner Embedder, ttl time.Duration) *CachedEmbedder {
	return &CachedEmbedder{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if cached, ok := c.cache.Get(text); ok {
		return cached.([]float32), nil
	}

	vector, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.cache.SetDefault(text, vector)
	return vector, nil
}

// EmbedBatch serves cached texts locally and forwards only the misses,
// preserving input order in the result.
func (c *CachedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	var missing []string
	var missingAt []int

	for i, text := range texts {
		if cached, ok := c.cache.Get(text); ok {
			vectors[i] = cached.([]float32)
			continue
		}
		missing = append(missing, text)
		missingAt = append(missingAt, i)
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	fetched, err := c.inner.EmbedBatch(ctx, missing)
	if err != nil {
		return nil, err
	}

	for j, vector := range fetched {
		vectors[missingAt[j]] = vector
		c.cache.SetDefault(missing[j], vector)
	}

	return vectors, nil
}

func (c *CachedEmbedder) Dimension() int {
	return c.inner.Dimension()
}
