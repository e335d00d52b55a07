package provider

import (
	"context"
	"errors"
	"time"

	"github.com/scholarai/scholarai/model"
)

// RetryEmbedder retries provider failures with exponential backoff. It is a
// boundary-layer policy: apply it around an Embedder when duplicate embedding
// calls are acceptable. There is deliberately no retrying Generator, since
// generation must be invoked at most once per query.
type RetryEmbedder struct {
	inner      Embedder
	maxRetries int
}

// NewRetryEmbedder wraps an embedder with up to maxRetries additional
// attempts per call.
func NewRetryEmbedder(inner Embedder, maxRetries int) *RetryEmbedder {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetryEmbedder{inner: inner, maxRetries: maxRetries}
}

func (r *RetryEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	var vector []float32
	err := r.retry(ctx, func() error {
		var innerErr error
		vector, innerErr = r.inner.Embed(ctx, text)
		return innerErr
	})
	return vector, err
}

func (r *RetryEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var vectors [][]float32
	err := r.retry(ctx, func() error {
		var innerErr error
		vectors, innerErr = r.inner.EmbedBatch(ctx, texts)
		return innerErr
	})
	return vectors, err
}

func (r *RetryEmbedder) Dimension() int {
	return r.inner.Dimension()
}

// retry runs fn until it succeeds, fails with a non-provider error, or the
// attempts are exhausted.
func (r *RetryEmbedder) retry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryDelay(attempt - 1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		err = fn()
		if err == nil || !errors.Is(err, model.ErrProvider) {
			return err
		}
	}
	return err
}

// retryDelay returns an exponential backoff delay capped at 5s.
func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := 200 * time.Millisecond
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
