package provider

import (
	"context"
	"testing"
	"time"

	"github.com/scholarai/scholarai/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyEmbedder fails a set number of times before succeeding.
type flakyEmbedder struct {
	failures int
	err      error
	calls    int
}

func (e *flakyEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	e.calls++
	if e.calls <= e.failures {
		return nil, e.err
	}
	return []float32{1}, nil
}

func (e *flakyEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vector, err := e.Embed(ctx, "")
	if err != nil {
		return nil, err
	}
	return [][]float32{vector}, nil
}

func (e *flakyEmbedder) Dimension() int { return 1 }

func TestRetryEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("Succeeds without retries on a healthy provider", func(t *testing.T) {
		inner := &flakyEmbedder{}
		retry := NewRetryEmbedder(inner, 3)

		_, err := retry.Embed(ctx, "text")
		require.NoError(t, err)
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("Retries provider errors until success", func(t *testing.T) {
		inner := &flakyEmbedder{failures: 2, err: model.ErrProvider}
		retry := NewRetryEmbedder(inner, 3)

		vector, err := retry.Embed(ctx, "text")
		require.NoError(t, err)
		assert.Equal(t, []float32{1}, vector)
		assert.Equal(t, 3, inner.calls, "two failures then one success")
	})

	t.Run("Gives up after the configured attempts", func(t *testing.T) {
		inner := &flakyEmbedder{failures: 10, err: model.ErrProvider}
		retry := NewRetryEmbedder(inner, 2)

		_, err := retry.Embed(ctx, "text")
		assert.ErrorIs(t, err, model.ErrProvider)
		assert.Equal(t, 3, inner.calls, "initial attempt plus two retries")
	})

	t.Run("Non-provider errors are not retried", func(t *testing.T) {
		inner := &flakyEmbedder{failures: 10, err: model.ErrValidation}
		retry := NewRetryEmbedder(inner, 5)

		_, err := retry.Embed(ctx, "text")
		assert.ErrorIs(t, err, model.ErrValidation)
		assert.Equal(t, 1, inner.calls, "only provider failures warrant a retry")
	})

	t.Run("Canceled context stops the retry loop", func(t *testing.T) {
		inner := &flakyEmbedder{failures: 10, err: model.ErrProvider}
		retry := NewRetryEmbedder(inner, 5)

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := retry.Embed(canceled, "text")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, inner.calls, "no further attempts after cancellation")
	})
}

func TestRetryDelay(t *testing.T) {
	t.Run("Backoff grows exponentially and is capped", func(t *testing.T) {
		assert.Equal(t, 200*time.Millisecond, retryDelay(0))
		assert.Equal(t, 400*time.Millisecond, retryDelay(1))
		assert.Equal(t, 800*time.Millisecond, retryDelay(2))
		assert.Equal(t, 5*time.Second, retryDelay(10), "delay should cap at 5s")
	})

	t.Run("Negative attempts clamp to the base delay", func(t *testing.T) {
		assert.Equal(t, 200*time.Millisecond, retryDelay(-3))
	})
}
