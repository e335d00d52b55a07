package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/scholarai/scholarai/model"
)

// OpenAIConfig configures the OpenAI-compatible HTTP client. Any service
// speaking the same wire format (e.g. a local inference server) works by
// pointing BaseURL at it.
type OpenAIConfig struct {
	BaseURL        string
	APIKeyEnv      string
	EmbeddingModel string
	Timeout        time.Duration
}

// OpenAIClient implements Embedder and Generator against an
// OpenAI-compatible API. Every method makes exactly one attempt; transient
// failures surface as model.ErrProvider and are never retried here.
type OpenAIClient struct {
	baseURL        string
	apiKey         string
	embeddingModel string
	client         *http.Client
	dimension      atomic.Int64
}

// NewOpenAIClient creates a client using the provided configuration. The API
// key is read from the environment variable named by APIKeyEnv.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = "text-embedding-3-small"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIClient{
		baseURL:        cfg.BaseURL,
		apiKey:         key,
		embeddingModel: cfg.EmbeddingModel,
		client:         &http.Client{Timeout: timeout},
	}, nil
}

// Embed returns the embedding vector for a single text.
func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds all texts in one request, order-preserving.
func (c *OpenAIClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	reqBody := struct {
		Input []string `json:"input"`
		Model string   `json:"model"`
	}{Input: texts, Model: c.embeddingModel}

	var respBody struct {
		Data []struct {
			Index     int       `json:"index"`
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}

	if err := c.post(ctx, "/embeddings", reqBody, &respBody); err != nil {
		return nil, err
	}
	if len(respBody.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs", model.ErrProvider, len(respBody.Data), len(texts))
	}

	// The API may return entries out of order, place them by index
	vectors := make([][]float32, len(texts))
	for _, entry := range respBody.Data {
		if entry.Index < 0 || entry.Index >= len(texts) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", model.ErrProvider, entry.Index)
		}
		vectors[entry.Index] = entry.Embedding
	}
	for i, v := range vectors {
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: no embedding returned for input %d", model.ErrProvider, i)
		}
	}

	c.dimension.CompareAndSwap(0, int64(len(vectors[0])))

	return vectors, nil
}

// Dimension returns the embedding dimensionality, 0 before the first call.
func (c *OpenAIClient) Dimension() int {
	return int(c.dimension.Load())
}

// Generate sends the prompt as a single chat completion request.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string, config model.GenerationConfig) (string, error) {
	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	reqBody := struct {
		Model       string    `json:"model"`
		Messages    []message `json:"messages"`
		Temperature float64   `json:"temperature"`
		MaxTokens   int       `json:"max_tokens,omitempty"`
	}{
		Model:       config.Model,
		Messages:    []message{{Role: "user", Content: prompt}},
		Temperature: config.Temperature,
		MaxTokens:   config.MaxTokens,
	}

	var respBody struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := c.post(ctx, "/chat/completions", reqBody, &respBody); err != nil {
		return "", err
	}
	if len(respBody.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", model.ErrProvider)
	}

	return respBody.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) post(ctx context.Context, path string, reqBody, respBody interface{}) error {
	data, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrProvider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrProvider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s", model.ErrProvider, path, resp.Status)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrProvider, err)
	}
	if err := json.Unmarshal(payload, respBody); err != nil {
		return fmt.Errorf("%w: decoding response: %v", model.ErrProvider, err)
	}

	return nil
}
