package engine

import (
	"strings"
	"testing"

	"github.com/scholarai/scholarai/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptResults(contents ...string) []model.SearchResult {
	results := make([]model.SearchResult, len(contents))
	for i, content := range contents {
		results[i] = model.SearchResult{
			Chunk: &model.Chunk{
				Content:  content,
				Metadata: model.Metadata{model.FieldFileName: "notes.txt"},
			},
			Similarity: 0.9,
		}
	}
	return results
}

func TestBuildPrompt(t *testing.T) {
	config := model.DefaultPromptConfig()

	t.Run("Prompt is deterministic", func(t *testing.T) {
		results := promptResults("chunk one", "chunk two")
		first := buildPrompt(results, "what is a deadlock?", config)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, buildPrompt(results, "what is a deadlock?", config),
				"identical inputs must produce the identical prompt")
		}
	})

	t.Run("Prompt contains framing, numbered sources and the verbatim question", func(t *testing.T) {
		prompt := buildPrompt(promptResults("chunk one", "chunk two"), "what is a deadlock?", config)

		assert.Contains(t, prompt, "placement preparation", "tutor framing should be present")
		assert.Contains(t, prompt, "[Source 1: notes.txt]")
		assert.Contains(t, prompt, "[Source 2: notes.txt]")
		assert.Contains(t, prompt, "chunk one")
		assert.Contains(t, prompt, "chunk two")
		assert.Contains(t, prompt, "Student Question: what is a deadlock?")
		assert.True(t, strings.HasSuffix(prompt, "Answer:"), "prompt should end with the answer cue")

		questionPos := strings.Index(prompt, "Student Question:")
		sourcePos := strings.Index(prompt, "[Source 1")
		require.Greater(t, questionPos, sourcePos, "context should precede the question")
	})

	t.Run("Chunk text is truncated to the context length", func(t *testing.T) {
		long := strings.Repeat("x", 2500)
		prompt := buildPrompt(promptResults(long), "q", config)

		assert.NotContains(t, prompt, long, "full chunk should not appear")
		assert.Contains(t, prompt, strings.Repeat("x", config.ContextLength)+"...",
			"chunk should be cut at the configured length")
	})
}

func TestTruncateRunes(t *testing.T) {
	t.Run("Short strings pass through", func(t *testing.T) {
		assert.Equal(t, "abc", truncateRunes("abc", 10))
	})

	t.Run("Exact length passes through without ellipsis", func(t *testing.T) {
		assert.Equal(t, "abc", truncateRunes("abc", 3))
	})

	t.Run("Long strings are cut with an ellipsis", func(t *testing.T) {
		assert.Equal(t, "abcde...", truncateRunes("abcdefgh", 5))
	})

	t.Run("Multi-byte runes are never split", func(t *testing.T) {
		assert.Equal(t, "ααα...", truncateRunes("ααααααα", 3))
	})

	t.Run("Non-positive limit disables truncation", func(t *testing.T) {
		assert.Equal(t, "abcdef", truncateRunes("abcdef", 0))
	})
}
