package engine

import (
	"fmt"
	"strings"

	"github.com/scholarai/scholarai/model"
)

// promptPreamble frames the assistant as a placement preparation tutor. The
// full prompt is deterministic: identical retrieval results and question
// always produce the identical prompt string.
const promptPreamble = `You are an AI assistant helping students with their learning materials, mock tests, and placement preparation.`

const promptInstructions = `Instructions:
1. Provide accurate, educational responses based on the context
2. If the question is about a specific topic, explain concepts clearly
3. For practice questions, provide step-by-step solutions
4. If information is not in the context, clearly state that
5. Always encourage learning and provide additional study tips when relevant`

// buildPrompt assembles the generation prompt from the retrieved chunks and
// the verbatim question. Each chunk contributes a numbered source section
// with its text truncated to config.ContextLength characters.
func buildPrompt(results []model.SearchResult, question string, config model.PromptConfig) string {
	var b strings.Builder

	b.WriteString(promptPreamble)
	b.WriteString("\n\nContext from learning materials:\n")

	for i, result := range results {
		fileName := result.Chunk.Metadata.String(model.FieldFileName)
		fmt.Fprintf(&b, "\n[Source %d: %s]\n", i+1, fileName)
		b.WriteString(truncateRunes(result.Chunk.Content, config.ContextLength))
		b.WriteString("\n")
	}

	b.WriteString("\nStudent Question: ")
	b.WriteString(question)
	b.WriteString("\n\n")
	b.WriteString(promptInstructions)
	b.WriteString("\n\nAnswer:")

	return b.String()
}

// truncateRunes shortens s to at most limit characters, cutting on a rune
// boundary so multi-byte characters are never split.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
