package model

// Confidence is a discrete tier summarizing retrieval quality for an answer.
// It is derived from similarity scores of the retrieved chunks, never from
// the generated text.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// SearchResult is a retrieved chunk with its cosine similarity to the query.
// Similarity is in [-1, 1], higher is more similar. Result sequences are
// ordered most-similar first.
type SearchResult struct {
	Chunk      *Chunk  `json:"chunk"`
	Similarity float64 `json:"similarity"`
}

// Source describes one chunk used as answer context, for citation.
type Source struct {
	FileName       string  `json:"file_name"`
	Source         string  `json:"source"`
	ChunkIndex     int     `json:"chunk_index"`
	ContentPreview string  `json:"content_preview"`
	DocumentType   string  `json:"document_type,omitempty"`
	Company        string  `json:"company,omitempty"`
	Subject        string  `json:"subject,omitempty"`
	Difficulty     string  `json:"difficulty,omitempty"`
	Year           string  `json:"year,omitempty"`
	Similarity     float64 `json:"similarity"`
}

// Answer is the result of a RAG query. Prompt holds the literal prompt sent
// to the generation provider for auditability; it is empty when generation
// was skipped because nothing relevant was retrieved.
type Answer struct {
	Text       string     `json:"answer"`
	Sources    []Source   `json:"sources"`
	Confidence Confidence `json:"confidence"`
	Prompt     string     `json:"prompt,omitempty"`
}
