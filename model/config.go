package model

// ChunkingConfig controls how extracted text is split into chunks.
type ChunkingConfig struct {
	// ChunkSize is the target chunk length in characters.
	ChunkSize int `json:"chunk_size"`
	// ChunkOverlap is the number of characters shared with the previous
	// chunk. Must be smaller than ChunkSize.
	ChunkOverlap int `json:"chunk_overlap"`
	// BoundaryWindow is how far back from the target size the chunker
	// searches for a sentence or paragraph break before hard-splitting.
	BoundaryWindow int `json:"boundary_window"`
}

// DefaultChunkingConfig returns the chunking parameters used for study
// documents: 1000-character chunks with 200 characters of overlap.
func DefaultChunkingConfig() ChunkingConfig {
	return ChunkingConfig{
		ChunkSize:      1000,
		ChunkOverlap:   200,
		BoundaryWindow: 100,
	}
}

// RetrieverConfig holds the default retrieval parameters of the RAG engine.
type RetrieverConfig struct {
	// TopK is the maximum number of chunks retrieved per query.
	TopK int `json:"top_k"`
	// Filters is a conjunction of exact-match metadata constraints applied
	// to every retrieval unless overridden per call.
	Filters map[string]string `json:"filters,omitempty"`
}

// DefaultRetrieverConfig returns the default retrieval parameters.
func DefaultRetrieverConfig() RetrieverConfig {
	return RetrieverConfig{TopK: 5}
}

// PromptConfig bounds the size of assembled prompts and citations.
type PromptConfig struct {
	// ContextLength is the maximum number of characters of each chunk
	// included in the prompt context.
	ContextLength int `json:"context_length"`
	// SourcePreviewLength is the maximum number of characters of each
	// chunk included in answer citations.
	SourcePreviewLength int `json:"source_preview_length"`
}

// DefaultPromptConfig returns the default prompt size bounds.
func DefaultPromptConfig() PromptConfig {
	return PromptConfig{
		ContextLength:       1000,
		SourcePreviewLength: 200,
	}
}

// GenerationConfig is passed to the generation provider with every prompt.
type GenerationConfig struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// DefaultGenerationConfig returns the default generation parameters.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Model:       "gpt-3.5-turbo",
		Temperature: 0.1,
		MaxTokens:   512,
	}
}

// SubjectRule maps a canonical subject tag to the keywords that select it.
// Keywords are matched on word boundaries, case-insensitively.
type SubjectRule struct {
	Subject  string   `json:"subject"`
	Keywords []string `json:"keywords"`
}

// ClassifierRules is the explicit, injectable rule set of the metadata
// classifier. All lists are ordered; matching is first-match-wins, so the
// classification of a document is deterministic for a fixed rule set.
type ClassifierRules struct {
	// HeadLength is how many leading characters of the extracted text are
	// scanned in addition to the filename.
	HeadLength int `json:"head_length"`

	// Companies is the ordered list of known company names.
	Companies []string `json:"companies"`

	// Subjects is the ordered list of subject keyword rules.
	Subjects []SubjectRule `json:"subjects"`

	// Document type keywords.
	PlacementKeywords []string `json:"placement_keywords"`
	MockTestKeywords  []string `json:"mock_test_keywords"`
	LearningKeywords  []string `json:"learning_keywords"`

	// Difficulty markers.
	EasyMarkers   []string `json:"easy_markers"`
	MediumMarkers []string `json:"medium_markers"`
	HardMarkers   []string `json:"hard_markers"`
}

// DefaultClassifierRules returns the maintained rule set for placement
// preparation material.
func DefaultClassifierRules() ClassifierRules {
	return ClassifierRules{
		HeadLength: 512,
		Companies: []string{
			"TCS", "Infosys", "Wipro", "Accenture", "Cognizant", "Capgemini",
			"HCL", "Tech Mahindra", "Google", "Microsoft", "Amazon", "Apple",
			"Meta", "Netflix", "Uber", "Airbnb",
		},
		Subjects: []SubjectRule{
			{Subject: "data structures", Keywords: []string{"data structures", "dsa"}},
			{Subject: "algorithms", Keywords: []string{"algorithms", "algorithm"}},
			{Subject: "dbms", Keywords: []string{"dbms", "database management"}},
			{Subject: "os", Keywords: []string{"os", "operating systems", "operating system"}},
			{Subject: "networking", Keywords: []string{"networking", "computer networks"}},
			{Subject: "aptitude", Keywords: []string{"aptitude", "quantitative"}},
			{Subject: "python", Keywords: []string{"python"}},
			{Subject: "java", Keywords: []string{"java"}},
			{Subject: "javascript", Keywords: []string{"javascript"}},
			{Subject: "sql", Keywords: []string{"sql"}},
			{Subject: "machine learning", Keywords: []string{"machine learning", "ml"}},
		},
		PlacementKeywords: []string{"placement", "interview", "campus"},
		MockTestKeywords:  []string{"mock", "test", "exam", "quiz"},
		LearningKeywords:  []string{"notes", "tutorial", "material", "guide", "lecture"},
		EasyMarkers:       []string{"easy", "beginner"},
		MediumMarkers:     []string{"medium", "intermediate"},
		HardMarkers:       []string{"hard", "advanced", "expert"},
	}
}
