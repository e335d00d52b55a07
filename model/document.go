package model

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// DocumentType classifies the kind of study material a document contains.
type DocumentType string

const (
	DocumentTypePlacementPaper   DocumentType = "placement_paper"
	DocumentTypeMockTest         DocumentType = "mock_test"
	DocumentTypeLearningMaterial DocumentType = "learning_material"
	DocumentTypeUnknown          DocumentType = "unknown"
)

// Difficulty is the inferred difficulty tag of a document.
type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
	DifficultyUnknown Difficulty = "unknown"
)

// Document represents a source document after extraction and classification.
// Company, Subject and Year are nil when no classifier rule matched.
// A document is immutable once chunked.
type Document struct {
	RID        uuid.UUID    `json:"rid"`
	Source     string       `json:"source"`
	FileName   string       `json:"file_name"`
	FileType   string       `json:"file_type"`
	Type       DocumentType `json:"document_type"`
	Company    *string      `json:"company,omitempty"`
	Subject    *string      `json:"subject,omitempty"`
	Difficulty Difficulty   `json:"difficulty"`
	Year       *string      `json:"year,omitempty"`
	Content    string       `json:"content,omitempty"`
	Degraded   bool         `json:"degraded,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// NewDocument creates a Document for the given source path with a fresh RID.
// Classification fields start at their unknown defaults.
func NewDocument(source string) *Document {
	fileName := filepath.Base(source)
	return &Document{
		RID:        uuid.New(),
		Source:     source,
		FileName:   fileName,
		FileType:   filepath.Ext(fileName),
		Type:       DocumentTypeUnknown,
		Difficulty: DifficultyUnknown,
		CreatedAt:  time.Now(),
	}
}

// Metadata returns the metadata record inherited by every chunk of the document.
func (d *Document) Metadata() Metadata {
	m := Metadata{
		FieldDocumentID:   d.RID.String(),
		FieldSource:       d.Source,
		FieldFileName:     d.FileName,
		FieldFileType:     d.FileType,
		FieldDocumentType: string(d.Type),
		FieldDifficulty:   string(d.Difficulty),
	}
	if d.Company != nil {
		m[FieldCompany] = *d.Company
	}
	if d.Subject != nil {
		m[FieldSubject] = *d.Subject
	}
	if d.Year != nil {
		m[FieldYear] = *d.Year
	}
	return m
}
