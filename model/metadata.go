package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/scholarai/scholarai/helper"
)

// Metadata field keys written by the document processor and inherited by chunks.
const (
	FieldDocumentID   = "document_id"
	FieldSource       = "source"
	FieldFileName     = "file_name"
	FieldFileType     = "file_type"
	FieldDocumentType = "document_type"
	FieldCompany      = "company"
	FieldSubject      = "subject"
	FieldDifficulty   = "difficulty"
	FieldYear         = "year"
	FieldChunkIndex   = "chunk_index"
	FieldTotalChunks  = "total_chunks"
	FieldOverlap      = "overlap"
)

// FilterableFields is the fixed set of metadata fields that may be used as
// exact-match search filters. Any other key is rejected as invalid input.
var FilterableFields = []string{
	FieldDocumentType,
	FieldCompany,
	FieldSubject,
	FieldDifficulty,
	FieldYear,
}

// ValidateFilters checks that every filter key is a known filterable field.
func ValidateFilters(filters map[string]string) error {
	for key := range filters {
		known := false
		for _, field := range FilterableFields {
			if key == field {
				known = true
				break
			}
		}
		if !known {
			return NewValidationError("unknown filter key: " + key)
		}
	}
	return nil
}

// Metadata represents JSONB metadata stored alongside a chunk
type Metadata map[string]interface{}

// Value implements the driver.Valuer interface for database storage
func (m Metadata) Value() (driver.Value, error) {
	return m.Marshal()
}

// Scan implements the sql.Scanner interface for database retrieval
func (m *Metadata) Scan(value interface{}) error {
	return m.Unmarshal(value)
}

// Marshal converts Metadata to JSON bytes
func (m Metadata) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// Unmarshal converts JSON bytes or Metadata to Metadata
func (m *Metadata) Unmarshal(value interface{}) error {
	if value == nil {
		*m = Metadata{}
		return nil
	}

	if s, ok := value.(Metadata); ok {
		*m = Metadata(s)
		return nil
	}

	b, ok := value.([]byte)
	if !ok {
		return helper.NewError("byte assertion", errors.New("type assertion to []byte failed"))
	}

	return json.Unmarshal(b, m)
}

// String returns the value of key as a string, or "" when absent.
func (m Metadata) String(key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Matches reports whether the metadata satisfies every exact-match filter.
func (m Metadata) Matches(filters map[string]string) bool {
	for key, want := range filters {
		if m.String(key) != want {
			return false
		}
	}
	return true
}

// Clone returns a shallow copy of the metadata record.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
