package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFilters(t *testing.T) {
	t.Run("Nil and empty filters are valid", func(t *testing.T) {
		assert.NoError(t, ValidateFilters(nil))
		assert.NoError(t, ValidateFilters(map[string]string{}))
	})

	t.Run("All filterable fields are accepted", func(t *testing.T) {
		filters := map[string]string{}
		for _, field := range FilterableFields {
			filters[field] = "value"
		}
		assert.NoError(t, ValidateFilters(filters))
	})

	t.Run("Unknown key is rejected", func(t *testing.T) {
		err := ValidateFilters(map[string]string{"author": "someone"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation, "unknown filter key should be a validation error")
		assert.Contains(t, err.Error(), "author", "error should name the offending key")
	})

	t.Run("Non-filterable metadata field is rejected", func(t *testing.T) {
		// file_name is real metadata but not a filterable field
		err := ValidateFilters(map[string]string{FieldFileName: "notes.txt"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestMetadataAccessors(t *testing.T) {
	meta := Metadata{
		FieldCompany:    "TCS",
		FieldChunkIndex: 3,
	}

	t.Run("String returns string values", func(t *testing.T) {
		assert.Equal(t, "TCS", meta.String(FieldCompany))
	})

	t.Run("String returns empty for missing or non-string values", func(t *testing.T) {
		assert.Equal(t, "", meta.String(FieldSubject), "missing key should yield empty string")
		assert.Equal(t, "", meta.String(FieldChunkIndex), "non-string value should yield empty string")
	})

	t.Run("Matches requires every filter to hold", func(t *testing.T) {
		assert.True(t, meta.Matches(nil), "nil filters always match")
		assert.True(t, meta.Matches(map[string]string{FieldCompany: "TCS"}))
		assert.False(t, meta.Matches(map[string]string{FieldCompany: "Wipro"}))
		assert.False(t, meta.Matches(map[string]string{
			FieldCompany: "TCS",
			FieldSubject: "dbms",
		}), "one unmatched filter should fail the conjunction")
	})

	t.Run("Clone is independent of the original", func(t *testing.T) {
		clone := meta.Clone()
		clone[FieldCompany] = "Wipro"
		assert.Equal(t, "TCS", meta.String(FieldCompany), "mutating the clone should not touch the original")
	})
}

func TestMetadataMarshalRoundTrip(t *testing.T) {
	t.Run("Scan of nil yields empty metadata", func(t *testing.T) {
		var meta Metadata
		err := meta.Scan(nil)
		require.NoError(t, err)
		assert.NotNil(t, meta)
		assert.Empty(t, meta)
	})

	t.Run("Value and Scan round-trip", func(t *testing.T) {
		original := Metadata{FieldCompany: "TCS", FieldSubject: "aptitude"}
		value, err := original.Value()
		require.NoError(t, err)

		var decoded Metadata
		err = decoded.Scan(value)
		require.NoError(t, err)
		assert.Equal(t, "TCS", decoded.String(FieldCompany))
		assert.Equal(t, "aptitude", decoded.String(FieldSubject))
	})
}
