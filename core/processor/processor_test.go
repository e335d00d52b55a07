package processor

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/scholarai/scholarai/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProcessor() *Processor {
	return DefaultProcessor(slog.New(slog.DiscardHandler))
}

func TestProcessBytes(t *testing.T) {
	p := testProcessor()
	ctx := context.Background()

	t.Run("Text file is extracted, classified and chunked", func(t *testing.T) {
		content := "Placement interview questions. Explain normalization in dbms with examples."
		doc, chunks, err := p.ProcessBytes(ctx, []byte(content), "TCS_placement_paper_2023.txt")
		require.NoError(t, err)
		require.NotNil(t, doc)

		assert.Equal(t, model.DocumentTypePlacementPaper, doc.Type)
		assert.Equal(t, content, doc.Content)
		require.NotEmpty(t, chunks)
		assert.Equal(t, content, model.ReassembleChunks(chunks), "chunking should be lossless")

		meta := chunks[0].Metadata
		assert.Equal(t, doc.RID.String(), meta.String(model.FieldDocumentID))
		assert.Equal(t, "TCS_placement_paper_2023.txt", meta.String(model.FieldFileName))
		assert.Equal(t, string(model.DocumentTypePlacementPaper), meta.String(model.FieldDocumentType))
	})

	t.Run("Unsupported content fails with the format error", func(t *testing.T) {
		_, _, err := p.ProcessBytes(ctx, []byte{0x00, 0x01, 0x02}, "blob.bin")
		assert.ErrorIs(t, err, model.ErrUnsupportedFormat)
	})

	t.Run("Corrupt docx fails with the extraction error", func(t *testing.T) {
		_, _, err := p.ProcessBytes(ctx, []byte("not a zip"), "broken.docx")
		assert.ErrorIs(t, err, model.ErrExtraction)
	})
}

func TestProcessDirectory(t *testing.T) {
	p := testProcessor()
	ctx := context.Background()

	t.Run("Partial failures do not abort the batch", func(t *testing.T) {
		dir := t.TempDir()

		files := map[string][]byte{
			"TCS_placement_paper_2023.txt": []byte("Placement interview questions about aptitude."),
			"dbms_notes.md":                []byte("Notes on database management systems."),
			"python_tutorial.txt":          []byte("A python tutorial covering functions and classes."),
			"java_mock_test_1.txt":         []byte("Mock test with java questions."),
			"broken.docx":                  []byte("not a zip container"),
		}
		for name, content := range files {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), content, 0644))
		}

		result, err := p.ProcessDirectory(ctx, dir)
		require.NoError(t, err)

		assert.Len(t, result.Documents, 4, "four files should process successfully")
		require.Len(t, result.Failures, 1, "the corrupt docx should be reported")
		assert.Contains(t, result.Failures[0].Path, "broken.docx")
		assert.ErrorIs(t, result.Failures[0].Err, model.ErrExtraction)
		assert.NotEmpty(t, result.Chunks)
	})

	t.Run("Unsupported and hidden files are skipped silently", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "song.mp3"), []byte("xx"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.txt"), []byte("secret"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("lecture notes"), 0644))

		result, err := p.ProcessDirectory(ctx, dir)
		require.NoError(t, err)

		assert.Len(t, result.Documents, 1, "only the supported visible file should process")
		assert.Empty(t, result.Failures)
	})

	t.Run("Subdirectories are walked recursively", func(t *testing.T) {
		dir := t.TempDir()
		sub := filepath.Join(dir, "semester2")
		require.NoError(t, os.MkdirAll(sub, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "top.txt"), []byte("top level material"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(sub, "nested.txt"), []byte("nested material"), 0644))

		result, err := p.ProcessDirectory(ctx, dir)
		require.NoError(t, err)
		assert.Len(t, result.Documents, 2)
	})

	t.Run("Missing directory fails", func(t *testing.T) {
		_, err := p.ProcessDirectory(ctx, filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})
}
