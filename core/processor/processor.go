package processor

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/scholarai/scholarai/helper"
	"github.com/scholarai/scholarai/model"
)

// Processor normalizes arbitrary input files into classified, chunked
// documents. It composes the extractor registry, the metadata classifier and
// the chunker. Processing is pure and local, safe to invoke in parallel
// across independent files.
type Processor struct {
	registry   *Registry
	classifier *Classifier
	chunker    ChunkFunc
	log        *slog.Logger
}

// NewProcessor creates a processor from explicit parts.
func NewProcessor(registry *Registry, classifier *Classifier, chunker ChunkFunc, logger *slog.Logger) *Processor {
	return &Processor{
		registry:   registry,
		classifier: classifier,
		chunker:    chunker,
		log:        logger,
	}
}

// DefaultProcessor creates a processor with the default extractors, the
// default classifier rule set and the default sized chunker.
func DefaultProcessor(logger *slog.Logger) *Processor {
	return NewProcessor(
		DefaultRegistry(ExecRunner{}),
		NewClassifier(model.DefaultClassifierRules()),
		SizedChunker(model.DefaultChunkingConfig()),
		logger,
	)
}

// Process reads and processes a single file from disk.
func (p *Processor) Process(ctx context.Context, path string) (*model.Document, []*model.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, helper.NewError("read file", err)
	}
	return p.ProcessBytes(ctx, data, path)
}

// ProcessBytes processes raw file content under its declared filename. The
// returned chunks are ordered by chunk index and carry the document's full
// metadata record.
func (p *Processor) ProcessBytes(ctx context.Context, data []byte, declaredName string) (*model.Document, []*model.Chunk, error) {
	extractor, err := p.registry.ExtractorFor(declaredName, data)
	if err != nil {
		return nil, nil, err
	}

	result, err := extractor.Extract(ctx, data)
	if err != nil {
		return nil, nil, helper.NewError("extract "+filepath.Base(declaredName), err)
	}

	doc := model.NewDocument(declaredName)
	doc.Content = result.Text
	doc.Degraded = result.Degraded
	if result.Degraded {
		p.log.Warn("Extraction degraded, no text recovered",
			slog.String("file", doc.FileName))
	}

	p.classifier.Classify(doc)

	chunks, err := p.chunker(doc)
	if err != nil {
		return nil, nil, helper.NewError("chunk "+doc.FileName, err)
	}

	p.log.Info("Processed document",
		slog.String("file", doc.FileName),
		slog.String("document_type", string(doc.Type)),
		slog.Int("num_chunks", len(chunks)))

	return doc, chunks, nil
}

// FileFailure records a file that could not be processed during a batch run.
type FileFailure struct {
	Path string
	Err  error
}

// BatchResult is the partial-success outcome of directory processing.
type BatchResult struct {
	Documents []*model.Document
	Chunks    []*model.Chunk
	Failures  []FileFailure
}

// ProcessDirectory walks a directory tree and processes every file with a
// supported extension. Individual file failures are collected, not fatal:
// the batch continues and reports them alongside the processed documents.
func (p *Processor) ProcessDirectory(ctx context.Context, dir string) (*BatchResult, error) {
	result := &BatchResult{}

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		if !p.registry.Supported(entry.Name()) {
			p.log.Debug("Skipping unsupported file", slog.String("file", entry.Name()))
			return nil
		}

		doc, chunks, err := p.Process(ctx, path)
		if err != nil {
			p.log.Warn("Failed to process file",
				slog.String("file", path),
				slog.String("error", err.Error()))
			result.Failures = append(result.Failures, FileFailure{Path: path, Err: err})
			return nil
		}

		result.Documents = append(result.Documents, doc)
		result.Chunks = append(result.Chunks, chunks...)
		return nil
	})
	if err != nil {
		return nil, helper.NewError("walk directory", err)
	}

	p.log.Info("Processed directory",
		slog.String("dir", dir),
		slog.Int("documents", len(result.Documents)),
		slog.Int("failures", len(result.Failures)))

	return result, nil
}
