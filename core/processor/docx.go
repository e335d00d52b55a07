package processor

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"strings"

	"github.com/scholarai/scholarai/helper"
	"github.com/scholarai/scholarai/model"
)

// DocxExtractor handles DOCX documents by reading word/document.xml from the
// zip container.
type DocxExtractor struct{}

// NewDocxExtractor creates a new DOCX extractor.
func NewDocxExtractor() *DocxExtractor {
	return &DocxExtractor{}
}

func (e *DocxExtractor) Extensions() []string {
	return []string{".docx"}
}

func (e *DocxExtractor) Extract(_ context.Context, data []byte) (Result, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, helper.NewError("open docx container", model.ErrExtraction)
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return Result{}, helper.NewError("open document.xml", model.ErrExtraction)
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return Result{}, helper.NewError("read document.xml", model.ErrExtraction)
		}

		return Result{Text: parseDocumentXML(content)}, nil
	}

	return Result{}, helper.NewError("locate document.xml", model.ErrExtraction)
}

// documentXML mirrors the parts of word/document.xml we read.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Texts []string `xml:"t"`
}

// parseDocumentXML extracts paragraph text, one paragraph per line.
func parseDocumentXML(content []byte) string {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return ""
	}

	var lines []string
	for _, p := range doc.Body.Paragraphs {
		var sb strings.Builder
		for _, r := range p.Runs {
			for _, t := range r.Texts {
				sb.WriteString(t)
			}
		}
		lines = append(lines, sb.String())
	}

	return strings.Join(lines, "\n")
}
