// Package docx reads the paragraph structure of Word (.docx) documents.
//
// A .docx file is a zip container of XML parts. This package extracts the
// top-level paragraphs from word/document.xml together with their style
// names (word/styles.xml) and run-level formatting attributes. The whole
// file is read into memory first, so a document that is open in a word
// processor elsewhere can still be inspected; no exclusive access is
// taken.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/docsight/docsight/internal/logging"
)

// Kind classifies a paragraph for display purposes.
type Kind string

const (
	KindParagraph Kind = "paragraph"
	KindHeading   Kind = "heading"
	KindList      Kind = "list"
	KindEmpty     Kind = "empty"
)

// Document is a read-only view of a parsed .docx file.
type Document struct {
	Path       string
	Paragraphs []Paragraph
}

// Paragraph is one top-level paragraph of the document body.
type Paragraph struct {
	// StyleID is the internal style identifier (e.g. "Heading1").
	StyleID string

	// StyleName is the human-readable style name from styles.xml,
	// falling back to StyleID when the style table has no entry.
	StyleName string

	// Text is the concatenated run text.
	Text string

	// Runs are the formatted text runs of the paragraph.
	Runs []Run

	// InList is true when the paragraph carries list numbering.
	InList bool
}

// Run is a span of text with uniform formatting.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
}

// Kind derives the display classification of the paragraph.
func (p Paragraph) Kind() Kind {
	switch {
	case strings.HasPrefix(strings.ToLower(p.StyleID), "heading"):
		return KindHeading
	case p.InList:
		return KindList
	case strings.TrimSpace(p.Text) == "":
		return KindEmpty
	default:
		return KindParagraph
	}
}

// Bold reports whether every non-empty run of the paragraph is bold.
func (p Paragraph) Bold() bool {
	return p.allRuns(func(r Run) bool { return r.Bold })
}

// Italic reports whether every non-empty run of the paragraph is italic.
func (p Paragraph) Italic() bool {
	return p.allRuns(func(r Run) bool { return r.Italic })
}

// Underline reports whether every non-empty run of the paragraph is
// underlined.
func (p Paragraph) Underline() bool {
	return p.allRuns(func(r Run) bool { return r.Underline })
}

func (p Paragraph) allRuns(pred func(Run) bool) bool {
	seen := false
	for _, run := range p.Runs {
		if strings.TrimSpace(run.Text) == "" {
			continue
		}
		if !pred(run) {
			return false
		}
		seen = true
	}
	return seen
}

// Open reads a .docx file and extracts its paragraph structure.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	logger := logging.Component("docx")
	logger.Info().Str("path", path).Int("bytes", len(data)).Msg("opening document")

	doc, err := Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Parse extracts the paragraph structure from an in-memory .docx
// container.
func Parse(r io.ReaderAt, size int64) (*Document, error) {
	archive, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("not a Word document (zip container): %w", err)
	}

	styleNames, err := readStyleNames(archive)
	if err != nil {
		// Style names only affect display; keep going with IDs.
		logger := logging.Component("docx")
		logger.Warn().Err(err).Msg("cannot read style table")
	}

	body, err := readDocumentBody(archive)
	if err != nil {
		return nil, err
	}

	doc := &Document{Paragraphs: make([]Paragraph, 0, len(body.Paragraphs))}
	for _, xp := range body.Paragraphs {
		doc.Paragraphs = append(doc.Paragraphs, xp.toParagraph(styleNames))
	}
	return doc, nil
}

func readDocumentBody(archive *zip.Reader) (*xmlBody, error) {
	data, err := readPart(archive, "word/document.xml")
	if err != nil {
		return nil, fmt.Errorf("not a Word document: %w", err)
	}

	var document xmlDocument
	if err := xml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("malformed document part: %w", err)
	}
	return &document.Body, nil
}

func readStyleNames(archive *zip.Reader) (map[string]string, error) {
	data, err := readPart(archive, "word/styles.xml")
	if err != nil {
		return nil, err
	}

	var styles xmlStyleTable
	if err := xml.Unmarshal(data, &styles); err != nil {
		return nil, fmt.Errorf("malformed style table: %w", err)
	}

	names := make(map[string]string, len(styles.Styles))
	for _, style := range styles.Styles {
		if style.ID == "" || style.Name == nil {
			continue
		}
		names[style.ID] = style.Name.Val
	}
	return names, nil
}

func readPart(archive *zip.Reader, name string) ([]byte, error) {
	for _, file := range archive.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("missing part %s", name)
}
