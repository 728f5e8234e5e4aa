// Package listing renders the paragraph structure of a document
// non-interactively, for the list command.
package listing

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/docsight/docsight/internal/docx"
)

// Format selects the output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format flag value.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatTable, FormatJSON, FormatYAML:
		return Format(value), nil
	}
	return "", fmt.Errorf("unsupported format: %s (use table, json or yaml)", value)
}

// Listing is the serializable projection of a document's structure.
type Listing struct {
	File           string `json:"file" yaml:"file"`
	ParagraphCount int    `json:"paragraph_count" yaml:"paragraph_count"`
	Paragraphs     []Row  `json:"paragraphs" yaml:"paragraphs"`
}

// Row is one paragraph of a Listing.
type Row struct {
	Index     int    `json:"index" yaml:"index"`
	Style     string `json:"style" yaml:"style"`
	Type      string `json:"type" yaml:"type"`
	Text      string `json:"text" yaml:"text"`
	Bold      bool   `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty" yaml:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty" yaml:"underline,omitempty"`
}

// FromDocument projects a document into its listing form.
func FromDocument(doc *docx.Document) Listing {
	listing := Listing{
		File:           doc.Path,
		ParagraphCount: len(doc.Paragraphs),
		Paragraphs:     make([]Row, len(doc.Paragraphs)),
	}
	for i, paragraph := range doc.Paragraphs {
		listing.Paragraphs[i] = Row{
			Index:     i,
			Style:     paragraph.StyleName,
			Type:      string(paragraph.Kind()),
			Text:      paragraph.Text,
			Bold:      paragraph.Bold(),
			Italic:    paragraph.Italic(),
			Underline: paragraph.Underline(),
		}
	}
	return listing
}

// Write renders the document structure to w in the requested format.
func Write(w io.Writer, doc *docx.Document, format Format) error {
	listing := FromDocument(doc)

	switch format {
	case FormatJSON:
		payload, err := json.MarshalIndent(listing, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(payload))
		return err

	case FormatYAML:
		payload, err := yaml.Marshal(listing)
		if err != nil {
			return err
		}
		_, err = w.Write(payload)
		return err

	default:
		return writeTableListing(w, listing)
	}
}
