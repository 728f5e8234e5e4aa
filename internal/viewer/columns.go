package viewer

import (
	"strconv"

	"github.com/docsight/docsight/internal/docx"
)

// ColumnKind enumerates the table columns. Cell values are resolved by a
// single (row, kind) lookup instead of open-ended role dispatch.
type ColumnKind int

const (
	ColNum ColumnKind = iota
	ColName
	ColText
	ColType
	ColBold
	ColItalic
	ColUnderline
)

// checkMark renders boolean cells.
const checkMark = "✓"

type columnSpec struct {
	kind  ColumnKind
	name  string
	title string
	width int
}

// columnSpecs is the full ordered column set. Widths are minimums; the
// text column absorbs remaining terminal width.
var columnSpecs = []columnSpec{
	{ColNum, "num", "#", 5},
	{ColName, "name", "Name", 18},
	{ColText, "text", "Text", 40},
	{ColType, "type", "Type", 10},
	{ColBold, "bold", "B", 3},
	{ColItalic, "italic", "I", 3},
	{ColUnderline, "underline", "U", 3},
}

// AllColumns returns every column kind in display order.
func AllColumns() []ColumnKind {
	kinds := make([]ColumnKind, len(columnSpecs))
	for i, spec := range columnSpecs {
		kinds[i] = spec.kind
	}
	return kinds
}

// DefaultColumns returns the columns visible in a fresh window.
func DefaultColumns() []ColumnKind {
	return []ColumnKind{ColNum, ColName, ColText, ColType}
}

func specFor(kind ColumnKind) columnSpec {
	for _, spec := range columnSpecs {
		if spec.kind == kind {
			return spec
		}
	}
	return columnSpec{kind: kind, name: "unknown", title: "?", width: 4}
}

// kindNames converts kinds to their persisted names.
func kindNames(kinds []ColumnKind) []string {
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = specFor(kind).name
	}
	return names
}

// kindsFromNames converts persisted names back to kinds, dropping
// unknown names.
func kindsFromNames(names []string) []ColumnKind {
	var kinds []ColumnKind
	for _, name := range names {
		for _, spec := range columnSpecs {
			if spec.name == name {
				kinds = append(kinds, spec.kind)
				break
			}
		}
	}
	return kinds
}

// knownKindNames filters a persisted name list down to known columns,
// preserving display order.
func knownKindNames(names []string) []string {
	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true
	}
	var out []string
	for _, spec := range columnSpecs {
		if present[spec.name] {
			out = append(out, spec.name)
		}
	}
	return out
}

// cellValue resolves the display value of one table cell.
func cellValue(p docx.Paragraph, row int, kind ColumnKind) string {
	switch kind {
	case ColNum:
		return strconv.Itoa(row)
	case ColName:
		return p.StyleName
	case ColText:
		return p.Text
	case ColType:
		return string(p.Kind())
	case ColBold:
		return boolCell(p.Bold())
	case ColItalic:
		return boolCell(p.Italic())
	case ColUnderline:
		return boolCell(p.Underline())
	}
	return ""
}

func boolCell(v bool) string {
	if v {
		return checkMark
	}
	return ""
}
