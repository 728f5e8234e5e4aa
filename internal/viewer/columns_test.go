package viewer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/docsight/docsight/internal/docx"
)

func TestKindNamesRoundTrip(t *testing.T) {
	kinds := AllColumns()
	require.Equal(t, kinds, kindsFromNames(kindNames(kinds)))
}

func TestKindsFromNamesDropsUnknown(t *testing.T) {
	kinds := kindsFromNames([]string{"num", "sparkline", "underline"})
	require.Equal(t, []ColumnKind{ColNum, ColUnderline}, kinds)
}

func TestKnownKindNamesPreservesDisplayOrder(t *testing.T) {
	names := knownKindNames([]string{"underline", "num", "text"})
	require.Equal(t, []string{"num", "text", "underline"}, names)
}

func TestCellValues(t *testing.T) {
	paragraph := docx.Paragraph{
		StyleID:   "Heading2",
		StyleName: "heading 2",
		Text:      "Results",
		Runs:      []docx.Run{{Text: "Results", Bold: true, Italic: true}},
	}

	require.Equal(t, "4", cellValue(paragraph, 4, ColNum))
	require.Equal(t, "heading 2", cellValue(paragraph, 4, ColName))
	require.Equal(t, "Results", cellValue(paragraph, 4, ColText))
	require.Equal(t, "heading", cellValue(paragraph, 4, ColType))
	require.Equal(t, checkMark, cellValue(paragraph, 4, ColBold))
	require.Equal(t, checkMark, cellValue(paragraph, 4, ColItalic))
	require.Equal(t, "", cellValue(paragraph, 4, ColUnderline))
}
