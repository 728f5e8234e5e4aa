package docx

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:pPr><w:pStyle w:val="Heading1"/></w:pPr>
      <w:r><w:rPr><w:b/></w:rPr><w:t>Quarterly Report</w:t></w:r>
    </w:p>
    <w:p>
      <w:r><w:t>Plain </w:t></w:r>
      <w:r><w:rPr><w:i/></w:rPr><w:t>and italic</w:t></w:r>
    </w:p>
    <w:p>
      <w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr>
      <w:r><w:rPr><w:u w:val="single"/></w:rPr><w:t>first item</w:t></w:r>
    </w:p>
    <w:p/>
    <w:p>
      <w:r><w:rPr><w:b w:val="0"/></w:rPr><w:t>not bold after all</w:t></w:r>
    </w:p>
  </w:body>
</w:document>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:styleId="Heading1">
    <w:name w:val="heading 1"/>
  </w:style>
  <w:style w:type="paragraph" w:styleId="Normal">
    <w:name w:val="Normal"/>
  </w:style>
</w:styles>`

// buildDocx assembles an in-memory .docx container from named parts.
func buildDocx(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func parseFixture(t *testing.T, parts map[string]string) *Document {
	t.Helper()
	data := buildDocx(t, parts)
	doc, err := Parse(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return doc
}

func TestParseExtractsParagraphs(t *testing.T) {
	doc := parseFixture(t, map[string]string{
		"word/document.xml": documentXML,
		"word/styles.xml":   stylesXML,
	})

	require.Len(t, doc.Paragraphs, 5)

	heading := doc.Paragraphs[0]
	require.Equal(t, "Heading1", heading.StyleID)
	require.Equal(t, "heading 1", heading.StyleName)
	require.Equal(t, "Quarterly Report", heading.Text)
	require.Equal(t, KindHeading, heading.Kind())
	require.True(t, heading.Bold())

	mixed := doc.Paragraphs[1]
	require.Equal(t, "Normal", mixed.StyleName)
	require.Equal(t, "Plain and italic", mixed.Text)
	require.Equal(t, KindParagraph, mixed.Kind())
	require.False(t, mixed.Italic(), "only one of two runs is italic")

	item := doc.Paragraphs[2]
	require.True(t, item.InList)
	require.Equal(t, KindList, item.Kind())
	require.True(t, item.Underline())

	require.Equal(t, KindEmpty, doc.Paragraphs[3].Kind())
	require.False(t, doc.Paragraphs[3].Bold(), "empty paragraph has no formatted runs")

	require.False(t, doc.Paragraphs[4].Bold(), `b w:val="0" means off`)
}

func TestParseFallsBackToStyleIDWithoutStyleTable(t *testing.T) {
	doc := parseFixture(t, map[string]string{
		"word/document.xml": documentXML,
	})

	require.Equal(t, "Heading1", doc.Paragraphs[0].StyleName)
	require.Equal(t, "Normal", doc.Paragraphs[1].StyleName)
}

func TestParseRejectsNonZipInput(t *testing.T) {
	data := []byte("this is not a zip archive")
	_, err := Parse(bytes.NewReader(data), int64(len(data)))
	require.Error(t, err)
}

func TestParseRequiresDocumentPart(t *testing.T) {
	data := buildDocx(t, map[string]string{"word/styles.xml": stylesXML})
	_, err := Parse(bytes.NewReader(data), int64(len(data)))
	require.ErrorContains(t, err, "not a Word document")
}

func TestParseRejectsMalformedDocumentPart(t *testing.T) {
	data := buildDocx(t, map[string]string{"word/document.xml": "<w:document>"})
	_, err := Parse(bytes.NewReader(data), int64(len(data)))
	require.ErrorContains(t, err, "malformed document part")
}

func TestOpenReadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.docx")
	require.NoError(t, os.WriteFile(path, buildDocx(t, map[string]string{
		"word/document.xml": documentXML,
		"word/styles.xml":   stylesXML,
	}), 0o644))

	doc, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, path, doc.Path)
	require.Len(t, doc.Paragraphs, 5)
}

func TestOpenMissingFileFails(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.docx"))
	require.Error(t, err)
}

func TestUnderlineValNoneIsOff(t *testing.T) {
	doc := parseFixture(t, map[string]string{
		"word/document.xml": `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:rPr><w:u w:val="none"/></w:rPr><w:t>text</w:t></w:r></w:p>
  </w:body>
</w:document>`,
	})
	require.False(t, doc.Paragraphs[0].Underline())
}
