package cli

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/docsight/docsight/internal/appinfo"
)

// execute runs the command tree with the given arguments, capturing
// stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeDocxFixture builds a minimal one-paragraph document on disk.
func writeDocxFixture(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Title</w:t></w:r></w:p>
    <w:p><w:r><w:t>Body</w:t></w:r></w:p>
  </w:body>
</w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "fixture.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestCommandTreeWiring(t *testing.T) {
	cmd := newRootCmd()
	require.True(t, cmd.SilenceUsage)
	require.True(t, cmd.SilenceErrors)
	require.Equal(t, appinfo.Version, cmd.Version)

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	require.True(t, names["list"])
	require.True(t, names["version"])
}

func TestListAliases(t *testing.T) {
	list := newListCmd()
	require.ElementsMatch(t, []string{"ls", "browse"}, list.Aliases)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "Docsight version: "+appinfo.Version)
}

func TestListCommandJSON(t *testing.T) {
	path := writeDocxFixture(t)

	out, err := execute(t, "list", path, "--format", "json")
	require.NoError(t, err)

	var decoded struct {
		ParagraphCount int `json:"paragraph_count"`
		Paragraphs     []struct {
			Style string `json:"style"`
			Type  string `json:"type"`
			Text  string `json:"text"`
		} `json:"paragraphs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Equal(t, 2, decoded.ParagraphCount)
	require.Equal(t, "heading", decoded.Paragraphs[0].Type)
	require.Equal(t, "Title", decoded.Paragraphs[0].Text)
}

func TestListCommandTable(t *testing.T) {
	path := writeDocxFixture(t)

	out, err := execute(t, "list", path)
	require.NoError(t, err)
	require.Contains(t, out, "Title")
	require.Contains(t, out, "2 paragraphs in ")
}

func TestListRejectsUnknownFormat(t *testing.T) {
	path := writeDocxFixture(t)

	_, err := execute(t, "list", path, "--format", "xml")
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, appinfo.ExitBadArgs, exitErr.Code)
}

func TestListMissingFileFails(t *testing.T) {
	_, err := execute(t, "list", filepath.Join(t.TempDir(), "missing.docx"))
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, appinfo.ExitError, exitErr.Code)
}

func TestListRequiresExactlyOneArgument(t *testing.T) {
	_, err := execute(t, "list")
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, appinfo.ExitBadArgs, exitErr.Code)
}

func TestRootRejectsExtraArguments(t *testing.T) {
	_, err := execute(t, "a.docx", "b.docx")
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, appinfo.ExitBadArgs, exitErr.Code)
}

func TestInvalidThemeFlagFails(t *testing.T) {
	_, err := execute(t, "--theme", "solarized", "version")
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, appinfo.ExitBadArgs, exitErr.Code)
}

func TestExitErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := &ExitError{Code: appinfo.ExitError, Err: inner}
	require.ErrorIs(t, err, inner)
	require.Equal(t, "boom", err.Error())
}
