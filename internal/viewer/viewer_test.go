package viewer

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/docsight/docsight/internal/appstate"
	"github.com/docsight/docsight/internal/docx"
	"github.com/docsight/docsight/internal/settings"
	"github.com/docsight/docsight/internal/testutil"
)

func newTestModel(t *testing.T) (*Model, *appstate.App) {
	t.Helper()
	registry := NewSurfaceRegistry()
	app := appstate.New(
		filepath.Join(t.TempDir(), "settings.json"),
		appstate.WithSurfaceFactory(registry.Surface),
	)
	require.NoError(t, app.Unmarshall(settings.ConfigRecord{}))

	m := newModel(Config{App: app, Registry: registry, Theme: "default"})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, app
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testDocument() *docx.Document {
	return &docx.Document{
		Path: "/docs/report.docx",
		Paragraphs: []docx.Paragraph{
			{StyleName: "heading 1", StyleID: "Heading1", Text: "Title"},
			{StyleName: "Normal", Text: "Body"},
		},
	}
}

func TestDocumentLoadUpdatesRecentFilesAndDialogDir(t *testing.T) {
	m, app := newTestModel(t)

	m.Update(docLoadedMsg{doc: testDocument()})

	require.Len(t, app.RecentFiles(), 1)
	require.Equal(t, "/docs/report.docx", app.RecentFiles()[0].Path)
	require.Equal(t, "/docs", app.Windows()[0].FileDialogDir)
	require.Len(t, m.table.Rows(), 2)
}

func TestReloadDoesNotTouchRecentFiles(t *testing.T) {
	m, app := newTestModel(t)

	m.Update(docLoadedMsg{doc: testDocument()})
	m.Update(docLoadedMsg{doc: testDocument(), reload: true})

	require.Len(t, app.RecentFiles(), 1)
	require.Equal(t, "document reloaded", m.status)
}

func TestNewWindowAndSwitch(t *testing.T) {
	m, app := newTestModel(t)
	m.Update(docLoadedMsg{doc: testDocument()})

	m.Update(keyPress('n'))
	require.Len(t, app.Windows(), 2)
	require.Equal(t, 1, m.current)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 0, m.current)
}

func TestWindowsHaveIndependentLayouts(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(docLoadedMsg{doc: testDocument()})

	first := m.surface()
	m.Update(keyPress('n'))
	second := m.surface()

	require.NotSame(t, first, second)
	m.toggleColumn(ColBold)
	require.Contains(t, second.Layout.Columns, "bold")
	require.NotContains(t, first.Layout.Columns, "bold")
}

func TestCloseLastWindowSavesAndQuits(t *testing.T) {
	m, app := newTestModel(t)
	m.Update(docLoadedMsg{doc: testDocument()})

	_, cmd := m.closeWindow()
	require.NotNil(t, cmd)
	require.True(t, app.SettingsSaved())
	require.FileExists(t, app.SettingsFile())

	content := testutil.ReadFile(t, app.SettingsFile())
	require.Contains(t, content, `"win-0"`)
	require.Contains(t, content, "/docs/report.docx")
}

func TestCloseOneOfTwoWindowsKeepsRunning(t *testing.T) {
	m, app := newTestModel(t)
	m.Update(docLoadedMsg{doc: testDocument()})
	m.Update(keyPress('n'))

	_, cmd := m.closeWindow()
	require.Nil(t, cmd)
	require.Len(t, app.Windows(), 1)
	require.False(t, app.SettingsSaved())
}

func TestQuitSavesOnce(t *testing.T) {
	m, app := newTestModel(t)
	m.Update(docLoadedMsg{doc: testDocument()})

	_, cmd := m.quit()
	require.NotNil(t, cmd)
	require.True(t, app.SettingsSaved())
}

func TestToggleColumnKeepsAtLeastOne(t *testing.T) {
	m, _ := newTestModel(t)
	surface := m.surface()
	surface.Layout.Columns = []string{"text"}

	m.toggleColumn(ColText)
	require.Equal(t, []string{"text"}, surface.Layout.Columns)
	require.Equal(t, "cannot hide the last column", m.status)
}

func TestToggleColumnReinsertsInDisplayOrder(t *testing.T) {
	m, _ := newTestModel(t)
	surface := m.surface()
	surface.Layout.Columns = []string{"num", "text"}

	m.toggleColumn(ColName)
	require.Equal(t, []string{"num", "name", "text"}, surface.Layout.Columns)
}

func TestRebuildTableClampsPersistedCursor(t *testing.T) {
	m, _ := newTestModel(t)
	surface := m.surface()
	surface.Layout.Cursor = 99

	m.Update(docLoadedMsg{doc: testDocument()})
	require.Equal(t, 1, surface.Layout.Cursor)
	require.Equal(t, 1, m.table.Cursor())
}

func TestWindowSizeIsCapturedOnSurface(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 132, Height: 43})
	require.Equal(t, Geometry{Width: 132, Height: 43}, m.surface().Geom)
}

func TestHelpModeReturnsOnAnyKey(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(docLoadedMsg{doc: testDocument()})

	m.Update(keyPress('?'))
	require.Equal(t, modeHelp, m.mode)
	m.Update(keyPress('x'))
	require.Equal(t, modeTable, m.mode)
}

func TestOpenPromptSeedsFromDialogDir(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(docLoadedMsg{doc: testDocument()})

	m.Update(keyPress('o'))
	require.Equal(t, modeOpen, m.mode)
	require.Equal(t, "/docs"+string(filepath.Separator), m.input.Value())
}
