// Package viewer is the terminal UI of Docsight: a table of document
// paragraphs with toggleable columns, multiple persistable windows, and
// automatic reload when the document changes on disk.
package viewer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/docsight/docsight/internal/appinfo"
	"github.com/docsight/docsight/internal/appstate"
	"github.com/docsight/docsight/internal/docx"
	"github.com/docsight/docsight/internal/logging"
	"github.com/docsight/docsight/internal/watch"
)

const (
	minTextColumnWidth = 10
	chromeRows         = 2 // title bar + status bar
)

// Config controls the viewer.
type Config struct {
	// App is the application state; it must have at least one window.
	App *appstate.App

	// Registry is the surface registry wired into App's windows.
	Registry *SurfaceRegistry

	// Theme is the color theme name.
	Theme string

	// FilePath is the document to open. When empty, the most recent
	// file is opened, or the open prompt is shown if there is none.
	FilePath string
}

// Run starts the viewer and blocks until the user quits. Settings are
// saved before returning, whichever shutdown path fired.
func Run(cfg Config) error {
	model := newModel(cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()

	if m, ok := final.(*Model); ok && m.watcher != nil {
		m.watcher.Close()
	}

	// The close/quit paths inside Update already save; this covers an
	// interrupted event loop. The saved flag makes it a no-op
	// otherwise.
	if !cfg.App.SettingsSaved() {
		if saveErr := cfg.App.SaveSettings(); saveErr != nil && err == nil {
			err = saveErr
		}
	}
	return err
}

type mode int

const (
	modeTable mode = iota
	modeOpen
	modeRecent
	modeColumns
	modeHelp
)

// Model is the bubbletea model of the viewer.
type Model struct {
	app      *appstate.App
	registry *SurfaceRegistry
	theme    Theme

	doc     *docx.Document
	docErr  error
	watcher *watch.DocumentWatcher

	table table.Model
	input textinput.Model

	filePath string // initial document from the command line
	mode     mode
	current  int // position in the live window list
	picker   int // cursor within the recent/columns pickers

	status string
	width  int
	height int
}

type docLoadedMsg struct {
	doc    *docx.Document
	reload bool
}

type docErrorMsg struct {
	path string
	err  error
}

type docChangedMsg struct{}

type watcherStartedMsg struct {
	watcher *watch.DocumentWatcher
}

func newModel(cfg Config) *Model {
	input := textinput.New()
	input.Placeholder = "path to .docx file"
	input.CharLimit = 0

	m := &Model{
		app:      cfg.App,
		registry: cfg.Registry,
		theme:    ThemeByName(cfg.Theme),
		table:    table.New(table.WithFocused(true)),
		input:    input,
		filePath: cfg.FilePath,
	}

	styles := table.DefaultStyles()
	styles.Header = m.theme.TableHeader
	styles.Selected = m.theme.TableSelected
	m.table.SetStyles(styles)

	return m
}

// Init resolves the initial document and kicks off loading.
func (m *Model) Init() tea.Cmd {
	path := m.filePath
	if path == "" {
		path = m.mostRecentExisting()
	}
	if path == "" {
		m.enterOpenPrompt()
		return textinput.Blink
	}
	return loadDocumentCmd(path, false)
}

func (m *Model) mostRecentExisting() string {
	for _, recent := range m.app.RecentFiles() {
		if _, err := os.Stat(recent.Path); err == nil {
			return recent.Path
		}
	}
	return ""
}

func (m *Model) window() *appstate.Window {
	windows := m.app.Windows()
	if len(windows) == 0 {
		return nil
	}
	if m.current >= len(windows) {
		m.current = len(windows) - 1
	}
	return windows[m.current]
}

func (m *Model) surface() *ViewSurface {
	win := m.window()
	if win == nil {
		return NewViewSurface()
	}
	return m.registry.Get(win.Index())
}

// Update is the single event handler; everything runs on this control
// goroutine.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		surface := m.surface()
		surface.Geom = Geometry{Width: msg.Width, Height: msg.Height}
		m.rebuildTable()
		return m, nil

	case docLoadedMsg:
		return m.onDocumentLoaded(msg)

	case docErrorMsg:
		m.docErr = msg.err
		m.status = ""
		logger := logging.Component("viewer")
		logger.Error().Err(msg.err).Str("path", msg.path).Msg("cannot open document")
		return m, nil

	case docChangedMsg:
		if m.doc == nil {
			return m, nil
		}
		return m, tea.Batch(
			loadDocumentCmd(m.doc.Path, true),
			waitForChangeCmd(m.watcher),
		)

	case watcherStartedMsg:
		if m.watcher != nil {
			m.watcher.Close()
		}
		m.watcher = msg.watcher
		return m, waitForChangeCmd(m.watcher)

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	return m, nil
}

func (m *Model) onDocumentLoaded(msg docLoadedMsg) (tea.Model, tea.Cmd) {
	m.doc = msg.doc
	m.docErr = nil
	m.mode = modeTable

	cmds := []tea.Cmd{}
	if !msg.reload {
		m.app.AddRecentFile(msg.doc.Path)
		if win := m.window(); win != nil {
			win.FileDialogDir = filepath.Dir(msg.doc.Path)
		}
		cmds = append(cmds, startWatcherCmd(msg.doc.Path))
	} else {
		m.status = "document reloaded"
	}

	m.rebuildTable()
	return m, tea.Batch(cmds...)
}

func (m *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeOpen:
		return m.onOpenKey(msg)
	case modeRecent:
		return m.onRecentKey(msg)
	case modeColumns:
		return m.onColumnsKey(msg)
	case modeHelp:
		m.mode = modeTable
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m.quit()

	case "w":
		return m.closeWindow()

	case "n":
		m.app.AddWindow(nil)
		m.current = len(m.app.Windows()) - 1
		m.status = fmt.Sprintf("opened %s", m.window().Key())
		m.rebuildTable()
		return m, nil

	case "tab":
		if count := len(m.app.Windows()); count > 1 {
			m.current = (m.current + 1) % count
			m.surface().Geom = Geometry{Width: m.width, Height: m.height}
			m.rebuildTable()
		}
		return m, nil

	case "o":
		m.enterOpenPrompt()
		return m, textinput.Blink

	case "r":
		if len(m.app.RecentFiles()) == 0 {
			m.status = "no recent files"
			return m, nil
		}
		m.mode = modeRecent
		m.picker = 0
		return m, nil

	case "c":
		m.mode = modeColumns
		m.picker = 0
		return m, nil

	case "?":
		m.mode = modeHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	m.surface().Layout.Cursor = m.table.Cursor()
	return m, cmd
}

// quit saves the settings (once) and terminates the event loop.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	if !m.app.SettingsSaved() {
		if err := m.app.SaveSettings(); err != nil {
			// Only possible in debugging mode; surface it and still
			// quit.
			logger := logging.Component("viewer")
			logger.Error().Err(err).Msg("saving settings failed")
		}
	}
	return m, tea.Quit
}

// closeWindow removes the current window. The save must run before the
// window is dropped so its final geometry is captured.
func (m *Model) closeWindow() (tea.Model, tea.Cmd) {
	win := m.window()
	if win == nil {
		return m, tea.Quit
	}

	if err := m.app.SaveIfLastWindowClosing(); err != nil {
		logger := logging.Component("viewer")
		logger.Error().Err(err).Msg("saving settings failed")
	}
	m.app.RemoveWindow(win)

	if len(m.app.Windows()) == 0 {
		return m, tea.Quit
	}
	if m.current >= len(m.app.Windows()) {
		m.current = len(m.app.Windows()) - 1
	}
	m.status = fmt.Sprintf("closed %s", win.Key())
	m.rebuildTable()
	return m, nil
}

func (m *Model) enterOpenPrompt() {
	m.mode = modeOpen
	seed := ""
	if win := m.window(); win != nil && win.FileDialogDir != "" {
		seed = win.FileDialogDir + string(filepath.Separator)
	}
	m.input.SetValue(seed)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) onOpenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeTable
		m.input.Blur()
		return m, nil
	case "enter":
		path := m.input.Value()
		m.input.Blur()
		m.mode = modeTable
		if path == "" {
			return m, nil
		}
		return m, loadDocumentCmd(path, false)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) onRecentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	recent := m.app.RecentFiles()
	switch msg.String() {
	case "esc", "r":
		m.mode = modeTable
		return m, nil
	case "up", "k":
		if m.picker > 0 {
			m.picker--
		}
		return m, nil
	case "down", "j":
		if m.picker < len(recent)-1 {
			m.picker++
		}
		return m, nil
	case "enter":
		m.mode = modeTable
		if m.picker < len(recent) {
			return m, loadDocumentCmd(recent[m.picker].Path, false)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) onColumnsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kinds := AllColumns()
	switch msg.String() {
	case "esc", "c", "enter":
		m.mode = modeTable
		m.rebuildTable()
		return m, nil
	case "up", "k":
		if m.picker > 0 {
			m.picker--
		}
		return m, nil
	case "down", "j":
		if m.picker < len(kinds)-1 {
			m.picker++
		}
		return m, nil
	case " ":
		m.toggleColumn(kinds[m.picker])
		return m, nil
	}
	return m, nil
}

func (m *Model) toggleColumn(kind ColumnKind) {
	surface := m.surface()
	name := specFor(kind).name

	visible := surface.Layout.Columns
	for i, existing := range visible {
		if existing == name {
			if len(visible) == 1 {
				m.status = "cannot hide the last column"
				return
			}
			surface.Layout.Columns = append(append([]string{}, visible[:i]...), visible[i+1:]...)
			return
		}
	}
	// Re-insert preserving display order.
	surface.Layout.Columns = knownKindNames(append(append([]string{}, visible...), name))
}

// rebuildTable rebuilds the bubbles table from the document and the
// current window's layout.
func (m *Model) rebuildTable() {
	surface := m.surface()
	kinds := kindsFromNames(surface.Layout.Columns)
	if len(kinds) == 0 {
		kinds = DefaultColumns()
	}

	textWidth := m.textColumnWidth(kinds)
	columns := make([]table.Column, len(kinds))
	for i, kind := range kinds {
		spec := specFor(kind)
		width := spec.width
		if kind == ColText {
			width = textWidth
		}
		columns[i] = table.Column{Title: spec.title, Width: width}
	}

	var rows []table.Row
	if m.doc != nil {
		rows = make([]table.Row, len(m.doc.Paragraphs))
		for rowIdx, paragraph := range m.doc.Paragraphs {
			row := make(table.Row, len(kinds))
			for colIdx, kind := range kinds {
				value := cellValue(paragraph, rowIdx, kind)
				if kind == ColText {
					value = runewidth.Truncate(value, textWidth, "…")
				}
				row[colIdx] = value
			}
			rows[rowIdx] = row
		}
	}

	// Columns must be set together with matching rows; the table
	// indexes cells by column position.
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(rows)

	if m.height > chromeRows {
		m.table.SetHeight(m.height - chromeRows)
	}
	if m.width > 0 {
		m.table.SetWidth(m.width)
	}

	cursor := surface.Layout.Cursor
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	m.table.SetCursor(cursor)
	surface.Layout.Cursor = cursor
}

func (m *Model) textColumnWidth(kinds []ColumnKind) int {
	fixed := 0
	for _, kind := range kinds {
		if kind != ColText {
			fixed += specFor(kind).width + 2
		}
	}
	width := m.width - fixed - 4
	if width < minTextColumnWidth {
		width = minTextColumnWidth
	}
	return width
}

// View renders the title bar, the active pane, and the status bar.
func (m *Model) View() string {
	title := m.titleBar()

	var body string
	switch m.mode {
	case modeOpen:
		body = m.theme.Prompt.Render("Open file: " + m.input.View())
	case modeRecent:
		body = m.recentPicker()
	case modeColumns:
		body = m.columnsPicker()
	case modeHelp:
		body = m.helpView()
	default:
		body = m.table.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, m.statusBar())
}

func (m *Model) titleBar() string {
	win := m.window()
	windowPart := ""
	if win != nil {
		windowPart = fmt.Sprintf(" %s (%d/%d)", win.Key(), m.current+1, len(m.app.Windows()))
	}

	filePart := "(no document)"
	if m.doc != nil {
		filePart = m.doc.Path
	}

	bar := fmt.Sprintf("%s%s — %s", appinfo.ProgramName, windowPart, filePart)
	return m.theme.TitleBar.Width(max(m.width, 0)).Render(bar)
}

func (m *Model) statusBar() string {
	if m.docErr != nil {
		return m.theme.StatusErr.Width(max(m.width, 0)).Render("error: " + m.docErr.Error())
	}
	text := m.status
	if text == "" {
		text = "o open · r recent · c columns · n new window · tab switch · w close · q quit · ? help"
	}
	return m.theme.StatusBar.Width(max(m.width, 0)).Render(text)
}

func (m *Model) recentPicker() string {
	lines := []string{"Recent files:", ""}
	for i, recent := range m.app.RecentFiles() {
		marker := "  "
		if i == m.picker {
			marker = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%s  (%s)", marker, recent.Path, recent.Time.Format("2006-01-02 15:04")))
	}
	lines = append(lines, "", "enter open · esc cancel")
	return m.theme.Help.Render(joinLines(lines))
}

func (m *Model) columnsPicker() string {
	surface := m.surface()
	visible := make(map[string]bool, len(surface.Layout.Columns))
	for _, name := range surface.Layout.Columns {
		visible[name] = true
	}

	lines := []string{"Columns:", ""}
	for i, kind := range AllColumns() {
		spec := specFor(kind)
		marker := "  "
		if i == m.picker {
			marker = "> "
		}
		box := "[ ]"
		if visible[spec.name] {
			box = "[x]"
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", marker, box, spec.title))
	}
	lines = append(lines, "", "space toggle · enter done")
	return m.theme.Help.Render(joinLines(lines))
}

func (m *Model) helpView() string {
	lines := []string{
		appinfo.ProgramName + " " + appinfo.Version,
		appinfo.ShortDescription,
		"",
		"  up/down    move between paragraphs",
		"  o          open a file",
		"  r          recent files",
		"  c          toggle columns",
		"  n          new window",
		"  tab        next window",
		"  w          close window",
		"  q          quit",
		"",
		"press any key to return",
	}
	return m.theme.Help.Render(joinLines(lines))
}

func joinLines(lines []string) string {
	out := ""
	for i, line := range lines {
		if i > 0 {
			out += "\n"
		}
		out += line
	}
	return out
}

func loadDocumentCmd(path string, reload bool) tea.Cmd {
	return func() tea.Msg {
		doc, err := docx.Open(path)
		if err != nil {
			return docErrorMsg{path: path, err: err}
		}
		return docLoadedMsg{doc: doc, reload: reload}
	}
}

func startWatcherCmd(path string) tea.Cmd {
	return func() tea.Msg {
		watcher, err := watch.NewDocumentWatcher(path)
		if err != nil {
			// Reload-on-change is a convenience; the viewer works
			// without it.
			logger := logging.Component("viewer")
			logger.Warn().Err(err).Str("path", path).Msg("cannot watch document")
			return nil
		}
		return watcherStartedMsg{watcher: watcher}
	}
}

func waitForChangeCmd(watcher *watch.DocumentWatcher) tea.Cmd {
	if watcher == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-watcher.Changes(); !ok {
			return nil
		}
		return docChangedMsg{}
	}
}
