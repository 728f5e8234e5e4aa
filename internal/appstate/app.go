// Package appstate owns the live application state: the list of open
// windows, the recent-files list, and the load-at-startup /
// save-at-shutdown lifecycle around the settings store.
//
// An App is an explicitly constructed instance passed to whatever needs
// it; there is one per process, created in main. All mutation happens on
// the single UI control goroutine, so no locking is needed.
package appstate

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/docsight/docsight/internal/appinfo"
	"github.com/docsight/docsight/internal/logging"
	"github.com/docsight/docsight/internal/settings"
)

// SurfaceFactory produces the UI surface for a newly created window.
type SurfaceFactory func(index int) Surface

// App holds the global application state.
type App struct {
	store        *settings.Store
	settingsFile string
	sessionID    string

	windows     []*Window
	recentFiles []settings.RecentFile

	maxRecentFiles  int
	nextWindowIndex int

	// settingsSaved prevents a double write when both the explicit
	// quit path and the last-window-close path trigger a save.
	settingsSaved bool

	newSurface SurfaceFactory
	now        func() time.Time
}

// Option configures an App.
type Option func(*App)

// WithStore overrides the settings store.
func WithStore(store *settings.Store) Option {
	return func(a *App) {
		if store != nil {
			a.store = store
		}
	}
}

// WithSurfaceFactory sets the factory producing UI surfaces for new
// windows. Without it windows get a NopSurface.
func WithSurfaceFactory(factory SurfaceFactory) Option {
	return func(a *App) {
		if factory != nil {
			a.newSurface = factory
		}
	}
}

// WithMaxRecentFiles overrides the recent-files bound.
func WithMaxRecentFiles(n int) Option {
	return func(a *App) {
		if n > 0 {
			a.maxRecentFiles = n
		}
	}
}

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates the application state bound to a settings file path.
func New(settingsFile string, opts ...Option) *App {
	app := &App{
		store:          settings.NewStore(),
		settingsFile:   settingsFile,
		sessionID:      uuid.NewString(),
		maxRecentFiles: appinfo.MaxRecentFiles,
		newSurface:     func(int) Surface { return NopSurface{} },
		now:            func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(app)
	}
	logger := logging.Component("appstate")
	logger.Debug().
		Str("session_id", app.sessionID).
		Str("settings_file", settingsFile).
		Msg("application state created")
	return app
}

// SessionID returns the unique id of this process session, used as a log
// correlation field.
func (a *App) SessionID() string {
	return a.sessionID
}

// SettingsFile returns the path of the persisted settings file.
func (a *App) SettingsFile() string {
	return a.settingsFile
}

// Windows returns the live window list. Read-only for callers.
func (a *App) Windows() []*Window {
	return a.windows
}

// RecentFiles returns the recent-files list, most recent first.
// Read-only for callers.
func (a *App) RecentFiles() []settings.RecentFile {
	return a.recentFiles
}

// AddRecentFile inserts a path at the front of the recent-files list. A
// path already present moves to the front. The list is truncated to the
// configured maximum, evicting the oldest entries.
func (a *App) AddRecentFile(path string) {
	entries := make([]settings.RecentFile, 0, len(a.recentFiles)+1)
	entries = append(entries, settings.RecentFile{Time: a.now(), Path: path})
	for _, entry := range a.recentFiles {
		if entry.Path != path {
			entries = append(entries, entry)
		}
	}
	if len(entries) > a.maxRecentFiles {
		entries = entries[:a.maxRecentFiles]
	}
	a.recentFiles = entries
}

// AddWindow allocates the next window index, constructs a window with a
// surface from the factory, optionally restores it from a prior record,
// and registers it in the live window list.
func (a *App) AddWindow(prior *settings.WindowRecord) *Window {
	window := &Window{index: a.nextWindowIndex}
	a.nextWindowIndex++
	window.SetSurface(a.newSurface(window.index))

	if prior != nil {
		window.Unmarshall(*prior)
	}

	a.windows = append(a.windows, window)
	logger := logging.WithWindow(window.index)
	logger.Debug().Msg("window added")
	return window
}

// RemoveWindow deregisters the window from the live list. Remaining
// windows are not renumbered and nothing is saved; saving on close is
// the caller's responsibility via SaveIfLastWindowClosing.
func (a *App) RemoveWindow(window *Window) {
	for i, w := range a.windows {
		if w == window {
			a.windows = append(a.windows[:i], a.windows[i+1:]...)
			logger := logging.WithWindow(window.index)
			logger.Debug().Msg("window removed")
			return
		}
	}
	logger := logging.WithWindow(window.index)
	logger.Warn().Msg("window to remove not in live list")
}

// Marshall builds a fresh ConfigRecord from the current in-memory state.
func (a *App) Marshall() settings.ConfigRecord {
	record := settings.ConfigRecord{
		Program:     appinfo.ProgramName,
		Version:     a.store.Version(),
		RecentFiles: append([]settings.RecentFile{}, a.recentFiles...),
		Windows:     make(map[string]settings.WindowRecord, len(a.windows)),
	}
	for _, window := range a.windows {
		record.Windows[window.Key()] = window.Marshall()
	}
	return record
}

// Unmarshall reconstructs the application state from a loaded record.
// Window keys must match "win-<N>"; a violating key is fatal. Windows
// are restored in key order and renumbered from the process counter. If
// no windows are reconstructed, exactly one default window is created.
func (a *App) Unmarshall(record settings.ConfigRecord) error {
	a.recentFiles = append([]settings.RecentFile{}, record.RecentFiles...)
	if len(a.recentFiles) > a.maxRecentFiles {
		a.recentFiles = a.recentFiles[:a.maxRecentFiles]
	}

	type keyedRecord struct {
		index  int
		record settings.WindowRecord
	}
	restored := make([]keyedRecord, 0, len(record.Windows))
	for key, windowRecord := range record.Windows {
		index, err := settings.ParseWindowKey(key)
		if err != nil {
			return err
		}
		restored = append(restored, keyedRecord{index: index, record: windowRecord})
	}
	sort.Slice(restored, func(i, j int) bool { return restored[i].index < restored[j].index })

	for _, entry := range restored {
		record := entry.record
		a.AddWindow(&record)
	}

	if len(a.windows) == 0 {
		logger := logging.Component("appstate")
		logger.Info().Msg("no windows in settings, creating a default window")
		a.AddWindow(nil)
	}
	return nil
}

// LoadSettings loads the settings file and populates the application
// state from it. A corrupt settings file or an invalid window key is
// fatal; an absent file is not. When the file was written by an older
// application version a backup copy is made first.
func (a *App) LoadSettings() error {
	record, err := a.store.Load(a.settingsFile)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	record, err = a.store.BackupIfVersionChanged(a.settingsFile, record)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	return a.Unmarshall(record)
}

// SaveSettings persists the current state. Idempotent: unchanged state
// produces byte-identical file content. The saved flag is set even when
// the write fails, so shutdown never retries in a loop.
func (a *App) SaveSettings() error {
	err := a.store.Save(a.settingsFile, a.Marshall())
	a.settingsSaved = true
	return err
}

// SaveIfLastWindowClosing saves the settings if the given window is the
// last one remaining and no save has happened yet this session. Called
// before the window is torn down so its final geometry is captured, and
// effective exactly once per process regardless of which shutdown path
// fires first.
func (a *App) SaveIfLastWindowClosing() error {
	if a.settingsSaved || len(a.windows) > 1 {
		return nil
	}
	return a.SaveSettings()
}

// SettingsSaved reports whether settings were already saved this session.
func (a *App) SettingsSaved() bool {
	return a.settingsSaved
}
