package appstate

import (
	"encoding/base64"

	"github.com/docsight/docsight/internal/logging"
	"github.com/docsight/docsight/internal/settings"
)

// Window is the persistable state of one application window: a stable
// index, the geometry/layout surface provided by the UI, and the
// directory that seeds the next file-open dialog. Document-specific UI is
// composed alongside it rather than layered on top via subclassing.
type Window struct {
	index   int
	surface Surface

	// FileDialogDir is the last directory used in a file-open dialog.
	FileDialogDir string
}

// Index returns the stable window index assigned at creation. Indices
// are monotonically increasing for the process lifetime and never
// reused after a window closes.
func (w *Window) Index() int {
	return w.index
}

// Key returns the settings key of the window, "win-<index>".
func (w *Window) Key() string {
	return settings.WindowKey(w.index)
}

// Surface returns the attached UI surface.
func (w *Window) Surface() Surface {
	return w.surface
}

// SetSurface attaches a UI surface. Passing nil reverts to NopSurface.
func (w *Window) SetSurface(surface Surface) {
	if surface == nil {
		surface = NopSurface{}
	}
	w.surface = surface
}

// Marshall captures the current window state as a settings record. A
// capture failure leaves the corresponding blob empty; the rest of the
// record is still produced.
func (w *Window) Marshall() settings.WindowRecord {
	logger := logging.WithWindow(w.index)

	record := settings.WindowRecord{
		FileDialogDir: w.FileDialogDir,
	}

	if geom, err := w.surface.CaptureGeometry(); err != nil {
		logger.Warn().Err(err).Msg("cannot capture window geometry")
	} else if len(geom) > 0 {
		record.Layout.WinGeom = base64.StdEncoding.EncodeToString(geom)
	}

	if layout, err := w.surface.CaptureLayout(); err != nil {
		logger.Warn().Err(err).Msg("cannot capture window layout")
	} else if len(layout) > 0 {
		record.Layout.WinState = base64.StdEncoding.EncodeToString(layout)
	}

	return record
}

// Unmarshall restores the window from a settings record. Absent fields
// keep their current values. A malformed or corrupt blob is logged as a
// warning and skipped; it does not abort restoration of other fields.
func (w *Window) Unmarshall(record settings.WindowRecord) {
	logger := logging.WithWindow(w.index)

	if record.Layout.WinGeom != "" {
		if geom, err := base64.StdEncoding.DecodeString(record.Layout.WinGeom); err != nil {
			logger.Warn().Err(err).Msg("malformed window geometry blob, keeping defaults")
		} else if err := w.surface.RestoreGeometry(geom); err != nil {
			logger.Warn().Err(err).Msg("cannot restore window geometry, keeping defaults")
		}
	}

	if record.Layout.WinState != "" {
		if layout, err := base64.StdEncoding.DecodeString(record.Layout.WinState); err != nil {
			logger.Warn().Err(err).Msg("malformed window layout blob, keeping defaults")
		} else if err := w.surface.RestoreLayout(layout); err != nil {
			logger.Warn().Err(err).Msg("cannot restore window layout, keeping defaults")
		}
	}

	if record.FileDialogDir != "" {
		w.FileDialogDir = record.FileDialogDir
	}
}
