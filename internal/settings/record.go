// Package settings persists the application session state: a single JSON
// settings file holding the recent-files list and a record per open window.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Settings errors.
var (
	// ErrCorruptFormat means the settings file exists but cannot be
	// parsed. Deliberately fatal: masking it risks overwriting valid
	// but unparsed user configuration on the next save.
	ErrCorruptFormat = errors.New("settings file is corrupt")

	// ErrInvariantViolation means persisted data breaks a structural
	// invariant, such as a window key not matching "win-<N>".
	ErrInvariantViolation = errors.New("settings invariant violation")
)

// DefaultVersion is assumed for settings files that predate the version
// stamp.
const DefaultVersion = "0.0.1"

// ConfigRecord is the top-level persisted structure.
type ConfigRecord struct {
	Program     string                  `json:"_program,omitempty"`
	Version     string                  `json:"_version,omitempty"`
	RecentFiles []RecentFile            `json:"recent_files"`
	Windows     map[string]WindowRecord `json:"windows"`
}

// IsEmpty reports whether the record carries no persisted state, as when
// the settings file was absent or empty.
func (r ConfigRecord) IsEmpty() bool {
	return r.Program == "" && r.Version == "" &&
		len(r.RecentFiles) == 0 && len(r.Windows) == 0
}

// WindowRecord is the per-window slice of a ConfigRecord.
type WindowRecord struct {
	Layout LayoutRecord `json:"layout"`

	// FileDialogDir seeds the next file-open dialog of the window.
	FileDialogDir string `json:"fileDialogDir,omitempty"`
}

// LayoutRecord holds the opaque geometry and layout blobs captured from a
// window, as base64 text. The blobs stay strings here so that a malformed
// blob surfaces as a per-field decode warning during window restore
// instead of failing the whole file parse.
type LayoutRecord struct {
	WinGeom  string `json:"winGeom,omitempty"`
	WinState string `json:"winState,omitempty"`
}

// RecentFile is one entry of the recent-files list. It persists as a
// two-element array [timestamp, path], most recent entry first in the
// list.
type RecentFile struct {
	Time time.Time
	Path string
}

// MarshalJSON encodes the entry as [timestamp, path].
func (r RecentFile) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{r.Time.UTC().Format(time.RFC3339), r.Path})
}

// UnmarshalJSON decodes a [timestamp, path] pair.
func (r *RecentFile) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("recent file entry must be a [timestamp, path] pair, got %d elements", len(pair))
	}
	ts, err := time.Parse(time.RFC3339, pair[0])
	if err != nil {
		return fmt.Errorf("recent file timestamp: %w", err)
	}
	r.Time = ts
	r.Path = pair[1]
	return nil
}

var windowKeyPattern = regexp.MustCompile(`^win-(0|[1-9][0-9]*)$`)

// WindowKey returns the stable settings key for a window index.
func WindowKey(index int) string {
	return fmt.Sprintf("win-%d", index)
}

// ParseWindowKey extracts the window index from a "win-<N>" key. A key
// violating the pattern returns ErrInvariantViolation: it indicates a
// hand-edited or version-incompatible settings file and is not repaired.
func ParseWindowKey(key string) (int, error) {
	m := windowKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return 0, fmt.Errorf("%w: window key %q does not match win-<N>", ErrInvariantViolation, key)
	}
	index, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: window key %q: %v", ErrInvariantViolation, key, err)
	}
	return index, nil
}
