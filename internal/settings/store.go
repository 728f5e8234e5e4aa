package settings

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/docsight/docsight/internal/appinfo"
	"github.com/docsight/docsight/internal/logging"
)

const settingsFilePerm = 0o644

// Store reads and writes the persisted settings file.
type Store struct {
	// version is the running application version, compared against the
	// version stamp of loaded records.
	version string

	// debugging makes save failures propagate instead of being
	// swallowed.
	debugging func() bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithVersion overrides the running application version.
func WithVersion(version string) StoreOption {
	return func(s *Store) {
		if version != "" {
			s.version = version
		}
	}
}

// WithDebugging overrides the debugging-mode probe.
func WithDebugging(probe func() bool) StoreOption {
	return func(s *Store) {
		if probe != nil {
			s.debugging = probe
		}
	}
}

// NewStore returns a settings store for the running application version.
func NewStore(opts ...StoreOption) *Store {
	store := &Store{
		version:   appinfo.Version,
		debugging: appinfo.Debugging,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Version returns the running application version the store compares
// against.
func (s *Store) Version() string {
	return s.version
}

// Load reads the settings file. An absent file is only a warning: an
// empty record is returned so the application starts with defaults. A
// file that exists but cannot be parsed returns ErrCorruptFormat; the
// caller is expected to treat that as fatal.
func (s *Store) Load(path string) (ConfigRecord, error) {
	logger := logging.Component("settings")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Warn().Str("path", path).Msg("settings file does not exist, starting with defaults")
		return ConfigRecord{}, nil
	}
	if err != nil {
		return ConfigRecord{}, fmt.Errorf("read settings file: %w", err)
	}

	if len(data) == 0 {
		return ConfigRecord{}, nil
	}

	var record ConfigRecord
	if err := json.Unmarshal(data, &record); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("cannot parse settings file")
		return ConfigRecord{}, fmt.Errorf("%w: %s: %v", ErrCorruptFormat, path, err)
	}

	if record.Version == "" && !record.IsEmpty() {
		record.Version = DefaultVersion
	}
	return record, nil
}

// Save serializes the record deterministically (sorted keys, 4-space
// indent) and writes it to path. Save failures are logged and swallowed:
// they typically happen during shutdown and must never crash the
// application. In debugging mode the error propagates instead.
func (s *Store) Save(path string, record ConfigRecord) error {
	logger := logging.Component("settings")

	if record.RecentFiles == nil {
		record.RecentFiles = []RecentFile{}
	}
	if record.Windows == nil {
		record.Windows = map[string]WindowRecord{}
	}

	data, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		logger.Error().Err(err).Msg("cannot serialize settings")
		if s.debugging() {
			return fmt.Errorf("serialize settings: %w", err)
		}
		return nil
	}
	data = append(data, '\n')

	logger.Info().Str("path", path).Msg("saving settings")
	if err := os.WriteFile(path, data, settingsFilePerm); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("cannot write settings file")
		if s.debugging() {
			return fmt.Errorf("write settings: %w", err)
		}
		return nil
	}
	return nil
}

// BackupIfVersionChanged copies the settings file to
// <path>.v<oldVersion>.backup when the record was written by a different
// application version. The record is returned unchanged: no field
// migration is performed, the backup preserves the pre-upgrade state. A
// fresh (empty) record never triggers a backup.
func (s *Store) BackupIfVersionChanged(path string, record ConfigRecord) (ConfigRecord, error) {
	if record.IsEmpty() {
		return record, nil
	}

	oldVersion := record.Version
	if oldVersion == "" {
		oldVersion = DefaultVersion
	}
	if oldVersion == s.version {
		return record, nil
	}

	logger := logging.Component("settings")
	logger.Info().
		Str("file_version", oldVersion).
		Str("app_version", s.version).
		Msg("settings file version differs from application version")

	backupPath := fmt.Sprintf("%s.v%s.backup", path, oldVersion)
	if err := copyFile(path, backupPath); err != nil {
		return record, fmt.Errorf("backup settings file: %w", err)
	}
	logger.Info().Str("path", backupPath).Msg("made settings backup")
	return record, nil
}

// copyFile copies src to dst byte-for-byte.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, settingsFilePerm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
