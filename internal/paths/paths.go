// Package paths resolves the platform-specific config and log directories.
//
// Config files live in a subdirectory of the base config location, log
// files in a subdirectory of the base data location:
//
//	windows: %LOCALAPPDATA%                  (both)
//	darwin:  ~/Library/Preferences           (config)
//	         ~/Library/Application Support   (data)
//	linux:   ~/.config                       (config)
//	         ~/.local/share                  (data)
//
// An unrecognized GOOS is a configuration error, not a silent fallback.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/docsight/docsight/internal/appinfo"
	"github.com/docsight/docsight/internal/logging"
)

// ErrUnsupportedOS is returned when the operating system is not one of the
// three supported families.
var ErrUnsupportedOS = fmt.Errorf("unsupported operating system")

// goos is swapped out by tests; everywhere else it is runtime.GOOS.
var goos = runtime.GOOS

// BaseConfigDir returns the per-user base configuration directory for all
// applications of the user.
func BaseConfigDir() (string, error) {
	switch goos {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return NormRealPath(filepath.Join(home, "Library", "Preferences")), nil
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return NormRealPath(xdg), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return NormRealPath(filepath.Join(home, ".config")), nil
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return NormRealPath(local), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return NormRealPath(filepath.Join(home, "AppData", "Local")), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
}

// BaseDataDir returns the per-user base local data directory (not roaming).
func BaseDataDir() (string, error) {
	switch goos {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return NormRealPath(filepath.Join(home, "Library", "Application Support")), nil
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return NormRealPath(xdg), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return NormRealPath(filepath.Join(home, ".local", "share")), nil
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return NormRealPath(local), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return NormRealPath(filepath.Join(home, "AppData", "Local")), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
}

// ConfigDir returns the application configuration directory:
// <base config location>/<organization>/<script>.
func ConfigDir() (string, error) {
	base, err := BaseConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appinfo.Organization, appinfo.ScriptName), nil
}

// DataDir returns the directory where the application stores local files.
func DataDir() (string, error) {
	base, err := BaseDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appinfo.Organization, appinfo.ScriptName), nil
}

// LogDir returns the directory for application log files, the "logs"
// subdirectory of DataDir.
func LogDir() (string, error) {
	data, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(data, "logs"), nil
}

// NormRealPath returns the cleaned path with symlinks resolved. An empty
// path is returned as-is so undefined paths do not expand to the current
// directory. Symlink resolution is best effort: when the target does not
// exist yet, the cleaned absolute form is returned instead.
func NormRealPath(path string) string {
	if path == "" {
		return path
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Clean(resolved)
}

// EnsureDir creates the directory, including parents, if it does not yet
// exist. Idempotent.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		logger := logging.Component("paths")
		logger.Info().Str("dir", NormRealPath(dir)).Msg("creating directory")
	}
	return os.MkdirAll(dir, 0o755)
}

// EnsureFile creates an empty file, including parent directories, if it
// does not yet exist. Returns the normalized path. It is an error if the
// path exists but is a directory.
func EnsureFile(path string) (string, error) {
	path = NormRealPath(path)
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		logger := logging.Component("paths")
		logger.Info().Str("file", path).Msg("creating empty file")
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return "", err
		}
	case err != nil:
		return "", err
	case info.IsDir():
		return "", fmt.Errorf("path exists but is a directory: %s", path)
	}
	return path, nil
}
