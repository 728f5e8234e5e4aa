// Package appinfo holds program identity constants shared across the
// application: names, version, persisted-settings keys and exit codes.
package appinfo

// Program identity.
const (
	// ProgramName is the human-readable program name, stored in the
	// settings file's "_program" field.
	ProgramName = "Docsight"

	// ScriptName is the executable name, used in config/log paths.
	ScriptName = "docsight"

	// Organization is the vendor directory component of config/log paths.
	Organization = "docsight"

	// Version is the semantic version of the running application. A
	// settings file written by a different version is backed up before
	// the first save under the new version.
	Version = "0.1.0"

	ShortDescription = "Terminal viewer for the structure of Word documents"
)

// Process exit codes.
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitBadArgs = 2
)

// SettingsFileName is the name of the persisted settings file inside the
// application config directory.
const SettingsFileName = "settings.json"

// MaxRecentFiles is the default bound on the recent-files list.
const MaxRecentFiles = 10

var debugging bool

// SetDebugging toggles debugging mode for the process. In debugging mode
// settings-save failures propagate instead of being swallowed.
func SetDebugging(on bool) {
	debugging = on
}

// Debugging reports whether debugging mode is active.
func Debugging() bool {
	return debugging
}
