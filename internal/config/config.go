// Package config handles Docsight tool configuration loading and
// validation. This is the optional config.yaml in the application config
// directory, not the persisted session settings (settings.json), which
// the settings package owns.
package config

import (
	"fmt"

	"github.com/docsight/docsight/internal/appinfo"
)

// Config is the root configuration structure for Docsight.
type Config struct {
	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`

	// UI settings
	UI UIConfig `yaml:"ui" mapstructure:"ui"`

	// Session settings behavior
	Session SessionConfig `yaml:"session" mapstructure:"session"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// ToFile writes logs into the application log directory as well.
	ToFile bool `yaml:"to_file" mapstructure:"to_file"`

	// EnableCaller adds caller information to logs.
	EnableCaller bool `yaml:"enable_caller" mapstructure:"enable_caller"`
}

// UIConfig contains viewer settings.
type UIConfig struct {
	// Theme is the color theme (default, dark, light).
	Theme string `yaml:"theme" mapstructure:"theme"`
}

// SessionConfig contains persisted-session behavior settings.
type SessionConfig struct {
	// SettingsFile overrides the default settings.json location.
	SettingsFile string `yaml:"settings_file" mapstructure:"settings_file"`

	// MaxRecentFiles bounds the recent-files list.
	MaxRecentFiles int `yaml:"max_recent_files" mapstructure:"max_recent_files"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		UI: UIConfig{
			Theme: "default",
		},
		Session: SessionConfig{
			MaxRecentFiles: appinfo.MaxRecentFiles,
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	if c.Session.MaxRecentFiles < 1 {
		return fmt.Errorf("session.max_recent_files must be at least 1")
	}

	switch c.UI.Theme {
	case "default", "dark", "light":
	default:
		return fmt.Errorf("ui.theme must be default, dark or light, got %q", c.UI.Theme)
	}

	return nil
}
