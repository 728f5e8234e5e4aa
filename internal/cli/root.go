// Package cli wires the docsight command tree: the viewer as the root
// command plus the non-interactive list and version commands.
package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docsight/docsight/internal/appinfo"
	"github.com/docsight/docsight/internal/appstate"
	"github.com/docsight/docsight/internal/config"
	"github.com/docsight/docsight/internal/logging"
	"github.com/docsight/docsight/internal/paths"
	"github.com/docsight/docsight/internal/viewer"
)

// Execute runs the command tree. Errors carrying an ExitError decide
// the process exit code in main.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docsight [FILE]",
		Short: appinfo.ShortDescription,
		Long: appinfo.ProgramName + " shows the paragraph structure of Word documents " +
			"in a table, with window layout and settings persisted across sessions.",
		Args:          argsMax(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       appinfo.Version,
		RunE:          runView,
	}

	cmd.PersistentFlags().BoolP("debug", "d", false, "Debugging mode: settings-save failures become fatal")
	cmd.PersistentFlags().String("config", "", "Config file (default: config.yaml in the app config dir)")
	cmd.PersistentFlags().String("settings-file", "", "Persisted settings file (default: settings.json in the app config dir)")
	cmd.PersistentFlags().String("theme", "", "Color theme: default, dark or light")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	cmd.PersistentPreRunE = setup

	cmd.AddCommand(
		newListCmd(),
		newVersionCmd(),
	)

	return cmd
}

// loadedConfig is resolved once in setup and read by the commands.
var loadedConfig *config.Config

// setup loads the tool configuration, applies flag overrides and
// initializes logging.
func setup(cmd *cobra.Command, _ []string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	appinfo.SetDebugging(debug)

	loader := config.NewLoader()
	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		loader.SetConfigFile(configFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return Exitf(appinfo.ExitBadArgs, "load config: %v", err)
	}

	if theme, _ := cmd.Flags().GetString("theme"); theme != "" {
		cfg.UI.Theme = theme
	}
	if settingsFile, _ := cmd.Flags().GetString("settings-file"); settingsFile != "" {
		cfg.Session.SettingsFile = settingsFile
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return Exitf(appinfo.ExitBadArgs, "%v", err)
	}

	logCfg := logging.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		EnableCaller: cfg.Logging.EnableCaller,
	}
	if cfg.Logging.ToFile {
		logDir, err := paths.LogDir()
		if err != nil {
			return Exitf(appinfo.ExitError, "resolve log directory: %v", err)
		}
		if err := paths.EnsureDir(logDir); err != nil {
			return Exitf(appinfo.ExitError, "create log directory: %v", err)
		}
		logCfg.File = filepath.Join(logDir, appinfo.ScriptName+".log")
	}
	if _, err := logging.Init(logCfg); err != nil {
		return Exitf(appinfo.ExitError, "init logging: %v", err)
	}

	loadedConfig = cfg
	return nil
}

// settingsFilePath resolves the persisted settings location, creating
// the config directory when needed.
func settingsFilePath(cfg *config.Config) (string, error) {
	if cfg.Session.SettingsFile != "" {
		return paths.NormRealPath(cfg.Session.SettingsFile), nil
	}

	configDir, err := paths.ConfigDir()
	if err != nil {
		return "", err
	}
	if err := paths.EnsureDir(configDir); err != nil {
		return "", err
	}
	return filepath.Join(configDir, appinfo.SettingsFileName), nil
}

func runView(cmd *cobra.Command, args []string) error {
	cfg := loadedConfig

	settingsFile, err := settingsFilePath(cfg)
	if err != nil {
		return Exitf(appinfo.ExitError, "resolve settings file: %v", err)
	}

	registry := viewer.NewSurfaceRegistry()
	app := appstate.New(settingsFile,
		appstate.WithSurfaceFactory(registry.Surface),
		appstate.WithMaxRecentFiles(cfg.Session.MaxRecentFiles),
	)

	// Corrupt settings stop the application here; proceeding would
	// overwrite user configuration on the next save.
	if err := app.LoadSettings(); err != nil {
		return Exitf(appinfo.ExitError, "%v", err)
	}

	filePath := ""
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return Exitf(appinfo.ExitBadArgs, "invalid file path: %v", err)
		}
		filePath = paths.NormRealPath(abs)
	}

	if err := viewer.Run(viewer.Config{
		App:      app,
		Registry: registry,
		Theme:    cfg.UI.Theme,
		FilePath: filePath,
	}); err != nil {
		return Exitf(appinfo.ExitError, "%v", err)
	}
	return nil
}

func argsMax(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) > n {
			return Exitf(appinfo.ExitBadArgs, "expected at most %d argument(s), got %d", n, len(args))
		}
		return nil
	}
}

func argsExact(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return Exitf(appinfo.ExitBadArgs, "expected %d argument(s), got %d", n, len(args))
		}
		return nil
	}
}
