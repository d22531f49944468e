// internal/commands/root.go
package arenaboard

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/mwiater/arenaboard/internal/appconfig"
	"github.com/mwiater/arenaboard/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

var boolFlags = []string{"debug", "jsonMode", "noColor"}

var stringFlags = []string{"apiBaseURL", "logFile", "overallCompetition", "defaultCompetition"}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "arenaboard",
	Short:        "arenaboard: terminal viewer for math competition leaderboards",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		for _, name := range boolFlags {
			if !cmd.Flags().Changed(name) {
				_ = cmd.Flags().Set(name, strconv.FormatBool(viper.GetBool(name)))
			}
		}
		for _, name := range stringFlags {
			if !cmd.Flags().Changed(name) {
				if val := viper.GetString(name); val != "" {
					_ = cmd.Flags().Set(name, val)
				}
			}
		}
		if !cmd.Flags().Changed("timeout") {
			if val := viper.GetInt("timeout"); val > 0 {
				_ = cmd.Flags().Set("timeout", strconv.Itoa(val))
			}
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			return err
		}
		currentConfig = &cfg

		color.NoColor = color.NoColor || cfg.NoColor
		if err := logging.Init(cfg.LogFilePath(), false); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if cfg.Debug {
			logging.LogEvent("config loaded from %q: api=%s timeout=%s", cfg.ConfigPath, cfg.BaseURL(), cfg.RequestTimeout())
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		logging.Close()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().String("apiBaseURL", "", "arena API base URL (default "+appconfig.DefaultAPIBaseURL+")")
	rootCmd.PersistentFlags().Int("timeout", 0, "request timeout in seconds (0 = default)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("jsonMode", false, "print machine-readable JSON")
	rootCmd.PersistentFlags().Bool("noColor", false, "disable colors")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")
	rootCmd.PersistentFlags().String("overallCompetition", "", "id of the aggregate competition")
	rootCmd.PersistentFlags().String("defaultCompetition", "", "competition opened first")

	for _, name := range append(append([]string{"timeout"}, boolFlags...), stringFlags...) {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// ensureConfigLoaded reads the config file. A missing file leaves defaults;
// the default path falls back to the legacy config.json.
func ensureConfigLoaded() error {
	path, err := appconfig.ResolvePath(cfgFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// JSONModeEnabled returns true if JSON mode is enabled.
func JSONModeEnabled() bool { return viper.GetBool("jsonMode") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
