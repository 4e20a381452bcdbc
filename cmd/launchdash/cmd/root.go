package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/launchdash/internal/config"
	"github.com/dbsmedya/launchdash/internal/launch"
	"github.com/dbsmedya/launchdash/internal/loader"
	"github.com/dbsmedya/launchdash/internal/logger"
	"github.com/dbsmedya/launchdash/internal/report"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile      string
	logLevel     string
	logFormat    string
	dataPath     string
	outputFormat string
	noColor      bool
)

var rootCmd = &cobra.Command{
	Use:   "launchdash",
	Short: "SpaceX launch records dashboard",
	Long: `An interactive dashboard over SpaceX launch records.

Features:
  - Launch success pie chart, for all sites or one site
  - Payload mass vs. launch outcome scatter chart
  - CSV or MySQL dataset source
  - Terminal reports in table, JSON or YAML form`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "launchdash.yaml",
		"Path to configuration file (optional)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Dataset override
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "",
		"Override dataset CSV path (forces the csv source)")

	// Report output
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", string(report.FormatTable),
		"Report format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored table output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel  string
	LogFormat string
	DataPath  string
	Addr      string
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		DataPath:  dataPath,
		Addr:      listenAddr,
	}
}

// loadConfig reads the config file (defaults when absent), then applies
// environment and flag overrides in that order and validates the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOptional(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("failed to apply environment: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat, overrides.DataPath, overrides.Addr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads configuration, the logger and the dataset shared by every
// data command.
func setup(cmd *cobra.Command) (*config.Config, *logger.Logger, *launch.Dataset, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	ds, err := loader.Load(commandContext(cmd), cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, ds, nil
}

// newReportWriter builds a report.Writer for the --output flag. Color is
// only used for table output on a terminal.
func newReportWriter(cmd *cobra.Command) (*report.Writer, error) {
	format, err := report.ParseFormat(outputFormat)
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()
	w := report.NewWriter(out, format)
	w.SetColor(colorEnabled(out))
	return w, nil
}

// colorEnabled reports whether table output to out should carry ANSI colors.
func colorEnabled(out io.Writer) bool {
	return !noColor && out == os.Stdout && color.SupportColor()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// siteFlag maps the --site value to a filter, warning when the site is
// not in the dataset.
func siteFlag(value string, ds *launch.Dataset, log *logger.Logger) launch.SiteFilter {
	site := launch.SiteFilter(value)
	if value == "" {
		site = launch.AllSites
	}
	if !site.IsAll() && !ds.HasSite(value) {
		log.WithSite(value).Warnw("Unknown launch site; no records will match", "known", ds.Sites())
	}
	return site
}
