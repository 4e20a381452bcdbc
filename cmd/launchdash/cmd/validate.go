package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/launchdash/internal/config"
	"github.com/dbsmedya/launchdash/internal/loader"
	"github.com/dbsmedya/launchdash/internal/logger"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and the launch dataset",
	Long: `Validate checks the configuration and loads the dataset the way serve
would, without starting the server.

Checks performed:
  - Configuration syntax and required fields
  - Dataset source reachable (CSV file or MySQL table)
  - Required columns present
  - Every class is 0 or 1 and every payload mass is a non-negative number
  - At least one record

Example:
  launchdash validate --config launchdash.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cmd.Printf("\n=== Configuration Validation ===\n")
	cmd.Printf("Config file: %s\n", GetConfigFile())

	cfg, err := loadConfig()
	if err != nil {
		cmd.Printf("❌ Configuration invalid: %v\n", err)
		return fmt.Errorf("validation failed: %w", err)
	}
	cmd.Printf("✅ Configuration valid\n\n")

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cmd.Printf("--- Dataset ---\n")
	cmd.Printf("Source: %s\n", cfg.Dataset.Source)
	switch cfg.Dataset.Source {
	case config.SourceMySQL:
		cmd.Printf("Table:  %s.%s\n", cfg.Database.Database, cfg.Dataset.Table)
	default:
		cmd.Printf("Path:   %s\n", cfg.Dataset.Path)
	}

	ds, err := loader.Load(commandContext(cmd), cfg, log)
	if err != nil {
		cmd.Printf("❌ %v\n", err)
		return fmt.Errorf("validation failed: %w", err)
	}

	cmd.Printf("Records:        %d\n", ds.Len())
	cmd.Printf("Sites:          %d\n", len(ds.Sites()))
	cmd.Printf("Payload bounds: %s kg\n", ds.PayloadBounds())
	cmd.Printf("✅ Dataset loaded\n\n")

	cmd.Println("=== Validation Complete ===")
	return nil
}
