package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/dbsmedya/launchdash/internal/config"
	"github.com/dbsmedya/launchdash/internal/database"
	"github.com/dbsmedya/launchdash/internal/launch"
	"github.com/dbsmedya/launchdash/internal/logger"
)

// Load builds the process-wide dataset from the configured source. Any
// failure here is fatal to startup.
func Load(ctx context.Context, cfg *config.Config, log *logger.Logger) (*launch.Dataset, error) {
	start := time.Now()

	var (
		ds  *launch.Dataset
		err error
	)
	switch cfg.Dataset.Source {
	case config.SourceCSV, "":
		log.Debugw("Loading launch records from CSV", "path", cfg.Dataset.Path)
		ds, err = LoadCSV(cfg.Dataset.Path)
	case config.SourceMySQL:
		log.Debugw("Loading launch records from MySQL", "table", cfg.Dataset.Table)
		ds, err = loadMySQL(ctx, cfg)
	default:
		err = fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	bounds := ds.PayloadBounds()
	log.Infow("Dataset loaded",
		"records", ds.Len(),
		"sites", len(ds.Sites()),
		"payload_min", bounds.Min,
		"payload_max", bounds.Max,
		"duration", time.Since(start),
	)
	return ds, nil
}

func loadMySQL(ctx context.Context, cfg *config.Config) (*launch.Dataset, error) {
	manager := database.NewManager(&cfg.Database)
	if err := manager.Connect(ctx); err != nil {
		return nil, err
	}
	defer manager.Close()

	src, err := NewMySQLSource(manager.DB, cfg.Dataset.Table)
	if err != nil {
		return nil, err
	}
	records, err := src.Records(ctx)
	if err != nil {
		return nil, err
	}
	return launch.NewDataset(records), nil
}
