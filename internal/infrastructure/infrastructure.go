// Package infrastructure provides core service initialization for application
// startup. It assembles the common dependencies (logging, database, metrics)
// that domain systems require.
package infrastructure

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/kestrelworks/redline/internal/config"
	"github.com/kestrelworks/redline/internal/metrics"
	"github.com/kestrelworks/redline/pkg/database"
	"github.com/kestrelworks/redline/pkg/logging"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Logger  *slog.Logger
	DB      *sql.DB
	Metrics *metrics.Metrics
}

// New initializes the infrastructure from the application configuration,
// opening the database and applying pending migrations.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := logging.New(&cfg.Logging)

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	if err := database.Migrate(db, &cfg.Database, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Infrastructure{
		Logger:  logger,
		DB:      db,
		Metrics: metrics.New(),
	}, nil
}

// Close releases held resources.
func (i *Infrastructure) Close() error {
	return i.DB.Close()
}
