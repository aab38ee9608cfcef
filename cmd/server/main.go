package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/kestrelworks/redline/internal/comparisons"
	"github.com/kestrelworks/redline/internal/config"
	"github.com/kestrelworks/redline/internal/infrastructure"
	"github.com/kestrelworks/redline/internal/retention"
	"github.com/kestrelworks/redline/internal/statistics"
	"github.com/kestrelworks/redline/internal/versions"
)

// Application wires the domain systems behind the HTTP surface.
type Application struct {
	config      *config.Config
	infra       *infrastructure.Infrastructure
	versions    versions.System
	comparisons *comparisons.Cache
	statistics  *statistics.Aggregator
	retention   *retention.Service
	logger      *slog.Logger
}

func main() {
	cfg, err := config.Load(config.BaseConfigFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		slog.Error("failed to initialize infrastructure", "error", err)
		os.Exit(1)
	}
	defer infra.Close()

	app := newApplication(cfg, infra)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Retention.Enabled {
		sweeper := retention.NewSweeper(
			app.retention,
			cfg.Retention.Days,
			cfg.Retention.SweepIntervalDuration(),
			app.logger,
		)
		go sweeper.Run(ctx)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      app.routes(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
		IdleTimeout:  cfg.Server.IdleTimeoutDuration(),
	}

	shutdownError := make(chan error)

	go func() {
		<-ctx.Done()
		app.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
		defer cancel()

		shutdownError <- srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		app.logger.Error("server error", "error", err)
		os.Exit(1)
	}

	if err := <-shutdownError; err != nil {
		app.logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	app.logger.Info("server stopped")
}

func newApplication(cfg *config.Config, infra *infrastructure.Infrastructure) *Application {
	versionStore := versions.New(infra.DB, infra.Logger)
	comparisonStore := comparisons.NewStore(infra.DB, infra.Logger)
	cache := comparisons.NewCache(comparisonStore, versionStore, infra.Logger, infra.Metrics)

	return &Application{
		config:      cfg,
		infra:       infra,
		versions:    versionStore,
		comparisons: cache,
		statistics: statistics.New(
			versionStore,
			aggregatorSource{cache, comparisonStore},
			infra.Logger,
		),
		retention: retention.New(versionStore, comparisonStore, infra.Logger, infra.Metrics),
		logger:    infra.Logger,
	}
}

// aggregatorSource pairs the cache's compare path with the store's listing
// path behind the statistics contract.
type aggregatorSource struct {
	*comparisons.Cache
	store comparisons.Store
}

func (s aggregatorSource) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]comparisons.Comparison, error) {
	return s.store.ListByDocument(ctx, documentID)
}
