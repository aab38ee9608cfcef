package retention

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper runs periodic retention cleanups in the background.
type Sweeper struct {
	service  *Service
	days     int
	interval time.Duration
	logger   *slog.Logger
}

// NewSweeper creates a sweeper running Cleanup with the given retention
// window at the given interval.
func NewSweeper(service *Service, days int, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		service:  service,
		days:     days,
		interval: interval,
		logger:   logger.With("system", "retention_sweeper"),
	}
}

// Run sweeps on every tick until the context is cancelled. A failed sweep is
// logged and retried on the next tick.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("sweeper started", "retention_days", s.days, "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.service.Cleanup(ctx, s.days); err != nil {
				s.logger.Error("sweep failed", "error", err)
			}
		}
	}
}
