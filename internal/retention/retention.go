// Package retention removes versions and comparisons older than a cutoff.
package retention

import (
	"context"
	"log/slog"
	"time"

	"github.com/kestrelworks/redline/internal/metrics"
)

// VersionDeleter deletes versions uploaded before a cutoff.
type VersionDeleter interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// ComparisonDeleter deletes comparisons computed before a cutoff.
type ComparisonDeleter interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// Result reports one cleanup pass. Nothing to delete is success with zero
// counts, so repeated passes over the same window are idempotent.
type Result struct {
	DeletedVersions    int       `json:"deleted_versions"`
	DeletedComparisons int       `json:"deleted_comparisons"`
	CutoffDate         time.Time `json:"cutoff_date"`
}

// Service executes retention cleanups.
type Service struct {
	versions    VersionDeleter
	comparisons ComparisonDeleter
	logger      *slog.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

// New creates a retention service over the given deleters.
func New(vd VersionDeleter, cd ComparisonDeleter, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		versions:    vd,
		comparisons: cd,
		logger:      logger.With("system", "retention"),
		metrics:     m,
		now:         time.Now,
	}
}

// Cleanup deletes everything older than retentionDays before now. Each delete
// runs in its own short statement so a sweep never blocks version creation.
func (s *Service) Cleanup(ctx context.Context, retentionDays int) (*Result, error) {
	cutoff := s.now().UTC().AddDate(0, 0, -retentionDays)

	deletedVersions, err := s.versions.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	deletedComparisons, err := s.comparisons.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	s.metrics.SweepsTotal.Inc()
	s.metrics.VersionsSwept.Add(float64(deletedVersions))
	s.metrics.ComparisonsSwept.Add(float64(deletedComparisons))

	s.logger.Info("cleanup complete",
		"cutoff", cutoff,
		"deleted_versions", deletedVersions,
		"deleted_comparisons", deletedComparisons,
	)

	return &Result{
		DeletedVersions:    deletedVersions,
		DeletedComparisons: deletedComparisons,
		CutoffDate:         cutoff,
	}, nil
}
