// Package statistics aggregates a document's version chain into per-pair
// differences, activity statistics, and a merged history timeline.
package statistics

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kestrelworks/redline/internal/comparisons"
	"github.com/kestrelworks/redline/internal/impact"
	"github.com/kestrelworks/redline/internal/versions"
	"github.com/kestrelworks/redline/pkg/pagination"
)

// Trend is the direction of a document's cumulative risk movement.
type Trend string

// Risk trends.
const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Difference summarizes the comparison between one consecutive version pair.
type Difference struct {
	FromVersion             int          `json:"from_version"`
	ToVersion               int          `json:"to_version"`
	FromVersionID           uuid.UUID    `json:"from_version_id"`
	ToVersionID             uuid.UUID    `json:"to_version_id"`
	ChangesCount            int          `json:"changes_count"`
	SignificantChangesCount int          `json:"significant_changes_count"`
	OverallImpact           impact.Label `json:"overall_impact"`
	RiskScoreChange         int          `json:"risk_score_change"`
	ComparedAt              time.Time    `json:"compared_at"`
}

// Statistics aggregates activity across a document's whole lineage.
type Statistics struct {
	TotalVersions            int     `json:"total_versions"`
	TotalChanges             int     `json:"total_changes"`
	TotalSignificantChanges  int     `json:"total_significant_changes"`
	MostActiveVersion        int     `json:"most_active_version"`
	AverageChangesPerVersion float64 `json:"average_changes_per_version"`
	RiskTrend                Trend   `json:"risk_trend"`
}

// HistoryOptions controls the version history projection.
type HistoryOptions struct {
	Page            pagination.PageRequest
	IncludeAnalysis bool
}

// TimelineEvent is one entry in the merged document timeline.
type TimelineEvent struct {
	Type          string     `json:"type"`
	Timestamp     time.Time  `json:"timestamp"`
	VersionID     *uuid.UUID `json:"version_id,omitempty"`
	VersionNumber *int       `json:"version_number,omitempty"`
	ComparisonID  *uuid.UUID `json:"comparison_id,omitempty"`
	Description   string     `json:"description"`
}

// Timeline event types.
const (
	EventVersionCreated = "version_created"
	EventComparison     = "comparison"
)

// History is the full version history projection for one document.
type History struct {
	Versions         []versions.DocumentVersion `json:"versions"`
	Comparisons      []comparisons.Comparison   `json:"comparisons"`
	Timeline         []TimelineEvent            `json:"timeline"`
	CurrentVersion   *versions.DocumentVersion  `json:"current_version,omitempty"`
	Total            int                        `json:"total"`
	LatestVersion    int                        `json:"latest_version"`
	FirstVersion     int                        `json:"first_version"`
	TotalComparisons int                        `json:"total_comparisons"`
}

// VersionReader is the slice of the version store the aggregator needs.
type VersionReader interface {
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]versions.DocumentVersion, error)
	ListPage(ctx context.Context, documentID uuid.UUID, page pagination.PageRequest) ([]versions.DocumentVersion, int, error)
}

// ComparisonSource supplies cached comparisons on demand and by document.
type ComparisonSource interface {
	comparisons.Comparer
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]comparisons.Comparison, error)
}

// Aggregator derives trend and activity statistics from the version chain.
type Aggregator struct {
	versions    VersionReader
	comparisons ComparisonSource
	logger      *slog.Logger
}

// New creates an aggregator over the given version and comparison sources.
func New(reader VersionReader, source ComparisonSource, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		versions:    reader,
		comparisons: source,
		logger:      logger.With("system", "statistics"),
	}
}

// VersionDifferences compares every consecutive version pair in ascending
// version order, using the comparison cache.
func (a *Aggregator) VersionDifferences(ctx context.Context, documentID uuid.UUID) ([]Difference, error) {
	chain, err := a.versions.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	diffs := make([]Difference, 0)
	for i := 1; i < len(chain); i++ {
		from, to := chain[i-1], chain[i]

		cmp, err := a.comparisons.Compare(ctx, from.ID, to.ID)
		if err != nil {
			return nil, err
		}

		diffs = append(diffs, Difference{
			FromVersion:             from.VersionNumber,
			ToVersion:               to.VersionNumber,
			FromVersionID:           from.ID,
			ToVersionID:             to.ID,
			ChangesCount:            len(cmp.Changes),
			SignificantChangesCount: len(cmp.Impact.SignificantChanges),
			OverallImpact:           cmp.Impact.OverallImpact,
			RiskScoreChange:         cmp.Impact.RiskScoreChange,
			ComparedAt:              cmp.ComparedAt,
		})
	}

	return diffs, nil
}

// VersionStatistics aggregates the consecutive differences into lineage-wide
// activity and risk trend figures.
func (a *Aggregator) VersionStatistics(ctx context.Context, documentID uuid.UUID) (*Statistics, error) {
	chain, err := a.versions.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	diffs, err := a.VersionDifferences(ctx, documentID)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		TotalVersions: len(chain),
		RiskTrend:     TrendStable,
	}

	cumulativeRisk := 0
	maxChanges := -1

	for _, d := range diffs {
		stats.TotalChanges += d.ChangesCount
		stats.TotalSignificantChanges += d.SignificantChangesCount
		cumulativeRisk += d.RiskScoreChange

		// Ascending order makes strict comparison break ties toward the
		// lowest version number.
		if d.ChangesCount > maxChanges {
			maxChanges = d.ChangesCount
			stats.MostActiveVersion = d.ToVersion
		}
	}

	pairs := len(diffs)
	if pairs < 1 {
		pairs = 1
	}
	stats.AverageChangesPerVersion = float64(stats.TotalChanges) / float64(pairs)

	if cumulativeRisk > 0 {
		stats.RiskTrend = TrendIncreasing
	} else if cumulativeRisk < 0 {
		stats.RiskTrend = TrendDecreasing
	}

	return stats, nil
}

// VersionHistory returns the paged versions, every comparison touching the
// document, a merged timeline, and the current version.
func (a *Aggregator) VersionHistory(ctx context.Context, documentID uuid.UUID, opts HistoryOptions) (*History, error) {
	page, total, err := a.versions.ListPage(ctx, documentID, opts.Page)
	if err != nil {
		return nil, err
	}

	chain, err := a.versions.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	cmps, err := a.comparisons.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if cmps == nil {
		cmps = []comparisons.Comparison{}
	}

	if !opts.IncludeAnalysis {
		for i := range page {
			page[i].Analysis = nil
		}
	}
	if page == nil {
		page = []versions.DocumentVersion{}
	}

	history := &History{
		Versions:         page,
		Comparisons:      cmps,
		Timeline:         buildTimeline(chain, cmps),
		Total:            total,
		TotalComparisons: len(cmps),
	}

	if len(chain) > 0 {
		current := chain[len(chain)-1]
		history.CurrentVersion = &current
		history.LatestVersion = current.VersionNumber
		history.FirstVersion = chain[0].VersionNumber
	}

	return history, nil
}
