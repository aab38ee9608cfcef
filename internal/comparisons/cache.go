package comparisons

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kestrelworks/redline/internal/diff"
	"github.com/kestrelworks/redline/internal/impact"
	"github.com/kestrelworks/redline/internal/metrics"
	"github.com/kestrelworks/redline/internal/versions"
	"golang.org/x/sync/singleflight"
)

// VersionReader is the narrow slice of the version store the cache needs.
type VersionReader interface {
	Find(ctx context.Context, id uuid.UUID) (*versions.DocumentVersion, error)
}

// Cache computes and persists comparisons per ordered version pair. A hit is
// returned verbatim without recomputation. Concurrent first requests for the
// same pair within a process collapse through singleflight; cross-process
// races are settled by the unique pair index at insert.
type Cache struct {
	store    Store
	versions VersionReader
	logger   *slog.Logger
	metrics  *metrics.Metrics
	group    singleflight.Group
}

// NewCache creates a comparison cache over the given store and version reader.
func NewCache(store Store, reader VersionReader, logger *slog.Logger, m *metrics.Metrics) *Cache {
	return &Cache{
		store:    store,
		versions: reader,
		logger:   logger.With("system", "comparison_cache"),
		metrics:  m,
	}
}

// Compare returns the comparison for the ordered pair, computing and
// persisting it on first request. Fails with a not-found error when either
// version is missing. Cancellation aborts computation without persisting.
func (c *Cache) Compare(ctx context.Context, originalID, comparedID uuid.UUID) (*Comparison, error) {
	key := originalID.String() + ":" + comparedID.String()

	result, err, _ := c.group.Do(key, func() (any, error) {
		return c.lookupOrCompute(ctx, originalID, comparedID)
	})
	if err != nil {
		return nil, err
	}
	return result.(*Comparison), nil
}

func (c *Cache) lookupOrCompute(ctx context.Context, originalID, comparedID uuid.UUID) (*Comparison, error) {
	cached, err := c.store.FindByPair(ctx, originalID, comparedID)
	if err == nil {
		c.metrics.ComparisonCacheHits.Inc()
		return cached, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	c.metrics.ComparisonCacheMisses.Inc()

	original, err := c.versions.Find(ctx, originalID)
	if err != nil {
		return nil, fmt.Errorf("original version %s: %w", originalID, err)
	}
	compared, err := c.versions.Find(ctx, comparedID)
	if err != nil {
		return nil, fmt.Errorf("compared version %s: %w", comparedID, err)
	}

	cmp, err := c.compute(ctx, original, compared)
	if err != nil {
		return nil, err
	}

	return c.store.Insert(ctx, cmp)
}

func (c *Cache) compute(ctx context.Context, original, compared *versions.DocumentVersion) (*Comparison, error) {
	var raw []diff.Change

	// Matching digests mean byte-identical text; the alignment is skipped.
	if original.TextDigest != compared.TextDigest {
		var err error
		raw, err = diff.Compare(ctx, original.Metadata.ExtractedText, compared.Metadata.ExtractedText)
		if err != nil {
			return nil, err
		}
	}

	changes := make([]Change, len(raw))
	analyzed := make([]impact.Change, len(raw))
	for i, ch := range raw {
		id := uuid.New()
		changes[i] = Change{
			ID:           id,
			Type:         ch.Type,
			OriginalText: ch.OriginalText,
			NewText:      ch.NewText,
			Location:     ch.Location,
			Severity:     ch.Severity,
			Description:  ch.Description,
		}
		analyzed[i] = impact.Change{
			ID:           id,
			Type:         ch.Type,
			OriginalText: ch.OriginalText,
			NewText:      ch.NewText,
			Severity:     ch.Severity,
		}
	}

	c.metrics.ComparisonsComputed.Inc()
	c.logger.Debug("comparison computed",
		"original_version_id", original.ID,
		"compared_version_id", compared.ID,
		"changes", len(changes),
	)

	return &Comparison{
		ID:                uuid.New(),
		OriginalVersionID: original.ID,
		ComparedVersionID: compared.ID,
		ComparedAt:        time.Now().UTC(),
		Changes:           changes,
		Impact:            impact.Analyze(analyzed, original.Analysis, compared.Analysis),
	}, nil
}
