package comparisons

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store defines comparison persistence. FindByPair fails with ErrNotFound on
// a cache miss; Insert resolves concurrent duplicate inserts in favor of the
// row that won the unique pair index.
type Store interface {
	FindByPair(ctx context.Context, originalID, comparedID uuid.UUID) (*Comparison, error)
	Insert(ctx context.Context, cmp *Comparison) (*Comparison, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Comparison, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// Comparer is the cache's consumer-facing contract.
type Comparer interface {
	Compare(ctx context.Context, originalID, comparedID uuid.UUID) (*Comparison, error)
}
