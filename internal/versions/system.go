package versions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kestrelworks/redline/pkg/pagination"
)

// System defines the version store operations. Version numbers are assigned
// by the store, serialized per document; readers tolerate dangling parent
// references left behind by the retention sweep.
type System interface {
	Create(ctx context.Context, cmd CreateCommand) (*DocumentVersion, error)
	Find(ctx context.Context, id uuid.UUID) (*DocumentVersion, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]DocumentVersion, error)
	ListPage(ctx context.Context, documentID uuid.UUID, page pagination.PageRequest) ([]DocumentVersion, int, error)
	Latest(ctx context.Context, documentID uuid.UUID) (*DocumentVersion, error)
	NextVersionNumber(ctx context.Context, documentID uuid.UUID) (int, error)
	Rollback(ctx context.Context, documentID, targetVersionID uuid.UUID, filename string) (*DocumentVersion, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
