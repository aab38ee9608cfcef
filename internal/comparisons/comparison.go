// Package comparisons provides the comparison cache: one persisted
// diff-and-impact result per ordered pair of versions, computed lazily on
// first request and returned verbatim afterwards.
package comparisons

import (
	"time"

	"github.com/google/uuid"
	"github.com/kestrelworks/redline/internal/diff"
	"github.com/kestrelworks/redline/internal/impact"
)

// Change is one persisted difference, owned by exactly one comparison.
type Change struct {
	ID           uuid.UUID       `json:"id"`
	Type         diff.ChangeType `json:"type"`
	OriginalText string          `json:"original_text,omitempty"`
	NewText      string          `json:"new_text,omitempty"`
	Location     diff.Location   `json:"location"`
	Severity     diff.Severity   `json:"severity"`
	Description  string          `json:"description"`
}

// Comparison is the cached result for one ordered version pair. The pair is
// directional: (A, B) and (B, A) are distinct comparisons. Once persisted a
// comparison is immutable, even if a version's analysis changes later; the
// record reflects what was computed at ComparedAt.
type Comparison struct {
	ID                uuid.UUID       `json:"id"`
	OriginalVersionID uuid.UUID       `json:"original_version_id"`
	ComparedVersionID uuid.UUID       `json:"compared_version_id"`
	ComparedAt        time.Time       `json:"compared_at"`
	Changes           []Change        `json:"changes"`
	Impact            impact.Analysis `json:"impact"`
}
