package comparisons

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kestrelworks/redline/internal/impact"
	"github.com/kestrelworks/redline/pkg/query"
	"github.com/kestrelworks/redline/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore creates a comparison store backed by the given database.
func NewStore(db *sql.DB, logger *slog.Logger) Store {
	return &repo{
		db:     db,
		logger: logger.With("system", "comparisons"),
	}
}

const selectChanges = `SELECT id, change_type, original_text, new_text, start_index, end_index, severity, description
	FROM document_changes WHERE comparison_id = $1 ORDER BY position`

const selectSignificant = `SELECT change_id, category, impact, description, recommendation
	FROM significant_changes WHERE comparison_id = $1 ORDER BY position`

func (r *repo) FindByPair(ctx context.Context, originalID, comparedID uuid.UUID) (*Comparison, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("OriginalVersionId", originalID).
		WhereEquals("ComparedVersionId", comparedID).
		BuildSelect()

	found, err := repository.QueryMany(ctx, r.db, q, args, scanComparison)
	if err != nil {
		return nil, fmt.Errorf("query comparison: %w", err)
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}

	cmp := found[0]
	if err := r.loadDetail(ctx, &cmp); err != nil {
		return nil, err
	}
	return &cmp, nil
}

func (r *repo) loadDetail(ctx context.Context, cmp *Comparison) error {
	changes, err := repository.QueryMany(ctx, r.db, selectChanges, []any{cmp.ID}, scanChange)
	if err != nil {
		return fmt.Errorf("query changes: %w", err)
	}
	if changes == nil {
		changes = []Change{}
	}
	cmp.Changes = changes

	significant, err := repository.QueryMany(ctx, r.db, selectSignificant, []any{cmp.ID}, scanSignificant)
	if err != nil {
		return fmt.Errorf("query significant changes: %w", err)
	}
	if significant == nil {
		significant = []impact.SignificantChange{}
	}
	cmp.Impact.SignificantChanges = significant
	return nil
}

func (r *repo) Insert(ctx context.Context, cmp *Comparison) (*Comparison, error) {
	inserted, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (bool, error) {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO document_comparisons
				(id, original_version_id, compared_version_id, compared_at, overall_impact, risk_score_change, summary)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (original_version_id, compared_version_id) DO NOTHING`,
			cmp.ID, cmp.OriginalVersionID, cmp.ComparedVersionID, cmp.ComparedAt,
			string(cmp.Impact.OverallImpact), cmp.Impact.RiskScoreChange, cmp.Impact.Summary,
		)
		if err != nil {
			return false, fmt.Errorf("insert comparison: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return false, err
		}
		if affected == 0 {
			// Lost a cross-process race for this pair; the surviving row wins.
			return false, nil
		}

		for i, c := range cmp.Changes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO document_changes
					(id, comparison_id, position, change_type, original_text, new_text, start_index, end_index, severity, description)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				c.ID, cmp.ID, i, string(c.Type), nullable(c.OriginalText), nullable(c.NewText),
				c.Location.StartIndex, c.Location.EndIndex, string(c.Severity), c.Description,
			); err != nil {
				return false, fmt.Errorf("insert change: %w", err)
			}
		}

		for i, sc := range cmp.Impact.SignificantChanges {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO significant_changes
					(id, comparison_id, change_id, position, category, impact, description, recommendation)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				uuid.New(), cmp.ID, sc.ChangeID, i, string(sc.Category), string(sc.Impact),
				sc.Description, nullable(sc.Recommendation),
			); err != nil {
				return false, fmt.Errorf("insert significant change: %w", err)
			}
		}

		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if !inserted {
		return r.FindByPair(ctx, cmp.OriginalVersionID, cmp.ComparedVersionID)
	}

	r.logger.Info("comparison persisted",
		"id", cmp.ID,
		"original_version_id", cmp.OriginalVersionID,
		"compared_version_id", cmp.ComparedVersionID,
		"changes", len(cmp.Changes),
	)
	return cmp, nil
}

func (r *repo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Comparison, error) {
	q := `SELECT c.id, c.original_version_id, c.compared_version_id, c.compared_at, c.overall_impact, c.risk_score_change, c.summary
		FROM public.document_comparisons c
		WHERE c.original_version_id IN (SELECT id FROM document_versions WHERE document_id = $1)
			OR c.compared_version_id IN (SELECT id FROM document_versions WHERE document_id = $1)
		ORDER BY c.compared_at`

	cmps, err := repository.QueryMany(ctx, r.db, q, []any{documentID}, scanComparison)
	if err != nil {
		return nil, fmt.Errorf("query document comparisons: %w", err)
	}

	for i := range cmps {
		if err := r.loadDetail(ctx, &cmps[i]); err != nil {
			return nil, err
		}
	}
	return cmps, nil
}

func (r *repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereBefore("ComparedAt", cutoff).
		BuildDelete()

	result, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("delete comparisons: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if affected > 0 {
		r.logger.Info("comparisons deleted", "cutoff", cutoff, "count", affected)
	}
	return int(affected), nil
}
