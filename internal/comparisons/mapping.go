package comparisons

import (
	"github.com/kestrelworks/redline/internal/impact"
	"github.com/kestrelworks/redline/pkg/query"
	"github.com/kestrelworks/redline/pkg/repository"
)

var projection = query.NewProjectionMap("public", "document_comparisons", "c").
	Project("id", "Id").
	Project("original_version_id", "OriginalVersionId").
	Project("compared_version_id", "ComparedVersionId").
	Project("compared_at", "ComparedAt").
	Project("overall_impact", "OverallImpact").
	Project("risk_score_change", "RiskScoreChange").
	Project("summary", "Summary")

const defaultSort = "ComparedAt"

func scanComparison(s repository.Scanner) (Comparison, error) {
	var (
		c       Comparison
		overall string
	)

	err := s.Scan(
		&c.ID,
		&c.OriginalVersionID,
		&c.ComparedVersionID,
		&c.ComparedAt,
		&overall,
		&c.Impact.RiskScoreChange,
		&c.Impact.Summary,
	)
	if err != nil {
		return c, err
	}

	c.Impact.OverallImpact = impact.Label(overall)
	return c, nil
}

func scanChange(s repository.Scanner) (Change, error) {
	var (
		c        Change
		original *string
		updated  *string
	)

	err := s.Scan(
		&c.ID,
		&c.Type,
		&original,
		&updated,
		&c.Location.StartIndex,
		&c.Location.EndIndex,
		&c.Severity,
		&c.Description,
	)
	if err != nil {
		return c, err
	}

	if original != nil {
		c.OriginalText = *original
	}
	if updated != nil {
		c.NewText = *updated
	}
	return c, nil
}

func scanSignificant(s repository.Scanner) (impact.SignificantChange, error) {
	var (
		sc             impact.SignificantChange
		recommendation *string
	)

	err := s.Scan(
		&sc.ChangeID,
		&sc.Category,
		&sc.Impact,
		&sc.Description,
		&recommendation,
	)
	if err != nil {
		return sc, err
	}

	if recommendation != nil {
		sc.Recommendation = *recommendation
	}
	return sc, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
