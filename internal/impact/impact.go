// Package impact classifies the legal significance of document changes.
// Classification is deterministic and keyword-based: a flat, ordered rule
// table, never a statistical model. The analyzer is pure and stateless.
package impact

import (
	"github.com/google/uuid"
	"github.com/kestrelworks/redline/internal/diff"
	"github.com/kestrelworks/redline/internal/versions"
)

// Label is the direction of an impact verdict.
type Label string

// Impact labels.
const (
	Favorable   Label = "favorable"
	Unfavorable Label = "unfavorable"
	Neutral     Label = "neutral"
)

// Analysis is the aggregate impact verdict for one comparison.
type Analysis struct {
	OverallImpact      Label               `json:"overall_impact"`
	RiskScoreChange    int                 `json:"risk_score_change"`
	SignificantChanges []SignificantChange `json:"significant_changes"`
	Summary            string              `json:"summary"`
}

// Change is the analyzer's view of a materialized change: the diff operation
// plus the identity it was persisted under.
type Change struct {
	ID           uuid.UUID
	Type         diff.ChangeType
	OriginalText string
	NewText      string
	Severity     diff.Severity
}

// RiskScoreToNumber maps a risk label onto the 1..3 scale. Unknown labels
// map to 1 so an opaque producer can never break the delta.
func RiskScoreToNumber(score versions.RiskScore) int {
	switch score {
	case versions.RiskMedium:
		return 2
	case versions.RiskHigh:
		return 3
	default:
		return 1
	}
}

// RiskScoreChange returns the signed risk delta between two analyses, or 0
// when either is missing.
func RiskScoreChange(prior, current *versions.Analysis) int {
	if prior == nil || current == nil {
		return 0
	}
	return RiskScoreToNumber(current.RiskScore) - RiskScoreToNumber(prior.RiskScore)
}

// Analyze derives the impact verdict for a set of changes between a prior
// and current version analysis.
func Analyze(changes []Change, prior, current *versions.Analysis) Analysis {
	riskDelta := RiskScoreChange(prior, current)
	significant := classifyAll(changes)

	return Analysis{
		OverallImpact:      overallImpact(riskDelta, significant),
		RiskScoreChange:    riskDelta,
		SignificantChanges: significant,
		Summary:            summarize(changes, significant, riskDelta),
	}
}

// overallImpact applies the risk-delta thresholds first, then falls back to a
// majority vote across significant changes. Ties and empty sets are neutral.
func overallImpact(riskDelta int, significant []SignificantChange) Label {
	if float64(riskDelta) > 0.5 {
		return Unfavorable
	}
	if float64(riskDelta) < -0.5 {
		return Favorable
	}

	favorable, unfavorable := 0, 0
	for _, sc := range significant {
		switch sc.Impact {
		case Favorable:
			favorable++
		case Unfavorable:
			unfavorable++
		}
	}

	switch {
	case favorable > unfavorable:
		return Favorable
	case unfavorable > favorable:
		return Unfavorable
	default:
		return Neutral
	}
}
