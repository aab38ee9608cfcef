package impact_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/kestrelworks/redline/internal/diff"
	"github.com/kestrelworks/redline/internal/impact"
	"github.com/kestrelworks/redline/internal/versions"
)

func TestRiskScoreToNumber(t *testing.T) {
	tests := []struct {
		name  string
		score versions.RiskScore
		want  int
	}{
		{"low", versions.RiskLow, 1},
		{"medium", versions.RiskMedium, 2},
		{"high", versions.RiskHigh, 3},
		{"unknown label", versions.RiskScore("critical"), 1},
		{"empty label", versions.RiskScore(""), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := impact.RiskScoreToNumber(tt.score); got != tt.want {
				t.Errorf("RiskScoreToNumber(%q) = %d, want %d", tt.score, got, tt.want)
			}
		})
	}
}

func TestRiskScoreChange(t *testing.T) {
	low := &versions.Analysis{RiskScore: versions.RiskLow}
	high := &versions.Analysis{RiskScore: versions.RiskHigh}

	tests := []struct {
		name    string
		prior   *versions.Analysis
		current *versions.Analysis
		want    int
	}{
		{"low to high", low, high, 2},
		{"high to low", high, low, -2},
		{"unchanged", low, low, 0},
		{"missing prior", nil, high, 0},
		{"missing current", low, nil, 0},
		{"both missing", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := impact.RiskScoreChange(tt.prior, tt.current); got != tt.want {
				t.Errorf("RiskScoreChange() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAnalyze_RiskEscalationIsUnfavorable(t *testing.T) {
	result := impact.Analyze(nil,
		&versions.Analysis{RiskScore: versions.RiskLow},
		&versions.Analysis{RiskScore: versions.RiskHigh},
	)

	if result.RiskScoreChange != 2 {
		t.Errorf("RiskScoreChange = %d, want 2", result.RiskScoreChange)
	}
	if result.OverallImpact != impact.Unfavorable {
		t.Errorf("OverallImpact = %q, want unfavorable", result.OverallImpact)
	}
}

func TestAnalyze_RiskDropIsFavorable(t *testing.T) {
	result := impact.Analyze(nil,
		&versions.Analysis{RiskScore: versions.RiskHigh},
		&versions.Analysis{RiskScore: versions.RiskMedium},
	)

	if result.OverallImpact != impact.Favorable {
		t.Errorf("OverallImpact = %q, want favorable", result.OverallImpact)
	}
}

func TestAnalyze_NoChangesIsNeutral(t *testing.T) {
	result := impact.Analyze(nil, nil, nil)

	if result.OverallImpact != impact.Neutral {
		t.Errorf("OverallImpact = %q, want neutral", result.OverallImpact)
	}
	if result.RiskScoreChange != 0 {
		t.Errorf("RiskScoreChange = %d, want 0", result.RiskScoreChange)
	}
	if len(result.SignificantChanges) != 0 {
		t.Errorf("SignificantChanges = %d, want 0", len(result.SignificantChanges))
	}
}

func highChange(op diff.ChangeType, text string) impact.Change {
	c := impact.Change{
		ID:       uuid.New(),
		Type:     op,
		Severity: diff.SeverityHigh,
	}
	if op == diff.TypeDeletion {
		c.OriginalText = text
	} else {
		c.NewText = text
	}
	return c
}

func TestAnalyze_Categorization(t *testing.T) {
	tests := []struct {
		name         string
		change       impact.Change
		wantCategory impact.Category
		wantImpact   impact.Label
	}{
		{
			"payment addition is financial unfavorable",
			highChange(diff.TypeAddition, "A late payment fee applies"),
			impact.CategoryFinancial,
			impact.Unfavorable,
		},
		{
			"payment deletion is financial favorable",
			highChange(diff.TypeDeletion, "A late payment fee applies"),
			impact.CategoryFinancial,
			impact.Favorable,
		},
		{
			"right addition is favorable",
			highChange(diff.TypeAddition, "Customer has the right to audit"),
			impact.CategoryRights,
			impact.Favorable,
		},
		{
			"right deletion is unfavorable",
			highChange(diff.TypeDeletion, "Customer has the right to audit"),
			impact.CategoryRights,
			impact.Unfavorable,
		},
		{
			"obligation addition is unfavorable",
			highChange(diff.TypeAddition, "Supplier assumes a new obligation"),
			impact.CategoryObligations,
			impact.Unfavorable,
		},
		{
			"privacy is always neutral",
			highChange(diff.TypeAddition, "All confidential data is encrypted"),
			impact.CategoryPrivacy,
			impact.Neutral,
		},
		{
			"legal deletion is favorable",
			highChange(diff.TypeDeletion, "Unlimited liability for all claims"),
			impact.CategoryLegal,
			impact.Favorable,
		},
		{
			"modification inherits addition polarity",
			highChange(diff.TypeModification, "Revised payment schedule"),
			impact.CategoryFinancial,
			impact.Unfavorable,
		},
		{
			"financial outranks legal",
			highChange(diff.TypeAddition, "Fee for liability coverage"),
			impact.CategoryFinancial,
			impact.Unfavorable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := impact.Analyze([]impact.Change{tt.change}, nil, nil)

			if len(result.SignificantChanges) != 1 {
				t.Fatalf("SignificantChanges = %d, want 1", len(result.SignificantChanges))
			}

			sc := result.SignificantChanges[0]
			if sc.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", sc.Category, tt.wantCategory)
			}
			if sc.Impact != tt.wantImpact {
				t.Errorf("Impact = %q, want %q", sc.Impact, tt.wantImpact)
			}
			if sc.ChangeID != tt.change.ID {
				t.Errorf("ChangeID = %s, want %s", sc.ChangeID, tt.change.ID)
			}
		})
	}
}

func TestAnalyze_ExclusionRules(t *testing.T) {
	changes := []impact.Change{
		// High severity but no category keyword: excluded silently.
		highChange(diff.TypeAddition, "Termination for convenience clause"),
		// Category keyword but not high severity: excluded.
		{ID: uuid.New(), Type: diff.TypeAddition, NewText: "payment stub", Severity: diff.SeverityLow},
	}

	result := impact.Analyze(changes, nil, nil)
	if len(result.SignificantChanges) != 0 {
		t.Errorf("SignificantChanges = %d, want 0", len(result.SignificantChanges))
	}
}

func TestAnalyze_MajorityVote(t *testing.T) {
	changes := []impact.Change{
		highChange(diff.TypeDeletion, "payment fee removed"),
		highChange(diff.TypeDeletion, "cost clause removed"),
		highChange(diff.TypeAddition, "new obligation imposed"),
	}

	result := impact.Analyze(changes, nil, nil)
	if result.OverallImpact != impact.Favorable {
		t.Errorf("OverallImpact = %q, want favorable (2 favorable vs 1 unfavorable)", result.OverallImpact)
	}
}

func TestAnalyze_TieIsNeutral(t *testing.T) {
	changes := []impact.Change{
		highChange(diff.TypeDeletion, "payment fee removed"),
		highChange(diff.TypeAddition, "new obligation imposed"),
	}

	result := impact.Analyze(changes, nil, nil)
	if result.OverallImpact != impact.Neutral {
		t.Errorf("OverallImpact = %q, want neutral on tie", result.OverallImpact)
	}
}

func TestAnalyze_Summary(t *testing.T) {
	changes := []impact.Change{
		highChange(diff.TypeAddition, "payment fee added"),
		{ID: uuid.New(), Type: diff.TypeAddition, NewText: "minor wording", Severity: diff.SeverityLow},
	}

	result := impact.Analyze(changes,
		&versions.Analysis{RiskScore: versions.RiskLow},
		&versions.Analysis{RiskScore: versions.RiskHigh},
	)

	for _, fragment := range []string{"2 change(s)", "1 high-severity", "risk score increased", "financial"} {
		if !strings.Contains(result.Summary, fragment) {
			t.Errorf("Summary = %q, want to contain %q", result.Summary, fragment)
		}
	}
}

func TestAnalyze_EmptySummary(t *testing.T) {
	result := impact.Analyze(nil, nil, nil)
	if result.Summary != "No changes detected between versions." {
		t.Errorf("Summary = %q", result.Summary)
	}
}
