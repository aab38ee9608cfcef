package impact

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kestrelworks/redline/internal/diff"
)

// Category is the legal/financial bucket of a significant change.
type Category string

// Change categories, in classification priority order.
const (
	CategoryFinancial   Category = "financial"
	CategoryRights      Category = "rights"
	CategoryObligations Category = "obligations"
	CategoryPrivacy     Category = "privacy"
	CategoryLegal       Category = "legal"
)

// SignificantChange is a high-severity change with its classified category
// and directional impact.
type SignificantChange struct {
	ChangeID       uuid.UUID `json:"change_id"`
	Category       Category  `json:"category"`
	Impact         Label     `json:"impact"`
	Description    string    `json:"description"`
	Recommendation string    `json:"recommendation,omitempty"`
}

// categoryRules is the ordered first-match-wins classification table applied
// to a change's text, case-insensitively.
var categoryRules = []struct {
	category Category
	keywords []string
}{
	{CategoryFinancial, []string{"payment", "fee", "cost"}},
	{CategoryRights, []string{"right", "privilege"}},
	{CategoryObligations, []string{"obligation", "responsibility", "must"}},
	{CategoryPrivacy, []string{"confidential", "privacy", "data"}},
	{CategoryLegal, []string{"liability", "damages", "indemnify"}},
}

// classifyAll turns high-severity changes into SignificantChanges. Changes
// whose text matches no category are silently excluded.
func classifyAll(changes []Change) []SignificantChange {
	significant := make([]SignificantChange, 0)

	for _, c := range changes {
		if c.Severity != diff.SeverityHigh {
			continue
		}

		category, ok := categorize(c)
		if !ok {
			continue
		}

		significant = append(significant, SignificantChange{
			ChangeID:       c.ID,
			Category:       category,
			Impact:         polarity(category, c.Type),
			Description:    describeSignificant(category, c.Type),
			Recommendation: recommend(category, c.Type),
		})
	}

	return significant
}

// categorize inspects the change's new text, falling back to the original
// text for deletions.
func categorize(c Change) (Category, bool) {
	text := c.NewText
	if text == "" {
		text = c.OriginalText
	}
	lowered := strings.ToLower(text)

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return rule.category, true
			}
		}
	}

	return "", false
}

// polarity maps a category and operation onto a directional impact.
// Removing a burden (financial, obligations, legal) is favorable; removing an
// entitlement (rights) is unfavorable; privacy changes are always neutral.
// Modifications carry the polarity of an addition.
func polarity(category Category, op diff.ChangeType) Label {
	if category == CategoryPrivacy {
		return Neutral
	}

	added := op != diff.TypeDeletion

	if category == CategoryRights {
		if added {
			return Favorable
		}
		return Unfavorable
	}

	if added {
		return Unfavorable
	}
	return Favorable
}

func describeSignificant(category Category, op diff.ChangeType) string {
	return fmt.Sprintf("%s term %s", category, opPhrase(op))
}

func recommend(category Category, op diff.ChangeType) string {
	switch category {
	case CategoryFinancial:
		return "Review payment terms and amounts before accepting"
	case CategoryRights:
		if op == diff.TypeDeletion {
			return "Confirm the removed right is not one you rely on"
		}
		return ""
	case CategoryObligations:
		return "Verify the obligation is one you can meet"
	case CategoryLegal:
		return "Consider legal review of liability exposure"
	default:
		return ""
	}
}

func opPhrase(op diff.ChangeType) string {
	switch op {
	case diff.TypeAddition:
		return "added"
	case diff.TypeDeletion:
		return "removed"
	default:
		return "modified"
	}
}
