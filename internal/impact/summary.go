package impact

import (
	"fmt"
	"strings"

	"github.com/kestrelworks/redline/internal/diff"
)

// summarize renders the deterministic summary template: total change count,
// high-severity count when present, risk direction when the delta is nonzero,
// and the distinct affected categories in classification order.
func summarize(changes []Change, significant []SignificantChange, riskDelta int) string {
	if len(changes) == 0 {
		return "No changes detected between versions."
	}

	high := 0
	for _, c := range changes {
		if c.Severity == diff.SeverityHigh {
			high++
		}
	}

	parts := []string{fmt.Sprintf("%d change(s) detected", len(changes))}

	if high > 0 {
		parts = append(parts, fmt.Sprintf("%d high-severity", high))
	}

	if riskDelta > 0 {
		parts = append(parts, "risk score increased")
	} else if riskDelta < 0 {
		parts = append(parts, "risk score decreased")
	}

	if cats := distinctCategories(significant); len(cats) > 0 {
		parts = append(parts, fmt.Sprintf("affecting %s", strings.Join(cats, ", ")))
	}

	return strings.Join(parts, "; ") + "."
}

func distinctCategories(significant []SignificantChange) []string {
	seen := make(map[Category]bool)
	var cats []string

	for _, rule := range categoryRules {
		seen[rule.category] = false
	}
	for _, sc := range significant {
		seen[sc.Category] = true
	}

	for _, rule := range categoryRules {
		if seen[rule.category] {
			cats = append(cats, string(rule.category))
		}
	}

	return cats
}
