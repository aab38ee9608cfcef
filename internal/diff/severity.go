package diff

import "strings"

// Severity grades the legal weight of a single change.
type Severity string

// Severity grades.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Keyword tables are ordered and literal: classification is a flat
// first-match-wins lookup, matched case-insensitively as substrings.
var (
	highSeverityKeywords = []string{
		"liability", "penalty", "termination", "breach", "damages", "indemnify",
		"payment", "fee", "cost", "price", "amount", "obligation", "responsibility",
	}

	mediumSeverityKeywords = []string{
		"notice", "consent", "approval", "right", "privilege", "access",
		"confidential", "proprietary", "intellectual property",
	}
)

// AssessSeverity grades text by keyword lookup. Classification is total:
// text matching no keyword grades low, never an error.
func AssessSeverity(text string) Severity {
	lowered := strings.ToLower(text)

	for _, kw := range highSeverityKeywords {
		if strings.Contains(lowered, kw) {
			return SeverityHigh
		}
	}
	for _, kw := range mediumSeverityKeywords {
		if strings.Contains(lowered, kw) {
			return SeverityMedium
		}
	}
	return SeverityLow
}
