package diff

import "strings"

// similarityThreshold is the Jaccard score above which two sentences are
// considered equivalent during alignment.
const similarityThreshold = 0.8

// Similarity returns the Jaccard similarity of the two sentences' word sets:
// intersection over union of case-insensitive whitespace tokens. Two empty
// sentences score 1, disjoint sentences score 0.
func Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		set[tok] = struct{}{}
	}
	return set
}

func equivalent(a, b string) bool {
	return a == b || Similarity(a, b) > similarityThreshold
}
