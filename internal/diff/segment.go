package diff

import (
	"strings"
	"unicode"
)

// Segment splits text into sentence-level units. Boundaries are terminal
// punctuation followed by whitespace and a capital letter, blank lines,
// numbered markers ("12. ") and lettered sub-items ("(a) "). Empty segments
// are discarded after trimming.
func Segment(text string) []string {
	runes := []rune(text)

	var segments []string
	var b strings.Builder
	segStart := 0

	flush := func(next int) {
		if s := strings.TrimSpace(b.String()); s != "" {
			segments = append(segments, s)
		}
		b.Reset()
		segStart = next
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\n' && i+1 < len(runes) && runes[i+1] == '\n' {
			for i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			flush(i + 1)
			continue
		}

		if b.Len() > 0 && startsMarker(runes, i) && unicode.IsSpace(runes[i-1]) {
			flush(i)
		}

		b.WriteRune(r)

		if isTerminal(r) && !numberedHeading(runes, segStart, i) {
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			if j > i+1 && j < len(runes) && unicode.IsUpper(runes[j]) {
				flush(j)
				i = j - 1
			}
		}
	}

	flush(len(runes))
	return segments
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// startsMarker reports whether position i begins a numbered marker ("12. ")
// or lettered sub-item ("(a) ").
func startsMarker(runes []rune, i int) bool {
	if unicode.IsDigit(runes[i]) {
		j := i
		for j < len(runes) && unicode.IsDigit(runes[j]) {
			j++
		}
		return j < len(runes)-1 && runes[j] == '.' && runes[j+1] == ' '
	}

	if runes[i] == '(' {
		return i+3 < len(runes) &&
			unicode.IsLetter(runes[i+1]) &&
			runes[i+2] == ')' &&
			runes[i+3] == ' '
	}

	return false
}

// numberedHeading reports whether the terminal at position end closes a bare
// numbered marker ("12.") rather than a sentence, so it must not split.
func numberedHeading(runes []rune, start, end int) bool {
	if runes[end] != '.' {
		return false
	}

	seen := false
	for k := start; k < end; k++ {
		r := runes[k]
		if unicode.IsDigit(r) {
			seen = true
			continue
		}
		if !unicode.IsSpace(r) && r != '(' && r != ')' {
			return false
		}
	}
	return seen
}
