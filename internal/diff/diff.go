// Package diff computes structural differences between two document texts.
// Texts are segmented into sentences and aligned with a longest-common-
// subsequence program in which fuzzy sentence equivalence stands in for
// equality. The engine is pure and stateless; any number of callers may run
// concurrently.
package diff

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ChangeType identifies the kind of a single change operation.
type ChangeType string

// Change operation kinds.
const (
	TypeAddition     ChangeType = "addition"
	TypeDeletion     ChangeType = "deletion"
	TypeModification ChangeType = "modification"
)

// Location is an approximate character span in the relevant full text.
type Location struct {
	StartIndex int `json:"start_index"`
	EndIndex   int `json:"end_index"`
}

// Change is one materialized difference between two texts. OriginalText is
// set for deletions and modifications, NewText for additions and
// modifications.
type Change struct {
	Type         ChangeType `json:"type"`
	OriginalText string     `json:"original_text,omitempty"`
	NewText      string     `json:"new_text,omitempty"`
	Location     Location   `json:"location"`
	Severity     Severity   `json:"severity"`
	Description  string     `json:"description"`
}

const maxDescription = 100

type opKind int

const (
	opEqual opKind = iota
	opModify
	opDelete
	opAdd
)

type op struct {
	kind opKind
	a    int
	b    int
}

// Compare aligns the two texts and returns their changes in document order.
// Identical or empty inputs yield no changes. The only error path is context
// cancellation, checked per table row since the alignment is the sole
// CPU-bound step.
func Compare(ctx context.Context, original, revised string) ([]Change, error) {
	if original == revised {
		return nil, nil
	}

	a := Segment(original)
	b := Segment(revised)

	table, err := lcsTable(ctx, a, b)
	if err != nil {
		return nil, err
	}

	ops := backtrack(table, a, b)
	return materialize(ops, a, b, original, revised), nil
}

// lcsTable builds the (len(a)+1) x (len(b)+1) dynamic program where cell
// (i, j) holds the longest equivalent-sentence subsequence of a[:i] and b[:j].
func lcsTable(ctx context.Context, a, b []string) ([][]int, error) {
	table := make([][]int, len(a)+1)
	for i := range table {
		table[i] = make([]int, len(b)+1)
	}

	for i := 1; i <= len(a); i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("diff cancelled: %w", err)
		}
		for j := 1; j <= len(b); j++ {
			if equivalent(a[i-1], b[j-1]) {
				table[i][j] = table[i-1][j-1] + 1
			} else {
				table[i][j] = max(table[i-1][j], table[i][j-1])
			}
		}
	}

	return table, nil
}

// backtrack walks the table from (len(a), len(b)) to the origin, emitting
// operations in document order. Equivalent sentences emit equal when
// byte-identical and modification otherwise; elsewhere the side with the
// larger table value is consumed, ties favoring the deletion side.
func backtrack(table [][]int, a, b []string) []op {
	var ops []op
	i, j := len(a), len(b)

	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && equivalent(a[i-1], b[j-1]):
			kind := opModify
			if a[i-1] == b[j-1] {
				kind = opEqual
			}
			ops = append(ops, op{kind: kind, a: i - 1, b: j - 1})
			i--
			j--
		case i > 0 && (j == 0 || table[i-1][j] >= table[i][j-1]):
			ops = append(ops, op{kind: opDelete, a: i - 1})
			i--
		default:
			ops = append(ops, op{kind: opAdd, b: j - 1})
			j--
		}
	}

	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}
	return ops
}

func materialize(ops []op, a, b []string, original, revised string) []Change {
	total := 0
	for _, o := range ops {
		if o.kind != opEqual {
			total++
		}
	}
	if total == 0 {
		return nil
	}

	changes := make([]Change, 0, total)
	idx := 0

	for _, o := range ops {
		switch o.kind {
		case opEqual:
			continue
		case opDelete:
			text := a[o.a]
			changes = append(changes, Change{
				Type:         TypeDeletion,
				OriginalText: text,
				Location:     locate(original, text, idx, total),
				Severity:     AssessSeverity(text),
				Description:  describe("Removed", text),
			})
		case opAdd:
			text := b[o.b]
			changes = append(changes, Change{
				Type:        TypeAddition,
				NewText:     text,
				Location:    locate(revised, text, idx, total),
				Severity:    AssessSeverity(text),
				Description: describe("Added", text),
			})
		case opModify:
			text := b[o.b]
			changes = append(changes, Change{
				Type:         TypeModification,
				OriginalText: a[o.a],
				NewText:      text,
				Location:     locate(revised, text, idx, total),
				Severity:     AssessSeverity(text),
				Description:  describe("Modified", text),
			})
		}
		idx++
	}

	return changes
}

// locate finds the sentence's span by exact substring search, falling back to
// a proportional estimate by operation index when the trimmed sentence no
// longer appears verbatim.
func locate(full, sentence string, idx, total int) Location {
	if pos := strings.Index(full, sentence); pos >= 0 {
		return Location{StartIndex: pos, EndIndex: pos + len(sentence)}
	}

	start := idx * len(full) / max(1, total)
	return Location{StartIndex: start, EndIndex: start + len(sentence)}
}

func describe(verb, text string) string {
	return truncate(fmt.Sprintf("%s: %s", verb, text), maxDescription)
}

// truncate caps s at n bytes, cutting on a rune boundary so multibyte text
// stays valid UTF-8.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	cut := n - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
