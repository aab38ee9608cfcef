package diff_test

import (
	"reflect"
	"testing"

	"github.com/kestrelworks/redline/internal/diff"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			"empty text",
			"",
			nil,
		},
		{
			"whitespace only",
			"   \n\t  ",
			nil,
		},
		{
			"single sentence",
			"Payment due within 30 days of invoice.",
			[]string{"Payment due within 30 days of invoice."},
		},
		{
			"terminal punctuation with capital",
			"Payment is due monthly. The term renews annually.",
			[]string{"Payment is due monthly.", "The term renews annually."},
		},
		{
			"question and exclamation terminals",
			"Is notice required? Yes! Consent is mandatory.",
			[]string{"Is notice required?", "Yes!", "Consent is mandatory."},
		},
		{
			"no split before lowercase",
			"Fees are due on the 1st. of each month.",
			[]string{"Fees are due on the 1st. of each month."},
		},
		{
			"double newline",
			"First clause\n\nSecond clause",
			[]string{"First clause", "Second clause"},
		},
		{
			"collapsed newline runs",
			"First clause\n\n\n\nSecond clause",
			[]string{"First clause", "Second clause"},
		},
		{
			"numbered markers",
			"Introduction text 1. First term applies 2. Second term applies",
			[]string{"Introduction text", "1. First term applies", "2. Second term applies"},
		},
		{
			"multi-digit numbered marker",
			"Preamble 12. Twelfth clause",
			[]string{"Preamble", "12. Twelfth clause"},
		},
		{
			"lettered sub-items",
			"Obligations include (a) payment of fees (b) timely notice",
			[]string{"Obligations include", "(a) payment of fees", "(b) timely notice"},
		},
		{
			"empty segments discarded",
			"\n\nActual content\n\n",
			[]string{"Actual content"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := diff.Segment(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segment(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}
