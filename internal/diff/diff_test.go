package diff_test

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/kestrelworks/redline/internal/diff"
)

func TestCompare_IdenticalTexts(t *testing.T) {
	text := "Payment due within 30 days. Notice required for termination."

	changes, err := diff.Compare(context.Background(), text, text)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("Compare(identical) = %d changes, want 0", len(changes))
	}
}

func TestCompare_EmptyTexts(t *testing.T) {
	changes, err := diff.Compare(context.Background(), "", "")
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("Compare(empty) = %d changes, want 0", len(changes))
	}
}

func TestCompare_PaymentTermRewrite(t *testing.T) {
	original := "Payment due within 30 days of invoice."
	revised := "Payment due within 15 days of invoice."

	changes, err := diff.Compare(context.Background(), original, revised)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if len(changes) != 2 {
		t.Fatalf("Compare() = %d changes, want 2", len(changes))
	}

	var deletion, addition *diff.Change
	for i := range changes {
		switch changes[i].Type {
		case diff.TypeDeletion:
			deletion = &changes[i]
		case diff.TypeAddition:
			addition = &changes[i]
		}
	}

	if deletion == nil {
		t.Fatal("expected a deletion change")
	}
	if !strings.Contains(deletion.OriginalText, "30 days") {
		t.Errorf("deletion text = %q, want to contain %q", deletion.OriginalText, "30 days")
	}
	if deletion.Severity != diff.SeverityHigh {
		t.Errorf("deletion severity = %q, want high", deletion.Severity)
	}

	if addition == nil {
		t.Fatal("expected an addition change")
	}
	if !strings.Contains(addition.NewText, "15 days") {
		t.Errorf("addition text = %q, want to contain %q", addition.NewText, "15 days")
	}
	if addition.Severity != diff.SeverityHigh {
		t.Errorf("addition severity = %q, want high", addition.Severity)
	}
}

func TestCompare_EquivalentSentenceModification(t *testing.T) {
	original := "The supplier shall provide monthly reports on usage metrics to the customer without delay or exception."
	revised := "The supplier shall provide weekly reports on usage metrics to the customer without delay or exception."

	changes, err := diff.Compare(context.Background(), original, revised)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("Compare() = %d changes, want 1", len(changes))
	}

	c := changes[0]
	if c.Type != diff.TypeModification {
		t.Errorf("change type = %q, want modification", c.Type)
	}
	if !strings.Contains(c.OriginalText, "monthly") {
		t.Errorf("original text = %q, want to contain %q", c.OriginalText, "monthly")
	}
	if !strings.Contains(c.NewText, "weekly") {
		t.Errorf("new text = %q, want to contain %q", c.NewText, "weekly")
	}
}

func TestCompare_AdditionOnly(t *testing.T) {
	original := "General terms apply."
	revised := "General terms apply. Customer must obtain consent before disclosure."

	changes, err := diff.Compare(context.Background(), original, revised)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("Compare() = %d changes, want 1", len(changes))
	}

	c := changes[0]
	if c.Type != diff.TypeAddition {
		t.Errorf("change type = %q, want addition", c.Type)
	}
	if c.OriginalText != "" {
		t.Errorf("addition carries original text %q", c.OriginalText)
	}
}

func TestCompare_LocationBySubstring(t *testing.T) {
	original := "Alpha clause applies."
	revised := "Alpha clause applies. Beta clause imposes a penalty."

	changes, err := diff.Compare(context.Background(), original, revised)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("Compare() = %d changes, want 1", len(changes))
	}

	c := changes[0]
	wantStart := strings.Index(revised, "Beta clause imposes a penalty.")
	if c.Location.StartIndex != wantStart {
		t.Errorf("start index = %d, want %d", c.Location.StartIndex, wantStart)
	}
	if c.Location.EndIndex != wantStart+len("Beta clause imposes a penalty.") {
		t.Errorf("end index = %d, want %d", c.Location.EndIndex, wantStart+len("Beta clause imposes a penalty."))
	}
}

func TestCompare_DescriptionTruncated(t *testing.T) {
	long := "Payment obligations " + strings.Repeat("and further stipulations ", 10) + "shall survive termination."

	changes, err := diff.Compare(context.Background(), "", long)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	for _, c := range changes {
		if len(c.Description) > 100 {
			t.Errorf("description length = %d, want <= 100: %q", len(c.Description), c.Description)
		}
	}
}

func TestCompare_MultibyteDescriptionStaysValid(t *testing.T) {
	long := "Payment fees " + strings.Repeat("é", 60) + "."

	changes, err := diff.Compare(context.Background(), "", long)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("changes = %d, want 1", len(changes))
	}

	d := changes[0].Description
	if !utf8.ValidString(d) {
		t.Errorf("description is not valid UTF-8: %q", d)
	}
	if len(d) > 100 {
		t.Errorf("description length = %d, want <= 100", len(d))
	}
	if !strings.HasSuffix(d, "...") {
		t.Errorf("description = %q, want truncation suffix", d)
	}
}

func TestCompare_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := diff.Compare(ctx, "Payment due in 30 days.", "Notice required for all changes.")
	if err == nil {
		t.Fatal("Compare() with cancelled context returned nil error")
	}
	if !strings.Contains(err.Error(), context.Canceled.Error()) {
		t.Errorf("error = %v, want to wrap %v", err, context.Canceled)
	}
}

func TestCompare_ChangesInDocumentOrder(t *testing.T) {
	original := "First clause stays.\n\nSecond clause about payment terms.\n\nThird clause stays."
	revised := "First clause stays.\n\nThird clause stays.\n\nFourth clause about notice periods."

	changes, err := diff.Compare(context.Background(), original, revised)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if len(changes) != 2 {
		t.Fatalf("Compare() = %d changes, want 2", len(changes))
	}

	types := map[diff.ChangeType]bool{}
	for _, c := range changes {
		types[c.Type] = true
	}
	if !types[diff.TypeDeletion] || !types[diff.TypeAddition] {
		t.Errorf("change types = %v, want one deletion and one addition", types)
	}
}
