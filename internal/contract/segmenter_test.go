package contract

import (
	"strings"
	"testing"
)

const sampleContract = `AGREEMENT

1. Payment: The client shall pay all fees within thirty days of invoice date.
2. Termination: Either party may terminate this agreement with written notice.
3.
4. Liability: The vendor's total liability is capped at fees paid in the last year.
Section 5 Confidentiality: Both parties shall keep all shared information secret.`

func TestSegmentClauses(t *testing.T) {
	clauses := SegmentClauses(sampleContract)
	if len(clauses) != 4 {
		t.Fatalf("got %d clauses, want 4: %q", len(clauses), clauses)
	}
	wantPrefixes := []string{"1. Payment", "2. Termination", "4. Liability", "Section 5"}
	for i, prefix := range wantPrefixes {
		if !strings.HasPrefix(clauses[i], prefix) {
			t.Errorf("clause %d = %q, want prefix %q", i, clauses[i], prefix)
		}
	}
}

func TestSegmentClauses_minLength(t *testing.T) {
	text := "1. Short.\n2. This clause is comfortably longer than the forty character floor."
	clauses := SegmentClauses(text)
	for _, c := range clauses {
		if len(c) <= minClauseLen {
			t.Errorf("clause %q is %d bytes, should have been dropped", c, len(c))
		}
	}
	if len(clauses) != 1 {
		t.Fatalf("got %d clauses, want 1", len(clauses))
	}
}

func TestSegmentClauses_headerOnlyDropped(t *testing.T) {
	text := "1.\nA.\nArticle IV\n2. A proper clause that carries an actual body with enough length."
	clauses := SegmentClauses(text)
	if len(clauses) != 1 {
		t.Fatalf("got %d clauses, want 1: %q", len(clauses), clauses)
	}
}

func TestSegmentClauses_deduplicates(t *testing.T) {
	clause := "1. Payment obligations are detailed in the attached fee schedule annexure."
	text := clause + "\n" + clause + "\n" + clause
	clauses := SegmentClauses(text)
	if len(clauses) != 1 {
		t.Fatalf("got %d clauses, want 1 after dedup", len(clauses))
	}
}

func TestSegmentClauses_preservesOrder(t *testing.T) {
	clauses := SegmentClauses(sampleContract)
	for i := 1; i < len(clauses); i++ {
		a := strings.Index(sampleContract, clauses[i-1])
		b := strings.Index(sampleContract, clauses[i])
		if a > b {
			t.Errorf("clause order not preserved: %q before %q", clauses[i-1], clauses[i])
		}
	}
}

func TestSegmentClauses_headerStaysWithBody(t *testing.T) {
	text := "Preamble text that is long enough to be its own retained leading fragment here.\nArticle II The supplier warrants that all goods conform to the agreed specification."
	clauses := SegmentClauses(text)
	if len(clauses) != 2 {
		t.Fatalf("got %d clauses, want 2: %q", len(clauses), clauses)
	}
	if !strings.HasPrefix(clauses[1], "Article II") {
		t.Errorf("header split from body: %q", clauses[1])
	}
}

func TestSegmentClauses_empty(t *testing.T) {
	if got := SegmentClauses(""); len(got) != 0 {
		t.Errorf("got %q, want none", got)
	}
}
