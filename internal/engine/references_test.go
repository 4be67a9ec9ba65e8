package engine

import (
	"strings"
	"testing"
	"time"
)

func TestReferenceFormat(t *testing.T) {
	now := time.Date(2026, 6, 1, 15, 4, 5, 0, time.UTC)

	ref, err := NewBookingReference(now)
	if err != nil {
		t.Fatalf("NewBookingReference: %v", err)
	}
	if !strings.HasPrefix(ref, "BKG20260601") {
		t.Errorf("booking reference %q lacks BKG<date> prefix", ref)
	}
	if len(ref) != len("BKG20260601")+6 {
		t.Errorf("booking reference %q has wrong length", ref)
	}
	tail := strings.TrimPrefix(ref, "BKG20260601")
	if tail != strings.ToUpper(tail) {
		t.Errorf("reference tail %q is not upper-case", tail)
	}

	blk, err := NewBlockReference(now)
	if err != nil {
		t.Fatalf("NewBlockReference: %v", err)
	}
	if !strings.HasPrefix(blk, "BLK20260601") {
		t.Errorf("block reference %q lacks BLK<date> prefix", blk)
	}
}

func TestReferencesAreUnique(t *testing.T) {
	now := time.Now().UTC()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		ref, err := NewBookingReference(now)
		if err != nil {
			t.Fatalf("NewBookingReference: %v", err)
		}
		if seen[ref] {
			t.Fatalf("duplicate reference %q after %d draws", ref, i)
		}
		seen[ref] = true
	}
}
