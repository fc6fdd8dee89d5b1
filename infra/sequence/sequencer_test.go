package sequence

import "testing"

func TestSequencer(t *testing.T) {
	s := New(0)
	if s.Next() != 0 {
		t.Fatalf("expected 0, got %d", s.Next())
	}
	if got := s.Advance(); got != 1 {
		t.Fatalf("expected advance to 1, got %d", got)
	}
	if s.Next() != 1 {
		t.Fatalf("expected 1, got %d", s.Next())
	}

	resumed := New(42)
	if resumed.Next() != 42 {
		t.Fatalf("expected resume at 42, got %d", resumed.Next())
	}
}
