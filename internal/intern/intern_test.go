package intern

import "testing"

func TestInternIdempotent(t *testing.T) {
	in := New(nil)
	a := in.Intern("Engine")
	b := in.Intern("Engine")
	if a != b {
		t.Fatalf("Intern not idempotent: %d != %d", a, b)
	}
	if a == NoID {
		t.Fatalf("expected a valid ID")
	}
}

func TestInternDistinctStrings(t *testing.T) {
	in := New(nil)
	a := in.Intern("PartA")
	b := in.Intern("PartB")
	if a == b {
		t.Fatalf("distinct strings interned to the same ID")
	}
}

func TestInternEmptyIsNoID(t *testing.T) {
	in := New(nil)
	if got := in.Intern(""); got != NoID {
		t.Fatalf("Intern(\"\") = %d, want NoID", got)
	}
}

func TestLookupRoundTrip(t *testing.T) {
	in := New(nil)
	id := in.Intern("A::B::C")
	got, ok := in.Lookup(id)
	if !ok || got != "A::B::C" {
		t.Fatalf("Lookup(%d) = (%q, %v), want (\"A::B::C\", true)", id, got, ok)
	}
}

func TestLookupInvalidID(t *testing.T) {
	in := New(nil)
	if _, ok := in.Lookup(ID(999)); ok {
		t.Fatalf("expected Lookup of unknown ID to fail")
	}
	if _, ok := in.Lookup(NoID); ok {
		t.Fatalf("expected Lookup(NoID) to fail")
	}
}

func TestCountTracksDistinctStrings(t *testing.T) {
	in := New(nil)
	in.Intern("A")
	in.Intern("B")
	in.Intern("A")
	if got := in.Count(); got != 2 {
		t.Fatalf("Count() = %d, want 2", got)
	}
}

func TestInternBytesSharesIDWithIntern(t *testing.T) {
	in := New(nil)
	a := in.Intern("Foo")
	b := in.InternBytes([]byte("Foo"))
	if a != b {
		t.Fatalf("InternBytes and Intern diverged: %d != %d", a, b)
	}
}
