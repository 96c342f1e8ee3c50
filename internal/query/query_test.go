package query

import (
	"testing"

	"sysml2/internal/intern"
)

func TestPatternMatchesExact(t *testing.T) {
	in := intern.New(nil)
	id := in.Intern("Vehicle::Engine::power")
	p := Parse("Vehicle::Engine::power")
	if !p.Matches(in, id) {
		t.Fatalf("expected exact pattern to match")
	}
}

func TestPatternMatchesWildcardSegment(t *testing.T) {
	in := intern.New(nil)
	id := in.Intern("Vehicle::Engine::power")
	p := Parse("Vehicle::*::power")
	if !p.Matches(in, id) {
		t.Fatalf("expected wildcard segment to match")
	}
}

func TestPatternMatchesRejectsDifferentSegmentCount(t *testing.T) {
	in := intern.New(nil)
	id := in.Intern("Vehicle::Engine::power")
	p := Parse("Vehicle::*")
	if p.Matches(in, id) {
		t.Fatalf("expected segment-count mismatch to reject")
	}
}

func TestMatchesAny(t *testing.T) {
	in := intern.New(nil)
	id := in.Intern("Vehicle::Engine")
	patterns := []Pattern{Parse("Other::*"), Parse("Vehicle::*")}
	if !MatchesAny(in, patterns, id) {
		t.Fatalf("expected one pattern in the list to match")
	}
}

func TestParentPath(t *testing.T) {
	in := intern.New(nil)
	id := in.Intern("Vehicle::Engine::power")
	parent := ParentPath(in, id)
	got, ok := in.Lookup(parent)
	if !ok || got != "Vehicle::Engine" {
		t.Fatalf("ParentPath = %q, want \"Vehicle::Engine\"", got)
	}
}

func TestParentPathTopLevelIsNoID(t *testing.T) {
	in := intern.New(nil)
	id := in.Intern("Vehicle")
	if parent := ParentPath(in, id); parent != intern.NoID {
		t.Fatalf("ParentPath of a top-level id = %d, want NoID", parent)
	}
}
