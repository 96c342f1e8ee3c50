// Package query implements the pattern language the Modifier uses to select
// elements by qualified id: "::"-delimited segments with optional
// per-segment wildcards.
package query

import (
	"strings"

	"sysml2/internal/intern"
)

const (
	separator = "::"
	wildcard  = "*"
)

// Pattern is a parsed qualified-id pattern: one string per "::"-delimited
// segment, where a segment of "*" matches any single segment of a
// candidate id.
type Pattern struct {
	segments []string
}

// Parse splits pattern on "::" into a Pattern. Deliberately stdlib-only
// (strings.Split plus a per-segment wildcard check): this is not a
// filesystem glob and no example repo in the retrieval pack implements
// "::"-delimited wildcard path matching, so there is no ecosystem library
// to ground this on (see DESIGN.md).
func Parse(pattern string) Pattern {
	if pattern == "" {
		return Pattern{}
	}
	return Pattern{segments: strings.Split(pattern, separator)}
}

// String renders the pattern back to its "::"-joined form.
func (p Pattern) String() string {
	return strings.Join(p.segments, separator)
}

// matches reports whether id (a qualified id, "::"-delimited) satisfies p:
// same segment count, and every pattern segment either equals the
// corresponding id segment or is a wildcard.
func (p Pattern) matches(id string) bool {
	if len(p.segments) == 0 {
		return false
	}
	idSegments := strings.Split(id, separator)
	if len(idSegments) != len(p.segments) {
		return false
	}
	for i, seg := range p.segments {
		if seg == wildcard {
			continue
		}
		if seg != idSegments[i] {
			return false
		}
	}
	return true
}

// Matches reports whether id, resolved through in, satisfies p.
func (p Pattern) Matches(in *intern.Interner, id intern.ID) bool {
	name, ok := in.Lookup(id)
	if !ok {
		return false
	}
	return p.matches(name)
}

// MatchesAny reports whether id satisfies any pattern in patterns.
func MatchesAny(in *intern.Interner, patterns []Pattern, id intern.ID) bool {
	for _, p := range patterns {
		if p.Matches(in, id) {
			return true
		}
	}
	return false
}

// ParentPath returns the interned id of id's parent (id with its last
// "::segment" trimmed), or intern.NoID if id has no parent (a single
// top-level segment) or is itself invalid.
func ParentPath(in *intern.Interner, id intern.ID) intern.ID {
	name, ok := in.Lookup(id)
	if !ok {
		return intern.NoID
	}
	idx := strings.LastIndex(name, separator)
	if idx < 0 {
		return intern.NoID
	}
	return in.Intern(name[:idx])
}
