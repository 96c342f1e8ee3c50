// Package modify implements the two structural transforms over a
// Semantic Model: pattern-delete with parent-cascade, and fragment-merge
// with auto-unwrap and hybrid replace/keep semantics. Both transforms are
// pure: neither ever mutates its Model arguments, matching the teacher's
// Check(ctx, builder, ...) Result convention of returning a fresh value
// rather than writing through its inputs.
package modify

import (
	"sysml2/internal/intern"
	"sysml2/internal/model"
	"sysml2/internal/query"
)

// Delete removes every element matching any pattern, cascades the removal
// to every descendant (by parent-id, to fixpoint), and drops any
// Relationship or Import whose endpoint/owner was removed. Returns the new
// model and the count of deleted elements. If nothing matched, the
// returned model is a shallow clone sharing its slices' element pointers
// with m.
//
// in resolves query.Pattern matches against each element's interned id;
// the model itself carries no reference to the interner that produced it.
func Delete(in *intern.Interner, m *model.Model, patterns []query.Pattern) (*model.Model, int) {
	deleted := make(map[intern.ID]bool)
	for _, e := range m.Elements {
		if query.MatchesAny(in, patterns, e.ID) {
			deleted[e.ID] = true
		}
	}

	for changed := true; changed; {
		changed = false
		for _, e := range m.Elements {
			if deleted[e.ID] {
				continue
			}
			if e.ParentID != intern.NoID && deleted[e.ParentID] {
				deleted[e.ID] = true
				changed = true
			}
		}
	}

	if len(deleted) == 0 {
		return m.Clone(), 0
	}

	out := &model.Model{SourceName: m.SourceName}
	for _, e := range m.Elements {
		if !deleted[e.ID] {
			out.Elements = append(out.Elements, e)
		}
	}
	for _, r := range m.Relationships {
		if !deleted[r.Source] && !deleted[r.Target] {
			out.Relationships = append(out.Relationships, r)
		}
	}
	for _, im := range m.Imports {
		if !deleted[im.OwnerScope] {
			out.Imports = append(out.Imports, im)
		}
	}
	out.Aliases = m.Aliases

	return out, len(deleted)
}
