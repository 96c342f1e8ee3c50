package symtab

import (
	"sysml2/internal/intern"
	"sysml2/internal/model"
)

// ImportEntry is one link in a scope's singly-linked, front-inserted import
// list. Order matters: resolution walks the list from its head, so the most
// recently added import is tried first, and a direct import added after a
// wildcard import is tried before it (matching the teacher's own
// prepend-on-declare idiom for shadowing constructs).
type ImportEntry struct {
	Target     intern.ID
	Kind       model.ImportKind
	Visibility bool
	Next       *ImportEntry
}

// Scope is a namespace: the qualified path identifying it (intern.NoID for
// root), a link to its parent, a local symbol bucket keyed by name, and its
// own import list. The scope graph is a tree — one parent pointer each, no
// back-pointers beyond that (spec §9 "Cyclic data").
type Scope struct {
	ID      intern.ID
	Parent  ScopeID
	symbols map[intern.ID][]SymbolID // see OQ-1 in DESIGN.md: native map, not a hand-rolled open-addressed table
	order   []intern.ID              // declaration order of distinct local names, for stable FindSimilar tie-break
	Imports *ImportEntry             // head of the front-inserted list
}

// AddImport prepends a new entry to the scope's import list.
func (s *Scope) AddImport(target intern.ID, kind model.ImportKind, visibility bool) {
	s.Imports = &ImportEntry{Target: target, Kind: kind, Visibility: visibility, Next: s.Imports}
}
