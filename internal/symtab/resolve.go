package symtab

import (
	"strings"

	"sysml2/internal/intern"
	"sysml2/internal/model"
)

// Resolve performs full name resolution starting at scope (spec §4.C
// "resolve"). If name is unqualified (no "::"), it walks up the scope
// chain trying local symbols, then that scope's imports, at each level. If
// name is qualified, it splits on the first "::", recursively resolves the
// prefix, then looks up the remainder inside the scope whose id equals the
// resolved symbol's qualified id.
func (t *Table) Resolve(scope ScopeID, name intern.ID) (SymbolID, bool) {
	nameStr, ok := t.interner.Lookup(name)
	if !ok {
		return NoSymbolID, false
	}
	if idx := strings.Index(nameStr, qualSep); idx >= 0 {
		return t.resolveQualified(scope, nameStr, idx)
	}
	return t.resolveUnqualified(scope, name)
}

func (t *Table) resolveQualified(scope ScopeID, nameStr string, sepIdx int) (SymbolID, bool) {
	prefix := t.interner.Intern(nameStr[:sepIdx])
	remainder := nameStr[sepIdx+len(qualSep):]

	prefixSym, ok := t.Resolve(scope, prefix)
	if !ok {
		return NoSymbolID, false
	}
	sym := t.Symbol(prefixSym)
	if sym == nil {
		return NoSymbolID, false
	}
	targetScope, ok := t.LookupScope(sym.QualifiedID)
	if !ok {
		return NoSymbolID, false
	}
	return t.Resolve(targetScope, t.interner.Intern(remainder))
}

func (t *Table) resolveUnqualified(scope ScopeID, name intern.ID) (SymbolID, bool) {
	for cur := scope; cur.IsValid(); {
		s := t.Scope(cur)
		if s == nil {
			return NoSymbolID, false
		}
		if sid, ok := t.Lookup(cur, name); ok {
			return sid, true
		}
		if sid, ok := t.resolveViaImports(s, name); ok {
			return sid, true
		}
		if cur == t.root {
			break
		}
		cur = s.Parent
	}
	return NoSymbolID, false
}

// resolveViaImports walks scope's import list from its head (most recently
// added first, since entries are front-inserted), applying the per-kind
// resolution rule spec §4.C describes. ImportRecursiveWildcard
// is deliberately handled identically to ImportNamespaceWildcard — the
// documented imperfection (spec §9): nested scopes are never traversed.
func (t *Table) resolveViaImports(s *Scope, name intern.ID) (SymbolID, bool) {
	nameStr, ok := t.interner.Lookup(name)
	if !ok {
		return NoSymbolID, false
	}
	for entry := s.Imports; entry != nil; entry = entry.Next {
		switch entry.Kind {
		case model.ImportDirect:
			targetStr, ok := t.interner.Lookup(entry.Target)
			if !ok {
				continue
			}
			if lastSegment(targetStr) != nameStr {
				continue
			}
			if s.ID == intern.NoID && entry.Target == name {
				// A root-level import of name itself: resolving it from the
				// root would re-enter this very lookup without end.
				continue
			}
			if sid, ok := t.Resolve(t.root, entry.Target); ok {
				return sid, true
			}
		case model.ImportNamespaceWildcard, model.ImportRecursiveWildcard:
			targetScope, ok := t.LookupScope(entry.Target)
			if !ok {
				continue
			}
			if sid, ok := t.Lookup(targetScope, name); ok {
				return sid, true
			}
		}
	}
	return NoSymbolID, false
}

func lastSegment(qualified string) string {
	if idx := strings.LastIndex(qualified, qualSep); idx >= 0 {
		return qualified[idx+len(qualSep):]
	}
	return qualified
}
