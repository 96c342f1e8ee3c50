package validate

import (
	"fmt"
	"strings"

	"sysml2/internal/diag"
	"sysml2/internal/intern"
	"sysml2/internal/model"
)

// maxRedefinitionDepth bounds the inheritance-chain walk Pass 5 performs
// when resolving a simple (unqualified) redefinition name (spec.md §4.D
// Pass 5: "bounded to depth 20").
const maxRedefinitionDepth = 20

// runPass5 checks every redefines[] reference: that it resolves to a real
// feature in the enclosing type's inheritance chain, and that the new
// feature narrows (never widens) the original's type and multiplicity
// (spec.md §4.D Pass 5, codes E3002, E3008).
func runPass5(ctx *Context, m *model.Model) {
	if !ctx.Options.CheckUndefinedFeatures && !ctx.Options.CheckRedefinitionCompat {
		return
	}
	if ctx.elementIndex == nil {
		ctx.elementIndex = make(map[intern.ID]*model.Element)
	}
	for _, el := range m.Elements {
		ctx.elementIndex[el.ID] = el
	}

	for _, el := range m.Elements {
		if len(el.Redefines) == 0 {
			continue
		}
		parentType := ctx.elementIndex[el.ParentID]
		if parentType == nil {
			continue
		}
		for _, ref := range el.Redefines {
			orig := ctx.resolveRedefinitionTarget(parentType, ref)
			if orig == nil {
				if ctx.Options.CheckUndefinedFeatures {
					reportUndefinedFeature(ctx, el, ref)
				}
				continue
			}
			if ctx.Options.CheckRedefinitionCompat {
				checkRedefinitionNarrowing(ctx, el, orig)
			}
		}
	}
}

// resolveRedefinitionTarget locates the feature el.Redefines[i] names,
// searching parentType's transitive typed_by/specializes inheritance chain
// for an unqualified name, or resolving a qualified name normally.
func (ctx *Context) resolveRedefinitionTarget(parentType *model.Element, ref intern.ID) *model.Element {
	refStr, ok := ctx.Interner.Lookup(ref)
	if !ok {
		return nil
	}
	if strings.Contains(refStr, "::") {
		parentScope := ctx.Table.GetOrCreateScope(parentType.ParentID)
		sid, ok := ctx.Table.Resolve(parentScope, ref)
		if !ok {
			return nil
		}
		sym := ctx.Table.Symbol(sid)
		if sym == nil {
			return nil
		}
		return sym.Element
	}
	return ctx.findInheritedFeature(parentType, ref, 0, make(map[intern.ID]bool))
}

// findInheritedFeature walks parentType's supertypes (typed_by ∪
// specializes), excluding parentType's own direct members, looking for a
// symbol named ref declared directly in a supertype's scope.
func (ctx *Context) findInheritedFeature(parentType *model.Element, ref intern.ID, depth int, seen map[intern.ID]bool) *model.Element {
	if depth >= maxRedefinitionDepth {
		return nil
	}
	supers := make([]intern.ID, 0, len(parentType.TypedBy)+len(parentType.Specializes))
	supers = append(supers, parentType.TypedBy...)
	supers = append(supers, parentType.Specializes...)

	for _, superRef := range supers {
		superScope := ctx.Table.GetOrCreateScope(parentType.ParentID)
		sid, ok := ctx.Table.Resolve(superScope, superRef)
		if !ok {
			continue
		}
		sym := ctx.Table.Symbol(sid)
		if sym == nil || sym.Element == nil || seen[sym.Element.ID] {
			continue
		}
		seen[sym.Element.ID] = true

		superEl := sym.Element
		superOwnScope, ok := ctx.Table.LookupScope(superEl.ID)
		if ok {
			if memberID, found := ctx.Table.Lookup(superOwnScope, ref); found {
				if memberSym := ctx.Table.Symbol(memberID); memberSym != nil {
					return memberSym.Element
				}
			}
		}
		if found := ctx.findInheritedFeature(superEl, ref, depth+1, seen); found != nil {
			return found
		}
	}
	return nil
}

func reportUndefinedFeature(ctx *Context, el *model.Element, ref intern.ID) {
	refName, _ := ctx.Interner.Lookup(ref)
	msg := fmt.Sprintf("redefined feature %q not found in the enclosing type's inheritance chain", refName)
	ctx.reportError(diag.ErrUndefinedFeature, el.Range, msg).Emit()
}

func checkRedefinitionNarrowing(ctx *Context, el, orig *model.Element) {
	if len(el.TypedBy) > 0 && len(orig.TypedBy) > 0 {
		if !ctx.isSubtypeOf(el.TypedBy[0], orig) {
			newName, _ := ctx.Interner.Lookup(el.Name)
			msg := fmt.Sprintf("%q's type is not a subtype of the redefined feature's type", newName)
			ctx.reportError(diag.ErrRedefinitionTypeMismatch, el.Range, msg).
				WithNote(orig.Range.Span(), "redefined feature declared here").
				Emit()
			return
		}
	}

	if el.Multiplicity != nil && orig.Multiplicity != nil {
		newLower, newLowerInf, newOK := parseBound(firstNonEmpty(el.Multiplicity.Lower, "0"))
		origLower, origLowerInf, origOK := parseBound(firstNonEmpty(orig.Multiplicity.Lower, "0"))
		newUpper, newUpperInf, newUpperOK := parseBound(firstNonEmpty(el.Multiplicity.Upper, el.Multiplicity.Lower))
		origUpper, origUpperInf, origUpperOK := parseBound(firstNonEmpty(orig.Multiplicity.Upper, orig.Multiplicity.Lower))
		if !newOK || !origOK || !newUpperOK || !origUpperOK {
			return
		}

		lowerNarrows := newLowerInf || (!origLowerInf && newLower >= origLower) || (origLowerInf && newLowerInf)
		upperNarrows := origUpperInf || (!newUpperInf && newUpper <= origUpper)

		if !lowerNarrows || !upperNarrows {
			newName, _ := ctx.Interner.Lookup(el.Name)
			msg := fmt.Sprintf("%q widens the redefined feature's multiplicity bounds", newName)
			ctx.reportError(diag.ErrRedefinitionTypeMismatch, el.Range, msg).
				WithNote(orig.Range.Span(), "redefined feature declared here").
				Emit()
		}
	}
}

// isSubtypeOf reports whether typeRef (the first typed_by entry of the
// redefining feature) equals orig's own type, or appears in orig's
// transitive typed_by ∪ specializes closure.
func (ctx *Context) isSubtypeOf(typeRef intern.ID, orig *model.Element) bool {
	origScope := ctx.Table.GetOrCreateScope(orig.ParentID)
	newSid, ok := ctx.Table.Resolve(origScope, typeRef)
	if !ok {
		return false
	}
	newSym := ctx.Table.Symbol(newSid)
	if newSym == nil {
		return false
	}
	newID := newSym.QualifiedID

	if len(orig.TypedBy) > 0 {
		if origSid, ok := ctx.Table.Resolve(origScope, orig.TypedBy[0]); ok {
			if origSym := ctx.Table.Symbol(origSid); origSym != nil && origSym.QualifiedID == newID {
				return true
			}
		}
	}
	return ctx.inClosure(orig, newID, 0, make(map[intern.ID]bool))
}

func (ctx *Context) inClosure(el *model.Element, target intern.ID, depth int, seen map[intern.ID]bool) bool {
	if depth >= maxRedefinitionDepth || el == nil || seen[el.ID] {
		return false
	}
	seen[el.ID] = true
	scope := ctx.Table.GetOrCreateScope(el.ParentID)

	refs := make([]intern.ID, 0, len(el.TypedBy)+len(el.Specializes))
	refs = append(refs, el.TypedBy...)
	refs = append(refs, el.Specializes...)

	for _, ref := range refs {
		sid, ok := ctx.Table.Resolve(scope, ref)
		if !ok {
			continue
		}
		sym := ctx.Table.Symbol(sid)
		if sym == nil {
			continue
		}
		if sym.QualifiedID == target {
			return true
		}
		if sym.Element != nil && ctx.inClosure(sym.Element, target, depth+1, seen) {
			return true
		}
	}
	return false
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
