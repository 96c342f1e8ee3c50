package validate

import (
	"fmt"

	"sysml2/internal/diag"
	"sysml2/internal/intern"
	"sysml2/internal/model"
	"sysml2/internal/symtab"
)

// runPass2 resolves every typed_by reference and checks kind compatibility,
// per spec.md §4.D Pass 2 (codes E3001, E3006).
func runPass2(ctx *Context, m *model.Model) {
	if !ctx.Options.CheckUndefinedTypes && !ctx.Options.CheckTypeCompatibility {
		return
	}

	for _, el := range m.Elements {
		if len(el.TypedBy) == 0 {
			continue
		}
		parentScope := ctx.Table.GetOrCreateScope(el.ParentID)

		for _, ref := range el.TypedBy {
			sid, ok := ctx.Table.Resolve(parentScope, ref)
			if !ok {
				if ctx.Options.CheckUndefinedTypes {
					reportUnresolvedTypeRef(ctx, parentScope, el, ref)
				}
				continue
			}
			if !ctx.Options.CheckTypeCompatibility {
				continue
			}
			sym := ctx.Table.Symbol(sid)
			if sym == nil || sym.Element == nil {
				continue
			}
			if !isCompatible(el.Kind, sym.Element.Kind) {
				reportIncompatibleTyping(ctx, el, ref, sym.Element)
			}
		}
	}
}

func reportUnresolvedTypeRef(ctx *Context, scope symtab.ScopeID, el *model.Element, ref intern.ID) {
	refName, _ := ctx.Interner.Lookup(ref)
	msg := fmt.Sprintf("unresolved type reference %q", refName)
	builder := ctx.reportError(diag.ErrUnresolvedTypeRef, el.Range, msg)

	if ctx.Options.SuggestCorrections {
		candidates := ctx.Table.FindSimilar(scope, refName, ctx.Options.MaxSuggestions)
		for _, c := range candidates {
			candName, _ := ctx.Interner.Lookup(c)
			builder = builder.WithHelp(fmt.Sprintf("did you mean %q?", candName))
		}
	}
	if len(builder.Diagnostic().Help) == 0 {
		builder = builder.WithHelp("check that the type is declared and imported in scope")
	}
	builder.Emit()
}

func reportIncompatibleTyping(ctx *Context, el *model.Element, ref intern.ID, resolved *model.Element) {
	refName, _ := ctx.Interner.Lookup(ref)
	resolvedName, _ := ctx.Interner.Lookup(resolved.Name)
	msg := fmt.Sprintf("%q resolves to %q, which is not a valid type for this element (resolved kind %d)",
		refName, resolvedName, resolved.Kind)
	ctx.reportError(diag.ErrIncompatibleTyping, el.Range, msg).
		WithNote(resolved.Range.Span(), "resolved type declared here").
		Emit()
}
