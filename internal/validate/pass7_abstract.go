package validate

import (
	"fmt"

	"sysml2/internal/diag"
	"sysml2/internal/model"
)

// runPass7 warns when a non-abstract usage is typed by an abstract
// definition, per spec.md §4.D Pass 7. Never an error — this never latches
// ctx.hasErrors.
func runPass7(ctx *Context, m *model.Model) {
	if !ctx.Options.WarnAbstractInstantiation {
		return
	}
	for _, el := range m.Elements {
		if !model.IsUsage(el.Kind) || el.Abstract || len(el.TypedBy) == 0 {
			continue
		}
		parentScope := ctx.Table.GetOrCreateScope(el.ParentID)
		for _, ref := range el.TypedBy {
			sid, ok := ctx.Table.Resolve(parentScope, ref)
			if !ok {
				continue
			}
			sym := ctx.Table.Symbol(sid)
			if sym == nil || sym.Element == nil || !sym.Element.Abstract {
				continue
			}
			typeName, _ := ctx.Interner.Lookup(sym.Element.Name)
			msg := fmt.Sprintf("instantiates abstract definition %q; use a concrete subtype instead", typeName)
			ctx.reportWarning(diag.WarnAbstractInstantiated, el.Range, msg).Emit()
		}
	}
}
