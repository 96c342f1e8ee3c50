package validate

import (
	"fmt"

	"sysml2/internal/diag"
	"sysml2/internal/model"
)

// runPass6 resolves every import's bare namespace target from the root
// scope and reports E3003 on failure, per spec.md §4.D Pass 6.
func runPass6(ctx *Context, m *model.Model) {
	if !ctx.Options.CheckUndefinedNamespaces {
		return
	}
	for _, im := range m.Imports {
		if _, ok := ctx.Table.Resolve(ctx.Table.Root(), im.Target); ok {
			continue
		}
		targetName, _ := ctx.Interner.Lookup(im.Target)
		msg := fmt.Sprintf("unresolved import target %q", targetName)
		builder := ctx.reportError(diag.ErrUnresolvedImport, im.Range, msg)

		if ctx.Options.SuggestCorrections {
			candidates := ctx.Table.FindSimilar(ctx.Table.Root(), targetName, ctx.Options.MaxSuggestions)
			for _, c := range candidates {
				candName, _ := ctx.Interner.Lookup(c)
				builder = builder.WithHelp(fmt.Sprintf("did you mean %q?", candName))
			}
		}
		builder.Emit()
	}
}
