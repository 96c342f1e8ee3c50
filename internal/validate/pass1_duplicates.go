package validate

import (
	"fmt"

	"sysml2/internal/diag"
	"sysml2/internal/intern"
	"sysml2/internal/model"
)

// runPass1 builds the symbol table from m's elements and reports duplicate
// declarations (E3004), per spec.md §4.D Pass 1.
//
// For every element with a non-empty name, its parent scope is resolved (or
// created) and the element is inserted; a name collision is an error unless
// both symbols are packages, in which case the two package declarations
// cooperate in one shared scope (the "package-contribution merge" spec.md
// §9 documents and this core never "fixes"). Every package/definition gets
// its own child scope regardless of collision. Imports are then attached to
// their owner scope, and every root-level package gets an implicit
// namespace-wildcard import at the root scope, so names declared directly
// under a top-level (library) package resolve without qualification. The
// table is built whatever the options say; CheckDuplicateNames only gates
// the E3004 report.
func runPass1(ctx *Context, m *model.Model) {
	for _, el := range m.Elements {
		if el.Name.IsValid() {
			registerElement(ctx, el)
		}
		if model.IsPackage(el.Kind) || model.IsDefinition(el.Kind) {
			ctx.Table.GetOrCreateScope(el.ID)
		}
	}

	for _, im := range m.Imports {
		scope := ctx.Table.GetOrCreateScope(im.OwnerScope)
		ctx.Table.Scope(scope).AddImport(im.Target, im.Kind, im.Visibility)
	}

	for _, el := range m.Elements {
		if model.IsPackage(el.Kind) && el.ParentID == intern.NoID {
			ctx.Table.Scope(ctx.Table.Root()).AddImport(el.ID, model.ImportNamespaceWildcard, true)
		}
	}
}

func registerElement(ctx *Context, el *model.Element) {
	parentScope := ctx.Table.GetOrCreateScope(el.ParentID)
	existingID, existed := ctx.Table.Add(parentScope, el.Name, el.ID, el)
	if !existed || !ctx.Options.CheckDuplicateNames {
		return
	}

	existing := ctx.Table.Symbol(existingID)
	if existing != nil && existing.Element != nil &&
		model.IsPackage(existing.Element.Kind) && model.IsPackage(el.Kind) {
		return
	}

	name, _ := ctx.Interner.Lookup(el.Name)
	msg := fmt.Sprintf("%q is already declared in this scope", name)
	builder := ctx.reportError(diag.ErrDuplicateSymbol, el.Range, msg)
	if existing != nil && existing.Element != nil {
		builder = builder.WithNote(existing.Element.Range.Span(), "first declared here")
	}
	builder.Emit()
}
