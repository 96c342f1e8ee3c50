// Package validate implements the seven-pass semantic validator: duplicate
// detection, type resolution and compatibility, circular-specialization
// detection, multiplicity parsing, redefinition narrowing, import
// resolution, and an abstract-instantiation warning.
package validate

import "sysml2/internal/model"

// DefaultBagCapacity bounds a single validation run's diagnostic sink,
// mirroring the teacher's own fixed-capacity diag.Bag usage.
const DefaultBagCapacity = 4096

type passFunc func(*Context, *model.Model)

// passOrder is the fixed pass sequence spec.md §4.D mandates; later passes
// may depend on the symbol table Pass 1 builds.
var passOrder = []struct {
	pass Pass
	run  passFunc
}{
	{PassDuplicate, runPass1},
	{PassTypeResolution, runPass2},
	{PassCircularSpecialization, runPass3},
	{PassMultiplicity, runPass4},
	{PassRedefinition, runPass5},
	{PassImports, runPass6},
	{PassAbstractInstantiation, runPass7},
}

// Validate runs all seven passes over a single model on ctx and returns the
// accumulated outcome. opts overrides ctx's option gates for this call (so
// one long-lived ctx, e.g. across a CLI session, can validate successive
// models under different flag sets without rebuilding its symbol table).
func Validate(ctx *Context, m *model.Model, opts Options) Outcome {
	ctx.Options = opts
	for _, p := range passOrder {
		emit(ctx.Events, Event{Pass: p.pass, Model: m.SourceName})
		p.run(ctx, m)
		emit(ctx.Events, Event{Pass: p.pass, Model: m.SourceName, Finished: true})
	}
	return ctx.outcome()
}

// ValidateModels runs every model through Pass 1 before any model reaches
// Pass 2, and so on, sharing ctx's single symtab.Table so duplicate-name
// and cycle detection span files (spec.md §4.D "Multi-model validation").
func ValidateModels(ctx *Context, models []*model.Model, opts Options) Outcome {
	ctx.Options = opts
	for _, p := range passOrder {
		for _, m := range models {
			emit(ctx.Events, Event{Pass: p.pass, Model: m.SourceName})
			p.run(ctx, m)
			emit(ctx.Events, Event{Pass: p.pass, Model: m.SourceName, Finished: true})
		}
	}
	return ctx.outcome()
}
