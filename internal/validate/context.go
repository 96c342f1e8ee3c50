package validate

import (
	"sysml2/internal/diag"
	"sysml2/internal/intern"
	"sysml2/internal/model"
	"sysml2/internal/symtab"
)

// Context holds everything every pass needs: the shared symbol table, the
// diagnostics sink, the option gates, the has-errors latch (spec.md §7
// "semantic-error" vs "ok"), and an optional progress channel. One Context
// is shared across every model in a multi-model run (spec.md §4.D
// "Multi-model validation").
type Context struct {
	Interner *intern.Interner
	Table    *symtab.Table
	Bag      *diag.Bag
	Options  Options
	Events   chan<- Event

	hasErrors bool

	// Pass 3 cycle-detection state, shared across every model in a
	// multi-model run so cross-file cycles are still caught.
	cycleState   map[intern.ID]cycleState
	cycleStack   []intern.ID
	elementIndex map[intern.ID]*model.Element
}

// NewContext builds a Context ready to drive Validate/ValidateModels. bagCap
// bounds the diagnostics sink the same way the teacher's own Bag is capped
// at a fixed maximum (diag.NewBag).
func NewContext(in *intern.Interner, opts Options, bagCap int, events chan<- Event) *Context {
	return &Context{
		Interner: in,
		Table:    symtab.New(in),
		Bag:      diag.NewBag(bagCap),
		Options:  opts,
		Events:   events,
	}
}

// reporter adapts ctx.Bag to diag.Reporter for the pass helpers.
func (ctx *Context) reporter() diag.Reporter {
	return diag.BagReporter{Bag: ctx.Bag}
}

// reportError emits an error diagnostic and latches HasErrors.
func (ctx *Context) reportError(code diag.Code, sp model.Range, msg string) *diag.ReportBuilder {
	ctx.hasErrors = true
	return diag.ReportError(ctx.reporter(), code, sp.Span(), msg)
}

// reportWarning emits a warning diagnostic without affecting the latch
// (spec.md §7: "the top-level validate call returns semantic-error if at
// least one error — not warning — was latched").
func (ctx *Context) reportWarning(code diag.Code, sp model.Range, msg string) *diag.ReportBuilder {
	return diag.ReportWarning(ctx.reporter(), code, sp.Span(), msg)
}

// HasErrors reports whether any error-severity diagnostic has been emitted
// so far on this Context.
func (ctx *Context) HasErrors() bool {
	return ctx.hasErrors
}

// Outcome is the result of a validation run: the accumulated diagnostics and
// the overall pass/fail verdict.
type Outcome struct {
	Diagnostics []*diag.Diagnostic
	HasErrors   bool
}

func (ctx *Context) outcome() Outcome {
	return Outcome{Diagnostics: ctx.Bag.Items(), HasErrors: ctx.hasErrors}
}
