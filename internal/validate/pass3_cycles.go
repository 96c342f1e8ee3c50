package validate

import (
	"fmt"
	"strings"

	"sysml2/internal/diag"
	"sysml2/internal/intern"
	"sysml2/internal/model"
)

// maxCycleDepth bounds the specialization-graph traversal (spec.md §4.D
// Pass 3 "implementation-defined safety bound, e.g. 200"); deeper chains
// are treated as already visited so the walk always terminates.
const maxCycleDepth = 200

type cycleState uint8

const (
	cycleUnvisited cycleState = iota
	cycleVisiting
	cycleDone
)

// runPass3 performs a depth-first walk over the union of typed_by,
// specializes, and references edges (redefines is deliberately excluded —
// redefinition is override, not extension) and reports E3005 on any cycle.
// Visit state and the explicit traversal stack live on ctx so cycles that
// span multiple models in a multi-model run are still detected.
func runPass3(ctx *Context, m *model.Model) {
	if !ctx.Options.CheckCircularSpecs {
		return
	}
	if ctx.cycleState == nil {
		ctx.cycleState = make(map[intern.ID]cycleState)
	}
	for _, el := range m.Elements {
		if ctx.elementIndex == nil {
			ctx.elementIndex = make(map[intern.ID]*model.Element)
		}
		ctx.elementIndex[el.ID] = el
	}
	for _, el := range m.Elements {
		if ctx.cycleState[el.ID] != cycleDone {
			ctx.dfsCycle(el.ID)
		}
	}
}

func cycleEdges(el *model.Element) []intern.ID {
	edges := make([]intern.ID, 0, len(el.TypedBy)+len(el.Specializes)+len(el.References))
	edges = append(edges, el.TypedBy...)
	edges = append(edges, el.Specializes...)
	edges = append(edges, el.References...)
	return edges
}

func (ctx *Context) dfsCycle(id intern.ID) {
	if !id.IsValid() {
		return
	}
	switch ctx.cycleState[id] {
	case cycleDone:
		return
	case cycleVisiting:
		ctx.reportCycle(id)
		return
	}

	if len(ctx.cycleStack) >= maxCycleDepth {
		ctx.cycleState[id] = cycleDone
		return
	}

	ctx.cycleState[id] = cycleVisiting
	ctx.cycleStack = append(ctx.cycleStack, id)

	if el := ctx.elementIndex[id]; el != nil {
		parentScope := ctx.Table.GetOrCreateScope(el.ParentID)
		for _, ref := range cycleEdges(el) {
			sid, ok := ctx.Table.Resolve(parentScope, ref)
			if !ok {
				continue
			}
			sym := ctx.Table.Symbol(sid)
			if sym == nil {
				continue
			}
			ctx.dfsCycle(sym.QualifiedID)
		}
	}

	ctx.cycleStack = ctx.cycleStack[:len(ctx.cycleStack)-1]
	ctx.cycleState[id] = cycleDone
}

// reportCycle emits E3005 once, attaching a note that reconstructs the
// cycle starting at the repeated id (spec.md §8 scenario 3: "A, B, C, A in
// that rotation-order").
func (ctx *Context) reportCycle(repeat intern.ID) {
	idx := -1
	for i, id := range ctx.cycleStack {
		if id == repeat {
			idx = i
			break
		}
	}
	if idx < 0 {
		idx = 0
	}
	path := append(append([]intern.ID(nil), ctx.cycleStack[idx:]...), repeat)

	names := make([]string, 0, len(path))
	for _, id := range path {
		el := ctx.elementIndex[id]
		if el == nil {
			continue
		}
		name, _ := ctx.Interner.Lookup(el.Name)
		names = append(names, name)
	}

	var source *model.Element
	if len(ctx.cycleStack) > 0 {
		source = ctx.elementIndex[ctx.cycleStack[len(ctx.cycleStack)-1]]
	}
	if source == nil {
		source = ctx.elementIndex[repeat]
	}
	if source == nil {
		return
	}

	msg := "circular specialization detected"
	builder := ctx.reportError(diag.ErrCycleDetected, source.Range, msg)
	if len(names) > 0 {
		builder = builder.WithNote(source.Range.Span(), fmt.Sprintf("cycle: %s", strings.Join(names, " -> ")))
	}
	builder.Emit()
}
