package validate

import (
	"strings"
	"testing"

	"sysml2/internal/intern"
	"sysml2/internal/model"
)

func newCtx(t *testing.T, in *intern.Interner, opts Options) *Context {
	t.Helper()
	return NewContext(in, opts, DefaultBagCapacity, nil)
}

func el(in *intern.Interner, qualified string, kind model.ElementKind) *model.Element {
	name := qualified
	if idx := strings.LastIndex(qualified, "::"); idx >= 0 {
		name = qualified[idx+2:]
	}
	parent := intern.NoID
	if idx := strings.LastIndex(qualified, "::"); idx >= 0 {
		parent = in.Intern(qualified[:idx])
	}
	return &model.Element{
		ID:       in.Intern(qualified),
		Name:     in.Intern(name),
		Kind:     kind,
		ParentID: parent,
	}
}

func diagCodes(outcome Outcome) []string {
	out := make([]string, len(outcome.Diagnostics))
	for i, d := range outcome.Diagnostics {
		out[i] = d.Code.ID()
	}
	return out
}

// Scenario 1: two sibling elements, same name, non-package kinds, one scope
// — exactly one E3004, note points at the first definition.
func TestPass1DuplicateDetection(t *testing.T) {
	in := intern.New(nil)
	m := model.New("scenario1")
	first := el(in, "Thing", model.KindPartDef)
	second := el(in, "Thing", model.KindPartDef)
	m.Elements = append(m.Elements, first, second)

	ctx := newCtx(t, in, DefaultOptions())
	out := Validate(ctx, m, DefaultOptions())

	if got := diagCodes(out); len(got) != 1 || got[0] != "E3004" {
		t.Fatalf("codes = %v, want exactly one E3004", got)
	}
	d := out.Diagnostics[0]
	if len(d.Notes) != 1 || d.Notes[0].Span != first.Range.Span() {
		t.Errorf("expected the duplicate's note to point at the first declaration")
	}
}

// Package-contribution merge: two package elements sharing a name never
// collide.
func TestPass1PackageMergeNeverCollides(t *testing.T) {
	in := intern.New(nil)
	m := model.New("scenario1b")
	m.Elements = append(m.Elements,
		el(in, "Foo", model.KindPackage),
		el(in, "Foo", model.KindPackage),
	)

	ctx := newCtx(t, in, DefaultOptions())
	out := Validate(ctx, m, DefaultOptions())
	if len(out.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics for package merge, got %v", diagCodes(out))
	}
}

// Scenario 2: a part usage typed by "Enginne" where "Engine" is declared
// (edit distance 1) — one E3001, help text includes "Engine".
func TestPass2UnresolvedTypeWithSuggestion(t *testing.T) {
	in := intern.New(nil)
	m := model.New("scenario2")
	engine := el(in, "Engine", model.KindPartDef)
	usage := el(in, "p", model.KindPartUsage)
	usage.TypedBy = []intern.ID{in.Intern("Enginne")}
	m.Elements = append(m.Elements, engine, usage)

	ctx := newCtx(t, in, DefaultOptions())
	out := Validate(ctx, m, DefaultOptions())

	codes := diagCodes(out)
	if len(codes) != 1 || codes[0] != "E3001" {
		t.Fatalf("codes = %v, want exactly one E3001", codes)
	}
	found := false
	for _, h := range out.Diagnostics[0].Help {
		if strings.Contains(h, "Engine") {
			found = true
		}
	}
	if !found {
		t.Errorf("help = %v, want a suggestion mentioning Engine", out.Diagnostics[0].Help)
	}
}

// Scenario 3: A typed_by B, B specializes C, C typed_by A — exactly one
// E3005, cycle-path note contains A, B, C, A in that rotation order.
func TestPass3CycleDetected(t *testing.T) {
	in := intern.New(nil)
	m := model.New("scenario3")
	a := el(in, "A", model.KindPartDef)
	b := el(in, "B", model.KindPartDef)
	c := el(in, "C", model.KindPartDef)
	a.TypedBy = []intern.ID{in.Intern("B")}
	b.Specializes = []intern.ID{in.Intern("C")}
	c.TypedBy = []intern.ID{in.Intern("A")}
	m.Elements = append(m.Elements, a, b, c)

	opts := DefaultOptions()
	opts.CheckUndefinedTypes = false
	opts.CheckTypeCompatibility = false
	ctx := newCtx(t, in, opts)
	out := Validate(ctx, m, opts)

	codes := diagCodes(out)
	if len(codes) != 1 || codes[0] != "E3005" {
		t.Fatalf("codes = %v, want exactly one E3005", codes)
	}
	note := out.Diagnostics[0].Notes[0].Msg
	for _, want := range []string{"A", "B", "C"} {
		if !strings.Contains(note, want) {
			t.Errorf("cycle note %q missing %q", note, want)
		}
	}
	if strings.Count(note, "A") < 2 {
		t.Errorf("cycle note %q should mention A twice (rotation start and end)", note)
	}
}

// Scenario 4: B redefines A.x, A specializes B — the redefines edge must
// not be treated as a cycle-forming edge.
func TestPass3RedefinesEdgeExcludedFromCycle(t *testing.T) {
	in := intern.New(nil)
	m := model.New("scenario4")
	a := el(in, "A", model.KindPartDef)
	b := el(in, "B", model.KindPartDef)
	a.Specializes = []intern.ID{in.Intern("B")}
	b.Redefines = []intern.ID{in.Intern("A::x")}
	m.Elements = append(m.Elements, a, b)

	opts := DefaultOptions()
	opts.CheckUndefinedFeatures = false
	opts.CheckRedefinitionCompat = false
	ctx := newCtx(t, in, opts)
	out := Validate(ctx, m, opts)

	for _, code := range diagCodes(out) {
		if code == "E3005" {
			t.Fatalf("redefines edge must not produce a cycle diagnostic, got %v", diagCodes(out))
		}
	}
}

// Scenario 5: multiplicity lower=5, upper=2 — one E3007, help suggests the
// swap 2..5.
func TestPass4MultiplicityBoundsSwapHint(t *testing.T) {
	in := intern.New(nil)
	m := model.New("scenario5")
	e := el(in, "x", model.KindAttributeUsage)
	e.Multiplicity = &model.Multiplicity{Lower: "5", Upper: "2", HasLower: true, HasUpper: true}
	m.Elements = append(m.Elements, e)

	ctx := newCtx(t, in, DefaultOptions())
	out := Validate(ctx, m, DefaultOptions())

	codes := diagCodes(out)
	if len(codes) != 1 || codes[0] != "E3007" {
		t.Fatalf("codes = %v, want exactly one E3007", codes)
	}
	if len(out.Diagnostics[0].Help) != 1 || out.Diagnostics[0].Help[0] != "swap the bounds: 2..5" {
		t.Errorf("help = %v, want [\"swap the bounds: 2..5\"]", out.Diagnostics[0].Help)
	}
}

func TestPass6UnresolvedImport(t *testing.T) {
	in := intern.New(nil)
	m := model.New("scenario6")
	m.Imports = append(m.Imports, &model.Import{
		OwnerScope: intern.NoID,
		Target:     in.Intern("Nonexistent"),
		Kind:       model.ImportDirect,
	})

	ctx := newCtx(t, in, DefaultOptions())
	out := Validate(ctx, m, DefaultOptions())
	codes := diagCodes(out)
	if len(codes) != 1 || codes[0] != "E3003" {
		t.Fatalf("codes = %v, want exactly one E3003", codes)
	}
}

func TestPass7AbstractInstantiationWarning(t *testing.T) {
	in := intern.New(nil)
	m := model.New("scenario7")
	def := el(in, "Engine", model.KindPartDef)
	def.Abstract = true
	usage := el(in, "p", model.KindPartUsage)
	usage.TypedBy = []intern.ID{in.Intern("Engine")}
	m.Elements = append(m.Elements, def, usage)

	ctx := newCtx(t, in, DefaultOptions())
	out := Validate(ctx, m, DefaultOptions())

	if out.HasErrors {
		t.Fatalf("abstract instantiation must never set HasErrors")
	}
	found := false
	for _, d := range out.Diagnostics {
		if d.Code.ID() == "W1003" {
			found = true
		}
	}
	if !found {
		t.Errorf("codes = %v, want a W1003 warning", diagCodes(out))
	}
}

func TestValidatorPurityAcrossRepeatedRuns(t *testing.T) {
	in := intern.New(nil)
	m := model.New("purity")
	m.Elements = append(m.Elements, el(in, "Thing", model.KindPartDef), el(in, "Thing", model.KindPartDef))

	out1 := Validate(newCtx(t, in, DefaultOptions()), m, DefaultOptions())
	out2 := Validate(newCtx(t, in, DefaultOptions()), m, DefaultOptions())

	if len(out1.Diagnostics) != len(out2.Diagnostics) {
		t.Fatalf("repeated validation produced different diagnostic counts: %d vs %d",
			len(out1.Diagnostics), len(out2.Diagnostics))
	}
	for i := range out1.Diagnostics {
		if out1.Diagnostics[i].Code != out2.Diagnostics[i].Code ||
			out1.Diagnostics[i].Message != out2.Diagnostics[i].Message {
			t.Errorf("diagnostic %d differs between runs", i)
		}
	}
}
