package modify

import (
	"testing"

	"sysml2/internal/intern"
	"sysml2/internal/model"
	"sysml2/internal/query"
)

func element(in *intern.Interner, qualified string, parent string, kind model.ElementKind) *model.Element {
	parentID := intern.NoID
	if parent != "" {
		parentID = in.Intern(parent)
	}
	last := qualified
	for i := len(qualified) - 1; i >= 1; i-- {
		if qualified[i-1] == ':' && qualified[i] == ':' {
			last = qualified[i+1:]
			break
		}
	}
	return &model.Element{
		ID:       in.Intern(qualified),
		Name:     in.Intern(last),
		ParentID: parentID,
		Kind:     kind,
	}
}

func TestDeleteCascadesToDescendants(t *testing.T) {
	in := intern.New(nil)
	m := model.New("t")
	m.Elements = append(m.Elements,
		element(in, "A", "", model.KindPartDef),
		element(in, "A::b", "A", model.KindPartUsage),
		element(in, "A::b::c", "A::b", model.KindPartUsage),
		element(in, "Other", "", model.KindPartDef),
	)

	out, n := Delete(in, m, []query.Pattern{query.Parse("A")})
	if n != 3 {
		t.Fatalf("deleted = %d, want 3 (A, A::b, A::b::c)", n)
	}
	if len(out.Elements) != 1 || out.Elements[0].Kind != model.KindPartDef {
		t.Fatalf("expected only Other to survive, got %d elements", len(out.Elements))
	}
}

func TestDeleteNoMatchReturnsShallowClone(t *testing.T) {
	in := intern.New(nil)
	m := model.New("t")
	first := element(in, "A", "", model.KindPartDef)
	m.Elements = append(m.Elements, first)

	out, n := Delete(in, m, []query.Pattern{query.Parse("Nope")})
	if n != 0 {
		t.Fatalf("deleted = %d, want 0", n)
	}
	if len(out.Elements) != 1 || out.Elements[0] != first {
		t.Fatalf("expected shallow clone sharing the original element pointer")
	}
	if len(m.Elements) != 1 {
		t.Fatalf("Delete must never mutate its input model")
	}
}

func TestDeleteDropsDanglingRelationshipsAndImports(t *testing.T) {
	in := intern.New(nil)
	m := model.New("t")
	m.Elements = append(m.Elements, element(in, "A", "", model.KindPartDef), element(in, "B", "", model.KindPartDef))
	m.Relationships = append(m.Relationships, &model.Relationship{Source: in.Intern("A"), Target: in.Intern("B")})
	m.Imports = append(m.Imports, &model.Import{OwnerScope: in.Intern("A"), Target: in.Intern("B")})

	out, n := Delete(in, m, []query.Pattern{query.Parse("A")})
	if n != 1 {
		t.Fatalf("deleted = %d, want 1", n)
	}
	if len(out.Relationships) != 0 {
		t.Errorf("expected the relationship touching A to be dropped")
	}
	if len(out.Imports) != 0 {
		t.Errorf("expected the import owned by A to be dropped")
	}
}

// Scenario 6: base has empty package Foo; fragment is a single wrapper
// package Foo containing part p. Merging at scope Foo with create_scope
// false must produce element Foo::p (not Foo::Foo::p), added=1, replaced=0,
// and the fragment's wrapper must not appear in the result.
func TestMergeAutoUnwrap(t *testing.T) {
	in := intern.New(nil)
	base := model.New("base")
	base.Elements = append(base.Elements, element(in, "Foo", "", model.KindPackage))

	fragment := model.New("fragment")
	fragment.Elements = append(fragment.Elements,
		element(in, "Foo", "", model.KindPackage),
		element(in, "Foo::p", "Foo", model.KindPartUsage),
	)

	out, report, err := Merge(in, base, fragment, in.Intern("Foo"), false)
	if err != nil {
		t.Fatalf("Merge returned error: %v", err)
	}
	if report.Added != 1 || report.Replaced != 0 {
		t.Fatalf("report = %+v, want {Added:1 Replaced:0}", report)
	}

	var sawFooP, sawWrapper bool
	for _, e := range out.Elements {
		name, _ := in.Lookup(e.ID)
		if name == "Foo::p" {
			sawFooP = true
		}
		if name == "Foo::Foo::p" {
			sawWrapper = true
		}
	}
	if !sawFooP {
		t.Errorf("expected Foo::p in result, got %v", elementIDs(in, out.Elements))
	}
	if sawWrapper {
		t.Errorf("fragment wrapper package must not survive, got %v", elementIDs(in, out.Elements))
	}
}

func elementIDs(in *intern.Interner, elements []*model.Element) []string {
	out := make([]string, len(elements))
	for i, e := range elements {
		out[i], _ = in.Lookup(e.ID)
	}
	return out
}

func TestMergeFailsWithoutCreateScopeWhenTargetMissing(t *testing.T) {
	in := intern.New(nil)
	base := model.New("base")
	fragment := model.New("fragment")
	fragment.Elements = append(fragment.Elements, element(in, "p", "", model.KindPartUsage))

	_, _, err := Merge(in, base, fragment, in.Intern("Missing"), false)
	if err == nil {
		t.Fatalf("expected an error when the target scope is absent and create_scope is false")
	}
}

func TestMergeSynthesizesAncestryWhenCreateScopeSet(t *testing.T) {
	in := intern.New(nil)
	base := model.New("base")
	fragment := model.New("fragment")
	fragment.Elements = append(fragment.Elements, element(in, "p", "", model.KindPartUsage))

	out, report, err := Merge(in, base, fragment, in.Intern("New::Nested"), true)
	if err != nil {
		t.Fatalf("Merge returned error: %v", err)
	}
	if report.Added != 1 {
		t.Fatalf("report.Added = %d, want 1", report.Added)
	}
	names := elementIDs(in, out.Elements)
	want := map[string]bool{"New": false, "New::Nested": false, "New::Nested::p": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected synthesized/merged element %q in result, got %v", name, names)
		}
	}
}

func TestMergePurityNeverMutatesInputs(t *testing.T) {
	in := intern.New(nil)
	base := model.New("base")
	base.Elements = append(base.Elements, element(in, "Foo", "", model.KindPackage))
	fragment := model.New("fragment")
	fragment.Elements = append(fragment.Elements, element(in, "Foo::p", "Foo", model.KindPartUsage))

	baseLenBefore := len(base.Elements)
	fragLenBefore := len(fragment.Elements)

	if _, _, err := Merge(in, base, fragment, in.Intern("Foo"), false); err != nil {
		t.Fatalf("Merge returned error: %v", err)
	}
	if len(base.Elements) != baseLenBefore || len(fragment.Elements) != fragLenBefore {
		t.Fatalf("Merge must never mutate its input models")
	}
}

func TestListScopesReturnsOnlyPackages(t *testing.T) {
	in := intern.New(nil)
	m := model.New("t")
	m.Elements = append(m.Elements,
		element(in, "Foo", "", model.KindPackage),
		element(in, "Foo::Bar", "Foo", model.KindPartDef),
	)
	scopes := ListScopes(m)
	if len(scopes) != 1 {
		t.Fatalf("ListScopes = %v, want exactly the one package", scopes)
	}
}

func TestFindSimilarScopesPrefersExactThenCaseInsensitive(t *testing.T) {
	in := intern.New(nil)
	exact := in.Intern("Vehicle")
	caseInsensitive := in.Intern("Other::vehicle")
	unrelated := in.Intern("Something::Else")
	scopes := []intern.ID{unrelated, caseInsensitive, exact}

	target := in.Intern("Target::Vehicle")
	got := FindSimilarScopes(in, target, scopes, 2)
	if len(got) != 2 || got[0] != exact {
		t.Fatalf("got = %v, want exact match (%v) ranked first", got, exact)
	}
}
