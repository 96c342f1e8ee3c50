package model

import (
	"testing"

	"sysml2/internal/intern"
)

func TestIsDefinitionAndIsUsage(t *testing.T) {
	defs := []ElementKind{KindPartDef, KindItemDef, KindMetadataDef, KindKerMLClassifier}
	for _, k := range defs {
		if !IsDefinition(k) {
			t.Errorf("IsDefinition(%d) = false, want true", k)
		}
		if IsUsage(k) {
			t.Errorf("IsUsage(%d) = true, want false", k)
		}
	}

	usages := []ElementKind{KindPartUsage, KindParameter, KindMetadataUsage, KindKerMLFeature}
	for _, k := range usages {
		if !IsUsage(k) {
			t.Errorf("IsUsage(%d) = false, want true", k)
		}
		if IsDefinition(k) {
			t.Errorf("IsDefinition(%d) = true, want false", k)
		}
	}

	if IsDefinition(KindPackage) || IsUsage(KindPackage) {
		t.Errorf("KindPackage must be neither a definition nor a usage")
	}
	if !IsPackage(KindPackage) {
		t.Errorf("IsPackage(KindPackage) = false, want true")
	}
}

func TestElementCloneIsIndependent(t *testing.T) {
	e := &Element{
		ID:      intern.ID(1),
		Kind:    KindPartUsage,
		TypedBy: []intern.ID{2, 3},
		Multiplicity: &Multiplicity{Lower: "0", Upper: "1", HasLower: true, HasUpper: true},
	}
	c := e.Clone()
	c.TypedBy[0] = 99
	c.Multiplicity.Lower = "5"

	if e.TypedBy[0] != 2 {
		t.Fatalf("Clone aliased TypedBy slice: original mutated to %d", e.TypedBy[0])
	}
	if e.Multiplicity.Lower != "0" {
		t.Fatalf("Clone aliased Multiplicity: original mutated to %q", e.Multiplicity.Lower)
	}
}

func TestModelElementByID(t *testing.T) {
	m := New("test")
	m.Elements = append(m.Elements, &Element{ID: intern.ID(1)}, &Element{ID: intern.ID(2)})

	if got := m.ElementByID(intern.ID(2)); got == nil || got.ID != intern.ID(2) {
		t.Fatalf("ElementByID(2) = %v, want element with ID 2", got)
	}
	if got := m.ElementByID(intern.ID(99)); got != nil {
		t.Fatalf("ElementByID(99) = %v, want nil", got)
	}
}

func TestModelCloneIsShallowButIndependentSlices(t *testing.T) {
	m := New("test")
	e1 := &Element{ID: intern.ID(1)}
	m.Elements = append(m.Elements, e1)

	c := m.Clone()
	c.Elements = append(c.Elements, &Element{ID: intern.ID(2)})

	if len(m.Elements) != 1 {
		t.Fatalf("Clone shared backing slice with original: len(m.Elements) = %d", len(m.Elements))
	}
	if c.Elements[0] != e1 {
		t.Fatalf("Clone did not preserve the original element pointer")
	}
}
