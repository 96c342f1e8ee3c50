package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"sysml2/internal/intern"
	"sysml2/internal/model"
	"sysml2/internal/source"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	in := intern.New(nil)
	fs := source.NewFileSet()
	srcPath := filepath.Join(t.TempDir(), "vehicle.sysml")
	if err := os.WriteFile(srcPath, []byte("part def Engine;\n"), 0o644); err != nil {
		t.Fatalf("writing source fixture: %v", err)
	}
	fileID := fs.Add(srcPath, []byte("part def Engine;\n"), 0)

	m := model.New("vehicle")
	m.Elements = append(m.Elements, &model.Element{
		ID:          in.Intern("Vehicle::Engine"),
		Name:        in.Intern("Engine"),
		ParentID:    in.Intern("Vehicle"),
		Kind:        model.KindPartDef,
		TypedBy:     []intern.ID{in.Intern("Component")},
		Multiplicity: &model.Multiplicity{Lower: "1", Upper: "1", HasLower: true, HasUpper: true},
		Abstract:    true,
		Range:       model.Range{File: fileID, StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 16, EndOffset: 15},
	})
	m.Imports = append(m.Imports, &model.Import{
		OwnerScope: in.Intern("Vehicle"),
		Target:     in.Intern("Std"),
		Kind:       model.ImportNamespaceWildcard,
		Visibility: true,
	})

	path := filepath.Join(t.TempDir(), "vehicle.snap")
	if err := Save(path, in, m, fs); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, loadedInterner, loadedFS, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.SourceName != m.SourceName {
		t.Errorf("SourceName = %q, want %q", loaded.SourceName, m.SourceName)
	}
	if len(loaded.Elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(loaded.Elements))
	}
	got := loaded.Elements[0]
	name, _ := loadedInterner.Lookup(got.ID)
	if name != "Vehicle::Engine" {
		t.Errorf("element ID = %q, want %q", name, "Vehicle::Engine")
	}
	if !got.Abstract {
		t.Errorf("expected Abstract to round-trip as true")
	}
	if got.Multiplicity == nil || got.Multiplicity.Lower != "1" {
		t.Errorf("multiplicity did not round-trip: %+v", got.Multiplicity)
	}
	if len(loaded.Imports) != 1 || loaded.Imports[0].Kind != model.ImportNamespaceWildcard {
		t.Fatalf("import did not round-trip: %+v", loaded.Imports)
	}
	if got.Range.StartLine != 1 || got.Range.EndCol != 16 {
		t.Errorf("range did not round-trip: %+v", got.Range)
	}
	reloadedFile := loadedFS.Get(got.Range.File)
	if reloadedFile.Path != srcPath {
		t.Errorf("rebuilt FileSet path = %q, want %q", reloadedFile.Path, srcPath)
	}
}

func TestLoadRejectsWrongSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.snap")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating file: %v", err)
	}
	if err := msgpack.NewEncoder(f).Encode(&Snapshot{Schema: schemaVersion + 1, SourceName: "bad"}); err != nil {
		t.Fatalf("encoding: %v", err)
	}
	f.Close()

	if _, _, _, err := Load(path); err == nil {
		t.Fatalf("expected Load to reject a mismatched schema version")
	}
}

// TestLoadToleratesMissingSourceFile exercises the degraded path: a
// snapshot referencing a source file that no longer exists on disk must
// still load, registering that path as an empty virtual file rather than
// failing outright.
func TestLoadToleratesMissingSourceFile(t *testing.T) {
	in := intern.New(nil)
	fs := source.NewFileSet()
	missing := filepath.Join(t.TempDir(), "gone.sysml")
	fileID := fs.Add(missing, []byte("part def P;\n"), 0)

	m := model.New("t")
	m.Elements = append(m.Elements, &model.Element{
		ID:    in.Intern("P"),
		Name:  in.Intern("P"),
		Kind:  model.KindPartDef,
		Range: model.Range{File: fileID, StartLine: 1, EndLine: 1},
	})

	path := filepath.Join(t.TempDir(), "p.snap")
	if err := Save(path, in, m, fs); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := os.Remove(missing); err != nil {
		t.Fatalf("removing source fixture: %v", err)
	}

	loaded, _, loadedFS, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(loaded.Elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(loaded.Elements))
	}
	f := loadedFS.Get(loaded.Elements[0].Range.File)
	if f.Path != missing {
		t.Errorf("expected the missing path to still be registered, got %q", f.Path)
	}
	if len(f.Content) != 0 {
		t.Errorf("expected empty content for a missing file, got %d bytes", len(f.Content))
	}
}

// TestBuildModelSharesInternerAcrossSnapshots mirrors cmd/sysml2 validate's
// concurrent-decode-then-serial-build split: two snapshots are decoded
// independently, then built against one shared Interner/FileSet so a
// qualified id referenced from both resolves to the same intern.ID.
func TestBuildModelSharesInternerAcrossSnapshots(t *testing.T) {
	inA := intern.New(nil)
	a := model.New("a")
	a.Elements = append(a.Elements, &model.Element{ID: inA.Intern("Shared"), Name: inA.Intern("Shared"), Kind: model.KindPackage})
	pathA := filepath.Join(t.TempDir(), "a.snap")
	if err := Save(pathA, inA, a, nil); err != nil {
		t.Fatalf("Save a: %v", err)
	}

	inB := intern.New(nil)
	b := model.New("b")
	b.Elements = append(b.Elements, &model.Element{ID: inB.Intern("Shared::Child"), Name: inB.Intern("Child"), ParentID: inB.Intern("Shared"), Kind: model.KindPartDef})
	pathB := filepath.Join(t.TempDir(), "b.snap")
	if err := Save(pathB, inB, b, nil); err != nil {
		t.Fatalf("Save b: %v", err)
	}

	snapA, err := DecodeFile(pathA)
	if err != nil {
		t.Fatalf("DecodeFile a: %v", err)
	}
	snapB, err := DecodeFile(pathB)
	if err != nil {
		t.Fatalf("DecodeFile b: %v", err)
	}

	shared := intern.New(nil)
	fs := source.NewFileSet()
	modelA := BuildModel(shared, fs, snapA)
	modelB := BuildModel(shared, fs, snapB)

	sharedID := shared.Intern("Shared")
	if modelA.Elements[0].ID != sharedID {
		t.Errorf("model a's Shared element did not resolve to the shared interner's id")
	}
	if modelB.Elements[0].ParentID != sharedID {
		t.Errorf("model b's Child.ParentID did not resolve to the same shared id as model a's Shared element")
	}
}
