// Package snapshot (de)serializes a Semantic Model to msgpack, the way the
// teacher's internal/driver.DiskCache (de)serializes a ModuleMeta: a
// versioned, string-keyed wire struct and atomic temp-file-then-rename
// writes. Unlike DiskCache, ranges are not dropped: the validator's
// diagnostics are only useful if a loaded snapshot can still point back
// at a line and column, so each Range's originating file path travels
// with it (source.FileSet.FileID is a session-local index; a path is
// the only part of a Range that means anything after a round trip).
// Load re-reads those paths from disk to rebuild a *source.FileSet —
// source.FileSet's own doc comment calls this out as its one caller
// that populates a FileSet from disk rather than from a live parse.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"sysml2/internal/intern"
	"sysml2/internal/model"
	"sysml2/internal/source"
)

// schemaVersion guards against loading a snapshot written by an
// incompatible wire format.
const schemaVersion uint16 = 1

// Snapshot is the wire-format mirror of a model.Model: every intern.ID
// field is written out as its raw string, and every Range is written out
// against Files (an index into the snapshot's own deduplicated path
// list) rather than a FileID, since FileIDs only mean something within
// the *source.FileSet that produced them.
type Snapshot struct {
	Schema        uint16
	SourceName    string
	Files         []string
	Elements      []elementPayload
	Relationships []relationshipPayload
	Imports       []importPayload
	Aliases       []aliasPayload
}

// rangePayload mirrors source.Range with FileID replaced by FileIndex, an
// index into Snapshot.Files, or -1 if the element carries no range (a
// model built without a backing FileSet, e.g. directly by a test).
type rangePayload struct {
	FileIndex                                  int32
	StartLine, StartCol, StartOffset           uint32
	EndLine, EndCol, EndOffset                 uint32
}

type multiplicityPayload struct {
	Lower, Upper       string
	HasLower, HasUpper bool
}

type bodyStatementPayload struct {
	Kind uint8
	Name string
	Text string
}

type elementPayload struct {
	ID, Name, ParentID string
	Kind                uint16
	TypedBy, Specializes, Redefines, References []string
	Multiplicity *multiplicityPayload
	Default      string
	Abstract, Variation, Readonly, Derived, Ref bool
	Direction      uint8
	Visibility     uint8
	Documentation  string
	MetadataPrefix []string
	MetadataBody   []string
	Body           []bodyStatementPayload
	Range          rangePayload
}

type relationshipPayload struct {
	Kind           uint8
	Source, Target string
	Range          rangePayload
}

type importPayload struct {
	OwnerScope, Target string
	Kind               uint8
	Visibility         bool
	Range              rangePayload
}

type aliasPayload struct {
	Name, Target string
	Range        rangePayload
}

// Save encodes m (interned against in) to path, writing through a temp
// file in the same directory and renaming into place atomically. fs
// resolves each Range's FileID to a path for storage; pass nil if m
// carries no ranges worth preserving (e.g. a model built directly by a
// test), in which case every Range round-trips as the zero value.
func Save(path string, in *intern.Interner, m *model.Model, fs *source.FileSet) error {
	snap := toSnapshot(in, m, fs)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("snapshot: creating directory for %s: %w", path, err)
	}
	f, err := os.CreateTemp(filepath.Dir(path), "snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("snapshot: creating temp file: %w", err)
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	if err := msgpack.NewEncoder(f).Encode(snap); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: encoding %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot: closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("snapshot: renaming into place: %w", err)
	}
	return nil
}

// DecodeFile reads and schema-checks the snapshot at path, without
// touching any interner or FileSet. It has no shared mutable state, so a
// caller may run it concurrently (one goroutine per path, per spec.md §5)
// ahead of the single-threaded BuildModel/intern step every path's result
// still has to go through before validation.
func DecodeFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: opening %s: %w", path, err)
	}
	defer f.Close()

	var snap Snapshot
	if err := msgpack.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("snapshot: decoding %s: %w", path, err)
	}
	if snap.Schema != schemaVersion {
		return nil, fmt.Errorf("snapshot: %s has schema %d, want %d", path, snap.Schema, schemaVersion)
	}
	return &snap, nil
}

// BuildModel re-interns snap's strings against in and registers its
// referenced source files in fs, returning the resulting model.Model. in
// and fs are both shared, mutated state — the caller serializes calls to
// BuildModel the way it serializes every other write to a session's
// Interner (intern.go's own doc comment: "callers serialize access"), even
// if the snapshots themselves were decoded concurrently via DecodeFile. A
// referenced path that can no longer be read from disk (moved, deleted) is
// registered as an empty virtual file instead of failing the build; a
// diagnostic whose range points there still renders, but against a file
// with no lines, so its location comes out as line 1.
func BuildModel(in *intern.Interner, fs *source.FileSet, snap *Snapshot) *model.Model {
	fileIDs := make([]source.FileID, len(snap.Files))
	for i, p := range snap.Files {
		content, err := os.ReadFile(p)
		if err != nil {
			fileIDs[i] = fs.AddVirtual(p, nil)
			continue
		}
		fileIDs[i] = fs.Add(p, content, 0)
	}
	return fromSnapshot(in, snap, fileIDs)
}

// Load is the single-snapshot convenience form of DecodeFile+BuildModel: it
// mints a fresh *intern.Interner and *source.FileSet and builds the one
// model against them.
func Load(path string) (*model.Model, *intern.Interner, *source.FileSet, error) {
	snap, err := DecodeFile(path)
	if err != nil {
		return nil, nil, nil, err
	}
	in := intern.New(nil)
	fs := source.NewFileSet()
	return BuildModel(in, fs, snap), in, fs, nil
}

func toSnapshot(in *intern.Interner, m *model.Model, fs *source.FileSet) *Snapshot {
	snap := &Snapshot{Schema: schemaVersion, SourceName: m.SourceName}
	fileIndex := make(map[source.FileID]int32)
	fileIndexOf := func(id source.FileID) int32 {
		if fs == nil {
			return -1
		}
		if idx, ok := fileIndex[id]; ok {
			return idx
		}
		idx := int32(len(snap.Files))
		snap.Files = append(snap.Files, fs.Get(id).Path)
		fileIndex[id] = idx
		return idx
	}
	toRange := func(r model.Range) rangePayload {
		return rangePayload{
			FileIndex:   fileIndexOf(r.File),
			StartLine:   r.StartLine,
			StartCol:    r.StartCol,
			StartOffset: r.StartOffset,
			EndLine:     r.EndLine,
			EndCol:      r.EndCol,
			EndOffset:   r.EndOffset,
		}
	}

	snap.Elements = make([]elementPayload, len(m.Elements))
	for i, e := range m.Elements {
		snap.Elements[i] = elementPayload{
			ID:             lookup(in, e.ID),
			Name:           lookup(in, e.Name),
			ParentID:       lookup(in, e.ParentID),
			Kind:           uint16(e.Kind),
			TypedBy:        lookupAll(in, e.TypedBy),
			Specializes:    lookupAll(in, e.Specializes),
			Redefines:      lookupAll(in, e.Redefines),
			References:     lookupAll(in, e.References),
			Multiplicity:   toMultiplicityPayload(e.Multiplicity),
			Default:        lookup(in, e.Default),
			Abstract:       e.Abstract,
			Variation:      e.Variation,
			Readonly:       e.Readonly,
			Derived:        e.Derived,
			Ref:            e.Ref,
			Direction:      uint8(e.Direction),
			Visibility:     uint8(e.Visibility),
			Documentation:  lookup(in, e.Documentation),
			MetadataPrefix: lookupAll(in, e.MetadataPrefix),
			MetadataBody:   lookupAll(in, e.MetadataBody),
			Body:           toBodyPayload(in, e.Body),
			Range:          toRange(e.Range),
		}
	}

	snap.Relationships = make([]relationshipPayload, len(m.Relationships))
	for i, r := range m.Relationships {
		snap.Relationships[i] = relationshipPayload{
			Kind:   uint8(r.Kind),
			Source: lookup(in, r.Source),
			Target: lookup(in, r.Target),
			Range:  toRange(r.Range),
		}
	}

	snap.Imports = make([]importPayload, len(m.Imports))
	for i, im := range m.Imports {
		snap.Imports[i] = importPayload{
			OwnerScope: lookup(in, im.OwnerScope),
			Target:     lookup(in, im.Target),
			Kind:       uint8(im.Kind),
			Visibility: im.Visibility,
			Range:      toRange(im.Range),
		}
	}

	snap.Aliases = make([]aliasPayload, len(m.Aliases))
	for i, a := range m.Aliases {
		snap.Aliases[i] = aliasPayload{Name: lookup(in, a.Name), Target: lookup(in, a.Target), Range: toRange(a.Range)}
	}

	return snap
}

func fromSnapshot(in *intern.Interner, snap *Snapshot, fileIDs []source.FileID) *model.Model {
	m := model.New(snap.SourceName)

	m.Elements = make([]*model.Element, len(snap.Elements))
	for i, p := range snap.Elements {
		m.Elements[i] = &model.Element{
			ID:             internNonEmpty(in, p.ID),
			Name:           internNonEmpty(in, p.Name),
			ParentID:       internNonEmpty(in, p.ParentID),
			Kind:           model.ElementKind(p.Kind),
			TypedBy:        internAll(in, p.TypedBy),
			Specializes:    internAll(in, p.Specializes),
			Redefines:      internAll(in, p.Redefines),
			References:     internAll(in, p.References),
			Multiplicity:   fromMultiplicityPayload(p.Multiplicity),
			Default:        internNonEmpty(in, p.Default),
			Abstract:       p.Abstract,
			Variation:      p.Variation,
			Readonly:       p.Readonly,
			Derived:        p.Derived,
			Ref:            p.Ref,
			Direction:      model.Direction(p.Direction),
			Visibility:     model.Visibility(p.Visibility),
			Documentation:  internNonEmpty(in, p.Documentation),
			MetadataPrefix: internAll(in, p.MetadataPrefix),
			MetadataBody:   internAll(in, p.MetadataBody),
			Body:           fromBodyPayload(in, p.Body),
			Range:          fromRangePayload(p.Range, fileIDs),
		}
	}

	m.Relationships = make([]*model.Relationship, len(snap.Relationships))
	for i, p := range snap.Relationships {
		m.Relationships[i] = &model.Relationship{
			Kind:   model.RelationshipKind(p.Kind),
			Source: internNonEmpty(in, p.Source),
			Target: internNonEmpty(in, p.Target),
			Range:  fromRangePayload(p.Range, fileIDs),
		}
	}

	m.Imports = make([]*model.Import, len(snap.Imports))
	for i, p := range snap.Imports {
		m.Imports[i] = &model.Import{
			OwnerScope: internNonEmpty(in, p.OwnerScope),
			Target:     internNonEmpty(in, p.Target),
			Kind:       model.ImportKind(p.Kind),
			Visibility: p.Visibility,
			Range:      fromRangePayload(p.Range, fileIDs),
		}
	}

	m.Aliases = make([]*model.Alias, len(snap.Aliases))
	for i, p := range snap.Aliases {
		m.Aliases[i] = &model.Alias{Name: internNonEmpty(in, p.Name), Target: internNonEmpty(in, p.Target), Range: fromRangePayload(p.Range, fileIDs)}
	}

	return m
}

// fromRangePayload rebuilds a model.Range from its wire form. FileIndex is
// an index into the fileIDs BuildModel assigned while registering
// snap.Files in the same order.
func fromRangePayload(p rangePayload, fileIDs []source.FileID) model.Range {
	if p.FileIndex < 0 || int(p.FileIndex) >= len(fileIDs) {
		return model.Range{}
	}
	return model.Range{
		File:        fileIDs[p.FileIndex],
		StartLine:   p.StartLine,
		StartCol:    p.StartCol,
		StartOffset: p.StartOffset,
		EndLine:     p.EndLine,
		EndCol:      p.EndCol,
		EndOffset:   p.EndOffset,
	}
}

func lookup(in *intern.Interner, id intern.ID) string {
	if !id.IsValid() {
		return ""
	}
	s, _ := in.Lookup(id)
	return s
}

func lookupAll(in *intern.Interner, ids []intern.ID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = lookup(in, id)
	}
	return out
}

func internNonEmpty(in *intern.Interner, s string) intern.ID {
	if s == "" {
		return intern.NoID
	}
	return in.Intern(s)
}

func internAll(in *intern.Interner, ss []string) []intern.ID {
	if len(ss) == 0 {
		return nil
	}
	out := make([]intern.ID, len(ss))
	for i, s := range ss {
		out[i] = internNonEmpty(in, s)
	}
	return out
}

func toMultiplicityPayload(m *model.Multiplicity) *multiplicityPayload {
	if m == nil {
		return nil
	}
	return &multiplicityPayload{Lower: m.Lower, Upper: m.Upper, HasLower: m.HasLower, HasUpper: m.HasUpper}
}

func fromMultiplicityPayload(p *multiplicityPayload) *model.Multiplicity {
	if p == nil {
		return nil
	}
	return &model.Multiplicity{Lower: p.Lower, Upper: p.Upper, HasLower: p.HasLower, HasUpper: p.HasUpper}
}

func toBodyPayload(in *intern.Interner, body []model.BodyStatement) []bodyStatementPayload {
	if len(body) == 0 {
		return nil
	}
	out := make([]bodyStatementPayload, len(body))
	for i, b := range body {
		out[i] = bodyStatementPayload{Kind: uint8(b.Kind), Name: lookup(in, b.Name), Text: lookup(in, b.Text)}
	}
	return out
}

func fromBodyPayload(in *intern.Interner, body []bodyStatementPayload) []model.BodyStatement {
	if len(body) == 0 {
		return nil
	}
	out := make([]model.BodyStatement, len(body))
	for i, b := range body {
		out[i] = model.BodyStatement{
			Kind: model.BodyStatementKind(b.Kind),
			Name: internNonEmpty(in, b.Name),
			Text: internNonEmpty(in, b.Text),
		}
	}
	return out
}
