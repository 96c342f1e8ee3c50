package model

import "sysml2/internal/intern"

// Model is the Semantic Model: an owned tuple of four ordered sequences
// (spec §3). It is produced by the (out-of-scope) parser, read by the
// validator, and consumed/produced by the modifier — which always returns
// a fresh Model rather than mutating its inputs (spec §8 "Modifier purity").
type Model struct {
	SourceName    string
	Elements      []*Element
	Relationships []*Relationship
	Imports       []*Import
	Aliases       []*Alias
}

// New returns an empty Model for the given source name.
func New(sourceName string) *Model {
	return &Model{SourceName: sourceName}
}

// ElementByID returns the element whose ID equals id, or nil if none. This
// is a linear scan over Elements; callers that need repeated lookups build
// a symtab.Table instead.
func (m *Model) ElementByID(id intern.ID) *Element {
	for _, e := range m.Elements {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Clone returns a shallow top-level copy of m: new slice headers, but the
// element/relationship/import/alias pointers are shared with m. Used by
// Delete when nothing matched (spec §4.F step 4 "shallow clone").
func (m *Model) Clone() *Model {
	return &Model{
		SourceName:    m.SourceName,
		Elements:      append([]*Element(nil), m.Elements...),
		Relationships: append([]*Relationship(nil), m.Relationships...),
		Imports:       append([]*Import(nil), m.Imports...),
		Aliases:       append([]*Alias(nil), m.Aliases...),
	}
}
