package model

import (
	"sysml2/internal/intern"
	"sysml2/internal/source"
)

// Range is the source location carried by every Element, Import, and
// Relationship: a byte Span plus its resolved line/column endpoints, filled
// in once by the (out-of-scope) parser at construction time so writers
// never need to re-resolve it (spec §6 "Source ranges").
type Range = source.Range

// Direction is the optional flow/parameter direction tag.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionIn
	DirectionOut
	DirectionInOut
)

// Visibility is the optional member-visibility tag.
type Visibility uint8

const (
	VisibilityPublic Visibility = iota
	VisibilityPrivate
	VisibilityProtected
)

// Multiplicity holds the raw, as-written multiplicity bound strings; Pass 4
// of the validator (internal/validate) parses them into numeric bounds and
// reports E3007 on failure. Kept raw here because an unparsed bound is
// itself a valid (if erroneous) thing to carry until validation runs.
type Multiplicity struct {
	Lower    string
	Upper    string
	HasLower bool
	HasUpper bool
}

// BodyStatement is a generic attached body item: control-flow, connector,
// or state-behavior content the parser captured but whose internal
// structure this core does not interpret, except for shorthand feature
// statements, whose Name drives the merge transform's union-merge rule
// (spec §4.F step 6).
type BodyStatement struct {
	Kind BodyStatementKind
	Name intern.ID // populated only for BodyKindShorthandFeature
	Text intern.ID
}

// BodyStatementKind classifies a BodyStatement.
type BodyStatementKind uint8

const (
	BodyKindGeneric BodyStatementKind = iota
	BodyKindControlFlow
	BodyKindConnector
	BodyKindStateBehavior
	BodyKindShorthandFeature
)

// Element is a named or anonymous model node: a package, definition, usage,
// parameter, comment, textual representation, or similar. Elements are
// never mutated after the parser emits them, except by the modifier, which
// always produces fresh arena-owned copies (spec §3 "Element").
type Element struct {
	ID       intern.ID // qualified path, e.g. "A::B::C"
	Name     intern.ID // last segment; intern.NoID if anonymous
	Kind     ElementKind
	ParentID intern.ID // intern.NoID at top level
	Range    Range

	TypedBy     []intern.ID
	Specializes []intern.ID
	Redefines   []intern.ID
	References  []intern.ID

	Multiplicity *Multiplicity
	Default      intern.ID

	Abstract  bool
	Variation bool
	Readonly  bool
	Derived   bool
	Ref       bool

	Direction  Direction
	Visibility Visibility

	Documentation intern.ID
	MetadataPrefix []intern.ID
	MetadataBody   []intern.ID
	Body           []BodyStatement
}

// Clone returns a deep copy of e suitable for a modifier transform to
// mutate without aliasing the original's slices.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	out := *e
	out.TypedBy = append([]intern.ID(nil), e.TypedBy...)
	out.Specializes = append([]intern.ID(nil), e.Specializes...)
	out.Redefines = append([]intern.ID(nil), e.Redefines...)
	out.References = append([]intern.ID(nil), e.References...)
	out.MetadataPrefix = append([]intern.ID(nil), e.MetadataPrefix...)
	out.MetadataBody = append([]intern.ID(nil), e.MetadataBody...)
	out.Body = append([]BodyStatement(nil), e.Body...)
	if e.Multiplicity != nil {
		m := *e.Multiplicity
		out.Multiplicity = &m
	}
	return &out
}
