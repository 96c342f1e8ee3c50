package diag

import "fmt"

// Code identifies the kind of a diagnostic. Codes are stable across
// releases: once assigned, a code's meaning never changes, only its
// message wording may be refined.
type Code uint16

const (
	// UnknownCode is never emitted by a pass; it is the zero value guard.
	UnknownCode Code = 0

	// Pass 1: duplicate declaration detection.
	ErrDuplicateSymbol Code = 3004

	// Pass 2: type-reference resolution and compatibility.
	ErrUnresolvedTypeRef  Code = 3001
	ErrIncompatibleTyping Code = 3006

	// Pass 3: cycle detection across typed_by/specializes/references.
	ErrCycleDetected Code = 3005

	// Pass 4: multiplicity bound parsing.
	ErrInvalidMultiplicity Code = 3007

	// Pass 5: redefinition resolution and narrowing. ErrUndefinedFeature
	// covers both "not found in the inheritance chain" and "qualified
	// reference unresolved"; ErrRedefinitionTypeMismatch covers both
	// narrowing violations (type-not-a-subtype and multiplicity-widens).
	ErrUndefinedFeature         Code = 3002
	ErrRedefinitionTypeMismatch Code = 3008

	// Pass 6: import resolution.
	ErrUnresolvedImport Code = 3003

	// Pass 7: abstract-instantiation warning (deprecated code slot, kept
	// stable on purpose — see SPEC_FULL.md §9).
	WarnAbstractInstantiated Code = 1003
)

var codeDescription = map[Code]string{
	UnknownCode:                 "unknown diagnostic",
	ErrDuplicateSymbol:          "duplicate symbol declaration in scope",
	ErrUnresolvedTypeRef:        "unresolved type reference",
	ErrIncompatibleTyping:       "incompatible typed_by/specializes target",
	ErrCycleDetected:            "cyclic type relationship",
	ErrInvalidMultiplicity:      "invalid multiplicity bound",
	ErrUndefinedFeature:         "redefinition target not found in parent type's inheritance chain",
	ErrRedefinitionTypeMismatch: "redefinition narrows the original feature incompatibly",
	ErrUnresolvedImport:         "unresolved import target",
	WarnAbstractInstantiated:    "instantiation of an abstract definition",
}

// ID renders the stable wire form of the code: "E3004" for errors in the
// 3000 range, "W1003" for the one warning code the taxonomy keeps outside
// it (a deliberately preserved legacy slot, see SPEC_FULL.md §9).
func (c Code) ID() string {
	switch {
	case c == WarnAbstractInstantiated:
		return fmt.Sprintf("W%04d", uint16(c))
	case uint16(c) >= 3000 && uint16(c) < 4000:
		return fmt.Sprintf("E%04d", uint16(c))
	default:
		return fmt.Sprintf("E%04d", uint16(c))
	}
}

// Title returns the human-readable description registered for c.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
