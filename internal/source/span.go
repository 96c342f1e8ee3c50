package source

import "fmt"

// Span represents a contiguous byte range within a source file.
type Span struct {
	File  FileID
	Start uint32 // inclusive
	End   uint32 // exclusive
}

// Empty reports whether the span has zero length.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Len returns the length of the span in bytes.
func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span enclosing both spans.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// IsLeftOf reports whether this span starts before another span.
func (s Span) IsLeftOf(other Span) bool {
	return s.File == other.File && s.Start < other.Start
}

// ZeroWidthAtStart returns a zero-length span at this span's start, used for
// point diagnostics and insertions.
func (s Span) ZeroWidthAtStart() Span {
	return Span{File: s.File, Start: s.Start, End: s.Start}
}

// Range bundles a byte Span with its resolved line/column endpoints, so
// elements carry both representations without re-resolving on every read
// (the parser — out of scope here — fills Range in once at construction).
type Range struct {
	File        FileID
	StartLine   uint32
	StartCol    uint32
	StartOffset uint32
	EndLine     uint32
	EndCol      uint32
	EndOffset   uint32
}

// Span projects a Range down to its byte-offset Span.
func (r Range) Span() Span {
	return Span{File: r.File, Start: r.StartOffset, End: r.EndOffset}
}
