package diag

import "sysml2/internal/source"

// Note provides auxiliary context for a diagnostic message, anchored at its
// own span (e.g. "first defined here").
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic captures a single issue surfaced by validation or modification.
// Notes and Help are kept as separate ordered lists: a Note points at other
// source locations relevant to the diagnostic, while a Help string is a
// standalone textual suggestion (e.g. a "did you mean?" produced by the
// query engine's similarity search) with no span of its own.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Help     []string
}
