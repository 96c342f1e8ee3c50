package diag

import "sysml2/internal/source"

// New constructs a Diagnostic with no notes or help hints attached.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

// NewError is New fixed at SevError, the common case for validator passes.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// NewWarning is New fixed at SevWarning.
func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

// WithNote appends a span-anchored note to d.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// WithHelp appends a standalone suggestion string (e.g. a "did you mean?"
// produced by a similarity search) with no span of its own.
func (d Diagnostic) WithHelp(msg string) Diagnostic {
	d.Help = append(d.Help, msg)
	return d
}
