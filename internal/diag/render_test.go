package diag

import (
	"testing"

	"sysml2/internal/source"
)

func TestFormatPlain(t *testing.T) {
	fs := source.NewFileSet()
	userFile := fs.AddVirtual("sample.sysml", []byte("a\nb\n"))

	diags := []*Diagnostic{
		{
			Severity: SevError,
			Code:     ErrUnresolvedTypeRef,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line"},
			},
			Help: []string{"did you mean 'Engine'?"},
		},
		{
			Severity: SevWarning,
			Code:     WarnAbstractInstantiated,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
	}

	expected := "help E3001 did you mean 'Engine'?\n" +
		"error E3001 sample.sysml:1:1 first line second\n" +
		"note E3001 sample.sysml:2:1 note line\n" +
		"warning W1003 sample.sysml:2:1 another"

	if got := FormatPlain(diags, fs, true); got != expected {
		t.Fatalf("unexpected plain rendering:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatPlainEmpty(t *testing.T) {
	fs := source.NewFileSet()
	if got := FormatPlain(nil, fs, true); got != "" {
		t.Fatalf("expected empty string for no diagnostics, got %q", got)
	}
}

func TestFormatPlainExcludesNotesWhenDisabled(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("sample.sysml", []byte("a\n"))
	diags := []*Diagnostic{
		{
			Severity: SevError,
			Code:     ErrCycleDetected,
			Message:  "cycle",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes:    []Note{{Span: source.Span{File: file, Start: 0, End: 1}, Msg: "via specializes"}},
		},
	}
	got := FormatPlain(diags, fs, false)
	want := "error E3005 sample.sysml:1:1 cycle"
	if got != want {
		t.Fatalf("FormatPlain(includeNotes=false) = %q, want %q", got, want)
	}
}
