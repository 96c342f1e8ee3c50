package diag

// Severity ranks how serious a diagnostic is.
type Severity uint8

const (
	// SevNote is for auxiliary context attached to another diagnostic.
	SevNote Severity = iota
	// SevHelp is for advisory suggestions ("did you mean?"); absence of a
	// help diagnostic never changes validation status.
	SevHelp
	// SevWarning is for non-fatal rule violations (e.g. abstract instantiation).
	SevWarning
	// SevError is for rule violations that fail validation.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevNote:
		return "NOTE"
	case SevHelp:
		return "HELP"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
