package validate

import "github.com/BurntSushi/toml"

// Options is the flat set of boolean rule gates and the one integer limit
// spec.md §6 "Validation options" describes. Each rule consults its own
// flag; a disabled rule emits no diagnostics and does not affect the
// has-errors latch. Pass 1 still builds the symbol table when
// CheckDuplicateNames is off, since later passes resolve names through it.
type Options struct {
	CheckDuplicateNames     bool `toml:"check_duplicate_names"`
	CheckUndefinedTypes     bool `toml:"check_undefined_types"`
	CheckTypeCompatibility  bool `toml:"check_type_compatibility"`
	CheckCircularSpecs      bool `toml:"check_circular_specs"`
	CheckMultiplicity       bool `toml:"check_multiplicity"`
	CheckUndefinedFeatures  bool `toml:"check_undefined_features"`
	CheckRedefinitionCompat bool `toml:"check_redefinition_compat"`
	CheckUndefinedNamespaces bool `toml:"check_undefined_namespaces"`
	WarnAbstractInstantiation bool `toml:"warn_abstract_instantiation"`
	SuggestCorrections      bool `toml:"suggest_corrections"`

	MaxSuggestions int `toml:"max_suggestions"`
}

// DefaultOptions enables every rule with a conservative suggestion count,
// matching the teacher's own all-checks-on default for its lint/sema
// option records.
func DefaultOptions() Options {
	return Options{
		CheckDuplicateNames:       true,
		CheckUndefinedTypes:       true,
		CheckTypeCompatibility:    true,
		CheckCircularSpecs:        true,
		CheckMultiplicity:         true,
		CheckUndefinedFeatures:    true,
		CheckRedefinitionCompat:   true,
		CheckUndefinedNamespaces:  true,
		WarnAbstractInstantiation: true,
		SuggestCorrections:        true,
		MaxSuggestions:            5,
	}
}

// LoadTOML populates o from a TOML config file, leaving fields the file
// omits at their current values (so callers typically start from
// DefaultOptions before calling LoadTOML).
func (o *Options) LoadTOML(path string) error {
	_, err := toml.DecodeFile(path, o)
	return err
}
