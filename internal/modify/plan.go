package modify

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"sysml2/internal/intern"
	"sysml2/internal/model"
	"sysml2/internal/query"
)

// Op is one step of a Plan: either a delete (Patterns non-empty) or a set
// (Fragment set), never both, per spec §6 "Modifier plan format".
type Op struct {
	DeletePatterns []string `toml:"delete"`

	FragmentPath string `toml:"fragment"`
	TargetScope  string `toml:"target_scope"`
	CreateScope  bool   `toml:"create_scope"`
}

// Plan is an ordered list of delete/set operations with a dry-run flag,
// typically loaded from TOML by the CLI driver.
type Plan struct {
	DryRun bool `toml:"dry_run"`
	Ops    []Op `toml:"op"`
}

// LoadPlanTOML decodes a Plan from path.
func LoadPlanTOML(path string) (*Plan, error) {
	var p Plan
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return nil, fmt.Errorf("modify: loading plan %s: %w", path, err)
	}
	return &p, nil
}

// Report accumulates per-op outcomes for a whole Plan application.
type Report struct {
	Deleted  int
	Added    int
	Replaced int
}

// loadFragment is supplied by the caller (the CLI owns snapshot I/O; this
// package has no file access of its own, per spec §6 "Persisted state:
// none").
type loadFragment func(path string) (*model.Model, error)

// Apply runs every op of p against m in order, returning the final model
// and an aggregate Report. If p.DryRun, m is returned unchanged and the
// report reflects what would have happened.
func Apply(in *intern.Interner, m *model.Model, p *Plan, load loadFragment) (*model.Model, Report, error) {
	var report Report
	current := m
	for _, op := range p.Ops {
		if len(op.DeletePatterns) > 0 {
			patterns := make([]query.Pattern, len(op.DeletePatterns))
			for i, raw := range op.DeletePatterns {
				patterns[i] = query.Parse(raw)
			}
			if p.DryRun {
				_, n := Delete(in, current, patterns)
				report.Deleted += n
				continue
			}
			next, n := Delete(in, current, patterns)
			current = next
			report.Deleted += n
			continue
		}

		frag, err := load(op.FragmentPath)
		if err != nil {
			return nil, report, err
		}
		targetScope := in.Intern(op.TargetScope)
		if p.DryRun {
			_, rep, err := Merge(in, current, frag, targetScope, op.CreateScope)
			if err != nil {
				return nil, report, err
			}
			report.Added += rep.Added
			report.Replaced += rep.Replaced
			continue
		}
		next, rep, err := Merge(in, current, frag, targetScope, op.CreateScope)
		if err != nil {
			return nil, report, err
		}
		current = next
		report.Added += rep.Added
		report.Replaced += rep.Replaced
	}
	return current, report, nil
}
