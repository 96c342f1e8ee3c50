package modify

import (
	"strings"

	"github.com/agext/levenshtein"

	"sysml2/internal/intern"
	"sysml2/internal/model"
)

// ListScopes returns the ids of every package element in m, in element
// order.
func ListScopes(m *model.Model) []intern.ID {
	var out []intern.ID
	for _, e := range m.Elements {
		if model.IsPackage(e.Kind) {
			out = append(out, e.ID)
		}
	}
	return out
}

// FindSimilarScopes ranks scopes against target's local name — the part
// after its last "::" — preferring, in order: an exact local-name match,
// a case-insensitive local match, a prefix-overlap match, then bounded
// Levenshtein distance. Returns at most max ids.
func FindSimilarScopes(in *intern.Interner, target intern.ID, scopes []intern.ID, max int) []intern.ID {
	targetName, ok := in.Lookup(target)
	if !ok || max <= 0 {
		return nil
	}
	targetLocal := localName(targetName)
	targetLower := strings.ToLower(targetLocal)

	type scored struct {
		id    intern.ID
		tier  int
		score int
	}
	var candidates []scored
	for _, s := range scopes {
		if s == target {
			continue
		}
		name, ok := in.Lookup(s)
		if !ok {
			continue
		}
		local := localName(name)
		switch {
		case local == targetLocal:
			candidates = append(candidates, scored{s, 0, 0})
		case strings.EqualFold(local, targetLocal):
			candidates = append(candidates, scored{s, 1, 0})
		case strings.HasPrefix(local, targetLower) || strings.HasPrefix(targetLower, strings.ToLower(local)):
			candidates = append(candidates, scored{s, 2, -commonPrefixLen(strings.ToLower(local), targetLower)})
		default:
			d := levenshtein.Distance(local, targetLocal, nil)
			candidates = append(candidates, scored{s, 3, d})
		}
	}

	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && (candidates[j-1].tier > candidates[j].tier ||
			(candidates[j-1].tier == candidates[j].tier && candidates[j-1].score > candidates[j].score)); j-- {
			candidates[j-1], candidates[j] = candidates[j], candidates[j-1]
		}
	}

	if len(candidates) > max {
		candidates = candidates[:max]
	}
	out := make([]intern.ID, len(candidates))
	for i, c := range candidates {
		out[i] = c.id
	}
	return out
}

func localName(qualified string) string {
	if idx := strings.LastIndex(qualified, "::"); idx >= 0 {
		return qualified[idx+2:]
	}
	return qualified
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
