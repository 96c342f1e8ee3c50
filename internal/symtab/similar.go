package symtab

import (
	"sort"

	"github.com/agext/levenshtein"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"sysml2/internal/intern"
)

// collator gives FindSimilar a locale-stable secondary sort key so ties in
// edit distance break the same way across platforms, rather than on Go's
// map iteration order or raw byte comparison.
var collator = collate.New(language.Und)

type suggestion struct {
	name     intern.ID
	distance int
	declOrd  int
}

// FindSimilar returns up to maxSuggestions symbol names similar to name,
// searching scope and every ancestor scope (spec §4.C "find_similar").
// The maximum allowed edit distance scales with name's length: 1 for names
// under 4 runes, 2 for names up to 8, 3 beyond that. Exact matches are
// excluded.
func (t *Table) FindSimilar(scope ScopeID, name string, maxSuggestions int) []intern.ID {
	if maxSuggestions <= 0 {
		return nil
	}
	threshold := thresholdFor(name)

	var candidates []suggestion
	ord := 0
	seen := make(map[intern.ID]bool)
	for cur := scope; cur.IsValid(); {
		s := t.Scope(cur)
		if s == nil {
			break
		}
		for _, localName := range s.order {
			if seen[localName] {
				continue
			}
			seen[localName] = true
			localStr, ok := t.interner.Lookup(localName)
			if !ok || localStr == name {
				continue
			}
			d := levenshtein.Distance(name, localStr, nil)
			if d > threshold {
				continue
			}
			candidates = append(candidates, suggestion{name: localName, distance: d, declOrd: ord})
			ord++
		}
		if cur == t.root {
			break
		}
		cur = s.Parent
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.distance != b.distance {
			return a.distance < b.distance
		}
		aStr, _ := t.interner.Lookup(a.name)
		bStr, _ := t.interner.Lookup(b.name)
		if c := collator.CompareString(aStr, bStr); c != 0 {
			return c < 0
		}
		return a.declOrd < b.declOrd
	})

	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}
	out := make([]intern.ID, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}
	return out
}

func thresholdFor(name string) int {
	n := len([]rune(name))
	switch {
	case n < 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}
