// Package intern implements string interning atop a bump Arena: every
// distinct byte sequence handed to Intern is copied once into arena storage
// and given a stable ID, so equal strings become equal IDs and every later
// comparison is a pointer/integer comparison instead of a byte comparison.
package intern

import (
	"hash/fnv"

	"sysml2/internal/arena"
)

// ID is a handle to an interned string. The zero value, NoID, never
// resolves to a real string.
type ID uint32

// NoID is the sentinel for "absent" in every Element/Symbol/Import field
// that may legitimately have no value.
const NoID ID = 0

// IsValid reports whether id was produced by a real Intern call.
func (id ID) IsValid() bool { return id != NoID }

type entry struct {
	hash uint64
	text string
	id   ID
}

// Interner deduplicates byte sequences into arena-owned storage. It is a
// single-session, single-threaded structure (§5): callers serialize access,
// matching the rest of the core.
type Interner struct {
	arena   *arena.Arena
	buckets map[uint64][]ID // hash -> candidate ids (chained on collision)
	entries []entry         // index 0 reserved for NoID
}

// New creates an empty Interner backed by a fresh Arena, or the given one if
// non-nil (so a session can share one Arena across the Interner and other
// transient allocations).
func New(a *arena.Arena) *Interner {
	if a == nil {
		a = arena.New(0)
	}
	in := &Interner{
		arena:   a,
		buckets: make(map[uint64][]ID),
		entries: make([]entry, 1), // entries[0] is the NoID sentinel
	}
	return in
}

func fnv1a(b []byte) uint64 {
	h := fnv.New64a()
	h.Write(b) //nolint:errcheck // hash.Hash.Write never returns an error
	return h.Sum64()
}

// Intern inserts s (copying its bytes into arena storage on first sight)
// and returns its ID. A later call with an equal byte sequence returns the
// same ID — interning is idempotent.
func (in *Interner) Intern(s string) ID {
	return in.InternBytes([]byte(s))
}

// InternBytes is Intern for a byte slice, avoiding an allocation when the
// caller already has one (e.g. a substring view from a parser buffer).
func (in *Interner) InternBytes(b []byte) ID {
	if len(b) == 0 {
		return NoID
	}
	h := fnv1a(b)
	for _, candidate := range in.buckets[h] {
		if in.entries[candidate].text == string(b) {
			return candidate
		}
	}
	stored := in.arena.AllocString(string(b))
	id := ID(len(in.entries))
	in.entries = append(in.entries, entry{hash: h, text: stored, id: id})
	in.buckets[h] = append(in.buckets[h], id)
	return id
}

// Lookup returns the string for id, or ("", false) if id is invalid.
func (in *Interner) Lookup(id ID) (string, bool) {
	if !id.IsValid() || int(id) >= len(in.entries) {
		return "", false
	}
	return in.entries[id].text, true
}

// MustLookup is Lookup but panics on an invalid ID; used at call sites that
// already established validity (e.g. a Symbol's Name field).
func (in *Interner) MustLookup(id ID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic("intern: invalid string ID")
	}
	return s
}

// Count returns the number of distinct interned strings (excluding NoID).
func (in *Interner) Count() int {
	return len(in.entries) - 1
}
