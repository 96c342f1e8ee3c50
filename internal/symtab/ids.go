// Package symtab implements the two-level scoped symbol table: a scope
// index keyed by qualified path, and per-scope symbol buckets keyed by
// local name, plus each scope's ordered import-entry list.
package symtab

// ScopeID identifies a scope in the table's scope arena.
type ScopeID uint32

// NoScopeID marks the absence of a scope reference.
const NoScopeID ScopeID = 0

// IsValid reports whether id refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// SymbolID identifies a symbol in the table's symbol arena.
type SymbolID uint32

// NoSymbolID marks the absence of a symbol reference.
const NoSymbolID SymbolID = 0

// IsValid reports whether id refers to an allocated symbol.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }
