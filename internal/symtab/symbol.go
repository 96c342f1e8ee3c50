package symtab

import (
	"sysml2/internal/intern"
	"sysml2/internal/model"
)

// Symbol is the (name, qualified-id, element) triple a scope stores for
// lookup, chained within its bucket so redeclarations and overloads share
// a name without one overwriting the other.
type Symbol struct {
	Name        intern.ID
	QualifiedID intern.ID
	Element     *model.Element
}
