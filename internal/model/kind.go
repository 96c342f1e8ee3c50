// Package model defines the Semantic Model: the flat, arena-backed tuple of
// Elements, Relationships, Imports, and Aliases that the (out-of-scope)
// parser produces and every other component in this repo consumes.
package model

// ElementKind is the single flat tag set every Element carries. Exactly one
// kind per element; polymorphism is this tag plus optional fields, never a
// type hierarchy (spec §9 "Polymorphism").
type ElementKind uint16

const (
	KindUnknown ElementKind = iota

	// KindPackage is a namespace container; "any" usage/definition/package
	// accepts a package as a type reference target (packages are containers).
	KindPackage

	// KindKerMLClassifier and KindKerMLFeature are the generic underlying-layer
	// tags used when an element is declared at the KerML level rather than as
	// a concrete SysML definition/usage.
	KindKerMLClassifier
	KindKerMLFeature

	KindPartDef
	KindItemDef
	KindOccurrenceDef
	KindActionDef
	KindCalcDef
	KindStateDef
	KindPortDef
	KindAttributeDef
	KindEnumerationDef
	KindDatatype
	KindRequirementDef
	KindConcernDef
	KindConstraintDef
	KindConnectionDef
	KindInterfaceDef
	KindFlowDef
	KindAllocationDef
	KindCaseDef
	KindAnalysisDef
	KindVerificationDef
	KindUseCaseDef
	KindViewDef
	KindViewpointDef
	KindRenderingDef
	KindMetadataDef

	KindPartUsage
	KindActionUsage
	KindPerformActionUsage
	KindStateUsage
	KindPortUsage
	KindAttributeUsage
	KindRequirementUsage
	KindConstraintUsage
	KindItemUsage
	KindOccurrenceUsage
	KindEventUsage
	KindConnectionUsage
	KindFlowUsage
	KindInterfaceUsage
	KindAllocationUsage
	KindCalcUsage
	KindCaseUsage
	KindAnalysisUsage
	KindVerificationUsage
	KindUseCaseUsage
	KindViewUsage
	KindViewpointUsage
	KindRenderingUsage
	KindConcernUsage
	KindParameter
	KindReferenceUsage
	KindMetadataUsage

	// KindComment and KindTextualRepresentation are neither definitions nor
	// usages; they attach to other elements as documentation/notation.
	KindComment
	KindTextualRepresentation
)

// IsPackage reports whether k is the package kind.
func IsPackage(k ElementKind) bool { return k == KindPackage }

// IsDefinition reports whether k is a SysML definition kind, including the
// generic KindKerMLClassifier and KindMetadataDef slots.
func IsDefinition(k ElementKind) bool {
	return k == KindKerMLClassifier || (k >= KindPartDef && k <= KindMetadataDef)
}

// IsUsage reports whether k is a SysML usage kind, including the generic
// KindKerMLFeature slot.
func IsUsage(k ElementKind) bool {
	return k == KindKerMLFeature || (k >= KindPartUsage && k <= KindMetadataUsage)
}

// IsKerMLClassifier reports whether k is classifier-layer: every SysML
// definition is a KerML classifier (spec GLOSSARY).
func IsKerMLClassifier(k ElementKind) bool {
	return IsDefinition(k)
}

// IsKerMLFeature reports whether k is feature-layer: every SysML usage is a
// KerML feature (spec GLOSSARY).
func IsKerMLFeature(k ElementKind) bool {
	return IsUsage(k)
}
