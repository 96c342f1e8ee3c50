package validate

import "sysml2/internal/model"

// specificUsageRow lists, for a usage kind spec.md §4.D's Pass 2 table names
// explicitly, the exact set of definition kinds it accepts. Usage kinds not
// present here fall through to the permissive "any definition" default
// (the table's "any" row) rather than being rejected outright.
var specificUsageRow = map[model.ElementKind]map[model.ElementKind]bool{
	model.KindPartUsage: kindSet(model.KindPartDef, model.KindItemDef, model.KindOccurrenceDef),

	model.KindActionUsage:        kindSet(model.KindActionDef, model.KindCalcDef),
	model.KindPerformActionUsage: kindSet(model.KindActionDef, model.KindCalcDef),

	model.KindStateUsage: kindSet(model.KindStateDef, model.KindActionDef),
	model.KindPortUsage:  kindSet(model.KindPortDef),

	model.KindAttributeUsage: kindSet(model.KindAttributeDef, model.KindEnumerationDef, model.KindDatatype),

	model.KindRequirementUsage: kindSet(model.KindRequirementDef, model.KindConcernDef),
	model.KindConstraintUsage:  kindSet(model.KindConstraintDef),

	model.KindItemUsage: kindSet(model.KindItemDef, model.KindPartDef, model.KindOccurrenceDef),

	model.KindOccurrenceUsage: kindSet(model.KindOccurrenceDef, model.KindItemDef, model.KindPartDef),
	model.KindEventUsage:      kindSet(model.KindOccurrenceDef, model.KindItemDef, model.KindPartDef),

	model.KindConnectionUsage: kindSet(model.KindConnectionDef, model.KindInterfaceDef),
	model.KindFlowUsage:       kindSet(model.KindFlowDef),
	model.KindInterfaceUsage:  kindSet(model.KindInterfaceDef),
	model.KindAllocationUsage: kindSet(model.KindAllocationDef),

	model.KindCalcUsage: kindSet(model.KindCalcDef, model.KindActionDef),
	model.KindCaseUsage: kindSet(model.KindCaseDef, model.KindCalcDef),

	model.KindAnalysisUsage:     kindSet(model.KindAnalysisDef, model.KindCaseDef),
	model.KindVerificationUsage: kindSet(model.KindVerificationDef, model.KindCaseDef),
	model.KindUseCaseUsage:      kindSet(model.KindUseCaseDef, model.KindCaseDef),

	model.KindViewUsage:      kindSet(model.KindViewDef),
	model.KindViewpointUsage: kindSet(model.KindViewpointDef),
	model.KindRenderingUsage: kindSet(model.KindRenderingDef),

	model.KindConcernUsage: kindSet(model.KindConcernDef, model.KindRequirementDef),
}

func kindSet(kinds ...model.ElementKind) map[model.ElementKind]bool {
	s := make(map[model.ElementKind]bool, len(kinds))
	for _, k := range kinds {
		s[k] = true
	}
	return s
}

// isCompatible reports whether resolvedKind is an acceptable typed_by /
// specializes target for an element of usingKind, per spec.md §4.D Pass 2's
// compatibility table (reproduced row-for-row across the cases below).
func isCompatible(usingKind, resolvedKind model.ElementKind) bool {
	// "any | any package (packages are containers)"
	if model.IsPackage(resolvedKind) {
		return true
	}

	// "any definition | any definition (spec-to-spec specialization)"
	if model.IsDefinition(usingKind) {
		return model.IsDefinition(resolvedKind)
	}

	if !model.IsUsage(usingKind) {
		// Neither a usage nor a definition (e.g. a comment or textual
		// representation) never carries typed_by/specializes in practice;
		// treat conservatively as the permissive default.
		return model.IsDefinition(resolvedKind) || model.IsKerMLFeature(resolvedKind)
	}

	// "any usage | any KerML-feature (redefining/subsetting)"
	if model.IsKerMLFeature(resolvedKind) {
		return true
	}

	if row, ok := specificUsageRow[usingKind]; ok {
		return row[resolvedKind]
	}

	// Fallback "any" row: any KerML-classifier definition (all definitions,
	// per this model's collapse of classifier==definition — see GLOSSARY),
	// explicitly including METADATA_DEF, PARAMETER and REFERENCE_USAGE among
	// the usage kinds that land here.
	return model.IsDefinition(resolvedKind)
}
