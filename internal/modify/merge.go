package modify

import (
	"errors"
	"fmt"
	"strings"

	"sysml2/internal/intern"
	"sysml2/internal/model"
)

// ErrScopeNotFound is returned by Merge when targetScope does not exist in
// base and createScope is false.
var ErrScopeNotFound = errors.New("modify: target scope not found and create_scope is false")

// MergeReport summarizes a successful Merge.
type MergeReport struct {
	Added    int
	Replaced int
}

// Merge splices fragment into base at targetScope, following the nine-step
// pipeline: auto-unwrap a scope-matching wrapper package, ensure the target
// scope exists (synthesizing ancestry packages when createScope is set),
// remap every fragment id under targetScope, classify each remapped
// element as a replacement or addition against base, selectively remove
// superseded base elements (and their orphaned descendants), splice
// replacements in place, append additions, and merge relationships and
// imports (deduplicating imports by owner/target/kind). Never mutates base
// or fragment.
func Merge(in *intern.Interner, base, fragment *model.Model, targetScope intern.ID, createScope bool) (*model.Model, MergeReport, error) {
	fragElements, fragImports, wrapperDoc, wrapperMetaPrefix, wrapperMetaBody := autoUnwrap(in, fragment, targetScope)

	baseElements := cloneElements(base.Elements)
	baseByID := indexElements(baseElements)

	targetEl, exists := baseByID[targetScope]
	if !exists {
		if !createScope {
			return nil, MergeReport{}, fmt.Errorf("%w: %s", ErrScopeNotFound, mustLookup(in, targetScope))
		}
		synthesized := synthesizeAncestry(in, targetScope, baseByID)
		baseElements = append(baseElements, synthesized...)
		for _, e := range synthesized {
			baseByID[e.ID] = e
		}
		targetEl = baseByID[targetScope]
	}
	if wrapperDoc != intern.NoID {
		targetEl.Documentation = wrapperDoc
	}
	if len(wrapperMetaPrefix) > 0 {
		targetEl.MetadataPrefix = append(append([]intern.ID(nil), targetEl.MetadataPrefix...), wrapperMetaPrefix...)
	}
	if len(wrapperMetaBody) > 0 {
		targetEl.MetadataBody = append(append([]intern.ID(nil), targetEl.MetadataBody...), wrapperMetaBody...)
	}

	remapped := make([]*model.Element, len(fragElements))
	idRemap := make(map[intern.ID]intern.ID, len(fragElements))
	for i, e := range fragElements {
		newID := remapID(in, e.ID, targetScope)
		idRemap[e.ID] = newID
		clone := e.Clone()
		clone.ID = newID
		if e.ParentID == intern.NoID {
			clone.ParentID = targetScope
		} else {
			clone.ParentID = remapID(in, e.ParentID, targetScope)
		}
		remapped[i] = clone
	}

	var additions []*model.Element
	replacements := make(map[intern.ID]*model.Element)
	for _, e := range remapped {
		if _, ok := baseByID[e.ID]; ok {
			replacements[e.ID] = e
		} else {
			additions = append(additions, e)
		}
	}

	removed := selectiveRemoval(in, baseElements, replacements, remapped)

	var kept []*model.Element
	substituted := make(map[intern.ID]bool)
	for _, e := range baseElements {
		if removed[e.ID] {
			continue
		}
		if repl, ok := replacements[e.ID]; ok {
			kept = append(kept, substitute(e, repl))
			substituted[e.ID] = true
			continue
		}
		kept = append(kept, e)
	}

	appended := appendAdditions(kept, additions)
	kept = append(kept, appended...)

	out := &model.Model{SourceName: base.SourceName}
	out.Elements = kept

	out.Relationships = mergeRelationships(base.Relationships, fragment.Relationships, removed, idRemap)
	out.Imports = mergeImports(fragImports, base.Imports, removed, targetScope, idRemap)
	out.Aliases = append([]*model.Alias(nil), base.Aliases...)

	return out, MergeReport{Added: len(additions), Replaced: len(replacements)}, nil
}

func mustLookup(in *intern.Interner, id intern.ID) string {
	s, _ := in.Lookup(id)
	return s
}

// autoUnwrap strips a single top-level wrapper package whose local name
// equals targetScope's local name, returning the fragment's remaining
// elements/imports with the wrapper's id-prefix removed, plus the
// wrapper's documentation/metadata to re-apply to the target scope.
func autoUnwrap(in *intern.Interner, fragment *model.Model, targetScope intern.ID) (
	elements []*model.Element, imports []*model.Import,
	doc intern.ID, metaPrefix, metaBody []intern.ID,
) {
	var topLevel []*model.Element
	for _, e := range fragment.Elements {
		if e.ParentID == intern.NoID {
			topLevel = append(topLevel, e)
		}
	}
	targetLocal := localName(mustLookup(in, targetScope))

	if len(topLevel) != 1 || !model.IsPackage(topLevel[0].Kind) || localName(mustLookup(in, topLevel[0].Name)) != targetLocal {
		return fragment.Elements, fragment.Imports, intern.NoID, nil, nil
	}
	wrapper := topLevel[0]
	wrapperStr := mustLookup(in, wrapper.ID)
	prefix := wrapperStr + "::"

	for _, e := range fragment.Elements {
		if e.ID == wrapper.ID {
			continue
		}
		elements = append(elements, stripPrefix(in, e, wrapper.ID, prefix))
	}
	for _, im := range fragment.Imports {
		clone := im.Clone()
		if clone.OwnerScope == wrapper.ID {
			clone.OwnerScope = intern.NoID
		} else if s := mustLookup(in, clone.OwnerScope); strings.HasPrefix(s, prefix) {
			clone.OwnerScope = in.Intern(strings.TrimPrefix(s, prefix))
		}
		imports = append(imports, clone)
	}
	return elements, imports, wrapper.Documentation, wrapper.MetadataPrefix, wrapper.MetadataBody
}

func stripPrefix(in *intern.Interner, e *model.Element, wrapperID intern.ID, prefix string) *model.Element {
	clone := e.Clone()
	if s := mustLookup(in, e.ID); strings.HasPrefix(s, prefix) {
		clone.ID = in.Intern(strings.TrimPrefix(s, prefix))
	}
	if e.ParentID == wrapperID {
		clone.ParentID = intern.NoID
	} else if s := mustLookup(in, e.ParentID); e.ParentID != intern.NoID && strings.HasPrefix(s, prefix) {
		clone.ParentID = in.Intern(strings.TrimPrefix(s, prefix))
	}
	return clone
}

func remapID(in *intern.Interner, id intern.ID, targetScope intern.ID) intern.ID {
	return in.Intern(mustLookup(in, targetScope) + "::" + mustLookup(in, id))
}

func cloneElements(elements []*model.Element) []*model.Element {
	out := make([]*model.Element, len(elements))
	for i, e := range elements {
		out[i] = e.Clone()
	}
	return out
}

func indexElements(elements []*model.Element) map[intern.ID]*model.Element {
	out := make(map[intern.ID]*model.Element, len(elements))
	for _, e := range elements {
		out[e.ID] = e
	}
	return out
}

// synthesizeAncestry builds package elements for every missing ancestor
// segment of targetScope, from the root down, when createScope permits it.
func synthesizeAncestry(in *intern.Interner, targetScope intern.ID, baseByID map[intern.ID]*model.Element) []*model.Element {
	full := mustLookup(in, targetScope)
	segments := strings.Split(full, "::")
	var out []*model.Element
	var parent intern.ID = intern.NoID
	var path string
	for i, seg := range segments {
		if i == 0 {
			path = seg
		} else {
			path = path + "::" + seg
		}
		id := in.Intern(path)
		if _, ok := baseByID[id]; !ok {
			e := &model.Element{
				ID:       id,
				Name:     in.Intern(seg),
				Kind:     model.KindPackage,
				ParentID: parent,
			}
			baseByID[id] = e
			out = append(out, e)
		}
		parent = id
	}
	return out
}

// selectiveRemoval computes the set of base element ids to drop: each
// replaced element, each of its direct children whose local name also
// names a fragment child of the corresponding remapped parent, and
// recursively their descendants.
func selectiveRemoval(in *intern.Interner, baseElements []*model.Element, replacements map[intern.ID]*model.Element, remapped []*model.Element) map[intern.ID]bool {
	removed := make(map[intern.ID]bool, len(replacements))
	for id := range replacements {
		removed[id] = true
	}

	fragChildNames := make(map[intern.ID]map[string]bool)
	for _, e := range remapped {
		if e.ParentID == intern.NoID {
			continue
		}
		if fragChildNames[e.ParentID] == nil {
			fragChildNames[e.ParentID] = make(map[string]bool)
		}
		fragChildNames[e.ParentID][mustLookup(in, e.Name)] = true
	}

	childrenOf := make(map[intern.ID][]*model.Element)
	for _, e := range baseElements {
		childrenOf[e.ParentID] = append(childrenOf[e.ParentID], e)
	}

	var markDescendants func(id intern.ID)
	markDescendants = func(id intern.ID) {
		for _, child := range childrenOf[id] {
			if removed[child.ID] {
				continue
			}
			removed[child.ID] = true
			markDescendants(child.ID)
		}
	}

	for replacedID := range replacements {
		names := fragChildNames[replacedID]
		if names == nil {
			continue
		}
		for _, child := range childrenOf[replacedID] {
			if names[mustLookup(in, child.Name)] {
				removed[child.ID] = true
				markDescendants(child.ID)
			}
		}
	}
	return removed
}

// substitute splices fragment's replacement into base's slot: the base
// element's own source range is kept (for sibling offset ordering), and
// documentation/metadata/body prefer the fragment's, falling back to
// base's where fragment leaves them empty. Shorthand-feature body
// statements union-merge by name.
func substitute(base, fragment *model.Element) *model.Element {
	out := fragment.Clone()
	out.Range = base.Range

	if out.Documentation == intern.NoID {
		out.Documentation = base.Documentation
	}
	if len(out.MetadataPrefix) == 0 {
		out.MetadataPrefix = base.MetadataPrefix
	}
	if len(out.MetadataBody) == 0 {
		out.MetadataBody = base.MetadataBody
	}
	if len(fragment.Body) == 0 {
		out.Body = base.Body
		return out
	}

	fragNames := make(map[intern.ID]bool)
	for _, b := range fragment.Body {
		if b.Kind == model.BodyKindShorthandFeature {
			fragNames[b.Name] = true
		}
	}
	merged := append([]model.BodyStatement(nil), fragment.Body...)
	for _, b := range base.Body {
		if b.Kind == model.BodyKindShorthandFeature && !fragNames[b.Name] {
			merged = append(merged, b)
		}
	}
	out.Body = merged
	return out
}

// appendAdditions assigns each addition's parent-scope offset past the
// maximum of its new siblings (or 0, if the siblings all use offset 0),
// per spec §4.F step 7.
func appendAdditions(kept []*model.Element, additions []*model.Element) []*model.Element {
	maxOffsetByParent := make(map[intern.ID]uint32)
	anyNonZero := make(map[intern.ID]bool)
	for _, e := range kept {
		if e.Range.StartOffset > maxOffsetByParent[e.ParentID] {
			maxOffsetByParent[e.ParentID] = e.Range.StartOffset
		}
		if e.Range.StartOffset != 0 {
			anyNonZero[e.ParentID] = true
		}
	}
	for _, a := range additions {
		if anyNonZero[a.ParentID] {
			length := a.Range.EndOffset - a.Range.StartOffset
			newStart := maxOffsetByParent[a.ParentID] + 1
			a.Range.StartOffset = newStart
			a.Range.EndOffset = newStart + length
			maxOffsetByParent[a.ParentID] = a.Range.EndOffset
			anyNonZero[a.ParentID] = true
		} else {
			a.Range.EndOffset -= a.Range.StartOffset
			a.Range.StartOffset = 0
		}
	}
	return additions
}

func mergeRelationships(baseRels, fragRels []*model.Relationship, removed map[intern.ID]bool, idRemap map[intern.ID]intern.ID) []*model.Relationship {
	var out []*model.Relationship
	for _, r := range baseRels {
		if !removed[r.Source] && !removed[r.Target] {
			out = append(out, r)
		}
	}
	for _, r := range fragRels {
		clone := r.Clone()
		if remapped, ok := idRemap[r.Source]; ok {
			clone.Source = remapped
		}
		if remapped, ok := idRemap[r.Target]; ok {
			clone.Target = remapped
		}
		out = append(out, clone)
	}
	return out
}

type importKey struct {
	owner  intern.ID
	target intern.ID
	kind   model.ImportKind
}

func mergeImports(fragImports, baseImports []*model.Import, removed map[intern.ID]bool, targetScope intern.ID, idRemap map[intern.ID]intern.ID) []*model.Import {
	seen := make(map[importKey]bool)
	var out []*model.Import
	for _, im := range baseImports {
		if removed[im.OwnerScope] {
			continue
		}
		k := importKey{im.OwnerScope, im.Target, im.Kind}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, im)
	}
	for _, im := range fragImports {
		clone := im.Clone()
		if clone.OwnerScope == intern.NoID {
			clone.OwnerScope = targetScope
		} else if remapped, ok := idRemap[clone.OwnerScope]; ok {
			clone.OwnerScope = remapped
		}
		k := importKey{clone.OwnerScope, clone.Target, clone.Kind}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, clone)
	}
	return out
}
