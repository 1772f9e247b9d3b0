package serialize

import (
	"fmt"
	"slices"

	"datamapper/internal/diagnostic"
	"datamapper/internal/document"
	"datamapper/internal/mapping"
)

// UpdateMappedFieldsFromDocuments resolves the references of a skeleton
// against the loaded documents and fills its mapping. A reference into a
// document that no longer exists is dropped with an error diagnostic. A
// reference to a missing field of an existing document is an integrity
// error: it is reported and false is returned so the mapping is skipped.
func UpdateMappedFieldsFromDocuments(sk *Skeleton, docs *document.Set, diag *diagnostic.Diagnostics) bool {
	mm := sk.Mapping

	for _, ref := range sk.Refs {
		doc := docs.Find(ref.DocID, ref.IsSource)
		if doc == nil {
			diag.AddError(diagnostic.ScopeMapping, "missing_document",
				fmt.Sprintf("mapping %s references document %s which is not loaded; field %s dropped",
					mm.ID, ref.DocID, ref.Path), mm.ID)

			continue
		}

		f := doc.GetField(ref.Path)
		if f == nil {
			diag.AddError(diagnostic.ScopeMapping, "unresolved_field",
				fmt.Sprintf("mapping %s references field %s which does not exist in document %s",
					mm.ID, ref.Path, ref.DocID), mm.ID)

			return false
		}

		mf := mapping.NewMappedField(f)
		mf.Actions = ref.Actions

		if ref.Index >= 0 {
			mm.SetMappedFieldAt(mf, ref.IsSource, ref.Index)
		} else {
			mm.AddMappedField(mf, ref.IsSource)
		}
	}

	mm.TrimPadding()

	t := &mm.Transition
	if t.Expression != nil && t.Expression.HasIndexRefs() {
		if err := t.Expression.ResolveIndexRefs(mm.MappedFields(true)); err != nil {
			diag.AddError(diagnostic.ScopeMapping, "unresolved_expression_ref",
				fmt.Sprintf("mapping %s: %v", mm.ID, err), mm.ID)

			return false
		}
	}

	decoded := *t
	if err := mm.UpdateTransition(); err != nil {
		diag.AddError(diagnostic.ScopeMapping, "many_to_many",
			fmt.Sprintf("mapping %s: %v", mm.ID, err), mm.ID)

		return false
	}

	// A lookup table name survives even when the fields are not enumerations.
	if decoded.Mode == mapping.ModeEnum && len(mm.Fields(true)) == 1 && len(mm.Fields(false)) == 1 {
		*t = decoded
	}

	return true
}

// Unbind turns mm back into a skeleton: every mapped field becomes a
// reference by document id and path, and mm is left without fields.
// Resolving the skeleton again with UpdateMappedFieldsFromDocuments binds
// the mapping to reloaded documents.
func Unbind(mm *mapping.MappingModel) *Skeleton {
	sk := &Skeleton{Mapping: mm}

	for _, isSource := range []bool{true, false} {
		mfs := slices.Clone(mm.MappedFields(isSource))
		indexed := len(mfs) > 1

		for i, mf := range mfs {
			if !mf.IsPadding() {
				ref := FieldRef{
					DocID:    mf.Field.DocID(),
					Path:     mf.Field.Path,
					IsSource: isSource,
					Index:    -1,
					Actions:  mf.Actions,
				}
				if indexed {
					ref.Index = i
				}

				sk.Refs = append(sk.Refs, ref)
			}
		}

		for _, mf := range mfs {
			mm.RemoveMappedField(mf, isSource)
		}
	}

	return sk
}
