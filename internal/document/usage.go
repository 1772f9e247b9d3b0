package document

// FieldUsage is one field referenced by a mapping. Transformed is set when
// the reference carries field actions.
type FieldUsage struct {
	Field       *Field
	Transformed bool
}

// UpdateFromMappings re-derives PartOfMapping, PartOfTransformation and
// HasUnmappedChildren for every field from the given mapping references.
// References to fields of other documents are ignored.
func (d *Document) UpdateFromMappings(usages []FieldUsage) {
	for _, f := range d.allFields {
		f.PartOfMapping = false
		f.PartOfTransformation = false
		f.HasUnmappedChildren = false
	}

	for _, u := range usages {
		if u.Field == nil || u.Field.doc != d {
			continue
		}

		for f := u.Field; f != nil; f = f.Parent() {
			f.PartOfMapping = true
			if u.Transformed {
				f.PartOfTransformation = true
			}
		}
	}

	for _, f := range d.Fields() {
		markUnmapped(f)
	}
}

// markUnmapped sets HasUnmappedChildren on f's subtree and reports whether
// f and all its descendants are part of a mapping.
func markUnmapped(f *Field) bool {
	complete := f.PartOfMapping

	for _, c := range f.Children() {
		if !markUnmapped(c) {
			f.HasUnmappedChildren = true
			complete = false
		}
	}

	return complete
}
