package mapping

import (
	"slices"

	"github.com/google/uuid"

	"datamapper/internal/document"
)

// Definition is the full mapping set of one session.
type Definition struct {
	Name string

	mappings     []*MappingModel
	lookupTables []*LookupTable
}

// NewDefinition returns an empty definition with a generated name.
func NewDefinition() *Definition {
	return &Definition{Name: "UI." + uuid.NewString()[:8]}
}

// Mappings returns the mappings in order.
func (d *Definition) Mappings() []*MappingModel {
	return d.mappings
}

// AddMapping appends a mapping.
func (d *Definition) AddMapping(m *MappingModel) {
	d.mappings = append(d.mappings, m)
}

// RemoveMapping drops a mapping and reports whether it was present.
func (d *Definition) RemoveMapping(m *MappingModel) bool {
	i := slices.Index(d.mappings, m)
	if i < 0 {
		return false
	}

	d.mappings = slices.Delete(d.mappings, i, i+1)

	return true
}

// FindMapping returns the mapping with the given id.
func (d *Definition) FindMapping(id string) *MappingModel {
	for _, m := range d.mappings {
		if m.ID == id {
			return m
		}
	}

	return nil
}

// FindMappingsForField returns the mappings that reference f.
func (d *Definition) FindMappingsForField(f *document.Field) []*MappingModel {
	var out []*MappingModel
	for _, m := range d.mappings {
		if m.IsFieldMapped(f) {
			out = append(out, m)
		}
	}

	return out
}

// LookupTables returns the lookup tables in order.
func (d *Definition) LookupTables() []*LookupTable {
	return d.lookupTables
}

// LookupTable returns the table with the given name.
func (d *Definition) LookupTable(name string) *LookupTable {
	for _, t := range d.lookupTables {
		if t.Name == name {
			return t
		}
	}

	return nil
}

// AddLookupTable adds or replaces a table by name.
func (d *Definition) AddLookupTable(t *LookupTable) {
	for i := range d.lookupTables {
		if d.lookupTables[i].Name == t.Name {
			d.lookupTables[i] = t

			return
		}
	}

	d.lookupTables = append(d.lookupTables, t)
}

// EnsureLookupTable returns the table of an ENUM mapping, creating and
// initializing it from the mapped enum fields when missing.
func (d *Definition) EnsureLookupTable(m *MappingModel) *LookupTable {
	if m.Transition.Mode != ModeEnum {
		return nil
	}

	t := d.LookupTable(m.Transition.LookupTableName)
	if t == nil {
		t = NewLookupTable()
		d.AddLookupTable(t)
		m.Transition.LookupTableName = t.Name
	}

	var source, target *document.Field
	if fs := m.Fields(true); len(fs) > 0 {
		source = fs[0]
	}

	if fs := m.Fields(false); len(fs) > 0 {
		target = fs[0]
	}

	if source != nil {
		t.Initialize(source, target)
	}

	return t
}

// RemoveFieldReferences drops f and its descendants from every mapping.
// Mappings left without any field are removed. It returns the mappings
// that changed.
func (d *Definition) RemoveFieldReferences(f *document.Field) []*MappingModel {
	return d.removeWhere(func(candidate *document.Field) bool {
		return candidate == f || candidate.IsDescendantOf(f)
	})
}

// RemoveDocumentReferences drops every field of doc from every mapping.
// Call it before the document's fields are cleared.
func (d *Definition) RemoveDocumentReferences(doc *document.Document) []*MappingModel {
	return d.removeWhere(func(candidate *document.Field) bool {
		return candidate.Document() == doc
	})
}

func (d *Definition) removeWhere(match func(*document.Field) bool) []*MappingModel {
	var changed []*MappingModel

	for _, m := range slices.Clone(d.mappings) {
		touched := false

		for _, isSource := range []bool{true, false} {
			for _, f := range m.Fields(isSource) {
				if match(f) && m.RemoveField(f) {
					touched = true
				}
			}
		}

		if !touched {
			continue
		}

		changed = append(changed, m)

		if m.IsEmpty() {
			d.RemoveMapping(m)
		}
	}

	return changed
}

// FieldUsages lists every mapped field, flagged when it carries actions.
func (d *Definition) FieldUsages() []document.FieldUsage {
	var out []document.FieldUsage

	for _, m := range d.mappings {
		for _, side := range [][]*MappedField{m.sources, m.targets} {
			for _, mf := range side {
				if mf.IsPadding() {
					continue
				}

				out = append(out, document.FieldUsage{Field: mf.Field, Transformed: len(mf.Actions) > 0})
			}
		}
	}

	return out
}

// Clear removes every mapping and lookup table.
func (d *Definition) Clear() {
	d.mappings = nil
	d.lookupTables = nil
}
