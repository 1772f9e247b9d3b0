package serialize

import (
	"encoding/json"
	"errors"
	"fmt"

	"datamapper/internal/diagnostic"
	"datamapper/internal/document"
	"datamapper/internal/mapping"
	"datamapper/internal/wire"
)

// Version is the mapping file version written by Serialize.
const Version = "2.0"

var (
	// ErrNotFullyMapped is returned for a mapping that lacks a source or a target field.
	ErrNotFullyMapped = errors.New("mapping is not fully mapped")
	// ErrNoMapping is returned when a document carries no AtlasMapping object.
	ErrNoMapping = errors.New("no AtlasMapping object found")
	// ErrDetachedField is returned for a mapped field removed from its document.
	ErrDetachedField = errors.New("field is no longer part of a document")
)

// Model is what the serializer reads and writes: the documents, the
// mapping definition and the action registry of one session.
type Model struct {
	Documents   *document.Set
	Definition  *mapping.Definition
	Actions     *mapping.ActionRegistry
	Diagnostics *diagnostic.Diagnostics
}

func (m *Model) diag() *diagnostic.Diagnostics {
	if m.Diagnostics == nil {
		m.Diagnostics = diagnostic.New(nil)
	}

	return m.Diagnostics
}

// Serialize builds the AtlasMapping for the whole session. Mappings that are
// not fully mapped are skipped; mappings that fail are reported and skipped.
func Serialize(m *Model) (*wire.AtlasMapping, error) {
	if m.Documents == nil || m.Definition == nil {
		return nil, errors.New("serialize: documents and definition are required")
	}

	am := &wire.AtlasMapping{
		JSONType: wire.TypeAtlasMapping,
		Name:     m.Definition.Name,
		Version:  Version,
		Mappings: wire.Mappings{Mapping: []wire.Mapping{}},
	}

	for _, isSource := range []bool{true, false} {
		for _, doc := range m.Documents.Side(isSource) {
			am.DataSource = append(am.DataSource, dataSource(doc))
		}
	}

	for _, mm := range m.Definition.Mappings() {
		if !mm.IsFullyMapped() {
			continue
		}

		wm, err := serializeMapping(mm, m.Definition)
		if err != nil {
			m.diag().AddError(diagnostic.ScopeMapping, "serialize_failed",
				fmt.Sprintf("failed to serialize mapping %s: %v", mm.ID, err), mm.ID)

			continue
		}

		am.Mappings.Mapping = append(am.Mappings.Mapping, wm)
	}

	if tables := m.Definition.LookupTables(); len(tables) > 0 {
		am.LookupTables = &wire.LookupTables{}
		for _, t := range tables {
			am.LookupTables.LookupTable = append(am.LookupTables.LookupTable, lookupTableToWire(t))
		}
	}

	if fields := m.Documents.Constants().Fields(); len(fields) > 0 {
		am.Constants = &wire.Constants{}
		for _, f := range fields {
			am.Constants.Constant = append(am.Constants.Constant, wire.Constant{
				Name:      f.Name,
				Value:     f.Value,
				FieldType: string(f.Type),
			})
		}
	}

	for _, isSource := range []bool{true, false} {
		for _, f := range m.Documents.Properties(isSource).Fields() {
			if am.Properties == nil {
				am.Properties = &wire.Properties{}
			}

			am.Properties.Property = append(am.Properties.Property, wire.Property{
				Name:           f.Name,
				Value:          f.Value,
				FieldType:      string(f.Type),
				Scope:          f.Scope,
				DataSourceType: dataSourceType(isSource),
			})
		}
	}

	return am, nil
}

// Marshal serializes the session and encodes it as an indented mapping file.
func Marshal(m *Model) ([]byte, error) {
	am, err := Serialize(m)
	if err != nil {
		return nil, err
	}

	return wire.Marshal(wire.AtlasMappingEnvelope{AtlasMapping: am})
}

func dataSourceType(isSource bool) string {
	if isSource {
		return wire.DataSourceSource
	}

	return wire.DataSourceTarget
}

func dataSource(doc *document.Document) wire.DataSource {
	ds := wire.DataSource{
		JSONType:          doc.Format.DataSourceJSONType(),
		ID:                doc.ID,
		Name:              doc.Name,
		Description:       doc.Description,
		URI:               doc.URI(),
		DataSourceType:    dataSourceType(doc.IsSource),
		CharacterEncoding: doc.CharacterEncoding,
		Locale:            doc.Locale,
		Template:          doc.Template,
	}

	if len(doc.Namespaces) > 0 {
		ds.XMLNamespaces = &wire.XMLNamespaces{}
		for _, ns := range doc.Namespaces {
			ds.XMLNamespaces.XMLNamespace = append(ds.XMLNamespaces.XMLNamespace, wire.XMLNamespace{
				Alias:           ns.Alias,
				URI:             ns.URI,
				LocationURI:     ns.LocationURI,
				TargetNamespace: ns.IsTarget,
			})
		}
	}

	return ds
}

func lookupTableToWire(t *mapping.LookupTable) wire.LookupTable {
	out := wire.LookupTable{Name: t.Name, Description: t.Description, LookupEntry: []wire.LookupEntry{}}
	for _, e := range t.Entries {
		out.LookupEntry = append(out.LookupEntry, wire.LookupEntry{
			SourceValue: e.SourceValue,
			SourceType:  string(e.SourceType),
			TargetValue: e.TargetValue,
			TargetType:  string(e.TargetType),
		})
	}

	return out
}

// serializeMapping shapes one mapping according to its transition mode.
func serializeMapping(mm *mapping.MappingModel, def *mapping.Definition) (wire.Mapping, error) {
	if !mm.IsFullyMapped() {
		return wire.Mapping{}, ErrNotFullyMapped
	}

	t := &mm.Transition
	sources := mm.MappedFields(true)
	targets := mm.MappedFields(false)

	wm := wire.Mapping{
		JSONType:    wire.TypeMapping,
		ID:          mm.ID,
		Description: mm.Description,
	}

	inputs, err := serializeFields(sources, len(sources) > 1 || t.Mode == mapping.ModeExpression)
	if err != nil {
		return wire.Mapping{}, err
	}

	outputs, err := serializeFields(targets, len(targets) > 1)
	if err != nil {
		return wire.Mapping{}, err
	}

	wm.OutputField = outputs

	switch t.Mode {
	case mapping.ModeExpression:
		if t.Expression == nil {
			return wire.Mapping{}, errors.New("expression mode without an expression")
		}

		wm.Expression = t.Expression.String()
		if len(inputs) == 1 && inputs[0].JSONType == wire.TypeFieldGroup {
			wm.InputFieldGroup = &inputs[0]
		} else {
			wm.InputField = inputs
		}

	case mapping.ModeManyToOne:
		group := &wire.Field{JSONType: wire.TypeFieldGroup, Fields: inputs}
		if t.Action != nil {
			a, err := actionToWire(t.Action)
			if err != nil {
				return wire.Mapping{}, err
			}

			group.Actions = []wire.Action{a}
		}

		wm.InputFieldGroup = group

	case mapping.ModeOneToMany:
		if len(inputs) != 1 {
			return wire.Mapping{}, fmt.Errorf("one-to-many mapping with %d source fields", len(inputs))
		}

		if t.Action != nil {
			a, err := actionToWire(t.Action)
			if err != nil {
				return wire.Mapping{}, err
			}

			src := singleLeaf(&inputs[0])
			src.Actions = append(src.Actions, a)
		}

		wm.InputField = inputs

	case mapping.ModeEnum:
		if t.LookupTableName == "" {
			return wire.Mapping{}, errors.New("enumeration mapping without a lookup table")
		}

		if def != nil && def.LookupTable(t.LookupTableName) == nil {
			return wire.Mapping{}, fmt.Errorf("lookup table %q not found", t.LookupTableName)
		}

		wm.InputField = inputs
		wm.MappingType = wire.MappingTypeLookup
		wm.LookupTableName = t.LookupTableName

	default:
		wm.InputField = inputs
	}

	return wm, nil
}

// serializeFields writes the fields of one side. Padding positions are
// skipped but still consume an index. Fields inside a collection are
// nested in one field group per enclosing collection, placed where its
// first member appears.
func serializeFields(mfs []*mapping.MappedField, indexed bool) ([]wire.Field, error) {
	var out []wire.Field

	groups := map[*document.Field]int{}

	for i, mf := range mfs {
		if mf.IsPadding() {
			continue
		}

		if mf.Field.Document() == nil {
			return nil, fmt.Errorf("field %s: %w", mf.Field.Path, ErrDetachedField)
		}

		wf := fieldToWire(mf.Field)

		for _, a := range mf.Actions {
			wa, err := actionToWire(a)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", mf.Field.Path, err)
			}

			wf.Actions = append(wf.Actions, wa)
		}

		if indexed {
			wf.Index = wire.IntPtr(i)
		}

		parent := mf.Field.CollectionParent()
		if parent == nil || parent == mf.Field {
			out = append(out, wf)

			continue
		}

		g, ok := groups[parent]
		if !ok {
			g = len(out)
			groups[parent] = g
			out = append(out, collectionGroup(parent))
		}

		out[g].Fields = append(out[g].Fields, wf)
	}

	return out, nil
}

// collectionGroup is the field group standing for one instance of a
// collection field. Unlike a complex field's group it carries the
// collection type.
func collectionGroup(f *document.Field) wire.Field {
	return wire.Field{
		JSONType:       wire.TypeFieldGroup,
		Name:           f.NameWithNamespace(),
		Path:           f.Path,
		DocID:          f.DocID(),
		CollectionType: string(f.CollectionType),
	}
}

// isCollectionGroup reports whether wf wraps the members of a collection.
func isCollectionGroup(wf *wire.Field) bool {
	return wf.JSONType == wire.TypeFieldGroup &&
		wf.CollectionType != "" && wf.CollectionType != string(document.CollectionNone)
}

// singleLeaf descends through collection groups holding one member.
func singleLeaf(wf *wire.Field) *wire.Field {
	for isCollectionGroup(wf) && len(wf.Fields) == 1 {
		wf = &wf.Fields[0]
	}

	return wf
}

// fieldToWire writes a field reference. A complex field with children
// becomes a field group holding its terminal descendants.
func fieldToWire(f *document.Field) wire.Field {
	if f.IsComplex() && f.HasChildren() {
		group := wire.Field{
			JSONType: wire.TypeFieldGroup,
			Name:     f.Name,
			Path:     f.Path,
			DocID:    f.DocID(),
		}

		for _, c := range f.Children() {
			group.Fields = append(group.Fields, fieldToWire(c))
		}

		return group
	}

	doc := f.Document()
	if doc == nil {
		return wire.Field{Name: f.Name, Path: f.Path, FieldType: string(f.Type)}
	}

	wf := wire.Field{
		JSONType:    doc.Format.FieldJSONType(),
		Name:        f.Name,
		Path:        f.Path,
		FieldType:   string(f.Type),
		DocID:       f.DocID(),
		UserCreated: f.UserCreated,
	}

	if f.CollectionType != "" && f.CollectionType != document.CollectionNone {
		wf.CollectionType = string(f.CollectionType)
	}

	switch doc.Format {
	case document.FormatJava:
		wf.ClassName = f.ClassIdentifier
		wf.Primitive = f.IsPrimitive
		if f.Enumeration {
			wf.JSONType = wire.TypeJavaEnumField
		}
	case document.FormatKafkaConnect:
		if f.Enumeration {
			wf.JSONType = wire.TypeKafkaEnumField
		}
	case document.FormatXML, document.FormatXSD:
		wf.Name = f.NameWithNamespace()
		wf.Attribute = f.IsAttribute
	case document.FormatCSV:
		wf.Column = f.Column
	case document.FormatConstant:
		wf.Value = f.Value
	case document.FormatProperty:
		wf.Value = f.Value
		wf.Scope = f.Scope
	}

	return wf
}

// actionToWire writes the arguments in order. Literal arguments are written
// as bare JSON when they parse as such.
func actionToWire(a *mapping.FieldAction) (wire.Action, error) {
	out := wire.Action{Type: a.Name}

	for _, arg := range a.Arguments {
		var raw json.RawMessage

		if arg.Literal && json.Valid([]byte(arg.Value)) {
			raw = json.RawMessage(arg.Value)
		} else {
			b, err := json.Marshal(arg.Value)
			if err != nil {
				return wire.Action{}, fmt.Errorf("action %s argument %s: %w", a.Name, arg.Name, err)
			}

			raw = b
		}

		out.Args = append(out.Args, wire.Member{Key: arg.Name, Value: raw})
	}

	return out, nil
}
