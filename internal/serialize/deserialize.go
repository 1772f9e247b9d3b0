package serialize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"datamapper/internal/diagnostic"
	"datamapper/internal/document"
	"datamapper/internal/mapping"
	"datamapper/internal/wire"
)

// FieldRef is a serialized field reference waiting to be resolved.
type FieldRef struct {
	DocID    string
	Path     string
	IsSource bool
	// Index is the annotated position, or -1.
	Index   int
	Actions []*mapping.FieldAction
}

// Skeleton is a decoded mapping whose fields are still references.
type Skeleton struct {
	Mapping *mapping.MappingModel
	Refs    []FieldRef
}

// Deserialize replaces the session's mappings with the ones in data.
// Constants and properties are added to their pseudo-documents first.
// Mappings that reference fields missing from an existing document are
// reported and skipped.
func Deserialize(m *Model, data []byte) error {
	var env wire.AtlasMappingEnvelope

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&env); err != nil {
		return fmt.Errorf("failed to parse mapping file: %w", err)
	}

	if env.AtlasMapping == nil {
		return ErrNoMapping
	}

	return DeserializeMapping(m, env.AtlasMapping)
}

// DeserializeMapping is Deserialize for an already decoded AtlasMapping.
func DeserializeMapping(m *Model, am *wire.AtlasMapping) error {
	if m.Documents == nil || m.Definition == nil {
		return errors.New("deserialize: documents and definition are required")
	}

	diag := m.diag()
	checkVersion(am.Version, diag)

	m.Definition.Clear()
	if am.Name != "" {
		m.Definition.Name = am.Name
	}

	if err := deserializeConstants(m.Documents, am.Constants); err != nil {
		return err
	}

	if err := deserializeProperties(m.Documents, am.Properties); err != nil {
		return err
	}

	for _, ds := range am.DataSource {
		applyDataSource(m.Documents, ds)
	}

	if am.LookupTables != nil {
		for _, wt := range am.LookupTables.LookupTable {
			m.Definition.AddLookupTable(lookupTableFromWire(wt))
		}
	}

	for _, wm := range flattenMappings(am.Mappings.Mapping) {
		sk, err := deserializeMapping(wm, m.Actions, diag)
		if err != nil {
			diag.AddError(diagnostic.ScopeMapping, "deserialize_failed",
				fmt.Sprintf("failed to read mapping %s: %v", wm.ID, err), wm.ID)

			continue
		}

		if !UpdateMappedFieldsFromDocuments(sk, m.Documents, diag) {
			continue
		}

		if sk.Mapping.IsEmpty() {
			continue
		}

		m.Definition.AddMapping(sk.Mapping)
	}

	return nil
}

// checkVersion warns when the file's major.minor differs from Version.
func checkVersion(v string, diag *diagnostic.Diagnostics) {
	if v == "" {
		return
	}

	if majorMinor(v) != majorMinor(Version) {
		diag.AddWarning(diagnostic.ScopeApplication, "version_mismatch",
			fmt.Sprintf("mapping file version %s differs from supported version %s", v, Version), "")
	}
}

func majorMinor(v string) string {
	parts := strings.SplitN(v, ".", 3)
	if len(parts) < 2 {
		return parts[0] + ".0"
	}

	return parts[0] + "." + parts[1]
}

func deserializeConstants(docs *document.Set, cs *wire.Constants) error {
	if cs == nil {
		return nil
	}

	for _, c := range cs.Constant {
		typ := document.ParseFieldType(c.FieldType)
		if f := docs.Constants().GetField("/" + c.Name); f != nil {
			f.Value, f.Type = c.Value, typ

			continue
		}

		if _, err := docs.AddConstant(c.Name, c.Value, typ); err != nil {
			return fmt.Errorf("constant %q: %w", c.Name, err)
		}
	}

	return nil
}

func deserializeProperties(docs *document.Set, ps *wire.Properties) error {
	if ps == nil {
		return nil
	}

	for _, p := range ps.Property {
		isSource := p.DataSourceType != wire.DataSourceTarget
		typ := document.ParseFieldType(p.FieldType)

		if f := docs.Properties(isSource).GetField("/" + p.Name); f != nil {
			f.Value, f.Type, f.Scope = p.Value, typ, p.Scope

			continue
		}

		if _, err := docs.AddProperty(p.Name, p.Value, typ, p.Scope, isSource); err != nil {
			return fmt.Errorf("property %q: %w", p.Name, err)
		}
	}

	return nil
}

// applyDataSource copies document metadata onto a loaded document.
func applyDataSource(docs *document.Set, ds wire.DataSource) {
	doc := docs.Find(ds.ID, ds.DataSourceType != wire.DataSourceTarget)
	if doc == nil || doc.IsPropertyOrConstant() {
		return
	}

	if ds.Name != "" {
		doc.Name = ds.Name
	}

	if ds.Description != "" {
		doc.Description = ds.Description
	}

	doc.CharacterEncoding = ds.CharacterEncoding
	doc.Locale = ds.Locale
	doc.Template = ds.Template

	if ds.XMLNamespaces != nil && len(doc.Namespaces) == 0 {
		for _, ns := range ds.XMLNamespaces.XMLNamespace {
			doc.Namespaces = append(doc.Namespaces, document.Namespace{
				Alias:       ns.Alias,
				URI:         ns.URI,
				LocationURI: ns.LocationURI,
				IsTarget:    ns.TargetNamespace,
			})
		}
	}
}

func lookupTableFromWire(wt wire.LookupTable) *mapping.LookupTable {
	t := &mapping.LookupTable{Name: wt.Name, Description: wt.Description}
	for _, e := range wt.LookupEntry {
		t.Entries = append(t.Entries, mapping.LookupEntry{
			SourceValue: e.SourceValue,
			SourceType:  document.ParseFieldType(e.SourceType),
			TargetValue: e.TargetValue,
			TargetType:  document.ParseFieldType(e.TargetType),
		})
	}

	return t
}

// flattenMappings unwraps legacy collection mappings into their members.
func flattenMappings(in []wire.Mapping) []wire.Mapping {
	var out []wire.Mapping

	for _, wm := range in {
		if wm.JSONType == wire.TypeCollection || wm.MappingType == wire.MappingTypeCollection {
			if wm.Mappings != nil {
				out = append(out, flattenMappings(wm.Mappings.Mapping)...)
			}

			continue
		}

		out = append(out, wm)
	}

	return out
}

// deserializeMapping decodes one wire mapping into a skeleton. The legacy
// mappingType shape is normalized into a transition here and nowhere else.
func deserializeMapping(wm wire.Mapping, reg *mapping.ActionRegistry,
	diag *diagnostic.Diagnostics,
) (*Skeleton, error) {
	mm := mapping.NewMappingModel()
	if wm.ID != "" {
		mm.ID = wm.ID
	}

	mm.Description = wm.Description
	sk := &Skeleton{Mapping: mm}
	t := &mm.Transition

	var inputs []wire.Field

	switch {
	case wm.InputFieldGroup != nil && (wm.Expression == "" || wm.InputFieldGroup.DocID == ""):
		inputs = wm.InputFieldGroup.Fields
	case wm.InputFieldGroup != nil:
		inputs = []wire.Field{*wm.InputFieldGroup}
	default:
		inputs = wm.InputField
	}

	srcRefs, err := fieldRefs(inputs, true, reg, diag, mm.ID)
	if err != nil {
		return nil, err
	}

	tgtRefs, err := fieldRefs(wm.OutputField, false, reg, diag, mm.ID)
	if err != nil {
		return nil, err
	}

	switch wm.MappingType {
	case wire.MappingTypeCombine:
		t.Mode = mapping.ModeManyToOne
		t.Action = legacyTransitionAction(mapping.ActionConcatenate, wm, reg)
	case wire.MappingTypeSeparate:
		t.Mode = mapping.ModeOneToMany
		t.Action = legacyTransitionAction(mapping.ActionSplit, wm, reg)
	case wire.MappingTypeLookup:
		t.Mode = mapping.ModeEnum
		t.LookupTableName = wm.LookupTableName
	case "", wire.MappingTypeNone, wire.MappingTypeMap:
		if err := modernTransition(wm, srcRefs, len(tgtRefs), reg, diag, t); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown mapping type %q", wm.MappingType)
	}

	sk.Refs = append(srcRefs, tgtRefs...)

	return sk, nil
}

// modernTransition derives the transition from the shape of the mapping.
func modernTransition(wm wire.Mapping, srcRefs []FieldRef, targets int, reg *mapping.ActionRegistry,
	diag *diagnostic.Diagnostics, t *mapping.TransitionModel,
) error {
	switch {
	case wm.Expression != "":
		t.Mode = mapping.ModeExpression
		t.Expression = mapping.ParseExpression(wm.Expression)

	case wm.InputFieldGroup != nil:
		t.Mode = mapping.ModeManyToOne
		if len(wm.InputFieldGroup.Actions) > 0 {
			t.Action = actionFromWire(wm.InputFieldGroup.Actions[0], reg, diag, wm.ID)
		}

	case targets > 1:
		t.Mode = mapping.ModeOneToMany
		if len(srcRefs) != 1 {
			return fmt.Errorf("one-to-many mapping with %d source fields", len(srcRefs))
		}

		acts := srcRefs[0].Actions
		if n := len(acts); n > 0 && isOneToMany(acts[n-1], reg) {
			t.Action = acts[n-1]
			srcRefs[0].Actions = acts[:n-1]
		}

	case wm.LookupTableName != "":
		t.Mode = mapping.ModeEnum
		t.LookupTableName = wm.LookupTableName

	default:
		t.Mode = mapping.ModeOneToOne
	}

	return nil
}

func isOneToMany(a *mapping.FieldAction, reg *mapping.ActionRegistry) bool {
	if a.Definition != nil {
		return a.Definition.Multiplicity == mapping.MultiplicityOneToMany
	}

	if reg != nil {
		if def := reg.Get(a.Name); def != nil {
			return def.Multiplicity == mapping.MultiplicityOneToMany
		}
	}

	return a.Name == mapping.ActionSplit
}

// legacyTransitionAction builds Concatenate or Split from a legacy
// delimiter name or delimiter string.
func legacyTransitionAction(name string, wm wire.Mapping, reg *mapping.ActionRegistry) *mapping.FieldAction {
	delim := mapping.DefaultDelimiter

	switch {
	case wm.DelimiterString != "":
		delim = wm.DelimiterString
	case wm.Delimiter != "":
		if d, ok := mapping.DelimiterForName(wm.Delimiter); ok {
			delim = d
		} else {
			delim = wm.Delimiter
		}
	}

	a := &mapping.FieldAction{Name: name}
	if reg != nil {
		reg.Resolve(a)
	}

	a.SetArgument(mapping.ArgDelimiter, delim)

	return a
}

func fieldRefs(fields []wire.Field, isSource bool, reg *mapping.ActionRegistry,
	diag *diagnostic.Diagnostics, mappingID string,
) ([]FieldRef, error) {
	var out []FieldRef

	for _, wf := range fields {
		if isCollectionGroup(&wf) {
			members, err := fieldRefs(wf.Fields, isSource, reg, diag, mappingID)
			if err != nil {
				return nil, err
			}

			out = append(out, members...)

			continue
		}

		if wf.DocID == "" || wf.Path == "" {
			return nil, fmt.Errorf("field %q has no document id or path", wf.Name)
		}

		ref := FieldRef{DocID: wf.DocID, Path: wf.Path, IsSource: isSource, Index: -1}
		if wf.Index != nil {
			ref.Index = *wf.Index
		}

		for _, wa := range wf.Actions {
			ref.Actions = append(ref.Actions, actionFromWire(wa, reg, diag, mappingID))
		}

		out = append(out, ref)
	}

	return out, nil
}

// actionFromWire reads an action. String arguments keep their content;
// any other literal keeps its JSON text.
func actionFromWire(wa wire.Action, reg *mapping.ActionRegistry,
	diag *diagnostic.Diagnostics, mappingID string,
) *mapping.FieldAction {
	a := &mapping.FieldAction{Name: wa.Type}

	for _, m := range wa.Args {
		var s string
		if err := json.Unmarshal(m.Value, &s); err == nil {
			a.Arguments = append(a.Arguments, mapping.ArgumentValue{Name: m.Key, Value: s})

			continue
		}

		a.Arguments = append(a.Arguments, mapping.ArgumentValue{Name: m.Key, Value: string(m.Value), Literal: true})
	}

	if reg != nil && reg.Len() > 0 && !reg.Resolve(a) {
		diag.AddError(diagnostic.ScopeMapping, "unknown_action",
			fmt.Sprintf("mapping %s uses unknown field action %q", mappingID, a.Name), mappingID)
	}

	return a
}
