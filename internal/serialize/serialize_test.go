package serialize

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datamapper/internal/diagnostic"
	"datamapper/internal/document"
	"datamapper/internal/mapping"
	"datamapper/internal/wire"
)

type fixture struct {
	model  *Model
	src    *document.Document
	tgt    *document.Document
	fields map[string]*document.Field
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fx := &fixture{
		src:    document.New("src", "Source", document.FormatJSON, true),
		tgt:    document.New("tgt", "Target", document.FormatJSON, false),
		fields: map[string]*document.Field{},
	}

	add := func(doc *document.Document, name string, typ document.FieldType) {
		f := document.NewField(name, typ)
		require.NoError(t, doc.AddField(nil, f))
		fx.fields[name] = f
	}

	add(fx.src, "firstName", document.TypeString)
	add(fx.src, "lastName", document.TypeString)
	add(fx.src, "age", document.TypeInteger)
	add(fx.tgt, "fullName", document.TypeString)
	add(fx.tgt, "first", document.TypeString)
	add(fx.tgt, "last", document.TypeString)
	add(fx.tgt, "years", document.TypeInteger)

	docs := document.NewSet()
	require.NoError(t, docs.Add(fx.src))
	require.NoError(t, docs.Add(fx.tgt))

	def := mapping.NewDefinition()
	def.Name = "UI.test"

	fx.model = &Model{
		Documents:   docs,
		Definition:  def,
		Actions:     mapping.NewActionRegistry(),
		Diagnostics: diagnostic.New(nil),
	}

	return fx
}

func (fx *fixture) mapping(t *testing.T, id string, names ...string) *mapping.MappingModel {
	t.Helper()

	mm := mapping.NewMappingModel()
	mm.ID = id

	for _, n := range names {
		_, err := mm.AddField(fx.fields[n])
		require.NoError(t, err)
	}

	fx.model.Definition.AddMapping(mm)

	return mm
}

func TestSerialize_Golden(t *testing.T) {
	fx := newFixture(t)

	age := fx.mapping(t, "mapping.age", "age", "years")
	age.MappedField(fx.fields["age"]).Actions = []*mapping.FieldAction{{Name: "Abs"}}

	name := fx.mapping(t, "mapping.name", "firstName", "lastName", "fullName")
	name.Transition.SetDelimiter(",")

	fx.mapping(t, "mapping.partial", "first")

	_, err := fx.model.Documents.AddConstant("greeting", "hi", document.TypeString)
	require.NoError(t, err)

	data, err := Marshal(fx.model)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "basic_mapping", data)
}

func TestSerialize_ModeShapes(t *testing.T) {
	fx := newFixture(t)

	split := fx.mapping(t, "mapping.split", "firstName", "first", "last")
	require.Equal(t, mapping.ModeOneToMany, split.Transition.Mode)

	am, err := Serialize(fx.model)
	require.NoError(t, err)
	require.Len(t, am.Mappings.Mapping, 1)

	wm := am.Mappings.Mapping[0]
	assert.Nil(t, wm.InputFieldGroup)
	require.Len(t, wm.InputField, 1)
	require.Len(t, wm.InputField[0].Actions, 1)
	assert.Equal(t, mapping.ActionSplit, wm.InputField[0].Actions[0].Type)
	assert.Nil(t, wm.InputField[0].Index)

	require.Len(t, wm.OutputField, 2)
	for i, out := range wm.OutputField {
		require.NotNil(t, out.Index)
		assert.Equal(t, i, *out.Index)
	}
}

func TestSerialize_Expression(t *testing.T) {
	fx := newFixture(t)

	mm := fx.mapping(t, "mapping.expr", "firstName", "fullName")
	require.NoError(t, mm.EnableExpression())
	_, err := mm.AddField(fx.fields["lastName"])
	require.NoError(t, err)

	am, err := Serialize(fx.model)
	require.NoError(t, err)

	wm := am.Mappings.Mapping[0]
	assert.Equal(t, "${src:/firstName} + ${src:/lastName}", wm.Expression)
	require.Len(t, wm.InputField, 2)
	require.NotNil(t, wm.InputField[0].Index)
	assert.Equal(t, 1, *wm.InputField[1].Index)
	require.Len(t, wm.OutputField, 1)
	assert.Nil(t, wm.OutputField[0].Index)
}

func TestSerialize_EnumWithoutTableIsReported(t *testing.T) {
	fx := newFixture(t)

	mm := fx.mapping(t, "mapping.enum", "age", "years")
	mm.Transition.Mode = mapping.ModeEnum
	mm.Transition.LookupTableName = "missing"

	fx.mapping(t, "mapping.ok", "lastName", "last")

	am, err := Serialize(fx.model)
	require.NoError(t, err)
	require.Len(t, am.Mappings.Mapping, 1)
	assert.Equal(t, "mapping.ok", am.Mappings.Mapping[0].ID)

	require.Len(t, fx.model.Diagnostics.Errors, 1)
	assert.Equal(t, "serialize_failed", fx.model.Diagnostics.Errors[0].Code)
	assert.Equal(t, diagnostic.ScopeMapping, fx.model.Diagnostics.Errors[0].Scope)
}

func TestSerialize_DetachedFieldIsReported(t *testing.T) {
	fx := newFixture(t)

	fx.mapping(t, "mapping.age", "age", "years")
	fx.mapping(t, "mapping.first", "firstName", "first")

	require.NoError(t, fx.src.RemoveField(fx.fields["age"]))

	am, err := Serialize(fx.model)
	require.NoError(t, err)
	require.Len(t, am.Mappings.Mapping, 1)
	assert.Equal(t, "mapping.first", am.Mappings.Mapping[0].ID)

	require.Len(t, fx.model.Diagnostics.Errors, 1)
	assert.Equal(t, "serialize_failed", fx.model.Diagnostics.Errors[0].Code)
	assert.Contains(t, fx.model.Diagnostics.Errors[0].Message, ErrDetachedField.Error())
}

func TestRoundTrip(t *testing.T) {
	fx := newFixture(t)

	name := fx.mapping(t, "mapping.name", "firstName", "lastName", "fullName")
	name.Transition.SetDelimiter("|")
	fx.mapping(t, "mapping.split", "firstName", "first", "last")
	age := fx.mapping(t, "mapping.age", "age", "years")
	abs := &mapping.FieldAction{Name: "AddDays"}
	abs.Arguments = []mapping.ArgumentValue{{Name: "days", Value: "2", Literal: true}}
	age.MappedField(fx.fields["years"]).Actions = []*mapping.FieldAction{abs}

	status := document.NewField("status", document.TypeString)
	status.Enumeration = true
	status.EnumValues = []document.EnumValue{{Name: "OPEN"}, {Name: "CLOSED", Ordinal: 1}}
	require.NoError(t, fx.src.AddField(nil, status))
	fx.fields["status"] = status

	state := document.NewField("state", document.TypeString)
	state.Enumeration = true
	state.EnumValues = []document.EnumValue{{Name: "ACTIVE"}, {Name: "DONE", Ordinal: 1}}
	require.NoError(t, fx.tgt.AddField(nil, state))
	fx.fields["state"] = state

	enum := fx.mapping(t, "mapping.status", "status", "state")
	require.Equal(t, mapping.ModeEnum, enum.Transition.Mode)
	table := fx.model.Definition.EnsureLookupTable(enum)
	require.NotNil(t, table)
	require.Len(t, table.Entries, 2)
	table.Entries[0].TargetValue = "ACTIVE"
	table.Entries[1].TargetValue = "DONE"

	expr := fx.mapping(t, "mapping.expr", "firstName", "last")
	require.NoError(t, expr.EnableExpression())
	_, err := expr.AddField(fx.fields["lastName"])
	require.NoError(t, err)

	_, err = fx.model.Documents.AddProperty("region", "eu", document.TypeString, "current", false)
	require.NoError(t, err)

	am, err := Serialize(fx.model)
	require.NoError(t, err)
	require.NotNil(t, am.LookupTables)
	require.Len(t, am.LookupTables.LookupTable, 1)
	assert.Equal(t, table.Name, am.LookupTables.LookupTable[0].Name)

	for _, wm := range am.Mappings.Mapping {
		switch wm.ID {
		case "mapping.status":
			assert.Equal(t, wire.MappingTypeLookup, wm.MappingType)
			assert.Equal(t, table.Name, wm.LookupTableName)
		case "mapping.expr":
			assert.Equal(t, "${src:/firstName} + ${src:/lastName}", wm.Expression)
		}
	}

	data, err := Marshal(fx.model)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"days": 2`)

	// Load into a fresh session over the same documents.
	docs := document.NewSet()
	require.NoError(t, docs.Add(fx.src))
	require.NoError(t, docs.Add(fx.tgt))

	loaded := &Model{Documents: docs, Definition: mapping.NewDefinition(), Diagnostics: diagnostic.New(nil)}
	require.NoError(t, Deserialize(loaded, data))
	assert.Empty(t, loaded.Diagnostics.All())
	assert.Equal(t, "UI.test", loaded.Definition.Name)
	require.Len(t, loaded.Definition.Mappings(), 5)

	got := loaded.Definition.FindMapping("mapping.name")
	require.NotNil(t, got)
	assert.Equal(t, mapping.ModeManyToOne, got.Transition.Mode)
	assert.Equal(t, mapping.ActionConcatenate, got.Transition.Action.Name)
	assert.Equal(t, "|", got.Transition.Delimiter())
	assert.Equal(t, []*document.Field{fx.fields["firstName"], fx.fields["lastName"]}, got.Fields(true))

	got = loaded.Definition.FindMapping("mapping.split")
	require.NotNil(t, got)
	assert.Equal(t, mapping.ModeOneToMany, got.Transition.Mode)
	assert.Equal(t, mapping.ActionSplit, got.Transition.Action.Name)
	assert.Empty(t, got.MappedField(fx.fields["firstName"]).Actions)
	assert.Len(t, got.Fields(false), 2)

	got = loaded.Definition.FindMapping("mapping.age")
	require.NotNil(t, got)
	acts := got.MappedField(fx.fields["years"]).Actions
	require.Len(t, acts, 1)
	assert.Equal(t, "AddDays", acts[0].Name)
	assert.Equal(t, []mapping.ArgumentValue{{Name: "days", Value: "2", Literal: true}}, acts[0].Arguments)

	got = loaded.Definition.FindMapping("mapping.status")
	require.NotNil(t, got)
	assert.Equal(t, mapping.ModeEnum, got.Transition.Mode)
	assert.Equal(t, table.Name, got.Transition.LookupTableName)

	lt := loaded.Definition.LookupTable(table.Name)
	require.NotNil(t, lt)
	v, ok := lt.Get("CLOSED")
	require.True(t, ok)
	assert.Equal(t, "DONE", v.TargetValue)

	got = loaded.Definition.FindMapping("mapping.expr")
	require.NotNil(t, got)
	assert.Equal(t, mapping.ModeExpression, got.Transition.Mode)
	assert.Equal(t, "${src:/firstName} + ${src:/lastName}", got.Transition.Expression.String())
	assert.Equal(t, []*document.Field{fx.fields["firstName"], fx.fields["lastName"]}, got.Fields(true))
	assert.Equal(t, []*document.Field{fx.fields["last"]}, got.Fields(false))

	prop := docs.Properties(false).GetField("/region")
	require.NotNil(t, prop)
	assert.Equal(t, "eu", prop.Value)
	assert.Equal(t, "current", prop.Scope)
}

func TestDeserialize_Legacy(t *testing.T) {
	const legacy = `{"AtlasMapping":{"jsonType":"io.atlasmap.v2.AtlasMapping","version":"1.3","name":"old",
	"constants":{"constant":[{"name":"sep","value":"-","fieldType":"STRING"}]},
	"mappings":{"mapping":[
	  {"jsonType":"io.atlasmap.v2.Mapping","id":"combine","mappingType":"COMBINE","delimiter":"Comma",
	   "inputField":[
	     {"jsonType":"io.atlasmap.json.v2.JsonField","docId":"src","path":"/lastName","index":2},
	     {"jsonType":"io.atlasmap.json.v2.JsonField","docId":"src","path":"/firstName","index":0}],
	   "outputField":[{"jsonType":"io.atlasmap.json.v2.JsonField","docId":"tgt","path":"/fullName"}]},
	  {"jsonType":"io.atlasmap.v2.Collection","mappingType":"COLLECTION","mappings":{"mapping":[
	    {"jsonType":"io.atlasmap.v2.Mapping","id":"separate","mappingType":"SEPARATE","delimiterString":";",
	     "inputField":[{"jsonType":"io.atlasmap.json.v2.JsonField","docId":"src","path":"/firstName"}],
	     "outputField":[
	       {"jsonType":"io.atlasmap.json.v2.JsonField","docId":"tgt","path":"/first","index":0},
	       {"jsonType":"io.atlasmap.json.v2.JsonField","docId":"tgt","path":"/last","index":1}]}]}},
	  {"jsonType":"io.atlasmap.v2.Mapping","id":"expr","expression":"IF(${0} == ${1}, 'same', 'different')",
	   "inputField":[
	     {"jsonType":"io.atlasmap.json.v2.JsonField","docId":"src","path":"/firstName","index":0},
	     {"jsonType":"io.atlasmap.v2.ConstantField","docId":"DOC.Constants.1","path":"/sep","index":1}],
	   "outputField":[{"jsonType":"io.atlasmap.json.v2.JsonField","docId":"tgt","path":"/last"}]}
	]}}}`

	fx := newFixture(t)
	m := fx.model
	require.NoError(t, Deserialize(m, []byte(legacy)))

	require.Len(t, m.Diagnostics.Warnings, 1)
	assert.Equal(t, "version_mismatch", m.Diagnostics.Warnings[0].Code)
	assert.Empty(t, m.Diagnostics.Errors)
	require.Len(t, m.Definition.Mappings(), 3)

	combine := m.Definition.FindMapping("combine")
	assert.Equal(t, mapping.ModeManyToOne, combine.Transition.Mode)
	assert.Equal(t, ",", combine.Transition.Delimiter())

	srcs := combine.MappedFields(true)
	require.Len(t, srcs, 3)
	assert.Equal(t, fx.fields["firstName"], srcs[0].Field)
	assert.True(t, srcs[1].IsPadding())
	assert.Equal(t, fx.fields["lastName"], srcs[2].Field)

	separate := m.Definition.FindMapping("separate")
	require.NotNil(t, separate)
	assert.Equal(t, mapping.ModeOneToMany, separate.Transition.Mode)
	assert.Equal(t, ";", separate.Transition.Delimiter())

	expr := m.Definition.FindMapping("expr")
	assert.Equal(t, mapping.ModeExpression, expr.Transition.Mode)
	assert.Equal(t, "IF(${src:/firstName} == ${DOC.Constants:/sep}, 'same', 'different')",
		expr.Transition.Expression.String())
	assert.Equal(t, "-", m.Documents.Constants().GetField("/sep").Value)
}

func TestDeserialize_UnresolvedReferences(t *testing.T) {
	const data = `{"AtlasMapping":{"jsonType":"io.atlasmap.v2.AtlasMapping","version":"2.0",
	"mappings":{"mapping":[
	  {"jsonType":"io.atlasmap.v2.Mapping","id":"bad-field",
	   "inputField":[{"docId":"src","path":"/nope"}],
	   "outputField":[{"docId":"tgt","path":"/first"}]},
	  {"jsonType":"io.atlasmap.v2.Mapping","id":"gone-doc",
	   "inputField":[{"docId":"deleted","path":"/x"}],
	   "outputField":[{"docId":"tgt","path":"/last"}]},
	  {"jsonType":"io.atlasmap.v2.Mapping","id":"fine",
	   "inputField":[{"docId":"src","path":"/age"}],
	   "outputField":[{"docId":"tgt","path":"/years"}]}
	]}}}`

	fx := newFixture(t)
	m := fx.model
	require.NoError(t, Deserialize(m, []byte(data)))

	codes := map[string]bool{}
	for _, d := range m.Diagnostics.Errors {
		codes[d.Code] = true
	}

	assert.True(t, codes["unresolved_field"])
	assert.True(t, codes["missing_document"])
	assert.Empty(t, m.Diagnostics.Warnings)

	assert.Nil(t, m.Definition.FindMapping("bad-field"))

	gone := m.Definition.FindMapping("gone-doc")
	require.NotNil(t, gone)
	assert.False(t, gone.IsFullyMapped())
	assert.Equal(t, []*document.Field{fx.fields["last"]}, gone.Fields(false))

	assert.NotNil(t, m.Definition.FindMapping("fine"))
}

func TestDeserialize_Errors(t *testing.T) {
	fx := newFixture(t)

	err := Deserialize(fx.model, []byte(`{"other":{}}`))
	require.ErrorIs(t, err, ErrNoMapping)

	err = Deserialize(fx.model, []byte(`{`))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to parse mapping file"))
}

func TestPreview(t *testing.T) {
	src := document.New("src", "", document.FormatJSON, true)
	items := document.NewField("items", document.TypeComplex)
	items.CollectionType = document.CollectionList
	require.NoError(t, src.AddField(nil, items))
	sku := document.NewField("sku", document.TypeString)
	require.NoError(t, src.AddField(items, sku))

	tgt := document.New("tgt", "", document.FormatJSON, false)
	code := document.NewField("code", document.TypeString)
	require.NoError(t, tgt.AddField(nil, code))

	mm := mapping.NewMappingModel()
	_, err := mm.AddField(sku)
	require.NoError(t, err)

	_, err = PreviewRequest(mm, nil)
	require.ErrorIs(t, err, ErrNotFullyMapped)

	_, err = mm.AddField(code)
	require.NoError(t, err)

	req, err := PreviewRequest(mm, map[string]string{"/items<>/sku": "A-1"})
	require.NoError(t, err)

	in := req.ProcessMappingRequest.Mapping.InputField
	require.Len(t, in, 1)
	assert.Equal(t, wire.TypeFieldGroup, in[0].JSONType)
	assert.Equal(t, "/items<0>", in[0].Path)
	require.Len(t, in[0].Fields, 1)
	assert.Equal(t, "/items<0>/sku", in[0].Fields[0].Path)
	assert.Equal(t, "A-1", in[0].Fields[0].Value)
	assert.Equal(t, wire.TypeProcessMappingRequest, req.ProcessMappingRequest.JSONType)

	diag := diagnostic.New(nil)
	res, err := ParsePreviewResponse([]byte(`{"ProcessMappingResponse":{"mapping":{"jsonType":"io.atlasmap.v2.Mapping",
		"outputField":[{"docId":"tgt","path":"/code","value":"A-1"}]},
		"audits":{"audit":[{"status":"WARN","message":"value truncated","path":"/code"}]}}}`), diag)
	require.NoError(t, err)
	assert.Equal(t, "A-1", res.Values["/code"])
	require.Len(t, diag.Warnings, 1)
	assert.Equal(t, diagnostic.ScopeMapping, diag.Warnings[0].Scope)
}

func newCollectionModel(t *testing.T) (*Model, map[string]*document.Field) {
	t.Helper()

	fields := map[string]*document.Field{}
	collection := func(doc *document.Document, name string, leaves ...string) {
		c := document.NewField(name, document.TypeComplex)
		c.CollectionType = document.CollectionList
		require.NoError(t, doc.AddField(nil, c))
		fields[name] = c

		for _, l := range leaves {
			f := document.NewField(l, document.TypeString)
			require.NoError(t, doc.AddField(c, f))
			fields[l] = f
		}
	}

	src := document.New("src", "", document.FormatJSON, true)
	collection(src, "items", "a", "b")
	code := document.NewField("code", document.TypeString)
	require.NoError(t, src.AddField(nil, code))
	fields["code"] = code

	tgt := document.New("tgt", "", document.FormatJSON, false)
	collection(tgt, "lines", "x", "y")
	total := document.NewField("total", document.TypeString)
	require.NoError(t, tgt.AddField(nil, total))
	fields["total"] = total

	docs := document.NewSet()
	require.NoError(t, docs.Add(src))
	require.NoError(t, docs.Add(tgt))

	return &Model{
		Documents:   docs,
		Definition:  mapping.NewDefinition(),
		Diagnostics: diagnostic.New(nil),
	}, fields
}

func TestSerialize_CollectionFieldGroup(t *testing.T) {
	m, fields := newCollectionModel(t)

	combine := mapping.NewMappingModel()
	combine.ID = "mapping.combine"
	for _, n := range []string{"a", "b", "total"} {
		_, err := combine.AddField(fields[n])
		require.NoError(t, err)
	}
	m.Definition.AddMapping(combine)

	split := mapping.NewMappingModel()
	split.ID = "mapping.split"
	for _, n := range []string{"code", "x", "y"} {
		_, err := split.AddField(fields[n])
		require.NoError(t, err)
	}
	m.Definition.AddMapping(split)

	am, err := Serialize(m)
	require.NoError(t, err)
	require.Len(t, am.Mappings.Mapping, 2)

	wm := am.Mappings.Mapping[0]
	require.NotNil(t, wm.InputFieldGroup)
	require.Len(t, wm.InputFieldGroup.Fields, 1)

	group := wm.InputFieldGroup.Fields[0]
	assert.Equal(t, wire.TypeFieldGroup, group.JSONType)
	assert.Equal(t, "/items<>", group.Path)
	assert.Equal(t, "src", group.DocID)
	assert.Equal(t, string(document.CollectionList), group.CollectionType)
	require.Len(t, group.Fields, 2)

	for i, want := range []string{"/items<>/a", "/items<>/b"} {
		assert.Equal(t, want, group.Fields[i].Path)
		require.NotNil(t, group.Fields[i].Index)
		assert.Equal(t, i, *group.Fields[i].Index)
	}

	wm = am.Mappings.Mapping[1]
	require.Len(t, wm.InputField, 1)
	require.Len(t, wm.InputField[0].Actions, 1)
	assert.Equal(t, mapping.ActionSplit, wm.InputField[0].Actions[0].Type)
	require.Len(t, wm.OutputField, 1)
	assert.Equal(t, "/lines<>", wm.OutputField[0].Path)
	require.Len(t, wm.OutputField[0].Fields, 2)

	req, err := PreviewRequest(combine, map[string]string{"/items<>/a": "1", "/items<>/b": "2"})
	require.NoError(t, err)

	pg := req.ProcessMappingRequest.Mapping.InputFieldGroup.Fields[0]
	assert.Equal(t, "/items<0>", pg.Path)
	require.Len(t, pg.Fields, 2)
	assert.Equal(t, "/items<0>/a", pg.Fields[0].Path)
	assert.Equal(t, "1", pg.Fields[0].Value)
	assert.Equal(t, "/items<0>/b", pg.Fields[1].Path)
	assert.Equal(t, "2", pg.Fields[1].Value)

	data, err := Marshal(m)
	require.NoError(t, err)

	loaded := &Model{Documents: m.Documents, Definition: mapping.NewDefinition(), Diagnostics: diagnostic.New(nil)}
	require.NoError(t, Deserialize(loaded, data))
	assert.Empty(t, loaded.Diagnostics.All())

	got := loaded.Definition.FindMapping("mapping.combine")
	require.NotNil(t, got)
	assert.Equal(t, mapping.ModeManyToOne, got.Transition.Mode)
	assert.Equal(t, []*document.Field{fields["a"], fields["b"]}, got.Fields(true))
	assert.Equal(t, []*document.Field{fields["total"]}, got.Fields(false))

	got = loaded.Definition.FindMapping("mapping.split")
	require.NotNil(t, got)
	assert.Equal(t, mapping.ModeOneToMany, got.Transition.Mode)
	assert.Equal(t, mapping.ActionSplit, got.Transition.Action.Name)
	assert.Empty(t, got.MappedField(fields["code"]).Actions)
	assert.Equal(t, []*document.Field{fields["x"], fields["y"]}, got.Fields(false))
}

func TestParsePreviewResponse_Groups(t *testing.T) {
	res, err := ParsePreviewResponse([]byte(`{"ProcessMappingResponse":{"mapping":{"outputField":[
		{"jsonType":"io.atlasmap.v2.FieldGroup","docId":"tgt","path":"/lines<0>","collectionType":"LIST","field":[
		  {"docId":"tgt","path":"/lines<0>/x","value":"a"},
		  {"docId":"tgt","path":"/lines<0>/y","value":"b"}]}]}}}`), nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"/lines<0>/x": "a", "/lines<0>/y": "b"}, res.Values)
}

func TestFirstInstancePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/a<>/b[]/c", "/a<0>/b[0]/c"},
		{"/plain", "/plain"},
		{"/tns:orders[]/@id", "/tns:orders[0]/@id"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstInstancePath(tt.in))
		})
	}
}
