package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datamapper/internal/catalog"
	"datamapper/internal/config"
	"datamapper/internal/document"
	"datamapper/internal/mapping"
	"datamapper/internal/transport"
)

const actionsJSON = `{"ActionDetails":{"actionDetail":[
	{"name":"Uppercase","sourceType":"STRING","targetType":"STRING","multiplicity":"ONE_TO_ONE",
	 "actionSchema":{"type":"object","properties":{}}},
	{"name":"Concatenate","sourceType":"ANY","targetType":"STRING","multiplicity":"MANY_TO_ONE",
	 "actionSchema":{"type":"object","properties":{"delimiter":{"type":"string","default":" "}}}}]}}`

const sourceResult = `{"JsonInspectionResponse":{"jsonDocument":{"fields":{"field":[
	{"name":"firstName","path":"/firstName","fieldType":"STRING"},
	{"name":"lastName","path":"/lastName","fieldType":"STRING"},
	{"name":"age","path":"/age","fieldType":"INTEGER"}]}}}}`

const targetResult = `{"JsonInspectionResponse":{"jsonDocument":{"fields":{"field":[
	{"name":"fullName","path":"/fullName","fieldType":"STRING"},
	{"name":"age","path":"/age","fieldType":"INTEGER"}]}}}}`

type fakeClient struct {
	mu       sync.Mutex
	calls    []transport.Request
	response map[string][]byte
	// err, when set, fails every call that has no canned response.
	err error
}

func (c *fakeClient) Do(_ context.Context, req transport.Request) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, req)
	for suffix, body := range c.response {
		if strings.HasSuffix(req.URL, suffix) {
			return body, nil
		}
	}

	if c.err != nil {
		return nil, c.err
	}

	return nil, &transport.Error{Method: req.Method, URL: req.URL, Status: 503, StatusText: "Service Unavailable"}
}

func jsonDoc(id string, isSource bool, result string) *document.Document {
	doc := document.New(id, strings.ToUpper(id), document.FormatJSON, isSource)
	doc.InspectionResult = result

	return doc
}

// newSession returns an initialized session over one source and one target.
func newSession(t *testing.T, opts ...Option) (*Session, *fakeClient) {
	t.Helper()

	client := &fakeClient{response: map[string][]byte{"/fieldActions": []byte(actionsJSON)}}

	cfg := config.Default()
	cfg.FieldActionServiceURL = "http://svc/actions"
	cfg.MappingServiceURL = "http://svc/mapping"

	s, err := New(cfg, append([]Option{WithClient(client)}, opts...)...)
	require.NoError(t, err)

	require.NoError(t, s.Documents.Add(jsonDoc("src", true, sourceResult)))
	require.NoError(t, s.Documents.Add(jsonDoc("tgt", false, targetResult)))
	require.NoError(t, s.Initialize(context.Background()))

	return s, client
}

func (s *Session) field(t *testing.T, docID string, isSource bool, path string) *document.Field {
	t.Helper()

	doc := s.Documents.Find(docID, isSource)
	require.NotNil(t, doc)

	f := doc.GetField(path)
	require.NotNil(t, f, path)

	return f
}

func TestInitialize(t *testing.T) {
	s, client := newSession(t)

	assert.Equal(t, 2, s.Actions.Len())
	require.Len(t, client.calls, 1)
	assert.Equal(t, "http://svc/actions/fieldActions", client.calls[0].URL)
	assert.Equal(t, []string{"/age", "/firstName", "/lastName"}, s.Documents.Find("src", true).FieldPaths())
	assert.Empty(t, s.Diagnostics.Errors)
}

func TestInitialize_ActionsUnavailable(t *testing.T) {
	s, err := New(nil, WithClient(&fakeClient{}))
	require.NoError(t, err)

	require.NoError(t, s.Initialize(context.Background()))
	assert.Zero(t, s.Actions.Len())
	require.Len(t, s.Diagnostics.Warnings, 1)
	assert.Equal(t, "actions_unavailable", s.Diagnostics.Warnings[0].Code)
}

func TestInitialize_RebindsMappings(t *testing.T) {
	s, _ := newSession(t)

	name, err := s.NewMapping(s.field(t, "src", true, "/firstName"), s.field(t, "tgt", false, "/fullName"))
	require.NoError(t, err)
	age, err := s.NewMapping(s.field(t, "src", true, "/age"), s.field(t, "tgt", false, "/age"))
	require.NoError(t, err)

	require.NoError(t, s.Initialize(context.Background()))

	assert.Equal(t, []*document.Field{s.field(t, "src", true, "/firstName")}, name.Fields(true))
	assert.Equal(t, []*document.Field{s.field(t, "tgt", false, "/fullName")}, name.Fields(false))
	for _, f := range age.Fields(true) {
		assert.NotNil(t, f.Document())
	}
	assert.True(t, s.field(t, "tgt", false, "/age").PartOfMapping)

	data, err := s.ExportMappings()
	require.NoError(t, err)
	assert.Contains(t, string(data), name.ID)
	assert.Contains(t, string(data), age.ID)
	assert.Empty(t, s.Diagnostics.Errors)

	// A field gone from the new inspection result drops its mapping.
	s.Documents.Find("src", true).InspectionResult = `{"JsonInspectionResponse":{"jsonDocument":{"fields":{"field":[
		{"name":"firstName","path":"/firstName","fieldType":"STRING"}]}}}}`
	require.NoError(t, s.Initialize(context.Background()))

	require.Len(t, s.Definition.Mappings(), 1)
	assert.Equal(t, name.ID, s.Definition.Mappings()[0].ID)
	require.Len(t, s.Diagnostics.Errors, 1)
	assert.Equal(t, "unresolved_field", s.Diagnostics.Errors[0].Code)
	assert.False(t, s.field(t, "tgt", false, "/age").PartOfMapping)
}

func TestAddDocument(t *testing.T) {
	s, _ := newSession(t)

	xml := document.New("order", "Order", document.FormatXML, false)
	require.Error(t, s.AddDocument(context.Background(), xml))
	assert.Nil(t, s.Documents.Find("order", false))
	assert.True(t, s.Diagnostics.HasErrors())

	extra := jsonDoc("extra", true, `{"JsonInspectionResponse":{"jsonDocument":{"fields":{"field":[
		{"name":"email","path":"/email","fieldType":"STRING"}]}}}}`)
	require.NoError(t, s.AddDocument(context.Background(), extra))
	assert.NotNil(t, s.field(t, "extra", true, "/email"))

	require.ErrorIs(t, s.AddDocument(context.Background(), extra), document.ErrDuplicateDocument)
}

func TestMappingLifecycle(t *testing.T) {
	s, _ := newSession(t)

	first := s.field(t, "src", true, "/firstName")
	last := s.field(t, "src", true, "/lastName")
	full := s.field(t, "tgt", false, "/fullName")

	mm, err := s.NewMapping(first, last, full)
	require.NoError(t, err)
	assert.Equal(t, mapping.ModeManyToOne, mm.Transition.Mode)
	assert.True(t, first.PartOfMapping)
	assert.True(t, full.PartOfMapping)

	require.NoError(t, s.RemoveField(last))
	assert.Len(t, mm.Fields(true), 1)
	assert.Nil(t, s.Documents.Find("src", true).GetField("/lastName"))

	require.NoError(t, s.RemoveDocument("src", true))
	assert.Empty(t, mm.Fields(true))
	assert.Len(t, s.Definition.Mappings(), 1)
	assert.True(t, full.PartOfMapping)

	require.Error(t, s.RemoveDocument("src", true))
	require.Error(t, s.RemoveDocument(document.ConstantsDocID, true))
}

func TestSearch(t *testing.T) {
	s, _ := newSession(t)
	s.Config.SearchMatchLimit = 1

	res := s.Search("name", true)
	assert.True(t, res.Exceeded)
	require.Len(t, s.Diagnostics.Warnings, 1)
	assert.Equal(t, "search_limit", s.Diagnostics.Warnings[0].Code)

	res = s.Search("age", false)
	assert.False(t, res.Exceeded)
	assert.Equal(t, 1, res.Matches)
}

func TestSuggestAndActions(t *testing.T) {
	s, _ := newSession(t)

	age := s.field(t, "tgt", false, "/age")
	top := s.SuggestSources(age, 1)
	require.Len(t, top, 1)
	assert.Equal(t, "/age", top[0].Source.Path)

	full := s.field(t, "tgt", false, "/fullName")
	mm, err := s.NewMapping(s.field(t, "src", true, "/firstName"), full)
	require.NoError(t, err)

	defs := s.ActionsForField(mm, false, mapping.MultiplicityOneToOne)
	require.Len(t, defs, 1)
	assert.Equal(t, "Uppercase", defs[0].Name)
}

func TestExportImportMappings(t *testing.T) {
	s, _ := newSession(t)

	_, err := s.NewMapping(s.field(t, "src", true, "/age"), s.field(t, "tgt", false, "/age"))
	require.NoError(t, err)

	data, err := s.ExportMappings()
	require.NoError(t, err)

	other, _ := newSession(t)
	require.NoError(t, other.ImportMappings(data))
	require.Len(t, other.Definition.Mappings(), 1)
	assert.Equal(t, s.Definition.Name, other.Definition.Name)
	assert.True(t, other.field(t, "tgt", false, "/age").PartOfMapping)
	assert.True(t, other.Validate().IsValid())
}

func TestCatalogRoundTrip(t *testing.T) {
	store := catalog.NewFileStore(t.TempDir())
	s, _ := newSession(t, WithStore(store))

	_, err := s.NewMapping(s.field(t, "src", true, "/firstName"), s.field(t, "tgt", false, "/fullName"))
	require.NoError(t, err)
	_, err = s.Documents.AddConstant("greeting", "hi", document.TypeString)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.SaveCatalog(ctx, "people"))

	restored, err := New(config.Default(), WithClient(&fakeClient{}), WithStore(store))
	require.NoError(t, err)
	require.NoError(t, restored.LoadCatalog(ctx, "people"))

	assert.Len(t, restored.Documents.Sources(), 1)
	assert.Len(t, restored.Documents.Targets(), 1)
	require.Len(t, restored.Definition.Mappings(), 1)
	assert.True(t, restored.field(t, "tgt", false, "/fullName").PartOfMapping)
	assert.NotNil(t, restored.Documents.Constants().GetField("/greeting"))

	bare, err := New(nil, WithClient(&fakeClient{}))
	require.NoError(t, err)
	require.ErrorIs(t, bare.SaveCatalog(ctx, "people"), ErrNoStore)
	require.ErrorIs(t, bare.LoadCatalog(ctx, "people"), ErrNoStore)
}

func TestPreview(t *testing.T) {
	s, client := newSession(t)
	client.response["/mapping/process"] = []byte(`{"ProcessMappingResponse":{"mapping":{"jsonType":"io.atlasmap.v2.Mapping",
		"outputField":[{"docId":"tgt","path":"/fullName","value":"ADA"}]}}}`)

	mm, err := s.NewMapping(s.field(t, "src", true, "/firstName"), s.field(t, "tgt", false, "/fullName"))
	require.NoError(t, err)

	res, err := s.Preview(context.Background(), mm, map[string]string{"/firstName": "ada"})
	require.NoError(t, err)
	assert.Equal(t, "ADA", res.Values["/fullName"])

	last := client.calls[len(client.calls)-1]
	assert.Equal(t, "http://svc/mapping/mapping/process", last.URL)
	assert.Contains(t, string(last.Body), `"value":"ada"`)

	delete(client.response, "/mapping/process")
	_, err = s.Preview(context.Background(), mm, map[string]string{"/firstName": "ada"})
	require.Error(t, err)
	require.NotEmpty(t, s.Diagnostics.Errors)
	assert.Equal(t, "preview_failed", s.Diagnostics.Errors[len(s.Diagnostics.Errors)-1].Code)

	s.Config.MappingServiceURL = ""
	_, err = s.Preview(context.Background(), mm, nil)
	require.ErrorIs(t, err, ErrPreviewUnavailable)
}

func TestPreview_NetworkError(t *testing.T) {
	s, client := newSession(t)
	client.err = &transport.Error{Method: "PUT", URL: "http://svc/mapping/mapping/process", Err: errors.New("connection refused")}

	mm, err := s.NewMapping(s.field(t, "src", true, "/firstName"), s.field(t, "tgt", false, "/fullName"))
	require.NoError(t, err)

	_, err = s.Preview(context.Background(), mm, nil)
	require.Error(t, err)
	assert.True(t, transport.IsNetworkError(err))

	require.Len(t, s.Diagnostics.Errors, 1)
	msg := s.Diagnostics.Errors[0].Message
	assert.Equal(t, 1, strings.Count(msg, "fatal network error"), msg)
	assert.Contains(t, msg, "connection refused")
}
