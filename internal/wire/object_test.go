package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_KeepsKeyOrder(t *testing.T) {
	var obj Object
	require.NoError(t, json.Unmarshal([]byte(`{"z": 1, "a": "x", "m": {"n": true}}`), &obj))

	assert.Equal(t, []string{"z", "a", "m"}, obj.Keys())

	out, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.JSONEq(t, `{"z":1,"a":"x","m":{"n":true}}`, string(out))
	assert.Equal(t, `{"z":1,"a":"x","m":{"n":true}}`, string(out))
}

func TestObject_RejectsNonObject(t *testing.T) {
	var obj Object
	require.Error(t, json.Unmarshal([]byte(`[1,2]`), &obj))
}

func TestAction_RoundTrip(t *testing.T) {
	var a Action
	require.NoError(t, json.Unmarshal([]byte(`{"@type":"SubString","startIndex":0,"endIndex":3}`), &a))

	assert.Equal(t, "SubString", a.Type)
	assert.Equal(t, []string{"startIndex", "endIndex"}, a.Args.Keys())

	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `{"@type":"SubString","startIndex":0,"endIndex":3}`, string(out))
}

func TestAction_RequiresType(t *testing.T) {
	var a Action
	require.Error(t, json.Unmarshal([]byte(`{"delimiter":" "}`), &a))
}

func TestField_Children(t *testing.T) {
	f := Field{JSONFields: &JSONFields{JSONField: []Field{{Name: "a"}}}}
	require.Len(t, f.Children(), 1)

	g := Field{JavaEnumFields: &JavaEnumFields{JavaEnumField: []EnumValue{{Name: "RED"}}}}
	require.Len(t, g.EnumValues(), 1)
	assert.Nil(t, g.Children())
}

func TestMarshal_NoHTMLEscape(t *testing.T) {
	out, err := MarshalCompact(DataSource{JSONType: TypeXMLDataSource, ID: "x", URI: "atlas:xml:x", Template: "<a>&</a>"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"template":"<a>&</a>"`)
}
