package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datamapper/internal/document"
	"datamapper/internal/mapping"
)

func TestIsTypeCompatible(t *testing.T) {
	tests := []struct {
		declared document.FieldType
		selected document.FieldType
		want     bool
	}{
		{document.TypeAny, document.TypeComplex, true},
		{document.TypeAnyDate, document.TypeDateTimeTZ, true},
		{document.TypeAnyDate, document.TypeTime, true},
		{document.TypeAnyDate, document.TypeDateTZ, false},
		{document.TypeAnyDate, document.TypeString, false},
		{document.TypeNumber, document.TypeDecimal, true},
		{document.TypeNumber, document.TypeByte, true},
		{document.TypeNumber, document.TypeString, false},
		{document.TypeNumber, document.TypeBigInteger, false},
		{document.TypeString, document.TypeString, true},
		{document.TypeString, document.TypeChar, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.declared)+"/"+string(tt.selected), func(t *testing.T) {
			assert.Equal(t, tt.want, IsTypeCompatible(tt.declared, tt.selected))
		})
	}
}

func TestScoreTypeCompatibility(t *testing.T) {
	tests := []struct {
		source, target document.FieldType
		want           TypeCompatibility
	}{
		{document.TypeString, document.TypeString, TypeIdentical},
		{document.TypeAny, document.TypeLong, TypeAssignable},
		{document.TypeInteger, document.TypeLong, TypeConvertible},
		{document.TypeDate, document.TypeDateTime, TypeConvertible},
		{document.TypeInteger, document.TypeString, TypeNeedsTransform},
		{document.TypeComplex, document.TypeString, TypeIncompatible},
		{document.TypeBoolean, document.TypeDate, TypeIncompatible},
	}

	for _, tt := range tests {
		t.Run(string(tt.source)+"->"+string(tt.target), func(t *testing.T) {
			res := ScoreTypeCompatibility(tt.source, tt.target)
			assert.Equal(t, tt.want, res.Compatibility, res.Reason)
		})
	}

	assert.Less(t, TypeIncompatible.Score(), TypeNeedsTransform.Score())
	assert.Equal(t, "convertible", TypeConvertible.String())
	assert.Equal(t, "unknown", TypeCompatibility(42).String())
}

func field(t *testing.T, doc *document.Document, name string, typ document.FieldType) *document.Field {
	t.Helper()

	f := document.NewField(name, typ)
	require.NoError(t, doc.AddField(nil, f))

	return f
}

func TestActionsForField(t *testing.T) {
	r := mapping.NewActionRegistry()
	_, err := r.LoadJSON([]byte(`{"ActionDetails":{"actionDetail":[
		{"name":"AddDays","sourceType":"ANY_DATE","targetType":"ANY_DATE","multiplicity":"ONE_TO_ONE"},
		{"name":"Abs","sourceType":"NUMBER","targetType":"NUMBER","multiplicity":"ONE_TO_ONE"},
		{"name":"Length","sourceType":"STRING","targetType":"INTEGER","multiplicity":"ONE_TO_ONE"},
		{"name":"Trim","sourceType":"STRING","targetType":"STRING","multiplicity":"ONE_TO_ONE"},
		{"name":"ToString","sourceType":"ANY","targetType":"STRING","multiplicity":"ONE_TO_ONE"},
		{"name":"Concatenate","sourceType":"ANY","targetType":"STRING","multiplicity":"MANY_TO_ONE"}]}}`))
	require.NoError(t, err)

	src := document.New("src", "", document.FormatJSON, true)
	tgt := document.New("tgt", "", document.FormatJSON, false)
	when := field(t, src, "when", document.TypeDateTimeTZ)
	name := field(t, src, "name", document.TypeString)
	label := field(t, tgt, "label", document.TypeString)

	names := func(defs []*mapping.ActionDefinition) []string {
		var out []string
		for _, d := range defs {
			out = append(out, d.Name)
		}

		return out
	}

	assert.True(t, AppliesToSourceField(r.Get("AddDays"), when))
	assert.False(t, AppliesToSourceField(r.Get("Abs"), name))
	assert.False(t, AppliesToTargetField(r.Get("Length"), label))

	m := mapping.NewMappingModel()
	_, _ = m.AddField(name)
	_, _ = m.AddField(label)

	assert.Equal(t, []string{"Length", "ToString", "Trim"},
		names(ActionsForField(r, m, true, mapping.MultiplicityOneToOne)))
	assert.Equal(t, []string{"ToString", "Trim"},
		names(ActionsForField(r, m, false, mapping.MultiplicityOneToOne)))
	assert.Empty(t, ActionsForField(r, m, false, mapping.MultiplicityManyToOne))
	assert.Equal(t, []string{"Concatenate"},
		names(ActionsForField(r, m, true, mapping.MultiplicityManyToOne)))
	assert.Empty(t, ActionsForField(r, mapping.NewMappingModel(), true, mapping.MultiplicityOneToOne))
}
