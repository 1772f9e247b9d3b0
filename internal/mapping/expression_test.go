package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpression(t *testing.T) {
	tests := []struct {
		name   string
		expr   string
		refs   int
		legacy bool
	}{
		{"plain text", "'constant'", 0, false},
		{"single ref", "${src:/user/name}", 1, false},
		{"xml path with colon", "${xml:/tns:order/@id}", 1, false},
		{"conditional", "IF(ISEMPTY(${src:/a}), ${src:/b}, ${src:/a})", 3, false},
		{"legacy index", "${0} + ${1}", 2, true},
		{"malformed", "${nope} and ${", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := ParseExpression(tt.expr)
			assert.Len(t, e.FieldRefs(), tt.refs)
			assert.Equal(t, tt.legacy, e.HasIndexRefs())
			assert.Equal(t, tt.expr, e.String())
		})
	}

	ref := ParseExpression("${xml:/tns:order/@id}").FieldRefs()[0]
	assert.Equal(t, "xml", ref.DocID)
	assert.Equal(t, "/tns:order/@id", ref.Path)
}

func TestResolveIndexRefs(t *testing.T) {
	fx := newFixture(t)
	sources := []*MappedField{NewMappedField(fx.s("/first")), NewPaddingField(), NewMappedField(fx.s("/last"))}

	e := ParseExpression("${0} + ' ' + ${2}")
	require.NoError(t, e.ResolveIndexRefs(sources))
	assert.Equal(t, "${src:/first} + ' ' + ${src:/last}", e.String())
	assert.False(t, e.HasIndexRefs())

	require.Error(t, ParseExpression("${1}").ResolveIndexRefs(sources))
	require.Error(t, ParseExpression("${7}").ResolveIndexRefs(sources))
}
