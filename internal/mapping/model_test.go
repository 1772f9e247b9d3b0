package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datamapper/internal/document"
)

type fixture struct {
	src, tgt *document.Document
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	src := document.New("src", "Source", document.FormatJSON, true)
	tgt := document.New("tgt", "Target", document.FormatJSON, false)

	for _, doc := range []*document.Document{src, tgt} {
		for _, name := range []string{"first", "last", "full", "age"} {
			typ := document.TypeString
			if name == "age" {
				typ = document.TypeInteger
			}

			require.NoError(t, doc.AddField(nil, document.NewField(name, typ)))
		}

		color := document.NewField("color", document.TypeComplex)
		color.Enumeration = true
		color.EnumValues = []document.EnumValue{{Name: "RED"}, {Name: "BLUE", Ordinal: 1}}
		require.NoError(t, doc.AddField(nil, color))

		user := document.NewField("user", document.TypeComplex)
		require.NoError(t, doc.AddField(nil, user))
		require.NoError(t, doc.AddField(user, document.NewField("email", document.TypeString)))
	}

	return &fixture{src: src, tgt: tgt}
}

func (f *fixture) s(path string) *document.Field { return f.src.GetField(path) }
func (f *fixture) t(path string) *document.Field { return f.tgt.GetField(path) }

func TestUpdateTransitionStateMachine(t *testing.T) {
	fx := newFixture(t)

	tests := []struct {
		name       string
		sources    []string
		targets    []string
		wantMode   TransitionMode
		wantAction string
	}{
		{"one to one", []string{"/first"}, []string{"/first"}, ModeOneToOne, ""},
		{"many to one", []string{"/first", "/last"}, []string{"/full"}, ModeManyToOne, ActionConcatenate},
		{"one to many", []string{"/full"}, []string{"/first", "/last"}, ModeOneToMany, ActionSplit},
		{"enum", []string{"/color"}, []string{"/color"}, ModeEnum, ""},
		{"source only", []string{"/first"}, nil, ModeOneToOne, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMappingModel()
			for _, p := range tt.sources {
				_, err := m.AddField(fx.s(p))
				require.NoError(t, err)
			}

			for _, p := range tt.targets {
				_, err := m.AddField(fx.t(p))
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantMode, m.Transition.Mode)

			if tt.wantAction == "" {
				assert.Nil(t, m.Transition.Action)
			} else {
				require.NotNil(t, m.Transition.Action)
				assert.Equal(t, tt.wantAction, m.Transition.Action.Name)
				assert.Equal(t, DefaultDelimiter, m.Transition.Delimiter())
			}
		})
	}
}

func TestAddFieldRejectsManyToMany(t *testing.T) {
	fx := newFixture(t)
	m := NewMappingModel()

	for _, f := range []*document.Field{fx.s("/first"), fx.s("/last"), fx.t("/first")} {
		_, err := m.AddField(f)
		require.NoError(t, err)
	}

	_, err := m.AddField(fx.t("/last"))
	require.ErrorIs(t, err, ErrManyToMany)
	assert.Len(t, m.Fields(false), 1)
	assert.Equal(t, ModeManyToOne, m.Transition.Mode)

	_, err = m.AddField(fx.s("/first"))
	require.ErrorIs(t, err, ErrFieldAlreadyMapped)
}

func TestDelimiterSurvivesFieldChanges(t *testing.T) {
	fx := newFixture(t)
	m := NewMappingModel()

	_, _ = m.AddField(fx.s("/first"))
	_, _ = m.AddField(fx.s("/last"))
	_, _ = m.AddField(fx.t("/full"))
	m.Transition.SetDelimiter(",")

	_, err := m.AddField(fx.s("/age"))
	require.NoError(t, err)
	assert.Equal(t, ",", m.Transition.Delimiter())
	assert.False(t, m.Transition.IsUserDelimiter())

	m.Transition.SetDelimiter("<>")
	assert.True(t, m.Transition.IsUserDelimiter())

	assert.True(t, m.RemoveField(fx.s("/age")))
	assert.True(t, m.RemoveField(fx.s("/last")))
	assert.Equal(t, ModeOneToOne, m.Transition.Mode)
	assert.Nil(t, m.Transition.Action)
	assert.False(t, m.RemoveField(fx.s("/last")))
}

func TestExpressionMode(t *testing.T) {
	fx := newFixture(t)
	m := NewMappingModel()

	_, _ = m.AddField(fx.s("/first"))
	_, _ = m.AddField(fx.t("/full"))
	require.NoError(t, m.EnableExpression())

	assert.Equal(t, ModeExpression, m.Transition.Mode)
	assert.Equal(t, "${src:/first}", m.Transition.Expression.String())

	_, err := m.AddField(fx.s("/last"))
	require.NoError(t, err)
	assert.Equal(t, ModeExpression, m.Transition.Mode)
	assert.Equal(t, "${src:/first} + ${src:/last}", m.Transition.Expression.String())

	m.RemoveField(fx.s("/first"))
	assert.NotContains(t, m.Transition.Expression.String(), "/first")

	require.NoError(t, m.DisableExpression())
	assert.Equal(t, ModeOneToOne, m.Transition.Mode)
}

func TestPaddingAndFullyMapped(t *testing.T) {
	fx := newFixture(t)
	m := NewMappingModel()

	m.SetMappedFieldAt(NewMappedField(fx.s("/last")), true, 2)
	assert.Len(t, m.MappedFields(true), 3)
	assert.True(t, m.MappedFields(true)[0].IsPadding())
	assert.False(t, m.IsFullyMapped())

	m.SetMappedFieldAt(NewMappedField(fx.s("/first")), true, 0)
	assert.Equal(t, []*document.Field{fx.s("/first"), fx.s("/last")}, m.Fields(true))

	m.SetMappedFieldAt(NewMappedField(fx.t("/full")), false, 0)
	assert.True(t, m.IsFullyMapped())

	m.SetMappedFieldAt(NewPaddingField(), false, 3)
	m.TrimPadding()
	assert.Len(t, m.MappedFields(false), 1)
}

func TestDefinitionReferences(t *testing.T) {
	fx := newFixture(t)
	def := NewDefinition()

	a := NewMappingModel()
	_, _ = a.AddField(fx.s("/user/email"))
	_, _ = a.AddField(fx.t("/first"))
	def.AddMapping(a)

	b := NewMappingModel()
	_, _ = b.AddField(fx.s("/user/email"))
	_, _ = b.AddField(fx.s("/last"))
	mf, _ := b.AddField(fx.t("/full"))
	mf.Actions = append(mf.Actions, &FieldAction{Name: "Uppercase"})
	def.AddMapping(b)

	assert.Len(t, def.FindMappingsForField(fx.s("/user/email")), 2)

	usages := def.FieldUsages()
	require.Len(t, usages, 5)
	assert.True(t, usages[4].Transformed)
	assert.Len(t, def.Mappings()[1].Transformations(), 1)

	changed := def.RemoveFieldReferences(fx.s("/user"))
	assert.Len(t, changed, 2)
	assert.Len(t, def.Mappings(), 2)
	assert.Equal(t, ModeOneToOne, b.Transition.Mode)

	changed = def.RemoveDocumentReferences(fx.tgt)
	assert.Len(t, changed, 2)
	require.Len(t, def.Mappings(), 1)
	assert.Same(t, b, def.Mappings()[0])
	assert.Same(t, b, def.FindMapping(b.ID))
}

func TestLookupTable(t *testing.T) {
	fx := newFixture(t)
	def := NewDefinition()

	m := NewMappingModel()
	_, _ = m.AddField(fx.s("/color"))
	_, _ = m.AddField(fx.t("/color"))
	def.AddMapping(m)

	table := def.EnsureLookupTable(m)
	require.NotNil(t, table)
	assert.Equal(t, table.Name, m.Transition.LookupTableName)
	assert.Len(t, table.Entries, 2)

	table.Put(LookupEntry{SourceValue: "RED", TargetValue: "BLUE"})
	e, ok := table.Get("RED")
	require.True(t, ok)
	assert.Equal(t, "BLUE", e.TargetValue)

	table.Put(LookupEntry{SourceValue: "BLUE", TargetValue: "GREEN"})
	assert.Same(t, table, def.EnsureLookupTable(m))
	e, _ = table.Get("BLUE")
	assert.Empty(t, e.TargetValue)

	assert.Nil(t, def.EnsureLookupTable(NewMappingModel()))
}
