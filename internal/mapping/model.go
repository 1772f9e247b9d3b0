package mapping

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"datamapper/internal/document"
)

// ErrFieldAlreadyMapped is returned when a field is added twice to the same side of a mapping.
var ErrFieldAlreadyMapped = errors.New("field is already part of this mapping")

// MappedField is one position on a side of a mapping. A padding field
// holds a position without a field.
type MappedField struct {
	Field   *document.Field
	Actions []*FieldAction
}

// NewMappedField wraps a field.
func NewMappedField(f *document.Field) *MappedField {
	return &MappedField{Field: f}
}

// NewPaddingField returns a placeholder position.
func NewPaddingField() *MappedField {
	return &MappedField{}
}

// IsPadding reports whether no field is selected at this position.
func (m *MappedField) IsPadding() bool {
	return m.Field == nil
}

// MappingModel is one logical mapping.
type MappingModel struct {
	ID          string
	Description string
	Transition  TransitionModel

	sources []*MappedField
	targets []*MappedField
}

// NewMappingModel returns an empty ONE_TO_ONE mapping with a generated id.
func NewMappingModel() *MappingModel {
	return &MappingModel{ID: "mapping." + uuid.NewString()}
}

func (m *MappingModel) side(isSource bool) *[]*MappedField {
	if isSource {
		return &m.sources
	}

	return &m.targets
}

// MappedFields returns the positions of one side, padding included.
func (m *MappingModel) MappedFields(isSource bool) []*MappedField {
	return *m.side(isSource)
}

// Fields returns the selected fields of one side, skipping padding.
func (m *MappingModel) Fields(isSource bool) []*document.Field {
	var out []*document.Field
	for _, mf := range *m.side(isSource) {
		if !mf.IsPadding() {
			out = append(out, mf.Field)
		}
	}

	return out
}

// MappedField returns the position holding f, or nil.
func (m *MappingModel) MappedField(f *document.Field) *MappedField {
	for _, mf := range m.MappedFields(f.IsSource()) {
		if mf.Field == f {
			return mf
		}
	}

	return nil
}

// IsFieldMapped reports whether f is on either side of the mapping.
func (m *MappingModel) IsFieldMapped(f *document.Field) bool {
	for _, side := range [][]*MappedField{m.sources, m.targets} {
		for _, mf := range side {
			if mf.Field == f {
				return true
			}
		}
	}

	return false
}

// IsFullyMapped reports whether both sides hold a field.
func (m *MappingModel) IsFullyMapped() bool {
	return len(m.Fields(true)) > 0 && len(m.Fields(false)) > 0
}

// IsEmpty reports whether neither side holds a field.
func (m *MappingModel) IsEmpty() bool {
	return len(m.Fields(true)) == 0 && len(m.Fields(false)) == 0
}

// AddField appends f to its side and updates the transition. The add is
// undone when it would produce a many-to-many mapping.
func (m *MappingModel) AddField(f *document.Field) (*MappedField, error) {
	if m.IsFieldMapped(f) {
		return nil, fmt.Errorf("failed to add %s: %w", f.Path, ErrFieldAlreadyMapped)
	}

	isSource := f.IsSource()
	mf := NewMappedField(f)
	m.AddMappedField(mf, isSource)

	if err := m.UpdateTransition(); err != nil {
		m.RemoveMappedField(mf, isSource)

		return nil, err
	}

	if isSource && m.Transition.Mode == ModeExpression && m.Transition.Expression != nil {
		m.Transition.Expression.AppendField(f.DocID(), f.Path)
	}

	return mf, nil
}

// AddMappedField appends a position without touching the transition.
func (m *MappingModel) AddMappedField(mf *MappedField, isSource bool) {
	s := m.side(isSource)
	*s = append(*s, mf)
}

// SetMappedFieldAt places mf at index, padding any gap before it. A padding
// field already at index is replaced; otherwise mf is inserted there.
func (m *MappingModel) SetMappedFieldAt(mf *MappedField, isSource bool, index int) {
	s := m.side(isSource)

	for len(*s) < index {
		*s = append(*s, NewPaddingField())
	}

	switch {
	case index == len(*s):
		*s = append(*s, mf)
	case (*s)[index].IsPadding():
		(*s)[index] = mf
	default:
		*s = slices.Insert(*s, index, mf)
	}
}

// RemoveMappedField removes one position.
func (m *MappingModel) RemoveMappedField(mf *MappedField, isSource bool) bool {
	s := m.side(isSource)

	i := slices.Index(*s, mf)
	if i < 0 {
		return false
	}

	*s = slices.Delete(*s, i, i+1)

	return true
}

// RemoveField removes every position holding f, drops it from the
// expression and updates the transition.
func (m *MappingModel) RemoveField(f *document.Field) bool {
	removed := false

	for _, isSource := range []bool{true, false} {
		s := m.side(isSource)
		kept := (*s)[:0]

		for _, mf := range *s {
			if mf.Field == f {
				removed = true

				continue
			}

			kept = append(kept, mf)
		}

		*s = kept
	}

	if !removed {
		return false
	}

	if m.Transition.Expression != nil {
		m.Transition.Expression.RemoveField(f.DocID(), f.Path)
	}

	_ = m.UpdateTransition()

	return true
}

// TrimPadding removes trailing padding positions from both sides.
func (m *MappingModel) TrimPadding() {
	for _, isSource := range []bool{true, false} {
		s := m.side(isSource)
		for len(*s) > 0 && (*s)[len(*s)-1].IsPadding() {
			*s = (*s)[:len(*s)-1]
		}
	}
}

// UpdateTransition derives the transition mode from the mapped fields. An
// expression keeps the mapping in EXPRESSION mode.
func (m *MappingModel) UpdateTransition() error {
	sources := len(m.Fields(true))
	targets := len(m.Fields(false))

	if sources > 1 && targets > 1 {
		return ErrManyToMany
	}

	t := &m.Transition

	switch {
	case t.Expression != nil:
		t.Mode = ModeExpression
		t.Action = nil
	case sources > 1:
		if t.Mode != ModeManyToOne || t.Action == nil {
			t.Action = defaultTransitionAction(ActionConcatenate)
		}

		t.Mode = ModeManyToOne
	case targets > 1:
		if t.Mode != ModeOneToMany || t.Action == nil {
			t.Action = defaultTransitionAction(ActionSplit)
		}

		t.Mode = ModeOneToMany
	case sources == 1 && targets == 1 && m.Fields(true)[0].Enumeration && m.Fields(false)[0].Enumeration:
		t.Mode = ModeEnum
		t.Action = nil
	default:
		t.Mode = ModeOneToOne
		t.Action = nil
	}

	if t.Mode != ModeEnum {
		t.LookupTableName = ""
	}

	return nil
}

// EnableExpression switches the mapping to EXPRESSION mode with an
// expression referencing the current source fields.
func (m *MappingModel) EnableExpression() error {
	if len(m.Fields(false)) > 1 {
		return fmt.Errorf("failed to enable expression: %w", ErrManyToMany)
	}

	expr := &ExpressionModel{}
	for _, f := range m.Fields(true) {
		expr.AppendField(f.DocID(), f.Path)
	}

	m.Transition.Expression = expr

	return m.UpdateTransition()
}

// DisableExpression drops the expression and re-derives the mode.
func (m *MappingModel) DisableExpression() error {
	m.Transition.Expression = nil

	return m.UpdateTransition()
}

// Transformations returns every field action attached to a mapped field.
func (m *MappingModel) Transformations() []*FieldAction {
	var out []*FieldAction
	for _, side := range [][]*MappedField{m.sources, m.targets} {
		for _, mf := range side {
			out = append(out, mf.Actions...)
		}
	}

	return out
}
