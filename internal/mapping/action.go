package mapping

import (
	"slices"

	"datamapper/internal/document"
)

// Names of the built-in transition actions.
const (
	ActionConcatenate = "Concatenate"
	ActionSplit       = "Split"
)

// Argument names used by the transition actions.
const (
	ArgDelimiter = "delimiter"
)

// ActionParameter describes one declared argument of a field action.
type ActionParameter struct {
	Name        string
	Type        string
	Title       string
	Description string
	Enum        []string
	Default     string
	Const       string
}

// IsLiteral reports whether values of this parameter are written as bare
// JSON literals (numbers and booleans) rather than strings.
func (p *ActionParameter) IsLiteral() bool {
	switch p.Type {
	case "integer", "number", "boolean":
		return true
	default:
		return false
	}
}

// ActionDefinition is a field action known to the runtime.
type ActionDefinition struct {
	Name         string
	ClassName    string
	Method       string
	SourceType   document.FieldType
	TargetType   document.FieldType
	Multiplicity Multiplicity
	Parameters   []ActionParameter
}

// Parameter returns the declared parameter with the given name.
func (d *ActionDefinition) Parameter(name string) *ActionParameter {
	for i := range d.Parameters {
		if d.Parameters[i].Name == name {
			return &d.Parameters[i]
		}
	}

	return nil
}

// ArgumentValue is one argument of an applied field action. Literal values
// are serialized as bare JSON (numbers, booleans).
type ArgumentValue struct {
	Name    string
	Value   string
	Literal bool
}

// FieldAction is a field action applied to a mapped field or a transition.
type FieldAction struct {
	Name      string
	Arguments []ArgumentValue

	// Definition is resolved against the registry; it is never serialized.
	Definition *ActionDefinition
}

// NewFieldAction returns an action for def with every declared argument set
// to its default (or const) value.
func NewFieldAction(def *ActionDefinition) *FieldAction {
	a := &FieldAction{Name: def.Name, Definition: def}
	for _, p := range def.Parameters {
		value := p.Default
		if p.Const != "" {
			value = p.Const
		}

		a.Arguments = append(a.Arguments, ArgumentValue{Name: p.Name, Value: value, Literal: p.IsLiteral()})
	}

	return a
}

// Argument returns the value of the named argument.
func (a *FieldAction) Argument(name string) (string, bool) {
	for _, arg := range a.Arguments {
		if arg.Name == name {
			return arg.Value, true
		}
	}

	return "", false
}

// SetArgument sets or appends the named argument.
func (a *FieldAction) SetArgument(name, value string) {
	for i := range a.Arguments {
		if a.Arguments[i].Name == name {
			a.Arguments[i].Value = value

			return
		}
	}

	literal := false
	if a.Definition != nil {
		if p := a.Definition.Parameter(name); p != nil {
			literal = p.IsLiteral()
		}
	}

	a.Arguments = append(a.Arguments, ArgumentValue{Name: name, Value: value, Literal: literal})
}

// Clone returns a copy that shares the definition.
func (a *FieldAction) Clone() *FieldAction {
	c := *a
	c.Arguments = slices.Clone(a.Arguments)

	return &c
}
