package match

import (
	"datamapper/internal/document"
	"datamapper/internal/mapping"
)

// AppliesToSourceField reports whether def can be applied to a source field.
// Only the declared source type is checked.
func AppliesToSourceField(def *mapping.ActionDefinition, f *document.Field) bool {
	if def == nil || f == nil {
		return false
	}

	return IsTypeCompatible(def.SourceType, f.Type)
}

// AppliesToTargetField reports whether def can be applied to a target
// field. Only ONE_TO_ONE actions apply, and both declared types must accept
// the field's type since input and output are the same field.
func AppliesToTargetField(def *mapping.ActionDefinition, f *document.Field) bool {
	if def == nil || f == nil || def.Multiplicity != mapping.MultiplicityOneToOne {
		return false
	}

	return IsTypeCompatible(def.SourceType, f.Type) && IsTypeCompatible(def.TargetType, f.Type)
}

// ActionsForField returns the actions of one multiplicity that apply to the
// selected field of a mapping side: the first non-padding field.
func ActionsForField(registry *mapping.ActionRegistry, m *mapping.MappingModel, isSource bool,
	multiplicity mapping.Multiplicity,
) []*mapping.ActionDefinition {
	if registry == nil || m == nil {
		return nil
	}

	fields := m.Fields(isSource)
	if len(fields) == 0 {
		return nil
	}

	return ActionsForSelectedField(registry, fields[0], isSource, multiplicity)
}

// ActionsForSelectedField filters one multiplicity bucket of the registry for f.
func ActionsForSelectedField(registry *mapping.ActionRegistry, f *document.Field, isSource bool,
	multiplicity mapping.Multiplicity,
) []*mapping.ActionDefinition {
	var out []*mapping.ActionDefinition

	for _, def := range registry.ByMultiplicity(multiplicity) {
		applies := AppliesToTargetField(def, f)
		if isSource {
			applies = AppliesToSourceField(def, f)
		}

		if applies {
			out = append(out, def)
		}
	}

	return out
}
