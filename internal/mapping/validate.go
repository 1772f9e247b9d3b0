package mapping

import (
	"fmt"

	"datamapper/internal/diagnostic"
)

// Validate checks a mapping definition against the action registry. It is
// a structural check only; unresolved actions and lookup tables are errors,
// incomplete mappings are warnings because they are simply not saved.
func Validate(def *Definition, registry *ActionRegistry) *diagnostic.Diagnostics {
	res := diagnostic.New(nil)
	if def == nil {
		res.AddError(diagnostic.ScopeMapping, "definition_is_nil", "mapping definition is nil", "")
		return res
	}

	seen := map[string]struct{}{}

	for _, m := range def.Mappings() {
		if _, dup := seen[m.ID]; dup {
			res.AddError(diagnostic.ScopeMapping, "duplicate_mapping_id", fmt.Sprintf("duplicate mapping id %q", m.ID), m.ID)
		}

		seen[m.ID] = struct{}{}

		validateMapping(res, def, registry, m)
	}

	return res
}

func validateMapping(res *diagnostic.Diagnostics, def *Definition, registry *ActionRegistry, m *MappingModel) {
	if !m.IsFullyMapped() {
		res.AddWarning(diagnostic.ScopeMapping, "not_fully_mapped",
			fmt.Sprintf("mapping %s needs at least one source and one target field", m.ID), m.ID)
	}

	if len(m.Fields(true)) > 1 && len(m.Fields(false)) > 1 {
		res.AddError(diagnostic.ScopeMapping, "many_to_many", fmt.Sprintf("mapping %s: %v", m.ID, ErrManyToMany), m.ID)
	}

	if m.Transition.Mode == ModeEnum && def.LookupTable(m.Transition.LookupTableName) == nil {
		res.AddError(diagnostic.ScopeMapping, "missing_lookup_table",
			fmt.Sprintf("mapping %s references missing lookup table %q", m.ID, m.Transition.LookupTableName), m.ID)
	}

	if m.Transition.Mode == ModeExpression && m.Transition.Expression != nil && m.Transition.Expression.HasIndexRefs() {
		res.AddError(diagnostic.ScopeMapping, "unresolved_expression_ref",
			fmt.Sprintf("mapping %s: expression has unresolved index references", m.ID), m.ID)
	}

	if registry == nil || registry.Len() == 0 {
		return
	}

	actions := m.Transformations()
	if m.Transition.Action != nil {
		actions = append(actions, m.Transition.Action)
	}

	for _, a := range actions {
		if !registry.Resolve(a) {
			res.AddError(diagnostic.ScopeMapping, "unknown_action",
				fmt.Sprintf("mapping %s: field action %q is not known to the runtime", m.ID, a.Name), m.ID)
		}
	}
}
