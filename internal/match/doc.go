// Package match decides which field actions apply to a selected field and
// ranks source fields that look like good partners for a target field.
//
// Key functions:
//   - IsTypeCompatible: the ANY / ANY_DATE / NUMBER rules for action types
//   - AppliesToSourceField, AppliesToTargetField: action filters per side
//   - ActionsForField: registry lookup for the selected field of a mapping
//   - RankCandidates: name and type based ranking of source fields
package match
