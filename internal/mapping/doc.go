// Package mapping provides the in-memory mapping model: mappings between
// source and target fields, the field actions attached to them, lookup
// tables and the registry of field actions known to the runtime.
//
// # Transition modes
//
// Every mapping has a transition mode derived from the number of fields on
// each side:
//
//   - ONE_TO_ONE  one source, one target
//   - ONE_TO_MANY one source split into several targets (Split)
//   - MANY_TO_ONE several sources combined into one target (Concatenate)
//   - ENUM        enum source to enum target through a lookup table
//   - EXPRESSION  an expression over several sources, one target
//
// Several sources to several targets is rejected with ErrManyToMany.
//
// # Padding
//
// Mapped fields are positional. When a decoded mapping skips an index the
// gap is filled with a padding field, which holds a position but no field.
// A mapping is fully mapped only when both sides hold at least one
// non-padding field.
//
// # Expressions
//
// Expressions reference fields as ${docId:path}, for example
//
//	IF(ISEMPTY(${src:/user/name}), 'n/a', ${src:/user/name})
//
// Older files may use ${0}, ${1}, ... which address the mapping's source
// fields by index.
//
// # Action registry
//
// Field action definitions are loaded once, either from a preloaded
// ActionDetails blob or from the runtime's field action endpoint. Duplicate
// names are dropped and every multiplicity bucket is sorted by name.
package mapping
