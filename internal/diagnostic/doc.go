// Package diagnostic provides leveled, scoped diagnostics for the mapping engine.
//
// Key capabilities:
//   - DEBUG/INFO/WARN/ERROR levels with an APPLICATION, DOCUMENT, MAPPING or PREVIEW scope
//   - Configuration warnings that degrade a feature instead of failing
//   - Data-integrity errors raised while resolving serialized mappings
//   - Validation audits returned by the mapping runtime, translated 1:1
//   - De-duplication by message text before anything is surfaced
package diagnostic
