// Package session owns everything one mapping file is edited with: the
// configuration, logger, diagnostics, documents, mapping definition and
// field action registry. Sessions share nothing; run one per mapping file.
//
// A Session is not safe for concurrent mutation.
package session
