// Package common holds small helpers shared by the mapping engine packages.
package common

import "strings"

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// FirstNonEmpty returns the first value that is not blank after trimming.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}

	return ""
}

// SplitQualifiedName splits "alias:name" into its namespace alias and local name.
// Names without a colon return an empty alias.
func SplitQualifiedName(name string) (alias, local string) {
	idx := strings.Index(name, ":")
	if idx < 0 {
		return "", name
	}

	return name[:idx], name[idx+1:]
}

// LastPathSegment returns the final "/"-separated segment of a field path.
func LastPathSegment(path string) string {
	path = strings.TrimSuffix(path, "/")
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}

	return path
}
