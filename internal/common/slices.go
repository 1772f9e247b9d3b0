package common

// Remove returns s without the first element equal to v.
func Remove[S ~[]E, E comparable](s S, v E) (S, bool) {
	for i := range s {
		if s[i] == v {
			return append(s[:i], s[i+1:]...), true
		}
	}

	return s, false
}
