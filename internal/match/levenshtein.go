package match

// Levenshtein computes the edit distance between two strings, counting
// runes rather than bytes.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}

	if len(rb) == 0 {
		return len(ra)
	}

	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity returns 1 - distance / longest length, in [0, 1].
func Similarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 && lb == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(a, b))/float64(max(la, lb))
}

// NameScore compares two field names after normalization, with and without
// common suffixes, and by shared tokens, and returns the best similarity.
func NameScore(a, b string) float64 {
	plain := Similarity(NormalizeIdent(a), NormalizeIdent(b))
	stripped := Similarity(NormalizeIdentWithSuffixStrip(a), NormalizeIdentWithSuffixStrip(b))

	return max(plain, stripped, tokenOverlap(TokenizeIdent(a), TokenizeIdent(b)))
}

// tokenOverlap is the Jaccard index of two token sets.
func tokenOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = false
	}

	union := len(set)
	shared := 0

	for _, t := range b {
		seen, ok := set[t]
		switch {
		case !ok:
			set[t] = true
			union++
		case !seen:
			set[t] = true
			shared++
		}
	}

	return float64(shared) / float64(union)
}
