package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"datamapper/internal/common"
)

// NormalizeIdent normalizes a field name for fuzzy matching.
// The normalization pipeline:
// 1. Drop the namespace alias, attribute marker and collection suffix.
// 2. Tokenize CamelCase.
// 3. Case-fold and strip separators (_, -, ., spaces).
func NormalizeIdent(s string) string {
	joined := strings.Join(tokenizeCamelCase(bareName(s)), "")

	return stripSeparators(cases.Fold().String(joined))
}

// NormalizeIdentWithSuffixStrip normalizes and strips one common suffix:
// id, ids, at, utc, timestamp, code.
func NormalizeIdentWithSuffixStrip(s string) string {
	normalized := NormalizeIdent(s)

	suffixes := []string{"timestamp", "code", "ids", "utc", "id", "at"}
	for _, suffix := range suffixes {
		if strings.HasSuffix(normalized, suffix) && len(normalized) > len(suffix) {
			normalized = strings.TrimSuffix(normalized, suffix)

			break
		}
	}

	return normalized
}

// bareName turns "tns:orderLines[]" or "@id" into the plain name.
func bareName(s string) string {
	s = common.LastPathSegment(s)
	s = strings.TrimSuffix(strings.TrimSuffix(s, "[]"), "<>")
	s = strings.TrimPrefix(s, "@")
	_, s = common.SplitQualifiedName(s)

	return s
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "customer_name" -> ["customer", "name"]
//   - "XMLParser" -> ["XML", "Parser"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]

	if unicode.IsUpper(r) && !unicode.IsUpper(prev) && !isSeparator(prev) {
		return true
	}

	// "XMLParser": split before 'P'.
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return unicode.IsUpper(r) && unicode.IsUpper(prev) && hasNextLower
}

func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		if isSeparator(r) {
			return -1
		}

		return r
	}, s)
}

// TokenizeIdent splits a field name into case-folded tokens.
func TokenizeIdent(s string) []string {
	fold := cases.Fold()

	tokens := tokenizeCamelCase(bareName(s))
	for i, t := range tokens {
		tokens[i] = fold.String(t)
	}

	return tokens
}
