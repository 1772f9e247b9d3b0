package match

import (
	"sort"

	"datamapper/internal/document"
)

// Candidate is a source field that could feed a target field.
type Candidate struct {
	Source *document.Field
	Target *document.Field

	NameScore  float64
	TypeCompat TypeCompatibilityResult

	// CombinedScore ranks candidates, higher is better.
	CombinedScore float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every terminal field of the source documents
// against target and returns them best first. Incompatible types are kept
// but rank low.
func RankCandidates(target *document.Field, sources []*document.Document) CandidateList {
	var candidates CandidateList

	for _, doc := range sources {
		for _, f := range doc.TerminalFields() {
			typeCompat := ScoreTypeCompatibility(f.Type, target.Type)
			nameScore := NameScore(f.Name, target.Name)

			candidates = append(candidates, Candidate{
				Source:        f,
				Target:        target,
				NameScore:     nameScore,
				TypeCompat:    typeCompat,
				CombinedScore: calculateCombinedScore(nameScore, typeCompat.Compatibility),
			})
		}
	}

	sort.Sort(candidates)

	return candidates
}

// calculateCombinedScore weighs name similarity at 60% and type compatibility at 40%.
func calculateCombinedScore(nameScore float64, typeCompat TypeCompatibility) float64 {
	const (
		nameWeight = 0.6
		typeWeight = 0.4
	)

	var typeScore float64
	switch typeCompat {
	case TypeIdentical:
		typeScore = 1.0
	case TypeAssignable:
		typeScore = 0.9
	case TypeConvertible:
		typeScore = 0.7
	case TypeNeedsTransform:
		typeScore = 0.4
	case TypeIncompatible:
		typeScore = 0.0
	}

	return nameScore*nameWeight + typeScore*typeWeight
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less orders by combined score descending, then by source path.
func (c CandidateList) Less(i, j int) bool {
	if c[i].CombinedScore != c[j].CombinedScore {
		return c[i].CombinedScore > c[j].CombinedScore
	}

	if c[i].Source.DocID() != c[j].Source.DocID() {
		return c[i].Source.DocID() < c[j].Source.DocID()
	}

	return c[i].Source.Path < c[j].Source.Path
}

// Top returns the top n candidates, or all of them when n is negative.
func (c CandidateList) Top(n int) CandidateList {
	if n < 0 || n >= len(c) {
		return c
	}

	return c[:n]
}

// AboveThreshold returns candidates with combined score above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList
	for _, cand := range c {
		if cand.CombinedScore >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// HighConfidence returns the best candidate when it clears minScore, has a
// usable type and leads the runner-up by at least minGap.
func (c CandidateList) HighConfidence(minScore, minGap float64) *Candidate {
	if len(c) == 0 {
		return nil
	}

	best := &c[0]
	if best.CombinedScore < minScore || best.TypeCompat.Compatibility < TypeNeedsTransform {
		return nil
	}

	if len(c) > 1 && c[0].CombinedScore-c[1].CombinedScore < minGap {
		return nil
	}

	return best
}

// Confidence thresholds for suggesting a mapping.
const (
	DefaultMinScore = 0.7
	DefaultMinGap   = 0.15
)
