package mapping

import "strings"

//go:generate go tool stringer -type=Multiplicity -linecomment

// Multiplicity declares how many inputs and outputs a field action has.
type Multiplicity int

const (
	MultiplicityOneToOne  Multiplicity = iota // ONE_TO_ONE
	MultiplicityOneToMany                     // ONE_TO_MANY
	MultiplicityManyToOne                     // MANY_TO_ONE
	MultiplicityZeroToOne                     // ZERO_TO_ONE
)

// Multiplicities lists every multiplicity in declaration order.
var Multiplicities = []Multiplicity{
	MultiplicityOneToOne,
	MultiplicityOneToMany,
	MultiplicityManyToOne,
	MultiplicityZeroToOne,
}

// ParseMultiplicity converts a wire value. An empty or unknown value is ONE_TO_ONE.
func ParseMultiplicity(s string) Multiplicity {
	for _, m := range Multiplicities {
		if strings.EqualFold(m.String(), strings.TrimSpace(s)) {
			return m
		}
	}

	return MultiplicityOneToOne
}
