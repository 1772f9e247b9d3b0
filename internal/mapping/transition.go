package mapping

import (
	"errors"

	"datamapper/internal/common"
)

// ErrManyToMany is returned when a mapping would have several sources and several targets.
var ErrManyToMany = errors.New("mapping several sources to several targets is not supported")

// TransitionMode is the cardinality discipline of a mapping.
type TransitionMode int

const (
	ModeOneToOne TransitionMode = iota
	ModeOneToMany
	ModeManyToOne
	ModeEnum
	ModeExpression
)

// String returns the wire name of the mode.
func (m TransitionMode) String() string {
	switch m {
	case ModeOneToOne:
		return "ONE_TO_ONE"
	case ModeOneToMany:
		return "ONE_TO_MANY"
	case ModeManyToOne:
		return "MANY_TO_ONE"
	case ModeEnum:
		return "ENUM"
	case ModeExpression:
		return "EXPRESSION"
	default:
		return common.UnknownStr
	}
}

// DefaultDelimiter is used by Concatenate and Split unless the user picks another.
const DefaultDelimiter = " "

type delimiter struct {
	name  string
	value string
}

// legacyDelimiters are the delimiter names written by older mapping files.
var legacyDelimiters = []delimiter{
	{"Ampersand", "&"},
	{"AtSign", "@"},
	{"Backslash", "\\"},
	{"Colon", ":"},
	{"Comma", ","},
	{"Dash", "-"},
	{"Equal", "="},
	{"Hash", "#"},
	{"MultiSpace", "  "},
	{"Period", "."},
	{"Pipe", "|"},
	{"Semicolon", ";"},
	{"Slash", "/"},
	{"Space", " "},
	{"Underscore", "_"},
}

// DelimiterForName returns the characters of a legacy delimiter name.
func DelimiterForName(name string) (string, bool) {
	for _, d := range legacyDelimiters {
		if d.name == name {
			return d.value, true
		}
	}

	return "", false
}

// DelimiterName returns the legacy name of a delimiter, or "" for a custom one.
func DelimiterName(value string) string {
	for _, d := range legacyDelimiters {
		if d.value == value {
			return d.name
		}
	}

	return ""
}

// TransitionModel is how the sources of a mapping become its targets.
type TransitionModel struct {
	Mode            TransitionMode
	LookupTableName string
	Expression      *ExpressionModel

	// Action is the transition action of MANY_TO_ONE and ONE_TO_MANY
	// mappings, for example Concatenate or Split.
	Action *FieldAction
}

// Delimiter returns the delimiter argument of the transition action.
func (t *TransitionModel) Delimiter() string {
	if t.Action == nil {
		return ""
	}

	d, _ := t.Action.Argument(ArgDelimiter)

	return d
}

// SetDelimiter sets the delimiter argument of the transition action.
func (t *TransitionModel) SetDelimiter(d string) {
	if t.Action != nil {
		t.Action.SetArgument(ArgDelimiter, d)
	}
}

// IsUserDelimiter reports whether the delimiter is not one of the named ones.
func (t *TransitionModel) IsUserDelimiter() bool {
	d := t.Delimiter()

	return d != "" && DelimiterName(d) == ""
}

func defaultTransitionAction(name string) *FieldAction {
	return &FieldAction{
		Name:      name,
		Arguments: []ArgumentValue{{Name: ArgDelimiter, Value: DefaultDelimiter}},
	}
}
