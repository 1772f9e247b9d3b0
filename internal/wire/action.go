package wire

import "encoding/json"

// ActionDetailsEnvelope is the field action registry response.
type ActionDetailsEnvelope struct {
	ActionDetails ActionDetails `json:"ActionDetails"`
}

// ActionDetails is the {"actionDetail": [...]} container.
type ActionDetails struct {
	ActionDetail []ActionDetail `json:"actionDetail"`
}

// ActionDetail declares one field action known to the runtime.
type ActionDetail struct {
	Name         string       `json:"name"`
	ClassName    string       `json:"className,omitempty"`
	Method       string       `json:"method,omitempty"`
	SourceType   string       `json:"sourceType,omitempty"`
	TargetType   string       `json:"targetType,omitempty"`
	Multiplicity string       `json:"multiplicity,omitempty"`
	ActionSchema ActionSchema `json:"actionSchema"`
}

// ActionSchema is the JSON schema describing an action's arguments.
// Properties keep their declaration order; it is the argument order.
type ActionSchema struct {
	Type       string `json:"type,omitempty"`
	Properties Object `json:"properties,omitempty"`
}

// ParameterSchema describes one action argument.
type ParameterSchema struct {
	Type        string          `json:"type,omitempty"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Enum        []string        `json:"enum,omitempty"`
	Default     json.RawMessage `json:"default,omitempty"`
	Const       json.RawMessage `json:"const,omitempty"`
}
