package mapping

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"slices"
	"strings"

	"datamapper/internal/document"
	"datamapper/internal/transport"
	"datamapper/internal/wire"
)

// ActionRegistry holds the field action definitions known to the runtime.
type ActionRegistry struct {
	actions map[string]*ActionDefinition
	buckets map[Multiplicity][]*ActionDefinition
}

// NewActionRegistry creates an empty registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{
		actions: make(map[string]*ActionDefinition),
		buckets: make(map[Multiplicity][]*ActionDefinition),
	}
}

// LoadDetails adds the given action details. Names already registered are
// skipped. It returns the number of definitions added.
func (r *ActionRegistry) LoadDetails(details []wire.ActionDetail) (int, error) {
	added := 0

	for i := range details {
		def, err := definitionFromDetail(&details[i])
		if err != nil {
			return added, err
		}

		if r.Has(def.Name) {
			continue
		}

		r.actions[def.Name] = def
		r.buckets[def.Multiplicity] = append(r.buckets[def.Multiplicity], def)
		added++
	}

	for m := range r.buckets {
		slices.SortFunc(r.buckets[m], func(a, b *ActionDefinition) int {
			return strings.Compare(a.Name, b.Name)
		})
	}

	return added, nil
}

// LoadJSON adds the definitions of an ActionDetails document.
func (r *ActionRegistry) LoadJSON(data []byte) (int, error) {
	var env wire.ActionDetailsEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return 0, fmt.Errorf("failed to parse action details: %w", err)
	}

	return r.LoadDetails(env.ActionDetails.ActionDetail)
}

// LoadFile adds the definitions of an ActionDetails file.
func (r *ActionRegistry) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read action details %s: %w", path, err)
	}

	return r.LoadJSON(data)
}

func definitionFromDetail(d *wire.ActionDetail) (*ActionDefinition, error) {
	def := &ActionDefinition{
		Name:         d.Name,
		ClassName:    d.ClassName,
		Method:       d.Method,
		SourceType:   document.ParseFieldType(d.SourceType),
		TargetType:   document.ParseFieldType(d.TargetType),
		Multiplicity: ParseMultiplicity(d.Multiplicity),
	}

	for _, prop := range d.ActionSchema.Properties {
		var schema wire.ParameterSchema
		if err := json.Unmarshal(prop.Value, &schema); err != nil {
			return nil, fmt.Errorf("action %q: invalid schema for argument %q: %w", d.Name, prop.Key, err)
		}

		def.Parameters = append(def.Parameters, ActionParameter{
			Name:        prop.Key,
			Type:        schema.Type,
			Title:       schema.Title,
			Description: schema.Description,
			Enum:        schema.Enum,
			Default:     literalText(schema.Default),
			Const:       literalText(schema.Const),
		})
	}

	return def, nil
}

// literalText returns a JSON string's content, or the raw text of any other literal.
func literalText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return string(raw)
}

// Get returns a definition by name, or nil if not found.
func (r *ActionRegistry) Get(name string) *ActionDefinition {
	return r.actions[name]
}

// Has returns true if a definition with the given name exists.
func (r *ActionRegistry) Has(name string) bool {
	_, exists := r.actions[name]

	return exists
}

// Len returns the number of definitions.
func (r *ActionRegistry) Len() int {
	return len(r.actions)
}

// ByMultiplicity returns the definitions of one multiplicity sorted by name.
func (r *ActionRegistry) ByMultiplicity(m Multiplicity) []*ActionDefinition {
	return r.buckets[m]
}

// All returns every definition, grouped by multiplicity and sorted by name.
func (r *ActionRegistry) All() []*ActionDefinition {
	result := make([]*ActionDefinition, 0, len(r.actions))
	for _, m := range Multiplicities {
		result = append(result, r.buckets[m]...)
	}

	return result
}

// Names returns all definition names, sorted.
func (r *ActionRegistry) Names() []string {
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Resolve attaches the definition to a and marks literal arguments. It
// reports whether the definition exists.
func (r *ActionRegistry) Resolve(a *FieldAction) bool {
	def := r.Get(a.Name)
	if def == nil {
		return false
	}

	a.Definition = def
	for i := range a.Arguments {
		if p := def.Parameter(a.Arguments[i].Name); p != nil {
			a.Arguments[i].Literal = p.IsLiteral()
		}
	}

	return true
}

// FetchActionDetails downloads the ActionDetails document from the field
// action service.
func FetchActionDetails(ctx context.Context, client transport.Client, baseURL string) ([]byte, error) {
	body, err := client.Do(ctx, transport.Request{
		Method: http.MethodGet,
		URL:    transport.JoinURL(baseURL, "fieldActions"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch field actions: %w", err)
	}

	return body, nil
}
