package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value json.RawMessage
}

// Object is a JSON object that remembers the order of its keys.
type Object []Member

// Get returns the raw value stored under key.
func (o Object) Get(key string) (json.RawMessage, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}

	return nil, false
}

// Keys returns the keys in document order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}

	return keys
}

// MarshalJSON writes the members in order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')

		if len(m.Value) == 0 {
			buf.WriteString("null")
		} else {
			buf.Write(m.Value)
		}
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keeping its key order.
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if tok == nil {
		*o = nil
		return nil
	}

	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	var out Object

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}

		key, ok := keyTok.(string)
		if !ok {
			return errors.New("expected object key")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("invalid value for %q: %w", key, err)
		}

		out = append(out, Member{Key: key, Value: raw})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = out

	return nil
}

// Action is a field action as serialized on a field or field group:
// {"@type": "Concatenate", "delimiter": " "}.
type Action struct {
	Type string
	Args Object
}

// MarshalJSON writes "@type" first followed by the arguments in order.
func (a Action) MarshalJSON() ([]byte, error) {
	typ, err := json.Marshal(a.Type)
	if err != nil {
		return nil, err
	}

	obj := make(Object, 0, len(a.Args)+1)
	obj = append(obj, Member{Key: "@type", Value: typ})

	for _, m := range a.Args {
		if m.Key == "@type" {
			continue
		}

		obj = append(obj, m)
	}

	return obj.MarshalJSON()
}

// UnmarshalJSON reads "@type" and keeps every other key as an argument.
func (a *Action) UnmarshalJSON(data []byte) error {
	var obj Object
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	raw, ok := obj.Get("@type")
	if !ok {
		return errors.New("field action without @type")
	}

	if err := json.Unmarshal(raw, &a.Type); err != nil {
		return fmt.Errorf("invalid @type: %w", err)
	}

	a.Args = nil

	for _, m := range obj {
		if m.Key != "@type" {
			a.Args = append(a.Args, m)
		}
	}

	return nil
}
