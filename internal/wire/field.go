package wire

// Field is the IField wire shape plus every format-specific extension.
// A FieldGroup uses the same shape with its members in Fields.
type Field struct {
	JSONType       string   `json:"jsonType,omitempty"`
	Name           string   `json:"name,omitempty"`
	Path           string   `json:"path,omitempty"`
	FieldType      string   `json:"fieldType,omitempty"`
	DocID          string   `json:"docId,omitempty"`
	CollectionType string   `json:"collectionType,omitempty"`
	Status         string   `json:"status,omitempty"`
	Index          *int     `json:"index,omitempty"`
	Value          string   `json:"value,omitempty"`
	Actions        []Action `json:"actions,omitempty"`
	UserCreated    bool     `json:"userCreated,omitempty"`

	// Constant and property fields.
	Scope string `json:"scope,omitempty"`

	// Java.
	ClassName      string          `json:"className,omitempty"`
	Enumeration    bool            `json:"enumeration,omitempty"`
	Primitive      bool            `json:"primitive,omitempty"`
	JavaFields     *JavaFields     `json:"javaFields,omitempty"`
	JavaEnumFields *JavaEnumFields `json:"javaEnumFields,omitempty"`

	// XML.
	Attribute bool       `json:"attribute,omitempty"`
	XMLFields *XMLFields `json:"xmlFields,omitempty"`

	// JSON.
	JSONFields *JSONFields `json:"jsonFields,omitempty"`

	// CSV.
	Column *int `json:"column,omitempty"`

	// Kafka Connect.
	KafkaConnectFields     *KafkaConnectFields     `json:"kafkaConnectFields,omitempty"`
	KafkaConnectEnumFields *KafkaConnectEnumFields `json:"kafkaConnectEnumFields,omitempty"`

	// FieldGroup members.
	Fields []Field `json:"field,omitempty"`
}

// JavaFields is the container of Java child fields.
type JavaFields struct {
	JavaField []Field `json:"javaField"`
}

// XMLFields is the container of XML child fields.
type XMLFields struct {
	XMLField []Field `json:"xmlField"`
}

// JSONFields is the container of JSON child fields.
type JSONFields struct {
	JSONField []Field `json:"jsonField"`
}

// KafkaConnectFields is the container of Kafka Connect child fields.
type KafkaConnectFields struct {
	KafkaConnectField []Field `json:"kafkaConnectField"`
}

// FieldList is the generic {"field": [...]} container.
type FieldList struct {
	Field []Field `json:"field"`
}

// EnumValue is one enumeration constant.
type EnumValue struct {
	Name    string `json:"name"`
	Ordinal int    `json:"ordinal"`
}

// JavaEnumFields holds Java enumeration constants.
type JavaEnumFields struct {
	JavaEnumField []EnumValue `json:"javaEnumField"`
}

// KafkaConnectEnumFields holds Kafka Connect enumeration symbols.
type KafkaConnectEnumFields struct {
	KafkaConnectEnumField []EnumValue `json:"kafkaConnectEnumField"`
}

// Children returns the nested fields of whichever format container is present.
func (f *Field) Children() []Field {
	switch {
	case f.JavaFields != nil:
		return f.JavaFields.JavaField
	case f.XMLFields != nil:
		return f.XMLFields.XMLField
	case f.JSONFields != nil:
		return f.JSONFields.JSONField
	case f.KafkaConnectFields != nil:
		return f.KafkaConnectFields.KafkaConnectField
	default:
		return nil
	}
}

// EnumValues returns the enumeration constants of a Java or Kafka Connect enum field.
func (f *Field) EnumValues() []EnumValue {
	switch {
	case f.JavaEnumFields != nil:
		return f.JavaEnumFields.JavaEnumField
	case f.KafkaConnectEnumFields != nil:
		return f.KafkaConnectEnumFields.KafkaConnectEnumField
	default:
		return nil
	}
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
