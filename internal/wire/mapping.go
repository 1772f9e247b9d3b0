package wire

// AtlasMappingEnvelope is the root object of a mapping file.
type AtlasMappingEnvelope struct {
	AtlasMapping *AtlasMapping `json:"AtlasMapping"`
}

// AtlasMapping is the full mapping definition exchanged with the runtime.
type AtlasMapping struct {
	JSONType     string        `json:"jsonType"`
	DataSource   []DataSource  `json:"dataSource,omitempty"`
	Mappings     Mappings      `json:"mappings"`
	Name         string        `json:"name,omitempty"`
	LookupTables *LookupTables `json:"lookupTables,omitempty"`
	Constants    *Constants    `json:"constants,omitempty"`
	Properties   *Properties   `json:"properties,omitempty"`
	Version      string        `json:"version,omitempty"`
}

// Mappings is the {"mapping": [...]} container.
type Mappings struct {
	Mapping []Mapping `json:"mapping"`
}

// Mapping is one serialized mapping. MappingType, Delimiter, DelimiterString,
// CollectionType and Mappings only appear in files written by older versions.
type Mapping struct {
	JSONType        string  `json:"jsonType"`
	ID              string  `json:"id,omitempty"`
	Description     string  `json:"description,omitempty"`
	Expression      string  `json:"expression,omitempty"`
	InputField      []Field `json:"inputField,omitempty"`
	InputFieldGroup *Field  `json:"inputFieldGroup,omitempty"`
	OutputField     []Field `json:"outputField,omitempty"`
	MappingType     string  `json:"mappingType,omitempty"`
	LookupTableName string  `json:"lookupTableName,omitempty"`

	Delimiter       string    `json:"delimiter,omitempty"`
	DelimiterString string    `json:"delimiterString,omitempty"`
	CollectionType  string    `json:"collectionType,omitempty"`
	Mappings        *Mappings `json:"mappings,omitempty"`
}

// DataSource carries per-document metadata, written once per document.
type DataSource struct {
	JSONType          string         `json:"jsonType"`
	ID                string         `json:"id"`
	Name              string         `json:"name,omitempty"`
	Description       string         `json:"description,omitempty"`
	URI               string         `json:"uri"`
	DataSourceType    string         `json:"dataSourceType"`
	CharacterEncoding string         `json:"characterEncoding,omitempty"`
	Locale            string         `json:"locale,omitempty"`
	Template          string         `json:"template,omitempty"`
	XMLNamespaces     *XMLNamespaces `json:"xmlNamespaces,omitempty"`
}

// XMLNamespaces is the {"xmlNamespace": [...]} container.
type XMLNamespaces struct {
	XMLNamespace []XMLNamespace `json:"xmlNamespace"`
}

// XMLNamespace is one namespace declaration.
type XMLNamespace struct {
	Alias           string `json:"alias"`
	URI             string `json:"uri"`
	LocationURI     string `json:"locationUri,omitempty"`
	TargetNamespace bool   `json:"targetNamespace,omitempty"`
}

// LookupTables is the {"lookupTable": [...]} container.
type LookupTables struct {
	LookupTable []LookupTable `json:"lookupTable"`
}

// LookupTable is a named enum translation table.
type LookupTable struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	LookupEntry []LookupEntry `json:"lookupEntry"`
}

// LookupEntry maps one source value to one target value.
type LookupEntry struct {
	SourceValue string `json:"sourceValue"`
	SourceType  string `json:"sourceType"`
	TargetValue string `json:"targetValue"`
	TargetType  string `json:"targetType"`
}

// Constants is the {"constant": [...]} container.
type Constants struct {
	Constant []Constant `json:"constant"`
}

// Constant is a user-defined constant value.
type Constant struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	FieldType string `json:"fieldType"`
}

// Properties is the {"property": [...]} container.
type Properties struct {
	Property []Property `json:"property"`
}

// Property is a user-defined runtime property.
type Property struct {
	Name           string `json:"name"`
	Value          string `json:"value,omitempty"`
	FieldType      string `json:"fieldType"`
	Scope          string `json:"scope,omitempty"`
	DataSourceType string `json:"dataSourceType,omitempty"`
}
