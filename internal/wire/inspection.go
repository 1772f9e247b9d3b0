package wire

// ClassInspectionRequestEnvelope wraps a Java class inspection request.
type ClassInspectionRequestEnvelope struct {
	ClassInspectionRequest ClassInspectionRequest `json:"ClassInspectionRequest"`
}

// ClassInspectionRequest asks the Java inspection service to inspect a class.
type ClassInspectionRequest struct {
	JSONType            string      `json:"jsonType"`
	ClassName           string      `json:"className"`
	ClassPath           string      `json:"classpath,omitempty"`
	CollectionType      string      `json:"collectionType,omitempty"`
	CollectionClassName string      `json:"collectionClassName,omitempty"`
	FieldNameExclusions *StringList `json:"fieldNameExclusions,omitempty"`
}

// StringList is the {"string": [...]} container.
type StringList struct {
	String []string `json:"string"`
}

// InspectionRequest is the payload of the XML, JSON, CSV and Kafka Connect requests.
type InspectionRequest struct {
	JSONType   string            `json:"jsonType"`
	Type       string            `json:"type,omitempty"`
	XMLData    string            `json:"xmlData,omitempty"`
	JSONData   string            `json:"jsonData,omitempty"`
	CSVData    string            `json:"csvData,omitempty"`
	SchemaData string            `json:"schemaData,omitempty"`
	Options    map[string]string `json:"options,omitempty"`
}

// InspectionResponse is the payload of every <Format>InspectionResponse.
type InspectionResponse struct {
	ErrorMessage         string          `json:"errorMessage,omitempty"`
	ExecutionTime        int64           `json:"executionTime,omitempty"`
	JavaClass            *Field          `json:"javaClass,omitempty"`
	XMLDocument          *DocumentFields `json:"xmlDocument,omitempty"`
	JSONDocument         *DocumentFields `json:"jsonDocument,omitempty"`
	CSVDocument          *DocumentFields `json:"csvDocument,omitempty"`
	KafkaConnectDocument *DocumentFields `json:"kafkaConnectDocument,omitempty"`
}

// DocumentFields is an inspected document: a field array plus format metadata.
type DocumentFields struct {
	JSONType      string         `json:"jsonType,omitempty"`
	Fields        FieldList      `json:"fields"`
	XMLNamespaces *XMLNamespaces `json:"xmlNamespaces,omitempty"`
}

// InspectionEnvelope accepts both a service response and an offline document.
type InspectionEnvelope struct {
	ClassInspectionResponse        *InspectionResponse `json:"ClassInspectionResponse,omitempty"`
	XMLInspectionResponse          *InspectionResponse `json:"XmlInspectionResponse,omitempty"`
	JSONInspectionResponse         *InspectionResponse `json:"JsonInspectionResponse,omitempty"`
	CSVInspectionResponse          *InspectionResponse `json:"CsvInspectionResponse,omitempty"`
	KafkaConnectInspectionResponse *InspectionResponse `json:"KafkaConnectInspectionResponse,omitempty"`

	JavaClass            *Field          `json:"JavaClass,omitempty"`
	XMLDocument          *DocumentFields `json:"XmlDocument,omitempty"`
	JSONDocument         *DocumentFields `json:"JsonDocument,omitempty"`
	CSVDocument          *DocumentFields `json:"CsvDocument,omitempty"`
	KafkaConnectDocument *DocumentFields `json:"KafkaConnectDocument,omitempty"`
}
