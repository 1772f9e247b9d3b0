package wire

// jsonType discriminators used on the wire.
const (
	TypeAtlasMapping    = "io.atlasmap.v2.AtlasMapping"
	TypeMapping         = "io.atlasmap.v2.Mapping"
	TypeCollection      = "io.atlasmap.v2.Collection"
	TypeFieldGroup      = "io.atlasmap.v2.FieldGroup"
	TypeConstantField   = "io.atlasmap.v2.ConstantField"
	TypePropertyField   = "io.atlasmap.v2.PropertyField"
	TypeSimpleField     = "io.atlasmap.v2.SimpleField"
	TypeDataSource      = "io.atlasmap.v2.DataSource"
	TypeJavaField       = "io.atlasmap.java.v2.JavaField"
	TypeJavaEnumField   = "io.atlasmap.java.v2.JavaEnumField"
	TypeXMLField        = "io.atlasmap.xml.v2.XmlField"
	TypeXMLDataSource   = "io.atlasmap.xml.v2.XmlDataSource"
	TypeJSONField       = "io.atlasmap.json.v2.JsonField"
	TypeJSONDataSource  = "io.atlasmap.json.v2.JsonDataSource"
	TypeCSVField        = "io.atlasmap.csv.v2.CsvField"
	TypeCSVDataSource   = "io.atlasmap.csv.v2.CsvDataSource"
	TypeKafkaField      = "io.atlasmap.kafkaconnect.v2.KafkaConnectField"
	TypeKafkaEnumField  = "io.atlasmap.kafkaconnect.v2.KafkaConnectEnumField"
	TypeKafkaDataSource = "io.atlasmap.kafkaconnect.v2.KafkaConnectDataSource"

	TypeClassInspectionRequest        = "io.atlasmap.java.v2.ClassInspectionRequest"
	TypeXMLInspectionRequest          = "io.atlasmap.xml.v2.XmlInspectionRequest"
	TypeJSONInspectionRequest         = "io.atlasmap.json.v2.JsonInspectionRequest"
	TypeCSVInspectionRequest          = "io.atlasmap.csv.v2.CsvInspectionRequest"
	TypeKafkaConnectInspectionRequest = "io.atlasmap.kafkaconnect.v2.KafkaConnectInspectionRequest"
	TypeProcessMappingRequest         = "io.atlasmap.v2.ProcessMappingRequest"
)

// Data source roles.
const (
	DataSourceSource = "SOURCE"
	DataSourceTarget = "TARGET"
)

// Deprecated mapping types still accepted when decoding older mapping files.
const (
	MappingTypeNone       = "NONE"
	MappingTypeMap        = "MAP"
	MappingTypeCombine    = "COMBINE"
	MappingTypeSeparate   = "SEPARATE"
	MappingTypeLookup     = "LOOKUP"
	MappingTypeCollection = "COLLECTION"
)
