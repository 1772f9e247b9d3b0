package document

import (
	"strings"

	"datamapper/internal/common"
	"datamapper/internal/wire"
)

// FieldType is the wire value of a field's type.
type FieldType string

const (
	TypeAny             FieldType = "ANY"
	TypeAnyDate         FieldType = "ANY_DATE"
	TypeBigInteger      FieldType = "BIG_INTEGER"
	TypeBoolean         FieldType = "BOOLEAN"
	TypeByte            FieldType = "BYTE"
	TypeByteArray       FieldType = "BYTE_ARRAY"
	TypeChar            FieldType = "CHAR"
	TypeComplex         FieldType = "COMPLEX"
	TypeDate            FieldType = "DATE"
	TypeDateTime        FieldType = "DATE_TIME"
	TypeDateTimeTZ      FieldType = "DATE_TIME_TZ"
	TypeDateTZ          FieldType = "DATE_TZ"
	TypeDecimal         FieldType = "DECIMAL"
	TypeDouble          FieldType = "DOUBLE"
	TypeFloat           FieldType = "FLOAT"
	TypeInteger         FieldType = "INTEGER"
	TypeLong            FieldType = "LONG"
	TypeNone            FieldType = "NONE"
	TypeNumber          FieldType = "NUMBER"
	TypeShort           FieldType = "SHORT"
	TypeString          FieldType = "STRING"
	TypeTime            FieldType = "TIME"
	TypeTimeTZ          FieldType = "TIME_TZ"
	TypeUnsignedByte    FieldType = "UNSIGNED_BYTE"
	TypeUnsignedInteger FieldType = "UNSIGNED_INTEGER"
	TypeUnsignedLong    FieldType = "UNSIGNED_LONG"
	TypeUnsignedShort   FieldType = "UNSIGNED_SHORT"
	TypeUnsupported     FieldType = "UNSUPPORTED"
)

var knownFieldTypes = map[FieldType]bool{
	TypeAny: true, TypeAnyDate: true, TypeBigInteger: true, TypeBoolean: true, TypeByte: true,
	TypeByteArray: true, TypeChar: true, TypeComplex: true, TypeDate: true, TypeDateTime: true,
	TypeDateTimeTZ: true, TypeDateTZ: true, TypeDecimal: true, TypeDouble: true, TypeFloat: true,
	TypeInteger: true, TypeLong: true, TypeNone: true, TypeNumber: true, TypeShort: true,
	TypeString: true, TypeTime: true, TypeTimeTZ: true, TypeUnsignedByte: true,
	TypeUnsignedInteger: true, TypeUnsignedLong: true, TypeUnsignedShort: true, TypeUnsupported: true,
}

// ParseFieldType converts a wire value; unknown values become UNSUPPORTED.
func ParseFieldType(s string) FieldType {
	t := FieldType(strings.ToUpper(strings.TrimSpace(s)))
	if t == "" {
		return TypeNone
	}

	if !knownFieldTypes[t] {
		return TypeUnsupported
	}

	return t
}

// CollectionType is the wire value describing a field's collection kind.
type CollectionType string

const (
	CollectionNone  CollectionType = "NONE"
	CollectionArray CollectionType = "ARRAY"
	CollectionList  CollectionType = "LIST"
	CollectionMap   CollectionType = "MAP"
	CollectionAll   CollectionType = "ALL"
)

// FieldStatus is the inspection status of a field.
type FieldStatus string

const (
	StatusSupported   FieldStatus = "SUPPORTED"
	StatusUnsupported FieldStatus = "UNSUPPORTED"
	StatusCached      FieldStatus = "CACHED"
	StatusError       FieldStatus = "ERROR"
	StatusNotFound    FieldStatus = "NOT_FOUND"
	StatusBlackList   FieldStatus = "BLACK_LIST"
	StatusExcluded    FieldStatus = "EXCLUDED"
)

// InspectionType tells what kind of artifact a document was inspected from.
type InspectionType string

const (
	InspectionInstance  InspectionType = "INSTANCE"
	InspectionSchema    InspectionType = "SCHEMA"
	InspectionJavaClass InspectionType = "JAVA_CLASS"
	InspectionUnknown   InspectionType = "UNKNOWN"
)

// Format is the closed set of document formats.
type Format int

const (
	FormatUnknown Format = iota
	FormatJava
	FormatXML
	FormatXSD
	FormatJSON
	FormatCSV
	FormatKafkaConnect
	FormatConstant
	FormatProperty
)

// String returns the wire name of the format.
func (f Format) String() string {
	switch f {
	case FormatJava:
		return "JAVA"
	case FormatXML:
		return "XML"
	case FormatXSD:
		return "XSD"
	case FormatJSON:
		return "JSON"
	case FormatCSV:
		return "CSV"
	case FormatKafkaConnect:
		return "KAFKA_CONNECT"
	case FormatConstant:
		return "CONSTANT"
	case FormatProperty:
		return "PROPERTY"
	default:
		return common.UnknownStr
	}
}

// ParseFormat converts a format name (case-insensitive). Unknown names return FormatUnknown.
func ParseFormat(s string) Format {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")) {
	case "JAVA":
		return FormatJava
	case "XML":
		return FormatXML
	case "XSD":
		return FormatXSD
	case "JSON":
		return FormatJSON
	case "CSV":
		return FormatCSV
	case "KAFKA_CONNECT", "KAFKACONNECT":
		return FormatKafkaConnect
	case "CONSTANT":
		return FormatConstant
	case "PROPERTY":
		return FormatProperty
	default:
		return FormatUnknown
	}
}

// FieldJSONType returns the jsonType used when serializing a field of this format.
func (f Format) FieldJSONType() string {
	switch f {
	case FormatJava:
		return wire.TypeJavaField
	case FormatXML, FormatXSD:
		return wire.TypeXMLField
	case FormatJSON:
		return wire.TypeJSONField
	case FormatCSV:
		return wire.TypeCSVField
	case FormatKafkaConnect:
		return wire.TypeKafkaField
	case FormatConstant:
		return wire.TypeConstantField
	case FormatProperty:
		return wire.TypePropertyField
	default:
		return wire.TypeSimpleField
	}
}

// DataSourceJSONType returns the jsonType of this format's data source entry.
func (f Format) DataSourceJSONType() string {
	switch f {
	case FormatXML, FormatXSD:
		return wire.TypeXMLDataSource
	case FormatJSON:
		return wire.TypeJSONDataSource
	case FormatCSV:
		return wire.TypeCSVDataSource
	case FormatKafkaConnect:
		return wire.TypeKafkaDataSource
	default:
		return wire.TypeDataSource
	}
}

// uriScheme returns the "atlas:<scheme>" part of a data source URI.
func (f Format) uriScheme() string {
	switch f {
	case FormatJava:
		return "java"
	case FormatXML, FormatXSD:
		return "xml"
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	case FormatKafkaConnect:
		return "kafkaconnect"
	case FormatConstant:
		return "constant"
	case FormatProperty:
		return "property"
	default:
		return "core"
	}
}

// FormatFromURI derives the format from an "atlas:<scheme>..." data source URI.
func FormatFromURI(uri string) Format {
	rest, ok := strings.CutPrefix(uri, "atlas:")
	if !ok {
		return FormatUnknown
	}

	end := strings.IndexAny(rest, ":?")
	if end >= 0 {
		rest = rest[:end]
	}

	switch rest {
	case "java":
		return FormatJava
	case "xml":
		return FormatXML
	case "json":
		return FormatJSON
	case "csv":
		return FormatCSV
	case "kafkaconnect":
		return FormatKafkaConnect
	default:
		return FormatUnknown
	}
}

// Namespace is an XML namespace declared by a document.
type Namespace struct {
	Alias       string
	URI         string
	LocationURI string
	IsTarget    bool
}

// EnumValue is one constant of an enumeration field.
type EnumValue struct {
	Name    string
	Ordinal int
}
