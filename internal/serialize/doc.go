// Package serialize converts a mapping session to and from the AtlasMapping
// wire document consumed by the mapping runtime.
//
// Serialization writes one data source per document, one wire mapping per
// fully mapped MappingModel (shaped by its transition mode), the lookup
// tables, constants and properties. A mapping that fails to serialize is
// reported as an error diagnostic and skipped.
//
// Deserialization reads constants and properties first, decodes every
// mapping into a skeleton of field references (normalizing the deprecated
// mappingType shape on the way), then resolves the references against the
// live documents with UpdateMappedFieldsFromDocuments.
package serialize
