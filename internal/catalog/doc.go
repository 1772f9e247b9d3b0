// Package catalog packs a mapping session into an ADM archive and stores
// archives in a file directory, an S3 bucket or a SQLite database.
//
// An archive is a zip file holding:
//
//	atlasmapping-<name>.json   the serialized AtlasMapping
//	adm-catalog-files.gz       the gzipped JSON manifest
//	documents/<file>.json      the inspection result of each document
//	sources/<file>             the raw document a result was inspected from
package catalog
