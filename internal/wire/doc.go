// Package wire defines the JSON contract shared with the inspection services,
// the field action registry and the mapping runtime.
//
// Every envelope keeps the exact key names the runtime expects
// ("AtlasMapping", "inputFieldGroup", "@type", ...). Action objects keep their
// argument keys in document order, since argument order is significant.
package wire
