// Package document models one imported schema as a tree of fields.
//
// Fields live in a per-document arena and refer to their parent and
// children by FieldID, so copying a cached complex-type subtree never
// aliases another field. Each field's path is computed from its position:
//
//	/order/items<>/sku      list collection
//	/order/lines[]/qty      array collection
//	/tns:order/@id          XML attribute
//
// The derived indices (AllFields, TerminalFields, FieldPaths and the path
// lookup) are rebuilt after every mutation and are always consistent with
// the tree.
//
// A Document is not safe for concurrent mutation; callers own it exclusively.
package document
