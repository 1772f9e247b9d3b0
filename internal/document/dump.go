package document

import (
	"io"

	"github.com/davecgh/go-spew/spew"
)

type dumpNode struct {
	Path     string
	Type     FieldType
	Class    string
	Children []dumpNode
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump writes a readable view of the document tree to w.
func Dump(w io.Writer, d *Document) {
	nodes := make([]dumpNode, 0, len(d.roots))
	for _, f := range d.Fields() {
		nodes = append(nodes, toDumpNode(f))
	}

	dumpConfig.Fdump(w, d.ID, d.Format.String(), nodes)
}

func toDumpNode(f *Field) dumpNode {
	n := dumpNode{Path: f.Path, Type: f.Type, Class: f.ClassIdentifier}
	for _, c := range f.Children() {
		n.Children = append(n.Children, toDumpNode(c))
	}

	return n
}
