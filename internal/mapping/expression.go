package mapping

import (
	"fmt"
	"strconv"
	"strings"
)

// ExpressionNode is either a run of expression text or a field reference.
type ExpressionNode struct {
	Text string

	IsField bool
	DocID   string
	Path    string

	// Index is the position of a legacy ${N} reference, -1 otherwise.
	Index int
}

// String renders the node as it appears in an expression.
func (n ExpressionNode) String() string {
	switch {
	case !n.IsField:
		return n.Text
	case n.Index >= 0:
		return "${" + strconv.Itoa(n.Index) + "}"
	default:
		return "${" + n.DocID + ":" + n.Path + "}"
	}
}

// ExpressionModel is a parsed conditional mapping expression.
type ExpressionModel struct {
	Nodes []ExpressionNode
}

// ParseExpression splits an expression into text and field references.
// Malformed references are kept as text.
func ParseExpression(expr string) *ExpressionModel {
	e := &ExpressionModel{}
	rest := expr

	for rest != "" {
		start := strings.Index(rest, "${")
		if start < 0 {
			e.appendText(rest)

			break
		}

		end := strings.Index(rest[start:], "}")
		if end < 0 {
			e.appendText(rest)

			break
		}

		end += start
		e.appendText(rest[:start])

		if node, ok := parseRef(rest[start+2 : end]); ok {
			e.Nodes = append(e.Nodes, node)
		} else {
			e.appendText(rest[start : end+1])
		}

		rest = rest[end+1:]
	}

	return e
}

func parseRef(body string) (ExpressionNode, bool) {
	if idx, err := strconv.Atoi(body); err == nil && idx >= 0 {
		return ExpressionNode{IsField: true, Index: idx}, true
	}

	docID, path, ok := strings.Cut(body, ":")
	if !ok || docID == "" || path == "" {
		return ExpressionNode{}, false
	}

	return ExpressionNode{IsField: true, DocID: docID, Path: path, Index: -1}, true
}

func (e *ExpressionModel) appendText(s string) {
	if s == "" {
		return
	}

	if n := len(e.Nodes); n > 0 && !e.Nodes[n-1].IsField {
		e.Nodes[n-1].Text += s

		return
	}

	e.Nodes = append(e.Nodes, ExpressionNode{Text: s, Index: -1})
}

// String renders the expression.
func (e *ExpressionModel) String() string {
	var b strings.Builder
	for _, n := range e.Nodes {
		b.WriteString(n.String())
	}

	return b.String()
}

// FieldRefs returns the field reference nodes in order of appearance.
func (e *ExpressionModel) FieldRefs() []ExpressionNode {
	var out []ExpressionNode
	for _, n := range e.Nodes {
		if n.IsField {
			out = append(out, n)
		}
	}

	return out
}

// HasIndexRefs reports whether the expression uses legacy ${N} references.
func (e *ExpressionModel) HasIndexRefs() bool {
	for _, n := range e.Nodes {
		if n.IsField && n.Index >= 0 {
			return true
		}
	}

	return false
}

// ResolveIndexRefs rewrites legacy ${N} references into ${docId:path}
// references using the mapping's source fields.
func (e *ExpressionModel) ResolveIndexRefs(sources []*MappedField) error {
	for i := range e.Nodes {
		n := &e.Nodes[i]
		if !n.IsField || n.Index < 0 {
			continue
		}

		if n.Index >= len(sources) || sources[n.Index].IsPadding() {
			return fmt.Errorf("expression references source field %d which does not exist", n.Index)
		}

		f := sources[n.Index].Field
		n.DocID = f.DocID()
		n.Path = f.Path
		n.Index = -1
	}

	return nil
}

// AppendField adds a field reference, joined to existing content with " + ".
func (e *ExpressionModel) AppendField(docID, path string) {
	if len(e.Nodes) > 0 {
		e.appendText(" + ")
	}

	e.Nodes = append(e.Nodes, ExpressionNode{IsField: true, DocID: docID, Path: path, Index: -1})
}

// RemoveField drops every reference to the field and reports whether any was found.
func (e *ExpressionModel) RemoveField(docID, path string) bool {
	kept := e.Nodes[:0]
	removed := false

	for _, n := range e.Nodes {
		if n.IsField && n.DocID == docID && n.Path == path {
			removed = true

			continue
		}

		kept = append(kept, n)
	}

	e.Nodes = kept

	return removed
}
