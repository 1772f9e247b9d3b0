package document

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"datamapper/internal/common"
)

// ErrForeignField is returned when a field is used with a document that does not own it.
var ErrForeignField = errors.New("field does not belong to this document")

// Document is one imported schema or instance, holding a forest of fields.
type Document struct {
	ID          string
	Name        string
	Description string
	Format      Format
	IsSource    bool

	InspectionType       InspectionType
	InspectionSource     string
	InspectionParameters map[string]string
	InspectionResult     string

	CharacterEncoding string
	Locale            string
	Namespaces        []Namespace
	SelectedRoot      string
	Template          string

	Visible bool

	arena []*Field
	roots []FieldID

	allFields      []*Field
	terminalFields []*Field
	fieldsByPath   map[string]*Field
	fieldPaths     []string

	complexCache map[string]*fieldTemplate
}

// New returns an empty document.
func New(id, name string, format Format, isSource bool) *Document {
	return &Document{
		ID:           id,
		Name:         common.FirstNonEmpty(name, id),
		Format:       format,
		IsSource:     isSource,
		Visible:      true,
		fieldsByPath: map[string]*Field{},
		complexCache: map[string]*fieldTemplate{},
	}
}

// URI returns the data source URI of the document, for example "atlas:java?className=a.B".
func (d *Document) URI() string {
	uri := "atlas:" + d.Format.uriScheme()

	switch d.Format {
	case FormatJava:
		if d.InspectionSource != "" {
			uri += "?className=" + d.InspectionSource
		}
	case FormatConstant, FormatProperty:
	default:
		uri += ":" + d.ID
	}

	return uri
}

// IsPropertyOrConstant reports whether this is one of the pseudo-documents.
func (d *Document) IsPropertyOrConstant() bool {
	return d.Format == FormatConstant || d.Format == FormatProperty
}

// Field resolves a FieldID; removed or out-of-range ids return nil.
func (d *Document) Field(id FieldID) *Field {
	if id < 0 || int(id) >= len(d.arena) {
		return nil
	}

	return d.arena[id]
}

// Fields returns the top-level fields in order.
func (d *Document) Fields() []*Field {
	out := make([]*Field, 0, len(d.roots))
	for _, id := range d.roots {
		if f := d.Field(id); f != nil {
			out = append(out, f)
		}
	}

	return out
}

// AllFields returns every materialized field in pre-order.
func (d *Document) AllFields() []*Field {
	return d.allFields
}

// TerminalFields returns the leaf fields in pre-order.
func (d *Document) TerminalFields() []*Field {
	return d.terminalFields
}

// FieldPaths returns every field path, sorted.
func (d *Document) FieldPaths() []string {
	return d.fieldPaths
}

// Len returns the number of materialized fields.
func (d *Document) Len() int {
	return len(d.allFields)
}

// ComplexTypes returns the class identifiers held in the complex-type cache, sorted.
func (d *Document) ComplexTypes() []string {
	out := make([]string, 0, len(d.complexCache))
	for k := range d.complexCache {
		out = append(out, k)
	}

	sort.Strings(out)

	return out
}

// Clear removes every field and resets the indices and the complex-type cache.
func (d *Document) Clear() {
	for _, f := range d.arena {
		if f != nil {
			f.doc = nil
		}
	}

	d.arena = nil
	d.roots = nil
	d.allFields = nil
	d.terminalFields = nil
	d.fieldPaths = nil
	d.fieldsByPath = map[string]*Field{}
	d.complexCache = map[string]*fieldTemplate{}
}

// AppendField attaches a detached field under parent (nil for top level)
// without sorting siblings or rebuilding indices. Inspection parsers use it to
// build a tree in bulk and call Initialize when done.
func (d *Document) AppendField(parent, field *Field) error {
	if field.doc != nil {
		return fmt.Errorf("failed to add field %q: already attached to document %q", field.Name, field.doc.ID)
	}

	if parent != nil && parent.doc != d {
		return fmt.Errorf("failed to add field %q: %w", field.Name, ErrForeignField)
	}

	if d.IsPropertyOrConstant() {
		parent = nil
	}

	d.attach(parent, field)

	return nil
}

// AddField attaches a detached field under parent (nil for top level). The
// parent's children are materialized first, siblings are re-sorted and paths
// and indices are recomputed.
func (d *Document) AddField(parent, field *Field) error {
	if d.IsPropertyOrConstant() {
		parent = nil
	}

	if parent != nil && parent.doc == d {
		d.PopulateChildren(parent)
	}

	if err := d.AppendField(parent, field); err != nil {
		return err
	}

	if parent == nil {
		d.roots = d.sortSiblings(d.roots)
		d.populatePaths(field, "/", 0)
	} else {
		parent.children = d.sortSiblings(parent.children)
		d.populatePaths(field, parent.Path+"/", parent.Depth+1)
	}

	d.reindex()

	return nil
}

func (d *Document) attach(parent, field *Field) {
	field.ID = FieldID(len(d.arena))
	field.doc = d
	d.arena = append(d.arena, field)

	if parent == nil {
		field.parent = NoField
		d.roots = append(d.roots, field.ID)

		return
	}

	field.parent = parent.ID
	parent.children = append(parent.children, field.ID)
}

// Initialize sorts siblings by name (CSV documents keep column order),
// computes every path, builds the complex-type cache and rebuilds the indices.
func (d *Document) Initialize() {
	d.roots = d.sortSiblings(d.roots)
	for _, f := range d.arena {
		if f != nil {
			f.children = d.sortSiblings(f.children)
		}
	}

	for _, f := range d.Fields() {
		d.populatePaths(f, "/", 0)
	}

	d.reindex()
	d.buildCache()
}

func (d *Document) sortSiblings(ids []FieldID) []FieldID {
	if d.Format == FormatCSV {
		return ids
	}

	slices.SortStableFunc(ids, func(a, b FieldID) int {
		return strings.Compare(d.arena[a].Name, d.arena[b].Name)
	})

	return ids
}

// populatePaths recomputes the path and depth of f and its subtree.
func (d *Document) populatePaths(f *Field, parentPath string, depth int) {
	if f.IsAttribute {
		f.Path = parentPath + "@" + f.Name
	} else {
		f.Path = parentPath + f.NameWithNamespace()
	}

	switch {
	case f.IsArray():
		f.Path += "[]"
	case f.IsCollection():
		f.Path += "<>"
	}

	f.Depth = depth

	for _, c := range f.Children() {
		d.populatePaths(c, f.Path+"/", depth+1)
	}
}

// reindex rebuilds every derived index from the live tree.
func (d *Document) reindex() {
	d.allFields = nil
	d.terminalFields = nil
	d.fieldsByPath = make(map[string]*Field, len(d.arena))

	var walk func(f *Field)
	walk = func(f *Field) {
		d.allFields = append(d.allFields, f)
		if f.IsTerminal() {
			d.terminalFields = append(d.terminalFields, f)
		}

		d.fieldsByPath[f.Path] = f

		for _, c := range f.Children() {
			walk(c)
		}
	}

	for _, f := range d.Fields() {
		walk(f)
	}

	d.fieldPaths = make([]string, 0, len(d.fieldsByPath))
	for p := range d.fieldsByPath {
		d.fieldPaths = append(d.fieldPaths, p)
	}

	sort.Strings(d.fieldPaths)
}

// GetField returns the field at path, materializing cached ancestors on the
// way. When an intermediate ancestor does not exist the descent stops and
// the result is nil.
func (d *Document) GetField(path string) *Field {
	if f, ok := d.fieldsByPath[path]; ok {
		return f
	}

	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	prefix := ""

	for _, seg := range segments[:len(segments)-1] {
		prefix += "/" + seg

		parent, ok := d.fieldsByPath[prefix]
		if !ok {
			break
		}

		d.PopulateChildren(parent)
	}

	return d.fieldsByPath[path]
}

// RemoveField detaches the field and its subtree. Mappings referencing it
// must be updated by the caller.
func (d *Document) RemoveField(field *Field) error {
	if field == nil || field.doc != d {
		return ErrForeignField
	}

	if p := field.Parent(); p != nil {
		p.children, _ = common.Remove(p.children, field.ID)
	} else {
		d.roots, _ = common.Remove(d.roots, field.ID)
	}

	d.release(field)
	d.reindex()

	return nil
}

func (d *Document) release(f *Field) {
	for _, c := range f.Children() {
		d.release(c)
	}

	d.arena[f.ID] = nil
	f.doc = nil
	f.parent = NoField
	f.children = nil
}
