package document

import (
	"slices"
)

// FieldID is the index of a field in its document's arena.
type FieldID int

// NoField marks a missing parent or a detached field.
const NoField FieldID = -1

// Field is one node of a document tree.
type Field struct {
	ID              FieldID
	Name            string
	Path            string
	Type            FieldType
	CollectionType  CollectionType
	Status          FieldStatus
	IsAttribute     bool
	IsPrimitive     bool
	NamespaceAlias  string
	ClassIdentifier string
	Enumeration     bool
	EnumValues      []EnumValue
	Column          *int
	Value           string
	Scope           string
	UserCreated     bool
	Depth           int

	// View state.
	Visible   bool
	Collapsed bool

	// Mapping participation, derived by UpdateFromMappings.
	PartOfMapping        bool
	PartOfTransformation bool
	HasUnmappedChildren  bool

	parent   FieldID
	children []FieldID
	doc      *Document
}

// NewField returns a detached field ready to be added to a document.
func NewField(name string, typ FieldType) *Field {
	return &Field{
		ID:        NoField,
		Name:      name,
		Type:      typ,
		Visible:   true,
		Collapsed: true,
		parent:    NoField,
	}
}

// Document returns the owning document, or nil for a detached or removed field.
func (f *Field) Document() *Document {
	return f.doc
}

// DocID returns the owning document's id.
func (f *Field) DocID() string {
	if f.doc == nil {
		return ""
	}

	return f.doc.ID
}

// IsSource reports whether the field belongs to a source document.
func (f *Field) IsSource() bool {
	return f.doc != nil && f.doc.IsSource
}

// Parent returns the parent field or nil for a top-level field.
func (f *Field) Parent() *Field {
	if f.doc == nil || f.parent == NoField {
		return nil
	}

	return f.doc.Field(f.parent)
}

// Children returns the materialized children in sibling order.
func (f *Field) Children() []*Field {
	if f.doc == nil {
		return nil
	}

	out := make([]*Field, 0, len(f.children))
	for _, id := range f.children {
		if c := f.doc.Field(id); c != nil {
			out = append(out, c)
		}
	}

	return out
}

// HasChildren reports whether children have been materialized.
func (f *Field) HasChildren() bool {
	return len(f.children) > 0
}

// IsCollection reports whether the field is a collection of any kind.
func (f *Field) IsCollection() bool {
	return f.CollectionType != "" && f.CollectionType != CollectionNone
}

// IsArray reports whether the field is an array collection.
func (f *Field) IsArray() bool {
	return f.CollectionType == CollectionArray
}

// IsComplex reports whether the field is of COMPLEX type.
func (f *Field) IsComplex() bool {
	return f.Type == TypeComplex
}

// IsTerminal reports whether the field is a mappable leaf. Enumerations are
// terminal even though they carry a class identifier.
func (f *Field) IsTerminal() bool {
	if f.Enumeration {
		return true
	}

	return f.Type != TypeComplex
}

// NameWithNamespace returns "alias:name" when the field has a namespace alias.
func (f *Field) NameWithNamespace() string {
	if f.NamespaceAlias == "" {
		return f.Name
	}

	return f.NamespaceAlias + ":" + f.Name
}

// IsInCollection reports whether the field or one of its ancestors is a collection.
func (f *Field) IsInCollection() bool {
	for p := f; p != nil; p = p.Parent() {
		if p.IsCollection() {
			return true
		}
	}

	return false
}

// CollectionParent returns the nearest ancestor (or the field itself) that is a collection.
func (f *Field) CollectionParent() *Field {
	for p := f; p != nil; p = p.Parent() {
		if p.IsCollection() {
			return p
		}
	}

	return nil
}

// Ancestors returns the parent chain from the direct parent up to the root.
func (f *Field) Ancestors() []*Field {
	var out []*Field
	for p := f.Parent(); p != nil; p = p.Parent() {
		out = append(out, p)
	}

	return out
}

// IsDescendantOf reports whether other is a strict ancestor of f.
func (f *Field) IsDescendantOf(other *Field) bool {
	for p := f.Parent(); p != nil; p = p.Parent() {
		if p == other {
			return true
		}
	}

	return false
}

// Copy returns a detached copy of the field without its children or mapping flags.
func (f *Field) Copy() *Field {
	c := *f
	c.ID = NoField
	c.parent = NoField
	c.children = nil
	c.doc = nil
	c.EnumValues = slices.Clone(f.EnumValues)
	c.PartOfMapping = false
	c.PartOfTransformation = false
	c.HasUnmappedChildren = false

	if f.Column != nil {
		col := *f.Column
		c.Column = &col
	}

	return &c
}
