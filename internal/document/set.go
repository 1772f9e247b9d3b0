package document

import (
	"errors"
	"fmt"
	"strings"
)

// Pseudo-document ids.
const (
	ConstantsDocID  = "DOC.Constants"
	PropertiesDocID = "DOC.Properties"
)

var (
	// ErrDuplicateDocument is returned when a document id is already used on the same side.
	ErrDuplicateDocument = errors.New("document already exists")
	// ErrDuplicateField is returned when a constant or property name is already defined.
	ErrDuplicateField = errors.New("field already exists")
)

// Set is the document forest of one mapping session: source and target
// documents plus the constants and properties pseudo-documents.
type Set struct {
	sources []*Document
	targets []*Document

	constants        *Document
	sourceProperties *Document
	targetProperties *Document
}

// NewSet returns a set holding only the empty pseudo-documents.
func NewSet() *Set {
	return &Set{
		constants:        New(ConstantsDocID, "Constants", FormatConstant, true),
		sourceProperties: New(PropertiesDocID, "Properties", FormatProperty, true),
		targetProperties: New(PropertiesDocID, "Properties", FormatProperty, false),
	}
}

// Add registers a document on its side.
func (s *Set) Add(doc *Document) error {
	if doc.IsPropertyOrConstant() {
		return fmt.Errorf("failed to add document %q: pseudo-documents are built in", doc.ID)
	}

	if s.Find(doc.ID, doc.IsSource) != nil {
		return fmt.Errorf("failed to add document %q: %w", doc.ID, ErrDuplicateDocument)
	}

	if doc.IsSource {
		s.sources = append(s.sources, doc)
	} else {
		s.targets = append(s.targets, doc)
	}

	return nil
}

// Remove unregisters and returns the document, or nil if it was not present.
// Pseudo-documents cannot be removed.
func (s *Set) Remove(docID string, isSource bool) *Document {
	docs := &s.targets
	if isSource {
		docs = &s.sources
	}

	for i, d := range *docs {
		if d.ID == docID {
			*docs = append((*docs)[:i], (*docs)[i+1:]...)

			return d
		}
	}

	return nil
}

// Find returns the document with the given id on one side. Ids starting
// with the constants or properties pseudo-document id resolve to that
// pseudo-document.
func (s *Set) Find(docID string, isSource bool) *Document {
	switch {
	case strings.HasPrefix(docID, ConstantsDocID):
		return s.constants
	case strings.HasPrefix(docID, PropertiesDocID):
		return s.Properties(isSource)
	}

	for _, d := range s.Side(isSource) {
		if d.ID == docID {
			return d
		}
	}

	return nil
}

// Side returns the regular documents of one side.
func (s *Set) Side(isSource bool) []*Document {
	if isSource {
		return s.sources
	}

	return s.targets
}

// Sources returns the source documents.
func (s *Set) Sources() []*Document {
	return s.sources
}

// Targets returns the target documents.
func (s *Set) Targets() []*Document {
	return s.targets
}

// SideWithPseudo returns the regular documents of one side followed by the
// pseudo-documents that live on that side.
func (s *Set) SideWithPseudo(isSource bool) []*Document {
	out := append([]*Document{}, s.Side(isSource)...)
	if isSource {
		out = append(out, s.constants)
	}

	return append(out, s.Properties(isSource))
}

// All returns every document, sources first, including pseudo-documents.
func (s *Set) All() []*Document {
	return append(s.SideWithPseudo(true), s.SideWithPseudo(false)...)
}

// Constants returns the constants pseudo-document.
func (s *Set) Constants() *Document {
	return s.constants
}

// Properties returns the properties pseudo-document of one side.
func (s *Set) Properties(isSource bool) *Document {
	if isSource {
		return s.sourceProperties
	}

	return s.targetProperties
}

// AddConstant defines a constant. Its path is "/<name>".
func (s *Set) AddConstant(name, value string, typ FieldType) (*Field, error) {
	if s.constants.GetField("/"+name) != nil {
		return nil, fmt.Errorf("failed to add constant %q: %w", name, ErrDuplicateField)
	}

	f := NewField(name, typ)
	f.Value = value
	f.UserCreated = true

	if err := s.constants.AddField(nil, f); err != nil {
		return nil, err
	}

	return f, nil
}

// AddProperty defines a runtime property on one side. Its path is "/<name>";
// the scope is kept as an attribute of the field.
func (s *Set) AddProperty(name, value string, typ FieldType, scope string, isSource bool) (*Field, error) {
	doc := s.Properties(isSource)
	if doc.GetField("/"+name) != nil {
		return nil, fmt.Errorf("failed to add property %q: %w", name, ErrDuplicateField)
	}

	f := NewField(name, typ)
	f.Value = value
	f.Scope = scope
	f.UserCreated = true

	if err := doc.AddField(nil, f); err != nil {
		return nil, err
	}

	return f, nil
}

// Clear removes every regular document and empties the pseudo-documents.
func (s *Set) Clear() {
	s.sources = nil
	s.targets = nil
	s.constants.Clear()
	s.sourceProperties.Clear()
	s.targetProperties.Clear()
}
