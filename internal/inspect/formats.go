package inspect

import (
	"fmt"

	"datamapper/internal/common"
	"datamapper/internal/diagnostic"
	"datamapper/internal/document"
	"datamapper/internal/wire"
)

func parseJava(doc *document.Document, class *wire.Field, diag *diagnostic.Diagnostics) error {
	if document.FieldStatus(class.Status) == document.StatusNotFound {
		return fmt.Errorf("%w: could not load Java class %q for document %q", ErrInspectionFailed, class.ClassName, doc.ID)
	}

	if doc.InspectionSource == "" {
		doc.InspectionSource = class.ClassName
	}

	children := class.Children()
	for i := range children {
		parseJavaField(doc, nil, &children[i], diag)
	}

	return nil
}

// parseJavaField keeps CACHED complex fields childless; their children are
// materialized from the document's complex-type cache on demand.
func parseJavaField(doc *document.Document, parent *document.Field, wf *wire.Field, diag *diagnostic.Diagnostics) {
	f := ParseFieldFromDocument(doc, parent, wf, diag)
	if f == nil {
		return
	}

	f.ClassIdentifier = wf.ClassName
	f.Enumeration = wf.Enumeration
	f.EnumValues = enumValues(wf.EnumValues())

	if f.Status == document.StatusCached {
		return
	}

	children := wf.Children()
	for i := range children {
		parseJavaField(doc, f, &children[i], diag)
	}
}

func parseXML(doc *document.Document, xml *wire.DocumentFields, diag *diagnostic.Diagnostics) error {
	doc.Namespaces = nil
	if xml.XMLNamespaces != nil {
		for _, ns := range xml.XMLNamespaces.XMLNamespace {
			doc.Namespaces = append(doc.Namespaces, document.Namespace{
				Alias:       ns.Alias,
				URI:         ns.URI,
				LocationURI: ns.LocationURI,
				IsTarget:    ns.TargetNamespace,
			})
		}
	}

	for i := range xml.Fields.Field {
		wf := &xml.Fields.Field[i]
		if doc.SelectedRoot != "" {
			if _, local := common.SplitQualifiedName(wf.Name); local != doc.SelectedRoot {
				continue
			}
		}

		parseXMLField(doc, nil, wf, diag)
	}

	if doc.SelectedRoot != "" && len(doc.Fields()) == 0 {
		diag.AddWarning(diagnostic.ScopeDocument, "xml_root_not_found",
			fmt.Sprintf("Root element %s not found in document %s", doc.SelectedRoot, doc.Name), doc.ID)
	}

	return nil
}

func parseXMLField(doc *document.Document, parent *document.Field, wf *wire.Field, diag *diagnostic.Diagnostics) {
	f := ParseFieldFromDocument(doc, parent, wf, diag)
	if f == nil {
		return
	}

	f.NamespaceAlias, f.Name = common.SplitQualifiedName(f.Name)
	f.IsAttribute = wf.Attribute

	children := wf.Children()
	for i := range children {
		parseXMLField(doc, f, &children[i], diag)
	}
}

func parseJSON(doc *document.Document, js *wire.DocumentFields, diag *diagnostic.Diagnostics) error {
	for i := range js.Fields.Field {
		parseNested(doc, nil, &js.Fields.Field[i], diag)
	}

	return nil
}

func parseKafkaConnect(doc *document.Document, kc *wire.DocumentFields, diag *diagnostic.Diagnostics) error {
	for i := range kc.Fields.Field {
		parseNested(doc, nil, &kc.Fields.Field[i], diag)
	}

	return nil
}

// parseNested handles the JSON and Kafka Connect shapes, which differ only
// in their child container names.
func parseNested(doc *document.Document, parent *document.Field, wf *wire.Field, diag *diagnostic.Diagnostics) {
	f := ParseFieldFromDocument(doc, parent, wf, diag)
	if f == nil {
		return
	}

	if values := wf.EnumValues(); len(values) > 0 || wf.Enumeration {
		f.Enumeration = true
		f.EnumValues = enumValues(values)
	}

	children := wf.Children()
	for i := range children {
		parseNested(doc, f, &children[i], diag)
	}
}

func parseCSV(doc *document.Document, csv *wire.DocumentFields, diag *diagnostic.Diagnostics) error {
	for i := range csv.Fields.Field {
		wf := &csv.Fields.Field[i]

		f := ParseFieldFromDocument(doc, nil, wf, diag)
		if f == nil {
			continue
		}

		if wf.Column != nil {
			col := *wf.Column
			f.Column = &col
		}
	}

	return nil
}

func enumValues(in []wire.EnumValue) []document.EnumValue {
	if len(in) == 0 {
		return nil
	}

	out := make([]document.EnumValue, 0, len(in))
	for _, v := range in {
		out = append(out, document.EnumValue{Name: v.Name, Ordinal: v.Ordinal})
	}

	return out
}
