// Package inspect turns inspection results into document field trees and
// talks to the per-format inspection services.
package inspect

import (
	"encoding/json"
	"fmt"

	"datamapper/internal/common"
	"datamapper/internal/diagnostic"
	"datamapper/internal/document"
	"datamapper/internal/wire"
)

// ParseFieldFromDocument builds a field from its wire shape and attaches it
// under parent, or at the document root when parent is nil. Fields with
// status NOT_FOUND are skipped with a warning; EXCLUDED fields are skipped
// silently. The caller annotates the returned field with format details.
func ParseFieldFromDocument(doc *document.Document, parent *document.Field, wf *wire.Field, diag *diagnostic.Diagnostics) *document.Field {
	switch document.FieldStatus(wf.Status) {
	case document.StatusNotFound:
		diag.AddWarning(diagnostic.ScopeDocument, "field_not_found",
			fmt.Sprintf("Ignoring unknown field: %s (%s), document: %s", wf.Name, wf.Path, doc.Name), wf.Path)

		return nil
	case document.StatusExcluded:
		return nil
	}

	name := wf.Name
	if name == "" {
		name = common.LastPathSegment(wf.Path)
	}

	f := document.NewField(name, document.ParseFieldType(wf.FieldType))
	f.Status = document.FieldStatus(wf.Status)
	f.CollectionType = document.CollectionType(wf.CollectionType)
	f.IsPrimitive = wf.Primitive
	f.Value = wf.Value
	f.UserCreated = wf.UserCreated
	f.Scope = wf.Scope

	if err := doc.AppendField(parent, f); err != nil {
		diag.AddError(diagnostic.ScopeDocument, "field_attach", err.Error(), wf.Path)

		return nil
	}

	return f
}

// ParseResponse replaces the fields of doc with those of an inspection
// result. raw may be a service response envelope or an offline document
// envelope for the document's format.
func ParseResponse(doc *document.Document, raw []byte, diag *diagnostic.Diagnostics) error {
	var env wire.InspectionEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: failed to decode response for %q: %w", ErrInspectionFailed, doc.ID, err)
	}

	resp, err := selectResponse(doc, &env)
	if err != nil {
		return err
	}

	if resp.ErrorMessage != "" {
		return &ResponseError{DocID: doc.ID, Message: resp.ErrorMessage}
	}

	doc.Clear()

	switch doc.Format {
	case document.FormatJava:
		err = parseJava(doc, resp.JavaClass, diag)
	case document.FormatXML, document.FormatXSD:
		err = parseXML(doc, resp.XMLDocument, diag)
	case document.FormatJSON:
		err = parseJSON(doc, resp.JSONDocument, diag)
	case document.FormatCSV:
		err = parseCSV(doc, resp.CSVDocument, diag)
	case document.FormatKafkaConnect:
		err = parseKafkaConnect(doc, resp.KafkaConnectDocument, diag)
	}

	if err != nil {
		return err
	}

	doc.Initialize()

	if resp.ExecutionTime > 0 {
		diag.AddDebug(diagnostic.ScopeDocument, "inspection_time",
			fmt.Sprintf("Document %s inspected in %dms", doc.Name, resp.ExecutionTime), doc.ID)
	}

	return nil
}

// selectResponse picks the payload for the document's format from either
// envelope shape.
func selectResponse(doc *document.Document, env *wire.InspectionEnvelope) (*wire.InspectionResponse, error) {
	var resp *wire.InspectionResponse

	switch doc.Format {
	case document.FormatJava:
		resp = env.ClassInspectionResponse
		if resp == nil && env.JavaClass != nil {
			resp = &wire.InspectionResponse{JavaClass: env.JavaClass}
		}

		if resp != nil && resp.ErrorMessage == "" && resp.JavaClass == nil {
			resp = nil
		}
	case document.FormatXML, document.FormatXSD:
		resp = orOffline(env.XMLInspectionResponse, env.XMLDocument, func(r *wire.InspectionResponse) **wire.DocumentFields { return &r.XMLDocument })
	case document.FormatJSON:
		resp = orOffline(env.JSONInspectionResponse, env.JSONDocument, func(r *wire.InspectionResponse) **wire.DocumentFields { return &r.JSONDocument })
	case document.FormatCSV:
		resp = orOffline(env.CSVInspectionResponse, env.CSVDocument, func(r *wire.InspectionResponse) **wire.DocumentFields { return &r.CSVDocument })
	case document.FormatKafkaConnect:
		resp = orOffline(env.KafkaConnectInspectionResponse, env.KafkaConnectDocument, func(r *wire.InspectionResponse) **wire.DocumentFields { return &r.KafkaConnectDocument })
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, doc.Format)
	}

	if resp == nil {
		return nil, fmt.Errorf("%w: %w for %s document %q", ErrInspectionFailed, ErrNoDocument, doc.Format, doc.ID)
	}

	return resp, nil
}

func orOffline(svc *wire.InspectionResponse, offline *wire.DocumentFields, slot func(*wire.InspectionResponse) **wire.DocumentFields) *wire.InspectionResponse {
	if svc != nil {
		if svc.ErrorMessage != "" || *slot(svc) != nil {
			return svc
		}

		return nil
	}

	if offline == nil {
		return nil
	}

	resp := &wire.InspectionResponse{}
	*slot(resp) = offline

	return resp
}
