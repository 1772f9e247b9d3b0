package serialize

import (
	"encoding/json"
	"fmt"
	"strings"

	"datamapper/internal/diagnostic"
	"datamapper/internal/mapping"
	"datamapper/internal/wire"
)

// PreviewRequest builds the request asking the runtime to execute one
// mapping. values holds sample input values keyed by source field path.
// Collection segments are addressed as their first instance.
func PreviewRequest(mm *mapping.MappingModel, values map[string]string) (*wire.ProcessMappingRequestEnvelope, error) {
	wm, err := serializeMapping(mm, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build preview for %s: %w", mm.ID, err)
	}

	for i := range wm.InputField {
		previewInput(&wm.InputField[i], values)
	}

	if wm.InputFieldGroup != nil {
		previewInput(wm.InputFieldGroup, values)
	}

	for i := range wm.OutputField {
		previewOutput(&wm.OutputField[i])
	}

	return &wire.ProcessMappingRequestEnvelope{
		ProcessMappingRequest: wire.ProcessMappingRequest{
			JSONType: wire.TypeProcessMappingRequest,
			Mapping:  wm,
		},
	}, nil
}

func previewInput(wf *wire.Field, values map[string]string) {
	if v, ok := values[wf.Path]; ok {
		wf.Value = v
	}

	wf.Path = FirstInstancePath(wf.Path)

	for i := range wf.Fields {
		previewInput(&wf.Fields[i], values)
	}
}

func previewOutput(wf *wire.Field) {
	wf.Path = FirstInstancePath(wf.Path)

	for i := range wf.Fields {
		previewOutput(&wf.Fields[i])
	}
}

// FirstInstancePath rewrites every collection segment of path to address
// its first element: "/a<>/b[]/c" becomes "/a<0>/b[0]/c".
func FirstInstancePath(path string) string {
	path = strings.ReplaceAll(path, "<>", "<0>")

	return strings.ReplaceAll(path, "[]", "[0]")
}

// PreviewResult is the outcome of a preview: the value computed for each
// target field, keyed by the field's path as sent.
type PreviewResult struct {
	Values map[string]string
}

// ParsePreviewResponse reads the runtime's answer. Audits become MAPPING
// diagnostics.
func ParsePreviewResponse(data []byte, diag *diagnostic.Diagnostics) (*PreviewResult, error) {
	var env wire.ProcessMappingResponseEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse preview response: %w", err)
	}

	resp := env.ProcessMappingResponse
	if resp.Audits != nil && diag != nil {
		for _, a := range resp.Audits.Audit {
			diag.AddAudit(a.Status, a.Message, a.Path)
		}
	}

	res := &PreviewResult{Values: map[string]string{}}
	for _, wf := range resp.Mapping.OutputField {
		collectValues(wf, res.Values)
	}

	return res, nil
}

func collectValues(wf wire.Field, values map[string]string) {
	if wf.JSONType == wire.TypeFieldGroup {
		for _, c := range wf.Fields {
			collectValues(c, values)
		}

		return
	}

	values[wf.Path] = wf.Value
}
