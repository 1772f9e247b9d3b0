package wire

// ProcessMappingRequestEnvelope wraps a mapping preview request.
type ProcessMappingRequestEnvelope struct {
	ProcessMappingRequest ProcessMappingRequest `json:"ProcessMappingRequest"`
}

// ProcessMappingRequest asks the runtime to execute one mapping on sample values.
type ProcessMappingRequest struct {
	JSONType string  `json:"jsonType"`
	Mapping  Mapping `json:"mapping"`
}

// ProcessMappingResponseEnvelope wraps the runtime's preview answer.
type ProcessMappingResponseEnvelope struct {
	ProcessMappingResponse ProcessMappingResponse `json:"ProcessMappingResponse"`
}

// ProcessMappingResponse carries the executed mapping and validation audits.
type ProcessMappingResponse struct {
	JSONType string  `json:"jsonType,omitempty"`
	Mapping  Mapping `json:"mapping"`
	Audits   *Audits `json:"audits,omitempty"`
}

// Audits is the {"audit": [...]} container.
type Audits struct {
	Audit []Audit `json:"audit"`
}

// Audit is one validation finding reported by the runtime.
type Audit struct {
	DocID   string `json:"docId,omitempty"`
	DocName string `json:"docName,omitempty"`
	Path    string `json:"path,omitempty"`
	Value   string `json:"value,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message"`
}
