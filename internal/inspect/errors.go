package inspect

import (
	"errors"
	"fmt"
)

var (
	// ErrInspectionFailed wraps every failure to load a document's fields.
	ErrInspectionFailed = errors.New("inspection failed")
	// ErrServiceNotConfigured is returned when no inspection service URL is set for a format.
	ErrServiceNotConfigured = errors.New("inspection service not configured")
	// ErrNoDocument is returned when a response carries no document for the expected format.
	ErrNoDocument = errors.New("response has no inspected document")
	// ErrUnsupportedFormat is returned for formats that cannot be inspected.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// ResponseError is an errorMessage returned by an inspection service.
type ResponseError struct {
	DocID   string
	Message string
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	return fmt.Sprintf("inspection of document %q reported: %s", e.DocID, e.Message)
}

// Is makes errors.Is(err, ErrInspectionFailed) hold for service-reported errors.
func (e *ResponseError) Is(target error) bool {
	return target == ErrInspectionFailed
}
