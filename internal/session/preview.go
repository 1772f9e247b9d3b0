package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"datamapper/internal/diagnostic"
	"datamapper/internal/mapping"
	"datamapper/internal/serialize"
	"datamapper/internal/transport"
	"datamapper/internal/wire"
)

// ErrPreviewUnavailable is returned when no mapping service is configured.
var ErrPreviewUnavailable = errors.New("mapping service is not configured")

// Preview asks the mapping runtime to execute mm on sample source values
// keyed by source path. Runtime audits are added to the diagnostics.
func (s *Session) Preview(ctx context.Context, mm *mapping.MappingModel,
	values map[string]string,
) (*serialize.PreviewResult, error) {
	if s.Config.MappingServiceURL == "" {
		return nil, ErrPreviewUnavailable
	}

	req, err := serialize.PreviewRequest(mm, values)
	if err != nil {
		return nil, err
	}

	body, err := wire.MarshalCompact(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preview request: %w", err)
	}

	raw, err := s.client.Do(ctx, transport.Request{
		Method:      http.MethodPut,
		URL:         transport.JoinURL(s.Config.MappingServiceURL, "mapping/process"),
		Body:        body,
		ContentType: "application/json",
	})
	if err != nil {
		if transport.IsNetworkError(err) {
			s.logger.Error("mapping service unreachable", slog.String("url", s.Config.MappingServiceURL))
		}

		s.Diagnostics.Add(diagnostic.Diagnostic{
			Level:   diagnostic.LevelError,
			Scope:   diagnostic.ScopePreview,
			Type:    diagnostic.TypePreview,
			Code:    "preview_failed",
			Message: fmt.Sprintf("Preview of mapping %s failed: %v", mm.ID, err),
			Ref:     mm.ID,
		})

		return nil, err
	}

	return serialize.ParsePreviewResponse(raw, s.Diagnostics)
}
