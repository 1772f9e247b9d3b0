package inspect

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"datamapper/internal/config"
	"datamapper/internal/diagnostic"
	"datamapper/internal/document"
	"datamapper/internal/transport"
	"datamapper/internal/wire"
)

const defaultConcurrency = 4

// Inspector loads document fields through the inspection services.
type Inspector struct {
	services config.InspectionConfig
	client   transport.Client
	diag     *diagnostic.Diagnostics
	logger   *slog.Logger
	cache    *lru.Cache[string, []byte]
}

// NewInspector returns an inspector. cacheSize bounds the number of raw
// responses kept; values below 1 use 64.
func NewInspector(services config.InspectionConfig, client transport.Client, cacheSize int,
	diag *diagnostic.Diagnostics, logger *slog.Logger,
) (*Inspector, error) {
	if cacheSize < 1 {
		cacheSize = 64
	}

	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create inspection cache: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Inspector{
		services: services,
		client:   client,
		diag:     diag,
		logger:   logger,
		cache:    cache,
	}, nil
}

// ServiceURL returns the configured base URL for a format.
func (i *Inspector) ServiceURL(format document.Format) string {
	switch format {
	case document.FormatJava:
		return i.services.JavaServiceURL
	case document.FormatXML, document.FormatXSD:
		return i.services.XMLServiceURL
	case document.FormatJSON:
		return i.services.JSONServiceURL
	case document.FormatCSV:
		return i.services.CSVServiceURL
	case document.FormatKafkaConnect:
		return i.services.KafkaConnectServiceURL
	default:
		return ""
	}
}

// IsOnlineInspectionCapable reports whether the document's format has an
// inspection service configured; if not a warning is recorded.
func (i *Inspector) IsOnlineInspectionCapable(doc *document.Document) bool {
	if strings.TrimSpace(i.ServiceURL(doc.Format)) != "" {
		return true
	}

	i.diag.AddWarning(diagnostic.ScopeApplication, "inspection_service_missing",
		fmt.Sprintf("%s inspection service is not configured. Document %s cannot be loaded", doc.Format, doc.Name), doc.ID)

	return false
}

// Inspect loads the document's fields. A stored InspectionResult is parsed
// without contacting the service.
func (i *Inspector) Inspect(ctx context.Context, doc *document.Document) error {
	raw := []byte(doc.InspectionResult)

	if len(raw) == 0 {
		if !i.IsOnlineInspectionCapable(doc) {
			return fmt.Errorf("%w: %w for %s", ErrInspectionFailed, ErrServiceNotConfigured, doc.Format)
		}

		req, err := i.buildRequest(doc)
		if err != nil {
			return err
		}

		raw, err = i.fetch(ctx, req, doc.Format)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInspectionFailed, doc.ID, err)
		}
	}

	if err := ParseResponse(doc, raw, i.diag); err != nil {
		return err
	}

	doc.InspectionResult = string(raw)

	i.logger.Debug("document inspected",
		slog.String("doc", doc.ID),
		slog.String("format", doc.Format.String()),
		slog.Int("fields", doc.Len()))

	return nil
}

// InspectAll inspects documents concurrently. Every failure is recorded as
// an error diagnostic; the returned error joins them.
func (i *Inspector) InspectAll(ctx context.Context, docs []*document.Document) error {
	errs := make([]error, len(docs))

	var g errgroup.Group
	g.SetLimit(defaultConcurrency)

	for idx, doc := range docs {
		g.Go(func() error {
			if err := i.Inspect(ctx, doc); err != nil {
				errs[idx] = err
				i.diag.AddError(diagnostic.ScopeDocument, "inspection_failed",
					fmt.Sprintf("Could not load document %s: %v", doc.Name, err), doc.ID)
			}

			return nil
		})
	}

	_ = g.Wait()

	return errors.Join(errs...)
}

// fetch returns a cached response or calls the service.
func (i *Inspector) fetch(ctx context.Context, req transport.Request, format document.Format) ([]byte, error) {
	key := requestKey(format, req)
	if raw, ok := i.cache.Get(key); ok {
		return raw, nil
	}

	raw, err := i.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	i.cache.Add(key, raw)

	return raw, nil
}

func requestKey(format document.Format, req transport.Request) string {
	h := sha256.New()
	h.Write([]byte(format.String()))
	h.Write([]byte{0})
	h.Write([]byte(req.URL))
	h.Write([]byte{0})
	h.Write(req.Body)

	keys := make([]string, 0, len(req.Query))
	for k := range req.Query {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		h.Write([]byte{0})
		h.Write([]byte(k + "=" + req.Query[k]))
	}

	return hex.EncodeToString(h.Sum(nil))
}

// buildRequest creates the format-specific inspection request.
func (i *Inspector) buildRequest(doc *document.Document) (transport.Request, error) {
	base := i.ServiceURL(doc.Format)
	inspectionType := string(doc.InspectionType)
	if inspectionType == "" {
		inspectionType = string(document.InspectionInstance)
	}

	var (
		key  string
		body any
		url  = transport.JoinURL(base, "inspect")
	)

	switch doc.Format {
	case document.FormatJava:
		url = transport.JoinURL(base, "class")
		key = "ClassInspectionRequest"
		body = wire.ClassInspectionRequest{
			JSONType:            wire.TypeClassInspectionRequest,
			ClassName:           doc.InspectionSource,
			ClassPath:           doc.InspectionParameters["classpath"],
			CollectionType:      doc.InspectionParameters["collectionType"],
			CollectionClassName: doc.InspectionParameters["collectionClassName"],
		}
	case document.FormatXML, document.FormatXSD:
		key = "XmlInspectionRequest"
		if doc.Format == document.FormatXSD {
			inspectionType = string(document.InspectionSchema)
		}

		body = wire.InspectionRequest{JSONType: wire.TypeXMLInspectionRequest, Type: inspectionType, XMLData: doc.InspectionSource}
	case document.FormatJSON:
		key = "JsonInspectionRequest"
		body = wire.InspectionRequest{JSONType: wire.TypeJSONInspectionRequest, Type: inspectionType, JSONData: doc.InspectionSource}
	case document.FormatCSV:
		return transport.Request{
			Method:      http.MethodPost,
			URL:         url,
			Body:        []byte(doc.InspectionSource),
			ContentType: "text/csv",
			Query:       doc.InspectionParameters,
		}, nil
	case document.FormatKafkaConnect:
		key = "KafkaConnectInspectionRequest"
		body = wire.InspectionRequest{
			JSONType:   wire.TypeKafkaConnectInspectionRequest,
			SchemaData: doc.InspectionSource,
			Options:    doc.InspectionParameters,
		}
	default:
		return transport.Request{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, doc.Format)
	}

	payload, err := wire.MarshalCompact(map[string]any{key: body})
	if err != nil {
		return transport.Request{}, fmt.Errorf("failed to encode inspection request for %q: %w", doc.ID, err)
	}

	return transport.Request{Method: http.MethodPost, URL: url, Body: payload}, nil
}
