package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"datamapper/internal/catalog"
	"datamapper/internal/config"
	"datamapper/internal/diagnostic"
	"datamapper/internal/document"
	"datamapper/internal/inspect"
	"datamapper/internal/mapping"
	"datamapper/internal/match"
	"datamapper/internal/serialize"
	"datamapper/internal/transport"
)

// ErrNoStore is returned by catalog operations when no store is configured.
var ErrNoStore = errors.New("no catalog store configured")

// Session is the owning context of one mapping file.
type Session struct {
	Config      *config.Config
	Diagnostics *diagnostic.Diagnostics
	Documents   *document.Set
	Definition  *mapping.Definition
	Actions     *mapping.ActionRegistry

	logger    *slog.Logger
	client    transport.Client
	store     catalog.Store
	inspector *inspect.Inspector
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClient sets the transport used for every external service.
func WithClient(c transport.Client) Option {
	return func(s *Session) { s.client = c }
}

// WithStore sets the catalog store.
func WithStore(st catalog.Store) Option {
	return func(s *Session) { s.store = st }
}

// New creates a session. A nil cfg uses config.Default().
func New(cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Session{
		Config:     cfg,
		Documents:  document.NewSet(),
		Definition: mapping.NewDefinition(),
		Actions:    mapping.NewActionRegistry(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = NewLogger(cfg.LogLevel)
	}

	if s.client == nil {
		s.client = transport.NewHTTPClient(cfg.RequestTimeout)
	}

	s.Diagnostics = diagnostic.New(s.logger)

	inspector, err := inspect.NewInspector(cfg.Inspection, s.client, cfg.InspectionCacheSize, s.Diagnostics, s.logger)
	if err != nil {
		return nil, err
	}

	s.inspector = inspector

	return s, nil
}

// NewLogger returns a text logger on stderr at the named level.
func NewLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		l = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

// Logger returns the session logger.
func (s *Session) Logger() *slog.Logger {
	return s.logger
}

// Initialize loads the field actions and inspects every document. A
// failure to load actions only leaves the registry empty. Inspection
// failures are recorded per document and returned joined.
func (s *Session) Initialize(ctx context.Context) error {
	if err := s.LoadActions(ctx); err != nil {
		s.Diagnostics.AddWarning(diagnostic.ScopeApplication, "actions_unavailable",
			fmt.Sprintf("Field actions are not available: %v", err), "")
	}

	var docs []*document.Document
	for _, isSource := range []bool{true, false} {
		docs = append(docs, s.Documents.Side(isSource)...)
	}

	var unbound []*serialize.Skeleton
	for _, mm := range s.Definition.Mappings() {
		unbound = append(unbound, serialize.Unbind(mm))
	}

	err := s.inspector.InspectAll(ctx, docs)
	s.rebind(unbound)
	s.UpdateFieldFlags()

	s.logger.Info("session initialized",
		slog.Int("documents", len(docs)),
		slog.Int("actions", s.Actions.Len()),
		slog.Int("errors", len(s.Diagnostics.Errors)))

	return err
}

// rebind resolves mappings against the re-inspected documents. Mappings
// that no longer resolve are reported and removed.
func (s *Session) rebind(unbound []*serialize.Skeleton) {
	for _, sk := range unbound {
		if serialize.UpdateMappedFieldsFromDocuments(sk, s.Documents, s.Diagnostics) && !sk.Mapping.IsEmpty() {
			continue
		}

		s.Definition.RemoveMapping(sk.Mapping)
		s.logger.Warn("mapping dropped after inspection", slog.String("mapping", sk.Mapping.ID))
	}
}

// LoadActions fills the registry from the preloaded actions file, or from
// the field action service when no file is configured.
func (s *Session) LoadActions(ctx context.Context) error {
	var (
		n   int
		err error
	)

	switch {
	case s.Config.ActionsFile != "":
		n, err = s.Actions.LoadFile(s.Config.ActionsFile)
	case s.Config.FieldActionServiceURL != "":
		var body []byte

		body, err = mapping.FetchActionDetails(ctx, s.client, s.Config.FieldActionServiceURL)
		if err == nil {
			n, err = s.Actions.LoadJSON(body)
		}
	default:
		return errors.New("neither an actions file nor a field action service is configured")
	}

	if err != nil {
		return err
	}

	s.logger.Debug("field actions loaded", slog.Int("count", n))

	return nil
}

// AddDocument registers doc and inspects it. A document that cannot be
// inspected is not kept.
func (s *Session) AddDocument(ctx context.Context, doc *document.Document) error {
	if err := s.Documents.Add(doc); err != nil {
		return err
	}

	if err := s.inspector.Inspect(ctx, doc); err != nil {
		s.Documents.Remove(doc.ID, doc.IsSource)
		s.Diagnostics.AddError(diagnostic.ScopeDocument, "inspection_failed",
			fmt.Sprintf("Could not load document %s: %v", doc.Name, err), doc.ID)

		return err
	}

	s.UpdateFieldFlags()

	return nil
}

// RemoveDocument drops the document and every mapping reference into it.
func (s *Session) RemoveDocument(docID string, isSource bool) error {
	doc := s.Documents.Find(docID, isSource)
	if doc == nil || doc.IsPropertyOrConstant() {
		return fmt.Errorf("document %q not found", docID)
	}

	changed := s.Definition.RemoveDocumentReferences(doc)
	s.Documents.Remove(docID, isSource)
	s.UpdateFieldFlags()

	s.logger.Info("document removed", slog.String("doc", docID), slog.Int("mappings_changed", len(changed)))

	return nil
}

// RemoveField removes a field and its subtree after dropping it from
// every mapping.
func (s *Session) RemoveField(f *document.Field) error {
	doc := f.Document()
	if doc == nil {
		return document.ErrForeignField
	}

	s.Definition.RemoveFieldReferences(f)

	if err := doc.RemoveField(f); err != nil {
		return err
	}

	s.UpdateFieldFlags()

	return nil
}

// NewMapping creates a mapping over the given fields and adds it to the
// definition. An enumeration mapping gets its lookup table.
func (s *Session) NewMapping(fields ...*document.Field) (*mapping.MappingModel, error) {
	mm := mapping.NewMappingModel()

	for _, f := range fields {
		if _, err := mm.AddField(f); err != nil {
			return nil, err
		}
	}

	s.Definition.AddMapping(mm)
	s.Definition.EnsureLookupTable(mm)
	s.UpdateFieldFlags()

	return mm, nil
}

// UpdateFieldFlags re-derives the mapping participation flags of every field.
func (s *Session) UpdateFieldFlags() {
	usages := s.Definition.FieldUsages()
	for _, doc := range s.Documents.All() {
		doc.UpdateFromMappings(usages)
	}
}

// Search filters the fields of one side. Hitting the match limit is
// reported as a warning.
func (s *Session) Search(filter string, isSource bool) document.SearchResult {
	res := document.Search(s.Documents.SideWithPseudo(isSource), filter, s.Config.SearchMatchLimit)
	if res.Exceeded {
		s.Diagnostics.AddWarning(diagnostic.ScopeApplication, "search_limit",
			fmt.Sprintf("The maximum number of fields matching the search filter has been exceeded. "+
				"Only the first %d fields are shown", s.Config.SearchMatchLimit), filter)
	}

	return res
}

// ActionsForField returns the registered actions applicable to the
// selected field of one side of mm.
func (s *Session) ActionsForField(mm *mapping.MappingModel, isSource bool,
	multiplicity mapping.Multiplicity,
) []*mapping.ActionDefinition {
	return match.ActionsForField(s.Actions, mm, isSource, multiplicity)
}

// SuggestSources ranks the source fields that could feed target and
// returns the best n.
func (s *Session) SuggestSources(target *document.Field, n int) match.CandidateList {
	return match.RankCandidates(target, s.Documents.SideWithPseudo(true)).Top(n)
}

func (s *Session) model() *serialize.Model {
	return &serialize.Model{
		Documents:   s.Documents,
		Definition:  s.Definition,
		Actions:     s.Actions,
		Diagnostics: s.Diagnostics,
	}
}

// ExportMappings serializes the mapping definition.
func (s *Session) ExportMappings() ([]byte, error) {
	return serialize.Marshal(s.model())
}

// ImportMappings replaces the mapping definition with the one in data.
func (s *Session) ImportMappings(data []byte) error {
	if err := serialize.Deserialize(s.model(), data); err != nil {
		return err
	}

	s.UpdateFieldFlags()

	return nil
}

// Validate checks the mapping definition against the registry.
func (s *Session) Validate() *diagnostic.Diagnostics {
	return mapping.Validate(s.Definition, s.Actions)
}
