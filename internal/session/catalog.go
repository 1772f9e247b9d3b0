package session

import (
	"context"
	"fmt"
	"log/slog"

	"datamapper/internal/catalog"
	"datamapper/internal/document"
)

// ExportCatalog packs the mappings and documents into an ADM archive.
func (s *Session) ExportCatalog() ([]byte, error) {
	mappingJSON, err := s.ExportMappings()
	if err != nil {
		return nil, err
	}

	a := &catalog.Archive{
		Manifest: catalog.Manifest{Name: s.Definition.Name},
		Mapping:  mappingJSON,
	}

	for _, isSource := range []bool{true, false} {
		for _, doc := range s.Documents.Side(isSource) {
			a.Manifest.Documents = append(a.Manifest.Documents, catalog.EntryFromDocument(doc))
		}
	}

	return catalog.Pack(a)
}

// ImportCatalog replaces the whole session with the archive's content:
// documents are re-created and inspected from their stored results, then
// the mappings are loaded.
func (s *Session) ImportCatalog(ctx context.Context, data []byte) error {
	a, err := catalog.Unpack(data)
	if err != nil {
		return err
	}

	s.Definition.Clear()
	s.Documents.Clear()
	s.Diagnostics.Clear()

	var docs []*document.Document

	for i := range a.Manifest.Documents {
		doc := a.Manifest.Documents[i].Document()
		if err := s.Documents.Add(doc); err != nil {
			return fmt.Errorf("failed to import catalog: %w", err)
		}

		docs = append(docs, doc)
	}

	if err := s.Initialize(ctx); err != nil {
		s.logger.Warn("catalog documents failed to load", slog.Any("error", err))
	}

	if err := s.ImportMappings(a.Mapping); err != nil {
		return fmt.Errorf("failed to import catalog mappings: %w", err)
	}

	s.logger.Info("catalog imported",
		slog.String("name", a.Manifest.Name),
		slog.Int("documents", len(docs)),
		slog.Int("mappings", len(s.Definition.Mappings())))

	return nil
}

// SaveCatalog exports the session to the catalog store under name.
func (s *Session) SaveCatalog(ctx context.Context, name string) error {
	if s.store == nil {
		return ErrNoStore
	}

	data, err := s.ExportCatalog()
	if err != nil {
		return err
	}

	return s.store.Put(ctx, name, data)
}

// LoadCatalog imports the named catalog from the store.
func (s *Session) LoadCatalog(ctx context.Context, name string) error {
	if s.store == nil {
		return ErrNoStore
	}

	data, err := s.store.Get(ctx, name)
	if err != nil {
		return err
	}

	return s.ImportCatalog(ctx, data)
}
