package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"path"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"

	"datamapper/internal/document"
)

// ManifestVersion is written into every manifest.
const ManifestVersion = "1"

const (
	manifestName  = "adm-catalog-files.gz"
	mappingPrefix = "atlasmapping-"
	documentsDir  = "documents/"
	sourcesDir    = "sources/"
)

var (
	// ErrInvalidArchive is returned when an archive lacks the manifest or the mapping file.
	ErrInvalidArchive = errors.New("invalid catalog archive")
	// ErrNotFound is returned by stores for an unknown catalog.
	ErrNotFound = errors.New("catalog not found")
)

// DocumentEntry describes one document of the session.
type DocumentEntry struct {
	ID                   string            `json:"id"`
	Name                 string            `json:"name,omitempty"`
	Description          string            `json:"description,omitempty"`
	Format               string            `json:"format"`
	IsSource             bool              `json:"isSource"`
	InspectionType       string            `json:"inspectionType,omitempty"`
	InspectionParameters map[string]string `json:"inspectionParameters,omitempty"`
	SelectedRoot         string            `json:"selectedRoot,omitempty"`

	// File is the base name used under documents/ and sources/.
	File string `json:"file"`
	// ClassName is the inspected Java class, which has no raw source.
	ClassName string `json:"className,omitempty"`

	Result []byte `json:"-"`
	Source []byte `json:"-"`
}

// Manifest is the catalog table of contents.
type Manifest struct {
	Version   string          `json:"version"`
	Name      string          `json:"name"`
	Created   time.Time       `json:"created"`
	Documents []DocumentEntry `json:"documents"`
}

// Archive is an unpacked catalog.
type Archive struct {
	Manifest Manifest
	Mapping  []byte
}

// EntryFromDocument captures what is needed to reload doc.
func EntryFromDocument(doc *document.Document) DocumentEntry {
	e := DocumentEntry{
		ID:                   doc.ID,
		Name:                 doc.Name,
		Description:          doc.Description,
		Format:               doc.Format.String(),
		IsSource:             doc.IsSource,
		InspectionType:       string(doc.InspectionType),
		InspectionParameters: maps.Clone(doc.InspectionParameters),
		SelectedRoot:         doc.SelectedRoot,
		Result:               []byte(doc.InspectionResult),
	}

	if doc.Format == document.FormatJava {
		e.ClassName = doc.InspectionSource
	} else if doc.InspectionSource != "" {
		e.Source = []byte(doc.InspectionSource)
	}

	return e
}

// Document rebuilds an empty document ready to be inspected from the
// stored result.
func (e *DocumentEntry) Document() *document.Document {
	doc := document.New(e.ID, e.Name, document.ParseFormat(e.Format), e.IsSource)
	doc.Description = e.Description
	doc.InspectionType = document.InspectionType(e.InspectionType)
	doc.InspectionParameters = maps.Clone(e.InspectionParameters)
	doc.SelectedRoot = e.SelectedRoot
	doc.InspectionResult = string(e.Result)

	if e.ClassName != "" {
		doc.InspectionSource = e.ClassName
	} else {
		doc.InspectionSource = string(e.Source)
	}

	return doc
}

// MappingFileName returns the archive entry name of the mapping file.
func MappingFileName(name string) string {
	return mappingPrefix + name + ".json"
}

// Pack writes the archive as a zip file. Document file names are assigned
// here; a target document sharing an id with a source document gets a
// "-target" suffix.
func Pack(a *Archive) ([]byte, error) {
	var buf bytes.Buffer

	zw := zip.NewWriter(&buf)
	m := a.Manifest

	if m.Version == "" {
		m.Version = ManifestVersion
	}

	if m.Created.IsZero() {
		m.Created = time.Now().UTC()
	}

	used := map[string]bool{}
	m.Documents = make([]DocumentEntry, len(a.Manifest.Documents))

	for i, e := range a.Manifest.Documents {
		e.File = safeName(e.ID)
		if used[e.File] {
			e.File += "-target"
		}

		used[e.File] = true
		m.Documents[i] = e

		if len(e.Result) > 0 {
			if err := writeEntry(zw, documentsDir+e.File+".json", e.Result); err != nil {
				return nil, err
			}
		}

		if len(e.Source) > 0 {
			if err := writeEntry(zw, sourcesDir+e.File, e.Source); err != nil {
				return nil, err
			}
		}
	}

	if err := writeEntry(zw, MappingFileName(safeName(m.Name)), a.Mapping); err != nil {
		return nil, err
	}

	manifest, err := gzipJSON(m)
	if err != nil {
		return nil, err
	}

	if err := writeEntry(zw, manifestName, manifest); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish catalog archive: %w", err)
	}

	return buf.Bytes(), nil
}

// Unpack reads an archive written by Pack.
func Unpack(data []byte) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	files := map[string][]byte{}

	for _, f := range zr.File {
		content, err := readEntry(f)
		if err != nil {
			return nil, err
		}

		files[f.Name] = content
	}

	raw, ok := files[manifestName]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidArchive, manifestName)
	}

	a := &Archive{}
	if err := gunzipJSON(raw, &a.Manifest); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	for name, content := range files {
		if strings.HasPrefix(name, mappingPrefix) && path.Ext(name) == ".json" {
			a.Mapping = content

			break
		}
	}

	if a.Mapping == nil {
		return nil, fmt.Errorf("%w: missing mapping file", ErrInvalidArchive)
	}

	for i := range a.Manifest.Documents {
		e := &a.Manifest.Documents[i]
		e.Result = files[documentsDir+e.File+".json"]
		e.Source = files[sourcesDir+e.File]
	}

	return a, nil
}

func writeEntry(zw *zip.Writer, name string, content []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}

	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	return nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
	}

	return content, nil
}

func gzipJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}

	var buf bytes.Buffer

	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		return nil, err
	}

	if err := gw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func gunzipJSON(data []byte, v any) error {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer gr.Close()

	return json.NewDecoder(gr).Decode(v)
}

// safeName keeps archive entry names flat.
func safeName(s string) string {
	return strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(s)
}
