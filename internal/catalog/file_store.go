package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

const archiveExt = ".adm"

// FileStore keeps one <name>.adm file per catalog in a directory.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(name string) (string, error) {
	name, err := checkName(name)
	if err != nil {
		return "", err
	}

	return filepath.Join(s.dir, name+archiveExt), nil
}

// Put writes the archive, replacing any previous one.
func (s *FileStore) Put(_ context.Context, name string, data []byte) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}

	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		return fmt.Errorf("writing catalog %s: %w", name, err)
	}

	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)

		return fmt.Errorf("writing catalog %s: %w", name, err)
	}

	return nil
}

// Get reads the archive.
func (s *FileStore) Get(_ context.Context, name string) ([]byte, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", name, err)
	}

	return data, nil
}

// List returns the stored catalog names in order.
func (s *FileStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("listing catalogs: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), archiveExt) {
			continue
		}

		names = append(names, strings.TrimSuffix(e.Name(), archiveExt))
	}

	sort.Strings(names)

	return names, nil
}
