package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"datamapper/internal/config"
)

// Store persists packed catalog archives by name.
type Store interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
}

// NewStore opens the backend selected by cfg.
func NewStore(cfg config.CatalogConfig) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", "file":
		return NewFileStore(cfg.Dir), nil
	case "s3":
		return NewS3Store(cfg.S3)
	case "sqlite":
		p := cfg.SQLitePath
		if p == "" {
			p = filepath.Join(cfg.Dir, "catalog.db")
		}

		return OpenSQLiteStore(p)
	default:
		return nil, fmt.Errorf("unknown catalog backend %q", cfg.Backend)
	}
}

func checkName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("catalog name is required")
	}

	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid catalog name %q", name)
	}

	return name, nil
}
