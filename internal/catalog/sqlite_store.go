package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS catalog_versions (
    name       TEXT    NOT NULL,
    version    INTEGER NOT NULL,
    created_at TEXT    NOT NULL,
    size       INTEGER NOT NULL,
    data       BLOB    NOT NULL,
    PRIMARY KEY (name, version)
);
`

// Version describes one stored revision of a catalog.
type Version struct {
	Name    string
	Version int
	Created time.Time
	Size    int
}

// SQLiteStore keeps every revision of every catalog. Get returns the latest.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore creates or opens the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()

		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, stmt := range []string{"PRAGMA journal_mode = WAL", "PRAGMA busy_timeout = 5000", sqliteSchema} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()

			return nil, fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Put stores data as the next revision of name.
func (s *SQLiteStore) Put(ctx context.Context, name string, data []byte) error {
	name, err := checkName(name)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	var latest int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM catalog_versions WHERE name = ?`, name).Scan(&latest); err != nil {
		return fmt.Errorf("reading catalog %s: %w", name, err)
	}

	if data == nil {
		data = []byte{}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO catalog_versions (name, version, created_at, size, data) VALUES (?, ?, ?, ?, ?)`,
		name, latest+1, time.Now().UTC().Format(time.RFC3339Nano), len(data), data); err != nil {
		return fmt.Errorf("storing catalog %s: %w", name, err)
	}

	return tx.Commit()
}

// Get returns the latest revision.
func (s *SQLiteStore) Get(ctx context.Context, name string) ([]byte, error) {
	return s.GetVersion(ctx, name, 0)
}

// GetVersion returns one revision; version 0 means the latest.
func (s *SQLiteStore) GetVersion(ctx context.Context, name string, version int) ([]byte, error) {
	name, err := checkName(name)
	if err != nil {
		return nil, err
	}

	var row *sql.Row
	if version <= 0 {
		row = s.db.QueryRowContext(ctx,
			`SELECT data FROM catalog_versions WHERE name = ? ORDER BY version DESC LIMIT 1`, name)
	} else {
		row = s.db.QueryRowContext(ctx,
			`SELECT data FROM catalog_versions WHERE name = ? AND version = ?`, name, version)
	}

	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}

		return nil, fmt.Errorf("reading catalog %s: %w", name, err)
	}

	return data, nil
}

// List returns the stored catalog names in order.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT name FROM catalog_versions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing catalogs: %w", err)
	}
	defer rows.Close()

	var names []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}

		names = append(names, name)
	}

	return names, rows.Err()
}

// History returns every revision of name, oldest first.
func (s *SQLiteStore) History(ctx context.Context, name string) ([]Version, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT version, created_at, size FROM catalog_versions WHERE name = ? ORDER BY version`, name)
	if err != nil {
		return nil, fmt.Errorf("reading history of %s: %w", name, err)
	}
	defer rows.Close()

	var out []Version

	for rows.Next() {
		v := Version{Name: name}

		var created string
		if err := rows.Scan(&v.Version, &created, &v.Size); err != nil {
			return nil, err
		}

		v.Created, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, v)
	}

	return out, rows.Err()
}
