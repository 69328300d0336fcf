package symbols

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const createDeclarationsTable = `
CREATE TABLE IF NOT EXISTS declarations (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	name      TEXT NOT NULL,
	package   TEXT NOT NULL DEFAULT '',
	kind      TEXT NOT NULL,
	file_path TEXT NOT NULL,
	line      INTEGER NOT NULL,
	language  TEXT NOT NULL
)`

const createScanRunsTable = `
CREATE TABLE IF NOT EXISTS scan_runs (
	id         TEXT PRIMARY KEY,
	root       TEXT NOT NULL,
	files      INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
)`

var declarationIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_declarations_qualified ON declarations(package, name)`,
	`CREATE INDEX IF NOT EXISTS idx_declarations_name ON declarations(name)`,
	`CREATE INDEX IF NOT EXISTS idx_declarations_file ON declarations(file_path)`,
}

// Store persists extracted declarations in SQLite so lookups survive process
// restarts and stay cheap for large projects. ":memory:" gives an ephemeral
// store for tests and one-shot commands.
type Store struct {
	db *sql.DB
}

// OpenStore opens (and if needed creates) a declaration store at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open declaration store: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// createSchema creates tables and indexes inside one transaction.
func (s *Store) createSchema() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	for _, ddl := range []string{createDeclarationsTable, createScanRunsTable} {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	for _, idx := range declarationIndexes {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}

// ReplaceFile atomically swaps the stored declarations for one file.
func (s *Store) ReplaceFile(ctx context.Context, path string, decls []Declaration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM declarations WHERE file_path = ?`, path); err != nil {
		return fmt.Errorf("failed to delete old declarations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO declarations (name, package, kind, file_path, line, language)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range decls {
		if _, err := stmt.ExecContext(ctx, d.Name, d.Package, d.Kind, d.FilePath, d.Line, d.Language); err != nil {
			return fmt.Errorf("failed to insert declaration %s: %w", d.QualifiedName(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit declarations: %w", err)
	}
	return nil
}

// DeleteFile removes all declarations recorded for a file.
func (s *Store) DeleteFile(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM declarations WHERE file_path = ?`, path); err != nil {
		return fmt.Errorf("failed to delete declarations: %w", err)
	}
	return nil
}

// Lookup finds the declaration site for a qualified name. It prefers an exact
// package.Name match and falls back to a bare-name match, so "models.User"
// still resolves when the declaring module was recorded under another prefix.
// Not found is (nil, nil).
func (s *Store) Lookup(ctx context.Context, qualifiedName string) (*Location, error) {
	pkg, name := splitQualified(qualifiedName)

	var loc Location
	err := s.db.QueryRowContext(ctx, `
		SELECT file_path, line FROM declarations
		WHERE package = ? AND name = ?
		ORDER BY file_path, line LIMIT 1`, pkg, name).Scan(&loc.FilePath, &loc.Line)
	if err == nil {
		return &loc, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("declaration lookup failed: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT file_path, line FROM declarations
		WHERE name = ?
		ORDER BY file_path, line LIMIT 1`, name).Scan(&loc.FilePath, &loc.Line)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("declaration lookup failed: %w", err)
	}
	return &loc, nil
}

// All returns every stored declaration, ordered for deterministic output.
func (s *Store) All(ctx context.Context) ([]Declaration, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, package, kind, file_path, line, language
		FROM declarations ORDER BY file_path, line`)
	if err != nil {
		return nil, fmt.Errorf("failed to query declarations: %w", err)
	}
	defer rows.Close()

	var decls []Declaration
	for rows.Next() {
		var d Declaration
		if err := rows.Scan(&d.Name, &d.Package, &d.Kind, &d.FilePath, &d.Line, &d.Language); err != nil {
			return nil, fmt.Errorf("failed to scan declaration row: %w", err)
		}
		decls = append(decls, d)
	}
	return decls, rows.Err()
}

// FileDeclarations returns the declarations recorded for one file, ordered by
// line.
func (s *Store) FileDeclarations(ctx context.Context, path string) ([]Declaration, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, package, kind, file_path, line, language
		FROM declarations WHERE file_path = ? ORDER BY line`, path)
	if err != nil {
		return nil, fmt.Errorf("failed to query declarations for %s: %w", path, err)
	}
	defer rows.Close()

	var decls []Declaration
	for rows.Next() {
		var d Declaration
		if err := rows.Scan(&d.Name, &d.Package, &d.Kind, &d.FilePath, &d.Line, &d.Language); err != nil {
			return nil, fmt.Errorf("failed to scan declaration row: %w", err)
		}
		decls = append(decls, d)
	}
	return decls, rows.Err()
}

// RecordScan notes a completed project scan and returns its run ID.
func (s *Store) RecordScan(ctx context.Context, root string, files int) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scan_runs (id, root, files, created_at) VALUES (?, ?, ?, ?)`,
		id, root, files, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to record scan run: %w", err)
	}
	return id, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
