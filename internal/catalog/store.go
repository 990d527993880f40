package catalog

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"svindex/internal/position"
)

// Store is the on-disk module catalog.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog at path (":memory:" works).
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	if _, err := db.Exec(`
        PRAGMA foreign_keys = ON;
        PRAGMA journal_mode = WAL;
    `); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set PRAGMA: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// WithTx runs fn inside one transaction, rolling back on error.
func (s *Store) WithTx(fn func(*Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
	}
	defer tx.Rollback()

	if err := fn(&Tx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
	}
	return nil
}

// GetFile returns one file record.
func (s *Store) GetFile(path string) (*FileRecord, error) {
	var record FileRecord
	err := s.db.QueryRow(
		"SELECT path, last_modified FROM files WHERE path = ?",
		path,
	).Scan(&record.Path, &record.LastModified)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query file: %w", err)
	}
	return &record, nil
}

// ListFiles returns every known file record.
func (s *Store) ListFiles() ([]FileRecord, error) {
	rows, err := s.db.Query("SELECT path, last_modified FROM files ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		var record FileRecord
		if err := rows.Scan(&record.Path, &record.LastModified); err != nil {
			return nil, fmt.Errorf("failed to scan file record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating file records: %w", err)
	}
	return records, nil
}

// ModulesOf returns the module declarations recorded for one file.
func (s *Store) ModulesOf(path string) ([]ModuleRecord, error) {
	return s.queryModules(
		`SELECT file_path, name, begin_row, begin_col, end_row, end_col
         FROM modules WHERE file_path = ? ORDER BY name`, path)
}

// LookupModule returns every recorded declaration of a module name.
func (s *Store) LookupModule(name string) ([]ModuleRecord, error) {
	return s.queryModules(
		`SELECT file_path, name, begin_row, begin_col, end_row, end_col
         FROM modules WHERE name = ? ORDER BY file_path`, name)
}

func (s *Store) queryModules(query string, arg any) ([]ModuleRecord, error) {
	rows, err := s.db.Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query modules: %w", err)
	}
	defer rows.Close()

	var records []ModuleRecord
	for rows.Next() {
		var record ModuleRecord
		var beginRow, beginCol, endRow, endCol uint32
		if err := rows.Scan(&record.File, &record.Name,
			&beginRow, &beginCol, &endRow, &endCol); err != nil {
			return nil, fmt.Errorf("failed to scan module record: %w", err)
		}
		record.Decl = position.Range{
			Begin: position.Position{Row: beginRow, Col: beginCol},
			End:   position.Position{Row: endRow, Col: endCol},
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating module records: %w", err)
	}
	return records, nil
}

// DeleteFile removes a file and, by cascade, its modules.
func (s *Store) DeleteFile(path string) error {
	result, err := s.db.Exec("DELETE FROM files WHERE path = ?", path)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
