package catalog

import (
	"database/sql"
	"fmt"
)

// Tx wraps one catalog transaction.
type Tx struct {
	tx *sql.Tx
}

// UpsertFile inserts or refreshes one file record.
func (tx *Tx) UpsertFile(file *FileRecord) error {
	_, err := tx.tx.Exec(`
        INSERT INTO files (path, last_modified)
        VALUES (?, ?)
        ON CONFLICT(path) DO UPDATE SET
            last_modified = excluded.last_modified
    `, file.Path, file.LastModified)

	if err != nil {
		return fmt.Errorf("failed to upsert file in transaction: %w", err)
	}
	return nil
}

// ReplaceModules swaps a file's recorded declarations wholesale,
// mirroring how the in-memory index replaces a per-file index.
func (tx *Tx) ReplaceModules(path string, modules []ModuleRecord) error {
	if _, err := tx.tx.Exec("DELETE FROM modules WHERE file_path = ?", path); err != nil {
		return fmt.Errorf("failed to delete existing modules: %w", err)
	}
	if len(modules) == 0 {
		return nil
	}

	stmt, err := tx.tx.Prepare(`
        INSERT INTO modules (file_path, name, begin_row, begin_col, end_row, end_col)
        VALUES (?, ?, ?, ?, ?, ?)
    `)
	if err != nil {
		return fmt.Errorf("failed to prepare module insert statement: %w", err)
	}
	defer stmt.Close()

	for _, module := range modules {
		if _, err := stmt.Exec(path, module.Name,
			module.Decl.Begin.Row, module.Decl.Begin.Col,
			module.Decl.End.Row, module.Decl.End.Col); err != nil {
			return fmt.Errorf("failed to insert module %s: %w", module.Name, err)
		}
	}
	return nil
}

// DeleteFile removes a file and its declarations inside a transaction.
func (tx *Tx) DeleteFile(path string) error {
	if _, err := tx.tx.Exec("DELETE FROM files WHERE path = ?", path); err != nil {
		return fmt.Errorf("failed to delete file in transaction: %w", err)
	}
	return nil
}
