// Package catalog persists what the in-memory index knows about
// declared modules, so a restarted server can answer workspace-level
// questions before the first full scan completes. The index core
// never reads it; only the host does.
package catalog

import (
	"errors"

	"svindex/internal/position"
)

// ErrNotFound reports a path the catalog has never seen.
var ErrNotFound = errors.New("not found in catalog")

// ErrInvalidTransaction reports a transaction that could not be
// started or committed.
var ErrInvalidTransaction = errors.New("invalid transaction")

// FileRecord is one indexed source file.
type FileRecord struct {
	Path         string
	LastModified int64
}

// ModuleRecord is one module declaration contributed by a file.
type ModuleRecord struct {
	File string
	Name string
	Decl position.Range
}
