package database

import (
	"fmt"

	"svindex/internal/index"
	"svindex/internal/position"
	"svindex/internal/semantic"
	"svindex/internal/syntax"
)

// Database answers definition queries over a set of indexed files. It
// is single-owner, synchronous state: concurrent use requires external
// serialization.
type Database struct {
	catalog *FileCatalog
	files   map[FileID]*index.File
	symbols *Symbols
}

// New creates an empty database.
func New() *Database {
	return &Database{
		catalog: NewFileCatalog(),
		files:   make(map[FileID]*index.File),
		symbols: NewSymbols(),
	}
}

// Update fully rebuilds the file's index from its syntax tree and
// swaps it in, reconciling the global name table against the old and
// new declared-name sets. The returned FileID is valid even on error.
// A build error leaves the file's previous index (and every other
// file) untouched.
func (db *Database) Update(path string, tree *syntax.Tree) (FileID, error) {
	id := db.catalog.ResolveOrCreate(path)
	file, err := index.Build(tree)
	if err != nil {
		return id, fmt.Errorf("indexing %s: %w", path, err)
	}
	if old := db.files[id]; old != nil {
		for name := range old.DeclaredNames() {
			db.symbols.Remove(name)
		}
	}
	db.files[id] = file
	for name, itemID := range file.DeclaredNames() {
		db.symbols.Insert(name, SymbolEntry{File: id, Item: itemID})
	}
	return id, nil
}

// Data returns the read-only per-file index of a known, indexed file.
func (db *Database) Data(id FileID) (*index.File, bool) {
	file, ok := db.files[id]
	return file, ok
}

// GotoDefinition resolves the definition for the item under the given
// document position. Every kind of miss, an unknown path, no item at
// the position, an undeclared module name, is an empty result, not an
// error.
func (db *Database) GotoDefinition(req position.DocumentPosition) (position.DocumentRange, bool) {
	fileID, ok := db.catalog.Lookup(req.Document)
	if !ok {
		return position.DocumentRange{}, false
	}
	file, ok := db.files[fileID]
	if !ok {
		return position.DocumentRange{}, false
	}
	_, item, ok := file.ItemAt(req.Position)
	if !ok {
		return position.DocumentRange{}, false
	}

	switch item.Kind {
	case semantic.KindModuleIdentifier:
		entry, ok := db.symbols.Resolve(item.Name)
		if !ok {
			return position.DocumentRange{}, false
		}
		declFile, ok := db.files[entry.File]
		if !ok {
			return position.DocumentRange{}, false
		}
		decl, ok := declFile.Item(entry.Item)
		if !ok {
			return position.DocumentRange{}, false
		}
		path, ok := db.catalog.Path(entry.File)
		if !ok {
			return position.DocumentRange{}, false
		}
		return position.DocumentRange{Document: path, Range: decl.Location}, true

	case semantic.KindModuleInstance:
		// Instance names are never declared in another file; resolve
		// within the same store.
		inst, ok := file.Item(item.InstanceName)
		if !ok {
			return position.DocumentRange{}, false
		}
		return position.DocumentRange{Document: req.Document, Range: inst.Location}, true

	case semantic.KindUnknownIdentifier:
		// Its own location is the nearest available definition.
		return position.DocumentRange{Document: req.Document, Range: item.Location}, true
	}
	return position.DocumentRange{}, false
}
