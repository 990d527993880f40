package database

import "svindex/internal/semantic"

// SymbolEntry names the file and item owning one global declaration.
type SymbolEntry struct {
	File FileID
	Item semantic.ItemID
}

// Symbols is the project-wide table of declared module names. It is
// kept equal to the union of the per-file declared-name sets by
// remove-then-insert reconciliation on every file replacement. When
// two files declare the same name the most recent reconciliation
// wins; duplicate-declaration diagnostics belong to a higher layer.
type Symbols struct {
	byName map[string]SymbolEntry
}

// NewSymbols creates an empty table.
func NewSymbols() *Symbols {
	return &Symbols{byName: make(map[string]SymbolEntry)}
}

// Resolve looks a declared name up.
func (s *Symbols) Resolve(name string) (SymbolEntry, bool) {
	entry, ok := s.byName[name]
	return entry, ok
}

// Remove withdraws one name.
func (s *Symbols) Remove(name string) { delete(s.byName, name) }

// Insert registers a declaration, displacing any earlier owner.
func (s *Symbols) Insert(name string, entry SymbolEntry) { s.byName[name] = entry }

// Len reports the number of declared names.
func (s *Symbols) Len() int { return len(s.byName) }
