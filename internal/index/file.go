// Package index builds the per-file index: one walk over a parsed
// file's declarations populating a fresh item store, location index
// and declared-name set.
package index

import (
	"svindex/internal/position"
	"svindex/internal/semantic"
)

// File is one file's fully built index. It is immutable once Build
// returns; a changed file gets a whole new File, never an edit of the
// old one.
type File struct {
	lines     *position.LineIndex
	store     *semantic.Store
	locations *semantic.LocationIndex
	declared  map[string]semantic.ItemID
}

// Lines exposes the file's line table.
func (f *File) Lines() *position.LineIndex { return f.lines }

// Item resolves an id against this file's store.
func (f *File) Item(id semantic.ItemID) (semantic.Item, bool) {
	return f.store.Get(id)
}

// ItemAt finds the item whose indexed range contains the position.
func (f *File) ItemAt(p position.Position) (semantic.ItemID, semantic.Item, bool) {
	id, ok := f.locations.LookupAt(p)
	if !ok {
		return semantic.ItemID{}, semantic.Item{}, false
	}
	item, ok := f.store.Get(id)
	if !ok {
		return semantic.ItemID{}, semantic.Item{}, false
	}
	return id, item, true
}

// DeclaredNames returns the module names this file declares, each with
// the declaring item's id.
func (f *File) DeclaredNames() map[string]semantic.ItemID {
	out := make(map[string]semantic.ItemID, len(f.declared))
	for name, id := range f.declared {
		out[name] = id
	}
	return out
}

// Ranges returns the indexed ranges in sorted order, for invariant
// checks.
func (f *File) Ranges() []position.Range { return f.locations.Ranges() }

// Items reports the number of items in the file's store.
func (f *File) Items() int { return f.store.Len() }
