package semantic

import "sync/atomic"

// ItemID addresses an item inside the Store that produced it. The
// generation tag detects ids that outlive their store: replacing a
// file's store invalidates every id it ever handed out, with no
// per-item cleanup.
type ItemID struct {
	index      uint32
	generation uint32
}

// IsValid reports whether the id was ever produced by a store. The
// zero ItemID is never valid.
func (id ItemID) IsValid() bool { return id.generation != 0 }

// generations is never reused, so ids from a discarded store cannot
// alias into its replacement.
var generations atomic.Uint32

// Store is an arena owning all semantic items of one file.
type Store struct {
	generation uint32
	items      []Item
}

// NewStore creates an empty arena with a fresh generation.
func NewStore() *Store {
	return &Store{generation: generations.Add(1)}
}

// Insert adds an item and returns its id.
func (s *Store) Insert(item Item) ItemID {
	s.items = append(s.items, item)
	return ItemID{index: uint32(len(s.items) - 1), generation: s.generation}
}

// Get resolves an id. It reports false for ids of another generation
// (a stale reference into a replaced arena) as well as for the zero id.
func (s *Store) Get(id ItemID) (Item, bool) {
	if id.generation != s.generation || int(id.index) >= len(s.items) {
		return Item{}, false
	}
	return s.items[id.index], true
}

// Len reports the number of stored items.
func (s *Store) Len() int { return len(s.items) }
