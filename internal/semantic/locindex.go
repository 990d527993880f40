package semantic

import (
	"errors"
	"fmt"
	"sort"

	"svindex/internal/position"
)

// ErrDuplicateLocation reports two items claiming the same start
// position within one file, a structural bug in index construction.
var ErrDuplicateLocation = errors.New("duplicate location")

// ErrOverlappingLocation reports an attempt to index a range that
// overlaps an already indexed one. The point lookup's three-way
// comparison is a total order only over non-overlapping ranges, so
// overlap is rejected at construction time rather than allowed to
// corrupt searches later.
var ErrOverlappingLocation = errors.New("overlapping location")

type locEntry struct {
	loc position.Range
	id  ItemID
}

// LocationIndex maps mutually non-overlapping source ranges to item
// ids, sorted by begin position. Items logically nested inside an
// indexed span are reached through id references on the enclosing
// item, never through entries of their own.
type LocationIndex struct {
	entries []locEntry
}

// Insert adds a range/id pair at its sorted slot. It fails with
// ErrDuplicateLocation when an entry already begins at the same
// position and with ErrOverlappingLocation when the new range crosses
// a neighbor.
func (x *LocationIndex) Insert(loc position.Range, id ItemID) error {
	at := sort.Search(len(x.entries), func(i int) bool {
		return x.entries[i].loc.Begin.Compare(loc.Begin) >= 0
	})
	if at < len(x.entries) && x.entries[at].loc.Begin == loc.Begin {
		return fmt.Errorf("%w: another item already begins at %d:%d",
			ErrDuplicateLocation, loc.Begin.Row, loc.Begin.Col)
	}
	if at > 0 && x.entries[at-1].loc.Overlaps(loc) {
		return fmt.Errorf("%w: %v crosses %v", ErrOverlappingLocation, loc, x.entries[at-1].loc)
	}
	if at < len(x.entries) && x.entries[at].loc.Overlaps(loc) {
		return fmt.Errorf("%w: %v crosses %v", ErrOverlappingLocation, loc, x.entries[at].loc)
	}
	x.entries = append(x.entries, locEntry{})
	copy(x.entries[at+1:], x.entries[at:])
	x.entries[at] = locEntry{loc: loc, id: id}
	return nil
}

// LookupAt finds the entry whose range contains the point.
func (x *LocationIndex) LookupAt(p position.Position) (ItemID, bool) {
	at := sort.Search(len(x.entries), func(i int) bool {
		return x.entries[i].loc.ComparePoint(p) >= 0
	})
	if at < len(x.entries) && x.entries[at].loc.ComparePoint(p) == 0 {
		return x.entries[at].id, true
	}
	return ItemID{}, false
}

// Len reports the number of indexed ranges.
func (x *LocationIndex) Len() int { return len(x.entries) }

// Ranges returns the indexed ranges in sorted order.
func (x *LocationIndex) Ranges() []position.Range {
	out := make([]position.Range, len(x.entries))
	for i, e := range x.entries {
		out[i] = e.loc
	}
	return out
}
