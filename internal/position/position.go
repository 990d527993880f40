// Package position converts raw token coordinates into the zero-based
// row/column space every query result is expressed in.
package position

// Position is a zero-based row/column location. Col is a byte offset
// within its row.
type Position struct {
	Row uint32
	Col uint32
}

// Compare orders positions by row, then column.
func (p Position) Compare(o Position) int {
	switch {
	case p.Row != o.Row:
		if p.Row < o.Row {
			return -1
		}
		return 1
	case p.Col != o.Col:
		if p.Col < o.Col {
			return -1
		}
		return 1
	}
	return 0
}

// Range is a span of source text: begin inclusive, end exclusive.
type Range struct {
	Begin Position
	End   Position
}

// ComparePoint is the three-way range-vs-point comparison used for
// binary search: -1 when the range lies entirely before the point, +1
// when entirely after, 0 when the range contains the point. Column
// comparisons break ties only on the range's first and last row. The
// result is a total order only over mutually non-overlapping ranges.
func (r Range) ComparePoint(p Position) int {
	if r.End.Row < p.Row || (r.End.Row == p.Row && r.End.Col <= p.Col) {
		return -1
	}
	if r.Begin.Row > p.Row || (r.Begin.Row == p.Row && r.Begin.Col > p.Col) {
		return 1
	}
	return 0
}

// Contains reports whether the point falls inside the range.
func (r Range) Contains(p Position) bool { return r.ComparePoint(p) == 0 }

// Overlaps reports whether two ranges share at least one position.
func (r Range) Overlaps(o Range) bool {
	return r.Begin.Compare(o.End) < 0 && o.Begin.Compare(r.End) < 0
}

// DocumentPosition is a position paired with the owning file's path,
// the only position representation exposed across the file boundary.
type DocumentPosition struct {
	Document string
	Position Position
}

// DocumentRange is a range paired with the owning file's path.
type DocumentRange struct {
	Document string
	Range    Range
}
