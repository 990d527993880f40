package position

import (
	"errors"
	"fmt"
	"strings"

	"svindex/internal/syntax"
)

// ErrLineIndexMismatch reports a token whose line number has no entry
// in the line table. It indicates a parser/indexer disagreement, not a
// user-facing condition.
var ErrLineIndexMismatch = errors.New("line index mismatch")

// LineIndex records, for each line of a file, the absolute byte offset
// at which the line begins. Line 0 begins at offset 0 implicitly.
type LineIndex struct {
	starts []int
}

// NewLineIndex builds the line table from the tree's newline tokens.
// A CR-LF pair counts as a single terminator, and every terminator,
// including those delimiting blank lines, contributes exactly one
// line start.
func NewLineIndex(tree *syntax.Tree) *LineIndex {
	starts := []int{0}
	for _, tok := range tree.Newlines() {
		text := tree.Text(tok)
		pos := tok.Offset
		first := true
		for _, chunk := range strings.Split(text, "\r\n") {
			for _, seg := range strings.Split(chunk, "\n") {
				if first {
					first = false
				} else {
					starts = append(starts, pos)
				}
				pos += len(seg) + 1
			}
			pos++ // the CR of the pair consumed by the outer split
		}
	}
	return &LineIndex{starts: starts}
}

// Lines returns the number of lines in the table.
func (ix *LineIndex) Lines() int { return len(ix.starts) }

// LocateToPosition converts a token's 1-based line number and absolute
// offset into a zero-based position. A line outside the table means
// the token stream and the table disagree and is reported as
// ErrLineIndexMismatch.
func (ix *LineIndex) LocateToPosition(loc syntax.Locate) (Position, error) {
	row := int(loc.Line) - 1
	if row < 0 || row >= len(ix.starts) {
		return Position{}, fmt.Errorf("%w: line %d outside table of %d lines",
			ErrLineIndexMismatch, loc.Line, len(ix.starts))
	}
	start := ix.starts[row]
	if loc.Offset < start {
		return Position{}, fmt.Errorf("%w: offset %d before start %d of line %d",
			ErrLineIndexMismatch, loc.Offset, start, loc.Line)
	}
	return Position{Row: uint32(row), Col: uint32(loc.Offset - start)}, nil
}

// OffsetToPosition locates a raw byte offset not tied to a known line
// number. It agrees with LocateToPosition wherever both apply.
func (ix *LineIndex) OffsetToPosition(offset int) Position {
	row := 0
	for i, start := range ix.starts {
		if start > offset {
			break
		}
		row = i
	}
	return Position{Row: uint32(row), Col: uint32(offset - ix.starts[row])}
}

// TokenRange converts a token into the single-row range it covers.
func (ix *LineIndex) TokenRange(loc syntax.Locate) (Range, error) {
	begin, err := ix.LocateToPosition(loc)
	if err != nil {
		return Range{}, err
	}
	end := begin
	end.Col += uint32(loc.Len)
	return Range{Begin: begin, End: end}, nil
}
