package position_test

import (
	"testing"

	"svindex/internal/position"
)

func TestPositionCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b position.Position
		want int
	}{
		{"equal", position.Position{Row: 1, Col: 2}, position.Position{Row: 1, Col: 2}, 0},
		{"earlier row", position.Position{Row: 0, Col: 9}, position.Position{Row: 1, Col: 0}, -1},
		{"later row", position.Position{Row: 2, Col: 0}, position.Position{Row: 1, Col: 9}, 1},
		{"earlier col", position.Position{Row: 1, Col: 1}, position.Position{Row: 1, Col: 2}, -1},
		{"later col", position.Position{Row: 1, Col: 3}, position.Position{Row: 1, Col: 2}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRangeComparePoint(t *testing.T) {
	// a single-row token span and a multi-row declaration span
	token := position.Range{
		Begin: position.Position{Row: 1, Col: 2},
		End:   position.Position{Row: 1, Col: 7},
	}
	block := position.Range{
		Begin: position.Position{Row: 0, Col: 0},
		End:   position.Position{Row: 4, Col: 9},
	}

	tests := []struct {
		name string
		r    position.Range
		p    position.Position
		want int
	}{
		{"point before token", token, position.Position{Row: 1, Col: 1}, 1},
		{"point at token begin", token, position.Position{Row: 1, Col: 2}, 0},
		{"point inside token", token, position.Position{Row: 1, Col: 5}, 0},
		{"point at token end is outside", token, position.Position{Row: 1, Col: 7}, -1},
		{"point on earlier row", token, position.Position{Row: 0, Col: 5}, 1},
		{"point on later row", token, position.Position{Row: 2, Col: 0}, -1},
		{"point on middle row of block", block, position.Position{Row: 2, Col: 100}, 0},
		{"point on first row of block", block, position.Position{Row: 0, Col: 3}, 0},
		{"point past last row of block", block, position.Position{Row: 4, Col: 9}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.ComparePoint(tt.p); got != tt.want {
				t.Errorf("ComparePoint(%v, %v) = %d, want %d", tt.r, tt.p, got, tt.want)
			}
		})
	}
}

func TestRangeOverlaps(t *testing.T) {
	mk := func(br, bc, er, ec uint32) position.Range {
		return position.Range{
			Begin: position.Position{Row: br, Col: bc},
			End:   position.Position{Row: er, Col: ec},
		}
	}

	a := mk(1, 2, 1, 7)
	tests := []struct {
		name string
		b    position.Range
		want bool
	}{
		{"identical", mk(1, 2, 1, 7), true},
		{"contained", mk(1, 3, 1, 5), true},
		{"crossing begin", mk(1, 0, 1, 4), true},
		{"adjacent before", mk(1, 0, 1, 2), false},
		{"adjacent after", mk(1, 7, 1, 12), false},
		{"other row", mk(2, 0, 2, 9), false},
		{"multi-row covering", mk(0, 0, 3, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", a, tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(a); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.b, a, got, tt.want)
			}
		})
	}
}
