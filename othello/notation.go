package othello

import (
	"fmt"
	"strings"
)

// Notation:
// - Columns: a-h (left to right)
// - Rows: 1-8 (top to bottom)
// - Example: Pos{Row: 2, Col: 3} is d3

// Pos is a board coordinate, row-major.
type Pos struct {
	Row int
	Col int
}

// String returns the position in algebraic notation, e.g. "d3".
func (p Pos) String() string {
	if !InBounds(p.Row, p.Col) {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+rune(p.Col), p.Row+1)
}

// ParsePos converts algebraic notation like "d3" or "D3" to a position.
func ParsePos(s string) (Pos, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) != 2 {
		return Pos{}, fmt.Errorf("invalid square: %q", s)
	}
	col := int(s[0] - 'a')
	row := int(s[1] - '1')
	if !InBounds(row, col) {
		return Pos{}, fmt.Errorf("square out of bounds: %q", s)
	}
	return Pos{Row: row, Col: col}, nil
}
