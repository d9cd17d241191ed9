// Package othello implements the rules of Othello on an 8x8 board.
package othello

// Stone is the content of a single board cell.
type Stone uint8

const (
	Empty Stone = iota
	Black
	White
)

// Opposite returns the other color. Empty has no opposite and stays Empty.
func (s Stone) Opposite() Stone {
	switch s {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// Rune returns the glyph used when printing a board.
func (s Stone) Rune() rune {
	switch s {
	case Black:
		return '●'
	case White:
		return '○'
	default:
		return '.'
	}
}

func (s Stone) String() string {
	switch s {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "Empty"
	}
}
