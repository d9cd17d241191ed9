package othello

import (
	"errors"
	"fmt"
	"strings"
)

// Size is the number of rows and columns on the board.
const Size = 8

// ErrOutOfRange is returned when a cell outside the board is queried.
var ErrOutOfRange = errors.New("position out of range")

// Directions for scanning captures
var directions = []struct{ row, col int }{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Board holds the grid and whose turn it is. The zero value is an empty
// board; use NewBoard for the starting position.
type Board struct {
	grid    [Size][Size]Stone
	current Stone
}

// NewBoard returns a board in the standard starting position with Black to move.
func NewBoard() *Board {
	b := &Board{current: Black}
	mid := Size / 2
	b.grid[mid-1][mid-1], b.grid[mid][mid] = White, White
	b.grid[mid-1][mid], b.grid[mid][mid-1] = Black, Black
	return b
}

// ParseBoard builds a board from eight lines of eight cells.
// X, B or ● mark black stones, O, W or ○ white ones, and . or - empty cells.
// Blank lines and surrounding whitespace are ignored.
func ParseBoard(text string, toMove Stone) (*Board, error) {
	if toMove != Black && toMove != White {
		return nil, fmt.Errorf("invalid player to move: %s", toMove)
	}
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) != Size {
		return nil, fmt.Errorf("expected %d rows, got %d", Size, len(rows))
	}

	b := &Board{current: toMove}
	for row, line := range rows {
		cells := []rune(line)
		if len(cells) != Size {
			return nil, fmt.Errorf("row %d: expected %d cells, got %d", row+1, Size, len(cells))
		}
		for col, r := range cells {
			switch r {
			case 'X', 'x', 'B', 'b', '●':
				b.grid[row][col] = Black
			case 'O', 'o', 'W', 'w', '○':
				b.grid[row][col] = White
			case '.', '-':
				b.grid[row][col] = Empty
			default:
				return nil, fmt.Errorf("row %d: invalid cell %q", row+1, r)
			}
		}
	}
	return b, nil
}

// Clone returns a deep copy of the board. The copy shares no state with b.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// InBounds reports whether (row, col) lies on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// IsValidPosition reports whether (row, col) lies on the board.
func (b *Board) IsValidPosition(row, col int) bool {
	return InBounds(row, col)
}

// Stone returns the content of the cell at (row, col).
func (b *Board) Stone(row, col int) (Stone, error) {
	if !InBounds(row, col) {
		return Empty, fmt.Errorf("stone at (%d, %d): %w", row, col, ErrOutOfRange)
	}
	return b.grid[row][col], nil
}

// Grid returns a copy of the cells, indexed [row][col].
func (b *Board) Grid() [Size][Size]Stone {
	return b.grid
}

// CurrentPlayer returns the color to move. Once the game is over the value
// only tells whose turn would have been next.
func (b *Board) CurrentPlayer() Stone {
	return b.current
}

// Flips returns the stones that would be captured if player placed a stone
// at (row, col). The target cell itself is not required to be empty.
func (b *Board) Flips(row, col int, player Stone) []Pos {
	if !InBounds(row, col) || (player != Black && player != White) {
		return nil
	}
	var total []Pos
	opponent := player.Opposite()

	for _, dir := range directions {
		var line []Pos
		r, c := row+dir.row, col+dir.col

		for InBounds(r, c) && b.grid[r][c] == opponent {
			line = append(line, Pos{Row: r, Col: c})
			r += dir.row
			c += dir.col
		}

		if len(line) > 0 && InBounds(r, c) && b.grid[r][c] == player {
			total = append(total, line...)
		}
	}

	return total
}

// IsValidMoveFor reports whether player may place a stone at (row, col).
func (b *Board) IsValidMoveFor(row, col int, player Stone) bool {
	if !InBounds(row, col) || b.grid[row][col] != Empty {
		return false
	}
	return len(b.Flips(row, col, player)) > 0
}

// IsValidMove reports whether the current player may place a stone at (row, col).
func (b *Board) IsValidMove(row, col int) bool {
	return b.IsValidMoveFor(row, col, b.current)
}

// ApplyMove plays (row, col) for the current player, flipping every captured
// stone and advancing the turn. It returns false and leaves the board
// untouched if the move is illegal.
func (b *Board) ApplyMove(row, col int) bool {
	if !b.IsValidMove(row, col) {
		return false
	}

	flips := b.Flips(row, col, b.current)
	b.grid[row][col] = b.current
	for _, p := range flips {
		b.grid[p.Row][p.Col] = b.current
	}

	b.advanceTurn()
	return true
}

// advanceTurn hands the move to the opponent, or back to the mover when the
// opponent is blocked. With nobody able to move the turn still flips.
func (b *Board) advanceTurn() {
	next := b.current.Opposite()
	switch {
	case b.HasValidMoves(next):
		b.current = next
	case b.HasValidMoves(b.current):
		// opponent skipped
	default:
		b.current = next
	}
}

// HasValidMoves reports whether player has at least one legal move.
func (b *Board) HasValidMoves(player Stone) bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.IsValidMoveFor(row, col, player) {
				return true
			}
		}
	}
	return false
}

// ValidMoves returns every legal move for player in row-major order.
func (b *Board) ValidMoves(player Stone) []Pos {
	var moves []Pos
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.IsValidMoveFor(row, col, player) {
				moves = append(moves, Pos{Row: row, Col: col})
			}
		}
	}
	return moves
}

// CountStones returns the number of cells holding s. Empty counts empty cells.
func (b *Board) CountStones(s Stone) int {
	count := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.grid[row][col] == s {
				count++
			}
		}
	}
	return count
}

// IsGameOver reports whether neither color has a legal move.
func (b *Board) IsGameOver() bool {
	return !b.HasValidMoves(Black) && !b.HasValidMoves(White)
}

// Winner returns the color with more stones once the game is over.
// It returns Empty while the game is in progress and on a tie.
func (b *Board) Winner() Stone {
	if !b.IsGameOver() {
		return Empty
	}
	black, white := b.CountStones(Black), b.CountStones(White)
	switch {
	case black > white:
		return Black
	case white > black:
		return White
	default:
		return Empty
	}
}

// String renders the board with column letters and row numbers.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for row := 0; row < Size; row++ {
		fmt.Fprintf(&sb, "%d ", row+1)
		for col := 0; col < Size; col++ {
			sb.WriteRune(b.grid[row][col].Rune())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
