// Package types contains shared data structures for termothello.
package types

import (
	"fmt"

	"termothello/othello"
)

const (
	PhasePlaying  = "playing"
	PhaseFinished = "finished"
)

// BoardState is an immutable snapshot of an Othello game handed to renderers.
// Board is indexed as Board[y][x], i.e. [row][col].
type BoardState struct {
	MoveNumber   int               `json:"move_number"`
	PlayerToMove othello.Stone     `json:"player_to_move"`
	Phase        string            `json:"phase"` // "playing", "finished"
	Board        [][]othello.Stone `json:"board"`
	Outcome      string            `json:"outcome"`
	Winner       othello.Stone     `json:"winner"`
	BlackCount   int               `json:"black_count"`
	WhiteCount   int               `json:"white_count"`
	ValidMoves   []BoardPos        `json:"valid_moves"` // for PlayerToMove
	Flipped      []BoardPos        `json:"flipped"`     // by the last move
	LastMove     struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"last_move"`
}

// Finished returns true if the game is over.
func (b *BoardState) Finished() bool {
	return b.Phase == PhaseFinished
}

// Height returns the board height.
func (b *BoardState) Height() int {
	return len(b.Board)
}

// Width returns the board width.
func (b *BoardState) Width() int {
	if b.Height() == 0 {
		return 0
	}
	return len(b.Board[0])
}

// IsValidMove returns true if (x, y) is a legal move for PlayerToMove.
func (b *BoardState) IsValidMove(x, y int) bool {
	for _, p := range b.ValidMoves {
		if p.X == x && p.Y == y {
			return true
		}
	}
	return false
}

// WasFlipped returns true if the stone at (x, y) was turned by the last move.
func (b *BoardState) WasFlipped(x, y int) bool {
	for _, p := range b.Flipped {
		if p.X == x && p.Y == y {
			return true
		}
	}
	return false
}

// BoardPos represents a position on the board.
type BoardPos struct {
	X int
	Y int
}

// FromPos converts an engine position to screen-style coordinates.
func FromPos(p othello.Pos) BoardPos {
	return BoardPos{X: p.Col, Y: p.Row}
}

// Pos converts back to an engine position.
func (p BoardPos) Pos() othello.Pos {
	return othello.Pos{Row: p.Y, Col: p.X}
}

// MoveEntry is one played move in the game history.
type MoveEntry struct {
	X     int
	Y     int
	Color othello.Stone
	Flips int
}

// Notation returns the move in algebraic notation, e.g. "d3".
func (m MoveEntry) Notation() string {
	return othello.Pos{Row: m.Y, Col: m.X}.String()
}

// Snapshot copies the observable state of b into a new BoardState.
// LastMove is left at (-1, -1); callers that know the last move fill it in.
func Snapshot(b *othello.Board) *BoardState {
	grid := b.Grid()
	board := make([][]othello.Stone, othello.Size)
	for y := range board {
		board[y] = make([]othello.Stone, othello.Size)
		copy(board[y], grid[y][:])
	}

	state := &BoardState{
		PlayerToMove: b.CurrentPlayer(),
		Phase:        PhasePlaying,
		Board:        board,
		BlackCount:   b.CountStones(othello.Black),
		WhiteCount:   b.CountStones(othello.White),
	}
	state.LastMove.X, state.LastMove.Y = -1, -1

	if b.IsGameOver() {
		state.Phase = PhaseFinished
		state.Winner = b.Winner()
		state.Outcome = Outcome(state.Winner, state.BlackCount, state.WhiteCount)
		return state
	}
	for _, p := range b.ValidMoves(b.CurrentPlayer()) {
		state.ValidMoves = append(state.ValidMoves, FromPos(p))
	}
	return state
}

// Outcome describes a finished game, e.g. "Black wins 40-24".
func Outcome(winner othello.Stone, black, white int) string {
	switch winner {
	case othello.Black:
		return fmt.Sprintf("Black wins %d-%d", black, white)
	case othello.White:
		return fmt.Sprintf("White wins %d-%d", white, black)
	default:
		return fmt.Sprintf("Draw %d-%d", black, white)
	}
}
