// Package engine defines the interface for game engines.
package engine

import (
	"time"

	"termothello/othello"
	"termothello/types"
)

// GameEngine defines the interface for playing Othello against the computer.
type GameEngine interface {
	// Connect starts a new game.
	Connect() error

	// GetBoardState returns the current board state.
	GetBoardState() *types.BoardState

	// PlayMove plays the human's stone at column x, row y.
	// Returns an error if the move is illegal.
	PlayMove(x, y int) error

	// IsMyTurn returns true if it's the human player's turn.
	IsMyTurn() bool

	// GetPlayerColor returns the human player's color.
	GetPlayerColor() othello.Stone

	// OnMove registers a callback for when a move is played (by either player).
	// boardState is the engine's current snapshot, shared with every caller;
	// treat it as read-only.
	OnMove(func(x, y int, color othello.Stone, boardState *types.BoardState))

	// OnGameEnd registers a callback for when the game ends.
	OnGameEnd(func(outcome string))

	// History returns the moves played so far.
	History() []types.MoveEntry

	// Close stops the game. Pending computer moves are dropped.
	Close()
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	PlayerColor othello.Stone // Human's color; the computer plays the other one
	AIDelay     time.Duration // Pause before each computer move
	Seed        int64         // Computer's random seed, 0 = time based
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		PlayerColor: othello.White, // Black opens, so the computer moves first
		AIDelay:     500 * time.Millisecond,
	}
}
