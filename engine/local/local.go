// Package local implements the GameEngine interface in-process, pairing the
// Othello rules engine with the heuristic computer player.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"sync"
	"time"

	"termothello/ai"
	"termothello/engine"
	"termothello/othello"
	"termothello/types"
)

var debugLog = log.New(io.Discard, "", log.Ltime|log.Lmicroseconds)

// SetDebugLog sends the engine's debug output to w.
func SetDebugLog(w io.Writer) {
	debugLog.SetOutput(w)
}

var (
	ErrNotConnected = errors.New("engine not connected")
	ErrGameOver     = errors.New("game is over")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrIllegalMove  = errors.New("illegal move")
)

// Engine runs one game between the human and the computer.
type Engine struct {
	config      engine.GameConfig
	playerColor othello.Stone // Human's color

	board      *othello.Board
	opponent   *ai.Player
	boardState *types.BoardState
	history    []types.MoveEntry
	gameOver   bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	moveCallback func(x, y int, color othello.Stone, boardState *types.BoardState)
	endCallback  func(outcome string)

	mu sync.Mutex
}

var _ engine.GameEngine = (*Engine)(nil)

// New creates an engine with the given configuration. An invalid player
// color falls back to White.
func New(cfg engine.GameConfig) *Engine {
	if cfg.PlayerColor != othello.Black && cfg.PlayerColor != othello.White {
		cfg.PlayerColor = othello.White
	}
	return &Engine{
		config:      cfg,
		playerColor: cfg.PlayerColor,
	}
}

// Connect sets up a fresh board and starts the computer if it moves first.
// A computer move still pending from a previous game is cancelled and
// waited for before the new board is installed.
func (e *Engine) Connect() error {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	e.mu.Unlock()
	e.wg.Wait()

	e.mu.Lock()

	var rng *rand.Rand
	if e.config.Seed != 0 {
		rng = rand.New(rand.NewSource(e.config.Seed))
	}
	e.board = othello.NewBoard()
	e.opponent = ai.NewPlayer(e.playerColor.Opposite(), rng)
	e.history = nil
	e.gameOver = false
	e.boardState = e.snapshot(nil, nil)
	e.ctx, e.cancel = context.WithCancel(context.Background())

	ctx := e.ctx
	engineFirst := e.board.CurrentPlayer() != e.playerColor
	e.mu.Unlock()

	debugLog.Printf("Connect: human=%s delay=%s seed=%d", e.playerColor, e.config.AIDelay, e.config.Seed)
	if engineFirst {
		e.startEngineTurns(ctx)
	}
	return nil
}

// GetBoardState returns the current board state. The value must be treated
// as read-only.
func (e *Engine) GetBoardState() *types.BoardState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.boardState
}

// PlayMove plays the human's stone at column x, row y.
func (e *Engine) PlayMove(x, y int) error {
	pos := othello.Pos{Row: y, Col: x}
	e.mu.Lock()

	switch {
	case e.board == nil:
		e.mu.Unlock()
		return ErrNotConnected
	case e.gameOver:
		e.mu.Unlock()
		return ErrGameOver
	case e.board.CurrentPlayer() != e.playerColor:
		e.mu.Unlock()
		return ErrNotYourTurn
	}

	entry, ok := e.apply(pos)
	if !ok {
		e.mu.Unlock()
		debugLog.Printf("PlayMove: rejected %s", pos)
		return fmt.Errorf("%w: %s", ErrIllegalMove, pos)
	}

	state := e.boardState
	over := e.gameOver
	engineTurn := !over && e.board.CurrentPlayer() != e.playerColor
	ctx := e.ctx
	callback := e.moveCallback
	e.mu.Unlock()

	debugLog.Printf("PlayMove: %s %s flipped %d", entry.Color, pos, entry.Flips)

	// Notify callback (outside lock to prevent deadlock)
	if callback != nil {
		callback(x, y, entry.Color, state)
	}

	if over {
		e.handleGameEnd()
		return nil
	}
	if engineTurn {
		e.startEngineTurns(ctx)
	}
	return nil
}

// startEngineTurns plays computer moves on a goroutine until the human is to
// move again, the game ends or ctx is cancelled.
func (e *Engine) startEngineTurns(ctx context.Context) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		for e.triggerEngineMove(ctx) {
		}
	}()
}

// triggerEngineMove waits the configured delay, then lets the computer play
// one move. It returns true if the computer is to move again.
func (e *Engine) triggerEngineMove(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(e.config.AIDelay):
	}

	e.mu.Lock()
	if ctx.Err() != nil || e.gameOver || e.board.CurrentPlayer() == e.playerColor {
		e.mu.Unlock()
		return false
	}

	move, ok := e.opponent.ChooseMove(e.board)
	if !ok {
		e.mu.Unlock()
		debugLog.Printf("triggerEngineMove: no move for %s", e.opponent.Color())
		return false
	}
	entry, ok := e.apply(move)
	if !ok {
		e.mu.Unlock()
		debugLog.Printf("triggerEngineMove: engine chose illegal move %s", move)
		return false
	}

	state := e.boardState
	over := e.gameOver
	again := !over && e.board.CurrentPlayer() != e.playerColor
	callback := e.moveCallback
	e.mu.Unlock()

	debugLog.Printf("triggerEngineMove: %s %s flipped %d", entry.Color, move, entry.Flips)

	if callback != nil {
		callback(move.Col, move.Row, entry.Color, state)
	}

	if over {
		e.handleGameEnd()
		return false
	}
	if again {
		debugLog.Printf("triggerEngineMove: %s has no move, %s plays again", e.playerColor, entry.Color)
	}
	return again
}

// apply plays pos for the side to move and refreshes the snapshot.
// Must be called while holding the lock.
func (e *Engine) apply(pos othello.Pos) (types.MoveEntry, bool) {
	color := e.board.CurrentPlayer()
	flips := e.board.Flips(pos.Row, pos.Col, color)
	if !e.board.ApplyMove(pos.Row, pos.Col) {
		return types.MoveEntry{}, false
	}

	entry := types.MoveEntry{X: pos.Col, Y: pos.Row, Color: color, Flips: len(flips)}
	e.history = append(e.history, entry)
	e.boardState = e.snapshot(&entry, flips)
	e.gameOver = e.boardState.Finished()
	return entry, true
}

// snapshot builds a new board state for the current position.
// Must be called while holding the lock.
func (e *Engine) snapshot(last *types.MoveEntry, flips []othello.Pos) *types.BoardState {
	state := types.Snapshot(e.board)
	state.MoveNumber = len(e.history)
	if last != nil {
		state.LastMove.X = last.X
		state.LastMove.Y = last.Y
	}
	for _, p := range flips {
		state.Flipped = append(state.Flipped, types.FromPos(p))
	}
	return state
}

// handleGameEnd reports the final result.
func (e *Engine) handleGameEnd() {
	e.mu.Lock()
	outcome := e.boardState.Outcome
	callback := e.endCallback
	e.mu.Unlock()

	debugLog.Printf("handleGameEnd: %s", outcome)
	if callback != nil {
		callback(outcome)
	}
}

// IsMyTurn returns true if it's the human player's turn.
func (e *Engine) IsMyTurn() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board != nil && !e.gameOver && e.board.CurrentPlayer() == e.playerColor
}

// GetPlayerColor returns the human player's color.
func (e *Engine) GetPlayerColor() othello.Stone {
	return e.playerColor
}

// OnMove registers a callback for when a move is played.
func (e *Engine) OnMove(callback func(x, y int, color othello.Stone, boardState *types.BoardState)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.moveCallback = callback
}

// OnGameEnd registers a callback for when the game ends.
func (e *Engine) OnGameEnd(callback func(outcome string)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.endCallback = callback
}

// History returns a copy of the moves played so far.
func (e *Engine) History() []types.MoveEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	history := make([]types.MoveEntry, len(e.history))
	copy(history, e.history)
	return history
}

// Close cancels pending computer moves and waits for them to stop.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	e.mu.Unlock()
	e.wg.Wait()
}
