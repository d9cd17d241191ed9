// Package ai provides a beginner-level computer opponent for Othello.
package ai

import (
	"math/rand"
	"time"

	"termothello/othello"
)

// MoveQuerier is the read-only view of a board the player needs.
type MoveQuerier interface {
	ValidMoves(player othello.Stone) []othello.Pos
	Flips(row, col int, player othello.Stone) []othello.Pos
}

// Corners are taken whenever they are legal.
var corners = []othello.Pos{{Row: 0, Col: 0}, {Row: 0, Col: 7}, {Row: 7, Col: 0}, {Row: 7, Col: 7}}

// Squares next to a corner hand the corner to the opponent.
var dangerZones = []othello.Pos{
	{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1},
	{Row: 0, Col: 6}, {Row: 1, Col: 6}, {Row: 1, Col: 7},
	{Row: 6, Col: 0}, {Row: 6, Col: 1}, {Row: 7, Col: 1},
	{Row: 6, Col: 6}, {Row: 6, Col: 7}, {Row: 7, Col: 6},
}

// jitter is the exclusive upper bound of the random bonus added to each
// candidate's capture count.
const jitter = 3

// Player picks moves greedily: corners first, then the biggest capture away
// from the corners, with some noise so it stays beatable.
type Player struct {
	color othello.Stone
	rng   *rand.Rand
}

// NewPlayer creates a player for color. A nil rng is replaced by a
// time-seeded source.
func NewPlayer(color othello.Stone, rng *rand.Rand) *Player {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Player{color: color, rng: rng}
}

// Color returns the color this player moves for.
func (p *Player) Color() othello.Stone {
	return p.color
}

// ChooseMove returns the move to play, or false when there is none.
func (p *Player) ChooseMove(b MoveQuerier) (othello.Pos, bool) {
	moves := b.ValidMoves(p.color)
	if len(moves) == 0 {
		return othello.Pos{}, false
	}

	for _, m := range moves {
		if contains(corners, m) {
			return m, true
		}
	}

	var safe []othello.Pos
	for _, m := range moves {
		if !contains(dangerZones, m) {
			safe = append(safe, m)
		}
	}
	candidates := safe
	if len(candidates) == 0 {
		candidates = moves
	}

	best := candidates[0]
	bestScore := -1
	for _, m := range candidates {
		score := len(b.Flips(m.Row, m.Col, p.color)) + p.rng.Intn(jitter)
		if score > bestScore {
			bestScore = score
			best = m
		}
	}
	return best, true
}

func contains(list []othello.Pos, p othello.Pos) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}
