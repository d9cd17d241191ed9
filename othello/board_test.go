package othello

import (
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func mustParse(t *testing.T, text string, toMove Stone) *Board {
	t.Helper()
	b, err := ParseBoard(text, toMove)
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	return b
}

func TestNewBoardLayout(t *testing.T) {
	b := NewBoard()
	want := map[Pos]Stone{
		{3, 3}: White,
		{3, 4}: Black,
		{4, 3}: Black,
		{4, 4}: White,
	}
	empty := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			got, err := b.Stone(row, col)
			if err != nil {
				t.Fatalf("Stone(%d, %d): %v", row, col, err)
			}
			if s, ok := want[Pos{row, col}]; ok {
				if got != s {
					t.Errorf("(%d,%d) = %s, want %s", row, col, got, s)
				}
				continue
			}
			if got != Empty {
				t.Errorf("(%d,%d) = %s, want Empty", row, col, got)
			}
			empty++
		}
	}
	if empty != 60 {
		t.Errorf("empty cells = %d, want 60", empty)
	}
	if b.CountStones(Black) != 2 || b.CountStones(White) != 2 {
		t.Errorf("score = %d/%d, want 2/2", b.CountStones(Black), b.CountStones(White))
	}
	if b.CurrentPlayer() != Black {
		t.Errorf("first mover = %s, want Black", b.CurrentPlayer())
	}
}

func TestInitialValidMoves(t *testing.T) {
	b := NewBoard()
	want := []Pos{{2, 3}, {3, 2}, {4, 5}, {5, 4}}
	if got := b.ValidMoves(Black); !reflect.DeepEqual(got, want) {
		t.Errorf("ValidMoves(Black) = %v, want %v", got, want)
	}
	for _, p := range want {
		if !b.IsValidMove(p.Row, p.Col) {
			t.Errorf("IsValidMove(%v) = false", p)
		}
	}
	wantWhite := []Pos{{2, 4}, {3, 5}, {4, 2}, {5, 3}}
	if got := b.ValidMoves(White); !reflect.DeepEqual(got, wantWhite) {
		t.Errorf("ValidMoves(White) = %v, want %v", got, wantWhite)
	}
}

func TestStoneOutOfRange(t *testing.T) {
	b := NewBoard()
	for _, p := range []Pos{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, 100}} {
		_, err := b.Stone(p.Row, p.Col)
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Stone(%d, %d) error = %v, want ErrOutOfRange", p.Row, p.Col, err)
		}
		if b.IsValidPosition(p.Row, p.Col) {
			t.Errorf("IsValidPosition(%d, %d) = true", p.Row, p.Col)
		}
		if b.IsValidMove(p.Row, p.Col) {
			t.Errorf("IsValidMove(%d, %d) = true", p.Row, p.Col)
		}
	}
}

func TestFlipsSingleCapture(t *testing.T) {
	b := NewBoard()
	flips := b.Flips(3, 2, Black)
	if want := []Pos{{3, 3}}; !reflect.DeepEqual(flips, want) {
		t.Fatalf("Flips(3, 2, Black) = %v, want %v", flips, want)
	}

	if !b.ApplyMove(3, 2) {
		t.Fatal("ApplyMove(3, 2) rejected")
	}
	for _, p := range []Pos{{3, 2}, {3, 3}} {
		if s, _ := b.Stone(p.Row, p.Col); s != Black {
			t.Errorf("%v = %s, want Black", p, s)
		}
	}
	if b.CountStones(Black) != 4 || b.CountStones(White) != 1 {
		t.Errorf("score = %d/%d, want 4/1", b.CountStones(Black), b.CountStones(White))
	}
	if b.CurrentPlayer() != White {
		t.Errorf("CurrentPlayer = %s, want White", b.CurrentPlayer())
	}
}

func TestFlipsVertical(t *testing.T) {
	b := NewBoard()
	if !b.ApplyMove(2, 3) {
		t.Fatal("ApplyMove(2, 3) rejected")
	}
	if s, _ := b.Stone(3, 3); s != Black {
		t.Errorf("(3,3) = %s, want Black", s)
	}
}

func TestFlipsSeveralDirections(t *testing.T) {
	b := mustParse(t, `
		........
		........
		...OX...
		..OO....
		..X.X...
		........
		........
		........`, Black)

	want := []Pos{{2, 3}, {3, 2}, {3, 3}}
	if got := b.Flips(2, 2, Black); !reflect.DeepEqual(got, want) {
		t.Fatalf("Flips(2, 2, Black) = %v, want %v", got, want)
	}
	if !b.ApplyMove(2, 2) {
		t.Fatal("ApplyMove(2, 2) rejected")
	}
	if n := b.CountStones(White); n != 0 {
		t.Errorf("white stones left = %d, want 0", n)
	}
}

func TestFlipsNoTerminator(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"runs off board", `
			.OOOOOOO
			........
			........
			........
			........
			........
			........
			.......X`},
		{"ends on empty", `
			.OO.X...
			........
			........
			........
			........
			........
			........
			........`},
		{"no opponent between", `
			.X......
			........
			........
			........
			........
			........
			........
			........`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, tt.text, Black)
			if got := b.Flips(0, 0, Black); len(got) != 0 {
				t.Errorf("Flips(0, 0, Black) = %v, want none", got)
			}
			if b.IsValidMove(0, 0) {
				t.Error("IsValidMove(0, 0) = true")
			}
		})
	}
}

func TestFlipsOnOccupiedCell(t *testing.T) {
	b := mustParse(t, `
		XOX.....
		........
		........
		........
		........
		........
		........
		........`, Black)

	if got, want := b.Flips(0, 2, Black), []Pos{{0, 1}}; !reflect.DeepEqual(got, want) {
		t.Errorf("Flips(0, 2, Black) = %v, want %v", got, want)
	}
	if b.IsValidMoveFor(0, 2, Black) {
		t.Error("occupied cell should not be a valid move")
	}
}

func TestIllegalMoveIsNoop(t *testing.T) {
	for _, p := range []Pos{{3, 3}, {3, 4}, {0, 0}, {2, 2}, {-1, 0}, {0, 8}} {
		b := NewBoard()
		before := b.Grid()
		if b.ApplyMove(p.Row, p.Col) {
			t.Errorf("ApplyMove(%d, %d) accepted", p.Row, p.Col)
		}
		if b.Grid() != before {
			t.Errorf("ApplyMove(%d, %d) changed the grid", p.Row, p.Col)
		}
		if b.CurrentPlayer() != Black {
			t.Errorf("ApplyMove(%d, %d) changed the player to %s", p.Row, p.Col, b.CurrentPlayer())
		}
		if b.CountStones(Black) != 2 || b.CountStones(White) != 2 {
			t.Errorf("ApplyMove(%d, %d) changed the score", p.Row, p.Col)
		}
	}
}

func TestTurnAlternates(t *testing.T) {
	b := NewBoard()
	moves := []struct {
		pos  Pos
		next Stone
	}{
		{Pos{3, 2}, White},
		{Pos{2, 2}, Black},
		{Pos{2, 3}, White},
	}
	for _, m := range moves {
		if !b.ApplyMove(m.pos.Row, m.pos.Col) {
			t.Fatalf("ApplyMove(%v) rejected", m.pos)
		}
		if b.CurrentPlayer() != m.next {
			t.Fatalf("after %v CurrentPlayer = %s, want %s", m.pos, b.CurrentPlayer(), m.next)
		}
	}
}

func TestTurnSkip(t *testing.T) {
	b := mustParse(t, `
		XO......
		........
		........
		........
		........
		........
		........
		......OX`, Black)

	if !b.ApplyMove(0, 2) {
		t.Fatal("ApplyMove(0, 2) rejected")
	}
	if b.HasValidMoves(White) {
		t.Fatal("White should have no moves")
	}
	if !b.HasValidMoves(Black) {
		t.Fatal("Black should still have a move")
	}
	if b.CurrentPlayer() != Black {
		t.Errorf("CurrentPlayer = %s, want Black (White skipped)", b.CurrentPlayer())
	}
	if b.IsGameOver() {
		t.Error("game should not be over")
	}
	if b.Winner() != Empty {
		t.Errorf("Winner = %s while playing, want Empty", b.Winner())
	}

	if !b.ApplyMove(7, 5) {
		t.Fatal("ApplyMove(7, 5) rejected")
	}
	if !b.IsGameOver() {
		t.Fatal("game should be over")
	}
	if b.Winner() != Black {
		t.Errorf("Winner = %s, want Black", b.Winner())
	}
}

func TestGameOverAfterWipeout(t *testing.T) {
	b := mustParse(t, `
		XO......
		........
		........
		........
		........
		........
		........
		........`, Black)

	if !b.ApplyMove(0, 2) {
		t.Fatal("ApplyMove(0, 2) rejected")
	}
	if !b.IsGameOver() {
		t.Fatal("game should be over")
	}
	if b.CurrentPlayer() != White {
		t.Errorf("CurrentPlayer = %s, want White", b.CurrentPlayer())
	}
	if b.Winner() != Black {
		t.Errorf("Winner = %s, want Black", b.Winner())
	}
	if b.ApplyMove(0, 3) {
		t.Error("no move should be accepted once the game is over")
	}
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Stone
	}{
		{"tie", `
			X.......
			........
			........
			........
			........
			........
			........
			.......O`, Empty},
		{"white", `
			O.......
			........
			........
			........
			........
			........
			........
			X.....OO`, White},
		{"black", `
			XXXXXXXX
			XXXXXXXX
			XXXXXXXX
			XXXXXXXX
			OOOOOOOO
			OOOOOOOO
			OOOOOOOO
			OOOOOOOX`, Black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, tt.text, Black)
			if !b.IsGameOver() {
				t.Fatal("game should be over")
			}
			if got := b.Winner(); got != tt.want {
				t.Errorf("Winner = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNoWinnerWhilePlaying(t *testing.T) {
	b := NewBoard()
	if b.IsGameOver() {
		t.Fatal("new game should not be over")
	}
	if b.Winner() != Empty {
		t.Errorf("Winner = %s, want Empty", b.Winner())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard()
	c := b.Clone()

	b.ApplyMove(3, 2)

	if s, _ := c.Stone(3, 3); s != White {
		t.Errorf("clone (3,3) = %s, want White", s)
	}
	if s, _ := c.Stone(3, 2); s != Empty {
		t.Errorf("clone (3,2) = %s, want Empty", s)
	}
	if c.CurrentPlayer() != Black {
		t.Errorf("clone CurrentPlayer = %s, want Black", c.CurrentPlayer())
	}

	c.ApplyMove(5, 4)
	if s, _ := b.Stone(5, 4); s != Empty {
		t.Errorf("original (5,4) = %s after moving on the clone", s)
	}
}

// Plays random games and checks the invariants after every move.
func TestRandomGamesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 50; game++ {
		b := NewBoard()
		for plies := 0; !b.IsGameOver(); plies++ {
			if plies > 60 {
				t.Fatalf("game %d did not end after 60 plies", game)
			}
			moves := b.ValidMoves(b.CurrentPlayer())
			if len(moves) == 0 {
				t.Fatalf("game %d: %s to move without a legal move\n%s", game, b.CurrentPlayer(), b)
			}
			m := moves[rng.Intn(len(moves))]
			if !b.ApplyMove(m.Row, m.Col) {
				t.Fatalf("game %d: ApplyMove(%v) rejected", game, m)
			}
			if total := b.CountStones(Black) + b.CountStones(White) + b.CountStones(Empty); total != Size*Size {
				t.Fatalf("game %d: stone total %d", game, total)
			}
			over := !b.HasValidMoves(Black) && !b.HasValidMoves(White)
			if b.IsGameOver() != over {
				t.Fatalf("game %d: IsGameOver disagrees with HasValidMoves", game)
			}
			if !over && b.Winner() != Empty {
				t.Fatalf("game %d: winner decided while playing", game)
			}
		}
	}
}

func TestParseBoardErrors(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		toMove Stone
	}{
		{"too few rows", "........\n........", Black},
		{"short row", strings.Repeat("........\n", 7) + ".......", Black},
		{"bad cell", strings.Repeat("........\n", 7) + "......?.", Black},
		{"empty to move", strings.Repeat("........\n", 8), Empty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBoard(tt.text, tt.toMove); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBoardString(t *testing.T) {
	lines := strings.Split(NewBoard().String(), "\n")
	if lines[0] != "  a b c d e f g h" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[4] != "4 . . . ○ ● . . . " {
		t.Errorf("row 4 = %q", lines[4])
	}
}
