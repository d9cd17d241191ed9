// Package ui specifies custom controls for tview to play Othello in the terminal.
package ui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termothello/config"
	"termothello/engine"
	"termothello/othello"
	"termothello/types"
)

// Columns left of the board reserved for row numbers.
const boardLeft = 3

// Indices into BoardUI.styles.
const (
	styleBoard = iota
	styleBoardAlt
	styleBlack
	styleWhite
	styleLine
	styleHint
	styleCursorFG
	styleCursorBG
	styleLastPlayed
	styleFlipped
)

type BoardUI struct {
	Box         *tview.Box
	BoardState  *types.BoardState
	hint        *tview.TextView
	cfg         *config.Config
	finished    bool
	selX        int
	selY        int
	skipped     othello.Stone // side whose turn was skipped by the last move
	app         *tview.Application
	eng         engine.GameEngine
	styles      []tcell.Color
	infoPanel   *GameInfoPanel
	focusMode   bool
	moveHistory []types.MoveEntry // copy of the engine's history

	// Engine notifications waiting to run on the UI goroutine, in order.
	pendingMu sync.Mutex
	pending   []func()
	wake      chan struct{}
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *BoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *BoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *BoardUI) IsFocusMode() bool {
	return g.focusMode
}

func (g *BoardUI) SelectedTile() *types.BoardPos {
	if g.selX == -1 && g.selY == -1 {
		return nil
	}
	return &types.BoardPos{X: g.selX, Y: g.selY}
}

func (g *BoardUI) MoveSelection(h, v int) {
	if g.BoardState.Finished() {
		g.ResetSelection()
		return
	}
	if g.SelectedTile() == nil {
		g.selX = g.BoardState.LastMove.X
		g.selY = g.BoardState.LastMove.Y
		if g.SelectedTile() == nil {
			// No move made yet, start on the first legal move or the center
			g.selX, g.selY = othello.Size/2-1, othello.Size/2-1
			if len(g.BoardState.ValidMoves) > 0 {
				g.selX, g.selY = g.BoardState.ValidMoves[0].X, g.BoardState.ValidMoves[0].Y
			}
		}
		return
	}
	if g.selX+h < 0 || g.selX+h >= g.BoardState.Width() {
		return
	}
	if g.selY+v < 0 || g.selY+v >= g.BoardState.Height() {
		return
	}
	g.selX += h
	g.selY += v
}

func (g *BoardUI) ResetSelection() {
	g.selX = -1
	g.selY = -1
}

func NewBoard(app *tview.Application, c *config.Config, hint *tview.TextView) *BoardUI {
	board := &BoardUI{
		Box:        tview.NewBox(),
		BoardState: &types.BoardState{},
		hint:       hint,
		app:        app,
		selX:       -1,
		selY:       -1,
		wake:       make(chan struct{}, 1),
	}
	if app != nil {
		go board.forwardUpdates()
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(board.draw)
	board.Box.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action != tview.MouseLeftClick {
			return action, event
		}
		if x, y, ok := board.CellAt(event.Position()); ok {
			board.selX, board.selY = x, y
			board.PlayMove(x, y)
		}
		return action, event
	})
	return board
}

func (g *BoardUI) draw(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
	if g.BoardState == nil || g.BoardState.Width() == 0 {
		return x, y, 1, 1
	}
	// 2 characters per cell for square appearance
	boardW, boardH := g.BoardState.Width()*2, g.BoardState.Height()
	theme := g.cfg.Theme
	showHints := theme.ShowValidMoves && g.humanToMove()

	for boardY := 0; boardY < g.BoardState.Height(); boardY++ {
		for boardX := 0; boardX < g.BoardState.Width(); boardX++ {
			stone := g.BoardState.Board[boardY][boardX]

			bg := g.styles[styleBoard]
			if (boardX%2 + boardY%2) == 1 {
				bg = g.styles[styleBoardAlt]
			}
			fg := g.styles[styleLine]
			drawRune := theme.Symbols.BoardSquare

			switch stone {
			case othello.Black:
				drawRune = theme.Symbols.BlackStone
				fg = g.styles[styleBlack]
			case othello.White:
				drawRune = theme.Symbols.WhiteStone
				fg = g.styles[styleWhite]
			default:
				if showHints && g.BoardState.IsValidMove(boardX, boardY) {
					drawRune = theme.Symbols.ValidMove
					fg = g.styles[styleHint]
				}
			}

			if boardX == g.selX && boardY == g.selY {
				if theme.DrawCursorBackground {
					bg = g.styles[styleCursorBG]
				} else if stone == othello.Empty {
					drawRune = theme.Symbols.Cursor
					fg = g.styles[styleCursorFG]
				}
			} else if boardX == g.BoardState.LastMove.X && boardY == g.BoardState.LastMove.Y {
				if theme.DrawLastPlayedBackground {
					bg = g.styles[styleLastPlayed]
				}
			} else if theme.DrawFlippedBackground && g.BoardState.WasFlipped(boardX, boardY) {
				bg = g.styles[styleFlipped]
			}

			drawStoneCell(screen, tcell.StyleDefault.Background(bg).Foreground(fg), drawRune, boardX, boardY, x+boardLeft, y)
		}
	}
	drawCoordinates(screen, x, y, g)
	// Add offset for coordinate display
	return x, y, boardW + boardLeft, boardH + 1
}

// CellAt maps a screen position to board coordinates.
func (g *BoardUI) CellAt(screenX, screenY int) (x, y int, ok bool) {
	if g.BoardState == nil || g.BoardState.Width() == 0 {
		return 0, 0, false
	}
	left, top, _, _ := g.Box.GetRect()
	dx := screenX - left - boardLeft
	dy := screenY - top
	if dx < 0 || dy < 0 {
		return 0, 0, false
	}
	x, y = dx/2, dy
	if x >= g.BoardState.Width() || y >= g.BoardState.Height() {
		return 0, 0, false
	}
	return x, y, true
}

// ConnectEngine connects the board to a game engine.
func (g *BoardUI) ConnectEngine(e engine.GameEngine) error {
	g.finished = false
	g.skipped = othello.Empty
	g.moveHistory = nil
	g.eng = e
	g.ResetSelection()

	e.OnMove(func(x, y int, color othello.Stone, boardState *types.BoardState) {
		g.update(func() {
			if g.eng != e {
				return
			}
			g.moveHistory = e.History()
			g.skipped = othello.Empty
			if !boardState.Finished() && boardState.PlayerToMove == color {
				g.skipped = color.Opposite()
			}
			g.BoardState = boardState
			g.refreshHint()
		})
	})

	e.OnGameEnd(func(outcome string) {
		g.update(func() {
			if g.eng != e {
				return
			}
			g.finished = true
			g.moveHistory = e.History()
			g.BoardState = e.GetBoardState()
			g.ResetSelection()
			g.refreshHint()
		})
	})

	if err := e.Connect(); err != nil {
		return err
	}

	if g.infoPanel != nil {
		g.infoPanel.SetPlayerColor(e.GetPlayerColor())
	}
	g.moveHistory = e.History()
	g.BoardState = e.GetBoardState()
	g.refreshHint()
	return nil
}

// update applies an engine notification on the UI goroutine. Notifications
// run in the order they were sent. It never blocks, so it is safe to call
// from the UI goroutine itself.
func (g *BoardUI) update(f func()) {
	if g.app == nil {
		f()
		return
	}
	g.pendingMu.Lock()
	g.pending = append(g.pending, f)
	g.pendingMu.Unlock()
	select {
	case g.wake <- struct{}{}:
	default:
	}
}

// forwardUpdates hands queued notifications to the application one at a time.
func (g *BoardUI) forwardUpdates() {
	for range g.wake {
		g.pendingMu.Lock()
		batch := g.pending
		g.pending = nil
		g.pendingMu.Unlock()
		for _, f := range batch {
			g.app.QueueUpdateDraw(f)
		}
	}
}

// PlayMove plays a move at the given coordinates. Illegal moves are ignored.
func (g *BoardUI) PlayMove(x, y int) {
	if g.finished {
		return
	}
	if g.eng == nil {
		return
	}
	if !g.eng.IsMyTurn() {
		return
	}
	if err := g.eng.PlayMove(x, y); err != nil {
		return
	}
}

// PlayNotation plays a move typed in algebraic notation such as "d3".
// The cursor follows the typed square.
func (g *BoardUI) PlayNotation(s string) error {
	pos, err := othello.ParsePos(s)
	if err != nil {
		return err
	}
	g.selX, g.selY = pos.Col, pos.Row
	g.PlayMove(pos.Col, pos.Row)
	return nil
}

// Close disconnects the engine.
func (g *BoardUI) Close() {
	if g.eng == nil {
		return
	}
	g.eng.Close()
}

func (g *BoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),        // styleBoard
		tcell.PaletteColor(c.Theme.Colors.BoardColorAlt),     // styleBoardAlt
		tcell.PaletteColor(c.Theme.Colors.BlackColor),        // styleBlack
		tcell.PaletteColor(c.Theme.Colors.WhiteColor),        // styleWhite
		tcell.PaletteColor(c.Theme.Colors.LineColor),         // styleLine
		tcell.PaletteColor(c.Theme.Colors.HintColor),         // styleHint
		tcell.PaletteColor(c.Theme.Colors.CursorColorFG),     // styleCursorFG
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG),     // styleCursorBG
		tcell.PaletteColor(c.Theme.Colors.LastPlayedColorBG), // styleLastPlayed
		tcell.PaletteColor(c.Theme.Colors.FlippedColorBG),    // styleFlipped
	}
	g.cfg = c
}

// IsFinished returns true if the game is over.
func (g *BoardUI) IsFinished() bool {
	return g.finished
}

func (g *BoardUI) humanToMove() bool {
	return g.eng != nil && !g.finished && g.BoardState.PlayerToMove == g.eng.GetPlayerColor()
}

func (g *BoardUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetBoardState(g.BoardState)
	}
	if g.hint != nil {
		g.hint.SetText(g.hintText())
	}
}

func (g *BoardUI) hintText() string {
	// Focus mode shows minimal hint
	if g.focusMode {
		return "  f to toggle"
	}

	var statusLine, turnLine, controlsLine string

	if g.finished {
		statusLine = "───────── Game Complete ─────────\n"
		turnLine = fmt.Sprintf("  Result: %s\n", g.BoardState.Outcome)
		controlsLine = "\n  q · return to menu"
		return statusLine + turnLine + controlsLine
	}

	if g.skipped != othello.Empty {
		statusLine = fmt.Sprintf("  %c %s has no moves, %s plays again\n",
			g.skipped.Rune(), g.skipped, g.skipped.Opposite())
	}

	if g.humanToMove() {
		color := g.eng.GetPlayerColor()
		turnLine = fmt.Sprintf("  %c Your move (%s)\n", color.Rune(), color)
	} else {
		turnLine = "  ◌ Thinking...\n"
	}

	controlsLine = "\n  hjkl/↑↓←→ move · ⏎/click play · : type · f focus · q quit"

	return statusLine + turnLine + controlsLine
}

// drawStoneCell draws a cell (2 characters wide)
func drawStoneCell(s tcell.Screen, c tcell.Style, r rune, x, y, l, t int) {
	s.SetContent(l+x*2, t+y, r, nil, c)
	s.SetContent(l+x*2+1, t+y, ' ', nil, c)
}

func drawCoordinates(s tcell.Screen, x, y int, ui *BoardUI) {
	hCoord := int('a')
	w, h := ui.BoardState.Width(), ui.BoardState.Height()
	if ui.cfg.Theme.FullWidthLetters {
		hCoord = int('ａ')
	}

	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(ui.styles[styleCursorBG])
	lpHighlight := tcell.StyleDefault.Background(ui.styles[styleLastPlayed])

	for ix := 0; ix < w; ix++ {
		_style := style
		if ix == ui.selX {
			_style = highlight
		} else if ix == ui.BoardState.LastMove.X {
			_style = lpHighlight
		}
		s.SetContent(x+boardLeft+(ix*2), y+h, rune(hCoord+ix), nil, _style)
		s.SetContent(x+boardLeft+(ix*2)+1, y+h, ' ', nil, _style)
	}

	// Othello rows count from the top
	for iy := 0; iy < h; iy++ {
		_style := style
		if iy == ui.selY {
			_style = highlight
		} else if iy == ui.BoardState.LastMove.Y {
			_style = lpHighlight
		}
		s.SetContent(x+1, y+iy, rune('1'+iy), nil, _style)
	}
}
