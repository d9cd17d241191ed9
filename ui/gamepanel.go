package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"termothello/othello"
	"termothello/types"
)

// GameInfoPanel displays the score and move history alongside the board.
type GameInfoPanel struct {
	box         *tview.TextView
	boardState  *types.BoardState
	playerColor othello.Stone
	moveHistory *[]types.MoveEntry
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetBoardState updates the panel with current board state.
func (p *GameInfoPanel) SetBoardState(state *types.BoardState) {
	p.boardState = state
	p.refresh()
}

// SetPlayerColor marks which side the human plays.
func (p *GameInfoPanel) SetPlayerColor(color othello.Stone) {
	p.playerColor = color
	p.refresh()
}

// SetMoveHistory sets a pointer to the move history slice.
func (p *GameInfoPanel) SetMoveHistory(history *[]types.MoveEntry) {
	p.moveHistory = history
}

func (p *GameInfoPanel) who(color othello.Stone) string {
	if p.playerColor == othello.Empty {
		return ""
	}
	if color == p.playerColor {
		return "You"
	}
	return "AI"
}

func stoneTag(color othello.Stone) string {
	if color == othello.White {
		return "[white]○[-]"
	}
	return "[dimgray]●[-]"
}

// refresh updates the panel text.
func (p *GameInfoPanel) refresh() {
	p.box.SetText(p.text())
}

func (p *GameInfoPanel) text() string {
	if p.boardState == nil || p.boardState.Width() == 0 {
		return ""
	}

	var text string

	text += "[white::b]Score[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	text += fmt.Sprintf("%s Black %-3s %2d\n", stoneTag(othello.Black), p.who(othello.Black), p.boardState.BlackCount)
	text += fmt.Sprintf("%s White %-3s %2d\n", stoneTag(othello.White), p.who(othello.White), p.boardState.WhiteCount)
	text += "\n"
	text += fmt.Sprintf("[white]Move:[-:-:-] %d\n", p.boardState.MoveNumber)
	if p.boardState.Finished() {
		text += fmt.Sprintf("[white]Result:[-:-:-] %s\n", p.boardState.Outcome)
	} else {
		text += fmt.Sprintf("[white]To move:[-:-:-] %s\n", p.boardState.PlayerToMove)
	}

	if p.moveHistory != nil && len(*p.moveHistory) > 0 {
		text += "\n[white::b]Moves[-:-:-]\n"
		text += "[dimgray]──────────────────────[-:-:-]\n"

		moves := *p.moveHistory
		// Show last N moves that fit
		maxVisible := 12
		start := 0
		if len(moves) > maxVisible {
			start = len(moves) - maxVisible
		}

		for i := start; i < len(moves); i++ {
			m := moves[i]

			marker := " "
			if i == len(moves)-1 {
				marker = "[white]>[-]"
			}

			text += fmt.Sprintf("%s[dimgray]%3d.[-] %s %s [dimgray]+%d[-]\n", marker, i+1, stoneTag(m.Color), m.Notation(), m.Flips)
		}

		if start > 0 {
			text += fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", start)
		}
	}

	return text
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *BoardUI, hint *tview.TextView) *tview.Flex {
	mainFlex := tview.NewFlex()
	RebuildNormalLayout(mainFlex, board, hint)
	return mainFlex
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form *tview.Flex, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)        // Left spacer
	centered.AddItem(form, maxWidth, 0, true) // Form with max width
	centered.AddItem(nil, 0, 1, false)        // Right spacer

	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *BoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewGameInfoPanel()

	// Store panel reference in board for updates
	board.infoPanel = infoPanel
	infoPanel.SetMoveHistory(&board.moveHistory)
	if board.eng != nil {
		infoPanel.SetPlayerColor(board.eng.GetPlayerColor())
	}
	if board.BoardState != nil {
		infoPanel.SetBoardState(board.BoardState)
	}

	// Horizontal flex: board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)         // Board (flexible, takes remaining space)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false) // Info panel (fixed width)

	// Vertical flex: board area on top, status bar at bottom
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 6, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *BoardUI) {
	gameFrame.Clear()

	boardWidth := othello.Size*2 + boardLeft
	boardHeight := othello.Size + 1 // + coordinates

	// Center board with flex spacers
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false) // top spacer

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)               // left spacer
	centerRow.AddItem(board.Box, boardWidth, 0, true) // board (fixed width)
	centerRow.AddItem(nil, 0, 1, false)               // right spacer

	gameFrame.AddItem(centerRow, boardHeight, 0, true) // center row (fixed height)
	gameFrame.AddItem(nil, 0, 1, false)                // bottom spacer
}
