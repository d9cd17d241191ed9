package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termothello/config"
	"termothello/othello"
)

// ColorConfigUI provides a color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	// Current selection
	selectedBoardColor int
	selectedAltColor   int
	editingAlt         bool // true = editing the alternate square color
}

type paletteEntry struct {
	code int
	name string
}

// Felt tones for the main squares
var boardColors = []paletteEntry{
	{28, "Green"},
	{22, "Dark Green"},
	{34, "Bright Green"},
	{29, "Sea Green"},
	{23, "Teal"},
	{30, "Dark Cyan"},
	{65, "Moss"},
	{64, "Olive"},
	{58, "Dark Olive"},
	{94, "Saddle Brown"},
	{130, "Rust"},
	{24, "Dark Blue"},
	{60, "Slate"},
	{238, "Charcoal"},
	{244, "Gray"},
}

// Shades for the alternate squares, usually a step darker than the board
var altColors = []paletteEntry{
	{22, "Dark Green"},
	{28, "Green"},
	{23, "Teal"},
	{29, "Sea Green"},
	{58, "Dark Olive"},
	{64, "Olive"},
	{17, "Navy Blue"},
	{52, "Dark Maroon"},
	{94, "Saddle Brown"},
	{236, "Dark Gray"},
	{240, "Gray"},
	{16, "True Black"},
}

// Sample stones for the preview, keyed by {col, row}.
var previewStones = map[[2]int]othello.Stone{
	{2, 2}: othello.White,
	{3, 3}: othello.White,
	{2, 3}: othello.Black,
	{3, 2}: othello.Black,
	{1, 3}: othello.Black,
	{4, 2}: othello.White,
}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:                cfg,
		onDone:             onDone,
		selectedBoardColor: cfg.Theme.Colors.BoardColor,
		selectedAltColor:   cfg.Theme.Colors.BoardColorAlt,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)
	cc.colorList.SetSelectedTextColor(MenuColors.Selected)

	cc.populateColorList()

	// Highlight previews the color
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		entries := cc.entries()
		if index < 0 || index >= len(entries) {
			return
		}
		if cc.editingAlt {
			cc.selectedAltColor = entries[index].code
		} else {
			cc.selectedBoardColor = entries[index].code
		}
	})

	// Enter applies and saves
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index < 0 || index >= len(cc.entries()) {
			return
		}
		cc.apply()
		if err := cc.cfg.Save(); err != nil {
			cc.colorList.SetTitle(fmt.Sprintf(" Save failed: %s ", err))
			return
		}
		if cc.editingAlt {
			// Switch back to board color selection
			cc.editingAlt = false
			cc.populateColorList()
			return
		}
		onDone()
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	// Layout: list on left, preview on right
	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 30, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

func (cc *ColorConfigUI) entries() []paletteEntry {
	if cc.editingAlt {
		return altColors
	}
	return boardColors
}

// apply copies the highlighted colors into the config.
func (cc *ColorConfigUI) apply() {
	cc.cfg.Theme.Colors.BoardColor = cc.selectedBoardColor
	cc.cfg.Theme.Colors.BoardColorAlt = cc.selectedAltColor
}

// populateColorList fills the list with appropriate colors based on editing mode.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	current := cc.selectedBoardColor
	if cc.editingAlt {
		cc.colorList.SetTitle(" Alternate Squares (Tab: switch) ")
		current = cc.selectedAltColor
	} else {
		cc.colorList.SetTitle(" Board Color (Tab: switch) ")
	}

	entries := cc.entries()
	for i, c := range entries {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range entries {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	const size = 6
	startX := x + 2
	startY := y + 1

	if width < 20 || height < size+4 {
		return x, y, width, height
	}

	theme := cc.cfg.Theme
	board := tcell.PaletteColor(cc.selectedBoardColor)
	alt := tcell.PaletteColor(cc.selectedAltColor)

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			bg := board
			if (col%2 + row%2) == 1 {
				bg = alt
			}
			style := tcell.StyleDefault.Background(bg).Foreground(tcell.PaletteColor(theme.Colors.LineColor))
			r := theme.Symbols.BoardSquare

			switch previewStones[[2]int{col, row}] {
			case othello.Black:
				r = theme.Symbols.BlackStone
				style = style.Foreground(tcell.PaletteColor(theme.Colors.BlackColor))
			case othello.White:
				r = theme.Symbols.WhiteStone
				style = style.Foreground(tcell.PaletteColor(theme.Colors.WhiteColor))
			}
			drawStoneCell(screen, style, r, col, row, startX, startY)
		}
	}

	info := fmt.Sprintf("Board: %d  Alt: %d", cc.selectedBoardColor, cc.selectedAltColor)
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+size+1, ch, nil, tcell.StyleDefault)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between board and alternate square editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingAlt = !cc.editingAlt
	cc.populateColorList()
}
