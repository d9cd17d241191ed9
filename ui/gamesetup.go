package ui

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termothello/config"
	"termothello/engine"
	"termothello/othello"
)

// Computer pace choices on the setup form.
var paces = []struct {
	label string
	delay time.Duration
}{
	{"Instant", 0},
	{"Quick (250ms)", 250 * time.Millisecond},
	{"Normal (500ms)", 500 * time.Millisecond},
	{"Slow (1s)", time.Second},
}

// paceIndex returns the pace matching delayMs, or Normal if none does.
func paceIndex(delayMs int) int {
	for i, p := range paces {
		if p.delay == time.Duration(delayMs)*time.Millisecond {
			return i
		}
	}
	return 2
}

const rulesText = `[white::b]How to Play[-:-:-]

[white]Goal[-]
Own more stones than the computer
when the game ends.

[white]Moves[-]
Place a stone so that one or more
of the opponent's stones lie in a
straight line between it and one of
yours: across, down or diagonal.
Every such line is flipped to your
color. A move must flip at least one
stone. Legal squares are marked
when hints are on.

[white]No move?[-]
Your turn is skipped and the other
side plays again. The game ends
when neither side can move.

[white]Winning[-]
Most stones wins. Equal counts are
a draw.`

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form     *tview.Form
	rules    *tview.TextView
	flex     *tview.Flex
	cfg      *config.Config
	onStart  func(engine.GameConfig)
	onCancel func()
	onColors func()

	playerColor othello.Stone
	pace        int
}

// NewGameSetup creates a new game setup form preset from the config defaults.
// The legal move checkbox writes through to cfg.Theme.ShowValidMoves.
func NewGameSetup(cfg *config.Config, onStart func(engine.GameConfig), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		cfg:         cfg,
		onStart:     onStart,
		onCancel:    onCancel,
		onColors:    onColors,
		playerColor: othello.White,
		pace:        paceIndex(cfg.Game.AIDelayMs),
	}
	if c, ok := config.ParseColor(cfg.Game.PlayerColor); ok {
		setup.playerColor = c
	}

	colors := []string{"White (computer opens)", "Black (you open)"}
	colorIndex := 0
	if setup.playerColor == othello.Black {
		colorIndex = 1
	}
	paceLabels := make([]string, len(paces))
	for i, p := range paces {
		paceLabels[i] = p.label
	}

	form := tview.NewForm()

	form.AddDropDown("Your Color", colors, colorIndex, func(option string, index int) {
		setup.playerColor = othello.White
		if index == 1 {
			setup.playerColor = othello.Black
		}
	})

	form.AddDropDown("Computer Pace", paceLabels, setup.pace, func(option string, index int) {
		setup.pace = index
	})

	form.AddCheckbox("Show Legal Moves", cfg.Theme.ShowValidMoves, func(checked bool) {
		cfg.Theme.ShowValidMoves = checked
	})

	form.AddButton("Start Game", func() {
		onStart(setup.GameConfig())
	})

	form.AddButton("Board Color", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetBorderColor(MenuColors.Border)
	form.SetTitleColor(MenuColors.Title)
	form.SetLabelColor(MenuColors.Label)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	rules := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetText(rulesText)
	rules.SetBorder(true)
	rules.SetBorderColor(MenuColors.Border)
	rules.SetBorderPadding(0, 0, 1, 1)
	rules.SetTextColor(MenuColors.Label)

	body := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(form, 0, 1, true).
		AddItem(rules, 40, 0, false)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.rules = rules
	setup.flex = flex
	return setup
}

// GameConfig returns the engine settings currently selected on the form.
func (s *GameSetupUI) GameConfig() engine.GameConfig {
	return engine.GameConfig{
		PlayerColor: s.playerColor,
		AIDelay:     paces[s.pace].delay,
		Seed:        s.cfg.Game.Seed,
	}
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
