// termothello is a terminal application to play Othello against the computer.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termothello/config"
	"termothello/engine"
	"termothello/engine/local"
	"termothello/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagColor      = flag.String("color", "", "Player color (black or white)")
	flagDelay      = flag.Int("delay", -1, "Computer move delay in milliseconds")
	flagSeed       = flag.Int64("seed", 0, "Seed for the computer's random tie-breaks (0 = random)")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (fullscreen board)")
	flagNoHints    = flag.Bool("nohints", false, "Do not mark legal moves on the board")
	flagDebugLog   = flag.String("debuglog", "", "Write engine debug output to this file")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.BoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var moveInput *tview.InputField
var cfg *config.Config

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("termothello %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *flagDebugLog != "" {
		f, err := os.OpenFile(*flagDebugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open debug log: %s\n", err)
			os.Exit(1)
		}
		defer f.Close()
		local.SetDebugLog(f)
	}

	if *flagNoHints {
		cfg.Theme.ShowValidMoves = false
	}

	quickStart := *flagQuickStart || *flagColor != "" || *flagDelay >= 0 || *flagSeed != 0 || *flagFocus

	app = tview.NewApplication()
	app.EnableMouse(true)
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ● termothello ○ ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewBoard(app, cfg, gameHint)

	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	// Typed move entry, opened with ':' on the board
	moveInput = tview.NewInputField().
		SetLabel("Move: ").
		SetFieldWidth(4).
		SetAcceptanceFunc(tview.InputFieldMaxLength(2))
	moveInput.SetBorder(true).SetTitle(" e.g. d3 ")
	moveInput.SetDoneFunc(func(key tcell.Key) {
		text := moveInput.GetText()
		moveInput.SetText("")
		rootPage.HidePage("move")
		app.SetFocus(gameBoard.Box)
		if key != tcell.KeyEnter {
			return
		}
		if err := gameBoard.PlayNotation(text); err != nil {
			gameHint.SetText(fmt.Sprintf("  %s", err))
		}
	})
	movePrompt := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(moveInput, 3, 0, true).
		AddItem(nil, 0, 1, false)

	// Game board input handling
	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			if gameBoard.SelectedTile() != nil && !gameBoard.IsFinished() {
				gameBoard.ResetSelection()
			} else {
				gameBoard.Close()
				rootPage.SwitchToPage("setup")
			}
			return nil
		}
		switch event.Key() {
		case tcell.KeyUp:
			gameBoard.MoveSelection(0, -1)
		case tcell.KeyDown:
			gameBoard.MoveSelection(0, 1)
		case tcell.KeyLeft:
			gameBoard.MoveSelection(-1, 0)
		case tcell.KeyRight:
			gameBoard.MoveSelection(1, 0)
		case tcell.KeyEnter:
			selTile := gameBoard.SelectedTile()
			if selTile == nil {
				return nil
			}
			gameBoard.PlayMove(selTile.X, selTile.Y)
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				gameBoard.MoveSelection(-1, 0)
			case 'j':
				gameBoard.MoveSelection(0, 1)
			case 'k':
				gameBoard.MoveSelection(0, -1)
			case 'l':
				gameBoard.MoveSelection(1, 0)
			case ':':
				if !gameBoard.IsFinished() {
					rootPage.ShowPage("move")
					app.SetFocus(moveInput)
				}
				return nil
			case 'f':
				if gameBoard.ToggleFocusMode() {
					ui.BuildFocusLayout(gameFrame, gameBoard)
				} else {
					ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
				}
			}
		}
		return event
	})

	// Game setup screen
	setupUI := ui.NewGameSetup(cfg,
		func(gameCfg engine.GameConfig) {
			startGame(gameCfg)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
	)

	// Color configuration screen
	colorConfig := ui.NewColorConfig(cfg, func() {
		// Refresh the game board with new colors
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	// Start on setup by default, or gameview if quick start
	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 90), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)
	rootPage.AddPage("move", ui.CreateCenteredForm(movePrompt, 20), true, false)

	if quickStart {
		startGame(buildGameConfigFromFlags())
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		gameBoard.Close()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	gameBoard.Close()
}

// startGame starts a new game with a fresh engine.
func startGame(gameCfg engine.GameConfig) {
	gameBoard.Close()
	gameBoard.SetConfig(cfg)

	eng := local.New(gameCfg)
	if err := gameBoard.ConnectEngine(eng); err != nil {
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.HidePage("error")
			})
		rootPage.AddPage("error", modal, true, true)
		return
	}
	rootPage.SwitchToPage("gameview")
	app.SetFocus(gameBoard.Box)
}

// buildGameConfigFromFlags creates a GameConfig from the config defaults
// overridden by command-line flags.
func buildGameConfigFromFlags() engine.GameConfig {
	gameCfg := engine.GameConfig{
		PlayerColor: engine.DefaultConfig().PlayerColor,
		AIDelay:     time.Duration(cfg.Game.AIDelayMs) * time.Millisecond,
		Seed:        cfg.Game.Seed,
	}
	if c, ok := config.ParseColor(cfg.Game.PlayerColor); ok {
		gameCfg.PlayerColor = c
	}

	if c, ok := config.ParseColor(*flagColor); ok {
		gameCfg.PlayerColor = c
	}
	if *flagDelay >= 0 {
		gameCfg.AIDelay = time.Duration(*flagDelay) * time.Millisecond
	}
	if *flagSeed != 0 {
		gameCfg.Seed = *flagSeed
	}

	return gameCfg
}
