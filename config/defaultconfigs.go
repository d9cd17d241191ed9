package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawCursorBackground:     true,
		DrawLastPlayedBackground: true,
		DrawFlippedBackground:    true,
		ShowValidMoves:           true,
		FullWidthLetters:         false,
		Colors: ConfigColors{
			BoardColor:        28,
			BoardColorAlt:     22,
			BlackColor:        232,
			WhiteColor:        255,
			LineColor:         22,
			HintColor:         120,
			CursorColorFG:     2,
			CursorColorBG:     4,
			LastPlayedColorBG: 3,
			FlippedColorBG:    65,
		},
		Symbols: ConfigSymbols{
			BlackStone:  '●',
			WhiteStone:  '●',
			BoardSquare: '·',
			ValidMove:   '∘',
			Cursor:      '+',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameDefaults{
			PlayerColor: "white",
			AIDelayMs:   500,
		},
	}
}
