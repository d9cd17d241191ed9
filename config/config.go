// Package config loads and saves user preferences under the XDG config directory.
package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"termothello/othello"
)

var (
	cfgFile = "termothello/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor        int `json:"board"`
	BoardColorAlt     int `json:"board_alt"`
	BlackColor        int `json:"black"`
	WhiteColor        int `json:"white"`
	LineColor         int `json:"line"`
	HintColor         int `json:"hint"`
	CursorColorFG     int `json:"cursor_fg"`
	CursorColorBG     int `json:"cursor_bg"`
	LastPlayedColorBG int `json:"last_played_bg"`
	FlippedColorBG    int `json:"flipped_bg"`
}

type ConfigSymbols struct {
	BlackStone  rune `json:"black"`
	WhiteStone  rune `json:"white"`
	BoardSquare rune `json:"board"`
	ValidMove   rune `json:"valid_move"`
	Cursor      rune `json:"cursor"`
}

type Theme struct {
	DrawCursorBackground     bool          `json:"draw_cursor_bg"`
	DrawLastPlayedBackground bool          `json:"draw_last_played_bg"`
	DrawFlippedBackground    bool          `json:"draw_flipped_bg"`
	ShowValidMoves           bool          `json:"show_valid_moves"`
	FullWidthLetters         bool          `json:"fullwidth_letters"`
	Colors                   ConfigColors  `json:"colors"`
	Symbols                  ConfigSymbols `json:"symbols"`
}

// GameDefaults holds the settings preselected on the setup screen.
type GameDefaults struct {
	PlayerColor string `json:"player_color"` // "black" or "white"
	AIDelayMs   int    `json:"ai_delay_ms"`
	Seed        int64  `json:"seed"` // 0 = random
}

type Config struct {
	Theme Theme        `json:"theme"`
	Game  GameDefaults `json:"game"`
}

func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.BlackStone, c.Theme.Symbols.WhiteStone, c.Theme.Symbols.BoardSquare, c.Theme.Symbols.ValidMove, c.Theme.Symbols.Cursor} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	colors := c.Theme.Colors
	for _, code := range []int{colors.BoardColor, colors.BoardColorAlt, colors.BlackColor, colors.WhiteColor, colors.LineColor,
		colors.HintColor, colors.CursorColorFG, colors.CursorColorBG, colors.LastPlayedColorBG, colors.FlippedColorBG} {
		if code < 0 || code > 255 {
			return &InvalidConfig{fmt.Sprintf("color %d is outside the 256-color palette", code)}
		}
	}
	if _, ok := ParseColor(c.Game.PlayerColor); !ok {
		return &InvalidConfig{fmt.Sprintf("player_color must be \"black\" or \"white\", got %q", c.Game.PlayerColor)}
	}
	if c.Game.AIDelayMs < 0 {
		return &InvalidConfig{"ai_delay_ms must not be negative"}
	}
	return nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("locate config file: %w", err)
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(filePath, jsonData, perm); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func readCfgFile(filePath string, a interface{}) error {
	configReader, err := os.ReadFile(filePath)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(configReader, a); err != nil {
		return fmt.Errorf("parse %s: %w", filePath, err)
	}
	return nil
}

// ParseColor converts "black"/"b" or "white"/"w" to a stone color.
func ParseColor(s string) (othello.Stone, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black", "b":
		return othello.Black, true
	case "white", "w":
		return othello.White, true
	}
	return othello.Empty, false
}
