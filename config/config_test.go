package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"

	"termothello/othello"
)

// useConfigHome points xdg at a temporary config directory.
func useConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	// Registered first so it runs after the environment is restored.
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_DIRS", dir)
	xdg.Reload()
	return dir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, cfgFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"control character symbol", func(c *Config) { c.Theme.Symbols.BlackStone = '\t' }},
		{"C1 control symbol", func(c *Config) { c.Theme.Symbols.ValidMove = 130 }},
		{"color out of palette", func(c *Config) { c.Theme.Colors.BoardColor = 256 }},
		{"negative color", func(c *Config) { c.Theme.Colors.HintColor = -1 }},
		{"unknown player color", func(c *Config) { c.Game.PlayerColor = "red" }},
		{"negative delay", func(c *Config) { c.Game.AIDelayMs = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig
			tt.modify(&c)
			err := c.Validate()
			var invalid *InvalidConfig
			if !errors.As(err, &invalid) {
				t.Errorf("Validate() = %v, want *InvalidConfig", err)
			}
		})
	}
}

func TestInitConfigWithoutFile(t *testing.T) {
	useConfigHome(t)
	c, err := InitConfig()
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if *c != DefaultConfig {
		t.Errorf("InitConfig without a file should return the defaults")
	}
}

func TestInitConfigMergesFile(t *testing.T) {
	dir := useConfigHome(t)
	writeConfig(t, dir, `{"game": {"player_color": "black", "ai_delay_ms": 0}}`)

	c, err := InitConfig()
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if c.Game.PlayerColor != "black" || c.Game.AIDelayMs != 0 {
		t.Errorf("game defaults not read: %+v", c.Game)
	}
	if c.Theme != DefaultTheme {
		t.Error("theme should keep its defaults")
	}
}

func TestInitConfigRejectsBadFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"game": `},
		{"invalid value", `{"game": {"player_color": "green"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := useConfigHome(t)
			writeConfig(t, dir, tt.content)
			if _, err := InitConfig(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	useConfigHome(t)
	c := DefaultConfig
	c.Theme.Colors.BoardColor = 34
	c.Game.PlayerColor = "black"
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := InitConfig()
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if *loaded != c {
		t.Errorf("loaded config differs from saved one:\n got %+v\nwant %+v", *loaded, c)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want othello.Stone
		ok   bool
	}{
		{"black", othello.Black, true},
		{"B", othello.Black, true},
		{" White ", othello.White, true},
		{"w", othello.White, true},
		{"", othello.Empty, false},
		{"empty", othello.Empty, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseColor(%q) = %s, %v; want %s, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
