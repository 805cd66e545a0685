package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/shiphunters.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Opponent: OpponentConfig{
			Name:              "Computer",
			ThinkDelay:        1500 * time.Millisecond,
			PlacementAttempts: 100,
		},
		Display: DisplayConfig{
			Theme:       "purple",
			BoardPause:  2500 * time.Millisecond,
			ClearScreen: true,
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    "~/.shiphunters/journal.db",
		},
	}
}
