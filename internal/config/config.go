// Package config provides YAML-based configuration loading for Ship Hunters.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config contains all user-tunable settings of a match.
// Board size and fleet composition are fixed by the game rules.
type Config struct {
	Player   PlayerConfig   `yaml:"player"`
	Opponent OpponentConfig `yaml:"opponent"`
	Display  DisplayConfig  `yaml:"display"`
	Journal  JournalConfig  `yaml:"journal"`
}

// PlayerConfig defines the human side.
type PlayerConfig struct {
	// Name is used when no name is given on the command line.
	// An empty name makes the console ask for one.
	Name string `yaml:"name"`
}

// OpponentConfig defines the automated side.
type OpponentConfig struct {
	Name              string        `yaml:"name"`
	ThinkDelay        time.Duration `yaml:"think_delay"`
	PlacementAttempts int           `yaml:"placement_attempts"`
}

// DisplayConfig defines how boards are shown.
type DisplayConfig struct {
	Theme       string        `yaml:"theme"`
	BoardPause  time.Duration `yaml:"board_pause"`
	ClearScreen bool          `yaml:"clear_screen"`
}

// JournalConfig controls match journal persistence.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Opponent.Name) == "" {
		errs = append(errs, errors.New("opponent.name must not be empty"))
	}
	if c.Opponent.ThinkDelay < 0 {
		errs = append(errs, fmt.Errorf("opponent.think_delay must not be negative, got %s", c.Opponent.ThinkDelay))
	}
	if c.Opponent.PlacementAttempts < 1 {
		errs = append(errs, fmt.Errorf("opponent.placement_attempts must be at least 1, got %d", c.Opponent.PlacementAttempts))
	}
	if c.Display.BoardPause < 0 {
		errs = append(errs, fmt.Errorf("display.board_pause must not be negative, got %s", c.Display.BoardPause))
	}
	if strings.TrimSpace(c.Display.Theme) == "" {
		errs = append(errs, errors.New("display.theme must not be empty"))
	}
	if c.Journal.Enabled && strings.TrimSpace(c.Journal.Path) == "" {
		errs = append(errs, errors.New("journal.path is required when the journal is enabled"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
