package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/shiphunters/internal/battle"
	"github.com/vovakirdan/shiphunters/internal/config"
	"github.com/vovakirdan/shiphunters/internal/core"
	"github.com/vovakirdan/shiphunters/internal/engine"
	"github.com/vovakirdan/shiphunters/internal/platform/console"
	"github.com/vovakirdan/shiphunters/internal/platform/render"
	"github.com/vovakirdan/shiphunters/internal/platform/tui"
	"github.com/vovakirdan/shiphunters/internal/storage"
)

var (
	flagName  string
	flagTUI   bool
	flagTheme string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a match against the computer",
	Long: `Start Ship Hunters against the computer.

The console mode shows a main menu:
  Enter            - Play
  2 then Enter     - Match history
  Space then Enter - Exit

Ships are placed by typing a start cell and an orientation (H or V).
Targets are typed as a column letter and a row number, e.g. B7.

With --tui the match runs full-screen:
  Arrows/hjkl/wasd - Move the cursor
  R                - Rotate the ship being placed
  Enter/Space      - Place ship or fire
  N                - New match (after game over)
  Tab              - Match history (after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Examples:
  shiphunters play
  shiphunters play --name Ana
  shiphunters play --tui --theme classic
  shiphunters play --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name (asked for when empty)")
	playCmd.Flags().BoolVar(&flagTUI, "tui", false, "Play in full-screen mode")
	playCmd.Flags().StringVar(&flagTheme, "theme", "", "Colour theme: purple, classic (default from config)")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()

	themeName := cfg.Display.Theme
	if flagTheme != "" {
		themeName = flagTheme
	}
	theme, err := render.ThemeByName(themeName, nil)
	if err != nil {
		fail("%v", err)
	}

	// Get terminal size early for the board layout
	rc := core.DefaultConfig()
	rc.Seed = flagSeed
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	store := openJournal(cfg, logger)
	opts := engineOptions(cfg, logger, store)

	err = withJournal(store, func() error {
		if flagTUI {
			return tui.Run(tui.MatchConfig{
				Runtime:       rc,
				MatchID:       uuid.NewString(),
				Player:        playerName(cfg),
				Opponent:      cfg.Opponent.Name,
				Theme:         theme,
				Engine:        opts,
				ScreenshotDir: screenshotDir(),
			}, historySource(store))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		session := consoleSession{
			cfg:         cfg,
			theme:       theme,
			input:       console.NewInput(os.Stdin, os.Stdout, theme),
			out:         os.Stdout,
			store:       store,
			opts:        opts,
			seed:        rc.Seed,
			clearScreen: cfg.Display.ClearScreen && isTTY,
		}
		return session.run(ctx)
	})
	if err != nil {
		fail("%v", err)
	}
}

// withJournal runs fn and then closes store, which may be nil.
// The store is closed before the caller reports an error and exits.
func withJournal(store *storage.Store, fn func() error) error {
	err := fn()
	if store != nil {
		if closeErr := store.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

// consoleSession is the menu loop of the line-oriented game.
type consoleSession struct {
	cfg         config.Config
	theme       render.Theme
	input       *console.Input
	out         io.Writer
	store       *storage.Store
	opts        engine.Options
	seed        int64
	clearScreen bool
	name        string
}

func (s *consoleSession) run(ctx context.Context) error {
	fmt.Fprintln(s.out, s.theme.Banner())

	for {
		choice, err := s.input.Menu(ctx)
		if err != nil {
			return endOfInput(err)
		}

		switch choice {
		case console.MenuPlay:
			if err := s.play(ctx); err != nil {
				return endOfInput(err)
			}
		case console.MenuHistory:
			if err := printHistory(s.out, s.theme, s.store, 10); err != nil {
				fmt.Fprintln(s.out, s.theme.Alert.Render(err.Error()))
			}
		case console.MenuQuit:
			fmt.Fprintln(s.out, "\nThanks for playing!")
			return nil
		}
	}
}

// play runs one match against the computer.
func (s *consoleSession) play(ctx context.Context) error {
	if s.name == "" {
		s.name = playerName(s.cfg)
		if s.name == "" {
			name, err := s.input.PromptName(ctx, "Player")
			if err != nil {
				return err
			}
			s.name = name
		}
	}

	m := battle.NewMatch(uuid.NewString(),
		battle.NewCombatant(s.name, false),
		battle.NewCombatant(s.cfg.Opponent.Name, true),
		s.seed,
	)
	// --seed fixes the first match only
	s.seed = 0

	display := console.NewDisplay(s.out, s.theme, 0, s.clearScreen)
	_, err := engine.New(m, s.input, display, s.opts).Run(ctx)
	return err
}

// endOfInput treats a closed stdin or Ctrl+C as a normal exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// playerName returns --name, then the configured name.
func playerName(cfg config.Config) string {
	if flagName != "" {
		return flagName
	}
	return cfg.Player.Name
}

// engineOptions maps the config onto controller options.
func engineOptions(cfg config.Config, logger *log.Logger, store *storage.Store) engine.Options {
	opts := engine.Options{
		PlacementAttempts: cfg.Opponent.PlacementAttempts,
		ThinkDelay:        cfg.Opponent.ThinkDelay,
		BoardPause:        cfg.Display.BoardPause,
		Logger:            logger,
	}
	if store != nil {
		opts.Journal = store
	}
	return opts
}

// openJournal opens the match journal when enabled. Failures only warn;
// the game is playable without it.
func openJournal(cfg config.Config, logger *log.Logger) *storage.Store {
	if !cfg.Journal.Enabled && flagDBPath == "" {
		return nil
	}
	path := journalPath(cfg)
	if path == "" {
		return nil
	}
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("could not open match journal", "path", path, "error", err)
		return nil
	}
	return store
}

// historySource avoids handing a typed nil to the TUI.
func historySource(store *storage.Store) tui.HistorySource {
	if store == nil {
		return nil
	}
	return store
}

// screenshotDir returns ~/.shiphunters/screenshots, or "" without a home.
func screenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".shiphunters", "screenshots")
}
