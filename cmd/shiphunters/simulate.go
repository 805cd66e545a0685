package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shiphunters/internal/battle"
	"github.com/vovakirdan/shiphunters/internal/engine"
	"github.com/vovakirdan/shiphunters/internal/platform/render"
	"github.com/vovakirdan/shiphunters/internal/storage"
)

var (
	flagSimCount int
	flagSimSave  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run computer vs computer matches",
	Long: `Play matches between two automated sides and print a summary:
wins per side, average turns to win and average winner accuracy.

With --seed, match i uses seed+i, so a run can be repeated exactly.

Examples:
  shiphunters simulate
  shiphunters simulate --count 500 --seed 7
  shiphunters simulate --count 10 --save`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimCount, "count", 100, "Number of matches to play")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Save every match to the journal")
}

// simSummary aggregates finished simulated matches.
type simSummary struct {
	names    [2]string
	wins     [2]int
	turns    int
	accuracy float64
	matches  int
}

func (s *simSummary) add(res battle.Result) {
	s.wins[res.WinnerSide]++
	s.turns += res.Turns
	s.accuracy += res.Winner.Accuracy
	s.matches++
}

func (s *simSummary) print(theme render.Theme) {
	fmt.Println(theme.Divider("simulation"))
	fmt.Printf("  Matches played:   %d\n", s.matches)
	if s.matches == 0 {
		return
	}
	for i, name := range s.names {
		fmt.Printf("  %-16s  %d wins (%.1f%%)\n", name+":", s.wins[i], float64(s.wins[i])/float64(s.matches)*100)
	}
	fmt.Printf("  Average turns:    %.1f\n", float64(s.turns)/float64(s.matches))
	fmt.Printf("  Winner accuracy:  %.2f%%\n", s.accuracy/float64(s.matches))
}

func runSimulate(cmd *cobra.Command, args []string) {
	if flagSimCount < 1 {
		fail("--count must be at least 1, got %d", flagSimCount)
	}

	cfg := loadConfig()
	logger := newLogger()

	theme, err := render.ThemeByName(cfg.Display.Theme, nil)
	if err != nil {
		fail("%v", err)
	}

	opts := engine.Options{
		PlacementAttempts: cfg.Opponent.PlacementAttempts,
		Logger:            logger,
	}
	if flagSimSave {
		store, openErr := storage.Open(journalPath(cfg))
		if openErr != nil {
			fail("opening match journal: %v", openErr)
		}
		defer store.Close()
		opts.Journal = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary := simSummary{names: [2]string{cfg.Opponent.Name + " 1", cfg.Opponent.Name + " 2"}}
	for i := range flagSimCount {
		var seed int64
		if flagSeed != 0 {
			seed = flagSeed + int64(i)
		}
		m := battle.NewMatch(uuid.NewString(),
			battle.NewCombatant(summary.names[0], true),
			battle.NewCombatant(summary.names[1], true),
			seed,
		)

		res, runErr := engine.New(m, nil, nil, opts).Run(ctx)
		if runErr != nil {
			// Interrupted: report what finished
			logger.Warn("simulation stopped", "after", i, "error", runErr)
			break
		}
		summary.add(res)
	}

	summary.print(theme)
}
