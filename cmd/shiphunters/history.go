package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shiphunters/internal/battle"
	"github.com/vovakirdan/shiphunters/internal/platform/render"
	"github.com/vovakirdan/shiphunters/internal/platform/tui"
	"github.com/vovakirdan/shiphunters/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryTUI   bool
)

var historyCmd = &cobra.Command{
	Use:   "history [match-id]",
	Short: "Show finished matches or replay one",
	Long: `Without arguments, list the most recent matches in the journal.

With a match ID, rebuild that match from its journal and print every
placement and shot followed by both final boards.

Examples:
  shiphunters history
  shiphunters history --limit 50
  shiphunters history --tui
  shiphunters history 6f1c2a9e-0d7b-4d8e-9a51-3c1f0b2e7d44`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of matches to list")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse the history full-screen")
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	theme, err := render.ThemeByName(cfg.Display.Theme, nil)
	if err != nil {
		fail("%v", err)
	}

	store, err := storage.Open(journalPath(cfg))
	if err != nil {
		fail("opening match journal: %v", err)
	}
	defer store.Close()

	switch {
	case len(args) == 1:
		err = printReplay(os.Stdout, theme, store, args[0])
	case flagHistoryTUI:
		err = tui.RunHistory(store, theme)
	default:
		err = printHistory(os.Stdout, theme, store, flagHistoryLimit)
	}
	if err != nil {
		store.Close()
		fail("%v", err)
	}
}

// printHistory writes the most recent matches as a table.
func printHistory(w io.Writer, theme render.Theme, store *storage.Store, limit int) error {
	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.Divider("match history"))
	fmt.Fprintln(w)

	if store == nil {
		fmt.Fprintln(w, "The match journal is disabled.")
		return nil
	}

	matches, err := store.RecentMatches(limit)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches played yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-14s  %-14s  %-5s  %-8s  %s\n", "#", "Winner", "Loser", "Turns", "Accuracy", "Match")
	fmt.Fprintf(w, "  %-4s  %-14s  %-14s  %-5s  %-8s  %s\n", "-", "------", "-----", "-----", "--------", "-----")
	for i, row := range tui.HistoryRows(matches) {
		fmt.Fprintf(w, "  %-4s  %-14s  %-14s  %-5s  %-8s  %s\n",
			row[0], row[1], row[2], row[3], row[4], matches[i].MatchID)
	}
	return nil
}

// printReplay rebuilds a journaled match and prints how it went.
func printReplay(w io.Writer, theme render.Theme, store *storage.Store, matchID string) error {
	j, err := store.LoadJournal(matchID)
	if errors.Is(err, storage.ErrMatchNotFound) {
		return fmt.Errorf("no match %q in the journal", matchID)
	}
	if err != nil {
		return err
	}

	m, err := battle.Replay(j)
	if err != nil {
		return fmt.Errorf("replaying %s: %w", matchID, err)
	}
	res, err := m.Result()
	if err != nil {
		return fmt.Errorf("replaying %s: %w", matchID, err)
	}

	fmt.Fprintln(w, theme.Divider("match "+j.MatchID))
	fmt.Fprintf(w, "Seed %d, played %s\n", j.Seed, j.FinishedAt.Local().Format("2006-01-02 15:04"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.Divider("setup phase"))
	for _, p := range j.Placements {
		fmt.Fprintf(w, "  %-14s %-10s at %-3s %s\n",
			j.Sides[p.Side].Name, p.Vessel, p.Start.Label(), p.Orientation)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.Divider("battle phase"))
	for _, s := range j.Shots {
		if s.Skipped {
			fmt.Fprintf(w, "  %3d  %-14s no target left\n", s.Turn, j.Sides[s.Side].Name)
			continue
		}
		fmt.Fprintf(w, "  %3d  %-14s %-3s  %s\n", s.Turn, j.Sides[s.Side].Name, s.Target.Label(), s.Outcome)
	}

	snap := m.Snapshot()
	fmt.Fprintln(w)
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Board(snap.Sides[0].Name+"'s board", snap.Sides[0].Board, true, render.Overlay{}),
		"    ",
		theme.Board(snap.Sides[1].Name+"'s board", snap.Sides[1].Board, true, render.Overlay{}),
	))
	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.EndBox(res))
	return nil
}
