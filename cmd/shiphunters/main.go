// Package main is the entry point for the Ship Hunters CLI.
//
// Usage:
//
//	shiphunters play                 # Console match against the computer
//	shiphunters play --tui           # Full-screen match
//	shiphunters simulate --count 50  # Computer vs computer
//	shiphunters history [match-id]   # Past matches and replays
//	shiphunters serve --ssh :23234   # Host matches over SSH
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shiphunters/internal/config"
)

// Global flags
var (
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

// logFile is the open --log-file, closed when the command returns.
var logFile *os.File

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shiphunters",
	Short: "Ship Hunters - battleship in your terminal",
	Long: `Ship Hunters is a two-player naval battle on a 10x10 grid.

Deploy a Carrier (5), a Battleship (4) and a Destroyer (3), then trade
shots with the computer until one fleet is sunk. Finished matches are
kept in a local journal and can be replayed shot by shot.

Settings are read from --config, ~/.shiphunters/config.yaml or
./configs/shiphunters.yaml. A .env file may set SHIPHUNTERS_DB and
SHIPHUNTERS_CONFIG.`,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

func init() {
	// A missing .env is fine
	_ = godotenv.Load()

	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for the match (0 = time-based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", envOr("SHIPHUNTERS_DB", ""), "Path to the match journal database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", envOr("SHIPHUNTERS_CONFIG", ""), "Path to a config YAML file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// envOr returns the environment variable key, or def when it is unset.
func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig reads the settings or exits.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	return cfg
}

// newLogger builds the command logger from --log-level and --log-file.
func newLogger() *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("invalid --log-level %q", flagLogLevel)
	}

	var w io.Writer = os.Stderr
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			fail("cannot create log directory: %v", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fail("cannot open log file: %v", err)
		}
		logFile = f
		w = f
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "shiphunters",
		Level:           level,
	})
}

// journalPath returns the database path: --db, then the config.
func journalPath(cfg config.Config) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return cfg.Journal.Path
}
