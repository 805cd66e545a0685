package main

import (
	"fmt"
	"net"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shiphunters/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Ship Hunters SSH server",
	Long: `Start an SSH server that lets users connect and play against the computer.

Each SSH connection gets its own full-screen match. The SSH user name is
the player name. All finished matches go to the server's journal.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.shiphunters/host_key

Examples:
  shiphunters serve                           # Listen on :23234 with auto-generated key
  shiphunters serve --ssh :2222               # Listen on port 2222
  shiphunters serve --host-key ./my_host_key  # Use specific host key
  shiphunters serve --db ./journal.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	appCfg := loadConfig()
	logger := newLogger()
	// Session logs are the point of a server
	if !cmd.Flags().Changed("log-level") {
		logger.SetLevel(log.InfoLevel)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Theme = appCfg.Display.Theme
	cfg.Opponent = appCfg.Opponent.Name
	cfg.Logger = logger
	cfg.Engine = engineOptions(appCfg, logger, nil)
	cfg.DBPath = ""
	if appCfg.Journal.Enabled || flagDBPath != "" {
		cfg.DBPath = journalPath(appCfg)
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fail("creating server: %v", err)
	}

	port := "23234"
	if _, p, splitErr := net.SplitHostPort(cfg.Address); splitErr == nil {
		port = p
	}
	fmt.Printf("Starting Ship Hunters SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
