package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/saxbophone/sxbp/internal/platform/tui"
)

var (
	flagServeAddress     string
	flagServeHostKey     string
	flagServeIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the solve journal over SSH",
	Long: `Start an SSH server that lets anyone browse the solve journal from a
terminal:

  ssh -p 23235 localhost

Examples:
  sxbp serve
  sxbp serve --ssh :2222 --db ./journal.db`,
	Run: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagServeAddress, "ssh", defaults.Address,
		"Address to listen on")
	serveCmd.Flags().StringVar(&flagServeHostKey, "host-key", "",
		"Path to the SSH host key (auto-generated if empty)")
	serveCmd.Flags().DurationVar(&flagServeIdleTimeout, "idle-timeout", defaults.IdleTimeout,
		"Close idle connections after this long")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	serverCfg := tui.DefaultSSHServerConfig()
	serverCfg.Address = flagServeAddress
	serverCfg.HostKeyPath = flagServeHostKey
	serverCfg.DBPath = cfg.Journal.Path
	serverCfg.IdleTimeout = flagServeIdleTimeout

	server, err := tui.NewSSHServer(serverCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating SSH server: %v\n", err)
		os.Exit(1)
	}

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
