package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/closing-walls/internal/platform/tui"
	"github.com/vovakirdan/closing-walls/internal/registry"
)

var (
	flagSSHAddr       string
	flagHostKey       string
	flagIdleTimeout   int
	flagServeSpectate string
	flagServeConfig   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own menu and its own game.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.walls/host_key

With --spectate, every live game can be watched over a websocket:
  GET /sessions        - JSON list of live sessions
  GET /watch?id=<id>   - stream of JSON snapshots for one session

Examples:
  walls serve                           # Listen on :23234 with auto-generated key
  walls serve --ssh :2222               # Listen on port 2222
  walls serve --host-key ./my_host_key  # Use specific host key
  walls serve --spectate :8080          # Also serve the spectator feed

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeSpectate, "spectate", "", "Serve a spectator feed on this address (e.g. :8080)")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom walls.yaml applied to every session")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	reg := registry.New()
	if flagServeSpectate != "" {
		stop := startSpectator(flagServeSpectate, reg, logger)
		defer stop()
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		ConfigPath:  flagServeConfig,
		TickRate:    flagFPS,
		Store:       store,
		Registry:    reg,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	fmt.Printf("Starting Closing Walls SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return server.ListenAndServe(ctx)
}
