package main

import (
	"context"
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/closing-walls/internal/config"
	"github.com/vovakirdan/closing-walls/internal/platform/tui"
	"github.com/vovakirdan/closing-walls/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSpectate   string
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game in this terminal.

Controls:
  Arrows/WASD/HJKL  - Push the opposite wall (hold to keep it held)
  Space             - Let go of the held direction
  Enter             - Start a game
  P                 - Pause
  R                 - Restart
  Esc/B             - Leave (on the start screen, paused or after game over)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - 90 seconds, slower ball
  normal - 60 seconds
  hard   - 45 seconds, faster ball

Examples:
  walls play
  walls play --difficulty hard
  walls play --config ./my-walls.yaml
  walls play --spectate :8080`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom walls.yaml")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a spectator feed on this address (e.g. :8080)")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name saved with scores (default: current user)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	wallsCfg, err := config.LoadWallsPreset(flagConfig, preset)
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	hostCfg := tui.HostConfig{
		Walls:      wallsCfg,
		Runtime:    runtimeConfig(),
		Difficulty: string(preset),
		Player:     playerName(),
		Store:      store,
		Logger:     logger,
		Context:    context.Background(),
	}
	if flagSpectate != "" {
		hostCfg.Registry = registry.New()
		stop := startSpectator(flagSpectate, hostCfg.Registry, logger)
		defer stop()
	}

	host, err := tui.NewHost(hostCfg)
	if err != nil {
		return fmt.Errorf("cannot start game: %w", err)
	}
	if id := host.SessionID(); id != "" {
		fmt.Fprintf(os.Stderr, "Spectators: ws://%s/watch?id=%s\n", flagSpectate, id)
	}

	return tui.Run(host, hostCfg.Runtime)
}

// playerName returns --player, or the OS user name.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "player"
}
