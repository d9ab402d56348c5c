package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/closing-walls/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a difficulty picker",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a difficulty.
Leave a finished game with Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  walls menu
  walls menu --fps 60
  walls menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom walls.yaml")
	menuCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name saved with scores (default: current user)")
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closer, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return tui.RunSession(tui.SessionOptions{
		Store:      store,
		ConfigPath: flagConfig,
		Logger:     logger,
		Player:     playerName(),
		Context:    context.Background(),
	}, runtimeConfig())
}
