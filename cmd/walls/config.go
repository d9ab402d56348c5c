package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/closing-walls/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in walls.yaml. Save it as ~/.walls/configs/walls.yaml
or pass it with --config to change ball speed, wall steps and timings.

Examples:
  walls config > ~/.walls/configs/walls.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	},
}
