package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/closing-walls/internal/games/walls"
	"github.com/vovakirdan/closing-walls/internal/platform/tui"
)

var ranksCmd = &cobra.Command{
	Use:   "ranks",
	Short: "Show rank thresholds",
	Long: `List the ranks a final score can earn, best first.

A final score is surface + time bonus + efficiency:
  surface     coverage × 100
  time bonus  elapsed seconds × 10
  efficiency  coverage² × 5 / (elapsed seconds + 1)`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		for _, t := range walls.RankTiers() {
			name := tui.Style(t.Color).Bold(true).Render(fmt.Sprintf("%-10s", t.Rank))
			fmt.Fprintf(out, "  %s  %6d+\n", name, t.Min)
		}
	},
}
