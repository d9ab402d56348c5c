package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/closing-walls/internal/config"
	"github.com/vovakirdan/closing-walls/internal/storage"
)

// scoresOptions selects what the scores command shows or deletes.
type scoresOptions struct {
	Difficulty string
	Player     string
	Limit      int
	Clear      bool
}

var scoresOpts scoresOptions

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top scores, best first.

With --player, show that player's most recent games instead.
With --clear, delete the recorded scores (only one difficulty if
--difficulty is given).

Examples:
  walls scores
  walls scores --difficulty hard
  walls scores --limit 25
  walls scores --player alice
  walls scores --clear --difficulty easy`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&scoresOpts.Difficulty, "difficulty", "", "Only show this difficulty (default: all)")
	scoresCmd.Flags().StringVar(&scoresOpts.Player, "player", "", "Show the most recent games of this player")
	scoresCmd.Flags().IntVar(&scoresOpts.Limit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&scoresOpts.Clear, "clear", false, "Delete recorded scores")
	scoresCmd.MarkFlagsMutuallyExclusive("clear", "player")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	return showScores(cmd.OutOrStdout(), store, scoresOpts)
}

// showScores runs the scores command against an open store.
func showScores(out io.Writer, store *storage.Store, opts scoresOptions) error {
	difficulty := opts.Difficulty
	if difficulty != "" {
		preset, err := config.ParsePreset(difficulty)
		if err != nil {
			return err
		}
		difficulty = string(preset)
	}

	title := "all difficulties"
	if difficulty != "" {
		title = difficulty
	}

	switch {
	case opts.Clear:
		if err := store.ClearScores(difficulty); err != nil {
			return fmt.Errorf("cannot clear scores: %w", err)
		}
		fmt.Fprintf(out, "Cleared scores - %s\n", title)
		return nil

	case opts.Player != "":
		return showRecent(out, store, opts.Player, opts.Limit)
	}

	scores, err := store.TopScores(difficulty, opts.Limit)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", title)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'walls play' to set the first high score!")
		return nil
	}

	printScores(out, scores)

	stats, err := store.GetStats(difficulty)
	if err == nil && stats.GamesCount > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Games: %d  Best: %d  Average: %.0f  Best cover: %d%%\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestCover)
	}
	return nil
}

// showRecent lists a player's latest games, newest first.
func showRecent(out io.Writer, store *storage.Store, player string, limit int) error {
	results, err := store.RecentResults(player, limit)
	if err != nil {
		return fmt.Errorf("cannot retrieve recent games: %w", err)
	}

	fmt.Fprintf(out, "Recent games - %s\n\n", player)
	if len(results) == 0 {
		fmt.Fprintf(out, "No games recorded for %s.\n", player)
		return nil
	}

	printScores(out, results)
	return nil
}

func printScores(out io.Writer, scores []storage.Result) {
	fmt.Fprintf(out, "  %-4s  %-12s  %-7s  %-5s  %-10s  %-9s  %s\n",
		"#", "Player", "Score", "Cover", "Rank", "Ending", "Date")
	fmt.Fprintf(out, "  %-4s  %-12s  %-7s  %-5s  %-10s  %-9s  %s\n",
		"-", "------", "-----", "-----", "----", "------", "----")
	for i, r := range scores {
		fmt.Fprintf(out, "  %-4d  %-12s  %-7d  %-5s  %-10s  %-9s  %s\n",
			i+1, r.Player, r.Total, fmt.Sprintf("%d%%", r.Coverage), r.Rank, r.Ending,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
