package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Recompute all player scores from the recorded guesses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ScoringService.RecomputeScores(cmd.Context()); err != nil {
				return err
			}

			fmt.Println("Scores recomputed")
			return nil
		},
	}
}
