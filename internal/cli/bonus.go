package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newBonusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bonus <player name> <points>",
		Short: "Set a player's bonus points",
		Long: `Sets the facilitator-awarded bonus points for a player. The value
replaces any previous bonus and may be negative.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := lookupPlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			points, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid points value %q: %w", args[1], err)
			}

			if err := app.ScoringService.SetBonusPoints(cmd.Context(), player.ID, points); err != nil {
				return err
			}

			fmt.Printf("Set bonus points for %s to %d\n", player.Name, points)
			return nil
		},
	}
}
