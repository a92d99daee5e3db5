package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trickery-game/trickery/internal/model"
	"github.com/trickery-game/trickery/internal/services/guessing"
)

func newGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <player name> <guesses>",
		Short: "Record a player's guesses",
		Long: `Records one guess per statement, in statement order, as a string of
'1' (true) and '0' (false) characters, e.g. "10110".

Submitting again replaces the player's previous guesses.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := lookupPlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			values, err := guessing.ParseGuesses(args[1])
			if err != nil {
				return err
			}

			if err := app.GuessingService.SubmitGuesses(cmd.Context(), player.ID, values); err != nil {
				return err
			}

			fmt.Printf("Recorded %d guesses for %s\n", len(values), player.Name)
			return nil
		},
	}
}

func lookupPlayer(ctx context.Context, name string) (*model.Player, error) {
	player, err := app.Storage.GetPlayerByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("player %q: %w", name, err)
	}
	return player, nil
}
