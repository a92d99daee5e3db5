package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show how many guesses each player has submitted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := app.GuessingService.PlayerStatuses(cmd.Context())
			if err != nil {
				return err
			}

			nameWidth := len("Player")
			for _, status := range statuses {
				if len(status.Name) > nameWidth {
					nameWidth = len(status.Name)
				}
			}

			fmt.Printf("%-*s | Guesses\n", nameWidth, "Player")
			for _, status := range statuses {
				fmt.Printf("%-*s | %s\n", nameWidth, status.Name, status.Submitted)
			}
			return nil
		},
	}
}
