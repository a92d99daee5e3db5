package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.csv>",
		Short: "Load players and statements from a CSV file",
		Long: `Loads a CSV file of "name,statement,answer" rows into the game.

Rows already present are skipped, so the same file can be loaded again
after corrections without duplicating players or statements.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.SeedingService.SeedFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Seeded %d players and %d statements\n", result.Players, result.Statements)
			return nil
		},
	}
}
