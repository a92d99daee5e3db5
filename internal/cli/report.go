package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report commands",
	}

	cmd.AddCommand(newReportPlayerCmd())
	cmd.AddCommand(newReportSummaryCmd())
	cmd.AddCommand(newReportAllCmd())

	return cmd
}

func newReportPlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "player <player name>",
		Short: "Print one player's scoresheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := lookupPlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			sheet, err := app.ReportGenerator.PlayerScoresheet(cmd.Context(), player.ID)
			if err != nil {
				return err
			}

			fmt.Print(sheet)
			return nil
		},
	}
}

func newReportSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the game-wide score summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.ReportGenerator.GameSummary(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Print(summary)
			return nil
		},
	}
}

func newReportAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Write every scoresheet plus the summary to the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ReportGenerator.WriteAll(cmd.Context(), cfg.OutputDir); err != nil {
				return err
			}

			fmt.Printf("Reports written to %s\n", cfg.OutputDir)
			return nil
		},
	}
}
