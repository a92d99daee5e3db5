package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trickery-game/trickery/internal/factory"
	"github.com/trickery-game/trickery/internal/services/guessing"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Run an interactive scorekeeping session",
		Long: `Runs a menu-driven session for the facilitator: record guesses as
they come in, check who still owes a submission, award bonuses, and
produce the reports at the end.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd.Context(), app, cfg.OutputDir, os.Stdin, os.Stdout)
		},
	}
}

const sessionMenu = `
1) Show player statuses
2) Record a player's guesses
3) Award bonus points
4) Recompute scores
5) Print game summary
6) Write all reports
q) Quit
`

// runSession drives the interactive loop. Input and output are injected so
// the loop can be exercised with a scripted session.
func runSession(ctx context.Context, app *factory.App, outputDir string, in io.Reader, out io.Writer) error {
	session := &session{
		app:       app,
		outputDir: outputDir,
		scanner:   bufio.NewScanner(in),
		out:       out,
	}

	for {
		fmt.Fprint(out, sessionMenu)
		choice, ok := session.prompt("> ")
		if !ok {
			return nil
		}

		var err error
		switch choice {
		case "1":
			err = session.showStatuses(ctx)
		case "2":
			err = session.recordGuesses(ctx)
		case "3":
			err = session.awardBonus(ctx)
		case "4":
			err = session.recomputeScores(ctx)
		case "5":
			err = session.printSummary(ctx)
		case "6":
			err = session.writeReports(ctx)
		case "q", "Q":
			return nil
		default:
			fmt.Fprintf(out, "Unknown choice: %s\n", choice)
		}

		// A bad entry should not end the session
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

type session struct {
	app       *factory.App
	outputDir string
	scanner   *bufio.Scanner
	out       io.Writer
}

// prompt reads one trimmed line; ok is false once input is exhausted
func (s *session) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.scanner.Text()), true
}

func (s *session) showStatuses(ctx context.Context) error {
	statuses, err := s.app.GuessingService.PlayerStatuses(ctx)
	if err != nil {
		return err
	}
	for _, status := range statuses {
		fmt.Fprintf(s.out, "%s: %s\n", status.Name, status.Submitted)
	}
	return nil
}

func (s *session) recordGuesses(ctx context.Context) error {
	name, ok := s.prompt("Player name: ")
	if !ok {
		return nil
	}
	player, err := s.app.Storage.GetPlayerByName(ctx, name)
	if err != nil {
		return err
	}

	// Re-prompt on a malformed guess string rather than dropping back to
	// the menu
	for {
		input, ok := s.prompt("Guesses (1=true, 0=false): ")
		if !ok {
			return nil
		}
		values, err := guessing.ParseGuesses(input)
		if err == nil {
			err = s.app.GuessingService.SubmitGuesses(ctx, player.ID, values)
		}
		if err == nil {
			fmt.Fprintf(s.out, "Recorded %d guesses for %s\n", len(values), player.Name)
			return nil
		}
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *session) awardBonus(ctx context.Context) error {
	name, ok := s.prompt("Player name: ")
	if !ok {
		return nil
	}
	player, err := s.app.Storage.GetPlayerByName(ctx, name)
	if err != nil {
		return err
	}

	input, ok := s.prompt("Bonus points: ")
	if !ok {
		return nil
	}
	points, err := strconv.Atoi(input)
	if err != nil {
		return fmt.Errorf("invalid points value %q: %w", input, err)
	}

	if err := s.app.ScoringService.SetBonusPoints(ctx, player.ID, points); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Set bonus points for %s to %d\n", player.Name, points)
	return nil
}

func (s *session) recomputeScores(ctx context.Context) error {
	if err := s.app.ScoringService.RecomputeScores(ctx); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Scores recomputed")
	return nil
}

func (s *session) printSummary(ctx context.Context) error {
	summary, err := s.app.ReportGenerator.GameSummary(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, summary)
	return nil
}

func (s *session) writeReports(ctx context.Context) error {
	if err := s.app.ReportGenerator.WriteAll(ctx, s.outputDir); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Reports written to %s\n", s.outputDir)
	return nil
}
