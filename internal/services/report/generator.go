package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/trickery-game/trickery/internal/model"
	"github.com/trickery-game/trickery/internal/storage"
)

// SummaryFilename is the name of the game-wide summary artifact
const SummaryFilename = "scoresheet.txt"

// leaderboardSize is how many players each summary leaderboard shows
const leaderboardSize = 5

// Generator renders the text artifacts handed out at the end of a game:
// one scoresheet per player and a game-wide summary. Reports read the
// persisted score rows, so they reflect whatever the last recomputation
// produced.
type Generator struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new report Generator
func New(storage storage.Storage, logger *slog.Logger) *Generator {
	return &Generator{
		storage: storage,
		logger:  logger,
	}
}

// PlayerScoresheet renders one player's scoresheet: every statement in the
// fixed ordering with the player's guess and the answer, the player's own
// submissions with tricked-guesser counts, and the persisted score summary.
func (g *Generator) PlayerScoresheet(ctx context.Context, playerID model.PlayerID) (string, error) {
	player, err := g.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return "", err
	}
	statements, err := g.storage.ListStatements(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Scoresheet for player: %s\n\n", player.Name)

	b.WriteString("=== YOUR GUESSES ===\n\n")
	for _, statement := range statements {
		label, err := g.submitterLabel(ctx, statement.OwnerID)
		if err != nil {
			return "", err
		}

		var guessText string
		guess, err := g.storage.GetGuess(ctx, playerID, statement.ID)
		switch {
		case err == nil:
			guessText = fmt.Sprintf("You said %s.", formatAnswer(guess.Value))
		case errors.Is(err, model.ErrGuessNotFound):
			guessText = "You made no guess."
		default:
			return "", err
		}

		fmt.Fprintf(&b, "%02d: %s\n", statement.ID, statement.Text)
		fmt.Fprintf(&b, "    Submitted by %s. %s The answer was %s.\n\n",
			label, guessText, formatAnswer(statement.Answer))
	}

	b.WriteString("=== YOUR SUBMISSIONS ===\n\n")
	authored, err := g.storage.ListStatementsByOwner(ctx, playerID)
	if err != nil {
		return "", err
	}
	for _, statement := range authored {
		tricked, err := g.countWrongGuesses(ctx, statement)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%02d: %s\n", statement.ID, statement.Text)
		fmt.Fprintf(&b, "    Answer was %s. You tricked: %d players\n\n",
			formatAnswer(statement.Answer), tricked)
	}

	b.WriteString("=== SCORE ===\n\n")
	score, err := g.persistedScore(ctx, playerID)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "Points from guesses: %d\n", score.GuessPoints)
	fmt.Fprintf(&b, "Points from trickery: %d\n", score.TrickPoints)
	fmt.Fprintf(&b, "Bonus points: %d\n", score.BonusPoints)
	fmt.Fprintf(&b, "Total score: %d\n", score.Total)

	return b.String(), nil
}

// GameSummary renders the game-wide summary: top-five leaderboards by
// total, guess, and trick points, then the full score table ordered by
// player name.
func (g *Generator) GameSummary(ctx context.Context) (string, error) {
	players, err := g.storage.ListPlayers(ctx)
	if err != nil {
		return "", err
	}

	rows := make([]summaryRow, 0, len(players))
	nameWidth := len("Player")
	for _, player := range players {
		score, err := g.persistedScore(ctx, player.ID)
		if err != nil {
			return "", err
		}
		rows = append(rows, summaryRow{name: player.Name, score: *score})
		if len(player.Name) > nameWidth {
			nameWidth = len(player.Name)
		}
	}

	var b strings.Builder

	writeLeaderboard(&b, "TOP SCORERS:", rows, nameWidth, func(r summaryRow) int { return r.score.Total })
	writeLeaderboard(&b, "TOP GUESSERS:", rows, nameWidth, func(r summaryRow) int { return r.score.GuessPoints })
	writeLeaderboard(&b, "TOP TRICKERS:", rows, nameWidth, func(r summaryRow) int { return r.score.TrickPoints })

	byName := make([]summaryRow, len(rows))
	copy(byName, rows)
	sort.Slice(byName, func(i, j int) bool { return byName[i].name < byName[j].name })

	b.WriteString("ALL SCORERS:\n")
	fmt.Fprintf(&b, "%-*s | Guess Points | Trick Points | Bonus Points | Total Score\n", nameWidth, "Player")
	for _, row := range byName {
		fmt.Fprintf(&b, "%-*s | %12d | %12d | %12d | %11d\n",
			nameWidth, row.name,
			row.score.GuessPoints,
			row.score.TrickPoints,
			row.score.BonusPoints,
			row.score.Total,
		)
	}

	return b.String(), nil
}

// WritePlayerScoresheet writes one player's scoresheet into dir and returns
// the file path. The filename is derived from the player's name, lowercased
// with spaces removed.
func (g *Generator) WritePlayerScoresheet(ctx context.Context, playerID model.PlayerID, dir string) (string, error) {
	player, err := g.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return "", err
	}
	sheet, err := g.PlayerScoresheet(ctx, playerID)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, scoresheetFilename(player.Name))
	if err := os.WriteFile(path, []byte(sheet), 0o644); err != nil {
		return "", fmt.Errorf("write scoresheet: %w", err)
	}
	return path, nil
}

// WriteAll writes every player's scoresheet plus the game summary into dir.
// A failure on one player's sheet is logged and the batch continues.
func (g *Generator) WriteAll(ctx context.Context, dir string) error {
	players, err := g.storage.ListPlayers(ctx)
	if err != nil {
		return err
	}

	for _, player := range players {
		if _, err := g.WritePlayerScoresheet(ctx, player.ID, dir); err != nil {
			g.logger.Warn("skipping player scoresheet",
				slog.Int64("player_id", int64(player.ID)),
				slog.String("error", err.Error()),
			)
		}
	}

	summary, err := g.GameSummary(ctx)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, SummaryFilename)
	if err := os.WriteFile(path, []byte(summary), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

type summaryRow struct {
	name  string
	score model.Score
}

// writeLeaderboard appends a descending leaderboard section. The sort is
// stable, so ties keep store iteration order (ascending player ID).
func writeLeaderboard(b *strings.Builder, title string, rows []summaryRow, nameWidth int, key func(summaryRow) int) {
	ranked := make([]summaryRow, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool { return key(ranked[i]) > key(ranked[j]) })

	if len(ranked) > leaderboardSize {
		ranked = ranked[:leaderboardSize]
	}

	b.WriteString(title + "\n")
	for _, row := range ranked {
		fmt.Fprintf(b, "%-*s : %d\n", nameWidth, row.name, key(row))
	}
	b.WriteString("\n")
}

// submitterLabel returns the shortened author name for a statement line.
// A name that cannot be shortened is a seed-data defect; it fails only this
// label, falling back to the full name, so the rest of the sheet still
// renders.
func (g *Generator) submitterLabel(ctx context.Context, ownerID model.PlayerID) (string, error) {
	owner, err := g.storage.GetPlayer(ctx, ownerID)
	if err != nil {
		return "", err
	}
	label, err := owner.ShortName()
	if err != nil {
		g.logger.Warn("cannot shorten player name for scoresheet",
			slog.Int64("player_id", int64(owner.ID)),
			slog.String("name", owner.Name),
		)
		return owner.Name, nil
	}
	return label, nil
}

func (g *Generator) countWrongGuesses(ctx context.Context, statement *model.Statement) (int, error) {
	guesses, err := g.storage.ListGuessesForStatement(ctx, statement.ID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, guess := range guesses {
		if guess.Value != statement.Answer {
			count++
		}
	}
	return count, nil
}

// persistedScore reads the stored score row, treating a missing row as all
// zeroes so reports still render before the first recomputation.
func (g *Generator) persistedScore(ctx context.Context, playerID model.PlayerID) (*model.Score, error) {
	score, err := g.storage.GetScore(ctx, playerID)
	if err != nil {
		if errors.Is(err, model.ErrScoreNotFound) {
			return &model.Score{PlayerID: playerID}, nil
		}
		return nil, err
	}
	return score, nil
}

func formatAnswer(value bool) string {
	if value {
		return "TRUE"
	}
	return "FALSE"
}

func scoresheetFilename(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "")) + ".txt"
}

// Interface for dependency injection
type GeneratorInterface interface {
	PlayerScoresheet(ctx context.Context, playerID model.PlayerID) (string, error)
	GameSummary(ctx context.Context) (string, error)
	WritePlayerScoresheet(ctx context.Context, playerID model.PlayerID, dir string) (string, error)
	WriteAll(ctx context.Context, dir string) error
}

var _ GeneratorInterface = (*Generator)(nil)
