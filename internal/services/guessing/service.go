package guessing

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/trickery-game/trickery/internal/model"
	"github.com/trickery-game/trickery/internal/storage"
)

// Guess tokens in the external string encoding
const (
	GuessTokenTrue  = '1'
	GuessTokenFalse = '0'
)

// Status markers for the player status listing
const (
	StatusAll  = "ALL"
	StatusNone = "NONE"
)

// PlayerStatus summarizes one player's guess submission progress
type PlayerStatus struct {
	ID        model.PlayerID
	Name      string
	Submitted string // ALL, NONE, or the literal count
}

// Service validates and records complete guess sets
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new guessing Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// ParseGuesses decodes the external guess encoding: a string with one '1' or
// '0' per statement. Any other rune fails validation.
func ParseGuesses(input string) ([]bool, error) {
	values := make([]bool, 0, len(input))
	for _, r := range input {
		switch r {
		case GuessTokenTrue:
			values = append(values, true)
		case GuessTokenFalse:
			values = append(values, false)
		default:
			return nil, fmt.Errorf("%w: %q", model.ErrInvalidGuessToken, r)
		}
	}
	return values, nil
}

// SubmitGuesses replaces the player's entire guess set. Value i applies to
// the i-th statement in the fixed statement ordering, so callers must
// collect guesses in the same order the statements were listed. The
// operation is all-or-nothing: validation failures leave prior guesses
// untouched.
func (s *Service) SubmitGuesses(ctx context.Context, playerID model.PlayerID, values []bool) error {
	if _, err := s.storage.GetPlayer(ctx, playerID); err != nil {
		return err
	}

	statements, err := s.storage.ListStatements(ctx)
	if err != nil {
		return err
	}
	if len(values) != len(statements) {
		return fmt.Errorf("%w: got %d, want %d", model.ErrGuessCountMismatch, len(values), len(statements))
	}

	guesses := make([]model.Guess, len(values))
	for i, value := range values {
		guesses[i] = model.Guess{
			GuesserID:   playerID,
			StatementID: statements[i].ID,
			Value:       value,
		}
	}

	if err := s.storage.ReplaceGuesses(ctx, playerID, guesses); err != nil {
		return err
	}

	s.logger.Debug("recorded guess set",
		slog.Int64("player_id", int64(playerID)),
		slog.Int("guesses", len(guesses)),
	)
	return nil
}

// PlayerStatuses reports each player's submission progress for the
// facilitator's menu: ALL when the guess count matches the statement count,
// NONE for zero guesses, the literal count otherwise.
func (s *Service) PlayerStatuses(ctx context.Context) ([]PlayerStatus, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	statementCount, err := s.storage.CountStatements(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]PlayerStatus, 0, len(players))
	for _, player := range players {
		count, err := s.storage.CountGuessesByPlayer(ctx, player.ID)
		if err != nil {
			return nil, err
		}

		var submitted string
		switch {
		case count == statementCount:
			submitted = StatusAll
		case count == 0:
			submitted = StatusNone
		default:
			submitted = strconv.Itoa(count)
		}

		statuses = append(statuses, PlayerStatus{
			ID:        player.ID,
			Name:      player.Name,
			Submitted: submitted,
		})
	}
	return statuses, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	SubmitGuesses(ctx context.Context, playerID model.PlayerID, values []bool) error
	PlayerStatuses(ctx context.Context) ([]PlayerStatus, error)
}

var _ ServiceInterface = (*Service)(nil)
