package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trickery-game/trickery/internal/model"
	"github.com/trickery-game/trickery/internal/storage"
)

// Service computes point totals from the recorded guesses.
//
// Recomputation is full, not incremental: every run re-derives guess and
// trick points from the raw guess rows, so edits and re-submissions in any
// order converge to the same totals.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new scoring Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// RecomputeScores recalculates and persists every player's score row.
// A player's row is only written once the whole computation for that player
// has succeeded, so a failure never leaves partial numeric fields behind.
func (s *Service) RecomputeScores(ctx context.Context) error {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return err
	}
	statements, err := s.storage.ListStatements(ctx)
	if err != nil {
		return err
	}

	for _, player := range players {
		score, err := s.computeScore(ctx, player.ID, statements)
		if err != nil {
			return fmt.Errorf("score player %d: %w", player.ID, err)
		}
		if err := s.storage.SaveScore(ctx, score); err != nil {
			return fmt.Errorf("save score for player %d: %w", player.ID, err)
		}
	}

	s.logger.Debug("recomputed scores", slog.Int("players", len(players)))
	return nil
}

// SetBonusPoints assigns facilitator bonus points to a player. The stored
// total is untouched until the next recomputation.
func (s *Service) SetBonusPoints(ctx context.Context, playerID model.PlayerID, points int) error {
	return s.storage.SetBonusPoints(ctx, playerID, points)
}

func (s *Service) computeScore(ctx context.Context, playerID model.PlayerID, statements []*model.Statement) (*model.Score, error) {
	guessPoints, err := s.guessPoints(ctx, playerID, statements)
	if err != nil {
		return nil, err
	}
	trickPoints, err := s.trickPoints(ctx, playerID, statements)
	if err != nil {
		return nil, err
	}

	bonusPoints := 0
	prior, err := s.storage.GetScore(ctx, playerID)
	if err != nil && !errors.Is(err, model.ErrScoreNotFound) {
		return nil, err
	}
	if prior != nil {
		bonusPoints = prior.BonusPoints
	}

	return &model.Score{
		PlayerID:    playerID,
		GuessPoints: guessPoints,
		TrickPoints: trickPoints,
		BonusPoints: bonusPoints,
		Total:       guessPoints + trickPoints + bonusPoints,
	}, nil
}

// guessPoints counts statements where the player's recorded guess matches
// the answer. A statement with no guess contributes nothing either way.
// A player's guess on their own statement counts like any other.
func (s *Service) guessPoints(ctx context.Context, playerID model.PlayerID, statements []*model.Statement) (int, error) {
	guesses, err := s.storage.ListGuessesByPlayer(ctx, playerID)
	if err != nil {
		return 0, err
	}

	byStatement := make(map[model.StatementID]bool, len(guesses))
	for _, guess := range guesses {
		byStatement[guess.StatementID] = guess.Value
	}

	points := 0
	for _, statement := range statements {
		if value, ok := byStatement[statement.ID]; ok && value == statement.Answer {
			points++
		}
	}
	return points, nil
}

// trickPoints counts, across the player's authored statements, every
// recorded guess that got the answer wrong.
func (s *Service) trickPoints(ctx context.Context, playerID model.PlayerID, statements []*model.Statement) (int, error) {
	points := 0
	for _, statement := range statements {
		if statement.OwnerID != playerID {
			continue
		}
		guesses, err := s.storage.ListGuessesForStatement(ctx, statement.ID)
		if err != nil {
			return 0, err
		}
		for _, guess := range guesses {
			if guess.Value != statement.Answer {
				points++
			}
		}
	}
	return points, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	RecomputeScores(ctx context.Context) error
	SetBonusPoints(ctx context.Context, playerID model.PlayerID, points int) error
}

var _ ServiceInterface = (*Service)(nil)
