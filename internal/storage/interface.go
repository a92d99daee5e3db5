package storage

import (
	"context"

	"github.com/trickery-game/trickery/internal/model"
)

// Storage defines the interface for data persistence.
//
// All list operations return rows ordered by ascending ID; for statements
// this is the fixed ordering that positional guess submission depends on.
type Storage interface {
	// Player operations
	// UpsertPlayer returns the existing ID if the name is already present,
	// otherwise creates the player and returns the new ID.
	UpsertPlayer(ctx context.Context, name string) (model.PlayerID, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByName(ctx context.Context, name string) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Statement operations
	// UpsertStatement is idempotent on statement text: a duplicate insert
	// returns the existing ID and leaves the stored owner/answer untouched.
	UpsertStatement(ctx context.Context, ownerID model.PlayerID, text string, answer bool) (model.StatementID, error)
	GetStatement(ctx context.Context, id model.StatementID) (*model.Statement, error)
	ListStatements(ctx context.Context) ([]*model.Statement, error)
	ListStatementsByOwner(ctx context.Context, ownerID model.PlayerID) ([]*model.Statement, error)
	CountStatements(ctx context.Context) (int, error)

	// Guess operations
	// ReplaceGuesses atomically deletes every prior guess by the guesser and
	// inserts the given set.
	ReplaceGuesses(ctx context.Context, guesserID model.PlayerID, guesses []model.Guess) error
	GetGuess(ctx context.Context, guesserID model.PlayerID, statementID model.StatementID) (*model.Guess, error)
	ListGuessesByPlayer(ctx context.Context, guesserID model.PlayerID) ([]*model.Guess, error)
	ListGuessesForStatement(ctx context.Context, statementID model.StatementID) ([]*model.Guess, error)
	CountGuessesByPlayer(ctx context.Context, guesserID model.PlayerID) (int, error)

	// Score operations
	// InitScore creates a zeroed score row if none exists for the player.
	InitScore(ctx context.Context, playerID model.PlayerID) error
	GetScore(ctx context.Context, playerID model.PlayerID) (*model.Score, error)
	SaveScore(ctx context.Context, score *model.Score) error
	// SetBonusPoints updates only the bonus field, leaving the computed
	// fields untouched until the next recomputation.
	SetBonusPoints(ctx context.Context, playerID model.PlayerID, points int) error
}
