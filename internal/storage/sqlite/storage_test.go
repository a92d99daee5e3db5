package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/trickery-game/trickery/internal/model"
)

type StorageSuite struct {
	suite.Suite
	path    string
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "trickery.db")
	store, err := Open(s.path)
	s.Require().NoError(err)
	s.storage = store
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) TestOpenIsIdempotent() {
	// Reopening an existing database must not fail or re-run migrations
	s.Require().NoError(s.storage.Close())

	store, err := Open(s.path)
	s.Require().NoError(err)
	s.storage = store

	_, err = s.storage.UpsertPlayer(s.ctx, "Alice Baker")
	s.Require().NoError(err)
}

func (s *StorageSuite) TestUpsertPlayerIdempotentOnName() {
	first, err := s.storage.UpsertPlayer(s.ctx, "Alice Baker")
	s.Require().NoError(err)
	second, err := s.storage.UpsertPlayer(s.ctx, "Alice Baker")
	s.Require().NoError(err)

	s.Equal(first, second)

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 1)
}

func (s *StorageSuite) TestPlayersSurviveReopen() {
	id, err := s.storage.UpsertPlayer(s.ctx, "Alice Baker")
	s.Require().NoError(err)
	s.Require().NoError(s.storage.Close())

	store, err := Open(s.path)
	s.Require().NoError(err)
	s.storage = store

	player, err := s.storage.GetPlayer(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("Alice Baker", player.Name)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, 99)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestUpsertStatementFirstWriterWins() {
	aliceID, err := s.storage.UpsertPlayer(s.ctx, "Alice Baker")
	s.Require().NoError(err)
	bobID, err := s.storage.UpsertPlayer(s.ctx, "Bob Cole")
	s.Require().NoError(err)

	first, err := s.storage.UpsertStatement(s.ctx, aliceID, "I once met a llama", true)
	s.Require().NoError(err)
	second, err := s.storage.UpsertStatement(s.ctx, bobID, "I once met a llama", false)
	s.Require().NoError(err)

	s.Equal(first, second)

	statement, err := s.storage.GetStatement(s.ctx, first)
	s.Require().NoError(err)
	s.Equal(aliceID, statement.OwnerID)
	s.True(statement.Answer)
}

func (s *StorageSuite) TestUpsertStatementUnknownOwner() {
	_, err := s.storage.UpsertStatement(s.ctx, 42, "I once met a llama", true)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListStatementsFixedOrdering() {
	ownerID, err := s.storage.UpsertPlayer(s.ctx, "Alice Baker")
	s.Require().NoError(err)

	texts := []string{"third one in", "first one in", "second one in"}
	var ids []model.StatementID
	for _, text := range texts {
		id, err := s.storage.UpsertStatement(s.ctx, ownerID, text, false)
		s.Require().NoError(err)
		ids = append(ids, id)
	}

	statements, err := s.storage.ListStatements(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(statements, 3)
	for i, statement := range statements {
		s.Equal(ids[i], statement.ID)
		s.Equal(texts[i], statement.Text)
	}

	count, err := s.storage.CountStatements(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, count)
}

func (s *StorageSuite) TestReplaceGuessesClearsPriorSet() {
	ownerID, err := s.storage.UpsertPlayer(s.ctx, "Alice Baker")
	s.Require().NoError(err)
	var ids []model.StatementID
	for _, text := range []string{"one", "two", "three"} {
		id, err := s.storage.UpsertStatement(s.ctx, ownerID, text, true)
		s.Require().NoError(err)
		ids = append(ids, id)
	}

	err = s.storage.ReplaceGuesses(s.ctx, ownerID, []model.Guess{
		{StatementID: ids[0], Value: true},
		{StatementID: ids[1], Value: true},
		{StatementID: ids[2], Value: true},
	})
	s.Require().NoError(err)

	err = s.storage.ReplaceGuesses(s.ctx, ownerID, []model.Guess{
		{StatementID: ids[1], Value: false},
	})
	s.Require().NoError(err)

	guesses, err := s.storage.ListGuessesByPlayer(s.ctx, ownerID)
	s.Require().NoError(err)
	s.Require().Len(guesses, 1)
	s.Equal(ids[1], guesses[0].StatementID)
	s.False(guesses[0].Value)

	count, err := s.storage.CountGuessesByPlayer(s.ctx, ownerID)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *StorageSuite) TestListGuessesForStatement() {
	aliceID, err := s.storage.UpsertPlayer(s.ctx, "Alice Baker")
	s.Require().NoError(err)
	bobID, err := s.storage.UpsertPlayer(s.ctx, "Bob Cole")
	s.Require().NoError(err)
	stmtID, err := s.storage.UpsertStatement(s.ctx, aliceID, "one", true)
	s.Require().NoError(err)

	err = s.storage.ReplaceGuesses(s.ctx, aliceID, []model.Guess{{StatementID: stmtID, Value: true}})
	s.Require().NoError(err)
	err = s.storage.ReplaceGuesses(s.ctx, bobID, []model.Guess{{StatementID: stmtID, Value: false}})
	s.Require().NoError(err)

	guesses, err := s.storage.ListGuessesForStatement(s.ctx, stmtID)
	s.Require().NoError(err)
	s.Require().Len(guesses, 2)
	s.Equal(aliceID, guesses[0].GuesserID)
	s.Equal(bobID, guesses[1].GuesserID)
}

func (s *StorageSuite) TestGetGuessNotFound() {
	_, err := s.storage.GetGuess(s.ctx, 1, 1)
	s.ErrorIs(err, model.ErrGuessNotFound)
}

func (s *StorageSuite) TestScoreLifecycle() {
	playerID, err := s.storage.UpsertPlayer(s.ctx, "Alice Baker")
	s.Require().NoError(err)

	s.Require().NoError(s.storage.InitScore(s.ctx, playerID))

	score, err := s.storage.GetScore(s.ctx, playerID)
	s.Require().NoError(err)
	s.Equal(&model.Score{PlayerID: playerID}, score)

	s.Require().NoError(s.storage.SetBonusPoints(s.ctx, playerID, 5))
	s.Require().NoError(s.storage.InitScore(s.ctx, playerID))

	score, err = s.storage.GetScore(s.ctx, playerID)
	s.Require().NoError(err)
	s.Equal(5, score.BonusPoints)

	s.Require().NoError(s.storage.SaveScore(s.ctx, &model.Score{
		PlayerID:    playerID,
		GuessPoints: 3,
		TrickPoints: 2,
		BonusPoints: 5,
		Total:       10,
	}))

	score, err = s.storage.GetScore(s.ctx, playerID)
	s.Require().NoError(err)
	s.Equal(10, score.Total)
}

func (s *StorageSuite) TestSetBonusPointsNoRow() {
	err := s.storage.SetBonusPoints(s.ctx, 9, 5)
	s.ErrorIs(err, model.ErrScoreNotFound)
}
