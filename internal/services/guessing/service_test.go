package guessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/trickery-game/trickery/internal/model"
	"github.com/trickery-game/trickery/internal/storage/memory"
	"github.com/trickery-game/trickery/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context

	players    []model.PlayerID
	statements []model.StatementID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
	s.players = nil
	s.statements = nil

	for _, seed := range []struct {
		name   string
		text   string
		answer bool
	}{
		{"Alice Baker", "I once met a llama", true},
		{"Bob Cole", "I have never eaten pizza", false},
		{"Carol Diaz", "I can juggle five balls", true},
	} {
		playerID, err := s.storage.UpsertPlayer(s.ctx, seed.name)
		s.Require().NoError(err)
		statementID, err := s.storage.UpsertStatement(s.ctx, playerID, seed.text, seed.answer)
		s.Require().NoError(err)
		s.players = append(s.players, playerID)
		s.statements = append(s.statements, statementID)
	}
}

// ParseGuesses tests

func TestParseGuesses(t *testing.T) {
	values, err := ParseGuesses("101")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []bool{true, false, true}
	for i, v := range want {
		if values[i] != v {
			t.Errorf("values[%d] = %v, want %v", i, values[i], v)
		}
	}
}

func TestParseGuessesInvalidToken(t *testing.T) {
	for _, input := range []string{"10x", "1 0", "tf1", "12"} {
		if _, err := ParseGuesses(input); err == nil {
			t.Errorf("ParseGuesses(%q) expected error", input)
		}
	}
}

func TestParseGuessesEmpty(t *testing.T) {
	values, err := ParseGuesses("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("expected empty result, got %v", values)
	}
}

// SubmitGuesses tests

func (s *ServiceSuite) TestSubmitGuessesPositionalMapping() {
	err := s.service.SubmitGuesses(s.ctx, s.players[0], []bool{true, false, true})
	s.Require().NoError(err)

	// Guess i must land on the i-th statement in the fixed ordering
	for i, want := range []bool{true, false, true} {
		guess, err := s.storage.GetGuess(s.ctx, s.players[0], s.statements[i])
		s.Require().NoError(err)
		s.Equal(want, guess.Value)
	}
}

func (s *ServiceSuite) TestSubmitGuessesReplacesPriorSet() {
	s.Require().NoError(s.service.SubmitGuesses(s.ctx, s.players[0], []bool{true, true, true}))
	s.Require().NoError(s.service.SubmitGuesses(s.ctx, s.players[0], []bool{false, false, false}))

	guesses, err := s.storage.ListGuessesByPlayer(s.ctx, s.players[0])
	s.Require().NoError(err)
	s.Require().Len(guesses, 3)
	for _, guess := range guesses {
		s.False(guess.Value)
	}
}

func (s *ServiceSuite) TestSubmitGuessesWrongLengthNoMutation() {
	s.Require().NoError(s.service.SubmitGuesses(s.ctx, s.players[0], []bool{true, true, true}))

	err := s.service.SubmitGuesses(s.ctx, s.players[0], []bool{true})
	s.ErrorIs(err, model.ErrGuessCountMismatch)

	// Prior guesses survive the failed submission
	count, err := s.storage.CountGuessesByPlayer(s.ctx, s.players[0])
	s.Require().NoError(err)
	s.Equal(3, count)
}

func (s *ServiceSuite) TestSubmitGuessesUnknownPlayer() {
	err := s.service.SubmitGuesses(s.ctx, 99, []bool{true, true, true})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// PlayerStatuses tests

func (s *ServiceSuite) TestPlayerStatuses() {
	s.Require().NoError(s.service.SubmitGuesses(s.ctx, s.players[0], []bool{true, false, true}))
	s.Require().NoError(s.storage.ReplaceGuesses(s.ctx, s.players[1], []model.Guess{
		{StatementID: s.statements[0], Value: true},
	}))

	statuses, err := s.service.PlayerStatuses(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(statuses, 3)

	s.Equal(StatusAll, statuses[0].Submitted)
	s.Equal("1", statuses[1].Submitted)
	s.Equal(StatusNone, statuses[2].Submitted)
	s.Equal("Alice Baker", statuses[0].Name)
}
