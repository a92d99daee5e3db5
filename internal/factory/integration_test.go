package factory

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/trickery-game/trickery/internal/model"
	"github.com/trickery-game/trickery/internal/services/guessing"
)

const gameCSV = `Alice Baker,I once met a llama,TRUE
Bob Cole,I have never eaten pizza,FALSE
Carol Diaz,I can juggle five balls,TRUE
`

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) playerID(name string) model.PlayerID {
	player, err := s.app.Storage.GetPlayerByName(s.ctx, name)
	s.Require().NoError(err)
	return player.ID
}

// Test: complete game flow from seeding to written reports
func (s *IntegrationSuite) TestCompleteGameFlow() {
	// Step 1: Seed the game
	result, err := s.app.SeedingService.SeedFromReader(s.ctx, strings.NewReader(gameCSV))
	s.Require().NoError(err)
	s.Equal(3, result.Players)
	s.Equal(3, result.Statements)

	alice := s.playerID("Alice Baker")
	bob := s.playerID("Bob Cole")
	carol := s.playerID("Carol Diaz")

	// Step 2: Everyone submits guesses
	values, err := guessing.ParseGuesses("101")
	s.Require().NoError(err)
	s.Require().NoError(s.app.GuessingService.SubmitGuesses(s.ctx, alice, values))
	s.Require().NoError(s.app.GuessingService.SubmitGuesses(s.ctx, bob, []bool{false, false, false}))
	s.Require().NoError(s.app.GuessingService.SubmitGuesses(s.ctx, carol, []bool{true, true, true}))

	statuses, err := s.app.GuessingService.PlayerStatuses(s.ctx)
	s.Require().NoError(err)
	for _, status := range statuses {
		s.Equal(guessing.StatusAll, status.Submitted)
	}

	// Step 3: Facilitator awards a bonus
	s.Require().NoError(s.app.ScoringService.SetBonusPoints(s.ctx, carol, 2))

	// Step 4: Compute scores
	s.Require().NoError(s.app.ScoringService.RecomputeScores(s.ctx))

	// Alice guessed all three right; Bob got Alice's and Carol's wrong,
	// Carol got Bob's wrong. Each author tricked exactly one guesser.
	aliceScore, err := s.app.Storage.GetScore(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(3, aliceScore.GuessPoints)
	s.Equal(1, aliceScore.TrickPoints)
	s.Equal(4, aliceScore.Total)

	bobScore, err := s.app.Storage.GetScore(s.ctx, bob)
	s.Require().NoError(err)
	s.Equal(1, bobScore.GuessPoints)
	s.Equal(1, bobScore.TrickPoints)
	s.Equal(2, bobScore.Total)

	carolScore, err := s.app.Storage.GetScore(s.ctx, carol)
	s.Require().NoError(err)
	s.Equal(2, carolScore.GuessPoints)
	s.Equal(1, carolScore.TrickPoints)
	s.Equal(2, carolScore.BonusPoints)
	s.Equal(5, carolScore.Total)

	// Step 5: Write the reports
	dir := s.T().TempDir()
	s.Require().NoError(s.app.ReportGenerator.WriteAll(s.ctx, dir))

	summary, err := os.ReadFile(filepath.Join(dir, "scoresheet.txt"))
	s.Require().NoError(err)
	s.Contains(string(summary), "TOP SCORERS:")

	sheet, err := os.ReadFile(filepath.Join(dir, "alicebaker.txt"))
	s.Require().NoError(err)
	s.Contains(string(sheet), "Total score: 4")
}

// Test: resubmitted guesses and a reseed leave scores consistent
func (s *IntegrationSuite) TestReplayedFlowStaysConsistent() {
	_, err := s.app.SeedingService.SeedFromReader(s.ctx, strings.NewReader(gameCSV))
	s.Require().NoError(err)

	alice := s.playerID("Alice Baker")
	s.Require().NoError(s.app.GuessingService.SubmitGuesses(s.ctx, alice, []bool{false, true, false}))
	s.Require().NoError(s.app.ScoringService.RecomputeScores(s.ctx))

	score, err := s.app.Storage.GetScore(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(0, score.GuessPoints)

	// Alice changes her mind; reseeding must not disturb her new guesses
	s.Require().NoError(s.app.GuessingService.SubmitGuesses(s.ctx, alice, []bool{true, false, true}))
	_, err = s.app.SeedingService.SeedFromReader(s.ctx, strings.NewReader(gameCSV))
	s.Require().NoError(err)
	s.Require().NoError(s.app.ScoringService.RecomputeScores(s.ctx))

	score, err = s.app.Storage.GetScore(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(3, score.GuessPoints)
}

func (s *IntegrationSuite) TestNewRequiresBackendConfig() {
	_, err := New(Config{StorageType: StorageTypeRedis})
	s.Error(err)

	_, err = New(Config{StorageType: "postgres"})
	s.Error(err)

	app, err := New(Config{StorageType: StorageTypeMemory})
	s.Require().NoError(err)
	s.NoError(app.Close())
}
