package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/trickery-game/trickery/internal/dependencies/clock"
	"github.com/trickery-game/trickery/internal/model"
	"github.com/trickery-game/trickery/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	clock clock.Clock

	nextPlayerID    model.PlayerID
	nextStatementID model.StatementID

	players    map[model.PlayerID]*model.Player
	nameIndex  map[string]model.PlayerID
	statements map[model.StatementID]*model.Statement
	textIndex  map[string]model.StatementID
	guesses    map[guessKey]*model.Guess
	scores     map[model.PlayerID]*model.Score
}

type guessKey struct {
	guesserID   model.PlayerID
	statementID model.StatementID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return NewWithClock(clock.New())
}

// NewWithClock creates an in-memory storage with an injected clock, for
// deterministic creation timestamps in tests
func NewWithClock(clk clock.Clock) *Storage {
	return &Storage{
		clock:      clk,
		players:    make(map[model.PlayerID]*model.Player),
		nameIndex:  make(map[string]model.PlayerID),
		statements: make(map[model.StatementID]*model.Statement),
		textIndex:  make(map[string]model.StatementID),
		guesses:    make(map[guessKey]*model.Guess),
		scores:     make(map[model.PlayerID]*model.Score),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) UpsertPlayer(ctx context.Context, name string) (model.PlayerID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.nameIndex[name]; ok {
		return id, nil
	}
	s.nextPlayerID++
	id := s.nextPlayerID
	s.players[id] = &model.Player{
		ID:        id,
		Name:      name,
		CreatedAt: s.clock.Now().UTC(),
	}
	s.nameIndex[name] = id
	return id, nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return clonePlayer(player), nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.nameIndex[name]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return clonePlayer(s.players[id]), nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, player := range s.players {
		players = append(players, clonePlayer(player))
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].ID < players[j].ID
	})
	return players, nil
}

// Statement operations

func (s *Storage) UpsertStatement(ctx context.Context, ownerID model.PlayerID, text string, answer bool) (model.StatementID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[ownerID]; !ok {
		return 0, model.ErrPlayerNotFound
	}
	// First writer wins for a duplicate statement text
	if id, ok := s.textIndex[text]; ok {
		return id, nil
	}
	s.nextStatementID++
	id := s.nextStatementID
	s.statements[id] = &model.Statement{
		ID:        id,
		OwnerID:   ownerID,
		Text:      text,
		Answer:    answer,
		CreatedAt: s.clock.Now().UTC(),
	}
	s.textIndex[text] = id
	return id, nil
}

func (s *Storage) GetStatement(ctx context.Context, id model.StatementID) (*model.Statement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	statement, ok := s.statements[id]
	if !ok {
		return nil, model.ErrStatementNotFound
	}
	return cloneStatement(statement), nil
}

func (s *Storage) ListStatements(ctx context.Context) ([]*model.Statement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	statements := make([]*model.Statement, 0, len(s.statements))
	for _, statement := range s.statements {
		statements = append(statements, cloneStatement(statement))
	}
	sortStatements(statements)
	return statements, nil
}

func (s *Storage) ListStatementsByOwner(ctx context.Context, ownerID model.PlayerID) ([]*model.Statement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var statements []*model.Statement
	for _, statement := range s.statements {
		if statement.OwnerID == ownerID {
			statements = append(statements, cloneStatement(statement))
		}
	}
	sortStatements(statements)
	return statements, nil
}

func (s *Storage) CountStatements(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.statements), nil
}

// Guess operations

func (s *Storage) ReplaceGuesses(ctx context.Context, guesserID model.PlayerID, guesses []model.Guess) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.guesses {
		if key.guesserID == guesserID {
			delete(s.guesses, key)
		}
	}
	for _, guess := range guesses {
		guess := guess
		guess.GuesserID = guesserID
		key := guessKey{guesserID: guesserID, statementID: guess.StatementID}
		s.guesses[key] = &guess
	}
	return nil
}

func (s *Storage) GetGuess(ctx context.Context, guesserID model.PlayerID, statementID model.StatementID) (*model.Guess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	guess, ok := s.guesses[guessKey{guesserID: guesserID, statementID: statementID}]
	if !ok {
		return nil, model.ErrGuessNotFound
	}
	cloned := *guess
	return &cloned, nil
}

func (s *Storage) ListGuessesByPlayer(ctx context.Context, guesserID model.PlayerID) ([]*model.Guess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var guesses []*model.Guess
	for key, guess := range s.guesses {
		if key.guesserID == guesserID {
			cloned := *guess
			guesses = append(guesses, &cloned)
		}
	}
	sortGuesses(guesses)
	return guesses, nil
}

func (s *Storage) ListGuessesForStatement(ctx context.Context, statementID model.StatementID) ([]*model.Guess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var guesses []*model.Guess
	for key, guess := range s.guesses {
		if key.statementID == statementID {
			cloned := *guess
			guesses = append(guesses, &cloned)
		}
	}
	sort.Slice(guesses, func(i, j int) bool {
		return guesses[i].GuesserID < guesses[j].GuesserID
	})
	return guesses, nil
}

func (s *Storage) CountGuessesByPlayer(ctx context.Context, guesserID model.PlayerID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for key := range s.guesses {
		if key.guesserID == guesserID {
			count++
		}
	}
	return count, nil
}

// Score operations

func (s *Storage) InitScore(ctx context.Context, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.scores[playerID]; ok {
		return nil
	}
	s.scores[playerID] = &model.Score{PlayerID: playerID}
	return nil
}

func (s *Storage) GetScore(ctx context.Context, playerID model.PlayerID) (*model.Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	score, ok := s.scores[playerID]
	if !ok {
		return nil, model.ErrScoreNotFound
	}
	cloned := *score
	return &cloned, nil
}

func (s *Storage) SaveScore(ctx context.Context, score *model.Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cloned := *score
	s.scores[score.PlayerID] = &cloned
	return nil
}

func (s *Storage) SetBonusPoints(ctx context.Context, playerID model.PlayerID, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	score, ok := s.scores[playerID]
	if !ok {
		return model.ErrScoreNotFound
	}
	score.BonusPoints = points
	return nil
}

func clonePlayer(p *model.Player) *model.Player {
	cloned := *p
	return &cloned
}

func cloneStatement(st *model.Statement) *model.Statement {
	cloned := *st
	return &cloned
}

func sortStatements(statements []*model.Statement) {
	sort.Slice(statements, func(i, j int) bool {
		return statements[i].ID < statements[j].ID
	})
}

func sortGuesses(guesses []*model.Guess) {
	sort.Slice(guesses, func(i, j int) bool {
		return guesses[i].StatementID < guesses[j].StatementID
	})
}
