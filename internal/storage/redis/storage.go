package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trickery-game/trickery/internal/model"
	"github.com/trickery-game/trickery/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Rows are stored as JSON values; listings go through index SETs and are
// sorted by ID client-side, which is fine at party-game data volumes.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) UpsertPlayer(ctx context.Context, name string) (model.PlayerID, error) {
	existing, err := s.client.Get(ctx, playerNameIndexKey(name)).Result()
	if err == nil {
		id, parseErr := strconv.ParseInt(existing, 10, 64)
		if parseErr != nil {
			return 0, parseErr
		}
		return model.PlayerID(id), nil
	}
	if !errors.Is(err, redis.Nil) {
		return 0, err
	}

	next, err := s.client.Incr(ctx, nextPlayerIDKey()).Result()
	if err != nil {
		return 0, err
	}
	id := model.PlayerID(next)

	player := &model.Player{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(player)
	if err != nil {
		return 0, err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, playerKey(id), data, 0)
	pipe.Set(ctx, playerNameIndexKey(name), strconv.FormatInt(next, 10), 0)
	pipe.SAdd(ctx, playersIndexKey(), next)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	idStr, err := s.client.Get(ctx, playerNameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, err
	}
	return s.GetPlayer(ctx, model.PlayerID(id))
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	ids, err := s.sortedIndexIDs(ctx, playersIndexKey())
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(ids))
	for _, id := range ids {
		player, err := s.GetPlayer(ctx, model.PlayerID(id))
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, nil
}

// Statement operations

func (s *Storage) UpsertStatement(ctx context.Context, ownerID model.PlayerID, text string, answer bool) (model.StatementID, error) {
	exists, err := s.client.Exists(ctx, playerKey(ownerID)).Result()
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, model.ErrPlayerNotFound
	}

	existing, err := s.client.Get(ctx, statementTextIndexKey(text)).Result()
	if err == nil {
		id, parseErr := strconv.ParseInt(existing, 10, 64)
		if parseErr != nil {
			return 0, parseErr
		}
		return model.StatementID(id), nil
	}
	if !errors.Is(err, redis.Nil) {
		return 0, err
	}

	next, err := s.client.Incr(ctx, nextStatementIDKey()).Result()
	if err != nil {
		return 0, err
	}
	id := model.StatementID(next)

	statement := &model.Statement{
		ID:        id,
		OwnerID:   ownerID,
		Text:      text,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(statement)
	if err != nil {
		return 0, err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, statementKey(id), data, 0)
	pipe.Set(ctx, statementTextIndexKey(text), strconv.FormatInt(next, 10), 0)
	pipe.SAdd(ctx, statementsIndexKey(), next)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Storage) GetStatement(ctx context.Context, id model.StatementID) (*model.Statement, error) {
	data, err := s.client.Get(ctx, statementKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrStatementNotFound
		}
		return nil, err
	}

	var statement model.Statement
	if err := json.Unmarshal(data, &statement); err != nil {
		return nil, err
	}
	return &statement, nil
}

func (s *Storage) ListStatements(ctx context.Context) ([]*model.Statement, error) {
	ids, err := s.sortedIndexIDs(ctx, statementsIndexKey())
	if err != nil {
		return nil, err
	}

	statements := make([]*model.Statement, 0, len(ids))
	for _, id := range ids {
		statement, err := s.GetStatement(ctx, model.StatementID(id))
		if err != nil {
			return nil, err
		}
		statements = append(statements, statement)
	}
	return statements, nil
}

func (s *Storage) ListStatementsByOwner(ctx context.Context, ownerID model.PlayerID) ([]*model.Statement, error) {
	all, err := s.ListStatements(ctx)
	if err != nil {
		return nil, err
	}

	var statements []*model.Statement
	for _, statement := range all {
		if statement.OwnerID == ownerID {
			statements = append(statements, statement)
		}
	}
	return statements, nil
}

func (s *Storage) CountStatements(ctx context.Context) (int, error) {
	count, err := s.client.SCard(ctx, statementsIndexKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Guess operations

func (s *Storage) ReplaceGuesses(ctx context.Context, guesserID model.PlayerID, guesses []model.Guess) error {
	priorIDs, err := s.sortedIndexIDs(ctx, guessesByPlayerIndexKey(guesserID))
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	for _, statementID := range priorIDs {
		pipe.Del(ctx, guessKey(guesserID, model.StatementID(statementID)))
		pipe.SRem(ctx, guessesForStatementIndexKey(model.StatementID(statementID)), int64(guesserID))
	}
	pipe.Del(ctx, guessesByPlayerIndexKey(guesserID))

	for _, guess := range guesses {
		guess := guess
		guess.GuesserID = guesserID
		data, err := json.Marshal(&guess)
		if err != nil {
			return err
		}
		pipe.Set(ctx, guessKey(guesserID, guess.StatementID), data, 0)
		pipe.SAdd(ctx, guessesByPlayerIndexKey(guesserID), int64(guess.StatementID))
		pipe.SAdd(ctx, guessesForStatementIndexKey(guess.StatementID), int64(guesserID))
	}

	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGuess(ctx context.Context, guesserID model.PlayerID, statementID model.StatementID) (*model.Guess, error) {
	data, err := s.client.Get(ctx, guessKey(guesserID, statementID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGuessNotFound
		}
		return nil, err
	}

	var guess model.Guess
	if err := json.Unmarshal(data, &guess); err != nil {
		return nil, err
	}
	return &guess, nil
}

func (s *Storage) ListGuessesByPlayer(ctx context.Context, guesserID model.PlayerID) ([]*model.Guess, error) {
	statementIDs, err := s.sortedIndexIDs(ctx, guessesByPlayerIndexKey(guesserID))
	if err != nil {
		return nil, err
	}

	guesses := make([]*model.Guess, 0, len(statementIDs))
	for _, statementID := range statementIDs {
		guess, err := s.GetGuess(ctx, guesserID, model.StatementID(statementID))
		if err != nil {
			return nil, err
		}
		guesses = append(guesses, guess)
	}
	return guesses, nil
}

func (s *Storage) ListGuessesForStatement(ctx context.Context, statementID model.StatementID) ([]*model.Guess, error) {
	guesserIDs, err := s.sortedIndexIDs(ctx, guessesForStatementIndexKey(statementID))
	if err != nil {
		return nil, err
	}

	guesses := make([]*model.Guess, 0, len(guesserIDs))
	for _, guesserID := range guesserIDs {
		guess, err := s.GetGuess(ctx, model.PlayerID(guesserID), statementID)
		if err != nil {
			return nil, err
		}
		guesses = append(guesses, guess)
	}
	return guesses, nil
}

func (s *Storage) CountGuessesByPlayer(ctx context.Context, guesserID model.PlayerID) (int, error) {
	count, err := s.client.SCard(ctx, guessesByPlayerIndexKey(guesserID)).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Score operations

func (s *Storage) InitScore(ctx context.Context, playerID model.PlayerID) error {
	data, err := json.Marshal(&model.Score{PlayerID: playerID})
	if err != nil {
		return err
	}
	return s.client.SetNX(ctx, scoreKey(playerID), data, 0).Err()
}

func (s *Storage) GetScore(ctx context.Context, playerID model.PlayerID) (*model.Score, error) {
	data, err := s.client.Get(ctx, scoreKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrScoreNotFound
		}
		return nil, err
	}

	var score model.Score
	if err := json.Unmarshal(data, &score); err != nil {
		return nil, err
	}
	return &score, nil
}

func (s *Storage) SaveScore(ctx context.Context, score *model.Score) error {
	data, err := json.Marshal(score)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, scoreKey(score.PlayerID), data, 0).Err()
}

func (s *Storage) SetBonusPoints(ctx context.Context, playerID model.PlayerID, points int) error {
	score, err := s.GetScore(ctx, playerID)
	if err != nil {
		return err
	}
	score.BonusPoints = points
	return s.SaveScore(ctx, score)
}

// sortedIndexIDs returns the members of an index SET as ascending int64 IDs
func (s *Storage) sortedIndexIDs(ctx context.Context, key string) ([]int64, error) {
	members, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
