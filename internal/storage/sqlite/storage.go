// Package sqlite provides a SQLite-backed implementation of the storage
// interface, suitable for keeping a game session on disk between runs.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/trickery-game/trickery/internal/model"
	"github.com/trickery-game/trickery/internal/storage"
	"github.com/trickery-game/trickery/internal/storage/sqlite/migrations"
)

// Storage persists game state in a SQLite database file.
type Storage struct {
	sqlDB *sql.DB
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Open opens a SQLite store at path and applies embedded migrations.
func Open(path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Storage{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Storage) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Player operations

func (s *Storage) UpsertPlayer(ctx context.Context, name string) (model.PlayerID, error) {
	_, err := s.sqlDB.ExecContext(
		ctx,
		"INSERT OR IGNORE INTO players (name, created_at) VALUES (?, ?)",
		name,
		toMillis(time.Now()),
	)
	if err != nil {
		return 0, fmt.Errorf("insert player: %w", err)
	}

	var id int64
	row := s.sqlDB.QueryRowContext(ctx, "SELECT id FROM players WHERE name = ?", name)
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("select player id: %w", err)
	}
	return model.PlayerID(id), nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		"SELECT id, name, created_at FROM players WHERE id = ?",
		int64(id),
	)
	return scanPlayer(row)
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		"SELECT id, name, created_at FROM players WHERE name = ?",
		name,
	)
	return scanPlayer(row)
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		"SELECT id, name, created_at FROM players ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []*model.Player
	for rows.Next() {
		var (
			id        int64
			name      string
			createdAt int64
		)
		if err := rows.Scan(&id, &name, &createdAt); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, &model.Player{
			ID:        model.PlayerID(id),
			Name:      name,
			CreatedAt: fromMillis(createdAt),
		})
	}
	return players, rows.Err()
}

func scanPlayer(row *sql.Row) (*model.Player, error) {
	var (
		id        int64
		name      string
		createdAt int64
	)
	if err := row.Scan(&id, &name, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("scan player: %w", err)
	}
	return &model.Player{
		ID:        model.PlayerID(id),
		Name:      name,
		CreatedAt: fromMillis(createdAt),
	}, nil
}

// Statement operations

func (s *Storage) UpsertStatement(ctx context.Context, ownerID model.PlayerID, text string, answer bool) (model.StatementID, error) {
	var exists int
	row := s.sqlDB.QueryRowContext(ctx, "SELECT 1 FROM players WHERE id = ?", int64(ownerID))
	if err := row.Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, model.ErrPlayerNotFound
		}
		return 0, fmt.Errorf("check statement owner: %w", err)
	}

	answerInt := 0
	if answer {
		answerInt = 1
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		"INSERT OR IGNORE INTO statements (owner_id, text, answer, created_at) VALUES (?, ?, ?, ?)",
		int64(ownerID),
		text,
		answerInt,
		toMillis(time.Now()),
	)
	if err != nil {
		return 0, fmt.Errorf("insert statement: %w", err)
	}

	var id int64
	row = s.sqlDB.QueryRowContext(ctx, "SELECT id FROM statements WHERE text = ?", text)
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("select statement id: %w", err)
	}
	return model.StatementID(id), nil
}

func (s *Storage) GetStatement(ctx context.Context, id model.StatementID) (*model.Statement, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		"SELECT id, owner_id, text, answer, created_at FROM statements WHERE id = ?",
		int64(id),
	)
	var (
		stmtID    int64
		ownerID   int64
		text      string
		answer    int
		createdAt int64
	)
	if err := row.Scan(&stmtID, &ownerID, &text, &answer, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrStatementNotFound
		}
		return nil, fmt.Errorf("scan statement: %w", err)
	}
	return &model.Statement{
		ID:        model.StatementID(stmtID),
		OwnerID:   model.PlayerID(ownerID),
		Text:      text,
		Answer:    answer != 0,
		CreatedAt: fromMillis(createdAt),
	}, nil
}

func (s *Storage) ListStatements(ctx context.Context) ([]*model.Statement, error) {
	return s.queryStatements(
		ctx,
		"SELECT id, owner_id, text, answer, created_at FROM statements ORDER BY id",
	)
}

func (s *Storage) ListStatementsByOwner(ctx context.Context, ownerID model.PlayerID) ([]*model.Statement, error) {
	return s.queryStatements(
		ctx,
		"SELECT id, owner_id, text, answer, created_at FROM statements WHERE owner_id = ? ORDER BY id",
		int64(ownerID),
	)
}

func (s *Storage) queryStatements(ctx context.Context, query string, args ...any) ([]*model.Statement, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list statements: %w", err)
	}
	defer rows.Close()

	var statements []*model.Statement
	for rows.Next() {
		var (
			id        int64
			ownerID   int64
			text      string
			answer    int
			createdAt int64
		)
		if err := rows.Scan(&id, &ownerID, &text, &answer, &createdAt); err != nil {
			return nil, fmt.Errorf("scan statement: %w", err)
		}
		statements = append(statements, &model.Statement{
			ID:        model.StatementID(id),
			OwnerID:   model.PlayerID(ownerID),
			Text:      text,
			Answer:    answer != 0,
			CreatedAt: fromMillis(createdAt),
		})
	}
	return statements, rows.Err()
}

func (s *Storage) CountStatements(ctx context.Context) (int, error) {
	var count int
	row := s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM statements")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count statements: %w", err)
	}
	return count, nil
}

// Guess operations

func (s *Storage) ReplaceGuesses(ctx context.Context, guesserID model.PlayerID, guesses []model.Guess) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin guess replacement: %w", err)
	}

	if _, err := tx.ExecContext(
		ctx,
		"DELETE FROM guesses WHERE guesser_id = ?",
		int64(guesserID),
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear guesses: %w", err)
	}

	for _, guess := range guesses {
		valueInt := 0
		if guess.Value {
			valueInt = 1
		}
		if _, err := tx.ExecContext(
			ctx,
			"INSERT INTO guesses (guesser_id, statement_id, value) VALUES (?, ?, ?)",
			int64(guesserID),
			int64(guess.StatementID),
			valueInt,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert guess: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit guess replacement: %w", err)
	}
	return nil
}

func (s *Storage) GetGuess(ctx context.Context, guesserID model.PlayerID, statementID model.StatementID) (*model.Guess, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		"SELECT guesser_id, statement_id, value FROM guesses WHERE guesser_id = ? AND statement_id = ?",
		int64(guesserID),
		int64(statementID),
	)
	var (
		gID   int64
		sID   int64
		value int
	)
	if err := row.Scan(&gID, &sID, &value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGuessNotFound
		}
		return nil, fmt.Errorf("scan guess: %w", err)
	}
	return &model.Guess{
		GuesserID:   model.PlayerID(gID),
		StatementID: model.StatementID(sID),
		Value:       value != 0,
	}, nil
}

func (s *Storage) ListGuessesByPlayer(ctx context.Context, guesserID model.PlayerID) ([]*model.Guess, error) {
	return s.queryGuesses(
		ctx,
		"SELECT guesser_id, statement_id, value FROM guesses WHERE guesser_id = ? ORDER BY statement_id",
		int64(guesserID),
	)
}

func (s *Storage) ListGuessesForStatement(ctx context.Context, statementID model.StatementID) ([]*model.Guess, error) {
	return s.queryGuesses(
		ctx,
		"SELECT guesser_id, statement_id, value FROM guesses WHERE statement_id = ? ORDER BY guesser_id",
		int64(statementID),
	)
}

func (s *Storage) queryGuesses(ctx context.Context, query string, args ...any) ([]*model.Guess, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list guesses: %w", err)
	}
	defer rows.Close()

	var guesses []*model.Guess
	for rows.Next() {
		var (
			gID   int64
			sID   int64
			value int
		)
		if err := rows.Scan(&gID, &sID, &value); err != nil {
			return nil, fmt.Errorf("scan guess: %w", err)
		}
		guesses = append(guesses, &model.Guess{
			GuesserID:   model.PlayerID(gID),
			StatementID: model.StatementID(sID),
			Value:       value != 0,
		})
	}
	return guesses, rows.Err()
}

func (s *Storage) CountGuessesByPlayer(ctx context.Context, guesserID model.PlayerID) (int, error) {
	var count int
	row := s.sqlDB.QueryRowContext(
		ctx,
		"SELECT COUNT(*) FROM guesses WHERE guesser_id = ?",
		int64(guesserID),
	)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count guesses: %w", err)
	}
	return count, nil
}

// Score operations

func (s *Storage) InitScore(ctx context.Context, playerID model.PlayerID) error {
	if _, err := s.sqlDB.ExecContext(
		ctx,
		"INSERT OR IGNORE INTO scores (player_id) VALUES (?)",
		int64(playerID),
	); err != nil {
		return fmt.Errorf("init score: %w", err)
	}
	return nil
}

func (s *Storage) GetScore(ctx context.Context, playerID model.PlayerID) (*model.Score, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		"SELECT player_id, guess_points, trick_points, bonus_points, total FROM scores WHERE player_id = ?",
		int64(playerID),
	)
	var score model.Score
	var id int64
	if err := row.Scan(&id, &score.GuessPoints, &score.TrickPoints, &score.BonusPoints, &score.Total); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrScoreNotFound
		}
		return nil, fmt.Errorf("scan score: %w", err)
	}
	score.PlayerID = model.PlayerID(id)
	return &score, nil
}

func (s *Storage) SaveScore(ctx context.Context, score *model.Score) error {
	if _, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO scores (player_id, guess_points, trick_points, bonus_points, total)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (player_id) DO UPDATE SET
		   guess_points = excluded.guess_points,
		   trick_points = excluded.trick_points,
		   bonus_points = excluded.bonus_points,
		   total = excluded.total`,
		int64(score.PlayerID),
		score.GuessPoints,
		score.TrickPoints,
		score.BonusPoints,
		score.Total,
	); err != nil {
		return fmt.Errorf("save score: %w", err)
	}
	return nil
}

func (s *Storage) SetBonusPoints(ctx context.Context, playerID model.PlayerID, points int) error {
	result, err := s.sqlDB.ExecContext(
		ctx,
		"UPDATE scores SET bonus_points = ? WHERE player_id = ?",
		points,
		int64(playerID),
	)
	if err != nil {
		return fmt.Errorf("set bonus points: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set bonus points: %w", err)
	}
	if affected == 0 {
		return model.ErrScoreNotFound
	}
	return nil
}
