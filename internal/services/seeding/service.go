package seeding

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/trickery-game/trickery/internal/model"
	"github.com/trickery-game/trickery/internal/storage"
)

// Answer tokens accepted in seed input
const (
	AnswerTokenTrue  = "TRUE"
	AnswerTokenFalse = "FALSE"
)

// Result reports store totals after a seed run
type Result struct {
	Players    int
	Statements int
}

// Service loads the statement list that bootstraps a game session.
// Seeding is idempotent: running the same input twice leaves the store
// unchanged, so a facilitator can safely restart the program mid-game.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new seeding Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// SeedFromReader consumes CSV rows of (author_name, statement_text,
// answer_token) and upserts players, statements, and zeroed score rows.
// The answer token must be exactly TRUE or FALSE.
func (s *Service) SeedFromReader(ctx context.Context, r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rowNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("read seed row %d: %w", rowNum+1, err)
		}
		rowNum++

		if len(record) < 3 {
			return Result{}, fmt.Errorf("%w: row %d has %d fields, want 3", model.ErrMalformedSeedRow, rowNum, len(record))
		}

		name := strings.TrimSpace(record[0])
		text := strings.TrimSpace(record[1])
		token := strings.TrimSpace(record[2])
		if name == "" || text == "" {
			return Result{}, fmt.Errorf("%w: row %d has an empty field", model.ErrMalformedSeedRow, rowNum)
		}

		answer, err := parseAnswerToken(token)
		if err != nil {
			return Result{}, fmt.Errorf("row %d: %w", rowNum, err)
		}

		playerID, err := s.storage.UpsertPlayer(ctx, name)
		if err != nil {
			return Result{}, fmt.Errorf("upsert player %q: %w", name, err)
		}
		if _, err := s.storage.UpsertStatement(ctx, playerID, text, answer); err != nil {
			return Result{}, fmt.Errorf("upsert statement for %q: %w", name, err)
		}
		if err := s.storage.InitScore(ctx, playerID); err != nil {
			return Result{}, fmt.Errorf("init score for %q: %w", name, err)
		}
	}

	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return Result{}, err
	}
	statements, err := s.storage.CountStatements(ctx)
	if err != nil {
		return Result{}, err
	}

	result := Result{Players: len(players), Statements: statements}
	s.logger.Debug("seeded game data",
		slog.Int("rows", rowNum),
		slog.Int("players", result.Players),
		slog.Int("statements", result.Statements),
	)
	return result, nil
}

// SeedFile seeds from a CSV file on disk
func (s *Service) SeedFile(ctx context.Context, path string) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer file.Close()

	return s.SeedFromReader(ctx, file)
}

func parseAnswerToken(token string) (bool, error) {
	switch token {
	case AnswerTokenTrue:
		return true, nil
	case AnswerTokenFalse:
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", model.ErrInvalidAnswerToken, token)
	}
}

// Interface for dependency injection
type ServiceInterface interface {
	SeedFromReader(ctx context.Context, r io.Reader) (Result, error)
	SeedFile(ctx context.Context, path string) (Result, error)
}

var _ ServiceInterface = (*Service)(nil)
