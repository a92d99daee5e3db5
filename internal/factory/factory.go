package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/trickery-game/trickery/internal/services/guessing"
	"github.com/trickery-game/trickery/internal/services/report"
	"github.com/trickery-game/trickery/internal/services/scoring"
	"github.com/trickery-game/trickery/internal/services/seeding"
	"github.com/trickery-game/trickery/internal/storage"
	"github.com/trickery-game/trickery/internal/storage/memory"
	redisstorage "github.com/trickery-game/trickery/internal/storage/redis"
	"github.com/trickery-game/trickery/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeSQLite = "sqlite"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// Services
	SeedingService  *seeding.Service
	GuessingService *guessing.Service
	ScoringService  *scoring.Service
	ReportGenerator *report.Generator
}

// Config holds configuration for the application factory
type Config struct {
	// StorageType selects the storage backend ("memory", "sqlite" or "redis")
	// If empty, defaults to "sqlite"
	StorageType string
	// SQLitePath is the database file path (required if StorageType is "sqlite")
	SQLitePath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeSQLite
	}

	var store storage.Storage
	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'sqlite' or 'redis'")
	}

	return newWithDependencies(store, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, logger *slog.Logger) *App {
	seedingService := seeding.New(store, logger)
	guessingService := guessing.New(store, logger)
	scoringService := scoring.New(store, logger)
	reportGenerator := report.New(store, logger)

	return &App{
		Storage:         store,
		SeedingService:  seedingService,
		GuessingService: guessingService,
		ScoringService:  scoringService,
		ReportGenerator: reportGenerator,
	}
}

// Close releases the storage backend's resources, if it holds any
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
