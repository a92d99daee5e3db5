package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/trickery-game/trickery/internal/factory"
	redisstorage "github.com/trickery-game/trickery/internal/storage/redis"
)

var (
	cfg    *Config
	app    *factory.App
	logger *slog.Logger
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("TRICKERY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "trickery",
		Short: "Scorekeeper for the two-truths-and-a-lie party game",
		Long: `trickery keeps score for a party game of true and false statements.

Players each submit statements about themselves, then everyone guesses
which statements are true. Points are earned for guessing right and for
tricking other players, and the facilitator can award bonus points.
Scoresheets and a game summary are written out as text files.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = newLogger(cfg.Verbose)
			built, err := buildApp(cfg, logger)
			if err != nil {
				return err
			}
			app = built
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
		SilenceUsage: true,
	}

	// Global flags
	fs := rootCmd.PersistentFlags()
	fs.StringVar(&cfg.StorageType, "storage", cfg.StorageType, "Storage backend: memory, sqlite, redis (env: TRICKERY_STORAGE)")
	fs.StringVar(&cfg.StoragePath, "db", cfg.StoragePath, "SQLite database path (env: TRICKERY_DB)")
	fs.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis connection URL (env: TRICKERY_REDIS_URL)")
	fs.StringVarP(&cfg.OutputDir, "output-dir", "o", cfg.OutputDir, "Directory for report files (env: TRICKERY_OUTPUT_DIR)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose logging (env: TRICKERY_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	// Add subcommands
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newGuessCmd())
	rootCmd.AddCommand(newBonusCmd())
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newPlayCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func buildApp(cfg *Config, logger *slog.Logger) (*factory.App, error) {
	factoryCfg := factory.Config{
		StorageType: cfg.StorageType,
		SQLitePath:  cfg.StoragePath,
		Logger:      logger,
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		if cfg.RedisURL == "" {
			return nil, errors.New("--redis-url required when storage is redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	return factory.New(factoryCfg)
}
