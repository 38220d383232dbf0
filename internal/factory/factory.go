package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/guessgame/internal/dependencies/clock"
	"github.com/mcoot/guessgame/internal/dependencies/random"
	"github.com/mcoot/guessgame/internal/services/game"
	"github.com/mcoot/guessgame/internal/services/ledger"
	"github.com/mcoot/guessgame/internal/storage"
	filestorage "github.com/mcoot/guessgame/internal/storage/file"
	"github.com/mcoot/guessgame/internal/storage/memory"
	redisstorage "github.com/mcoot/guessgame/internal/storage/redis"
	sqlitestorage "github.com/mcoot/guessgame/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeFile   = "file"
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Ledger storage.Ledger

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	LedgerService  *ledger.Service
	GameController *game.Controller

	closer io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// StorageType selects the ledger backend ("file", "memory", "redis" or "sqlite")
	// If empty, defaults to "file"
	StorageType string
	// FilePath is the flat ledger file (file backend)
	// If empty, defaults to filestorage.DefaultPath
	FilePath string
	// SQLitePath is the database file (sqlite backend)
	// If empty, defaults to sqlitestorage.DefaultPath
	SQLitePath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Seed makes the secret number sequence reproducible when non-zero
	Seed uint64
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

	var (
		store  storage.Ledger
		closer io.Closer
	)
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeFile
	}

	switch storageType {
	case StorageTypeFile:
		path := cfg.FilePath
		if path == "" {
			path = filestorage.DefaultPath
		}
		store = filestorage.New(path, logger)
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, logger)
		if err != nil {
			return nil, err
		}
		store, closer = redisStore, redisStore
	case StorageTypeSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = sqlitestorage.DefaultPath
		}
		sqliteStore, err := sqlitestorage.New(path, logger)
		if err != nil {
			return nil, err
		}
		store, closer = sqliteStore, sqliteStore
	default:
		return nil, errors.New("invalid StorageType: must be 'file', 'memory', 'redis' or 'sqlite'")
	}

	// Create external dependencies
	clk := clock.New()
	var rnd random.Random = random.New()
	if cfg.Seed != 0 {
		rnd = random.NewSeeded(cfg.Seed)
	}

	app := newWithDependencies(store, clk, rnd, logger)
	app.closer = closer
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Ledger, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	ledgerService := ledger.New(store, logger)
	gameController := game.NewController(ledgerService, clk, rnd, logger)

	return &App{
		Ledger:         store,
		Clock:          clk,
		Random:         rnd,
		LedgerService:  ledgerService,
		GameController: gameController,
	}
}

// Close releases backend connections, if any
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
