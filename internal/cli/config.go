package cli

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mcoot/guessgame/internal/factory"
	redisstorage "github.com/mcoot/guessgame/internal/storage/redis"
)

// Config holds CLI configuration. The game takes no flags, so everything
// comes from the environment (optionally seeded from a .env file).
type Config struct {
	Storage    string `env:"GUESSGAME_STORAGE" envDefault:"file"`
	StorePath  string `env:"GUESSGAME_STORE_PATH" envDefault:"players.txt"`
	SQLitePath string `env:"GUESSGAME_SQLITE_PATH" envDefault:"players.db"`
	RedisURL   string `env:"REDIS_URL"`
	LogLevel   string `env:"GUESSGAME_LOG_LEVEL" envDefault:"warn"`
	Seed       uint64 `env:"GUESSGAME_SEED"`
}

// LoadConfig reads configuration from the environment
func LoadConfig() (*Config, error) {
	// A missing .env file is fine
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Level returns the configured slog level
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid GUESSGAME_LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// FactoryConfig translates CLI configuration into factory configuration
func (c *Config) FactoryConfig(logger *slog.Logger) (factory.Config, error) {
	fc := factory.Config{
		StorageType: c.Storage,
		FilePath:    c.StorePath,
		SQLitePath:  c.SQLitePath,
		Seed:        c.Seed,
		Logger:      logger,
	}

	if c.Storage == factory.StorageTypeRedis {
		if c.RedisURL == "" {
			return factory.Config{}, fmt.Errorf("REDIS_URL required when GUESSGAME_STORAGE=redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		fc.RedisConfig = &redisCfg
	}

	return fc, nil
}
