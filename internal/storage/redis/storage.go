package redis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/guessgame/internal/model"
	"github.com/mcoot/guessgame/internal/storage"
)

// Storage is a Redis-backed implementation of the ledger interface.
// Each record is stored as its serialized line so the Redis contents
// match the flat-file format.
type Storage struct {
	client *redis.Client
	cfg    Config
	logger *slog.Logger
}

// New creates a new Redis storage instance
func New(cfg Config, logger *slog.Logger) (*Storage, error) {
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
		_ = client.Close()
		return nil, &model.StorageError{Op: "connect", Err: err}
	}

	return NewWithClient(client, cfg, logger), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, logger *slog.Logger) *Storage {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Ledger = (*Storage)(nil)

func (s *Storage) LoadPlayer(ctx context.Context, name string) (*model.PlayerRecord, error) {
	key := playerKey(s.cfg.KeyPrefix, name)

	record, err := s.get(ctx, key)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, s.wrap("load", err)
	}

	record = model.NewPlayerRecord(name)
	created, err := s.client.SetNX(ctx, key, storage.EncodeRecord(record), 0).Result()
	if err != nil {
		return nil, s.wrap("load", err)
	}
	if !created {
		// Lost a race with another writer; theirs is the first record.
		record, err = s.get(ctx, key)
		if err != nil {
			return nil, s.wrap("load", err)
		}
		return record, nil
	}

	if err := s.client.RPush(ctx, playerOrderKey(s.cfg.KeyPrefix), name).Err(); err != nil {
		return nil, s.wrap("load", err)
	}

	s.logger.Info("player record created", slog.String("name", name))
	return record, nil
}

func (s *Storage) SavePlayer(ctx context.Context, record *model.PlayerRecord) error {
	// SET XX only replaces an existing key
	ok, err := s.client.SetXX(ctx, playerKey(s.cfg.KeyPrefix, record.Name), storage.EncodeRecord(record), 0).Result()
	if err != nil {
		return s.wrap("save", err)
	}
	if !ok {
		return model.ErrPlayerNotFound
	}
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.PlayerRecord, error) {
	names, err := s.client.LRange(ctx, playerOrderKey(s.cfg.KeyPrefix), 0, -1).Result()
	if err != nil {
		return nil, s.wrap("list", err)
	}
	if len(names) == 0 {
		return []*model.PlayerRecord{}, nil
	}

	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = playerKey(s.cfg.KeyPrefix, name)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, s.wrap("list", err)
	}

	records := make([]*model.PlayerRecord, 0, len(values))
	for _, v := range values {
		line, ok := v.(string)
		if !ok {
			continue
		}
		record, err := storage.DecodeRecord(line)
		if err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *Storage) get(ctx context.Context, key string) (*model.PlayerRecord, error) {
	line, err := s.client.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	return storage.DecodeRecord(line)
}

func (s *Storage) wrap(op string, err error) error {
	s.logger.Error("ledger redis operation failed",
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
	return &model.StorageError{Op: op, Err: err}
}
