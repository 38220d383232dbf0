// Package sqlite implements the player ledger on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mcoot/guessgame/internal/model"
	"github.com/mcoot/guessgame/internal/storage"
)

// DefaultPath is the database file used when none is configured
const DefaultPath = "players.db"

// Storage is a SQLite-backed implementation of the ledger interface.
// Row insertion order (seq) preserves the ledger's record order.
type Storage struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// New opens or creates a SQLite database at path
func New(path string, logger *slog.Logger) (*Storage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &model.StorageError{Op: "open", Path: path, Err: err}
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, &model.StorageError{Op: "open", Path: path, Err: err}
	}

	s := &Storage{
		db:     db,
		path:   path,
		logger: logger,
	}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, &model.StorageError{Op: "migrate", Path: path, Err: err}
	}

	return s, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Ledger = (*Storage)(nil)

func (s *Storage) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS players (
		seq             INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT NOT NULL UNIQUE,
		games_played    INTEGER NOT NULL DEFAULT 0,
		total_guesses   INTEGER NOT NULL DEFAULT 0,
		invalid_guesses INTEGER NOT NULL DEFAULT 0,
		CHECK (invalid_guesses <= total_guesses)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Storage) LoadPlayer(ctx context.Context, name string) (*model.PlayerRecord, error) {
	record, err := s.get(ctx, name)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, s.wrap("load", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO players (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name)
	if err != nil {
		return nil, s.wrap("load", err)
	}

	s.logger.Info("player record created",
		slog.String("name", name),
		slog.String("path", s.path),
	)

	record, err = s.get(ctx, name)
	if err != nil {
		return nil, s.wrap("load", err)
	}
	return record, nil
}

func (s *Storage) SavePlayer(ctx context.Context, record *model.PlayerRecord) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE players SET games_played = ?, total_guesses = ?, invalid_guesses = ? WHERE name = ?`,
		record.GamesPlayed, record.TotalGuesses, record.InvalidGuesses, record.Name)
	if err != nil {
		return s.wrap("save", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return s.wrap("save", err)
	}
	if n == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.PlayerRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, games_played, total_guesses, invalid_guesses FROM players ORDER BY seq`)
	if err != nil {
		return nil, s.wrap("list", err)
	}
	defer rows.Close()

	records := []*model.PlayerRecord{}
	for rows.Next() {
		var r model.PlayerRecord
		if err := rows.Scan(&r.Name, &r.GamesPlayed, &r.TotalGuesses, &r.InvalidGuesses); err != nil {
			return nil, s.wrap("list", err)
		}
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, s.wrap("list", err)
	}
	return records, nil
}

func (s *Storage) get(ctx context.Context, name string) (*model.PlayerRecord, error) {
	var r model.PlayerRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT name, games_played, total_guesses, invalid_guesses FROM players WHERE name = ?`, name,
	).Scan(&r.Name, &r.GamesPlayed, &r.TotalGuesses, &r.InvalidGuesses)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Storage) wrap(op string, err error) error {
	s.logger.Error("ledger sqlite operation failed",
		slog.String("op", op),
		slog.String("path", s.path),
		slog.String("error", err.Error()),
	)
	return &model.StorageError{Op: op, Path: s.path, Err: fmt.Errorf("sqlite: %w", err)}
}
