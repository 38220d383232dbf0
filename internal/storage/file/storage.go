// Package file implements the player ledger as a flat text file with one
// record per line. Every write replaces the whole file through a temporary
// file and a rename, so a failed write never truncates the ledger.
package file

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/mcoot/guessgame/internal/model"
	"github.com/mcoot/guessgame/internal/storage"
)

// DefaultPath is the ledger file used when none is configured
const DefaultPath = "players.txt"

// Storage is a flat-file implementation of the ledger interface
type Storage struct {
	path   string
	logger *slog.Logger
}

// New creates a file storage rooted at path. The file is not touched until
// the first load.
func New(path string, logger *slog.Logger) *Storage {
	return &Storage{
		path:   path,
		logger: logger,
	}
}

// Ensure Storage implements the interface
var _ storage.Ledger = (*Storage)(nil)

// Path returns the ledger file location
func (s *Storage) Path() string {
	return s.path
}

func (s *Storage) LoadPlayer(ctx context.Context, name string) (*model.PlayerRecord, error) {
	lines, exists, err := s.readLines()
	if err != nil {
		return nil, s.wrap("load", err)
	}

	if exists {
		if _, record := s.find(lines, name); record != nil {
			return record, nil
		}
	}

	record := model.NewPlayerRecord(name)
	lines = append(lines, storage.EncodeRecord(record))
	if err := s.writeLines(lines); err != nil {
		return nil, s.wrap("load", err)
	}

	s.logger.Info("player record created",
		slog.String("name", name),
		slog.String("path", s.path),
		slog.Bool("store_created", !exists),
	)

	return record, nil
}

func (s *Storage) SavePlayer(ctx context.Context, record *model.PlayerRecord) error {
	lines, exists, err := s.readLines()
	if err != nil {
		return s.wrap("save", err)
	}
	if !exists {
		return model.ErrPlayerNotFound
	}

	idx, _ := s.find(lines, record.Name)
	if idx < 0 {
		return model.ErrPlayerNotFound
	}

	lines[idx] = storage.EncodeRecord(record)
	if err := s.writeLines(lines); err != nil {
		return s.wrap("save", err)
	}
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.PlayerRecord, error) {
	lines, _, err := s.readLines()
	if err != nil {
		return nil, s.wrap("list", err)
	}

	records := make([]*model.PlayerRecord, 0, len(lines))
	for _, line := range lines {
		record, err := storage.DecodeRecord(line)
		if err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// find returns the index and decoded form of the first line whose name
// matches, or -1 and nil. Lines that fail to decode are skipped.
func (s *Storage) find(lines []string, name string) (int, *model.PlayerRecord) {
	for i, line := range lines {
		record, err := storage.DecodeRecord(line)
		if err != nil {
			s.logger.Warn("skipping malformed ledger line",
				slog.String("path", s.path),
				slog.Int("line", i+1),
			)
			continue
		}
		if record.Name == name {
			return i, record
		}
	}
	return -1, nil
}

// readLines returns the raw lines of the ledger without their trailing newline.
// exists is false when the file has not been created yet.
func (s *Storage) readLines() (lines []string, exists bool, err error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	if len(data) == 0 {
		return nil, true, nil
	}
	lines = strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	return lines, true, nil
}

func (s *Storage) writeLines(lines []string) error {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return atomic.WriteFile(s.path, &buf)
}

func (s *Storage) wrap(op string, err error) error {
	s.logger.Error("ledger file operation failed",
		slog.String("op", op),
		slog.String("path", s.path),
		slog.String("error", err.Error()),
	)
	return &model.StorageError{Op: op, Path: s.path, Err: err}
}
