package memory

import (
	"context"
	"sync"

	"github.com/mcoot/guessgame/internal/model"
	"github.com/mcoot/guessgame/internal/storage"
)

// Storage is an in-memory implementation of the ledger interface.
// Nothing survives the process; useful for tests and throwaway games.
type Storage struct {
	mu sync.RWMutex

	players []*model.PlayerRecord
}

// New creates a new in-memory storage instance
func New(records ...*model.PlayerRecord) *Storage {
	s := &Storage{}
	for _, r := range records {
		s.players = append(s.players, r.Clone())
	}
	return s
}

// Ensure Storage implements the interface
var _ storage.Ledger = (*Storage)(nil)

func (s *Storage) LoadPlayer(ctx context.Context, name string) (*model.PlayerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(name); idx >= 0 {
		return s.players[idx].Clone(), nil
	}
	record := model.NewPlayerRecord(name)
	s.players = append(s.players, record)
	return record.Clone(), nil
}

func (s *Storage) SavePlayer(ctx context.Context, record *model.PlayerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(record.Name)
	if idx < 0 {
		return model.ErrPlayerNotFound
	}
	s.players[idx] = record.Clone()
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]*model.PlayerRecord, 0, len(s.players))
	for _, r := range s.players {
		records = append(records, r.Clone())
	}
	return records, nil
}

func (s *Storage) indexOf(name string) int {
	for i, r := range s.players {
		if r.Name == name {
			return i
		}
	}
	return -1
}
