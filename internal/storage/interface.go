package storage

import (
	"context"

	"github.com/mcoot/guessgame/internal/model"
)

// Ledger defines the interface for persisting player statistics.
// Records are kept in insertion order and are unique by name.
type Ledger interface {
	// LoadPlayer returns the record for name, creating and persisting a
	// zeroed record first if none exists
	LoadPlayer(ctx context.Context, name string) (*model.PlayerRecord, error)

	// SavePlayer replaces the stored record with the same name.
	// Returns model.ErrPlayerNotFound if the record was never loaded.
	SavePlayer(ctx context.Context, record *model.PlayerRecord) error

	// ListPlayers returns every record in store order
	ListPlayers(ctx context.Context) ([]*model.PlayerRecord, error)
}
