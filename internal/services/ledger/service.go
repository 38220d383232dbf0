package ledger

import (
	"context"
	"log/slog"
	"unicode"

	"github.com/mcoot/guessgame/internal/model"
	"github.com/mcoot/guessgame/internal/storage"
)

// Service maps player names to lifetime statistics across program runs
type Service struct {
	storage storage.Ledger
	logger  *slog.Logger
}

// New creates a new LedgerService
func New(storage storage.Ledger, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// ValidateName checks that a player name is non-empty and made only of letters.
// This also keeps the separator out of the serialized record.
func ValidateName(name string) error {
	if name == "" {
		return model.ErrInvalidName
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return model.ErrInvalidName
		}
	}
	return nil
}

// Load returns the record for name, creating a zeroed one on first appearance
func (s *Service) Load(ctx context.Context, name string) (*model.PlayerRecord, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return s.storage.LoadPlayer(ctx, name)
}

// Record folds a won session into the player's lifetime statistics and persists it.
// The passed record is left untouched; the updated copy is returned.
func (s *Service) Record(ctx context.Context, record *model.PlayerRecord, stats model.SessionStats) (*model.PlayerRecord, error) {
	updated := record.Clone()
	updated.Apply(stats)

	if err := s.storage.SavePlayer(ctx, updated); err != nil {
		s.logger.Error("failed to save player record",
			slog.String("name", updated.Name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("player record updated",
		slog.String("name", updated.Name),
		slog.Int("games_played", updated.GamesPlayed),
		slog.Int("total_guesses", updated.TotalGuesses),
		slog.Int("invalid_guesses", updated.InvalidGuesses),
	)

	return updated, nil
}

// Players lists every stored record in ledger order
func (s *Service) Players(ctx context.Context) ([]*model.PlayerRecord, error) {
	return s.storage.ListPlayers(ctx)
}
