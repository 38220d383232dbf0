package model

// PlayerRecord holds the lifetime statistics for one named player.
// Invalid guesses are a subset of total guesses, so TotalGuesses >= InvalidGuesses.
type PlayerRecord struct {
	Name           string
	GamesPlayed    int
	TotalGuesses   int
	InvalidGuesses int
}

// NewPlayerRecord returns a zeroed record for name
func NewPlayerRecord(name string) *PlayerRecord {
	return &PlayerRecord{Name: name}
}

// Apply folds a finished session into the lifetime counters
func (p *PlayerRecord) Apply(stats SessionStats) {
	p.GamesPlayed++
	p.TotalGuesses += stats.TotalGuesses
	p.InvalidGuesses += stats.InvalidGuesses
}

// AverageGuesses returns total guesses per game played, or 0 before any game
func (p *PlayerRecord) AverageGuesses() float64 {
	if p.GamesPlayed == 0 {
		return 0
	}
	return float64(p.TotalGuesses) / float64(p.GamesPlayed)
}

// Clone returns a copy that can be mutated independently
func (p *PlayerRecord) Clone() *PlayerRecord {
	c := *p
	return &c
}
