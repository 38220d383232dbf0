package session

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/guessgame/internal/dependencies/clock"
	"github.com/mcoot/guessgame/internal/model"
)

// Event identifies what a single input did to the session
type Event string

const (
	EventGuess               Event = "guess"                // a round was played
	EventQuitRequested       Event = "quit_requested"       // quit keyword entered
	EventQuitCancelled       Event = "quit_cancelled"       // quit declined, back to guessing
	EventQuitConfirmed       Event = "quit_confirmed"       // quit accepted, session discarded
	EventInvalidConfirmation Event = "invalid_confirmation" // neither yes nor no
)

// Turn is the result of feeding one line of input to a Session
type Turn struct {
	Input string
	Event Event

	// Outcome and Guess describe the round for EventGuess. For
	// EventQuitCancelled they describe the last valid guess, if any, so the
	// caller can restore the previous feedback.
	Outcome model.GuessOutcome
	Guess   int

	State model.SessionState
	Stats model.SessionStats
}

// HasGuess returns true when Guess holds a parsed number
func (t Turn) HasGuess() bool {
	switch t.Outcome {
	case model.OutcomeTooHigh, model.OutcomeTooLow, model.OutcomeCorrect, model.OutcomeOutOfRange:
		return true
	}
	return false
}

// Session runs one guessing session against a fixed secret
type Session struct {
	id        string
	secret    int
	state     model.SessionState
	stats     model.SessionStats
	startedAt time.Time

	clock  clock.Clock
	logger *slog.Logger
}

// New creates a session in the AwaitingGuess state
func New(secret int, clk clock.Clock, logger *slog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:        id,
		secret:    secret,
		state:     model.SessionStateAwaitingGuess,
		startedAt: clk.Now(),
		clock:     clk,
		logger:    logger.With(slog.String("session_id", id)),
	}
}

// ID returns the session's unique identifier
func (s *Session) ID() string {
	return s.id
}

// State returns the current state
func (s *Session) State() model.SessionState {
	return s.state
}

// Stats returns a copy of the current counters
func (s *Session) Stats() model.SessionStats {
	return copyStats(s.stats)
}

// Handle feeds one line of raw input to the session
func (s *Session) Handle(input string) (Turn, error) {
	switch s.state {
	case model.SessionStateAwaitingGuess:
		return s.handleGuess(input), nil
	case model.SessionStateConfirmingQuit:
		return s.handleConfirmation(input), nil
	default:
		return Turn{}, model.ErrSessionOver
	}
}

func (s *Session) handleGuess(input string) Turn {
	if strings.TrimSpace(input) == model.QuitKeyword {
		s.state = model.SessionStateConfirmingQuit
		return s.turn(input, EventQuitRequested, "", 0)
	}

	s.stats.TotalGuesses++

	guess, ok := ParseGuess(input)
	if !ok {
		s.stats.InvalidGuesses++
		return s.round(input, model.OutcomeInvalid, 0)
	}

	outcome := Classify(guess, s.secret)
	if outcome.CountsAsInvalid() {
		s.stats.InvalidGuesses++
	}
	switch outcome {
	case model.OutcomeCorrect:
		s.state = model.SessionStateWon
		s.logger.Info("session won",
			slog.Int("total_guesses", s.stats.TotalGuesses),
			slog.Int("invalid_guesses", s.stats.InvalidGuesses),
			slog.Duration("duration", clock.Since(s.clock, s.startedAt)),
		)
	case model.OutcomeTooHigh, model.OutcomeTooLow:
		last := guess
		s.stats.LastValidGuess = &last
	}

	return s.round(input, outcome, guess)
}

func (s *Session) handleConfirmation(input string) Turn {
	switch strings.TrimSpace(input) {
	case model.ConfirmYes:
		s.state = model.SessionStateTerminated
		s.logger.Info("session abandoned",
			slog.Int("total_guesses", s.stats.TotalGuesses),
			slog.Duration("duration", clock.Since(s.clock, s.startedAt)),
		)
		return s.turn(input, EventQuitConfirmed, "", 0)
	case model.ConfirmNo:
		s.state = model.SessionStateAwaitingGuess
		if s.stats.LastValidGuess == nil {
			return s.turn(input, EventQuitCancelled, "", 0)
		}
		last := *s.stats.LastValidGuess
		return s.turn(input, EventQuitCancelled, Classify(last, s.secret), last)
	default:
		return s.turn(input, EventInvalidConfirmation, "", 0)
	}
}

func (s *Session) round(input string, outcome model.GuessOutcome, guess int) Turn {
	s.logger.Debug("round played",
		slog.String("outcome", string(outcome)),
		slog.Int("total_guesses", s.stats.TotalGuesses),
		slog.Int("invalid_guesses", s.stats.InvalidGuesses),
	)
	return s.turn(input, EventGuess, outcome, guess)
}

func (s *Session) turn(input string, event Event, outcome model.GuessOutcome, guess int) Turn {
	return Turn{
		Input:   input,
		Event:   event,
		Outcome: outcome,
		Guess:   guess,
		State:   s.state,
		Stats:   copyStats(s.stats),
	}
}

// ParseGuess parses a guess as a base-10 integer, ignoring surrounding whitespace
func ParseGuess(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Classify compares a parsed guess against the secret
func Classify(guess, secret int) model.GuessOutcome {
	switch {
	case guess < model.MinGuess || guess > model.MaxGuess:
		return model.OutcomeOutOfRange
	case guess > secret:
		return model.OutcomeTooHigh
	case guess < secret:
		return model.OutcomeTooLow
	default:
		return model.OutcomeCorrect
	}
}

func copyStats(stats model.SessionStats) model.SessionStats {
	if stats.LastValidGuess != nil {
		last := *stats.LastValidGuess
		stats.LastValidGuess = &last
	}
	return stats
}
