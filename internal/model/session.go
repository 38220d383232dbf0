package model

// Accepted guess range, inclusive on both ends
const (
	MinGuess = 1
	MaxGuess = 100
)

// QuitKeyword is the raw input that opens the quit confirmation dialogue
const QuitKeyword = "q"

// Quit confirmation answers
const (
	ConfirmYes = "y"
	ConfirmNo  = "n"
)

// SessionState represents the current phase of a guessing session
type SessionState string

const (
	SessionStateAwaitingGuess  SessionState = "awaiting_guess"  // Waiting for the next guess
	SessionStateConfirmingQuit SessionState = "confirming_quit" // Asked whether to really quit
	SessionStateWon            SessionState = "won"             // Secret guessed (terminal)
	SessionStateTerminated     SessionState = "terminated"      // Quit confirmed (terminal)
)

// IsTerminal returns true once no more input is accepted
func (s SessionState) IsTerminal() bool {
	return s == SessionStateWon || s == SessionStateTerminated
}

// GuessOutcome classifies a single round
type GuessOutcome string

const (
	OutcomeTooHigh    GuessOutcome = "too_high"
	OutcomeTooLow     GuessOutcome = "too_low"
	OutcomeCorrect    GuessOutcome = "correct"
	OutcomeInvalid    GuessOutcome = "invalid"      // not an integer
	OutcomeOutOfRange GuessOutcome = "out_of_range" // integer outside [MinGuess, MaxGuess]
)

// CountsAsInvalid returns true for outcomes that also bump the invalid counter
func (o GuessOutcome) CountsAsInvalid() bool {
	return o == OutcomeInvalid || o == OutcomeOutOfRange
}

// SessionStats are the per-session counters. They are never persisted
// directly; a won session is folded into a PlayerRecord.
type SessionStats struct {
	TotalGuesses   int
	InvalidGuesses int
	LastValidGuess *int // nil until an in-range, non-winning guess is made
}
