package cli

import (
	"fmt"
	"strings"

	"github.com/mcoot/guessgame/internal/model"
	"github.com/mcoot/guessgame/internal/services/game"
	"github.com/mcoot/guessgame/internal/services/session"
)

const (
	namePrompt    = "What is your name? "
	guessPrompt   = "Your guess: "
	confirmPrompt = "Are you sure you want to quit? This game will not be saved. (y/n): "
)

// Output renders the game's text. It implements game.View.
type Output struct{}

// NewOutput creates a new Output formatter
func NewOutput() *Output {
	return &Output{}
}

// Ensure Output implements the view
var _ game.View = (*Output)(nil)

// Pluralize returns suffix unless count is exactly one
func Pluralize(count int, suffix string) string {
	if count == 1 {
		return ""
	}
	return suffix
}

func (o *Output) NamePrompt() string {
	return namePrompt
}

func (o *Output) InvalidName(name string) string {
	return "Names can only contain letters. Try again.\n" + namePrompt
}

func (o *Output) Banner(name string) string {
	return fmt.Sprintf("Hello, %s! I'm thinking of a number from %d to %d.\n"+
		"Enter %s at any time to quit.\n%s",
		name, model.MinGuess, model.MaxGuess, model.QuitKeyword, guessPrompt)
}

func (o *Output) Turn(name string, t session.Turn) string {
	switch t.Event {
	case session.EventGuess:
		return o.feedback(t)
	case session.EventQuitRequested:
		return confirmPrompt
	case session.EventInvalidConfirmation:
		return fmt.Sprintf("%q is not a valid response. Enter %s or %s.\n%s",
			t.Input, model.ConfirmYes, model.ConfirmNo, confirmPrompt)
	case session.EventQuitConfirmed:
		return "Goodbye!\n"
	case session.EventQuitCancelled:
		if t.Outcome == "" {
			return o.Banner(name)
		}
		return o.feedback(t)
	}
	return ""
}

func (o *Output) feedback(t session.Turn) string {
	switch t.Outcome {
	case model.OutcomeTooHigh:
		return fmt.Sprintf("%d is too high. Try again.\n%s", t.Guess, guessPrompt)
	case model.OutcomeTooLow:
		return fmt.Sprintf("%d is too low. Try again.\n%s", t.Guess, guessPrompt)
	case model.OutcomeOutOfRange:
		return fmt.Sprintf("%d is outside of the accepted range (%d-%d). Try again.\n%s",
			t.Guess, model.MinGuess, model.MaxGuess, guessPrompt)
	case model.OutcomeInvalid:
		return fmt.Sprintf("%q is not a valid guess. Try again.\n%s", t.Input, guessPrompt)
	case model.OutcomeCorrect:
		return fmt.Sprintf("%d is correct!\n", t.Guess)
	}
	return ""
}

func (o *Output) Win(r *model.PlayerRecord, t session.Turn) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You made %d total guess%s and %d invalid guess%s.\n\n",
		t.Stats.TotalGuesses, Pluralize(t.Stats.TotalGuesses, "es"),
		t.Stats.InvalidGuesses, Pluralize(t.Stats.InvalidGuesses, "es"))

	fmt.Fprintf(&b, "%s, you have played %d game%s with %d total guess%s and %d invalid guess%s.\n",
		r.Name,
		r.GamesPlayed, Pluralize(r.GamesPlayed, "s"),
		r.TotalGuesses, Pluralize(r.TotalGuesses, "es"),
		r.InvalidGuesses, Pluralize(r.InvalidGuesses, "es"))

	avg := fmt.Sprintf("%.2f", r.AverageGuesses())
	suffix := "es"
	if avg == "1.00" {
		suffix = ""
	}
	fmt.Fprintf(&b, "That is an average of %s guess%s per game.\n", avg, suffix)

	return b.String()
}
