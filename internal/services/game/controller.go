package game

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/mcoot/guessgame/internal/dependencies/clock"
	"github.com/mcoot/guessgame/internal/dependencies/random"
	"github.com/mcoot/guessgame/internal/model"
	"github.com/mcoot/guessgame/internal/services/ledger"
	"github.com/mcoot/guessgame/internal/services/session"
)

// Console is the line-oriented terminal the game is played on
type Console interface {
	// ReadLine returns the next line without its line terminator.
	// io.EOF means the player closed the input.
	ReadLine() (string, error)
	Write(text string) error
	Clear() error
}

// View renders everything the player sees
type View interface {
	NamePrompt() string
	InvalidName(name string) string
	Banner(name string) string
	Turn(name string, turn session.Turn) string
	Win(record *model.PlayerRecord, turn session.Turn) string
}

// Outcome is how a program run ended
type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeQuit Outcome = "quit"
)

// Result summarizes a finished run
type Result struct {
	Outcome   Outcome
	Player    *model.PlayerRecord // lifetime record; updated only when won
	Stats     model.SessionStats
	SessionID string
}

// Controller drives one program run: name prompt, ledger load, session, save
type Controller struct {
	ledger *ledger.Service
	clock  clock.Clock
	random random.Random
	logger *slog.Logger
}

// NewController creates a new GameController
func NewController(
	ledger *ledger.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		ledger: ledger,
		clock:  clock,
		random: random,
		logger: logger,
	}
}

// Play runs a full game on the console. A confirmed quit, or closed input,
// ends the run without touching the player's statistics.
func (c *Controller) Play(ctx context.Context, console Console, view View) (*Result, error) {
	if err := console.Clear(); err != nil {
		return nil, err
	}

	name, err := c.promptName(console, view)
	if errors.Is(err, io.EOF) {
		return &Result{Outcome: OutcomeQuit}, nil
	}
	if err != nil {
		return nil, err
	}

	record, err := c.ledger.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	return c.PlaySession(ctx, console, view, record)
}

// PlaySession runs a single session for an already loaded player
func (c *Controller) PlaySession(ctx context.Context, console Console, view View, record *model.PlayerRecord) (*Result, error) {
	secret := random.Between(c.random, model.MinGuess, model.MaxGuess)
	sess := session.New(secret, c.clock, c.logger)

	c.logger.Info("session started",
		slog.String("session_id", sess.ID()),
		slog.String("name", record.Name),
	)

	if err := console.Write(view.Banner(record.Name)); err != nil {
		return nil, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line, err := console.ReadLine()
		if errors.Is(err, io.EOF) {
			c.logger.Info("input closed, discarding session", slog.String("session_id", sess.ID()))
			return c.quit(sess, record), nil
		}
		if err != nil {
			return nil, err
		}

		turn, err := sess.Handle(line)
		if err != nil {
			return nil, err
		}

		if err := console.Write(view.Turn(record.Name, turn)); err != nil {
			return nil, err
		}

		switch turn.State {
		case model.SessionStateWon:
			return c.win(ctx, console, view, sess, record, turn)
		case model.SessionStateTerminated:
			return c.quit(sess, record), nil
		}
	}
}

func (c *Controller) win(ctx context.Context, console Console, view View, sess *session.Session, record *model.PlayerRecord, turn session.Turn) (*Result, error) {
	updated, err := c.ledger.Record(ctx, record, turn.Stats)
	if err != nil {
		return nil, err
	}

	if err := console.Write(view.Win(updated, turn)); err != nil {
		return nil, err
	}

	return &Result{
		Outcome:   OutcomeWon,
		Player:    updated,
		Stats:     turn.Stats,
		SessionID: sess.ID(),
	}, nil
}

func (c *Controller) quit(sess *session.Session, record *model.PlayerRecord) *Result {
	return &Result{
		Outcome:   OutcomeQuit,
		Player:    record,
		Stats:     sess.Stats(),
		SessionID: sess.ID(),
	}
}

// promptName asks for a name until one made only of letters is entered.
// Surrounding whitespace is ignored.
func (c *Controller) promptName(console Console, view View) (string, error) {
	if err := console.Write(view.NamePrompt()); err != nil {
		return "", err
	}
	for {
		line, err := console.ReadLine()
		if err != nil {
			return "", err
		}

		name := strings.TrimSpace(line)
		if err := ledger.ValidateName(name); err == nil {
			return name, nil
		}

		c.logger.Debug("rejected player name", slog.String("name", name))
		if err := console.Write(view.InvalidName(name)); err != nil {
			return "", err
		}
	}
}
