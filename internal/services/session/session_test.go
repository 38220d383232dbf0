package session

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/guessgame/internal/dependencies/mocks"
	"github.com/mcoot/guessgame/internal/model"
	"github.com/mcoot/guessgame/internal/testutil"
)

type SessionSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	session *Session
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.session = New(50, s.clock, testutil.NopLogger())
}

func (s *SessionSuite) feed(inputs ...string) Turn {
	var turn Turn
	for _, in := range inputs {
		var err error
		turn, err = s.session.Handle(in)
		s.Require().NoError(err, "input %q", in)
	}
	return turn
}

// Parsing and classification

func (s *SessionSuite) TestParseGuess() {
	for raw, want := range map[string]int{"42": 42, " 7 ": 7, "+3": 3, "-5": -5, "0": 0, "200": 200} {
		n, ok := ParseGuess(raw)
		s.True(ok, raw)
		s.Equal(want, n, raw)
	}
	for _, raw := range []string{"", "abc", "4.5", "1e2", "q", "12abc", "ten"} {
		_, ok := ParseGuess(raw)
		s.False(ok, raw)
	}
}

func (s *SessionSuite) TestClassify() {
	s.Equal(model.OutcomeTooLow, Classify(1, 50))
	s.Equal(model.OutcomeTooHigh, Classify(100, 50))
	s.Equal(model.OutcomeCorrect, Classify(50, 50))
	s.Equal(model.OutcomeOutOfRange, Classify(0, 50))
	s.Equal(model.OutcomeOutOfRange, Classify(101, 50))
	s.Equal(model.OutcomeOutOfRange, Classify(-3, 50))
}

// Rounds

func (s *SessionSuite) TestEveryInRangeWrongGuessIsHighOrLow() {
	for n := model.MinGuess; n <= model.MaxGuess; n++ {
		if n == 50 {
			continue
		}
		sess := New(50, s.clock, testutil.NopLogger())
		before := sess.Stats()

		turn, err := sess.Handle(strconv.Itoa(n))
		s.Require().NoError(err)

		if n > 50 {
			s.Equal(model.OutcomeTooHigh, turn.Outcome, n)
		} else {
			s.Equal(model.OutcomeTooLow, turn.Outcome, n)
		}
		s.Equal(before.TotalGuesses+1, turn.Stats.TotalGuesses)
		s.Equal(before.InvalidGuesses, turn.Stats.InvalidGuesses)
		s.Require().NotNil(turn.Stats.LastValidGuess)
		s.Equal(n, *turn.Stats.LastValidGuess)
		s.Equal(model.SessionStateAwaitingGuess, turn.State)
	}
}

func (s *SessionSuite) TestNonNumericInputCountsAsInvalid() {
	s.feed("25")
	for _, raw := range []string{"abc", "", "Q", "quit", "4.2"} {
		before := s.session.Stats()
		turn := s.feed(raw)

		s.Equal(EventGuess, turn.Event)
		s.Equal(model.OutcomeInvalid, turn.Outcome, raw)
		s.False(turn.HasGuess())
		s.Equal(before.TotalGuesses+1, turn.Stats.TotalGuesses)
		s.Equal(before.InvalidGuesses+1, turn.Stats.InvalidGuesses)
		s.Equal(25, *turn.Stats.LastValidGuess, "last valid guess must survive invalid input")
	}
}

func (s *SessionSuite) TestOutOfRangeCountsAsInvalid() {
	for _, raw := range []string{"0", "101", "-1", "200"} {
		before := s.session.Stats()
		turn := s.feed(raw)

		s.Equal(model.OutcomeOutOfRange, turn.Outcome, raw)
		s.True(turn.HasGuess())
		s.Equal(before.TotalGuesses+1, turn.Stats.TotalGuesses)
		s.Equal(before.InvalidGuesses+1, turn.Stats.InvalidGuesses)
		s.Nil(turn.Stats.LastValidGuess)
	}
}

func (s *SessionSuite) TestCorrectGuessWins() {
	s.feed("10", "90")
	turn := s.feed("50")

	s.Equal(model.OutcomeCorrect, turn.Outcome)
	s.Equal(50, turn.Guess)
	s.Equal(model.SessionStateWon, turn.State)
	s.Equal(3, turn.Stats.TotalGuesses)
	s.Equal(model.SessionStateWon, s.session.State())
}

func (s *SessionSuite) TestInputAfterWinIsRejected() {
	s.feed("50")

	_, err := s.session.Handle("10")
	s.ErrorIs(err, model.ErrSessionOver)
	s.Equal(1, s.session.Stats().TotalGuesses)
}

func (s *SessionSuite) TestConcreteScenario() {
	expected := []model.GuessOutcome{
		model.OutcomeInvalid,
		model.OutcomeOutOfRange,
		model.OutcomeTooLow,
		model.OutcomeTooHigh,
		model.OutcomeCorrect,
	}
	for i, in := range []string{"abc", "200", "25", "75", "50"} {
		turn := s.feed(in)
		s.Equal(expected[i], turn.Outcome, "round %d", i+1)
	}

	stats := s.session.Stats()
	s.Equal(5, stats.TotalGuesses)
	s.Equal(2, stats.InvalidGuesses)
	s.Equal(model.SessionStateWon, s.session.State())
}

// Quit dialogue

func (s *SessionSuite) TestQuitKeywordOpensConfirmation() {
	s.feed("30")
	turn := s.feed("q")

	s.Equal(EventQuitRequested, turn.Event)
	s.Equal(model.SessionStateConfirmingQuit, turn.State)
	s.Equal(1, turn.Stats.TotalGuesses, "quit keyword is not a round")
}

func (s *SessionSuite) TestQuitConfirmedTerminates() {
	s.feed("30", "q")
	turn := s.feed("y")

	s.Equal(EventQuitConfirmed, turn.Event)
	s.Equal(model.SessionStateTerminated, turn.State)
	s.True(turn.State.IsTerminal())

	_, err := s.session.Handle("50")
	s.ErrorIs(err, model.ErrSessionOver)
}

func (s *SessionSuite) TestQuitCancelledRestoresLastGuessContext() {
	s.feed("abc", "70")
	before := s.session.Stats()

	s.feed("q")
	turn := s.feed("n")

	s.Equal(EventQuitCancelled, turn.Event)
	s.Equal(model.SessionStateAwaitingGuess, turn.State)
	s.Equal(model.OutcomeTooHigh, turn.Outcome)
	s.Equal(70, turn.Guess)
	s.Equal(before, turn.Stats)
}

func (s *SessionSuite) TestQuitCancelledWithoutGuessShowsBanner() {
	s.feed("abc", "500")
	before := s.session.Stats()

	s.feed("q")
	turn := s.feed("n")

	s.Equal(EventQuitCancelled, turn.Event)
	s.Empty(turn.Outcome)
	s.Equal(before, turn.Stats)
}

func (s *SessionSuite) TestInvalidConfirmationReprompts() {
	s.feed("20", "q")
	before := s.session.Stats()

	for _, raw := range []string{"yes", "N", "", "q", "50"} {
		turn := s.feed(raw)
		s.Equal(EventInvalidConfirmation, turn.Event, raw)
		s.Equal(model.SessionStateConfirmingQuit, turn.State)
		s.Equal(before, turn.Stats)
	}

	turn := s.feed("n")
	s.Equal(model.OutcomeTooLow, turn.Outcome)
	s.Equal(before, turn.Stats)
}

func (s *SessionSuite) TestResumedSessionCanStillWin() {
	turn := s.feed("q", "n", "50")

	s.Equal(model.SessionStateWon, turn.State)
	s.Equal(1, turn.Stats.TotalGuesses)
}

func (s *SessionSuite) TestStatsAreCopies() {
	s.feed("20")
	stats := s.session.Stats()
	*stats.LastValidGuess = 99

	s.Equal(20, *s.session.Stats().LastValidGuess)
}

func (s *SessionSuite) TestSessionLogsCarryID() {
	logger, buf := testutil.BufferLogger()
	sess := New(50, s.clock, logger)
	s.clock.Advance(90 * time.Second)

	_, err := sess.Handle("50")
	s.Require().NoError(err)

	s.NotEmpty(sess.ID())
	s.Contains(buf.String(), sess.ID())
	s.Contains(buf.String(), "session won")
	s.Contains(buf.String(), `"duration":90000000000`)
}
