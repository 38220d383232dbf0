package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/guessgame/internal/dependencies/random"
	"github.com/mcoot/guessgame/internal/model"
)

const testSeed = 1234

type RootSuite struct {
	suite.Suite
	storePath string
	secret    int
}

func TestRootSuite(t *testing.T) {
	suite.Run(t, new(RootSuite))
}

func (s *RootSuite) SetupTest() {
	s.storePath = filepath.Join(s.T().TempDir(), "players.txt")
	s.T().Setenv("GUESSGAME_STORAGE", "file")
	s.T().Setenv("GUESSGAME_STORE_PATH", s.storePath)
	s.T().Setenv("GUESSGAME_SEED", strconv.Itoa(testSeed))
	s.T().Setenv("GUESSGAME_LOG_LEVEL", "error")

	s.secret = random.Between(random.NewSeeded(testSeed), model.MinGuess, model.MaxGuess)
}

func (s *RootSuite) run(input string, args ...string) (string, string, error) {
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if args == nil {
		// keep cobra from falling back to the test binary's flags
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (s *RootSuite) wrongGuess() int {
	if s.secret == model.MaxGuess {
		return model.MinGuess
	}
	return model.MaxGuess
}

func (s *RootSuite) TestWinningGameWritesLedger() {
	input := strings.Join([]string{"Alice", "abc", "200", strconv.Itoa(s.secret)}, "\n") + "\n"

	stdout, _, err := s.run(input)
	s.Require().NoError(err)

	s.Contains(stdout, "What is your name? ")
	s.Contains(stdout, "\"abc\" is not a valid guess.")
	s.Contains(stdout, "200 is outside of the accepted range (1-100).")
	s.Contains(stdout, strconv.Itoa(s.secret)+" is correct!")
	s.Contains(stdout, "You made 3 total guesses and 2 invalid guesses.")

	data, err := os.ReadFile(s.storePath)
	s.Require().NoError(err)
	s.Equal("Alice,1,3,2\n", string(data))
}

func (s *RootSuite) TestConfirmedQuitLeavesOnlyZeroedRecord() {
	input := strings.Join([]string{"Alice", strconv.Itoa(s.wrongGuess()), "q", "y"}, "\n") + "\n"

	stdout, _, err := s.run(input)
	s.Require().NoError(err)
	s.Contains(stdout, "Goodbye!")

	data, err := os.ReadFile(s.storePath)
	s.Require().NoError(err)
	s.Equal("Alice,0,0,0\n", string(data))
}

func (s *RootSuite) TestConfirmedQuitDoesNotChangeExistingStore() {
	original := "Bob,2,11,3\nAlice,3,20,4\n"
	s.Require().NoError(os.WriteFile(s.storePath, []byte(original), 0o644))

	_, _, err := s.run("Alice\nq\ny\n")
	s.Require().NoError(err)

	data, err := os.ReadFile(s.storePath)
	s.Require().NoError(err)
	s.Equal(original, string(data))
}

func (s *RootSuite) TestReturningPlayerAverage() {
	s.Require().NoError(os.WriteFile(s.storePath, []byte("Alice,3,20,4\n"), 0o644))
	input := strings.Join([]string{"Alice", "x", "y", "0", strconv.Itoa(s.wrongGuess()), strconv.Itoa(s.secret)}, "\n") + "\n"

	stdout, _, err := s.run(input)
	s.Require().NoError(err)

	s.Contains(stdout, "Alice, you have played 4 games with 25 total guesses and 7 invalid guesses.")
	s.Contains(stdout, "That is an average of 6.25 guesses per game.")
}

func (s *RootSuite) TestRejectsArguments() {
	_, _, err := s.run("", "extra")
	s.Error(err)
}

func (s *RootSuite) TestStorageErrorFails() {
	s.T().Setenv("GUESSGAME_STORE_PATH", filepath.Join(s.T().TempDir(), "missing", "players.txt"))

	_, _, err := s.run("Alice\n")

	var storageErr *model.StorageError
	s.ErrorAs(err, &storageErr)
}

func (s *RootSuite) TestInvalidLogLevel() {
	s.T().Setenv("GUESSGAME_LOG_LEVEL", "chatty")

	_, _, err := s.run("")
	s.Error(err)
}

func (s *RootSuite) TestRedisRequiresURL() {
	s.T().Setenv("GUESSGAME_STORAGE", "redis")
	s.T().Setenv("REDIS_URL", "")

	_, _, err := s.run("")
	s.Error(err)
}
