package factory

import (
	"time"

	"github.com/mcoot/guessgame/internal/dependencies/mocks"
	"github.com/mcoot/guessgame/internal/model"
	"github.com/mcoot/guessgame/internal/storage/memory"
	"github.com/mcoot/guessgame/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Memory     *memory.Storage
}

// NewTestApp creates an App backed by in-memory storage with mocked dependencies.
// Any records given are preloaded into the ledger.
func NewTestApp(records ...*model.PlayerRecord) *TestApp {
	store := memory.New(records...)
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Memory:     store,
	}
}

// QueueSecret makes the next session pick secret
func (t *TestApp) QueueSecret(secret int) {
	t.MockRandom.QueueSecret(secret, model.MinGuess)
}
