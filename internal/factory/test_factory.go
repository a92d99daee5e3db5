package factory

import (
	"time"

	"github.com/trickery-game/trickery/internal/dependencies/mocks"
	"github.com/trickery-game/trickery/internal/storage/memory"
	"github.com/trickery-game/trickery/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := memory.NewWithClock(mockClock)

	app := newWithDependencies(store, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
