package factory

import (
	"time"

	"github.com/mcoot/playerregistry/internal/dependencies/mocks"
	"github.com/mcoot/playerregistry/internal/storage/memory"
	"github.com/mcoot/playerregistry/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Memory is the concrete store behind App.Storage
	Memory *memory.Storage

	// MockClock controls the time seen by seeding
	MockClock *mocks.MockClock
}

// NewTestApp creates an App backed by memory storage and a fixed clock
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, testutil.NopLogger(), nil)

	return &TestApp{
		App:       app,
		Memory:    store,
		MockClock: mockClock,
	}
}
