package factory

import (
	"time"

	"github.com/aweston/charkeep/internal/dependencies/mocks"
	"github.com/aweston/charkeep/internal/services/auth"
	"github.com/aweston/charkeep/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	authCfg := auth.DefaultConfig()
	authCfg.Secret = "test-secret"

	app := newWithDependencies(store, mockClock, authCfg)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
