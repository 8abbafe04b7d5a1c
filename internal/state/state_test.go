package state

import (
	"log/slog"
	"os"
	"time"

	"github.com/parleyapp/parley-client/internal/validation"
)

// Shared fixtures for slice tests.

const testTTL = 80 * time.Millisecond

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testValidator() *validation.Validator {
	return validation.New()
}
