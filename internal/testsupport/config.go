// Package testsupport provides shared helpers for exercising the engine in
// tests: temp-dir configs, recording store seeding, and timeline builders.
package testsupport

import (
	"path/filepath"
	"testing"

	"kinescope/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.RecordingsDir = filepath.Join(base, "recordings")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("create test directories: %v", err)
	}
	return &cfg
}

// WithSmoothingMode overrides the cursor smoothing strategy on the test config.
func WithSmoothingMode(mode string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Smoothing.Mode = mode
	}
}

// WithCacheEntries overrides the preview cache capacity on the test config.
func WithCacheEntries(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Cache.MaxEntries = n
	}
}
