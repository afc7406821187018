package testsupport

import (
	"path/filepath"
	"testing"

	"proflens/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp paths per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CacheDB = filepath.Join(base, "cache", "ratings.db")
	cfg.Paths.OverridesPath = filepath.Join(base, "overrides.json")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.RMP.MinRequestIntervalMS = 1

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithSchoolID sets the target institution id on the test config.
func WithSchoolID(id string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.School.ID = id
	}
}

// WithBaseURL points the rating client at a test server.
func WithBaseURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.RMP.BaseURL = url
	}
}
