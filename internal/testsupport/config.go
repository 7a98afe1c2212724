// Package testsupport builds isolated configs, documents and stores for tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"captions/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Cache.Path = filepath.Join(cfg.Paths.CacheDir, "cues.db")
	cfg.API.Bind = "127.0.0.1:0"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithToken sets the API bearer token.
func WithToken(token string) ConfigOption {
	return func(c *config.Config) { c.API.Token = token }
}

// WithoutCache disables the cue cache.
func WithoutCache() ConfigOption {
	return func(c *config.Config) { c.Cache.Enabled = false }
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.CacheDir)
}

// WriteConfig encodes cfg as TOML under its base directory and returns the path.
func WriteConfig(t testing.TB, cfg *config.Config) string {
	t.Helper()
	rendered, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	path := filepath.Join(BaseDir(cfg), "config.toml")
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
