package testsupport

import (
	"testing"

	"captions/internal/config"
	"captions/internal/cuecache"
)

// MustOpenCache opens the cue cache configured by cfg and closes it on cleanup.
func MustOpenCache(t testing.TB, cfg *config.Config) *cuecache.Store {
	t.Helper()
	store, err := cuecache.Open(cfg.Cache.Path)
	if err != nil {
		t.Fatalf("open cue cache: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
