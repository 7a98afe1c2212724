package preflight

import (
	"context"

	"captions/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}
	if cfg.Cache.Enabled {
		results = append(results, CheckDirectoryAccess("Cache directory", cfg.Paths.CacheDir))
		results = append(results, CheckCache(ctx, cfg.Cache.Path))
	}
	results = append(results, CheckBind(cfg.API.Bind))
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
