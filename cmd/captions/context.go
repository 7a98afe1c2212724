package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"captions/internal/captionload"
	"captions/internal/config"
	"captions/internal/cuecache"
	"captions/internal/logging"
)

type commandContext struct {
	configFlag *string
	verbose    *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, verbose *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		verbose:    verbose,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.verbose != nil && *c.verbose {
			cfg.Logging.Level = "debug"
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// openCache opens the configured cue cache. It returns a nil store when the
// cache is disabled or skipped.
func (c *commandContext) openCache(skip bool) (*cuecache.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if skip || !cfg.Cache.Enabled {
		return nil, nil
	}
	return cuecache.Open(cfg.Cache.Path)
}

// newLoader builds a loader wired to store. A nil store disables caching.
func (c *commandContext) newLoader(store *cuecache.Store, maxBytes int64) (*captionload.Service, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	opts := captionload.Options{
		Logger:         logger,
		PreserveSource: cfg.Parser.PreserveSource,
		MaxBytes:       maxBytes,
	}
	if store != nil {
		opts.Cache = store
	}
	return captionload.New(opts), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
