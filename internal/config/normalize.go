package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeCache(); err != nil {
		return err
	}
	c.normalizeAPI()
	c.normalizeLogging()
	c.normalizeExport()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCache() error {
	path := strings.TrimSpace(c.Cache.Path)
	if path == "" {
		c.Cache.Path = filepath.Join(c.Paths.CacheDir, defaultCacheFileName)
		return nil
	}
	expanded, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	c.Cache.Path = expanded
	return nil
}

func (c *Config) normalizeAPI() {
	c.API.Bind = strings.TrimSpace(c.API.Bind)
	if c.API.Bind == "" {
		c.API.Bind = defaultAPIBind
	}
	c.API.Token = strings.TrimSpace(c.API.Token)
	if c.API.Token == "" {
		if value, ok := os.LookupEnv("CAPTIONS_API_TOKEN"); ok {
			c.API.Token = strings.TrimSpace(value)
		}
	}
	if c.API.MaxBodyBytes == 0 {
		c.API.MaxBodyBytes = defaultAPIMaxBodyBytes
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeExport() {
	c.Export.DefaultFormat = strings.ToLower(strings.TrimSpace(c.Export.DefaultFormat))
	if c.Export.DefaultFormat == "" {
		c.Export.DefaultFormat = defaultExportFormat
	}
	if c.Export.FallbackDisplaySeconds == 0 {
		c.Export.FallbackDisplaySeconds = defaultFallbackDisplaySeconds
	}
}
