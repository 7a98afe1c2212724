package config

import (
	"errors"
	"fmt"
	"net"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if _, _, err := net.SplitHostPort(c.API.Bind); err != nil {
		return fmt.Errorf("api.bind %q: %w", c.API.Bind, err)
	}
	if c.API.MaxBodyBytes < 0 {
		return errors.New("api.max_body_bytes must be positive")
	}
	return nil
}

func (c *Config) validateExport() error {
	switch c.Export.DefaultFormat {
	case "json", "srt":
	default:
		return fmt.Errorf("export.default_format must be json or srt, got %q", c.Export.DefaultFormat)
	}
	if c.Export.FallbackDisplaySeconds < 0 {
		return errors.New("export.fallback_display_seconds must be positive")
	}
	return nil
}
