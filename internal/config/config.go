package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	CacheDir string `toml:"cache_dir"`
	LogDir   string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Parser contains caption parser behaviour switches.
type Parser struct {
	// PreserveSource parses a private copy of each document instead of
	// rewriting line breaks in the caller's tree.
	PreserveSource bool `toml:"preserve_source"`
}

// Cache contains configuration for the parsed-cue cache.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // Default: <cache_dir>/cues.db
}

// API contains configuration for the HTTP parse endpoint.
type API struct {
	Bind         string `toml:"bind"`
	Token        string `toml:"token"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Export contains configuration for cue exporters.
type Export struct {
	DefaultFormat string `toml:"default_format"`
	// FallbackDisplaySeconds is how long an open-ended cue stays on screen
	// in formats that require an end time.
	FallbackDisplaySeconds float64 `toml:"fallback_display_seconds"`
}

// Config encapsulates all configuration values.
//
// Configuration sections by subsystem:
//   - Paths: cache and log directories
//   - Logging: log format and level
//   - Parser: caption parser behaviour
//   - Cache: SQLite cue cache
//   - API: HTTP server bind address, token, and request limits
//   - Export: default output format and open-ended cue handling
type Config struct {
	Paths   Paths   `toml:"paths"`
	Logging Logging `toml:"logging"`
	Parser  Parser  `toml:"parser"`
	Cache   Cache   `toml:"cache"`
	API     API     `toml:"api"`
	Export  Export  `toml:"export"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, "", false, fmt.Errorf("parse config: %s", strict.String())
			}
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("captions.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the cache and log directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if c.Cache.Enabled {
		dirs = append(dirs, c.Paths.CacheDir, filepath.Dir(c.Cache.Path))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() (string, error) {
	var b strings.Builder
	encoder := toml.NewEncoder(&b)
	encoder.SetIndentTables(true)
	if err := encoder.Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return b.String(), nil
}
