package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"captions/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("CAPTIONS_API_TOKEN", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "captions", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantCache := filepath.Join(tempHome, ".cache", "captions")
	if cfg.Paths.CacheDir != wantCache {
		t.Fatalf("unexpected cache dir: got %q want %q", cfg.Paths.CacheDir, wantCache)
	}
	if cfg.Cache.Path != filepath.Join(wantCache, "cues.db") {
		t.Fatalf("unexpected cache path: %q", cfg.Cache.Path)
	}
	if !cfg.Cache.Enabled {
		t.Fatal("expected cache enabled by default")
	}
	if cfg.Paths.LogDir != filepath.Join(tempHome, ".local", "share", "captions", "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.API.Bind != "127.0.0.1:7490" {
		t.Fatalf("unexpected api bind: %q", cfg.API.Bind)
	}
	if cfg.API.Token != "" {
		t.Fatalf("expected empty token, got %q", cfg.API.Token)
	}
	if cfg.Parser.PreserveSource {
		t.Fatal("expected preserve_source disabled by default")
	}
	if cfg.Export.DefaultFormat != "json" || cfg.Export.FallbackDisplaySeconds != 3 {
		t.Fatalf("unexpected export defaults: %+v", cfg.Export)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	custom := config.Default()
	custom.Paths.CacheDir = "~/cues"
	custom.Logging.Format = "JSON"
	custom.Logging.Level = " Debug "
	custom.Parser.PreserveSource = true
	custom.API.Bind = "0.0.0.0:9000"
	custom.Export.DefaultFormat = "SRT"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "captions.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected custom path to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.CacheDir != filepath.Join(tempHome, "cues") {
		t.Fatalf("unexpected cache dir: %q", cfg.Paths.CacheDir)
	}
	if cfg.Cache.Path != filepath.Join(tempHome, "cues", "cues.db") {
		t.Fatalf("cache path should follow cache dir, got %q", cfg.Cache.Path)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalized: %+v", cfg.Logging)
	}
	if !cfg.Parser.PreserveSource {
		t.Fatal("expected preserve_source from file")
	}
	if cfg.API.Bind != "0.0.0.0:9000" {
		t.Fatalf("unexpected bind: %q", cfg.API.Bind)
	}
	if cfg.Export.DefaultFormat != "srt" {
		t.Fatalf("unexpected export format: %q", cfg.Export.DefaultFormat)
	}
}

func TestLoadMissingCustomPathUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists || resolved != path {
		t.Fatalf("expected absent custom path, got %q exists=%v", resolved, exists)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected default format, got %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "captions.toml")
	if err := os.WriteFile(path, []byte("[parser]\nframe_rate = 25\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "frame_rate") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestEnvTokenFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CAPTIONS_API_TOKEN", " env-token ")

	path := filepath.Join(t.TempDir(), "captions.toml")
	if err := os.WriteFile(path, []byte("[api]\nbind = \"127.0.0.1:1\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.API.Token != "env-token" {
		t.Fatalf("expected env token, got %q", cfg.API.Token)
	}

	if err := os.WriteFile(path, []byte("[api]\ntoken = \"file-token\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err = config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.API.Token != "file-token" {
		t.Fatalf("expected file token to win, got %q", cfg.API.Token)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.CacheDir, "captions") {
		t.Fatalf("expected cache dir to contain captions, got %q", cfg.Paths.CacheDir)
	}
	if cfg.API.MaxBodyBytes != 8388608 {
		t.Fatalf("unexpected sample body limit: %d", cfg.API.MaxBodyBytes)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"bind", func(c *config.Config) { c.API.Bind = "localhost" }, "api.bind"},
		{"body", func(c *config.Config) { c.API.MaxBodyBytes = -1 }, "api.max_body_bytes"},
		{"export", func(c *config.Config) { c.Export.DefaultFormat = "vtt" }, "export.default_format"},
		{"fallback", func(c *config.Config) { c.Export.FallbackDisplaySeconds = -2 }, "fallback_display_seconds"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %s error, got %v", tc.want, err)
			}
		})
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Cache.Path = filepath.Join(base, "db", "cues.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.CacheDir, cfg.Paths.LogDir, filepath.Dir(cfg.Cache.Path)} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q: %v", dir, err)
		}
	}
}

func TestEncodeRoundTrips(t *testing.T) {
	cfg := config.Default()
	cfg.API.Token = "secret"
	out, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(out, "[api]") || !strings.Contains(out, "secret") {
		t.Fatalf("unexpected encoding: %s", out)
	}
}
