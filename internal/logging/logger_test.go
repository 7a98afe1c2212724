package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"captions/internal/config"
	"captions/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-info.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller", logging.String(logging.FieldComponent, "loader"), logging.Int("cues", 3))

	content := readLog(t, logPath)
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
	if !strings.Contains(content, "INFO loader: message without caller") {
		t.Fatalf("expected component prefix, got %q", content)
	}
	if !strings.Contains(content, "cues=3") {
		t.Fatalf("expected attribute, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("message with caller", logging.String("text", "two words"))

	content := readLog(t, logPath)
	if !strings.Contains(content, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
	if !strings.Contains(content, `text="two words"`) {
		t.Fatalf("expected quoted value, got %q", content)
	}
}

func TestNewJSONLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("json line", logging.Float64("begin", 1.5))

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record["level"] != "warn" || record["msg"] != "json line" {
		t.Fatalf("unexpected record %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesJSONFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Logging.Level = "info"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("teed message")

	content := readLog(t, filepath.Join(cfg.Paths.LogDir, logging.LogFileName))
	if !strings.Contains(content, `"msg":"teed message"`) {
		t.Fatalf("expected json line in log file, got %q", content)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logging.WarnWithContext(logger, "cache unavailable", "cache_open_failed",
		logging.String(logging.FieldImpact, "documents are parsed on every request"),
	)

	out := buf.String()
	for _, want := range []string{
		`"event_type":"cache_open_failed"`,
		`"error_hint":"check logs for details"`,
		`"impact":"documents are parsed on every request"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}

func TestWithContextAddsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := logging.WithCorrelationID(context.Background(), "abc-123")
	logging.WithContext(ctx, base).Info("tagged")
	if !strings.Contains(buf.String(), `"correlation_id":"abc-123"`) {
		t.Fatalf("expected correlation id, got %s", buf.String())
	}

	buf.Reset()
	logging.WithContext(context.Background(), base).Info("untagged")
	if strings.Contains(buf.String(), "correlation_id") {
		t.Fatalf("expected no correlation id, got %s", buf.String())
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewComponentLogger(nil, "dfxp")
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("expected nop logger to be disabled")
	}
}
