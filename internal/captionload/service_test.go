package captionload_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"captions/internal/captionload"
	"captions/internal/cuecache"
	"captions/internal/dfxp"
	"captions/internal/logging"
	"captions/internal/playererr"
	"captions/internal/testsupport"
)

var sampleDocument = testsupport.SampleDocument

type fakeCache struct {
	entries map[string][]dfxp.Cue
	gets    int
	puts    int
	getErr  error
	putErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]dfxp.Cue)}
}

func (c *fakeCache) Get(_ context.Context, digest string) ([]dfxp.Cue, bool, error) {
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	cues, ok := c.entries[digest]
	return cues, ok, nil
}

func (c *fakeCache) Put(_ context.Context, digest, _ string, cues []dfxp.Cue) error {
	c.puts++
	if c.putErr != nil {
		return c.putErr
	}
	c.entries[digest] = cues
	return nil
}

func TestLoadReaderParsesDocument(t *testing.T) {
	svc := captionload.New(captionload.Options{})

	result, err := svc.LoadReader(context.Background(), strings.NewReader(sampleDocument), "sample.dfxp")
	if err != nil {
		t.Fatalf("LoadReader failed: %v", err)
	}
	if len(result.Cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(result.Cues))
	}
	first, second := result.Cues[0], result.Cues[1]
	if first.Begin != 1 || first.End == nil || *first.End != 2 || first.Text != "Hello" {
		t.Fatalf("unexpected first cue: %+v", first)
	}
	if second.Begin != 2 || second.End == nil || *second.End != 3.5 || second.Text != "Foo\r\nBar" {
		t.Fatalf("unexpected second cue: %+v", second)
	}
	if result.Digest != cuecache.Digest([]byte(sampleDocument)) {
		t.Fatalf("unexpected digest %q", result.Digest)
	}
	if result.CorrelationID == "" || result.Cached {
		t.Fatalf("unexpected result metadata: %+v", result)
	}
}

func TestLoadReaderUsesCache(t *testing.T) {
	cache := newFakeCache()
	svc := captionload.New(captionload.Options{Cache: cache})
	ctx := context.Background()

	first, err := svc.LoadReader(ctx, strings.NewReader(sampleDocument), "a")
	if err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	if first.Cached || cache.puts != 1 {
		t.Fatalf("expected miss and store, cached=%v puts=%d", first.Cached, cache.puts)
	}

	second, err := svc.LoadReader(ctx, strings.NewReader(sampleDocument), "b")
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if !second.Cached || cache.puts != 1 {
		t.Fatalf("expected cache hit, cached=%v puts=%d", second.Cached, cache.puts)
	}
	if len(second.Cues) != 2 || second.Cues[1].Text != "Foo\r\nBar" {
		t.Fatalf("unexpected cached cues: %+v", second.Cues)
	}
}

func TestLoadReaderIgnoresCacheFailures(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("disk gone")
	cache.putErr = errors.New("disk gone")

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := captionload.New(captionload.Options{Cache: cache, Logger: logger})

	result, err := svc.LoadReader(context.Background(), strings.NewReader(sampleDocument), "a")
	if err != nil {
		t.Fatalf("LoadReader failed: %v", err)
	}
	if len(result.Cues) != 2 {
		t.Fatalf("expected parsed cues, got %d", len(result.Cues))
	}
	out := buf.String()
	if !strings.Contains(out, `"event_type":"cache_get_failed"`) || !strings.Contains(out, `"event_type":"cache_put_failed"`) {
		t.Fatalf("expected cache warnings in log:\n%s", out)
	}
}

func TestLoadReaderPhases(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		phase playererr.Phase
		code  int
	}{
		{"unknown charset", `<?xml version="1.0" encoding="x-made-up"?><tt/>`, playererr.PhaseDecode, 0},
		{"empty", ``, playererr.PhaseCaptions, 306103},
		{"no paragraphs", `<tt><body/></tt>`, playererr.PhaseCaptions, 306101},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cache := newFakeCache()
			svc := captionload.New(captionload.Options{Cache: cache})
			_, err := svc.LoadReader(context.Background(), strings.NewReader(tc.doc), tc.name)
			if err == nil {
				t.Fatal("expected error")
			}
			var perr *playererr.Error
			if !errors.As(err, &perr) {
				t.Fatalf("expected *playererr.Error, got %T: %v", err, err)
			}
			if perr.Phase != tc.phase || perr.Code() != tc.code {
				t.Fatalf("got phase=%q code=%d, want %q/%d", perr.Phase, perr.Code(), tc.phase, tc.code)
			}
			if cache.puts != 0 {
				t.Fatal("failed loads must not be cached")
			}
		})
	}
}

func TestLoadReaderSizeLimit(t *testing.T) {
	svc := captionload.New(captionload.Options{MaxBytes: 10})
	_, err := svc.LoadReader(context.Background(), strings.NewReader(sampleDocument), "big")
	if !errors.Is(err, captionload.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if phase, _ := playererr.PhaseOf(err); phase != playererr.PhaseRead {
		t.Fatalf("expected read phase, got %q", phase)
	}
}

func TestLoadReaderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := captionload.New(captionload.Options{})
	_, err := svc.LoadReader(ctx, strings.NewReader(sampleDocument), "x")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoadReaderKeepsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	svc := captionload.New(captionload.Options{Logger: logger})

	ctx := logging.WithCorrelationID(context.Background(), "req-42")
	result, err := svc.LoadReader(ctx, strings.NewReader(sampleDocument), "x")
	if err != nil {
		t.Fatalf("LoadReader failed: %v", err)
	}
	if result.CorrelationID != "req-42" {
		t.Fatalf("expected caller correlation id, got %q", result.CorrelationID)
	}
	if !strings.Contains(buf.String(), `"correlation_id":"req-42"`) {
		t.Fatalf("expected correlation id in logs:\n%s", buf.String())
	}
}

func TestLoadFile(t *testing.T) {
	path := testsupport.WriteDocument(t, filepath.Join(t.TempDir(), "episode.dfxp"), sampleDocument)
	svc := captionload.New(captionload.Options{})
	result, err := svc.LoadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if result.Source != "episode.dfxp" || len(result.Cues) != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}

	_, err = svc.LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.dfxp"))
	if phase, ok := playererr.PhaseOf(err); !ok || phase != playererr.PhaseRead {
		t.Fatalf("expected read phase error, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist cause, got %v", err)
	}
}

func TestLoadWithSQLiteCache(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCache(t, cfg)

	svc := captionload.New(captionload.Options{Cache: store})
	ctx := context.Background()
	if _, err := svc.LoadReader(ctx, strings.NewReader(sampleDocument), "a"); err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	again, err := svc.LoadReader(ctx, strings.NewReader(sampleDocument), "a")
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if !again.Cached || again.Cues[0].Text != "Hello" {
		t.Fatalf("expected cached result, got %+v", again)
	}
}
