package cueexport

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"captions/internal/dfxp"
)

func ptr(v float64) *float64 { return &v }

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{" SRT ", FormatSRT, false},
		{"vtt", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseFormat(%q) err=%v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	cues := []dfxp.Cue{{Begin: 1, End: ptr(2), Text: "Hello"}, {Begin: 2, Text: "Open"}}
	if err := WriteJSON(&buf, cues); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(decoded))
	}
	if decoded[0]["end"] != 2.0 || decoded[0]["text"] != "Hello" {
		t.Fatalf("unexpected first cue: %v", decoded[0])
	}
	if _, ok := decoded[1]["end"]; ok {
		t.Fatalf("open-ended cue should omit end: %v", decoded[1])
	}

	buf.Reset()
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("WriteJSON nil failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", buf.String())
	}
}

func TestWriteSRT(t *testing.T) {
	cues := []dfxp.Cue{
		{Begin: 1, End: ptr(2), Text: "Hello"},
		{Begin: 2, Text: "Foo\r\nBar"},
		{Begin: 3661.5, Text: "Last"},
	}
	var buf bytes.Buffer
	if err := WriteSRT(&buf, cues, Options{FallbackSeconds: 2}); err != nil {
		t.Fatalf("WriteSRT failed: %v", err)
	}

	want := "1\n00:00:01,000 --> 00:00:02,000\nHello\n\n" +
		"2\n00:00:02,000 --> 01:01:01,500\nFoo\nBar\n\n" +
		"3\n01:01:01,500 --> 01:01:03,500\nLast\n\n"
	if buf.String() != want {
		t.Fatalf("unexpected srt:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteSRTFallbackForOverlappingSuccessor(t *testing.T) {
	cues := []dfxp.Cue{{Begin: 5, Text: "A"}, {Begin: 5, Text: "B"}}
	var buf bytes.Buffer
	if err := WriteSRT(&buf, cues, Options{}); err != nil {
		t.Fatalf("WriteSRT failed: %v", err)
	}
	if !strings.Contains(buf.String(), "00:00:05,000 --> 00:00:08,000\nA") {
		t.Fatalf("expected default fallback, got:\n%s", buf.String())
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "cues.srt")
	cues := []dfxp.Cue{{Begin: 0, End: ptr(1.25), Text: "Hi"}}
	if err := WriteFile(path, FormatSRT, cues, Options{}); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "1\n00:00:00,000 --> 00:00:01,250\nHi\n\n" {
		t.Fatalf("unexpected file contents %q", data)
	}
	if err := WriteFile(path, Format("vtt"), cues, Options{}); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := map[float64]string{
		-1:     "00:00:00,000",
		0.0004: "00:00:00,000",
		1.0006: "00:00:01,001",
		59.999: "00:00:59,999",
		7200:   "02:00:00,000",
	}
	for in, want := range tests {
		if got := formatTimestamp(in); got != want {
			t.Fatalf("formatTimestamp(%v) = %q, want %q", in, got, want)
		}
	}
}
