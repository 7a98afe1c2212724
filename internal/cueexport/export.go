// Package cueexport renders parsed cues as JSON or SubRip text.
package cueexport

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"captions/internal/dfxp"
	"captions/internal/fileutil"
)

// Format selects an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatSRT  Format = "srt"
)

// DefaultFallbackSeconds is the display time given to the last open-ended cue.
const DefaultFallbackSeconds = 3.0

// ParseFormat validates a user-supplied format name.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatSRT:
		return FormatSRT, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want json or srt)", value)
	}
}

// ContentType returns the HTTP media type for f.
func (f Format) ContentType() string {
	if f == FormatSRT {
		return "application/x-subrip; charset=utf-8"
	}
	return "application/json"
}

// Options tune exporter output.
type Options struct {
	// FallbackSeconds ends an open-ended cue that has no successor.
	FallbackSeconds float64
}

func (o Options) fallback() float64 {
	if o.FallbackSeconds <= 0 {
		return DefaultFallbackSeconds
	}
	return o.FallbackSeconds
}

// Write encodes cues to w in the given format.
func Write(w io.Writer, format Format, cues []dfxp.Cue, opts Options) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, cues)
	case FormatSRT:
		return WriteSRT(w, cues, opts)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteJSON encodes cues as an indented JSON array. An empty input encodes as [].
func WriteJSON(w io.Writer, cues []dfxp.Cue) error {
	if cues == nil {
		cues = []dfxp.Cue{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cues); err != nil {
		return fmt.Errorf("encode cues: %w", err)
	}
	return nil
}

// WriteSRT encodes cues as numbered SubRip blocks. A cue without an end runs
// until the next cue begins, or for the fallback duration when it is last.
func WriteSRT(w io.Writer, cues []dfxp.Cue, opts Options) error {
	for i, cue := range cues {
		end := srtEnd(cues, i, opts.fallback())
		text := strings.ReplaceAll(cue.Text, "\r\n", "\n")
		if _, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			i+1, formatTimestamp(cue.Begin), formatTimestamp(end), text); err != nil {
			return fmt.Errorf("write srt cue %d: %w", i+1, err)
		}
	}
	return nil
}

// WriteFile encodes cues to path under an advisory lock and replaces the
// destination atomically.
func WriteFile(path string, format Format, cues []dfxp.Cue, opts Options) error {
	return fileutil.WriteLocked(path, 0o644, func(w io.Writer) error {
		return Write(w, format, cues, opts)
	})
}

func srtEnd(cues []dfxp.Cue, index int, fallback float64) float64 {
	cue := cues[index]
	if end, ok := cue.EndTime(); ok {
		return end
	}
	if index+1 < len(cues) && cues[index+1].Begin > cue.Begin {
		return cues[index+1].Begin
	}
	return cue.Begin + fallback
}

func formatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	msTotal := int64(seconds*1000 + 0.5)
	hours := msTotal / 3_600_000
	msTotal %= 3_600_000
	minutes := msTotal / 60_000
	msTotal %= 60_000
	secs := msTotal / 1_000
	millis := msTotal % 1_000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
