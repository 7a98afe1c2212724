package timecode

import (
	"math"
	"testing"
)

func TestSeconds(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		frameRate float64
		want      float64
		ok        bool
	}{
		{name: "empty", value: "", frameRate: 30, want: 0, ok: true},
		{name: "whitespace", value: "   ", frameRate: 30, want: 0, ok: true},
		{name: "decimal seconds", value: "2.0", frameRate: 25, want: 2, ok: true},
		{name: "fractional seconds", value: "1.5", frameRate: 25, want: 1.5, ok: true},
		{name: "integer frames", value: "25", frameRate: 25, want: 1, ok: true},
		{name: "integer frames default rate", value: "45", frameRate: 30, want: 1.5, ok: true},
		{name: "clock", value: "00:00:01.000", frameRate: 30, want: 1, ok: true},
		{name: "clock hours", value: "01:02:03.5", frameRate: 30, want: 3723.5, ok: true},
		{name: "clock minutes seconds", value: "02:30", frameRate: 30, want: 150, ok: true},
		{name: "clock comma fraction", value: "00:00:04,250", frameRate: 30, want: 4.25, ok: true},
		{name: "clock with frames", value: "00:00:01:15", frameRate: 30, want: 1.5, ok: true},
		{name: "seconds metric", value: "3.5s", frameRate: 30, want: 3.5, ok: true},
		{name: "milliseconds metric", value: "1500ms", frameRate: 30, want: 1.5, ok: true},
		{name: "minutes metric", value: "2m", frameRate: 30, want: 120, ok: true},
		{name: "hours metric", value: "1.5h", frameRate: 30, want: 5400, ok: true},
		{name: "frames metric", value: "50f", frameRate: 25, want: 2, ok: true},
		{name: "uppercase metric", value: "4S", frameRate: 30, want: 4, ok: true},
		{name: "invalid rate falls back", value: "30", frameRate: 0, want: 1, ok: true},
		{name: "garbage", value: "abc", frameRate: 30, want: 0, ok: false},
		{name: "bad clock field", value: "00:xx:01", frameRate: 30, want: 0, ok: false},
		{name: "too many clock fields", value: "1:2:3:4:5", frameRate: 30, want: 0, ok: false},
		{name: "trailing colon", value: "1:", frameRate: 30, want: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Seconds(tt.value, tt.frameRate)
			if ok != tt.ok {
				t.Fatalf("Seconds(%q) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Seconds(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseFloatPrefix(t *testing.T) {
	tests := []struct {
		value string
		want  float64
	}{
		{"25", 25},
		{"25fps", 25},
		{"  29.97", 29.97},
		{"-1.5e2x", -150},
		{"1e", 1},
		{".5", 0.5},
		{"+7", 7},
	}
	for _, tt := range tests {
		if got := ParseFloatPrefix(tt.value); got != tt.want {
			t.Fatalf("ParseFloatPrefix(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}

	for _, value := range []string{"", "abc", ".", "-", "e5"} {
		if got := ParseFloatPrefix(value); !math.IsNaN(got) {
			t.Fatalf("ParseFloatPrefix(%q) = %v, want NaN", value, got)
		}
	}
	if got := ParseFloatPrefix("-Infinity"); !math.IsInf(got, -1) {
		t.Fatalf("expected -Inf, got %v", got)
	}
}

func TestFrameRate(t *testing.T) {
	tests := []struct {
		value string
		want  float64
	}{
		{"", DefaultFrameRate},
		{"abc", DefaultFrameRate},
		{"0", DefaultFrameRate},
		{"-24", DefaultFrameRate},
		{"Infinity", DefaultFrameRate},
		{"25", 25},
		{"23.976", 23.976},
	}
	for _, tt := range tests {
		if got := FrameRate(tt.value); got != tt.want {
			t.Fatalf("FrameRate(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
