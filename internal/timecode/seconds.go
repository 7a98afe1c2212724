package timecode

import (
	"strings"
)

// DefaultFrameRate is used when a document carries no usable frame rate.
const DefaultFrameRate = 30.0

const maxClockFields = 4

// Seconds converts a timing expression into seconds using frameRate for
// frame-based values. An empty value is treated as an absent attribute and
// yields 0. The boolean is false when the expression cannot be read; the
// returned value is then 0.
func Seconds(value string, frameRate float64) (float64, bool) {
	input := strings.TrimSpace(value)
	if input == "" {
		return 0, true
	}
	if !valid(frameRate) || frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	input = strings.Replace(input, ",", ".", 1)

	lower := strings.ToLower(input)
	var sec float64
	switch {
	case strings.HasSuffix(lower, "ms"):
		sec = ParseFloatPrefix(input) / 1000
	case strings.HasSuffix(lower, "h"):
		sec = ParseFloatPrefix(input) * 3600
	case strings.HasSuffix(lower, "m"):
		sec = ParseFloatPrefix(input) * 60
	case strings.HasSuffix(lower, "s"):
		sec = ParseFloatPrefix(input)
	case strings.HasSuffix(lower, "f"):
		sec = ParseFloatPrefix(input) / frameRate
	case strings.Contains(input, ":"):
		var ok bool
		sec, ok = clockSeconds(strings.Split(input, ":"), frameRate)
		if !ok {
			return 0, false
		}
	case isUnsignedInteger(input):
		sec = ParseFloatPrefix(input) / frameRate
	default:
		sec = ParseFloatPrefix(input)
	}

	if !valid(sec) {
		return 0, false
	}
	return sec, true
}

// clockSeconds sums colon-separated clock fields. A fourth field is a frame
// count within the current second.
func clockSeconds(fields []string, frameRate float64) (float64, bool) {
	if len(fields) > maxClockFields {
		return 0, false
	}
	secIndex := len(fields) - 1
	var sec float64
	if len(fields) == maxClockFields {
		sec = ParseFloatPrefix(fields[secIndex]) / frameRate
		secIndex--
	}
	sec += ParseFloatPrefix(fields[secIndex])
	sec += ParseFloatPrefix(fields[secIndex-1]) * 60
	if len(fields) >= 3 {
		sec += ParseFloatPrefix(fields[secIndex-2]) * 3600
	}
	return sec, valid(sec)
}

// FrameRate reads a frame-rate attribute value, falling back to
// DefaultFrameRate when it is missing, unreadable or not positive.
func FrameRate(value string) float64 {
	parsed := ParseFloatPrefix(value)
	if !valid(parsed) || parsed <= 0 {
		return DefaultFrameRate
	}
	return parsed
}
