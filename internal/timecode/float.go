package timecode

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloatPrefix parses the longest leading real number in value.
// Leading whitespace is skipped. The result is NaN when no number is present.
func ParseFloatPrefix(value string) float64 {
	s := strings.TrimLeft(value, " \t\r\n\f\v")
	if s == "" {
		return math.NaN()
	}

	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN()
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			expDigits++
		}
		if expDigits > 0 {
			end = j
		}
	}

	// The prefix is well formed, so the only possible error is a range
	// overflow, for which ParseFloat already returns a signed infinity.
	parsed, _ := strconv.ParseFloat(s[:end], 64)
	return parsed
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isUnsignedInteger(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if !isDigit(value[i]) {
			return false
		}
	}
	return true
}

func valid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
