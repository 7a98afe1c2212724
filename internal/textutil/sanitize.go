package textutil

import (
	"path"
	"strings"
	"unicode"
)

// maxLabelRunes bounds labels stored with cached documents.
const maxLabelRunes = 120

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed.
func SanitizeFileName(name string) string {
	return strings.TrimSpace(fileNameReplacer.Replace(strings.TrimSpace(name)))
}

// SanitizeLabel turns a caller-supplied document label into a short,
// printable base name. Directory components and control characters are
// dropped. Empty results fall back to fallback.
func SanitizeLabel(value, fallback string) string {
	value = strings.ReplaceAll(strings.TrimSpace(value), "\\", "/")
	if value != "" {
		value = strings.Trim(path.Base(value), "/")
	}
	value = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
	value = SanitizeFileName(value)
	if runes := []rune(value); len(runes) > maxLabelRunes {
		value = string(runes[:maxLabelRunes])
	}
	if value == "" || value == "." || value == ".." {
		return fallback
	}
	return value
}
