package utils

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis is appended by TruncateEllipsis when content is cut
const Ellipsis = "..."

// TruncateRunes cuts s to at most maxRunes characters without splitting a
// UTF-8 sequence. No marker is added.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if len(s) <= maxRunes {
		// byte length bounds rune count
		return s
	}
	count := 0
	for i := range s {
		if count == maxRunes {
			return s[:i]
		}
		count++
	}
	return s
}

// TruncateEllipsis cuts s to maxRunes characters and appends "..." when
// anything was removed, so the result is at most maxRunes+3 characters.
func TruncateEllipsis(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	return TruncateRunes(s, maxRunes) + Ellipsis
}

// CollapseNewlines replaces every newline with a space so the text fits on
// one line
func CollapseNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
