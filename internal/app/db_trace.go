package app

import (
	"strings"
	"unicode/utf8"
)

const maxTracedQueryLength = 512

// formatDBQueryForTrace collapses whitespace and drops line comments so span
// attributes stay readable, then caps the length on a rune boundary.
func formatDBQueryForTrace(query string) string {
	var b strings.Builder
	b.Grow(len(query))
	for _, line := range strings.Split(query, "\n") {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		for _, field := range strings.Fields(line) {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(field)
		}
	}

	out := b.String()
	if len(out) <= maxTracedQueryLength {
		return out
	}
	cut := maxTracedQueryLength
	for cut > 0 && !utf8.RuneStart(out[cut]) {
		cut--
	}
	return out[:cut] + "..."
}
