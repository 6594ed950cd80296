package normalize

import (
	"strings"
	"unicode/utf8"
)

// Cell cleans a raw spreadsheet or CSV cell
// - invalid UTF-8 bytes are dropped
// - NUL, DEL, C0 and C1 controls are dropped except '\n' and '\t'
// - byte order marks are dropped wherever they appear
// - surrounding whitespace is trimmed
// Fast path returns the trimmed input when nothing needs cleaning
func Cell(s string) string {
	if s == "" {
		return s
	}
	clean := true
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if dropRune(r, size) {
			clean = false
			break
		}
		i += size
	}
	if clean {
		return strings.TrimSpace(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !dropRune(r, size) {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return strings.TrimSpace(b.String())
}

func dropRune(r rune, size int) bool {
	switch {
	case r == utf8.RuneError && size == 1:
		return true
	case r == '\n' || r == '\t':
		return false
	case r < 0x20 || r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	case r == '\uFEFF':
		return true
	}
	return false
}
