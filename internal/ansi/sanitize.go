package ansi

import (
	"strings"
	"unicode/utf8"
)

const hexDigits = "0123456789ABCDEF"

// Sanitize sanitizes raw file content for display in a terminal.
//   - If tabWidth > 0, it replaces \t with tabWidth spaces. Otherwise, \t is left as-is.
//   - \r and \n are left as-is.
//   - Except for above, all non-visible ASCII characters <= 0x1F and 0x7F are replaced with "\xXX" (ex: "\x1B" for ESC).
//   - Invalid UTF-8 is replaced by U+FFFD.
func Sanitize(s string, tabWidth int) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteRune('�')
			i++
			continue
		}
		i += size

		switch r {
		case '\t':
			if tabWidth > 0 {
				for j := 0; j < tabWidth; j++ {
					b.WriteByte(' ')
				}
			} else {
				b.WriteRune('\t')
			}
		case '\n', '\r':
			b.WriteRune(r)
		default:
			if r <= 0x7F && (r < 0x20 || r == 0x7F) {
				code := byte(r)
				b.WriteByte('\\')
				b.WriteByte('x')
				b.WriteByte(hexDigits[code>>4])
				b.WriteByte(hexDigits[code&0x0F])
				continue
			}
			b.WriteRune(r)
		}
	}

	return b.String()
}

// StripANSI removes every recognized escape sequence from s, leaving the plain visible text. Used by search
// (case-insensitive substring matching happens against the stripped text) and wherever a row's true visible
// width must be measured independent of color.
func StripANSI(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '\x1b' {
			b.WriteByte(s[i])
			i++
			continue
		}
		seqLen := ansiSequenceLength(s[i:])
		if seqLen == 0 {
			i++
		} else {
			i += seqLen
		}
	}
	return b.String()
}
