package pager

import (
	"strings"
	"unicode/utf8"

	"github.com/arifd/gd/internal/ansi"
	"github.com/arifd/gd/internal/render"
)

// resolveMatches scans doc.Lines for query as a case-insensitive substring after ANSI stripping.
func resolveMatches(doc render.RenderOutput, query string) []int {
	if query == "" {
		return nil
	}
	needle := strings.ToLower(query)
	var matches []int
	for i, line := range doc.Lines {
		plain := strings.ToLower(ansi.StripANSI(line))
		if strings.Contains(plain, needle) {
			matches = append(matches, i)
		}
	}
	return matches
}

// nearestMatch picks the match nearest to topLine: the first with index >= topLine, or the last match
// otherwise.
func nearestMatch(matches []int, topLine int) int {
	for i, m := range matches {
		if m >= topLine {
			return i
		}
	}
	if len(matches) == 0 {
		return -1
	}
	return len(matches) - 1
}

// scopedMatchIndices returns the indices into matches (not the line numbers themselves) that fall within
// [start, end), preserving order — used to cycle matches within the active file's range when view_scope is
// SingleFile.
func scopedMatchIndices(matches []int, start, end int) []int {
	var idx []int
	for i, m := range matches {
		if m >= start && m < end {
			idx = append(idx, i)
		}
	}
	return idx
}

// stepMatch advances current (an index into matches, or -1) to the next/prev match within scope, wrapping.
// Returns -1 if scope contains no matches.
func stepMatch(matches []int, current int, scope []int, forward bool) int {
	if len(scope) == 0 {
		return -1
	}

	pos := -1
	for i, idx := range scope {
		if idx == current {
			pos = i
			break
		}
	}

	if pos < 0 {
		// current isn't in scope (or is -1/"none"): land on the first in-scope match for forward
		// cycling, the last for backward, matching "from current_match = -1 lands on index 0".
		if forward {
			return scope[0]
		}
		return scope[len(scope)-1]
	}

	if forward {
		pos = (pos + 1) % len(scope)
	} else {
		pos = (pos - 1 + len(scope)) % len(scope)
	}
	return scope[pos]
}

// --- search input editing: byte-boundary-aware cursor over SearchInput ---

func clampToBoundary(s string, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos >= len(s) {
		return len(s)
	}
	for pos > 0 && !utf8.RuneStart(s[pos]) {
		pos--
	}
	return pos
}

func prevCharBoundary(s string, pos int) int {
	pos = clampToBoundary(s, pos)
	if pos == 0 {
		return 0
	}
	_, size := utf8.DecodeLastRuneInString(s[:pos])
	return pos - size
}

func nextCharBoundary(s string, pos int) int {
	pos = clampToBoundary(s, pos)
	if pos >= len(s) {
		return len(s)
	}
	_, size := utf8.DecodeRuneInString(s[pos:])
	return pos + size
}

func prevWordBoundary(s string, pos int) int {
	pos = clampToBoundary(s, pos)
	for pos > 0 && s[pos-1] == ' ' {
		pos = prevCharBoundary(s, pos)
	}
	for pos > 0 && s[pos-1] != ' ' {
		pos = prevCharBoundary(s, pos)
	}
	return pos
}

func nextWordBoundary(s string, pos int) int {
	pos = clampToBoundary(s, pos)
	for pos < len(s) && s[pos] == ' ' {
		pos = nextCharBoundary(s, pos)
	}
	for pos < len(s) && s[pos] != ' ' {
		pos = nextCharBoundary(s, pos)
	}
	return pos
}

func insertRune(s string, pos int, r rune) (string, int) {
	pos = clampToBoundary(s, pos)
	encoded := string(r)
	return s[:pos] + encoded + s[pos:], pos + len(encoded)
}

func deleteBeforeCursor(s string, pos int) (string, int) {
	pos = clampToBoundary(s, pos)
	if pos == 0 {
		return s, 0
	}
	prev := prevCharBoundary(s, pos)
	return s[:prev] + s[pos:], prev
}
